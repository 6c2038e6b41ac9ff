package component

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Render draws the entity as a wireframe box around its transform.
type Render struct {
	Color       color.NRGBA
	HalfExtents mgl32.Vec3
}

var RenderComponent = NewComponent[Render]()
