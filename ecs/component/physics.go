package component

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// Body is a kinematic box moved by the physics system.
type Body struct {
	Velocity     mgl32.Vec3
	GravityScale float32
	HalfExtents  mgl32.Vec3
	Static       bool
}

// Box returns the body's bounds centered on pos.
func (b Body) Box(pos mgl32.Vec3) cube.BBox {
	return CenteredBox(pos, b.HalfExtents)
}

var BodyComponent = NewComponent[Body]()

// GroundHit is one surface found below a body by the ground cast.
type GroundHit struct {
	Normal   mgl32.Vec3
	Distance float32
}

type GroundSensor struct {
	MaxDistance float32
	Hits        []GroundHit
}

var GroundSensorComponent = NewComponent[GroundSensor]()

// StaticCollider is level geometry. Normal is the walkable surface normal of
// the top face and defaults to +Y.
type StaticCollider struct {
	Box    cube.BBox
	Normal mgl32.Vec3
}

var StaticColliderComponent = NewComponent[StaticCollider]()

func CenteredBox(pos, half mgl32.Vec3) cube.BBox {
	return cube.Box(
		pos.X()-half.X(), pos.Y()-half.Y(), pos.Z()-half.Z(),
		pos.X()+half.X(), pos.Y()+half.Y(), pos.Z()+half.Z(),
	)
}
