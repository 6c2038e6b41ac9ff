package component

import "github.com/go-gl/mathgl/mgl32"

// Level describes the loaded level. Bodies tagged PlayerTag that fall below
// KillY return to Spawn.
type Level struct {
	Name  string
	Spawn mgl32.Vec3
	KillY float32
}

var LevelComponent = NewComponent[Level]()
