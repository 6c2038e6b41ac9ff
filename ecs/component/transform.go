package component

import "github.com/go-gl/mathgl/mgl32"

// Transform is a world-space pose. Position is the center of the entity.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform(pos mgl32.Vec3) Transform {
	return Transform{Position: pos, Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}}
}

// Forward is local -Z in world space.
func (t Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
}

func (t Transform) Right() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{1, 0, 0})
}

func (t Transform) Left() mgl32.Vec3 {
	return t.Right().Mul(-1)
}

var TransformComponent = NewComponent[Transform]()

// Parent pins an entity to another one. Offset is in the parent's local space.
type Parent struct {
	Entity uint64
	Offset mgl32.Vec3
}

var ParentComponent = NewComponent[Parent]()
