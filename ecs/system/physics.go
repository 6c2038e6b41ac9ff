package system

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
)

const (
	collisionEpsilon = 1e-5
	// A ground hit this close counts as resting on the surface.
	restDistance = 0.01
)

// PhysicsSystem integrates gravity, moves bodies through the static
// colliders and refreshes their ground sensors.
type PhysicsSystem struct {
	colliders []component.StaticCollider
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Clock().Delta

	s.colliders = s.colliders[:0]
	ecs.ForEach(w, component.StaticColliderComponent.Kind(), func(_ ecs.Entity, c *component.StaticCollider) {
		s.colliders = append(s.colliders, *c)
	})

	var level *component.Level
	if le, ok := ecs.First(w, component.LevelComponent.Kind()); ok {
		level, _ = ecs.Get(w, le, component.LevelComponent.Kind())
	}

	ecs.ForEach2(w, component.BodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.Body, t *component.Transform) {
		if body.Static {
			return
		}
		body.Velocity[1] -= gravity * body.GravityScale * dt
		t.Position = s.move(body, t.Position, body.Velocity.Mul(dt))

		if sensor, ok := ecs.Get(w, e, component.GroundSensorComponent.Kind()); ok {
			sensor.Hits = s.castDown(body.Box(t.Position), sensor.MaxDistance, sensor.Hits[:0])
			if ctrl, ok := ecs.Get(w, e, component.CharacterControllerComponent.Kind()); ok && !isGrounded(sensor, ctrl.MaxSlopeAngle) {
				slideOff(body, sensor.Hits, dt)
			}
		}

		if level != nil && has(w, e, component.PlayerTagComponent) && t.Position.Y() < level.KillY {
			t.Position = level.Spawn
			body.Velocity = mgl32.Vec3{}
			insert(w, e, component.FallingComponent)
		}
	})
}

// move translates the body by delta one axis at a time, Y then X then Z,
// stopping at each collider it would enter. A blocked axis loses its velocity.
func (s *PhysicsSystem) move(body *component.Body, pos, delta mgl32.Vec3) mgl32.Vec3 {
	box := body.Box(pos)
	for _, axis := range [3]int{1, 0, 2} {
		d := delta[axis]
		if d == 0 {
			continue
		}
		clipped := d
		for _, c := range s.colliders {
			clipped = clipAxis(box, c.Box, axis, clipped)
		}
		if clipped != d {
			body.Velocity[axis] = 0
		}
		var step mgl32.Vec3
		step[axis] = clipped
		box = box.Translate(step)
		pos[axis] += clipped
	}
	return pos
}

// clipAxis shortens d so that moving box along axis does not enter other.
func clipAxis(box, other cube.BBox, axis int, d float32) float32 {
	bMin, bMax := box.Min(), box.Max()
	oMin, oMax := other.Min(), other.Max()
	for i := 0; i < 3; i++ {
		if i == axis {
			continue
		}
		if bMax[i] <= oMin[i]+collisionEpsilon || bMin[i] >= oMax[i]-collisionEpsilon {
			return d
		}
	}
	if d > 0 && bMax[axis] <= oMin[axis]+collisionEpsilon {
		if gap := oMin[axis] - bMax[axis]; gap < d {
			return max(gap, 0)
		}
	}
	if d < 0 && bMin[axis] >= oMax[axis]-collisionEpsilon {
		if gap := oMax[axis] - bMin[axis]; gap > d {
			return min(gap, 0)
		}
	}
	return d
}

// slideOff pushes a body resting on a top too steep to stand on down the
// slope, with the horizontal part of gravity along the surface normal.
func slideOff(body *component.Body, hits []component.GroundHit, dt float32) {
	for _, hit := range hits {
		if hit.Distance > restDistance || hit.Normal.Len() == 0 {
			continue
		}
		n := hit.Normal.Normalize()
		accel := gravity * body.GravityScale * dt
		body.Velocity[0] += n.X() * accel
		body.Velocity[2] += n.Z() * accel
		return
	}
}

// castDown reports every collider whose top lies within maxDist below box.
func (s *PhysicsSystem) castDown(box cube.BBox, maxDist float32, hits []component.GroundHit) []component.GroundHit {
	bMin, bMax := box.Min(), box.Max()
	for _, c := range s.colliders {
		oMin, oMax := c.Box.Min(), c.Box.Max()
		if bMax[0] <= oMin[0] || bMin[0] >= oMax[0] || bMax[2] <= oMin[2] || bMin[2] >= oMax[2] {
			continue
		}
		dist := bMin[1] - oMax[1]
		if dist < -collisionEpsilon || dist > maxDist {
			continue
		}
		normal := c.Normal
		if normal.Len() == 0 {
			normal = mgl32.Vec3{0, 1, 0}
		}
		hits = append(hits, component.GroundHit{Normal: normal, Distance: max(dist, 0)})
	}
	return hits
}

// TransformHierarchySystem pins entities with a Parent to their parent's
// pose. Entities whose parent is gone are destroyed.
type TransformHierarchySystem struct{}

func NewTransformHierarchySystem() *TransformHierarchySystem {
	return &TransformHierarchySystem{}
}

func (s *TransformHierarchySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.ParentComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Parent, t *component.Transform) {
		pt, ok := ecs.Get(w, ecs.Entity(p.Entity), component.TransformComponent.Kind())
		if !ok {
			ecs.DestroyEntity(w, e)
			return
		}
		t.Position = pt.Position.Add(pt.Rotation.Rotate(p.Offset))
		t.Rotation = pt.Rotation
	})
}
