package system

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
)

// GroundedSystem turns last frame's ground hits into Grounded or Falling.
type GroundedSystem struct{}

func NewGroundedSystem() *GroundedSystem {
	return &GroundedSystem{}
}

func (s *GroundedSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.CharacterControllerComponent.Kind(), component.GroundSensorComponent.Kind(), func(e ecs.Entity, ctrl *component.CharacterController, sensor *component.GroundSensor) {
		if !isGrounded(sensor, ctrl.MaxSlopeAngle) {
			remove(w, e, component.GroundedComponent)
			insert(w, e, component.FallingComponent)
			return
		}

		wasFalling := has(w, e, component.FallingComponent)
		remove(w, e, component.FallingComponent)
		remove(w, e, component.GlideComponent)
		insert(w, e, component.GroundedComponent)
		if wasFalling {
			remove(w, e, component.SideflipLComponent)
			remove(w, e, component.SideflipRComponent)
			remove(w, e, component.LongjumpComponent)
			insert(w, e, component.LandComponent)
			if jumps, ok := ecs.Get(w, e, component.JumpCounterComponent.Kind()); ok {
				jumps.Count = 0
			}
		}
	})
}

// isGrounded reports whether any hit is walkable: the angle between its
// normal and +Y is at most maxSlope radians.
func isGrounded(sensor *component.GroundSensor, maxSlope float32) bool {
	for _, hit := range sensor.Hits {
		if hit.Normal.Len() == 0 {
			continue
		}
		slope := math32.Acos(mgl32.Clamp(hit.Normal.Normalize().Y(), -1, 1))
		if slope <= maxSlope {
			return true
		}
	}
	return false
}
