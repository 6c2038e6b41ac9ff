package entity

import (
	"fmt"

	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
)

type stateMarker struct {
	name string
	set  func(w *ecs.World, e ecs.Entity, on bool) error
	has  func(w *ecs.World, e ecs.Entity) bool
}

func marker[T any](name string, h component.ComponentHandle[T]) stateMarker {
	return stateMarker{
		name: name,
		set: func(w *ecs.World, e ecs.Entity, on bool) error {
			if !on {
				ecs.Remove(w, e, h.Kind())
				return nil
			}
			if ecs.Has(w, e, h.Kind()) {
				return nil
			}
			return ecs.Add(w, e, h.Kind(), new(T))
		},
		has: func(w *ecs.World, e ecs.Entity) bool {
			return ecs.Has(w, e, h.Kind())
		},
	}
}

// stateMarkers lists the player movement states in debug display order.
var stateMarkers = []stateMarker{
	marker("grounded", component.GroundedComponent),
	marker("falling", component.FallingComponent),
	marker("idle", component.IdleComponent),
	marker("walk", component.WalkComponent),
	marker("strafe", component.StrafeComponent),
	marker("crouch", component.CrouchComponent),
	marker("land", component.LandComponent),
	marker("jump", component.JumpComponent),
	marker("double_jump", component.DoubleJumpComponent),
	marker("glide", component.GlideComponent),
	marker("sideflip_l", component.SideflipLComponent),
	marker("sideflip_r", component.SideflipRComponent),
	marker("longjump", component.LongjumpComponent),
	marker("highjump", component.HighjumpComponent),
	marker("swing", component.SwingComponent),
}

// SetState inserts or removes the named state marker.
func SetState(w *ecs.World, e ecs.Entity, name string, on bool) error {
	for _, m := range stateMarkers {
		if m.name == name {
			return m.set(w, e, on)
		}
	}
	return fmt.Errorf("unknown state %q", name)
}

// ActiveStates names the markers e carries, in display order.
func ActiveStates(w *ecs.World, e ecs.Entity) []string {
	var out []string
	for _, m := range stateMarkers {
		if m.has(w, e) {
			out = append(out, m.name)
		}
	}
	return out
}
