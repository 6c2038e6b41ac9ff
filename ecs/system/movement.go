package system

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
)

// MovementSystem applies the frame's movement events to body velocities,
// then damps horizontal velocity.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	clock := w.Clock()

	for _, evt := range w.Events().DrainType(ecs.EventMovement) {
		action, ok := evt.Data.(component.MovementAction)
		if !ok {
			continue
		}
		e := ecs.Entity(action.Entity)
		body, ok := ecs.Get(w, e, component.BodyComponent.Kind())
		if !ok {
			continue
		}
		ctrl, ok := ecs.Get(w, e, component.CharacterControllerComponent.Kind())
		if !ok {
			continue
		}
		jumps, _ := ecs.Get(w, e, component.JumpCounterComponent.Kind())
		applyMovement(action, body, ctrl, jumps, clock)
	}

	ecs.ForEach2(w, component.CharacterControllerComponent.Kind(), component.BodyComponent.Kind(), func(_ ecs.Entity, ctrl *component.CharacterController, body *component.Body) {
		body.Velocity[0] *= ctrl.Damping
		body.Velocity[2] *= ctrl.Damping
	})
}

func applyMovement(action component.MovementAction, body *component.Body, ctrl *component.CharacterController, jumps *component.JumpCounter, clock *ecs.Clock) {
	v := &body.Velocity
	d := action.Direction
	now := clock.Elapsed

	switch action.Kind {
	case component.MoveWalk:
		scale := ctrl.Acceleration * clock.Delta
		v[0] += d.X() * scale
		v[2] += d.Y() * scale
	case component.MoveJump:
		v[1] = ctrl.JumpImpulse
		countJump(jumps, now)
	case component.MoveDoubleJump:
		v[1] = ctrl.DoubleJumpImpulse
		countJump(jumps, now)
	case component.MoveGliding:
		v[1] = -ctrl.GlideFallSpeed
		v[0] *= ctrl.GlideDrag
		v[2] *= ctrl.GlideDrag
	case component.MoveSideflip:
		setHorizontal(v, d.Mul(ctrl.SideflipSpeed))
		v[1] = ctrl.SideflipImpulse
		if jumps != nil {
			jumps.JumpTime = now
		}
	case component.MoveLongjump:
		setHorizontal(v, d.Mul(ctrl.LongjumpSpeed))
		v[1] = ctrl.LongjumpImpulse
		body.GravityScale = ctrl.LongjumpGravity
	case component.MoveHighjump1:
		setHorizontal(v, mgl32.Vec2{})
		v[1] = ctrl.HighjumpImpulse
	case component.MoveHighjump2:
		v[1] = math32.Max(v[1], -ctrl.HighjumpFloat)
	case component.MoveSwing:
		v[0] += d.X() * ctrl.SwingLunge
		v[2] += d.Y() * ctrl.SwingLunge
	}
}

func countJump(jumps *component.JumpCounter, now float32) {
	if jumps == nil {
		return
	}
	jumps.JumpTime = now
	jumps.Count++
}

func setHorizontal(v *mgl32.Vec3, h mgl32.Vec2) {
	v[0] = h.X()
	v[2] = h.Y()
}
