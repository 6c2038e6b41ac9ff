package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
)

func TestApplyMovement(t *testing.T) {
	ctrl := component.CharacterController{
		Acceleration:      10,
		JumpImpulse:       11,
		DoubleJumpImpulse: 9,
		GlideFallSpeed:    1.5,
		GlideDrag:         0.5,
		SideflipSpeed:     9,
		SideflipImpulse:   10,
		LongjumpSpeed:     16,
		LongjumpImpulse:   7,
		LongjumpGravity:   1.8,
		HighjumpImpulse:   15,
		HighjumpFloat:     3,
		SwingLunge:        3,
	}
	clock := &ecs.Clock{Delta: 0.1, Elapsed: 2}

	tests := []struct {
		name      string
		kind      component.MovementActionKind
		dir       mgl32.Vec2
		velocity  mgl32.Vec3
		jumps     component.JumpCounter
		want      mgl32.Vec3
		wantJumps component.JumpCounter
		wantScale float32
	}{
		{name: "walk", kind: component.MoveWalk, dir: mgl32.Vec2{1, 0}, want: mgl32.Vec3{1, 0, 0}},
		{name: "walk along z", kind: component.MoveWalk, dir: mgl32.Vec2{0, -1}, velocity: mgl32.Vec3{0, -2, 0}, want: mgl32.Vec3{0, -2, -1}},
		{
			name: "jump", kind: component.MoveJump, velocity: mgl32.Vec3{1, -4, 0},
			want: mgl32.Vec3{1, 11, 0}, wantJumps: component.JumpCounter{Count: 1, JumpTime: 2},
		},
		{
			name: "double jump", kind: component.MoveDoubleJump, jumps: component.JumpCounter{Count: 1, JumpTime: 1.6},
			want: mgl32.Vec3{0, 9, 0}, wantJumps: component.JumpCounter{Count: 2, JumpTime: 2},
		},
		{name: "gliding", kind: component.MoveGliding, velocity: mgl32.Vec3{2, -5, 2}, want: mgl32.Vec3{1, -1.5, 1}},
		{
			name: "sideflip", kind: component.MoveSideflip, dir: mgl32.Vec2{0, 1}, velocity: mgl32.Vec3{3, 0, 3},
			jumps: component.JumpCounter{Count: 2}, want: mgl32.Vec3{0, 10, 9}, wantJumps: component.JumpCounter{Count: 2, JumpTime: 2},
		},
		{
			name: "longjump", kind: component.MoveLongjump, dir: mgl32.Vec2{0, -1},
			want: mgl32.Vec3{0, 7, -16}, wantScale: 1.8,
		},
		{name: "highjump launch", kind: component.MoveHighjump1, velocity: mgl32.Vec3{3, 0, 3}, want: mgl32.Vec3{0, 15, 0}},
		{name: "highjump float caps fall", kind: component.MoveHighjump2, velocity: mgl32.Vec3{0, -10, 0}, want: mgl32.Vec3{0, -3, 0}},
		{name: "highjump float keeps rise", kind: component.MoveHighjump2, velocity: mgl32.Vec3{0, 5, 0}, want: mgl32.Vec3{0, 5, 0}},
		{name: "swing lunge", kind: component.MoveSwing, dir: mgl32.Vec2{1, 0}, velocity: mgl32.Vec3{1, 0, 0}, want: mgl32.Vec3{4, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := &component.Body{Velocity: tt.velocity, GravityScale: 3}
			jumps := tt.jumps
			c := ctrl
			applyMovement(component.MovementAction{Kind: tt.kind, Direction: tt.dir}, body, &c, &jumps, clock)

			if !body.Velocity.ApproxEqualThreshold(tt.want, 1e-4) {
				t.Fatalf("velocity = %v, want %v", body.Velocity, tt.want)
			}
			wantJumps := tt.wantJumps
			if wantJumps == (component.JumpCounter{}) {
				wantJumps = tt.jumps
			}
			if jumps != wantJumps {
				t.Fatalf("jumps = %+v, want %+v", jumps, wantJumps)
			}
			wantScale := tt.wantScale
			if wantScale == 0 {
				wantScale = 3
			}
			if body.GravityScale != wantScale {
				t.Fatalf("gravity scale = %v, want %v", body.GravityScale, wantScale)
			}
		})
	}
}

func TestMovementSystemDampsAfterEvents(t *testing.T) {
	w := ecs.NewWorld()
	p := spawnTestPlayer(t, w)
	p.ctrl.Acceleration = 60
	p.ctrl.Damping = 0.5

	sendMovement(w, p.e, component.MoveWalk, mgl32.Vec2{1, 0})
	sendMovement(w, p.e, component.MoveJump, mgl32.Vec2{})
	w.Events().Push(ecs.Event{Type: ecs.EventMovement, Data: "bogus"})
	NewMovementSystem().Update(w)

	want := mgl32.Vec3{60 * ecs.DefaultDelta * 0.5, p.ctrl.JumpImpulse, 0}
	if !p.body.Velocity.ApproxEqualThreshold(want, 1e-4) {
		t.Fatalf("velocity = %v, want %v", p.body.Velocity, want)
	}
	if p.jumps.Count != 1 {
		t.Fatalf("jump count = %d, want 1", p.jumps.Count)
	}
	if w.Events().Len() != 0 {
		t.Fatalf("movement events should be drained, %d left", w.Events().Len())
	}
}
