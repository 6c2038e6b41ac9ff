package system

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/ratchet/common"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
)

const (
	walkTurnRate   = 0.07
	crouchTurnRate = 0.007
	strafeTurnRate = 0.13

	// Minimum angle in degrees between stick and facing that turns a crouch
	// jump into a sideflip instead of a longjump.
	sideflipAngle = 25
	// cos(65deg): how far sideways the stick must point for a strafe sideflip.
	strafeSideflipX = 0.4226

	specialJumpSpeed  = 2
	longjumpDuration  = 1.45
	highjumpDuration  = 1.42
	highjumpFloatTime = 0.7
	highjumpGravity   = 1.5
	doubleJumpWindow  = 0.65
)

// PlayerActionSystem turns player Input into movement events and state
// markers. The steps run in a fixed order and each one sees the markers the
// previous steps left.
type PlayerActionSystem struct {
	glideAudio bool
}

func NewPlayerActionSystem() *PlayerActionSystem {
	return &PlayerActionSystem{}
}

// Reset forgets per-world state. Call it when the world is replaced.
func (s *PlayerActionSystem) Reset() {
	s.glideAudio = false
}

type playerRefs struct {
	e     ecs.Entity
	input *component.Input
	t     *component.Transform
	body  *component.Body
	ctrl  *component.CharacterController
	jumps *component.JumpCounter
	dir   *component.MoveDirection
	cam   *component.Camera
}

func lookupPlayer(w *ecs.World) (playerRefs, bool) {
	var p playerRefs
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return p, false
	}
	p.e = e
	if p.input, ok = ecs.Get(w, e, component.InputComponent.Kind()); !ok {
		return p, false
	}
	if p.t, ok = ecs.Get(w, e, component.TransformComponent.Kind()); !ok {
		return p, false
	}
	if p.body, ok = ecs.Get(w, e, component.BodyComponent.Kind()); !ok {
		return p, false
	}
	if p.ctrl, ok = ecs.Get(w, e, component.CharacterControllerComponent.Kind()); !ok {
		return p, false
	}
	if p.jumps, ok = ecs.Get(w, e, component.JumpCounterComponent.Kind()); !ok {
		return p, false
	}
	if p.dir, ok = ecs.Get(w, e, component.MoveDirectionComponent.Kind()); !ok {
		return p, false
	}
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return p, false
	}
	p.cam, ok = ecs.Get(w, camEntity, component.CameraComponent.Kind())
	return p, ok
}

func (s *PlayerActionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	p, ok := lookupPlayer(w)
	if !ok {
		return
	}
	now := w.Clock().Elapsed

	s.crouch(w, p)
	s.walk(w, p)
	s.strafe(w, p)
	s.sideflip(w, p)
	s.longjump(w, p, now)
	s.highjump(w, p, now)
	s.jump(w, p)
	s.doubleJump(w, p, now)
	s.glide(w, p)
}

func (s *PlayerActionSystem) crouch(w *ecs.World, p playerRefs) {
	if p.input.RightTrigger.Held && has(w, p.e, component.GroundedComponent) {
		insert(w, p.e, component.CrouchComponent)
		remove(w, p.e, component.LandComponent)
		return
	}
	remove(w, p.e, component.CrouchComponent)
}

func (s *PlayerActionSystem) walk(w *ecs.World, p playerRefs) {
	if has(w, p.e, component.SideflipLComponent) || has(w, p.e, component.SideflipRComponent) || has(w, p.e, component.LongjumpComponent) {
		return
	}
	if has(w, p.e, component.StrafeComponent) && !has(w, p.e, component.HighjumpComponent) {
		return
	}
	crouching := has(w, p.e, component.CrouchComponent)
	grounded := has(w, p.e, component.GroundedComponent)

	stick := p.input.LeftStick
	if outsideDeadzone(stick) {
		n := stick.Normalize()
		target := common.QuatRotateY(common.GetAngle(n.X(), n.Y()) - p.cam.Yaw)
		rate := float32(walkTurnRate)
		if crouching {
			rate = crouchTurnRate
		}
		p.t.Rotation = common.SlerpToward(p.t.Rotation, target, rate)
		if !crouching {
			p.dir.Value = common.Horizontal(p.t.Forward())
		}
		insert(w, p.e, component.WalkComponent)
		remove(w, p.e, component.LandComponent)
		remove(w, p.e, component.IdleComponent)
	} else {
		p.dir.Value = mgl32.Vec2{}
		insert(w, p.e, component.IdleComponent)
		remove(w, p.e, component.WalkComponent)
	}
	if grounded {
		remove(w, p.e, component.DoubleJumpComponent)
	}

	if !crouching {
		sendMovement(w, p.e, component.MoveWalk, p.dir.Value)
	}
}

func (s *PlayerActionSystem) strafe(w *ecs.World, p playerRefs) {
	if has(w, p.e, component.CrouchComponent) ||
		has(w, p.e, component.SideflipLComponent) || has(w, p.e, component.SideflipRComponent) ||
		has(w, p.e, component.HighjumpComponent) || has(w, p.e, component.LongjumpComponent) ||
		has(w, p.e, component.GlideComponent) {
		return
	}
	if !p.input.LeftTrigger.Held {
		remove(w, p.e, component.StrafeComponent)
		return
	}

	target := common.QuatRotateY(-p.cam.Yaw + common.HalfPi)
	p.t.Rotation = common.SlerpToward(p.t.Rotation, target, strafeTurnRate)

	stick := p.input.LeftStick
	if outsideDeadzone(stick) {
		n := stick.Normalize()
		a := -p.cam.Yaw + common.GetAngle(n.X(), n.Y())
		p.dir.Value = mgl32.Vec2{-math32.Sin(a), -math32.Cos(a)}
		insert(w, p.e, component.StrafeComponent)
		insert(w, p.e, component.WalkComponent)
		remove(w, p.e, component.LandComponent)
		remove(w, p.e, component.IdleComponent)
		if has(w, p.e, component.GroundedComponent) {
			remove(w, p.e, component.DoubleJumpComponent)
		}
	} else {
		p.dir.Value = mgl32.Vec2{}
		insert(w, p.e, component.IdleComponent)
		remove(w, p.e, component.WalkComponent)
	}
	sendMovement(w, p.e, component.MoveWalk, p.dir.Value)
}

// facingDelta is the signed angle in degrees, wrapped to [-180, 180), from
// the stick direction to the player's heading. It is positive when the stick
// points to the right of the heading. A player standing still uses its
// facing as the heading.
func facingDelta(p playerRefs) float32 {
	n := p.input.LeftStick.Normalize()
	heading := p.dir.Value
	if heading.Len() == 0 {
		heading = common.Horizontal(p.t.Forward())
	}
	controllerAngle := common.Deg(common.GetAngle(n.X(), n.Y()))
	playerAngle := common.Deg(common.GetAngle(-heading.X(), heading.Y())) + 90 + common.Deg(p.cam.Yaw)
	return common.WrapDegrees(playerAngle - controllerAngle)
}

func (s *PlayerActionSystem) sideflip(w *ecs.World, p playerRefs) {
	if !outsideDeadzone(p.input.LeftStick) || !p.input.South.JustPressed {
		return
	}
	strafing := has(w, p.e, component.StrafeComponent)
	crouching := has(w, p.e, component.CrouchComponent)
	grounded := has(w, p.e, component.GroundedComponent)

	right := false
	switch {
	case !strafing && crouching:
		delta := facingDelta(p)
		switch {
		case delta > sideflipAngle:
			right = true
		case delta < -sideflipAngle:
		default:
			return
		}
	case strafing && grounded:
		x := p.input.LeftStick.Normalize().X()
		switch {
		case x > strafeSideflipX:
			right = true
		case x < -strafeSideflipX:
		default:
			return
		}
		p.body.Velocity[0], p.body.Velocity[2] = 0, 0
	default:
		return
	}

	var dir mgl32.Vec2
	if right {
		insert(w, p.e, component.SideflipRComponent)
		dir = common.Horizontal(p.t.Right())
	} else {
		insert(w, p.e, component.SideflipLComponent)
		dir = common.Horizontal(p.t.Left())
	}
	p.dir.Value = dir
	sendMovement(w, p.e, component.MoveSideflip, dir)
	p.jumps.Count = 2
	playSound(w, "jump2")
}

func (s *PlayerActionSystem) longjump(w *ecs.World, p playerRefs, now float32) {
	if has(w, p.e, component.HighjumpComponent) {
		return
	}
	if has(w, p.e, component.LongjumpComponent) {
		p.dir.Value = common.Horizontal(p.t.Forward())
		if now > p.jumps.JumpTime+longjumpDuration {
			remove(w, p.e, component.LongjumpComponent)
		}
		return
	}
	p.body.GravityScale = p.ctrl.BaseGravityScale

	if !has(w, p.e, component.CrouchComponent) || !p.input.South.JustPressed {
		return
	}
	if has(w, p.e, component.SideflipLComponent) || has(w, p.e, component.SideflipRComponent) {
		return
	}
	if !outsideDeadzone(p.input.LeftStick) || horizontalSpeed(p.body.Velocity) <= specialJumpSpeed {
		return
	}
	if d := facingDelta(p); d > sideflipAngle || d < -sideflipAngle {
		return
	}

	insert(w, p.e, component.LongjumpComponent)
	p.dir.Value = common.Horizontal(p.t.Forward())
	sendMovement(w, p.e, component.MoveLongjump, p.dir.Value)
	p.jumps.Count = 2
	p.jumps.JumpTime = now
	playSound(w, "glide")
}

func (s *PlayerActionSystem) highjump(w *ecs.World, p playerRefs, now float32) {
	if has(w, p.e, component.LongjumpComponent) || has(w, p.e, component.SideflipLComponent) || has(w, p.e, component.SideflipRComponent) {
		return
	}
	if has(w, p.e, component.HighjumpComponent) {
		elapsed := now - p.jumps.JumpTime
		if elapsed > highjumpDuration {
			remove(w, p.e, component.HighjumpComponent)
			p.body.GravityScale = p.ctrl.BaseGravityScale
			return
		}
		if elapsed > highjumpFloatTime {
			sendMovement(w, p.e, component.MoveHighjump2, mgl32.Vec2{})
			p.body.GravityScale = highjumpGravity
		}
		return
	}
	p.body.GravityScale = p.ctrl.BaseGravityScale

	if !has(w, p.e, component.CrouchComponent) || !p.input.South.JustPressed {
		return
	}
	if horizontalSpeed(p.body.Velocity) >= specialJumpSpeed {
		return
	}

	insert(w, p.e, component.HighjumpComponent)
	sendMovement(w, p.e, component.MoveHighjump1, mgl32.Vec2{})
	p.jumps.Count = 2
	p.jumps.JumpTime = now
	playSound(w, "glide")
}

func (s *PlayerActionSystem) jump(w *ecs.World, p playerRefs) {
	if has(w, p.e, component.CrouchComponent) || !p.input.South.JustPressed {
		return
	}
	if p.jumps.Count >= 1 || !has(w, p.e, component.GroundedComponent) {
		return
	}
	insert(w, p.e, component.JumpComponent)
	remove(w, p.e, component.WalkComponent)
	sendMovement(w, p.e, component.MoveJump, mgl32.Vec2{})
	playSound(w, "jump")
}

func (s *PlayerActionSystem) doubleJump(w *ecs.World, p playerRefs, now float32) {
	if !p.input.South.JustPressed {
		return
	}
	if p.jumps.Count <= 0 || p.jumps.Count >= 2 || p.jumps.JumpTime+doubleJumpWindow <= now {
		return
	}
	remove(w, p.e, component.JumpComponent)
	insert(w, p.e, component.DoubleJumpComponent)
	sendMovement(w, p.e, component.MoveDoubleJump, mgl32.Vec2{})
	playSound(w, "jump2")
}

func (s *PlayerActionSystem) glide(w *ecs.World, p playerRefs) {
	blocked := has(w, p.e, component.JumpComponent) || has(w, p.e, component.DoubleJumpComponent) ||
		has(w, p.e, component.SideflipLComponent) || has(w, p.e, component.SideflipRComponent) ||
		has(w, p.e, component.GroundedComponent) ||
		has(w, p.e, component.LongjumpComponent) || has(w, p.e, component.HighjumpComponent)

	if !blocked {
		if p.input.South.Held {
			if !has(w, p.e, component.GlideComponent) {
				insert(w, p.e, component.GlideComponent)
				if !s.glideAudio {
					playSound(w, "glide_loop")
					s.glideAudio = true
				}
			}
			sendMovement(w, p.e, component.MoveGliding, mgl32.Vec2{})
		} else {
			remove(w, p.e, component.GlideComponent)
		}
	}

	if s.glideAudio && !has(w, p.e, component.GlideComponent) {
		stopSound(w, "glide_loop")
		s.glideAudio = false
	}
}
