package system

import (
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
)

const (
	animTransition     = 0.15
	animJumpTransition = 0.08
)

// AnimationSystem picks the player's clip from its state markers, crossfades
// to it and advances playback. A finished one-shot clip clears the marker
// that selected it.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (s *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Clock().Delta

	ecs.ForEach2(w, component.AnimationComponent.Kind(), component.CurrentAnimationComponent.Kind(), func(e ecs.Entity, anim *component.Animation, cur *component.CurrentAnimation) {
		if has(w, e, component.PlayerTagComponent) {
			cur.Name = selectAnimation(w, e)
		}
		if cur.Name != "" && cur.Name != anim.Current {
			play(anim, cur.Name)
		}

		clip, ok := anim.Clips[anim.Current]
		if !ok {
			return
		}
		if anim.Finished && !clip.Loop {
			clearFinishedMarker(w, e, anim.Current)
		}
		advance(anim, clip, dt)
	})
}

// selectAnimation returns the clip for e's current markers. The first match
// in each list wins.
func selectAnimation(w *ecs.World, e ecs.Entity) string {
	if has(w, e, component.GroundedComponent) {
		switch {
		case has(w, e, component.SwingComponent):
			return component.AnimSwing
		case has(w, e, component.CrouchComponent):
			return component.AnimCrouch
		case has(w, e, component.WalkComponent):
			return component.AnimWalk
		case has(w, e, component.LandComponent):
			return component.AnimLand
		default:
			return component.AnimIdle
		}
	}
	switch {
	case has(w, e, component.SideflipLComponent):
		return component.AnimSideflipL
	case has(w, e, component.SideflipRComponent):
		return component.AnimSideflipR
	case has(w, e, component.LongjumpComponent):
		return component.AnimLongjump
	case has(w, e, component.HighjumpComponent):
		return component.AnimHighjump
	case has(w, e, component.JumpComponent):
		return component.AnimJump
	case has(w, e, component.DoubleJumpComponent):
		return component.AnimDoubleJump
	case has(w, e, component.GlideComponent):
		return component.AnimGlide
	default:
		return component.AnimFall
	}
}

func play(anim *component.Animation, name string) {
	anim.Previous = anim.Current
	anim.Current = name
	anim.Elapsed = 0
	anim.Finished = false
	anim.Blend = animTransition
	if name == component.AnimJump || name == component.AnimDoubleJump {
		anim.Blend = animJumpTransition
	}
	anim.Speed = 1
	if clip, ok := anim.Clips[name]; ok && clip.Speed > 0 {
		anim.Speed = clip.Speed
	}
}

func advance(anim *component.Animation, clip component.AnimationClip, dt float32) {
	if anim.Blend > 0 {
		anim.Blend = max(0, anim.Blend-dt)
	}
	anim.Elapsed += dt * anim.Speed
	if clip.Loop {
		for clip.Duration > 0 && anim.Elapsed >= clip.Duration {
			anim.Elapsed -= clip.Duration
		}
		return
	}
	if anim.Elapsed >= clip.Duration {
		anim.Elapsed = clip.Duration
		anim.Finished = true
	}
}

func clearFinishedMarker(w *ecs.World, e ecs.Entity, clip string) {
	switch clip {
	case component.AnimJump:
		remove(w, e, component.JumpComponent)
	case component.AnimDoubleJump:
		remove(w, e, component.DoubleJumpComponent)
	case component.AnimLand:
		remove(w, e, component.LandComponent)
	case component.AnimSideflipL:
		remove(w, e, component.SideflipLComponent)
	case component.AnimSideflipR:
		remove(w, e, component.SideflipRComponent)
	}
}
