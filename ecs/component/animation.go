package component

const (
	AnimIdle       = "idle"
	AnimWalk       = "walk"
	AnimCrouch     = "crouch"
	AnimLand       = "land"
	AnimFall       = "fall"
	AnimJump       = "jump"
	AnimDoubleJump = "double_jump"
	AnimSideflipL  = "sideflip_l"
	AnimSideflipR  = "sideflip_r"
	AnimLongjump   = "longjump"
	AnimHighjump   = "highjump"
	AnimGlide      = "glide"
	AnimSwing      = "swing"
)

// AnimationClip describes one clip of the player model. Duration is in
// seconds at speed 1.
type AnimationClip struct {
	Duration float32
	Loop     bool
	Speed    float32
}

// Animation is the playback state of an entity's clip set. Blend counts down
// the crossfade from Previous to Current.
type Animation struct {
	Clips    map[string]AnimationClip
	Current  string
	Previous string
	Elapsed  float32
	Speed    float32
	Blend    float32
	Finished bool
}

var AnimationComponent = NewComponent[Animation]()

// CurrentAnimation is the clip chosen by the selector this frame.
type CurrentAnimation struct {
	Name string
}

var CurrentAnimationComponent = NewComponent[CurrentAnimation]()
