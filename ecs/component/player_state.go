package component

// Player movement states are empty marker components. Several may be present
// at once (Grounded with Walk, Falling with Glide).

type Idle struct{}
type Walk struct{}
type Strafe struct{}
type Crouch struct{}
type SideflipL struct{}
type SideflipR struct{}
type Longjump struct{}
type Highjump struct{}
type Jump struct{}
type DoubleJump struct{}
type Glide struct{}
type Grounded struct{}
type Falling struct{}
type Land struct{}
type Swing struct{}

var (
	IdleComponent       = NewComponent[Idle]()
	WalkComponent       = NewComponent[Walk]()
	StrafeComponent     = NewComponent[Strafe]()
	CrouchComponent     = NewComponent[Crouch]()
	SideflipLComponent  = NewComponent[SideflipL]()
	SideflipRComponent  = NewComponent[SideflipR]()
	LongjumpComponent   = NewComponent[Longjump]()
	HighjumpComponent   = NewComponent[Highjump]()
	JumpComponent       = NewComponent[Jump]()
	DoubleJumpComponent = NewComponent[DoubleJump]()
	GlideComponent      = NewComponent[Glide]()
	GroundedComponent   = NewComponent[Grounded]()
	FallingComponent    = NewComponent[Falling]()
	LandComponent       = NewComponent[Land]()
	SwingComponent      = NewComponent[Swing]()
)
