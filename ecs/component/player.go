package component

import "github.com/go-gl/mathgl/mgl32"

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// CharacterController holds movement tuning. MaxSlopeAngle is in radians.
type CharacterController struct {
	Acceleration      float32
	Damping           float32
	JumpImpulse       float32
	DoubleJumpImpulse float32
	MaxSlopeAngle     float32

	GlideFallSpeed  float32
	GlideDrag       float32
	SideflipSpeed   float32
	SideflipImpulse float32
	LongjumpSpeed   float32
	LongjumpImpulse float32
	LongjumpGravity float32
	HighjumpImpulse float32
	HighjumpFloat   float32
	SwingLunge      float32

	// Gravity scale restored when no special jump is active.
	BaseGravityScale float32
}

var CharacterControllerComponent = NewComponent[CharacterController]()

// JumpCounter counts jumps since the last landing. JumpTime is the clock time
// of the latest jump, in seconds.
type JumpCounter struct {
	Count    int
	JumpTime float32
}

var JumpCounterComponent = NewComponent[JumpCounter]()

// MoveDirection is the horizontal heading used by walk and special jumps.
// X maps to world X and Y maps to world Z.
type MoveDirection struct {
	Value mgl32.Vec2
}

var MoveDirectionComponent = NewComponent[MoveDirection]()

type Bolts struct {
	Count int
}

var BoltsComponent = NewComponent[Bolts]()
