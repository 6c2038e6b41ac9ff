package component

import "github.com/go-gl/mathgl/mgl32"

type Button struct {
	Held        bool
	JustPressed bool
}

// Input is a virtual gamepad. Stick Y is positive when pushed up.
type Input struct {
	LeftStick  mgl32.Vec2
	RightStick mgl32.Vec2

	South        Button // jump, glide
	East         Button // shoot
	West         Button // swing
	RightTrigger Button // crouch
	LeftTrigger  Button // strafe

	MouseDelta   mgl32.Vec2
	CursorLocked bool
}

var InputComponent = NewComponent[Input]()
