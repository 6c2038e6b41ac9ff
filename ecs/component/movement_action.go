package component

import "github.com/go-gl/mathgl/mgl32"

type MovementActionKind int

const (
	MoveWalk MovementActionKind = iota
	MoveJump
	MoveDoubleJump
	MoveGliding
	MoveSideflip
	MoveLongjump
	MoveHighjump1
	MoveHighjump2
	MoveSwing
)

var movementActionNames = [...]string{
	MoveWalk:       "walk",
	MoveJump:       "jump",
	MoveDoubleJump: "double_jump",
	MoveGliding:    "gliding",
	MoveSideflip:   "sideflip",
	MoveLongjump:   "longjump",
	MoveHighjump1:  "highjump1",
	MoveHighjump2:  "highjump2",
	MoveSwing:      "swing",
}

func (k MovementActionKind) String() string {
	if k < 0 || int(k) >= len(movementActionNames) {
		return "unknown"
	}
	return movementActionNames[k]
}

// MovementAction is queued by the input chain and applied by the movement
// system in the same frame. Direction is horizontal (X, Z).
type MovementAction struct {
	Entity    uint64
	Kind      MovementActionKind
	Direction mgl32.Vec2
}

// SoundRequest asks the audio system to start or stop a named cue.
type SoundRequest struct {
	Name string
	Stop bool
}
