package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
)

// InputSystem samples the gamepad, keyboard and mouse once per frame and
// writes the result to every Input component.
type InputSystem struct {
	cursorLocked bool
	lastCursor   mgl32.Vec2
	haveCursor   bool
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var in component.Input

	// Keyboard fallback.
	in.LeftStick = keyAxis(ebiten.KeyA, ebiten.KeyD, ebiten.KeyS, ebiten.KeyW)
	in.RightStick = keyAxis(ebiten.KeyArrowLeft, ebiten.KeyArrowRight, ebiten.KeyArrowDown, ebiten.KeyArrowUp)
	in.South = keyButton(ebiten.KeySpace)
	in.East = keyButton(ebiten.KeyF)
	in.West = keyButton(ebiten.KeyE)
	in.RightTrigger = orButton(keyButton(ebiten.KeyShiftLeft), keyButton(ebiten.KeyShiftRight))
	in.LeftTrigger = keyButton(ebiten.KeyQ)
	in.West = orButton(in.West, mouseButton(ebiten.MouseButtonMiddle))
	in.West = orButton(in.West, mouseButton(ebiten.MouseButtonLeft))

	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		id := ids[0]
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			// Standard layout reports up as negative.
			left := mgl32.Vec2{
				float32(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)),
				-float32(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)),
			}
			right := mgl32.Vec2{
				float32(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)),
				-float32(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)),
			}
			if outsideDeadzone(left) {
				in.LeftStick = left
			}
			if outsideDeadzone(right) {
				in.RightStick = right
			}
			in.South = orButton(in.South, padButton(id, ebiten.StandardGamepadButtonRightBottom))
			in.East = orButton(in.East, padButton(id, ebiten.StandardGamepadButtonRightRight))
			in.West = orButton(in.West, padButton(id, ebiten.StandardGamepadButtonRightLeft))
			in.RightTrigger = orButton(in.RightTrigger, padButton(id, ebiten.StandardGamepadButtonFrontBottomRight))
			in.LeftTrigger = orButton(in.LeftTrigger, padButton(id, ebiten.StandardGamepadButtonFrontBottomLeft))
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		i.cursorLocked = !i.cursorLocked
		if i.cursorLocked {
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		} else {
			ebiten.SetCursorMode(ebiten.CursorModeVisible)
		}
		i.haveCursor = false
	}
	in.CursorLocked = i.cursorLocked

	cx, cy := ebiten.CursorPosition()
	cursor := mgl32.Vec2{float32(cx), float32(cy)}
	if i.cursorLocked && i.haveCursor {
		in.MouseDelta = cursor.Sub(i.lastCursor)
	}
	i.lastCursor = cursor
	i.haveCursor = true

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		*input = in
	})
}

func keyAxis(negX, posX, negY, posY ebiten.Key) mgl32.Vec2 {
	var v mgl32.Vec2
	if ebiten.IsKeyPressed(negX) {
		v[0] -= 1
	}
	if ebiten.IsKeyPressed(posX) {
		v[0] += 1
	}
	if ebiten.IsKeyPressed(negY) {
		v[1] -= 1
	}
	if ebiten.IsKeyPressed(posY) {
		v[1] += 1
	}
	return v
}

func keyButton(k ebiten.Key) component.Button {
	return component.Button{Held: ebiten.IsKeyPressed(k), JustPressed: inpututil.IsKeyJustPressed(k)}
}

func mouseButton(b ebiten.MouseButton) component.Button {
	return component.Button{Held: ebiten.IsMouseButtonPressed(b), JustPressed: inpututil.IsMouseButtonJustPressed(b)}
}

func padButton(id ebiten.GamepadID, b ebiten.StandardGamepadButton) component.Button {
	return component.Button{
		Held:        ebiten.IsStandardGamepadButtonPressed(id, b),
		JustPressed: inpututil.IsStandardGamepadButtonJustPressed(id, b),
	}
}

func orButton(a, b component.Button) component.Button {
	return component.Button{Held: a.Held || b.Held, JustPressed: a.JustPressed || b.JustPressed}
}
