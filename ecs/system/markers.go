package system

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
)

const (
	stickDeadzone = 0.2
	gravity       = float32(9.81)
)

func has[T any](w *ecs.World, e ecs.Entity, h component.ComponentHandle[T]) bool {
	return ecs.Has(w, e, h.Kind())
}

// insert adds an empty marker unless e already has one.
func insert[T any](w *ecs.World, e ecs.Entity, h component.ComponentHandle[T]) {
	if ecs.Has(w, e, h.Kind()) {
		return
	}
	_ = ecs.Add(w, e, h.Kind(), new(T))
}

func remove[T any](w *ecs.World, e ecs.Entity, h component.ComponentHandle[T]) {
	ecs.Remove(w, e, h.Kind())
}

func sendMovement(w *ecs.World, e ecs.Entity, kind component.MovementActionKind, dir mgl32.Vec2) {
	w.Events().Push(ecs.Event{
		Type: ecs.EventMovement,
		Data: component.MovementAction{Entity: uint64(e), Kind: kind, Direction: dir},
	})
}

func playSound(w *ecs.World, name string) {
	w.Events().Push(ecs.Event{Type: ecs.EventSound, Data: component.SoundRequest{Name: name}})
}

func stopSound(w *ecs.World, name string) {
	w.Events().Push(ecs.Event{Type: ecs.EventSound, Data: component.SoundRequest{Name: name, Stop: true}})
}

func outsideDeadzone(stick mgl32.Vec2) bool {
	return math32.Abs(stick.X()) > stickDeadzone || math32.Abs(stick.Y()) > stickDeadzone
}

func horizontalSpeed(v mgl32.Vec3) float32 {
	return mgl32.Vec2{v.X(), v.Z()}.Len()
}
