package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
)

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, h component.ComponentHandle[T], v *T) *T {
	t.Helper()
	if err := ecs.Add(w, e, h.Kind(), v); err != nil {
		t.Fatalf("add %T: %v", v, err)
	}
	return v
}

type testPlayer struct {
	e     ecs.Entity
	input *component.Input
	t     *component.Transform
	body  *component.Body
	ctrl  *component.CharacterController
	jumps *component.JumpCounter
	dir   *component.MoveDirection
	cam   *component.Camera
}

// spawnTestPlayer builds a player and a camera by hand so the tests do not
// depend on prefab tuning.
func spawnTestPlayer(t *testing.T, w *ecs.World) testPlayer {
	t.Helper()
	e := ecs.CreateEntity(w)
	tr := component.NewTransform(mgl32.Vec3{})
	p := testPlayer{e: e}
	mustAdd(t, w, e, component.PlayerTagComponent, &component.PlayerTag{})
	p.input = mustAdd(t, w, e, component.InputComponent, &component.Input{})
	p.t = mustAdd(t, w, e, component.TransformComponent, &tr)
	p.body = mustAdd(t, w, e, component.BodyComponent, &component.Body{
		HalfExtents:  mgl32.Vec3{0.4, 0.6, 0.4},
		GravityScale: 3,
	})
	p.ctrl = mustAdd(t, w, e, component.CharacterControllerComponent, &component.CharacterController{
		Acceleration:      65,
		Damping:           0.92,
		JumpImpulse:       11.2,
		DoubleJumpImpulse: 9,
		MaxSlopeAngle:     mgl32.DegToRad(45),
		GlideFallSpeed:    1.35,
		GlideDrag:         0.95,
		SideflipSpeed:     9,
		SideflipImpulse:   10,
		LongjumpSpeed:     16,
		LongjumpImpulse:   7,
		LongjumpGravity:   1.8,
		HighjumpImpulse:   15,
		HighjumpFloat:     3,
		SwingLunge:        3,
		BaseGravityScale:  3,
	})
	p.jumps = mustAdd(t, w, e, component.JumpCounterComponent, &component.JumpCounter{})
	p.dir = mustAdd(t, w, e, component.MoveDirectionComponent, &component.MoveDirection{})
	mustAdd(t, w, e, component.GroundSensorComponent, &component.GroundSensor{MaxDistance: 0.2})

	camEntity := ecs.CreateEntity(w)
	p.cam = mustAdd(t, w, camEntity, component.CameraComponent, &component.Camera{
		Distance:    6.5,
		Sensitivity: 3,
		PitchLimit:  mgl32.DegToRad(81),
		FOV:         70,
		Near:        0.1,
		Far:         200,
	})
	return p
}

func movementEvents(w *ecs.World) []component.MovementAction {
	var out []component.MovementAction
	for _, evt := range w.Events().DrainType(ecs.EventMovement) {
		if a, ok := evt.Data.(component.MovementAction); ok {
			out = append(out, a)
		}
	}
	return out
}

func movementKinds(actions []component.MovementAction) []component.MovementActionKind {
	out := make([]component.MovementActionKind, 0, len(actions))
	for _, a := range actions {
		out = append(out, a.Kind)
	}
	return out
}

func soundRequests(w *ecs.World) []component.SoundRequest {
	var out []component.SoundRequest
	for _, evt := range w.Events().DrainType(ecs.EventSound) {
		if r, ok := evt.Data.(component.SoundRequest); ok {
			out = append(out, r)
		}
	}
	return out
}

func approx(a, b float32) bool {
	return mgl32.FloatEqualThreshold(a, b, 1e-4)
}
