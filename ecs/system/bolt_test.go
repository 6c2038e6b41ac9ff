package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
)

func addTestBolt(t *testing.T, w *ecs.World, pos mgl32.Vec3, value int) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	tr := component.NewTransform(pos)
	mustAdd(t, w, e, component.TransformComponent, &tr)
	mustAdd(t, w, e, component.BoltComponent, &component.Bolt{
		Value:        value,
		HalfExtent:   0.2,
		BobAmplitude: 0.15,
		BobSpeed:     4,
		MagnetRadius: 2.5,
		MagnetSpeed:  8,
	})
	return e
}

func TestBoltSystem(t *testing.T) {
	w := ecs.NewWorld()
	p := spawnTestPlayer(t, w)
	bolts := mustAdd(t, w, p.e, component.BoltsComponent, &component.Bolts{})

	touching := addTestBolt(t, w, mgl32.Vec3{0, 0, 0.3}, 2)
	pulled := addTestBolt(t, w, mgl32.Vec3{0, 0, 2}, 1)
	far := addTestBolt(t, w, mgl32.Vec3{10, 1, 0}, 1)

	NewBoltSystem().Update(w)

	if ecs.IsAlive(w, touching) || bolts.Count != 2 {
		t.Fatalf("touching bolt should be collected, count %d", bolts.Count)
	}
	if sounds := soundRequests(w); len(sounds) != 1 || sounds[0].Name != "bolt" {
		t.Fatalf("sounds = %+v", sounds)
	}

	pt, _ := ecs.Get(w, pulled, component.TransformComponent.Kind())
	if want := 2 - 8*ecs.DefaultDelta; !approx(pt.Position.Z(), want) {
		t.Fatalf("magnet pull z = %v, want %v", pt.Position.Z(), want)
	}

	ft, _ := ecs.Get(w, far, component.TransformComponent.Kind())
	fb, _ := ecs.Get(w, far, component.BoltComponent.Kind())
	if !fb.Initialized || fb.BaseY != 1 {
		t.Fatalf("far bolt = %+v", *fb)
	}
	if y := ft.Position.Y(); y < 1-0.15 || y > 1+0.15 || ft.Position.X() != 10 {
		t.Fatalf("far bolt should only bob, at %v", ft.Position)
	}
}

func TestBoltBobsWithoutPlayer(t *testing.T) {
	w := ecs.NewWorld()
	e := addTestBolt(t, w, mgl32.Vec3{1, 2, 3}, 1)
	s := NewBoltSystem()
	for i := 0; i < 30; i++ {
		s.Update(w)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.Position.X() != 1 || tr.Position.Z() != 3 {
		t.Fatalf("bolt drifted to %v", tr.Position)
	}
	if y := tr.Position.Y(); y < 2-0.15 || y > 2+0.15 {
		t.Fatalf("bob out of range: %v", y)
	}
}
