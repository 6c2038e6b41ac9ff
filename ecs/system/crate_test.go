package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestCrateBreaksIntoBolts(t *testing.T) {
	tests := []struct {
		name      string
		crate     component.Crate
		wantBolts int
		wantWarn  bool
	}{
		{name: "no script", crate: component.Crate{Bolts: 4, MaxHealth: 1}, wantBolts: 4},
		{name: "script base", crate: component.Crate{Bolts: 3, MaxHealth: 1, Script: "crate_bolts.tengo"}, wantBolts: 3},
		{name: "combo finisher", crate: component.Crate{Bolts: 3, MaxHealth: 1, LastCombo: 3, Script: "crate_bolts.tengo"}, wantBolts: 5},
		{name: "sturdy crate", crate: component.Crate{Bolts: 3, MaxHealth: 3, Script: "crate_bolts.tengo"}, wantBolts: 5},
		{name: "missing script falls back", crate: component.Crate{Bolts: 2, MaxHealth: 1, Script: "missing.tengo"}, wantBolts: 2, wantWarn: true},
		{name: "clamped", crate: component.Crate{Bolts: 100, MaxHealth: 1}, wantBolts: maxCrateBolts},
		{name: "negative", crate: component.Crate{Bolts: -3, MaxHealth: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := ecs.CreateEntity(w)
			tr := component.NewTransform(mgl32.Vec3{2, 1, 2})
			crate := tt.crate
			mustAdd(t, w, e, component.TransformComponent, &tr)
			mustAdd(t, w, e, component.CrateComponent, &crate)

			logger, hook := test.NewNullLogger()
			NewCrateSystem(logger).Update(w)

			if ecs.IsAlive(w, e) {
				t.Fatal("broken crate should be destroyed")
			}
			bolts := w.Query(component.BoltComponent.Kind())
			if len(bolts) != tt.wantBolts {
				t.Fatalf("bolts = %d, want %d", len(bolts), tt.wantBolts)
			}
			for _, b := range bolts {
				bt, _ := ecs.Get(w, b, component.TransformComponent.Kind())
				if r := bt.Position.Sub(tr.Position).Len(); !approx(r, boltRingRadius) {
					t.Fatalf("bolt at distance %v, want %v", r, boltRingRadius)
				}
			}
			warned := hook.LastEntry() != nil && hook.LastEntry().Level == logrus.WarnLevel
			if warned != tt.wantWarn {
				t.Fatalf("warned = %v, want %v (%v)", warned, tt.wantWarn, hook.AllEntries())
			}
			if sounds := soundRequests(w); len(sounds) != 1 || sounds[0].Name != "crate_break" {
				t.Fatalf("sounds = %+v", sounds)
			}
		})
	}
}

func TestCrateWithHealthStays(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	tr := component.NewTransform(mgl32.Vec3{})
	mustAdd(t, w, e, component.TransformComponent, &tr)
	mustAdd(t, w, e, component.CrateComponent, &component.Crate{Health: 1, Bolts: 3})

	logger, _ := test.NewNullLogger()
	NewCrateSystem(logger).Update(w)
	if !ecs.IsAlive(w, e) || len(w.Query(component.BoltComponent.Kind())) != 0 {
		t.Fatal("healthy crate should not break")
	}
}

func TestApplyDamage(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	crate := mustAdd(t, w, e, component.CrateComponent, &component.Crate{Health: 2})
	other := ecs.CreateEntity(w)

	if !applyDamage(w, e, 1, 2) || crate.Health != 1 || crate.LastCombo != 2 {
		t.Fatalf("first hit: %+v", *crate)
	}
	if !applyDamage(w, e, 1, 3) || crate.Health != 0 {
		t.Fatalf("second hit: %+v", *crate)
	}
	if applyDamage(w, e, 1, 0) {
		t.Fatal("a broken crate takes no more damage")
	}
	if applyDamage(w, other, 1, 0) {
		t.Fatal("only crates take damage")
	}
}

func TestCrateScriptCache(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := NewCrateSystem(logger)
	crate := &component.Crate{Bolts: 1, MaxHealth: 1, Script: "crate_bolts.tengo"}

	n, err := s.boltCount(crate)
	if err != nil || n != 1 {
		t.Fatalf("boltCount = %d, %v", n, err)
	}
	if len(s.scripts) != 1 {
		t.Fatalf("compiled scripts = %d, want 1", len(s.scripts))
	}
	crate.LastCombo = 3
	if n, _ := s.boltCount(crate); n != 3 {
		t.Fatalf("cached script should see new globals, got %d", n)
	}

	s.Invalidate()
	if len(s.scripts) != 0 {
		t.Fatal("invalidate should drop compiled scripts")
	}
}
