package system

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/ratchet/common"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
)

func TestClipAxis(t *testing.T) {
	box := cube.Box(0, 0, 0, 1, 1, 1)
	tests := []struct {
		name  string
		other cube.BBox
		axis  int
		d     float32
		want  float32
	}{
		{name: "stops at wall", other: cube.Box(1.5, 0, 0, 2.5, 1, 1), axis: 0, d: 2, want: 0.5},
		{name: "short move is free", other: cube.Box(1.5, 0, 0, 2.5, 1, 1), axis: 0, d: 0.3, want: 0.3},
		{name: "touching blocks", other: cube.Box(1, 0, 0, 2, 1, 1), axis: 0, d: 0.5, want: 0},
		{name: "moving away", other: cube.Box(1.5, 0, 0, 2.5, 1, 1), axis: 0, d: -1, want: -1},
		{name: "negative direction", other: cube.Box(-2, 0, 0, -0.5, 1, 1), axis: 0, d: -1, want: -0.5},
		{name: "no overlap on y", other: cube.Box(1.5, 2, 0, 2.5, 3, 1), axis: 0, d: 2, want: 2},
		{name: "floor below", other: cube.Box(-5, -1, -5, 5, -0.25, 5), axis: 1, d: -1, want: -0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clipAxis(box, tt.other, tt.axis, tt.d); !approx(got, tt.want) {
				t.Fatalf("clipAxis = %v, want %v", got, tt.want)
			}
		})
	}
}

func addCollider(t *testing.T, w *ecs.World, box cube.BBox, normal mgl32.Vec3) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.StaticColliderComponent, &component.StaticCollider{Box: box, Normal: normal})
	return e
}

func TestPhysicsLandsOnGround(t *testing.T) {
	w := ecs.NewWorld()
	p := spawnTestPlayer(t, w)
	addCollider(t, w, cube.Box(-5, -1, -5, 5, 0, 5), mgl32.Vec3{})
	p.t.Position = mgl32.Vec3{0, 0.65, 0}
	p.body.GravityScale = 1
	p.body.Velocity = mgl32.Vec3{0, -5, 0}

	NewPhysicsSystem().Update(w)

	if !approx(p.t.Position.Y(), 0.6) {
		t.Fatalf("y = %v, want to rest at 0.6", p.t.Position.Y())
	}
	if p.body.Velocity.Y() != 0 {
		t.Fatalf("vertical velocity should be cleared, got %v", p.body.Velocity.Y())
	}
	sensor, _ := ecs.Get(w, p.e, component.GroundSensorComponent.Kind())
	if len(sensor.Hits) != 1 || sensor.Hits[0].Normal != common.Up {
		t.Fatalf("ground hits = %+v", sensor.Hits)
	}
}

func TestPhysicsSlidesAlongWall(t *testing.T) {
	w := ecs.NewWorld()
	p := spawnTestPlayer(t, w)
	addCollider(t, w, cube.Box(1, -1, -5, 2, 3, 5), mgl32.Vec3{})
	p.t.Position = mgl32.Vec3{0.5, 1, 0}
	p.body.GravityScale = 0
	p.body.Velocity = mgl32.Vec3{60, 0, 60}

	NewPhysicsSystem().Update(w)

	if !approx(p.t.Position.X(), 0.6) {
		t.Fatalf("x = %v, want to stop at the wall", p.t.Position.X())
	}
	if !approx(p.t.Position.Z(), 1) {
		t.Fatalf("z = %v, want the free axis to keep moving", p.t.Position.Z())
	}
	if p.body.Velocity.X() != 0 || p.body.Velocity.Z() != 60 {
		t.Fatalf("velocity = %v", p.body.Velocity)
	}
}

func TestPhysicsKillPlaneRespawns(t *testing.T) {
	w := ecs.NewWorld()
	p := spawnTestPlayer(t, w)
	level := ecs.CreateEntity(w)
	mustAdd(t, w, level, component.LevelComponent, &component.Level{Spawn: mgl32.Vec3{0, 5, 0}, KillY: -10})
	p.t.Position = mgl32.Vec3{3, -20, 3}
	p.body.Velocity = mgl32.Vec3{1, -30, 1}

	NewPhysicsSystem().Update(w)

	if p.t.Position != (mgl32.Vec3{0, 5, 0}) || p.body.Velocity != (mgl32.Vec3{}) {
		t.Fatalf("respawn: pos %v vel %v", p.t.Position, p.body.Velocity)
	}
	if !has(w, p.e, component.FallingComponent) {
		t.Fatal("respawned player should be falling")
	}
}

func TestPhysicsSkipsStaticBodies(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	tr := component.NewTransform(mgl32.Vec3{0, 3, 0})
	mustAdd(t, w, e, component.TransformComponent, &tr)
	mustAdd(t, w, e, component.BodyComponent, &component.Body{Static: true, GravityScale: 1, HalfExtents: mgl32.Vec3{1, 1, 1}})

	NewPhysicsSystem().Update(w)
	if tr.Position != (mgl32.Vec3{0, 3, 0}) {
		t.Fatalf("static body moved to %v", tr.Position)
	}
}

func TestTransformHierarchy(t *testing.T) {
	w := ecs.NewWorld()
	parent := ecs.CreateEntity(w)
	pt := component.NewTransform(mgl32.Vec3{1, 0, 0})
	pt.Rotation = common.QuatRotateY(common.HalfPi)
	mustAdd(t, w, parent, component.TransformComponent, &pt)

	child := ecs.CreateEntity(w)
	ct := component.NewTransform(mgl32.Vec3{})
	mustAdd(t, w, child, component.TransformComponent, &ct)
	mustAdd(t, w, child, component.ParentComponent, &component.Parent{Entity: uint64(parent), Offset: mgl32.Vec3{0, 0, -1}})

	s := NewTransformHierarchySystem()
	s.Update(w)
	if !ct.Position.ApproxEqualThreshold(mgl32.Vec3{0, 0, 0}, 1e-5) {
		t.Fatalf("child position = %v", ct.Position)
	}
	if !ct.Rotation.ApproxEqualThreshold(pt.Rotation, 1e-6) {
		t.Fatalf("child rotation = %v, want %v", ct.Rotation, pt.Rotation)
	}

	ecs.DestroyEntity(w, parent)
	s.Update(w)
	if ecs.IsAlive(w, child) {
		t.Fatal("orphaned child should be destroyed")
	}
}

func TestPhysicsSlidesOffSteepTops(t *testing.T) {
	tests := []struct {
		name   string
		normal mgl32.Vec3
		wantVX float32
	}{
		{name: "flat top holds still", normal: mgl32.Vec3{}},
		{name: "walkable slope holds still", normal: mgl32.Vec3{0.5, 0.87, 0}},
		{
			name:   "steep roof pushes off",
			normal: mgl32.Vec3{0.77, 0.64, 0},
			wantVX: mgl32.Vec3{0.77, 0.64, 0}.Normalize().X() * gravity * 3 * ecs.DefaultDelta,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			p := spawnTestPlayer(t, w)
			addCollider(t, w, cube.Box(-5, -1, -5, 5, 0, 5), tt.normal)
			p.t.Position = mgl32.Vec3{0, 0.6, 0}

			NewPhysicsSystem().Update(w)

			if !approx(p.t.Position.Y(), 0.6) {
				t.Fatalf("y = %v, the box should still hold the body up", p.t.Position.Y())
			}
			if !approx(p.body.Velocity.X(), tt.wantVX) || p.body.Velocity.Z() != 0 {
				t.Fatalf("velocity = %v, want x %v", p.body.Velocity, tt.wantVX)
			}
		})
	}
}
