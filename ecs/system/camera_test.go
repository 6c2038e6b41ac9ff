package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/ratchet/common"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
)

func TestOrbit(t *testing.T) {
	limit := mgl32.DegToRad(81)
	tests := []struct {
		name      string
		cam       component.Camera
		in        component.Input
		wantYaw   float32
		wantPitch float32
	}{
		{
			name:    "stick yaw",
			cam:     component.Camera{Sensitivity: 3, PitchLimit: limit},
			in:      component.Input{RightStick: mgl32.Vec2{1, 0}},
			wantYaw: 0.05,
		},
		{
			name:      "mouse adds to stick",
			cam:       component.Camera{Sensitivity: 3, MouseSensitivity: 0.01, PitchLimit: limit},
			in:        component.Input{RightStick: mgl32.Vec2{0, 1}, MouseDelta: mgl32.Vec2{10, 5}},
			wantYaw:   0.1,
			wantPitch: 0.1,
		},
		{
			name:      "pitch stops at limit",
			cam:       component.Camera{Sensitivity: 3, PitchLimit: limit, Pitch: limit - 0.01},
			in:        component.Input{RightStick: mgl32.Vec2{0, 1}},
			wantPitch: limit - 0.01,
		},
		{
			name:      "pitch can leave the limit",
			cam:       component.Camera{Sensitivity: 3, PitchLimit: limit, Pitch: limit - 0.01},
			in:        component.Input{RightStick: mgl32.Vec2{0, -1}},
			wantPitch: limit - 0.06,
		},
		{
			name:    "yaw resets past a full turn",
			cam:     component.Camera{Sensitivity: 3, PitchLimit: limit, Yaw: common.TwoPi - 0.01},
			in:      component.Input{RightStick: mgl32.Vec2{1, 0}},
			wantYaw: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := tt.cam
			orbit(&cam, tt.in, ecs.DefaultDelta)
			if !approx(cam.Yaw, tt.wantYaw) || !approx(cam.Pitch, tt.wantPitch) {
				t.Fatalf("yaw %v pitch %v, want %v %v", cam.Yaw, cam.Pitch, tt.wantYaw, tt.wantPitch)
			}
		})
	}
}

func TestOrbitPosition(t *testing.T) {
	cam := &component.Camera{Distance: 5}
	if got := orbitPosition(cam, mgl32.Vec3{1, 2, 3}); !got.ApproxEqualThreshold(mgl32.Vec3{6, 2, 3}, 1e-5) {
		t.Fatalf("yaw 0 = %v", got)
	}
	cam.Yaw = common.HalfPi
	cam.Pitch = common.HalfPi
	if got := orbitPosition(cam, mgl32.Vec3{}); !got.ApproxEqualThreshold(mgl32.Vec3{0, 5, 5}, 1e-4) {
		t.Fatalf("yaw 90 pitch 90 = %v", got)
	}
}

func TestCameraSystemLooksAtTarget(t *testing.T) {
	w := ecs.NewWorld()
	p := spawnTestPlayer(t, w)
	mustAdd(t, w, p.e, component.CameraTargetComponent, &component.CameraTarget{})
	p.t.Position = mgl32.Vec3{0, 1, 0}
	camEntity, _ := ecs.First(w, component.CameraComponent.Kind())
	ct := component.NewTransform(mgl32.Vec3{})
	mustAdd(t, w, camEntity, component.TransformComponent, &ct)

	NewCameraSystem().Update(w)

	want := mgl32.Vec3{p.cam.Distance, 1, 0}
	if !ct.Position.ApproxEqualThreshold(want, 1e-4) {
		t.Fatalf("camera at %v, want %v", ct.Position, want)
	}
	if !ct.Forward().ApproxEqualThreshold(mgl32.Vec3{-1, 0, 0}, 1e-4) {
		t.Fatalf("camera forward = %v, want -X", ct.Forward())
	}
}

func TestLookAt(t *testing.T) {
	tests := []struct {
		name   string
		eye    mgl32.Vec3
		center mgl32.Vec3
	}{
		{name: "down -Z", eye: mgl32.Vec3{0, 0, 5}, center: mgl32.Vec3{}},
		{name: "along +X", eye: mgl32.Vec3{-3, 0, 0}, center: mgl32.Vec3{}},
		{name: "from above", eye: mgl32.Vec3{0, 5, 5}, center: mgl32.Vec3{}},
		{name: "diagonal", eye: mgl32.Vec3{2, -1, -4}, center: mgl32.Vec3{-1, 3, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := tt.center.Sub(tt.eye).Normalize()
			tr := component.Transform{Rotation: lookAt(tt.eye, tt.center)}
			if got := tr.Forward(); !got.ApproxEqualThreshold(want, 1e-4) {
				t.Fatalf("forward = %v, want %v", got, want)
			}
			if tr.Right().Y() > 1e-4 || tr.Right().Y() < -1e-4 {
				t.Fatalf("camera should not roll, right = %v", tr.Right())
			}
		})
	}
}
