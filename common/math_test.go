package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func approx(a, b float32) bool {
	return math32.Abs(a-b) < 1e-4
}

func TestGetAngle(t *testing.T) {
	cases := []struct {
		name     string
		cos, sin float32
		want     float32
	}{
		{"right", 1, 0, 0},
		{"up", 0, 1, HalfPi},
		{"left", -1, 0, math32.Pi},
		{"down", 0, -1, 3 * HalfPi},
		{"clamps_overshoot", 1.0000001, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := GetAngle(c.cos, c.sin); !approx(got, c.want) {
				t.Fatalf("GetAngle(%v, %v) = %v, want %v", c.cos, c.sin, got, c.want)
			}
		})
	}
}

func TestWrapDegrees(t *testing.T) {
	cases := []struct {
		in, want float32
	}{
		{0, 0},
		{190, -170},
		{-190, 170},
		{540, -180},
		{725, 5},
	}
	for _, c := range cases {
		if got := WrapDegrees(c.in); !approx(got, c.want) {
			t.Fatalf("WrapDegrees(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestQuatRotateYForward(t *testing.T) {
	// yaw a turns -Z toward (-sin a, 0, -cos a)
	for _, a := range []float32{0, 0.5, HalfPi, 2} {
		f := QuatRotateY(a).Rotate(mgl32.Vec3{0, 0, -1})
		if !approx(f.X(), -math32.Sin(a)) || !approx(f.Z(), -math32.Cos(a)) || !approx(f.Y(), 0) {
			t.Fatalf("yaw %v: forward %v", a, f)
		}
	}
}

func TestSlerpTowardTakesShortArc(t *testing.T) {
	from := QuatRotateY(0.1)
	to := QuatRotateY(-0.1).Scale(-1) // same rotation, opposite hemisphere
	mid := SlerpToward(from, to, 0.5)
	f := mid.Rotate(mgl32.Vec3{0, 0, -1})
	if !approx(f.X(), 0) {
		t.Fatalf("expected midpoint facing -Z, got %v", f)
	}
}

func TestHorizontal(t *testing.T) {
	if got := Horizontal(mgl32.Vec3{0, 5, 0}); got != (mgl32.Vec2{}) {
		t.Fatalf("vertical vector should project to zero, got %v", got)
	}
	got := Horizontal(mgl32.Vec3{3, 9, 4})
	if !approx(got.X(), 0.6) || !approx(got.Y(), 0.8) {
		t.Fatalf("unexpected projection %v", got)
	}
}
