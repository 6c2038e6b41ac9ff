package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	BaseWidth  = 1280
	BaseHeight = 720

	TwoPi  = 2 * math32.Pi
	HalfPi = math32.Pi / 2
)

var Up = mgl32.Vec3{0, 1, 0}

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// GetAngle turns a unit vector given as (cos, sin) into an angle in [0, 2π).
func GetAngle(cos, sin float32) float32 {
	a := math32.Acos(mgl32.Clamp(cos, -1, 1))
	if sin < 0 {
		a = -a
	}
	if a < 0 {
		a += TwoPi
	}
	return a
}

// WrapDegrees maps d into [-180, 180).
func WrapDegrees(d float32) float32 {
	d = math32.Mod(d+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}

func Deg(rad float32) float32 {
	return mgl32.RadToDeg(rad)
}

func Rad(deg float32) float32 {
	return mgl32.DegToRad(deg)
}

func QuatRotateY(angle float32) mgl32.Quat {
	return mgl32.QuatRotate(angle, Up)
}

// SlerpToward moves from toward to by fraction t along the shortest arc.
func SlerpToward(from, to mgl32.Quat, t float32) mgl32.Quat {
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	return mgl32.QuatSlerp(from, to, t).Normalize()
}

// Horizontal projects v onto the XZ plane and normalizes it. A vertical or
// zero v yields the zero vector.
func Horizontal(v mgl32.Vec3) mgl32.Vec2 {
	h := mgl32.Vec2{v.X(), v.Z()}
	if h.Len() < 1e-6 {
		return mgl32.Vec2{}
	}
	return h.Normalize()
}
