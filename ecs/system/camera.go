package system

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/ratchet/common"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
)

// CameraSystem orbits each camera around the CameraTarget entity, steered by
// the right stick and the locked mouse.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	target, ok := ecs.First(w, component.CameraTargetComponent.Kind())
	if !ok {
		return
	}
	targetTransform, ok := ecs.Get(w, target, component.TransformComponent.Kind())
	if !ok {
		return
	}

	var in component.Input
	if ie, ok := ecs.First(w, component.InputComponent.Kind()); ok {
		if input, ok := ecs.Get(w, ie, component.InputComponent.Kind()); ok {
			in = *input
		}
	}
	dt := w.Clock().Delta

	ecs.ForEach2(w, component.CameraComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, cam *component.Camera, t *component.Transform) {
		orbit(cam, in, dt)
		t.Position = orbitPosition(cam, targetTransform.Position)
		t.Rotation = lookAt(t.Position, targetTransform.Position)
	})
}

func orbit(cam *component.Camera, in component.Input, dt float32) {
	dYaw := in.RightStick.X()*dt*cam.Sensitivity + in.MouseDelta.X()*cam.MouseSensitivity
	dPitch := in.RightStick.Y()*dt*cam.Sensitivity + in.MouseDelta.Y()*cam.MouseSensitivity

	cam.Yaw += dYaw
	if p := cam.Pitch + dPitch; p <= cam.PitchLimit && p >= -cam.PitchLimit {
		cam.Pitch = p
	}
	if math32.Abs(cam.Yaw) > common.TwoPi {
		cam.Yaw = 0
	}
}

// orbitPosition places the camera Distance away from target along yaw, with
// its height set by the sine of pitch.
func orbitPosition(cam *component.Camera, target mgl32.Vec3) mgl32.Vec3 {
	return target.Add(mgl32.Vec3{
		math32.Cos(cam.Yaw),
		math32.Sin(cam.Pitch),
		math32.Sin(cam.Yaw),
	}.Mul(cam.Distance))
}

// lookAt returns the orientation whose Forward points from eye to center,
// with no roll.
func lookAt(eye, center mgl32.Vec3) mgl32.Quat {
	dir := center.Sub(eye)
	if dir.Len() < 1e-6 {
		return mgl32.QuatIdent()
	}
	heading := math32.Atan2(-dir.X(), -dir.Z())
	tilt := math32.Atan2(dir.Y(), mgl32.Vec2{dir.X(), dir.Z()}.Len())
	return common.QuatRotateY(heading).Mul(mgl32.QuatRotate(tilt, mgl32.Vec3{1, 0, 0}))
}
