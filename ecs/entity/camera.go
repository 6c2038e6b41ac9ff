package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
)

func NewCamera(w *ecs.World) (ecs.Entity, error) {
	camera, err := BuildEntity(w, "camera.yaml")
	if err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}
	if !ecs.Has(w, camera, component.CameraComponent.Kind()) {
		ecs.DestroyEntity(w, camera)
		return 0, fmt.Errorf("camera: prefab has no camera component")
	}
	return camera, nil
}

// NewCameraAt builds the camera and places it behind target at the orbit
// distance so the first frame does not swoop in from the origin.
func NewCameraAt(w *ecs.World, target mgl32.Vec3) (ecs.Entity, error) {
	camera, err := NewCamera(w)
	if err != nil {
		return 0, err
	}
	cam, _ := ecs.Get(w, camera, component.CameraComponent.Kind())
	pos := target.Add(mgl32.Vec3{cam.Distance, 0, 0})
	if err := SetEntityPosition(w, camera, pos); err != nil {
		return 0, fmt.Errorf("camera: override transform: %w", err)
	}
	return camera, nil
}
