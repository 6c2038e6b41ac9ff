package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/ratchet/ecs"
)

const (
	CratePrefab = "crate.yaml"
	BoltPrefab  = "bolt.yaml"
)

func NewCrateAt(w *ecs.World, pos mgl32.Vec3, prefab string) (ecs.Entity, error) {
	return spawnAt(w, pos, prefab, CratePrefab)
}

func NewBoltAt(w *ecs.World, pos mgl32.Vec3, prefab string) (ecs.Entity, error) {
	return spawnAt(w, pos, prefab, BoltPrefab)
}

func spawnAt(w *ecs.World, pos mgl32.Vec3, prefab, fallback string) (ecs.Entity, error) {
	if prefab == "" {
		prefab = fallback
	}
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityPosition(w, e, pos); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("%s: set position: %w", prefab, err)
	}
	return e, nil
}
