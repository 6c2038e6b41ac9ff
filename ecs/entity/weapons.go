package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
)

// NewBullet spawns a bullet at pos flying along dir.
func NewBullet(w *ecs.World, pos, dir mgl32.Vec3, now float32) (ecs.Entity, error) {
	e, err := BuildEntity(w, "bullet.yaml")
	if err != nil {
		return 0, fmt.Errorf("bullet: %w", err)
	}
	if err := SetEntityPosition(w, e, pos); err != nil {
		return 0, fmt.Errorf("bullet: set position: %w", err)
	}
	b, ok := ecs.Get(w, e, component.BulletComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("bullet: prefab has no bullet component")
	}
	if dir.Len() > 0 {
		b.Direction = dir.Normalize()
	}
	b.ShootTime = now
	return e, nil
}

// NewHitbox spawns the wrench hitbox pinned in front of owner.
func NewHitbox(w *ecs.World, owner ecs.Entity, combo int) (ecs.Entity, error) {
	e, err := buildEntity(w, "hitbox.yaml", &buildContext{PrefabPath: "hitbox.yaml", Parent: owner})
	if err != nil {
		return 0, fmt.Errorf("hitbox: %w", err)
	}
	hb, ok := ecs.Get(w, e, component.HitboxComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("hitbox: prefab has no hitbox component")
	}
	hb.Combo = combo
	return e, nil
}

// NewWeaponModels attaches the gun and wrench models to owner.
func NewWeaponModels(w *ecs.World, owner ecs.Entity) (gun, wrench ecs.Entity, err error) {
	gun, err = buildEntity(w, "gun.yaml", &buildContext{PrefabPath: "gun.yaml", Parent: owner})
	if err != nil {
		return 0, 0, fmt.Errorf("gun: %w", err)
	}
	wrench, err = buildEntity(w, "wrench.yaml", &buildContext{PrefabPath: "wrench.yaml", Parent: owner})
	if err != nil {
		ecs.DestroyEntity(w, gun)
		return 0, 0, fmt.Errorf("wrench: %w", err)
	}
	return gun, wrench, nil
}
