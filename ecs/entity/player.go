package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
	"github.com/milk9111/ratchet/prefabs"
)

const PlayerPrefab = "player.yaml"

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, PlayerPrefab)
}

func NewPlayerAt(w *ecs.World, pos mgl32.Vec3) (ecs.Entity, error) {
	entity, err := BuildEntity(w, PlayerPrefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityPosition(w, entity, pos); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	return entity, nil
}

// ApplyPlayerTuning re-reads the player prefab and overwrites the live
// controller, weapon and body tuning. Runtime state such as velocity, jump
// counter and combo survive.
func ApplyPlayerTuning(w *ecs.World, player ecs.Entity) error {
	spec, err := prefabs.LoadEntityBuildSpec(PlayerPrefab)
	if err != nil {
		return fmt.Errorf("player tuning: %w", err)
	}

	if raw, ok := spec.Components["character_controller"]; ok {
		ctrlSpec, err := prefabs.DecodeComponentSpec[characterControllerSpec](raw)
		if err != nil {
			return fmt.Errorf("player tuning: decode character_controller: %w", err)
		}
		if ctrl, ok := ecs.Get(w, player, component.CharacterControllerComponent.Kind()); ok {
			*ctrl = controllerFromSpec(ctrlSpec)
		}
	}

	if raw, ok := spec.Components["weapon"]; ok {
		wSpec, err := prefabs.DecodeComponentSpec[weaponSpec](raw)
		if err != nil {
			return fmt.Errorf("player tuning: decode weapon: %w", err)
		}
		if weapon, ok := ecs.Get(w, player, component.WeaponComponent.Kind()); ok {
			next := weaponFromSpec(wSpec)
			next.LastShot = weapon.LastShot
			next.Shots = weapon.Shots
			next.SwingNumber = weapon.SwingNumber
			next.SwingTime = weapon.SwingTime
			*weapon = next
		}
	}

	if raw, ok := spec.Components["body"]; ok {
		bSpec, err := prefabs.DecodeComponentSpec[bodySpec](raw)
		if err != nil {
			return fmt.Errorf("player tuning: decode body: %w", err)
		}
		if body, ok := ecs.Get(w, player, component.BodyComponent.Kind()); ok {
			body.HalfExtents = bSpec.HalfExtents.VecOr(body.HalfExtents)
			if bSpec.GravityScale > 0 {
				body.GravityScale = bSpec.GravityScale
			}
		}
	}
	return nil
}
