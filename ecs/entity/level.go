package entity

import (
	"fmt"
	"image/color"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/ratchet/common"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
	"github.com/milk9111/ratchet/levels"
)

var levelGeometryColor = color.NRGBA{R: 0x9a, G: 0x9a, B: 0xa4, A: 0xff}

// SpawnedLevel holds the entities SpawnLevel creates that the game refers to.
type SpawnedLevel struct {
	Level  ecs.Entity
	Player ecs.Entity
	Camera ecs.Entity
	Gun    ecs.Entity
	Wrench ecs.Entity
}

// SpawnLevel builds the level geometry, crates, bolts, player, camera and
// music into w.
func SpawnLevel(w *ecs.World, lvl *levels.Level) (SpawnedLevel, error) {
	var out SpawnedLevel
	if w == nil || lvl == nil {
		return out, fmt.Errorf("spawn level: world and level are required")
	}

	levelEntity := ecs.CreateEntity(w)
	if err := ecs.Add(w, levelEntity, component.LevelComponent.Kind(), &component.Level{
		Name:  lvl.Name,
		Spawn: lvl.SpawnPoint(),
		KillY: lvl.KillY,
	}); err != nil {
		return out, fmt.Errorf("spawn level: add level: %w", err)
	}
	if lvl.Music.File != "" {
		if err := ecs.Add(w, levelEntity, component.MusicComponent.Kind(), &component.Music{
			File:   lvl.Music.File,
			Volume: lvl.Music.Volume,
		}); err != nil {
			return out, fmt.Errorf("spawn level: add music: %w", err)
		}
	}
	out.Level = levelEntity

	for i, b := range lvl.Boxes {
		if err := addLevelBox(w, b); err != nil {
			return out, fmt.Errorf("spawn level: box %d: %w", i, err)
		}
	}
	for i, p := range lvl.Crates {
		if _, err := NewCrateAt(w, mgl32.Vec3(p.Position), p.Prefab); err != nil {
			return out, fmt.Errorf("spawn level: crate %d: %w", i, err)
		}
	}
	for i, p := range lvl.Bolts {
		if _, err := NewBoltAt(w, mgl32.Vec3(p.Position), p.Prefab); err != nil {
			return out, fmt.Errorf("spawn level: bolt %d: %w", i, err)
		}
	}

	player, err := NewPlayerAt(w, lvl.SpawnPoint())
	if err != nil {
		return out, fmt.Errorf("spawn level: %w", err)
	}
	out.Player = player

	out.Gun, out.Wrench, err = NewWeaponModels(w, player)
	if err != nil {
		return out, fmt.Errorf("spawn level: %w", err)
	}

	out.Camera, err = NewCameraAt(w, lvl.SpawnPoint())
	if err != nil {
		return out, fmt.Errorf("spawn level: %w", err)
	}
	return out, nil
}

func addLevelBox(w *ecs.World, b levels.Box) error {
	lo, hi := mgl32.Vec3(b.Min), mgl32.Vec3(b.Max)
	center := lo.Add(hi).Mul(0.5)
	half := hi.Sub(lo).Mul(0.5)

	normal := common.Up
	if n := mgl32.Vec3(b.Normal); n.Len() > 0 {
		normal = n.Normalize()
	}

	e := ecs.CreateEntity(w)
	t := component.NewTransform(center)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &t); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.StaticColliderComponent.Kind(), &component.StaticCollider{
		Box:    cube.Box(lo.X(), lo.Y(), lo.Z(), hi.X(), hi.Y(), hi.Z()),
		Normal: normal,
	}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.RenderComponent.Kind(), &component.Render{
		Color:       levelGeometryColor,
		HalfExtents: half,
	})
}
