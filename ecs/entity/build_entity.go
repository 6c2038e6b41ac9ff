package entity

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/ratchet/common"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
	"github.com/milk9111/ratchet/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
	// Parent is the entity a "parent" block attaches to. Zero leaves the
	// entity unparented.
	Parent ecs.Entity
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":           addPlayerTag,
	"camera_target":        addCameraTarget,
	"transform":            addTransform,
	"body":                 addBody,
	"ground_sensor":        addGroundSensor,
	"character_controller": addCharacterController,
	"jump_counter":         addJumpCounter,
	"move_direction":       addMoveDirection,
	"input":                addInput,
	"bolts":                addBolts,
	"states":               addStates,
	"weapon":               addWeapon,
	"animation":            addAnimation,
	"audio":                addAudio,
	"render":               addRender,
	"camera":               addCamera,
	"static_collider":      addStaticCollider,
	"hittable":             addHittable,
	"crate":                addCrate,
	"bolt":                 addBolt,
	"bullet":               addBullet,
	"hitbox":               addHitbox,
	"ttl":                  addTTL,
	"parent":               addParent,
	"gun":                  addGun,
	"wrench":               addWrench,
}

// transform must precede static_collider and parent, which read it.
var componentBuildOrder = []string{
	"player_tag",
	"camera_target",
	"transform",
	"body",
	"ground_sensor",
	"character_controller",
	"jump_counter",
	"move_direction",
	"input",
	"bolts",
	"states",
	"weapon",
	"animation",
	"audio",
	"render",
	"camera",
	"static_collider",
	"hittable",
	"crate",
	"bolt",
	"bullet",
	"hitbox",
	"ttl",
	"parent",
	"gun",
	"wrench",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	return buildEntity(w, prefabPath, &buildContext{PrefabPath: prefabPath})
}

func buildEntity(w *ecs.World, prefabPath string, ctx *buildContext) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return buildFromSpec(w, spec, ctx)
}

func buildFromSpec(w *ecs.World, spec entityPrefabSpec, ctx *buildContext) (ecs.Entity, error) {
	prefabPath := ctx.PrefabPath
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

// SetEntityPosition moves e and re-centers its static collider, if any.
func SetEntityPosition(w *ecs.World, e ecs.Entity, pos mgl32.Vec3) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		tr := component.NewTransform(pos)
		t = &tr
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
			return err
		}
	}
	t.Position = pos
	if col, ok := ecs.Get(w, e, component.StaticColliderComponent.Kind()); ok {
		half := mgl32.Vec3{col.Box.Width() / 2, col.Box.Height() / 2, col.Box.Length() / 2}
		col.Box = component.CenteredBox(pos, half)
	}
	return nil
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTarget(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTargetComponent.Kind(), &component.CameraTarget{})
}

func addHittable(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.HittableComponent.Kind(), &component.Hittable{})
}

func addJumpCounter(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.JumpCounterComponent.Kind(), &component.JumpCounter{})
}

func addMoveDirection(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.MoveDirectionComponent.Kind(), &component.MoveDirection{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addBolts(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.BoltsComponent.Kind(), &component.Bolts{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	t := component.NewTransform(spec.Position.Vec())
	t.Rotation = common.QuatRotateY(common.Rad(spec.Yaw))
	t.Scale = spec.Scale.VecOr(mgl32.Vec3{1, 1, 1})
	return ecs.Add(w, e, component.TransformComponent.Kind(), &t)
}

type bodySpec = prefabs.BodyComponentSpec

func addBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[bodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode body spec: %w", err)
	}
	gravity := spec.GravityScale
	if gravity == 0 && !spec.Static {
		gravity = 1
	}
	return ecs.Add(w, e, component.BodyComponent.Kind(), &component.Body{
		GravityScale: gravity,
		HalfExtents:  spec.HalfExtents.VecOr(mgl32.Vec3{0.5, 0.5, 0.5}),
		Static:       spec.Static,
	})
}

type groundSensorSpec = prefabs.GroundSensorComponentSpec

func addGroundSensor(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[groundSensorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ground sensor spec: %w", err)
	}
	if spec.MaxDistance <= 0 {
		spec.MaxDistance = 0.2
	}
	return ecs.Add(w, e, component.GroundSensorComponent.Kind(), &component.GroundSensor{MaxDistance: spec.MaxDistance})
}

type characterControllerSpec = prefabs.CharacterControllerComponentSpec

func addCharacterController(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[characterControllerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode character controller spec: %w", err)
	}
	ctrl := controllerFromSpec(spec)
	return ecs.Add(w, e, component.CharacterControllerComponent.Kind(), &ctrl)
}

func controllerFromSpec(spec characterControllerSpec) component.CharacterController {
	base := spec.BaseGravityScale
	if base == 0 {
		base = 3
	}
	return component.CharacterController{
		Acceleration:      spec.Acceleration,
		Damping:           spec.Damping,
		JumpImpulse:       spec.JumpImpulse,
		DoubleJumpImpulse: spec.DoubleJumpImpulse,
		MaxSlopeAngle:     common.Rad(spec.MaxSlopeAngle),
		GlideFallSpeed:    spec.GlideFallSpeed,
		GlideDrag:         spec.GlideDrag,
		SideflipSpeed:     spec.SideflipSpeed,
		SideflipImpulse:   spec.SideflipImpulse,
		LongjumpSpeed:     spec.LongjumpSpeed,
		LongjumpImpulse:   spec.LongjumpImpulse,
		LongjumpGravity:   spec.LongjumpGravity,
		HighjumpImpulse:   spec.HighjumpImpulse,
		HighjumpFloat:     spec.HighjumpFloat,
		SwingLunge:        spec.SwingLunge,
		BaseGravityScale:  base,
	}
}

func addStates(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	names, err := prefabs.DecodeComponentSpec[[]string](raw)
	if err != nil {
		return fmt.Errorf("decode states: %w", err)
	}
	for _, name := range names {
		if err := SetState(w, e, name, true); err != nil {
			return err
		}
	}
	return nil
}

type weaponSpec = prefabs.WeaponComponentSpec

func addWeapon(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[weaponSpec](raw)
	if err != nil {
		return fmt.Errorf("decode weapon spec: %w", err)
	}
	weapon := weaponFromSpec(spec)
	// Allow the first shot and swing on frame one.
	weapon.LastShot = -weapon.FireInterval
	weapon.SwingTime = -weapon.ComboReset
	return ecs.Add(w, e, component.WeaponComponent.Kind(), &weapon)
}

func weaponFromSpec(spec weaponSpec) component.Weapon {
	if spec.MaxCombo <= 0 {
		spec.MaxCombo = 3
	}
	return component.Weapon{
		FireInterval:  spec.FireInterval,
		BulletSpeed:   spec.BulletSpeed,
		MuzzleOffset:  spec.MuzzleOffset.Vec(),
		MuzzleReach:   spec.MuzzleReach,
		SwingCooldown: spec.SwingCooldown,
		ComboReset:    spec.ComboReset,
		MaxCombo:      spec.MaxCombo,
		HitboxOffset:  spec.HitboxOffset.VecOr(mgl32.Vec3{0, 0, -0.5}),
	}
}

type animationSpec = prefabs.AnimationComponentSpec

func addAnimation(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animationSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}
	clips := make(map[string]component.AnimationClip, len(spec.Clips))
	for name, clip := range spec.Clips {
		speed := clip.Speed
		if speed == 0 {
			speed = 1
		}
		if clip.Duration <= 0 {
			return fmt.Errorf("animation clip %q: duration must be positive", name)
		}
		clips[name] = component.AnimationClip{Duration: clip.Duration, Loop: clip.Loop, Speed: speed}
	}
	current := spec.Current
	if current == "" {
		current = component.AnimIdle
	}
	speed := float32(1)
	if clip, ok := clips[current]; ok {
		speed = clip.Speed
	}
	if err := ecs.Add(w, e, component.CurrentAnimationComponent.Kind(), &component.CurrentAnimation{Name: current}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{
		Clips:   clips,
		Current: current,
		Speed:   speed,
	})
}

type audioSpec = prefabs.AudioComponentSpec

func addAudio(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[audioSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio spec: %w", err)
	}
	cues := make(map[string]component.AudioCue, len(spec.Cues))
	for name, cue := range spec.Cues {
		if cue.File == "" {
			return fmt.Errorf("audio cue %q: missing file", name)
		}
		cues[name] = component.AudioCue{File: cue.File, Volume: cue.Volume, Loop: cue.Loop}
	}
	return ecs.Add(w, e, component.AudioComponent.Kind(), &component.Audio{Cues: cues})
}

type renderSpec = prefabs.RenderComponentSpec

func addRender(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render spec: %w", err)
	}
	clr := spec.Color.NRGBA
	if clr.A == 0 {
		clr.A = 0xff
	}
	return ecs.Add(w, e, component.RenderComponent.Kind(), &component.Render{
		Color:       clr,
		HalfExtents: spec.HalfExtents.VecOr(mgl32.Vec3{0.5, 0.5, 0.5}),
	})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.Distance <= 0 {
		spec.Distance = 6.5
	}
	if spec.FOV <= 0 {
		spec.FOV = 70
	}
	if spec.Near <= 0 {
		spec.Near = 0.1
	}
	if spec.Far <= spec.Near {
		spec.Far = 200
	}
	if spec.PitchLimit <= 0 {
		spec.PitchLimit = common.Rad(81)
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		Yaw:              spec.Yaw,
		Pitch:            spec.Pitch,
		Distance:         spec.Distance,
		Sensitivity:      spec.Sensitivity,
		MouseSensitivity: spec.MouseSensitivity,
		PitchLimit:       spec.PitchLimit,
		FOV:              spec.FOV,
		Near:             spec.Near,
		Far:              spec.Far,
	})
}

type staticColliderSpec = prefabs.StaticColliderComponentSpec

func addStaticCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[staticColliderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode static collider spec: %w", err)
	}
	var pos mgl32.Vec3
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		pos = t.Position
	}
	return ecs.Add(w, e, component.StaticColliderComponent.Kind(), &component.StaticCollider{
		Box:    component.CenteredBox(pos, spec.HalfExtents.VecOr(mgl32.Vec3{0.5, 0.5, 0.5})),
		Normal: spec.Normal.VecOr(common.Up).Normalize(),
	})
}

type crateSpec = prefabs.CrateComponentSpec

func addCrate(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[crateSpec](raw)
	if err != nil {
		return fmt.Errorf("decode crate spec: %w", err)
	}
	if spec.Health <= 0 {
		spec.Health = 1
	}
	return ecs.Add(w, e, component.CrateComponent.Kind(), &component.Crate{
		Health:    spec.Health,
		MaxHealth: spec.Health,
		Bolts:     spec.Bolts,
		Script:    spec.Script,
	})
}

type boltSpec = prefabs.BoltComponentSpec

func addBolt(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[boltSpec](raw)
	if err != nil {
		return fmt.Errorf("decode bolt spec: %w", err)
	}
	if spec.Value <= 0 {
		spec.Value = 1
	}
	if spec.HalfExtent <= 0 {
		spec.HalfExtent = 0.2
	}
	if spec.MagnetSpeed <= 0 {
		spec.MagnetSpeed = 8
	}
	return ecs.Add(w, e, component.BoltComponent.Kind(), &component.Bolt{
		Value:        spec.Value,
		HalfExtent:   spec.HalfExtent,
		BobAmplitude: spec.BobAmplitude,
		BobSpeed:     spec.BobSpeed,
		MagnetRadius: spec.MagnetRadius,
		MagnetSpeed:  spec.MagnetSpeed,
	})
}

type bulletSpec = prefabs.BulletComponentSpec

func addBullet(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[bulletSpec](raw)
	if err != nil {
		return fmt.Errorf("decode bullet spec: %w", err)
	}
	if spec.Damage <= 0 {
		spec.Damage = 1
	}
	return ecs.Add(w, e, component.BulletComponent.Kind(), &component.Bullet{
		Direction:  mgl32.Vec3{0, 0, -1},
		Speed:      spec.Speed,
		Damage:     spec.Damage,
		HalfExtent: spec.HalfExtent,
	})
}

type hitboxSpec = prefabs.HitboxComponentSpec

func addHitbox(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[hitboxSpec](raw)
	if err != nil {
		return fmt.Errorf("decode hitbox spec: %w", err)
	}
	if spec.Damage <= 0 {
		spec.Damage = 1
	}
	return ecs.Add(w, e, component.HitboxComponent.Kind(), &component.Hitbox{
		HalfExtents: spec.HalfExtents.VecOr(mgl32.Vec3{0.5, 0.6, 0.5}),
		Damage:      spec.Damage,
		HitTargets:  make(map[uint64]bool),
	})
}

type ttlSpec = prefabs.TTLComponentSpec

func addTTL(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[ttlSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ttl spec: %w", err)
	}
	if spec.Seconds <= 0 {
		return fmt.Errorf("ttl seconds must be positive")
	}
	return ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: spec.Seconds})
}

type parentSpec = prefabs.ParentComponentSpec

func addParent(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[parentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode parent spec: %w", err)
	}
	if ctx == nil || !ecs.IsAlive(w, ctx.Parent) {
		return nil
	}
	parent := &component.Parent{Entity: uint64(ctx.Parent), Offset: spec.Offset.Vec()}
	if err := ecs.Add(w, e, component.ParentComponent.Kind(), parent); err != nil {
		return err
	}
	snapToParent(w, e, parent)
	return nil
}

// snapToParent places e at its parent offset right away so it does not draw
// at the origin for a frame.
func snapToParent(w *ecs.World, e ecs.Entity, p *component.Parent) {
	pt, ok := ecs.Get(w, ecs.Entity(p.Entity), component.TransformComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	t.Position = pt.Position.Add(pt.Rotation.Rotate(p.Offset))
	t.Rotation = pt.Rotation
}

type weaponModelSpec = prefabs.WeaponModelComponentSpec

func addGun(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	model, err := decodeWeaponModel(raw)
	if err != nil {
		return fmt.Errorf("decode gun spec: %w", err)
	}
	return ecs.Add(w, e, component.GunComponent.Kind(), model)
}

func addWrench(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	model, err := decodeWeaponModel(raw)
	if err != nil {
		return fmt.Errorf("decode wrench spec: %w", err)
	}
	return ecs.Add(w, e, component.WrenchComponent.Kind(), model)
}

func decodeWeaponModel(raw any) (*component.WeaponModel, error) {
	spec, err := prefabs.DecodeComponentSpec[weaponModelSpec](raw)
	if err != nil {
		return nil, err
	}
	return &component.WeaponModel{
		Visible:     spec.Visible,
		HalfExtents: spec.HalfExtents.VecOr(mgl32.Vec3{0.05, 0.05, 0.2}),
	}, nil
}
