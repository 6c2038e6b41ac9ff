package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/ratchet/common"
	"github.com/milk9111/ratchet/ecs"
	"github.com/milk9111/ratchet/ecs/component"
	"github.com/milk9111/ratchet/ecs/entity"
	"github.com/sirupsen/logrus"
)

// WeaponSystem fires the gun while East is held and swings the wrench on
// West. Swings chain into a combo of up to Weapon.MaxCombo hits.
type WeaponSystem struct {
	log logrus.FieldLogger
}

func NewWeaponSystem(log logrus.FieldLogger) *WeaponSystem {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &WeaponSystem{log: log}
}

func (s *WeaponSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	weapon, ok := ecs.Get(w, player, component.WeaponComponent.Kind())
	if !ok {
		return
	}
	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	now := w.Clock().Elapsed

	if input.East.Held && weapon.LastShot+weapon.FireInterval < now {
		s.shoot(w, weapon, t, now)
	}

	if weapon.SwingTime+weapon.ComboReset < now {
		weapon.SwingNumber = 0
	}
	if weapon.SwingTime+weapon.SwingCooldown < now {
		remove(w, player, component.SwingComponent)
	}
	if input.West.JustPressed && has(w, player, component.GroundedComponent) &&
		weapon.SwingNumber < weapon.MaxCombo && weapon.SwingTime+weapon.SwingCooldown < now {
		s.swing(w, player, weapon, t, now)
	}
}

func (s *WeaponSystem) shoot(w *ecs.World, weapon *component.Weapon, t *component.Transform, now float32) {
	showWeapon(w, component.GunComponent)
	hideWeapon(w, component.WrenchComponent)

	forward := t.Forward()
	muzzle := t.Position.Add(t.Rotation.Rotate(weapon.MuzzleOffset)).Add(forward.Mul(weapon.MuzzleReach))
	bullet, err := entity.NewBullet(w, muzzle, forward, now)
	if err != nil {
		s.log.WithError(err).Error("spawn bullet")
		return
	}
	if weapon.BulletSpeed > 0 {
		if b, ok := ecs.Get(w, bullet, component.BulletComponent.Kind()); ok {
			b.Speed = weapon.BulletSpeed
		}
	}
	weapon.LastShot = now
	weapon.Shots++
	playSound(w, "shoot")
}

func (s *WeaponSystem) swing(w *ecs.World, player ecs.Entity, weapon *component.Weapon, t *component.Transform, now float32) {
	showWeapon(w, component.WrenchComponent)
	hideWeapon(w, component.GunComponent)

	weapon.SwingNumber++
	weapon.SwingTime = now
	insert(w, player, component.SwingComponent)
	sendMovement(w, player, component.MoveSwing, common.Horizontal(t.Forward()))

	if _, err := entity.NewHitbox(w, player, weapon.SwingNumber); err != nil {
		s.log.WithError(err).Error("spawn hitbox")
	}
	playSound(w, "swing")
}

func showWeapon(w *ecs.World, h component.ComponentHandle[component.WeaponModel]) {
	ecs.ForEach(w, h.Kind(), func(_ ecs.Entity, m *component.WeaponModel) { m.Visible = true })
}

func hideWeapon(w *ecs.World, h component.ComponentHandle[component.WeaponModel]) {
	ecs.ForEach(w, h.Kind(), func(_ ecs.Entity, m *component.WeaponModel) { m.Visible = false })
}

// BulletSystem flies bullets and resolves their hits. A bullet that touches
// a Hittable damages it; any static collider stops it.
type BulletSystem struct{}

func NewBulletSystem() *BulletSystem {
	return &BulletSystem{}
}

func (s *BulletSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Clock().Delta

	ecs.ForEach2(w, component.BulletComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.Bullet, t *component.Transform) {
		t.Position = t.Position.Add(b.Direction.Mul(b.Speed * dt))
		half := b.HalfExtent
		box := component.CenteredBox(t.Position, mgl32.Vec3{half, half, half})

		hitTarget := false
		ecs.ForEach2(w, component.HittableComponent.Kind(), component.StaticColliderComponent.Kind(), func(target ecs.Entity, _ *component.Hittable, c *component.StaticCollider) {
			if hitTarget || !box.IntersectsWith(c.Box) {
				return
			}
			applyDamage(w, target, b.Damage, 0)
			hitTarget = true
		})
		if hitTarget {
			ecs.DestroyEntity(w, e)
			return
		}

		blocked := false
		ecs.ForEach(w, component.StaticColliderComponent.Kind(), func(_ ecs.Entity, c *component.StaticCollider) {
			if !blocked && box.IntersectsWith(c.Box) {
				blocked = true
			}
		})
		if blocked {
			ecs.DestroyEntity(w, e)
		}
	})
}

// HitboxSystem damages every Hittable overlapping a hitbox, once per target.
type HitboxSystem struct{}

func NewHitboxSystem() *HitboxSystem {
	return &HitboxSystem{}
}

func (s *HitboxSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.HitboxComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, hb *component.Hitbox, t *component.Transform) {
		box := component.CenteredBox(t.Position, hb.HalfExtents)
		if hb.HitTargets == nil {
			hb.HitTargets = make(map[uint64]bool)
		}
		ecs.ForEach2(w, component.HittableComponent.Kind(), component.StaticColliderComponent.Kind(), func(target ecs.Entity, _ *component.Hittable, c *component.StaticCollider) {
			if hb.HitTargets[uint64(target)] || !box.IntersectsWith(c.Box) {
				return
			}
			hb.HitTargets[uint64(target)] = true
			applyDamage(w, target, hb.Damage, hb.Combo)
		})
	})
}
