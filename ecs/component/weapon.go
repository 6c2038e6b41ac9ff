package component

import "github.com/go-gl/mathgl/mgl32"

// Weapon is the player's loadout state. Times are clock seconds.
type Weapon struct {
	FireInterval float32
	BulletSpeed  float32
	MuzzleOffset mgl32.Vec3
	MuzzleReach  float32
	LastShot     float32
	Shots        int

	SwingCooldown float32
	ComboReset    float32
	MaxCombo      int
	SwingNumber   int
	SwingTime     float32
	HitboxOffset  mgl32.Vec3
}

var WeaponComponent = NewComponent[Weapon]()

// WeaponModel is a visual held by the player. Gun and wrench share the type
// but use distinct kinds.
type WeaponModel struct {
	Visible     bool
	HalfExtents mgl32.Vec3
}

var (
	GunComponent    = NewComponent[WeaponModel]()
	WrenchComponent = NewComponent[WeaponModel]()
)

type Bullet struct {
	Direction  mgl32.Vec3
	Speed      float32
	ShootTime  float32
	Damage     int
	HalfExtent float32
}

var BulletComponent = NewComponent[Bullet]()

// Hitbox damages each overlapping Hittable entity once.
type Hitbox struct {
	HalfExtents mgl32.Vec3
	Damage      int
	Combo       int
	HitTargets  map[uint64]bool
}

var HitboxComponent = NewComponent[Hitbox]()

// Hittable marks entities that hitboxes and bullets may damage.
type Hittable struct{}

var HittableComponent = NewComponent[Hittable]()
