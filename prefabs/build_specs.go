package prefabs

type TransformComponentSpec struct {
	Position Vec3    `yaml:"position"`
	Yaw      float32 `yaml:"yaw"`
	Scale    Vec3    `yaml:"scale"`
}

type BodyComponentSpec struct {
	HalfExtents  Vec3    `yaml:"half_extents"`
	GravityScale float32 `yaml:"gravity_scale"`
	Static       bool    `yaml:"static"`
}

type GroundSensorComponentSpec struct {
	MaxDistance float32 `yaml:"max_distance"`
}

type StaticColliderComponentSpec struct {
	HalfExtents Vec3 `yaml:"half_extents"`
	Normal      Vec3 `yaml:"normal"`
}

// CharacterControllerComponentSpec is the player tuning block. Angles are in
// degrees.
type CharacterControllerComponentSpec struct {
	Acceleration      float32 `yaml:"acceleration"`
	Damping           float32 `yaml:"damping"`
	JumpImpulse       float32 `yaml:"jump_impulse"`
	DoubleJumpImpulse float32 `yaml:"double_jump_impulse"`
	MaxSlopeAngle     float32 `yaml:"max_slope_angle"`
	GlideFallSpeed    float32 `yaml:"glide_fall_speed"`
	GlideDrag         float32 `yaml:"glide_drag"`
	SideflipSpeed     float32 `yaml:"sideflip_speed"`
	SideflipImpulse   float32 `yaml:"sideflip_impulse"`
	LongjumpSpeed     float32 `yaml:"longjump_speed"`
	LongjumpImpulse   float32 `yaml:"longjump_impulse"`
	LongjumpGravity   float32 `yaml:"longjump_gravity"`
	HighjumpImpulse   float32 `yaml:"highjump_impulse"`
	HighjumpFloat     float32 `yaml:"highjump_float"`
	SwingLunge        float32 `yaml:"swing_lunge"`
	BaseGravityScale  float32 `yaml:"base_gravity_scale"`
}

type CameraComponentSpec struct {
	Distance         float32 `yaml:"distance"`
	Sensitivity      float32 `yaml:"sensitivity"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
	PitchLimit       float32 `yaml:"pitch_limit"`
	FOV              float32 `yaml:"fov"`
	Near             float32 `yaml:"near"`
	Far              float32 `yaml:"far"`
	Yaw              float32 `yaml:"yaw"`
	Pitch            float32 `yaml:"pitch"`
}

type AnimationClipSpec struct {
	Duration float32 `yaml:"duration"`
	Loop     bool    `yaml:"loop"`
	Speed    float32 `yaml:"speed"`
}

type AnimationComponentSpec struct {
	Current string                       `yaml:"current"`
	Clips   map[string]AnimationClipSpec `yaml:"clips"`
}

type AudioCueSpec struct {
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
	Loop   bool    `yaml:"loop"`
}

type AudioComponentSpec struct {
	Cues map[string]AudioCueSpec `yaml:"cues"`
}

type WeaponComponentSpec struct {
	FireInterval  float32 `yaml:"fire_interval"`
	BulletSpeed   float32 `yaml:"bullet_speed"`
	MuzzleOffset  Vec3    `yaml:"muzzle_offset"`
	MuzzleReach   float32 `yaml:"muzzle_reach"`
	SwingCooldown float32 `yaml:"swing_cooldown"`
	ComboReset    float32 `yaml:"combo_reset"`
	MaxCombo      int     `yaml:"max_combo"`
	HitboxOffset  Vec3    `yaml:"hitbox_offset"`
}

type WeaponModelComponentSpec struct {
	Visible     bool `yaml:"visible"`
	HalfExtents Vec3 `yaml:"half_extents"`
}

type ParentComponentSpec struct {
	Offset Vec3 `yaml:"offset"`
}

type BulletComponentSpec struct {
	Speed      float32 `yaml:"speed"`
	Damage     int     `yaml:"damage"`
	HalfExtent float32 `yaml:"half_extent"`
}

type HitboxComponentSpec struct {
	HalfExtents Vec3 `yaml:"half_extents"`
	Damage      int  `yaml:"damage"`
}

type CrateComponentSpec struct {
	Health int    `yaml:"health"`
	Bolts  int    `yaml:"bolts"`
	Script string `yaml:"script"`
}

type BoltComponentSpec struct {
	Value        int     `yaml:"value"`
	HalfExtent   float32 `yaml:"half_extent"`
	BobAmplitude float32 `yaml:"bob_amplitude"`
	BobSpeed     float32 `yaml:"bob_speed"`
	MagnetRadius float32 `yaml:"magnet_radius"`
	MagnetSpeed  float32 `yaml:"magnet_speed"`
}

type TTLComponentSpec struct {
	Seconds float32 `yaml:"seconds"`
}

type RenderComponentSpec struct {
	Color       YAMLColor `yaml:"color"`
	HalfExtents Vec3      `yaml:"half_extents"`
}
