package component

// Crate breaks into bolts once Health reaches zero. Script computes the drop
// count; when empty, Bolts is used as is.
type Crate struct {
	Health    int
	MaxHealth int
	Bolts     int
	Script    string
	LastCombo int
}

var CrateComponent = NewComponent[Crate]()

// Bolt is a collectible currency pickup.
type Bolt struct {
	Value        int
	HalfExtent   float32
	BaseY        float32
	BobAmplitude float32
	BobSpeed     float32
	BobPhase     float32
	MagnetRadius float32
	MagnetSpeed  float32
	Initialized  bool
}

var BoltComponent = NewComponent[Bolt]()
