package component

// Camera orbits the CameraTarget entity. Yaw and Pitch are radians; FOV is
// vertical, in degrees.
type Camera struct {
	Yaw   float32
	Pitch float32

	Distance         float32
	Sensitivity      float32
	MouseSensitivity float32
	PitchLimit       float32

	FOV  float32
	Near float32
	Far  float32
}

var CameraComponent = NewComponent[Camera]()

type CameraTarget struct{}

var CameraTargetComponent = NewComponent[CameraTarget]()
