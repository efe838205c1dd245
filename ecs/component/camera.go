package component

// Camera orbits the entity named by Target. Angles are radians; pitch is
// measured downward from the horizon.
type Camera struct {
	Target      string
	Yaw         float64
	Pitch       float64
	MinPitch    float64
	MaxPitch    float64
	Distance    float64
	MinDistance float64
	MaxDistance float64
	Sensitivity float64
	ZoomSpeed   float64
	Smoothness  float64
	FocusHeight float64
	// Focus is the smoothed world point the camera looks at.
	FocusX float64
	FocusY float64
	FocusZ float64
}

var CameraComponent = NewComponent[Camera]()
