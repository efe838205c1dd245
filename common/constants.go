package common

const (
	// TPS is the fixed update rate; every system steps by FrameDelta.
	TPS        = 60
	FrameDelta = 1.0 / TPS

	// Gravity is in world units per second squared, pulling toward -Y.
	Gravity = 30.0
)
