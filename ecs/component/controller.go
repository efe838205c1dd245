package component

import "github.com/milk9111/foxtrot/common"

// WalkBasis is the horizontal half of a character controller. Velocities
// live in the XZ plane, packed as Vec2{X, Z}.
type WalkBasis struct {
	DesiredVelocity common.Vec2
	DesiredForward  common.Vec2

	Acceleration    float64
	Deceleration    float64
	AirAcceleration float64
	TurnSpeed       float64

	// RunningVelocity is the velocity actually achieved after collision.
	RunningVelocity common.Vec2
}

// CharacterController drives a kinematic character. A controller without a
// WalkBasis is inert.
type CharacterController struct {
	Walk *WalkBasis

	JumpSpeed     float64
	JumpRequested bool

	Airborne         bool
	VerticalVelocity float64
	GroundHeight     float64
}

var CharacterControllerComponent = NewComponent[CharacterController]()

// PlayerMotion configures how player input becomes desired velocity.
type PlayerMotion struct {
	WalkSpeed        float64
	SprintMultiplier float64
}

var PlayerMotionComponent = NewComponent[PlayerMotion]()
