package prefabs

type TransformComponentSpec struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Z     float64 `yaml:"z"`
	Yaw   float64 `yaml:"yaw"`
	Scale float64 `yaml:"scale"`
}

type ModelComponentSpec struct {
	Shape  string    `yaml:"shape"`
	Color  YAMLColor `yaml:"color"`
	Height float64   `yaml:"height"`
	Radius float64   `yaml:"radius"`
}

type PhysicsBodyComponentSpec struct {
	Width      float64 `yaml:"width"`
	Depth      float64 `yaml:"depth"`
	Radius     float64 `yaml:"radius"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
	Static     bool    `yaml:"static"`
}

type ObstacleComponentSpec struct {
	Height float64 `yaml:"height"`
}

type CharacterControllerComponentSpec struct {
	Acceleration    float64 `yaml:"acceleration"`
	Deceleration    float64 `yaml:"deceleration"`
	AirAcceleration float64 `yaml:"air_acceleration"`
	TurnSpeed       float64 `yaml:"turn_speed"`
	JumpSpeed       float64 `yaml:"jump_speed"`
	// Inert leaves the controller without a walk basis.
	Inert bool `yaml:"inert"`
}

type PlayerMotionComponentSpec struct {
	WalkSpeed        float64 `yaml:"walk_speed"`
	SprintMultiplier float64 `yaml:"sprint_multiplier"`
}

type AnimationClipSpec struct {
	Duration  float64 `yaml:"duration"`
	Bob       float64 `yaml:"bob"`
	Stride    float64 `yaml:"stride"`
	Footsteps int     `yaml:"footsteps"`
}

type AnimationsComponentSpec struct {
	Idle   string                       `yaml:"idle"`
	Walk   string                       `yaml:"walk"`
	Run    string                       `yaml:"run"`
	Aerial string                       `yaml:"aerial"`
	Clips  map[string]AnimationClipSpec `yaml:"clips"`
}

type CameraComponentSpec struct {
	Target      string  `yaml:"target"`
	Yaw         float64 `yaml:"yaw"`
	Pitch       float64 `yaml:"pitch"`
	MinPitch    float64 `yaml:"min_pitch"`
	MaxPitch    float64 `yaml:"max_pitch"`
	Distance    float64 `yaml:"distance"`
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	Sensitivity float64 `yaml:"sensitivity"`
	ZoomSpeed   float64 `yaml:"zoom_speed"`
	Smoothness  float64 `yaml:"smoothness"`
	FocusHeight float64 `yaml:"focus_height"`
}

type FollowerComponentSpec struct {
	Target           string  `yaml:"target"`
	Speed            float64 `yaml:"speed"`
	StoppingDistance float64 `yaml:"stopping_distance"`
	FollowRange      float64 `yaml:"follow_range"`
	RepathFrames     int     `yaml:"repath_frames"`
}

type InteractableComponentSpec struct {
	Radius float64 `yaml:"radius"`
	Dialog string  `yaml:"dialog"`
	Prompt string  `yaml:"prompt"`
}

type ParticleEmitterComponentSpec struct {
	Rate     float64   `yaml:"rate"`
	Lifetime int       `yaml:"lifetime"`
	Size     float64   `yaml:"size"`
	Color    YAMLColor `yaml:"color"`
	Spread   float64   `yaml:"spread"`
}

type AudioClipSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type AudioComponentSpec struct {
	Clips []AudioClipSpec `yaml:"clips"`
}

type AudioCueComponentSpec struct {
	Jump     string `yaml:"jump"`
	Land     string `yaml:"land"`
	Footstep string `yaml:"footstep"`
}
