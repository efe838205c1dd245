package component

import "fmt"

type AnimationKind int

const (
	AnimationStanding AnimationKind = iota
	AnimationWalking
	AnimationRunning
	AnimationAirborne
)

func (k AnimationKind) String() string {
	switch k {
	case AnimationStanding:
		return "standing"
	case AnimationWalking:
		return "walking"
	case AnimationRunning:
		return "running"
	case AnimationAirborne:
		return "airborne"
	default:
		return fmt.Sprintf("animation(%d)", int(k))
	}
}

// AnimationState is the locomotion state picked for a character this frame.
// Speed is only meaningful for walking and running.
type AnimationState struct {
	Kind  AnimationKind
	Speed float64
}

func StandingState() AnimationState {
	return AnimationState{Kind: AnimationStanding}
}

func WalkingState(speed float64) AnimationState {
	return AnimationState{Kind: AnimationWalking, Speed: speed}
}

func RunningState(speed float64) AnimationState {
	return AnimationState{Kind: AnimationRunning, Speed: speed}
}

func AirborneState() AnimationState {
	return AnimationState{Kind: AnimationAirborne}
}

// AnimationDirective tells the animation system what to do with a state.
// Alter is set when the kind changed since the previous frame; HasOld is
// false on the very first update.
type AnimationDirective struct {
	Alter  bool
	HasOld bool
	Old    AnimationState
	State  AnimationState
}

// AnimatingState remembers the kind of the last state so transitions are
// only reported on change. Payload changes alone are a Maintain.
type AnimatingState struct {
	last    AnimationState
	started bool
}

func (a *AnimatingState) UpdateByDiscriminant(next AnimationState) AnimationDirective {
	if a.started && a.last.Kind == next.Kind {
		a.last = next
		return AnimationDirective{State: next}
	}
	d := AnimationDirective{Alter: true, HasOld: a.started, Old: a.last, State: next}
	a.last = next
	a.started = true
	return d
}

func (a *AnimatingState) Current() (AnimationState, bool) {
	return a.last, a.started
}

var AnimatingStateComponent = NewComponent[AnimatingState]()

// CharacterAnimations names the clips a character model plays. Run may be
// empty, in which case the aerial clip doubles as the run cycle.
type CharacterAnimations struct {
	Idle   string
	Walk   string
	Run    string
	Aerial string
}

var CharacterAnimationsComponent = NewComponent[CharacterAnimations]()

// AnimationPlayerLink points a character at the entity carrying its
// AnimationPlayer.
type AnimationPlayerLink struct {
	Player uint64
}

var AnimationPlayerLinkComponent = NewComponent[AnimationPlayerLink]()

// AnimationClip is the playback description of a named clip.
type AnimationClip struct {
	Duration float64
	// Bob is the vertical amplitude used when drawing the clip.
	Bob float64
	// Stride is the swing amplitude of limbs.
	Stride float64
	// Footsteps is the number of foot plants per cycle.
	Footsteps int
}

type AnimationLibrary struct {
	Clips map[string]AnimationClip
}

func (l *AnimationLibrary) Clip(name string) (AnimationClip, bool) {
	if l == nil || l.Clips == nil {
		return AnimationClip{}, false
	}
	c, ok := l.Clips[name]
	return c, ok
}

var AnimationLibraryComponent = NewComponent[AnimationLibrary]()

// AnimationPlayer blends from the previous clip into the current one over
// Fade seconds.
type AnimationPlayer struct {
	// Owner is the character this player animates.
	Owner uint64

	Clip   string
	Time   float64
	Speed  float64
	Repeat bool

	Previous     string
	PreviousTime float64
	Fade         float64
	FadeElapsed  float64

	// Starts counts how many times a clip was started, for tests and
	// debug overlays.
	Starts int
}

// PlayWithTransition starts clip, cross-fading from whatever was playing.
// Starting the clip that is already current is a no-op.
func (p *AnimationPlayer) PlayWithTransition(clip string, fade float64) *AnimationPlayer {
	if p.Clip == clip && p.Starts > 0 {
		return p
	}
	p.Previous = p.Clip
	p.PreviousTime = p.Time
	p.Clip = clip
	p.Time = 0
	p.Fade = fade
	p.FadeElapsed = 0
	p.Repeat = false
	if p.Speed == 0 {
		p.Speed = 1
	}
	if p.Previous == "" {
		p.Fade = 0
	}
	p.Starts++
	return p
}

func (p *AnimationPlayer) Repeating() *AnimationPlayer {
	p.Repeat = true
	return p
}

func (p *AnimationPlayer) SetSpeed(speed float64) {
	p.Speed = speed
}

// Weight is the blend weight of the current clip in [0, 1].
func (p *AnimationPlayer) Weight() float64 {
	if p.Fade <= 0 || p.FadeElapsed >= p.Fade {
		return 1
	}
	return p.FadeElapsed / p.Fade
}

func (p *AnimationPlayer) Fading() bool {
	return p.Previous != "" && p.Weight() < 1
}

var AnimationPlayerComponent = NewComponent[AnimationPlayer]()
