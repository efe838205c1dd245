package input

import "github.com/milk9111/foxtrot/common"

// ActionData is the per-frame state of one action.
type ActionData struct {
	Pressed      bool
	JustPressed  bool
	JustReleased bool
	// Value carries single-axis input such as the mouse wheel.
	Value float64
	// Axis carries dual-axis input such as WASD or mouse motion.
	Axis common.Vec2
}

// ActionState holds the current state of every action in one namespace.
type ActionState[A comparable] struct {
	data map[A]*ActionData
}

func NewActionState[A comparable]() *ActionState[A] {
	return &ActionState[A]{data: make(map[A]*ActionData)}
}

// Data returns the mutable state of a, creating a released default entry.
func (s *ActionState[A]) Data(a A) *ActionData {
	if s.data == nil {
		s.data = make(map[A]*ActionData)
	}
	d, ok := s.data[a]
	if !ok {
		d = &ActionData{}
		s.data[a] = d
	}
	return d
}

func (s *ActionState[A]) Pressed(a A) bool {
	if d, ok := s.data[a]; ok {
		return d.Pressed
	}
	return false
}

func (s *ActionState[A]) JustPressed(a A) bool {
	if d, ok := s.data[a]; ok {
		return d.JustPressed
	}
	return false
}

func (s *ActionState[A]) JustReleased(a A) bool {
	if d, ok := s.data[a]; ok {
		return d.JustReleased
	}
	return false
}

func (s *ActionState[A]) Value(a A) float64 {
	if d, ok := s.data[a]; ok {
		return d.Value
	}
	return 0
}

func (s *ActionState[A]) AxisPair(a A) common.Vec2 {
	if d, ok := s.data[a]; ok {
		return d.Axis
	}
	return common.Vec2{}
}

// Press marks a as held.
func (s *ActionState[A]) Press(a A) {
	d := s.Data(a)
	d.JustPressed = !d.Pressed
	d.JustReleased = false
	d.Pressed = true
}

// Release marks a as not held and clears its analog values.
func (s *ActionState[A]) Release(a A) {
	d := s.Data(a)
	d.JustReleased = d.Pressed
	d.JustPressed = false
	d.Pressed = false
	d.Value = 0
}

// Apply folds a fresh device sample into the state, deriving press edges from
// the previous frame.
func (s *ActionState[A]) Apply(a A, sample Sample) {
	d := s.Data(a)
	wasPressed := d.Pressed
	d.Pressed = sample.Pressed
	d.JustPressed = sample.Pressed && !wasPressed
	d.JustReleased = !sample.Pressed && wasPressed
	d.Value = sample.Value
	d.Axis = sample.Axis
}

// ReleaseAll resets every action.
func (s *ActionState[A]) ReleaseAll() {
	for a := range s.data {
		s.Release(a)
		s.data[a].Axis = common.Vec2{}
	}
}
