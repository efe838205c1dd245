package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/foxtrot/common"
)

// Source is the device layer bindings sample from.
type Source interface {
	KeyPressed(k ebiten.Key) bool
	MouseButtonPressed(b ebiten.MouseButton) bool
	// CursorDelta is the cursor movement since the previous frame, in pixels.
	CursorDelta() common.Vec2
	// WheelDelta is this frame's scroll amount.
	WheelDelta() common.Vec2
	GamepadButtonPressed(b ebiten.StandardGamepadButton) bool
	GamepadAxis(a ebiten.StandardGamepadAxis) float64
}

// Poller is implemented by sources that need a once-per-frame refresh.
type Poller interface {
	Poll()
}

// EbitenSource reads the live ebiten devices. Only the first standard
// gamepad is used.
type EbitenSource struct {
	lastX, lastY int
	delta        common.Vec2
	wheel        common.Vec2
	primed       bool
	gamepad      ebiten.GamepadID
	hasGamepad   bool
	gamepadIDs   []ebiten.GamepadID
}

func NewEbitenSource() *EbitenSource {
	return &EbitenSource{}
}

func (s *EbitenSource) Poll() {
	x, y := ebiten.CursorPosition()
	if s.primed {
		s.delta = common.Vec2{X: float64(x - s.lastX), Y: float64(y - s.lastY)}
	}
	s.lastX, s.lastY = x, y
	s.primed = true

	wx, wy := ebiten.Wheel()
	s.wheel = common.Vec2{X: wx, Y: wy}

	s.gamepadIDs = ebiten.AppendGamepadIDs(s.gamepadIDs[:0])
	s.hasGamepad = false
	for _, id := range s.gamepadIDs {
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			s.gamepad = id
			s.hasGamepad = true
			break
		}
	}
}

func (s *EbitenSource) KeyPressed(k ebiten.Key) bool {
	return ebiten.IsKeyPressed(k)
}

func (s *EbitenSource) MouseButtonPressed(b ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(b)
}

func (s *EbitenSource) CursorDelta() common.Vec2 {
	return s.delta
}

func (s *EbitenSource) WheelDelta() common.Vec2 {
	return s.wheel
}

func (s *EbitenSource) GamepadButtonPressed(b ebiten.StandardGamepadButton) bool {
	if !s.hasGamepad {
		return false
	}
	return ebiten.IsStandardGamepadButtonPressed(s.gamepad, b)
}

func (s *EbitenSource) GamepadAxis(a ebiten.StandardGamepadAxis) float64 {
	if !s.hasGamepad {
		return 0
	}
	return ebiten.StandardGamepadAxisValue(s.gamepad, a)
}
