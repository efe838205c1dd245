package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/foxtrot/common"
)

type fakeSource struct {
	keys    map[ebiten.Key]bool
	mouse   map[ebiten.MouseButton]bool
	buttons map[ebiten.StandardGamepadButton]bool
	axes    map[ebiten.StandardGamepadAxis]float64
	cursor  common.Vec2
	wheel   common.Vec2
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		keys:    map[ebiten.Key]bool{},
		mouse:   map[ebiten.MouseButton]bool{},
		buttons: map[ebiten.StandardGamepadButton]bool{},
		axes:    map[ebiten.StandardGamepadAxis]float64{},
	}
}

func (f *fakeSource) KeyPressed(k ebiten.Key) bool                     { return f.keys[k] }
func (f *fakeSource) MouseButtonPressed(b ebiten.MouseButton) bool     { return f.mouse[b] }
func (f *fakeSource) CursorDelta() common.Vec2                         { return f.cursor }
func (f *fakeSource) WheelDelta() common.Vec2                          { return f.wheel }
func (f *fakeSource) GamepadAxis(a ebiten.StandardGamepadAxis) float64 { return f.axes[a] }
func (f *fakeSource) GamepadButtonPressed(b ebiten.StandardGamepadButton) bool {
	return f.buttons[b]
}
