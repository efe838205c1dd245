package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/foxtrot/common"
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
	"github.com/milk9111/foxtrot/input"
)

type fakeSource struct {
	keys   map[ebiten.Key]bool
	cursor common.Vec2
	wheel  common.Vec2
}

func newFakeSource() *fakeSource {
	return &fakeSource{keys: map[ebiten.Key]bool{}}
}

func (f *fakeSource) KeyPressed(k ebiten.Key) bool                           { return f.keys[k] }
func (f *fakeSource) MouseButtonPressed(ebiten.MouseButton) bool             { return false }
func (f *fakeSource) CursorDelta() common.Vec2                               { return f.cursor }
func (f *fakeSource) WheelDelta() common.Vec2                                { return f.wheel }
func (f *fakeSource) GamepadButtonPressed(ebiten.StandardGamepadButton) bool { return false }
func (f *fakeSource) GamepadAxis(ebiten.StandardGamepadAxis) float64         { return 0 }

// newActionWorld builds a world with one player and one camera action holder
// bound to the default maps.
func newActionWorld() (*ecs.World, *component.PlayerActions, *component.CameraActions) {
	w := ecs.NewWorld()
	pa := &component.PlayerActions{Map: input.DefaultPlayerInputMap()}
	ca := &component.CameraActions{Map: input.DefaultCameraInputMap()}
	if err := ecs.Add(w, ecs.CreateEntity(w), component.PlayerActionsComponent.Kind(), pa); err != nil {
		panic(err)
	}
	if err := ecs.Add(w, ecs.CreateEntity(w), component.CameraActionsComponent.Kind(), ca); err != nil {
		panic(err)
	}
	return w, pa, ca
}
