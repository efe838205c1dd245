package system

import (
	"math"
	"testing"

	"github.com/milk9111/foxtrot/common"
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
	"github.com/milk9111/foxtrot/input"
)

func TestPlayerControlDesiredVelocity(t *testing.T) {
	tests := []struct {
		name      string
		move      common.Vec2
		sprint    bool
		cameraYaw float64
		want      common.Vec2
	}{
		{"idle", common.Vec2{}, false, 0, common.Vec2{}},
		{"stick_drift", common.Vec2{X: 1e-6}, false, 0, common.Vec2{}},
		{"forward", common.Vec2{Y: 1}, false, 0, common.Vec2{Y: 8}},
		{"partial_analog", common.Vec2{Y: 0.5}, false, 0, common.Vec2{Y: 4}},
		{"diagonal_clamped", common.Vec2{X: 1, Y: 1}, false, 0, common.Vec2{X: 8 / math.Sqrt2, Y: 8 / math.Sqrt2}},
		{"sprint", common.Vec2{Y: 1}, true, 0, common.Vec2{Y: 16}},
		{"camera_turned", common.Vec2{Y: 1}, false, math.Pi / 2, common.Vec2{X: 8}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			cam := w.CreateEntity()
			mustAdd(t, ecs.Add(w, cam, component.CameraTagComponent.Kind(), &component.CameraTag{}))
			mustAdd(t, ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{Yaw: tc.cameraYaw}))

			e := w.CreateEntity()
			actions := &component.PlayerActions{}
			actions.State.Apply(input.Move, input.Sample{Axis: tc.move})
			actions.State.Apply(input.Sprint, input.Sample{Pressed: tc.sprint})
			ctrl := &component.CharacterController{Walk: &component.WalkBasis{}}
			mustAdd(t, ecs.Add(w, e, component.PlayerActionsComponent.Kind(), actions))
			mustAdd(t, ecs.Add(w, e, component.PlayerMotionComponent.Kind(), &component.PlayerMotion{WalkSpeed: 8, SprintMultiplier: 2}))
			mustAdd(t, ecs.Add(w, e, component.CharacterControllerComponent.Kind(), ctrl))

			NewPlayerControlSystem().Update(w)

			got := ctrl.Walk.DesiredVelocity
			if math.Abs(got.X-tc.want.X) > 1e-9 || math.Abs(got.Y-tc.want.Y) > 1e-9 {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestPlayerControlJumpOnPress(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	actions := &component.PlayerActions{}
	ctrl := &component.CharacterController{Walk: &component.WalkBasis{}}
	mustAdd(t, ecs.Add(w, e, component.PlayerActionsComponent.Kind(), actions))
	mustAdd(t, ecs.Add(w, e, component.PlayerMotionComponent.Kind(), &component.PlayerMotion{}))
	mustAdd(t, ecs.Add(w, e, component.CharacterControllerComponent.Kind(), ctrl))

	s := NewPlayerControlSystem()
	actions.State.Apply(input.Jump, input.Sample{Pressed: true})
	s.Update(w)
	if !ctrl.JumpRequested {
		t.Fatalf("expected a jump request on press")
	}

	ctrl.JumpRequested = false
	actions.State.Apply(input.Jump, input.Sample{Pressed: true})
	s.Update(w)
	if ctrl.JumpRequested {
		t.Fatalf("holding jump must not request again")
	}
}
