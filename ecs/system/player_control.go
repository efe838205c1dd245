package system

import (
	"github.com/milk9111/foxtrot/common"
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
	"github.com/milk9111/foxtrot/input"
	"go.uber.org/zap"
)

const (
	defaultWalkSpeed        = 8.0
	defaultSprintMultiplier = 1.8
)

// PlayerControlSystem turns player actions into controller intent, relative
// to the camera's yaw.
type PlayerControlSystem struct{}

func NewPlayerControlSystem() *PlayerControlSystem {
	return &PlayerControlSystem{}
}

func (s *PlayerControlSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	yaw := cameraYaw(w)

	ecs.ForEach3(w, component.PlayerActionsComponent.Kind(), component.PlayerMotionComponent.Kind(), component.CharacterControllerComponent.Kind(), func(e ecs.Entity, actions *component.PlayerActions, motion *component.PlayerMotion, ctrl *component.CharacterController) {
		if ctrl.Walk == nil {
			zap.L().Warn("player control: controller has no walk basis", zap.Stringer("entity", e))
			return
		}

		dir, ok := input.MaxNormalized(actions.State.AxisPair(input.Move))
		if !ok {
			ctrl.Walk.DesiredVelocity = common.Vec2{}
		} else {
			world := common.YawRight(yaw).Scale(dir.X).Add(common.YawForward(yaw).Scale(dir.Y))
			speed := motion.WalkSpeed
			if speed <= 0 {
				speed = defaultWalkSpeed
			}
			if actions.State.Pressed(input.Sprint) {
				mult := motion.SprintMultiplier
				if mult <= 0 {
					mult = defaultSprintMultiplier
				}
				speed *= mult
			}
			ctrl.Walk.DesiredVelocity = world.Scale(speed)
			ctrl.Walk.DesiredForward = world.Normalize()
		}

		if actions.State.JustPressed(input.Jump) {
			ctrl.JumpRequested = true
		}
	})
}

func cameraYaw(w *ecs.World) float64 {
	e, ok := ecs.First(w, component.CameraTagComponent.Kind())
	if !ok {
		return 0
	}
	cam, ok := ecs.Get(w, e, component.CameraComponent.Kind())
	if !ok {
		return 0
	}
	return cam.Yaw
}
