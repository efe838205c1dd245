package system

import (
	"math"

	"github.com/milk9111/foxtrot/common"
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
)

const (
	defaultAcceleration    = 60.0
	defaultDeceleration    = 80.0
	defaultAirAcceleration = 15.0
	defaultTurnSpeed       = 12.0
	defaultJumpSpeed       = 11.0
)

// CharacterControllerSystem steers bodies toward the controller's desired
// velocity and integrates height. It runs before physics; physics writes the
// achieved velocity back into the walk basis.
type CharacterControllerSystem struct{}

func NewCharacterControllerSystem() *CharacterControllerSystem {
	return &CharacterControllerSystem{}
}

func (s *CharacterControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := FrameDelta(w)
	ecs.ForEach2(w, component.CharacterControllerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ctrl *component.CharacterController, t *component.Transform) {
		walk := ctrl.Walk
		if walk == nil {
			return
		}

		s.steer(w, e, ctrl, walk, dt)
		s.integrateHeight(w, e, ctrl, t, dt)

		if !walk.DesiredForward.IsZero() {
			turn := walk.TurnSpeed
			if turn <= 0 {
				turn = defaultTurnSpeed
			}
			target := common.YawOf(walk.DesiredForward)
			delta := common.WrapAngle(target - t.Yaw)
			step := turn * dt
			if math.Abs(delta) <= step {
				t.Yaw = target
			} else {
				t.Yaw = common.WrapAngle(t.Yaw + math.Copysign(step, delta))
			}
		}
	})
}

func (s *CharacterControllerSystem) steer(w *ecs.World, e ecs.Entity, ctrl *component.CharacterController, walk *component.WalkBasis, dt float64) {
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || body.Body == nil {
		// Without a body there is no collision; move the transform directly.
		walk.RunningVelocity = steerVelocity(walk.RunningVelocity, walk.DesiredVelocity, ctrl.Airborne, walk, dt)
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.Position.X += walk.RunningVelocity.X * dt
			t.Position.Z += walk.RunningVelocity.Y * dt
		}
		return
	}

	v := body.Body.Velocity()
	next := steerVelocity(common.Vec2{X: v.X, Y: v.Y}, walk.DesiredVelocity, ctrl.Airborne, walk, dt)
	v.X, v.Y = next.X, next.Y
	body.Body.SetVelocityVector(v)
}

// steerVelocity moves current toward desired by the basis' acceleration
// limit for one step of dt seconds.
func steerVelocity(current, desired common.Vec2, airborne bool, walk *component.WalkBasis, dt float64) common.Vec2 {
	accel := walk.Acceleration
	if accel <= 0 {
		accel = defaultAcceleration
	}
	if desired.IsZero() {
		accel = walk.Deceleration
		if accel <= 0 {
			accel = defaultDeceleration
		}
	}
	if airborne {
		accel = walk.AirAcceleration
		if accel <= 0 {
			accel = defaultAirAcceleration
		}
	}

	diff := desired.Sub(current)
	return current.Add(diff.ClampLength(accel * dt))
}

func (s *CharacterControllerSystem) integrateHeight(w *ecs.World, e ecs.Entity, ctrl *component.CharacterController, t *component.Transform, dt float64) {
	if ctrl.JumpRequested {
		ctrl.JumpRequested = false
		if !ctrl.Airborne {
			jump := ctrl.JumpSpeed
			if jump <= 0 {
				jump = defaultJumpSpeed
			}
			ctrl.VerticalVelocity = jump
			ctrl.Airborne = true
			w.Events().Push(ecs.Event{Kind: ecs.EventJumped, Entity: e})
		}
	}

	if !ctrl.Airborne {
		t.Position.Y = ctrl.GroundHeight
		ctrl.VerticalVelocity = 0
		return
	}

	ctrl.VerticalVelocity -= common.Gravity * dt
	t.Position.Y += ctrl.VerticalVelocity * dt
	if t.Position.Y <= ctrl.GroundHeight {
		t.Position.Y = ctrl.GroundHeight
		ctrl.VerticalVelocity = 0
		ctrl.Airborne = false
		w.Events().Push(ecs.Event{Kind: ecs.EventLanded, Entity: e})
	}
}
