package system

import (
	"fmt"
	"math"
	"testing"

	"github.com/milk9111/foxtrot/common"
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
)

func TestSteerVelocityAcceleration(t *testing.T) {
	walk := &component.WalkBasis{Acceleration: 60, Deceleration: 120, AirAcceleration: 6}

	tests := []struct {
		name     string
		current  common.Vec2
		desired  common.Vec2
		airborne bool
		want     float64
	}{
		{"accelerate", common.Vec2{}, common.Vec2{X: 8}, false, 1},
		{"decelerate", common.Vec2{X: 8}, common.Vec2{}, false, 6},
		{"air_control", common.Vec2{}, common.Vec2{X: 8}, true, 0.1},
		{"arrives", common.Vec2{X: 7.5}, common.Vec2{X: 8}, false, 8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := steerVelocity(tc.current, tc.desired, tc.airborne, walk, common.FrameDelta)
			if math.Abs(got.X-tc.want) > 1e-9 {
				t.Fatalf("expected %v, got %v", tc.want, got.X)
			}
		})
	}
}

func TestJumpArcLands(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	ctrl := &component.CharacterController{Walk: &component.WalkBasis{}, JumpSpeed: 10, JumpRequested: true}
	tr := &component.Transform{}
	mustAdd(t, ecs.Add(w, e, component.CharacterControllerComponent.Kind(), ctrl))
	mustAdd(t, ecs.Add(w, e, component.TransformComponent.Kind(), tr))

	sys := NewCharacterControllerSystem()
	sys.Update(w)
	if !ctrl.Airborne || tr.Position.Y <= 0 {
		t.Fatalf("expected to leave the ground, got y=%v airborne=%v", tr.Position.Y, ctrl.Airborne)
	}
	if len(w.Events().Read(ecs.EventJumped)) != 1 {
		t.Fatalf("expected one jump event")
	}

	ctrl.JumpRequested = true
	sys.Update(w)
	if len(w.Events().Read(ecs.EventJumped)) != 1 {
		t.Fatalf("jumping in the air must be ignored")
	}

	peak := 0.0
	for i := 0; i < 120 && ctrl.Airborne; i++ {
		sys.Update(w)
		peak = math.Max(peak, tr.Position.Y)
	}
	if ctrl.Airborne || tr.Position.Y != 0 {
		t.Fatalf("expected to land, got y=%v", tr.Position.Y)
	}
	// v^2 / 2g with a small integration error.
	if want := 10.0 * 10.0 / (2 * common.Gravity); math.Abs(peak-want) > 0.2 {
		t.Fatalf("peak %v too far from %v", peak, want)
	}
	if len(w.Events().Read(ecs.EventLanded)) != 1 {
		t.Fatalf("expected one landing event")
	}
}

func TestControllerTimingFollowsTickRate(t *testing.T) {
	const jumpSpeed = 10.0
	airtime := 2 * jumpSpeed / common.Gravity

	for _, tps := range []int{30, 60, 144} {
		t.Run(fmt.Sprintf("tps_%d", tps), func(t *testing.T) {
			w := ecs.NewWorld()
			SetTickRate(w, tps)
			dt := 1.0 / float64(tps)
			if got := FrameDelta(w); math.Abs(got-dt) > 1e-12 {
				t.Fatalf("expected delta %v, got %v", dt, got)
			}

			e := ecs.CreateEntity(w)
			ctrl := &component.CharacterController{
				Walk:          &component.WalkBasis{Acceleration: 1e6, DesiredVelocity: common.Vec2{X: 6}},
				JumpSpeed:     jumpSpeed,
				JumpRequested: true,
			}
			tr := &component.Transform{}
			mustAdd(t, ecs.Add(w, e, component.CharacterControllerComponent.Kind(), ctrl))
			mustAdd(t, ecs.Add(w, e, component.TransformComponent.Kind(), tr))

			sys := NewCharacterControllerSystem()
			steps := 0
			for ; steps < 10*tps; steps++ {
				sys.Update(w)
				if !ctrl.Airborne {
					steps++
					break
				}
			}

			elapsed := float64(steps) * dt
			if math.Abs(elapsed-airtime) > 2*dt {
				t.Fatalf("airtime %vs at %d tps, expected %vs", elapsed, tps, airtime)
			}
			if want := 6 * elapsed; math.Abs(tr.Position.X-want) > 1e-6 {
				t.Fatalf("expected %v units walked, got %v", want, tr.Position.X)
			}
		})
	}
}

func TestFrameDeltaDefaultsAndPersists(t *testing.T) {
	w := ecs.NewWorld()
	if got := FrameDelta(w); got != common.FrameDelta {
		t.Fatalf("expected default delta, got %v", got)
	}

	SetTickRate(w, 30)
	SetTickRate(w, 50)
	if n := len(ecs.Query(w, component.ClockComponent.Kind())); n != 1 {
		t.Fatalf("expected one clock, got %d", n)
	}
	e, _ := ecs.First(w, component.ClockComponent.Kind())
	p, ok := ecs.Get(w, e, component.PersistentComponent.Kind())
	if !ok || !p.KeepOnReload || !p.KeepOnLevelChange {
		t.Fatalf("clock must survive reloads")
	}
	if got := FrameDelta(w); math.Abs(got-0.02) > 1e-12 {
		t.Fatalf("expected 0.02, got %v", got)
	}
}

func TestPhysicsStopsCharacterAtObstacle(t *testing.T) {
	w := ecs.NewWorld()

	wall := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, wall, component.TransformComponent.Kind(), &component.Transform{Position: common.Vec3{X: 4}}))
	mustAdd(t, ecs.Add(w, wall, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Static: true, Width: 2, Depth: 10}))

	hero := ecs.CreateEntity(w)
	ctrl := &component.CharacterController{Walk: &component.WalkBasis{DesiredVelocity: common.Vec2{X: 8}, DesiredForward: common.Vec2{X: 1}}}
	tr := &component.Transform{}
	mustAdd(t, ecs.Add(w, hero, component.TransformComponent.Kind(), tr))
	mustAdd(t, ecs.Add(w, hero, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: 0.5}))
	mustAdd(t, ecs.Add(w, hero, component.CharacterControllerComponent.Kind(), ctrl))

	controller := NewCharacterControllerSystem()
	physics := NewPhysicsSystem()
	physics.Update(w)
	for i := 0; i < 180; i++ {
		controller.Update(w)
		physics.Update(w)
	}

	if tr.Position.X > 2.7 {
		t.Fatalf("character passed into the obstacle: x=%v", tr.Position.X)
	}
	if tr.Position.X < 2 {
		t.Fatalf("character should have walked up to the obstacle: x=%v", tr.Position.X)
	}
	if math.Abs(tr.Yaw-math.Pi/2) > 1e-6 {
		t.Fatalf("expected to face +X, yaw=%v", tr.Yaw)
	}
	if ctrl.Walk.RunningVelocity.Length() > 2 {
		t.Fatalf("running velocity should collapse against the wall, got %v", ctrl.Walk.RunningVelocity)
	}
}

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
}
