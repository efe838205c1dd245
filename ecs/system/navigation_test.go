package system

import (
	"testing"

	"github.com/milk9111/foxtrot/common"
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
	"github.com/milk9111/foxtrot/navmesh"
)

func TestFollowerSteersAndStops(t *testing.T) {
	w := ecs.NewWorld()
	mesh, err := navmesh.Bake(navmesh.Rect{MinX: -10, MinZ: -10, MaxX: 10, MaxZ: 10}, nil, 1, 0)
	if err != nil {
		t.Fatalf("bake: %v", err)
	}
	mustAdd(t, ecs.Add(w, ecs.CreateEntity(w), component.NavMeshComponent.Kind(), &component.NavMesh{Mesh: mesh}))

	target := ecs.CreateEntity(w)
	targetT := &component.Transform{Position: common.Vec3{X: 6}}
	mustAdd(t, ecs.Add(w, target, component.TransformComponent.Kind(), targetT))
	mustAdd(t, ecs.Add(w, target, component.NameComponent.Kind(), &component.Name{Value: "player"}))

	npc := ecs.CreateEntity(w)
	ctrl := &component.CharacterController{Walk: &component.WalkBasis{}}
	follower := &component.Follower{TargetName: "player", Speed: 4, StoppingDist: 1.5, FollowRange: 20}
	mustAdd(t, ecs.Add(w, npc, component.TransformComponent.Kind(), &component.Transform{}))
	mustAdd(t, ecs.Add(w, npc, component.CharacterControllerComponent.Kind(), ctrl))
	mustAdd(t, ecs.Add(w, npc, component.FollowerComponent.Kind(), follower))

	sys := NewNavigationSystem()
	sys.Update(w)

	if follower.Target != uint64(target) {
		t.Fatalf("target name was not resolved")
	}
	v := ctrl.Walk.DesiredVelocity
	if v.X <= 0 || v.Length() < 3.99 || v.Length() > 4.01 {
		t.Fatalf("expected to head toward +X at speed 4, got %+v", v)
	}

	targetT.Position.X = 1
	sys.Update(w)
	if !ctrl.Walk.DesiredVelocity.IsZero() {
		t.Fatalf("inside stopping distance the follower should stop, got %+v", ctrl.Walk.DesiredVelocity)
	}

	targetT.Position.X = 9
	targetT.Position.Z = 9
	follower.FollowRange = 5
	sys.Update(w)
	if !ctrl.Walk.DesiredVelocity.IsZero() {
		t.Fatalf("outside follow range the follower should stop")
	}
}
