package entity

import (
	"strings"
	"testing"

	"github.com/milk9111/foxtrot/common"
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
	"github.com/milk9111/foxtrot/input"
	"github.com/milk9111/foxtrot/levels"
	"github.com/milk9111/foxtrot/prefabs"
)

func TestBuildPlayerPrefab(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewPlayerAt(w, 2, 3, 1)
	if err != nil {
		t.Fatalf("build player: %v", err)
	}

	kinds := []struct {
		name string
		has  bool
	}{
		{"player_tag", ecs.Has(w, e, component.PlayerTagComponent.Kind())},
		{"model", ecs.Has(w, e, component.ModelComponent.Kind())},
		{"physics_body", ecs.Has(w, e, component.PhysicsBodyComponent.Kind())},
		{"character_controller", ecs.Has(w, e, component.CharacterControllerComponent.Kind())},
		{"player_actions", ecs.Has(w, e, component.PlayerActionsComponent.Kind())},
		{"animating_state", ecs.Has(w, e, component.AnimatingStateComponent.Kind())},
		{"audio", ecs.Has(w, e, component.AudioComponent.Kind())},
	}
	for _, k := range kinds {
		if !k.has {
			t.Fatalf("expected player to have %s", k.name)
		}
	}

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.Position != (common.Vec3{X: 2, Z: 3}) || tr.Yaw != 1 {
		t.Fatalf("unexpected transform %+v", tr)
	}

	ctrl, _ := ecs.Get(w, e, component.CharacterControllerComponent.Kind())
	if ctrl.Walk == nil || ctrl.JumpSpeed != 11 {
		t.Fatalf("expected a walking controller with jump speed 11, got %+v", ctrl)
	}

	link, _ := ecs.Get(w, e, component.AnimationPlayerLinkComponent.Kind())
	player, ok := ecs.Get(w, ecs.Entity(link.Player), component.AnimationPlayerComponent.Kind())
	if !ok || player.Owner != uint64(e) {
		t.Fatalf("expected a linked animation player owned by the character")
	}

	actions, _ := ecs.Get(w, e, component.PlayerActionsComponent.Kind())
	if actions.Map == nil {
		t.Fatalf("expected default bindings on player actions")
	}

	audio, _ := ecs.Get(w, e, component.AudioComponent.Kind())
	if audio.Index("footstep") < 0 || audio.Players[audio.Index("footstep")] != nil {
		t.Fatalf("expected a named footstep slot without a player when no bank is given")
	}
}

func TestBuildSpecErrors(t *testing.T) {
	b := NewBuilder(input.DefaultMaps(), nil)

	tests := []struct {
		name    string
		spec    prefabs.EntityBuildSpec
		wantErr string
	}{
		{"empty", prefabs.EntityBuildSpec{Name: "x"}, "does not define components"},
		{"unknown_component", prefabs.EntityBuildSpec{Components: map[string]any{"jetpack": map[string]any{}}}, "no builder"},
		{"interactable_without_dialog", prefabs.EntityBuildSpec{Components: map[string]any{"interactable": map[string]any{"radius": 1}}}, "needs a dialog"},
		{"bad_name", prefabs.EntityBuildSpec{Components: map[string]any{"name": 3}}, "non-empty string"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := b.BuildSpec(w, tc.name+".yaml", tc.spec)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
			if n := len(w.Query(component.NameComponent.Kind())); n != 0 {
				t.Fatalf("failed builds must not leave entities behind, found %d", n)
			}
		})
	}
}

func TestLoadLevelToWorld(t *testing.T) {
	lvl, err := levels.Load("meadow")
	if err != nil {
		t.Fatalf("load level: %v", err)
	}

	w := ecs.NewWorld()
	b := NewBuilder(input.DefaultMaps(), nil)
	if err := b.LoadLevelToWorld(w, lvl); err != nil {
		t.Fatalf("load level to world: %v", err)
	}

	names := map[string]bool{}
	ecs.ForEach(w, component.NameComponent.Kind(), func(_ ecs.Entity, n *component.Name) {
		names[n.Value] = true
	})
	for _, want := range []string{"player", "camera", "keeper", "wanderer"} {
		if !names[want] {
			t.Fatalf("expected %q to be spawned, have %v", want, names)
		}
	}

	navEnt, ok := w.First(component.NavMeshComponent.Kind())
	if !ok {
		t.Fatalf("expected a nav mesh singleton")
	}
	nav, _ := ecs.Get(w, navEnt, component.NavMeshComponent.Kind())
	if nav.Mesh.Walkable(common.Vec2{X: 3, Y: 2}) {
		t.Fatalf("crate footprint should be blocked")
	}
	if !nav.Mesh.Walkable(common.Vec2{X: 0, Y: -4}) {
		t.Fatalf("player spawn should be walkable")
	}

	// The resized wall keeps its override.
	found := false
	ecs.ForEach2(w, component.ObstacleComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, o *component.Obstacle, body *component.PhysicsBody) {
		if body.Width == 6 && body.Depth == 1 && o.Height == 2.5 {
			found = true
		}
	})
	if !found {
		t.Fatalf("expected the size override to reach the obstacle")
	}
}
