package dev

import (
	"testing"

	"github.com/milk9111/foxtrot/common"
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Change
	}{
		{"prefabs/player.yaml", ChangeWorld},
		{"levels/meadow.yaml", ChangeWorld},
		{"prefabs/dialogs/keeper.yaml", ChangeDialog},
		{"/home/me/foxtrot/prefabs/dialogs/wanderer.yml", ChangeDialog},
		{"assets/shaders/atmosphere.kage", ChangeShader},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			if got := Classify(tc.path); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestRequestReloadOnce(t *testing.T) {
	w := ecs.NewWorld()
	RequestReload(w)
	RequestReload(w)

	reqs := w.Query(component.ReloadRequestComponent.Kind())
	if len(reqs) != 1 {
		t.Fatalf("expected a single pending reload, got %d", len(reqs))
	}
	req, _ := ecs.Get(w, reqs[0], component.ReloadRequestComponent.Kind())
	if !req.KeepPlayer {
		t.Fatalf("dev reloads keep the player in place")
	}
}

func TestPlayerSpawnLine(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := PlayerSpawnLine(w); err == nil {
		t.Fatalf("expected an error without a player")
	}

	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		t.Fatalf("add tag: %v", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: common.Vec3{X: 1.234, Z: -5}, Yaw: 3.14159}); err != nil {
		t.Fatalf("add transform: %v", err)
	}

	got, err := PlayerSpawnLine(w)
	if err != nil {
		t.Fatalf("spawn line: %v", err)
	}
	if want := "at: {x: 1.23, z: -5.00}\nyaw: 3.14"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
