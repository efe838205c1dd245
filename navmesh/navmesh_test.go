package navmesh

import (
	"errors"
	"testing"

	"github.com/milk9111/foxtrot/common"
)

func TestBakeRejectsBadInput(t *testing.T) {
	if _, err := Bake(Rect{MaxX: 10, MaxZ: 10}, nil, 0, 0); err == nil {
		t.Fatalf("expected error for zero cell size")
	}
	if _, err := Bake(Rect{}, nil, 1, 0); err == nil {
		t.Fatalf("expected error for empty bounds")
	}
}

func TestFindPathAroundWall(t *testing.T) {
	// A wall across the middle with a gap at the top edge.
	bounds := Rect{MinX: 0, MinZ: 0, MaxX: 10, MaxZ: 10}
	wall := Rect{MinX: 4, MinZ: 0, MaxX: 6, MaxZ: 8}
	m, err := Bake(bounds, []Rect{wall}, 1, 0)
	if err != nil {
		t.Fatalf("bake: %v", err)
	}

	from := common.Vec2{X: 1.5, Y: 1.5}
	to := common.Vec2{X: 8.5, Y: 1.5}
	path, err := m.FindPath(from, to)
	if err != nil {
		t.Fatalf("find path: %v", err)
	}
	if len(path) < 2 {
		t.Fatalf("expected a detour, got %v", path)
	}
	if last := path[len(path)-1]; last != to {
		t.Fatalf("path should end at the destination, got %v", last)
	}
	for _, p := range path {
		if !m.Walkable(p) {
			t.Fatalf("waypoint %v is inside an obstacle", p)
		}
	}
	maxZ := 0.0
	for _, p := range path {
		if p.Y > maxZ {
			maxZ = p.Y
		}
	}
	if maxZ < 8 {
		t.Fatalf("path should pass through the gap above z=8, got %v", path)
	}
}

func TestFindPathErrors(t *testing.T) {
	bounds := Rect{MaxX: 10, MaxZ: 10}
	box := Rect{MinX: 4, MinZ: 4, MaxX: 6, MaxZ: 6}
	sealed := []Rect{{MinX: 3, MinZ: 0, MaxX: 4, MaxZ: 10}}

	cases := []struct {
		name      string
		obstacles []Rect
		to        common.Vec2
		want      error
	}{
		{"outside", nil, common.Vec2{X: 20, Y: 1}, ErrOutOfBounds},
		{"goal_blocked", []Rect{box}, common.Vec2{X: 5, Y: 5}, ErrBlocked},
		{"unreachable", sealed, common.Vec2{X: 8, Y: 8}, ErrNoPath},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, err := Bake(bounds, c.obstacles, 1, 0)
			if err != nil {
				t.Fatalf("bake: %v", err)
			}
			_, err = m.FindPath(common.Vec2{X: 1, Y: 1}, c.to)
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestAgentRadiusInflatesObstacles(t *testing.T) {
	bounds := Rect{MaxX: 10, MaxZ: 10}
	box := Rect{MinX: 4, MinZ: 4, MaxX: 6, MaxZ: 6}
	m, err := Bake(bounds, []Rect{box}, 1, 1)
	if err != nil {
		t.Fatalf("bake: %v", err)
	}
	if m.Walkable(common.Vec2{X: 3.5, Y: 5}) {
		t.Fatalf("cell next to the box should be blocked by the agent radius")
	}
	if !m.Walkable(common.Vec2{X: 1.5, Y: 5}) {
		t.Fatalf("cell far from the box should stay walkable")
	}
}
