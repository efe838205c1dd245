package entity

import (
	"fmt"

	"github.com/milk9111/foxtrot/common"
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
	"github.com/milk9111/foxtrot/levels"
	"github.com/milk9111/foxtrot/navmesh"
)

const (
	defaultCellSize    = 0.5
	defaultAgentRadius = 0.45
)

func vec3(x, y, z float64) common.Vec3 {
	return common.Vec3{X: x, Y: y, Z: z}
}

// LoadLevelToWorld spawns every prefab of the level, then bakes the nav mesh
// from the obstacles it placed.
func (b *Builder) LoadLevelToWorld(w *ecs.World, lvl *levels.Level) error {
	if w == nil || lvl == nil {
		return fmt.Errorf("load level: nil world or level")
	}

	boundsEntity := w.CreateEntity()
	if err := ecs.Add(w, boundsEntity, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		MinX: lvl.Bounds.MinX,
		MinZ: lvl.Bounds.MinZ,
		MaxX: lvl.Bounds.MaxX,
		MaxZ: lvl.Bounds.MaxZ,
	}); err != nil {
		return fmt.Errorf("load level %s: add bounds: %w", lvl.Name, err)
	}

	for i, spawn := range lvl.Spawns {
		if _, err := b.Spawn(w, spawn); err != nil {
			return fmt.Errorf("load level %s: spawn %d: %w", lvl.Name, i, err)
		}
	}

	mesh, err := BakeNavMesh(w, lvl)
	if err != nil {
		return fmt.Errorf("load level %s: %w", lvl.Name, err)
	}
	navEntity := w.CreateEntity()
	if err := ecs.Add(w, navEntity, component.NavMeshComponent.Kind(), &component.NavMesh{Mesh: mesh}); err != nil {
		return fmt.Errorf("load level %s: add nav mesh: %w", lvl.Name, err)
	}
	return nil
}

// Spawn builds one level entry and applies its overrides.
func (b *Builder) Spawn(w *ecs.World, spawn levels.Spawn) (ecs.Entity, error) {
	e, err := b.Build(w, spawn.Prefab)
	if err != nil {
		return 0, err
	}

	if spawn.Name != "" {
		if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spawn.Name}); err != nil {
			return 0, err
		}
	}
	if spawn.At != nil {
		if err := SetEntityTransform(w, e, spawn.At.X, spawn.At.Y, spawn.At.Z, spawn.Yaw); err != nil {
			return 0, err
		}
	}
	if spawn.Size != nil {
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			if spawn.Size.Width > 0 {
				body.Width = spawn.Size.Width
			}
			if spawn.Size.Depth > 0 {
				body.Depth = spawn.Size.Depth
			}
		}
		if o, ok := ecs.Get(w, e, component.ObstacleComponent.Kind()); ok && spawn.Size.Height > 0 {
			o.Height = spawn.Size.Height
		}
	}
	return e, nil
}

// BakeNavMesh bakes the walkable grid around every obstacle in the world.
func BakeNavMesh(w *ecs.World, lvl *levels.Level) (*navmesh.Mesh, error) {
	var obstacles []navmesh.Rect
	ecs.ForEach3(w, component.ObstacleComponent.Kind(), component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.Obstacle, body *component.PhysicsBody, t *component.Transform) {
		hx, hz := body.Width/2, body.Depth/2
		if body.Radius > 0 {
			hx, hz = body.Radius, body.Radius
		}
		obstacles = append(obstacles, navmesh.Rect{
			MinX: t.Position.X - hx,
			MinZ: t.Position.Z - hz,
			MaxX: t.Position.X + hx,
			MaxZ: t.Position.Z + hz,
		})
	})

	cell := lvl.Nav.CellSize
	if cell <= 0 {
		cell = defaultCellSize
	}
	agent := lvl.Nav.AgentRadius
	if agent <= 0 {
		agent = defaultAgentRadius
	}

	bounds := navmesh.Rect{MinX: lvl.Bounds.MinX, MinZ: lvl.Bounds.MinZ, MaxX: lvl.Bounds.MaxX, MaxZ: lvl.Bounds.MaxZ}
	mesh, err := navmesh.Bake(bounds, obstacles, cell, agent)
	if err != nil {
		return nil, fmt.Errorf("bake nav mesh: %w", err)
	}
	return mesh, nil
}
