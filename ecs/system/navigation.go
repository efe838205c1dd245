package system

import (
	"errors"

	"github.com/milk9111/foxtrot/common"
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
	"github.com/milk9111/foxtrot/navmesh"
	"go.uber.org/zap"
)

const (
	defaultRepathFrames = 15
	defaultFollowSpeed  = 5.0
	waypointReach       = 0.35
)

// NavigationSystem steers Follower entities toward their target over the
// level's nav mesh by writing controller intent.
type NavigationSystem struct{}

func NewNavigationSystem() *NavigationSystem {
	return &NavigationSystem{}
}

func (s *NavigationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	mesh := navMesh(w)
	if mesh == nil {
		return
	}

	ecs.ForEach3(w, component.FollowerComponent.Kind(), component.CharacterControllerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, f *component.Follower, ctrl *component.CharacterController, t *component.Transform) {
		if ctrl.Walk == nil {
			return
		}
		walk := ctrl.Walk

		target, ok := resolveFollowTarget(w, f)
		if !ok {
			walk.DesiredVelocity = common.Vec2{}
			f.Path = nil
			return
		}
		tt, ok := ecs.Get(w, target, component.TransformComponent.Kind())
		if !ok {
			return
		}

		from := t.Position.Ground()
		to := tt.Position.Ground()
		dist := to.Sub(from).Length()
		if dist <= f.StoppingDist || (f.FollowRange > 0 && dist > f.FollowRange) {
			walk.DesiredVelocity = common.Vec2{}
			f.Path = nil
			return
		}

		if f.RepathFrames <= 0 {
			f.RepathFrames = defaultRepathFrames
		}
		cx, cz := mesh.Cell(to)
		f.FrameCounter++
		if len(f.Path) == 0 || f.FrameCounter%f.RepathFrames == 0 || cx != f.LastTargetCellX || cz != f.LastTargetCellZ {
			path, err := mesh.FindPath(from, to)
			switch {
			case err == nil:
				f.Path = path
			case errors.Is(err, navmesh.ErrBlocked), errors.Is(err, navmesh.ErrNoPath):
				// Target is standing somewhere unreachable; head straight for it.
				f.Path = []common.Vec2{to}
			default:
				zap.L().Debug("navigation: find path", zap.Stringer("entity", e), zap.Error(err))
				f.Path = nil
			}
			f.LastTargetCellX, f.LastTargetCellZ = cx, cz
		}

		for len(f.Path) > 1 && f.Path[0].Sub(from).Length() < waypointReach {
			f.Path = f.Path[1:]
		}
		if len(f.Path) == 0 {
			walk.DesiredVelocity = common.Vec2{}
			return
		}

		speed := f.Speed
		if speed <= 0 {
			speed = defaultFollowSpeed
		}
		dir := f.Path[0].Sub(from).Normalize()
		walk.DesiredVelocity = dir.Scale(speed)
		walk.DesiredForward = dir
	})
}

func navMesh(w *ecs.World) *navmesh.Mesh {
	e, ok := ecs.First(w, component.NavMeshComponent.Kind())
	if !ok {
		return nil
	}
	nm, ok := ecs.Get(w, e, component.NavMeshComponent.Kind())
	if !ok {
		return nil
	}
	return nm.Mesh
}

func resolveFollowTarget(w *ecs.World, f *component.Follower) (ecs.Entity, bool) {
	if f.Target != 0 && ecs.IsAlive(w, ecs.Entity(f.Target)) {
		return ecs.Entity(f.Target), true
	}
	if f.TargetName == "" {
		return 0, false
	}
	e, ok := findByName(w, f.TargetName)
	if ok {
		f.Target = uint64(e)
	}
	return e, ok
}

func findByName(w *ecs.World, name string) (ecs.Entity, bool) {
	for _, e := range ecs.Query(w, component.NameComponent.Kind()) {
		if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok && n.Value == name {
			return e, true
		}
	}
	return 0, false
}
