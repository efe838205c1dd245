package system

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
	"github.com/milk9111/foxtrot/ecs/entity"
	"github.com/milk9111/foxtrot/input"
	"github.com/milk9111/foxtrot/levels"
	"github.com/milk9111/foxtrot/saves"
	"go.uber.org/zap"
)

type PersistenceMode int

const (
	PersistenceOnLevelChange PersistenceMode = iota
	PersistenceOnReload
)

const dialogFlagsID = "dialog_flags"

// PersistenceSystem owns world rebuilds: the initial level load, reloads,
// level changes and save games.
type PersistenceSystem struct {
	levelName    string
	builder      *entity.Builder
	store        *saves.Store
	physicsReset func()
	initialized  bool
	loadSequence uint64
}

func NewPersistenceSystem(levelName string, builder *entity.Builder, store *saves.Store, physicsReset func()) *PersistenceSystem {
	return &PersistenceSystem{
		levelName:    levelName,
		builder:      builder,
		store:        store,
		physicsReset: physicsReset,
	}
}

func (p *PersistenceSystem) LevelName() string { return p.levelName }

func (p *PersistenceSystem) Update(w *ecs.World) {
	if p == nil || w == nil {
		return
	}

	if !p.initialized {
		// A save picked from the menu replaces the configured level.
		if req, ok := takeRequest(w, component.LoadSaveRequestComponent.Kind()); ok {
			err := p.loadSave(w, req.ID)
			if err == nil {
				p.initialized = true
				return
			}
			zap.L().Warn("persistence: load save", zap.String("id", req.ID), zap.Error(err))
		}
		if err := p.reloadWorld(w, PersistenceOnReload); err != nil {
			panic("persistence system: initial load failed: " + err.Error())
		}
		p.initialized = true
		return
	}

	if req, ok := takeRequest(w, component.LoadSaveRequestComponent.Kind()); ok {
		if err := p.loadSave(w, req.ID); err != nil {
			zap.L().Warn("persistence: load save", zap.String("id", req.ID), zap.Error(err))
		}
		return
	}

	if _, ok := takeRequest(w, component.SaveRequestComponent.Kind()); ok {
		if id, err := p.Save(w); err != nil {
			zap.L().Warn("persistence: save", zap.Error(err))
		} else {
			zap.L().Info("persistence: saved", zap.String("id", id), zap.String("level", p.levelName))
		}
	}

	if req, ok := takeRequest(w, component.ReloadRequestComponent.Kind()); ok {
		var pose *saves.Pose
		if req.KeepPlayer {
			if snap, ok := playerPose(w); ok {
				pose = &snap
			}
		}
		if err := p.reloadWorld(w, PersistenceOnReload); err != nil {
			zap.L().Error("persistence: reload failed", zap.String("level", p.levelName), zap.Error(err))
			return
		}
		if pose != nil {
			restorePlayer(w, *pose)
		}
		return
	}

	if req, ok := takeRequest(w, component.LevelChangeRequestComponent.Kind()); ok {
		previous := p.levelName
		if req.TargetLevel != "" {
			p.levelName = req.TargetLevel
		}
		if err := p.reloadWorld(w, PersistenceOnLevelChange); err != nil {
			zap.L().Error("persistence: level change failed", zap.String("level", p.levelName), zap.Error(err))
			p.levelName = previous
		}
	}
}

// takeRequest returns the first request of a kind and destroys all of them.
func takeRequest[T any](w *ecs.World, kind component.ComponentKind[T]) (T, bool) {
	var zero T
	ents := ecs.Query(w, kind)
	if len(ents) == 0 {
		return zero, false
	}
	req, ok := ecs.Get(w, ents[0], kind)
	if ok && req != nil {
		zero = *req
	}
	for _, e := range ents {
		ecs.DestroyEntity(w, e)
	}
	return zero, true
}

// Save writes the player pose, level and dialog flags.
func (p *PersistenceSystem) Save(w *ecs.World) (string, error) {
	if p.store == nil {
		return "", errors.New("persistence: no save store")
	}
	pose, ok := playerPose(w)
	if !ok {
		return "", errors.New("persistence: no player to save")
	}
	flags := make(map[string]int)
	for k, v := range DialogFlags(w).Values {
		flags[k] = v
	}
	return p.store.Put(&saves.Save{Level: p.levelName, Player: pose, Flags: flags})
}

func (p *PersistenceSystem) loadSave(w *ecs.World, id string) error {
	if p.store == nil {
		return errors.New("persistence: no save store")
	}
	var (
		save *saves.Save
		err  error
	)
	if id == "" {
		save, err = p.store.Latest()
	} else {
		save, err = p.store.Get(id)
	}
	if err != nil {
		return err
	}

	previous := p.levelName
	p.levelName = save.Level
	if err := p.reloadWorld(w, PersistenceOnLevelChange); err != nil {
		p.levelName = previous
		return err
	}

	flags := DialogFlags(w)
	flags.Values = make(map[string]int, len(save.Flags))
	for k, v := range save.Flags {
		flags.Values[k] = v
	}
	restorePlayer(w, save.Player)
	return nil
}

func playerPose(w *ecs.World) (saves.Pose, bool) {
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return saves.Pose{}, false
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return saves.Pose{}, false
	}
	return saves.Pose{X: t.Position.X, Y: t.Position.Y, Z: t.Position.Z, Yaw: t.Yaw}, true
}

func restorePlayer(w *ecs.World, pose saves.Pose) {
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	if err := entity.SetEntityTransform(w, player, pose.X, pose.Y, pose.Z, pose.Yaw); err != nil {
		zap.L().Warn("persistence: restore player", zap.Error(err))
	}
	// the physics body is created from the transform on the next step
	if body, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		body.Body.SetPosition(cp.Vector{X: pose.X, Y: pose.Z})
	}
}

func (p *PersistenceSystem) snapshotPersistentSingletons(w *ecs.World, mode PersistenceMode) map[string]ecs.Entity {
	preferred := map[string]ecs.Entity{}
	ecs.ForEach(w, component.PersistentComponent.Kind(), func(e ecs.Entity, persistent *component.Persistent) {
		if persistent == nil || persistent.ID == "" || !p.shouldKeep(persistent, mode) {
			return
		}
		if _, exists := preferred[persistent.ID]; !exists {
			preferred[persistent.ID] = e
		}
	})
	return preferred
}

func (p *PersistenceSystem) pruneForReload(w *ecs.World, mode PersistenceMode) {
	toDestroy := make([]ecs.Entity, 0)
	for _, e := range ecs.Entities(w) {
		persistent, ok := ecs.Get(w, e, component.PersistentComponent.Kind())
		if !ok || persistent == nil || !p.shouldKeep(persistent, mode) {
			toDestroy = append(toDestroy, e)
		}
	}
	for _, e := range toDestroy {
		ecs.DestroyEntity(w, e)
	}
}

func (p *PersistenceSystem) resolvePersistentSingletons(w *ecs.World, preferred map[string]ecs.Entity) {
	seen := make(map[string]ecs.Entity)
	toDestroy := make([]ecs.Entity, 0)
	ecs.ForEach(w, component.PersistentComponent.Kind(), func(e ecs.Entity, persistent *component.Persistent) {
		if persistent == nil || persistent.ID == "" {
			return
		}
		if keep, ok := preferred[persistent.ID]; ok {
			seen[persistent.ID] = keep
			if e != keep {
				toDestroy = append(toDestroy, e)
			}
			return
		}
		if existing, ok := seen[persistent.ID]; ok && existing != e {
			toDestroy = append(toDestroy, e)
			return
		}
		seen[persistent.ID] = e
	})
	for _, e := range toDestroy {
		ecs.DestroyEntity(w, e)
	}
}

func (p *PersistenceSystem) reloadWorld(w *ecs.World, mode PersistenceMode) error {
	level, err := levels.Load(p.levelName)
	if err != nil {
		return fmt.Errorf("load level %q: %w", p.levelName, err)
	}

	preferred := p.snapshotPersistentSingletons(w, mode)
	p.pruneForReload(w, mode)

	if p.physicsReset != nil {
		p.physicsReset()
	}

	builder := p.builder
	if builder == nil {
		builder = entity.NewBuilder(input.DefaultMaps(), nil)
	}
	if err := builder.LoadLevelToWorld(w, level); err != nil {
		return err
	}

	if _, ok := ecs.First(w, component.CameraComponent.Kind()); !ok {
		if _, err := builder.Build(w, "camera.yaml"); err != nil {
			return err
		}
	}

	p.resolvePersistentSingletons(w, preferred)

	flagsEnt, ok := ecs.First(w, component.DialogFlagsComponent.Kind())
	if !ok {
		DialogFlags(w)
		flagsEnt, _ = ecs.First(w, component.DialogFlagsComponent.Kind())
	}
	if !ecs.Has(w, flagsEnt, component.PersistentComponent.Kind()) {
		_ = ecs.Add(w, flagsEnt, component.PersistentComponent.Kind(), &component.Persistent{
			ID:                dialogFlagsID,
			KeepOnLevelChange: true,
			KeepOnReload:      true,
		})
	}

	if level.Music != "" {
		RequestMusic(w, level.Music)
	} else {
		StopMusic(w)
	}

	p.loadSequence++
	ent := ecs.CreateEntity(w)
	_ = ecs.Add(w, ent, component.LevelLoadedComponent.Kind(), &component.LevelLoaded{Name: level.Name, Sequence: p.loadSequence})
	zap.L().Info("persistence: level loaded", zap.String("level", level.Name), zap.Uint64("sequence", p.loadSequence))
	return nil
}

func (p *PersistenceSystem) shouldKeep(persistent *component.Persistent, mode PersistenceMode) bool {
	if persistent == nil {
		return false
	}
	if mode == PersistenceOnReload {
		return persistent.KeepOnReload
	}
	return persistent.KeepOnLevelChange
}
