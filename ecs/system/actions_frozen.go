package system

import (
	"github.com/milk9111/foxtrot/common"
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
	"github.com/milk9111/foxtrot/input"
)

// ActionsFrozenSystem clears gameplay and camera input while a freeze is
// held. It must run after ActionInputSystem in the same frame. UI actions
// and numbered dialog choices are left alone.
type ActionsFrozenSystem struct{}

func NewActionsFrozenSystem() *ActionsFrozenSystem {
	return &ActionsFrozenSystem{}
}

func (s *ActionsFrozenSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.PlayerActionsComponent.Kind(), func(e ecs.Entity, a *component.PlayerActions) {
		a.State.Data(input.Move).Axis = common.Vec2{}
		a.State.Release(input.Jump)
		a.State.Release(input.Interact)
		a.State.Release(input.Sprint)
	})
	ecs.ForEach(w, component.CameraActionsComponent.Kind(), func(e ecs.Entity, a *component.CameraActions) {
		a.State.Data(input.Orbit).Axis = common.Vec2{}
		a.State.Data(input.Zoom).Value = 0
	})
}

// ActionsFrozen returns the world's freeze counter, creating the singleton
// on first use.
func ActionsFrozen(w *ecs.World) *component.ActionsFrozen {
	if e, ok := ecs.First(w, component.ActionsFrozenComponent.Kind()); ok {
		if f, ok := ecs.Get(w, e, component.ActionsFrozenComponent.Kind()); ok {
			return f
		}
	}
	f := &component.ActionsFrozen{}
	if err := ecs.Add(w, ecs.CreateEntity(w), component.ActionsFrozenComponent.Kind(), f); err != nil {
		panic("actions frozen: add singleton: " + err.Error())
	}
	return f
}

// IsFrozen is a scheduler condition for ActionsFrozenSystem.
func IsFrozen(w *ecs.World) bool {
	e, ok := ecs.First(w, component.ActionsFrozenComponent.Kind())
	if !ok {
		return false
	}
	f, ok := ecs.Get(w, e, component.ActionsFrozenComponent.Kind())
	return ok && f.IsFrozen()
}
