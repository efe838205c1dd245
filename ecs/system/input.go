package system

import (
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
	"github.com/milk9111/foxtrot/input"
)

// ActionInputSystem rebuilds every action holder's state from its bindings.
type ActionInputSystem struct {
	src input.Source
}

func NewActionInputSystem(src input.Source) *ActionInputSystem {
	return &ActionInputSystem{src: src}
}

func (s *ActionInputSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.src == nil {
		return
	}

	if p, ok := s.src.(input.Poller); ok {
		p.Poll()
	}

	ecs.ForEach(w, component.PlayerActionsComponent.Kind(), func(e ecs.Entity, a *component.PlayerActions) {
		a.Map.Update(s.src, &a.State)
	})
	ecs.ForEach(w, component.CameraActionsComponent.Kind(), func(e ecs.Entity, a *component.CameraActions) {
		a.Map.Update(s.src, &a.State)
	})
	ecs.ForEach(w, component.UIActionsComponent.Kind(), func(e ecs.Entity, a *component.UIActions) {
		a.Map.Update(s.src, &a.State)
	})
}
