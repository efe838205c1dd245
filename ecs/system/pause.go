package system

import (
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
	"github.com/milk9111/foxtrot/input"
)

// PauseSystem reports TogglePause presses to the game, which owns the menu.
type PauseSystem struct {
	onToggle func()
}

func NewPauseSystem(onToggle func()) *PauseSystem {
	return &PauseSystem{onToggle: onToggle}
}

func (s *PauseSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	toggled := false
	ecs.ForEach(w, component.UIActionsComponent.Kind(), func(_ ecs.Entity, a *component.UIActions) {
		if a.State.JustPressed(input.TogglePause) {
			toggled = true
		}
	})

	if toggled && s.onToggle != nil {
		s.onToggle()
	}
}

// SetPaused adds or removes the Paused singleton and holds one action
// freeze while paused. It reports whether anything changed.
func SetPaused(w *ecs.World, paused bool) bool {
	e, exists := ecs.First(w, component.PausedComponent.Kind())
	switch {
	case paused && !exists:
		if err := ecs.Add(w, ecs.CreateEntity(w), component.PausedComponent.Kind(), &component.Paused{}); err != nil {
			panic("pause: add paused: " + err.Error())
		}
		ActionsFrozen(w).Freeze()
		return true
	case !paused && exists:
		ecs.DestroyEntity(w, e)
		ActionsFrozen(w).Unfreeze()
		return true
	}
	return false
}

func IsPaused(w *ecs.World) bool {
	_, ok := ecs.First(w, component.PausedComponent.Kind())
	return ok
}

// NotPaused is a scheduler condition for gameplay systems.
func NotPaused(w *ecs.World) bool {
	return !IsPaused(w)
}
