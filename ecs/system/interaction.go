package system

import (
	"math"

	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
	"github.com/milk9111/foxtrot/input"
)

const defaultInteractRadius = 2.0

// InteractionSystem opens a dialog with the nearest interactable in reach
// when the player presses Interact.
type InteractionSystem struct{}

func NewInteractionSystem() *InteractionSystem {
	return &InteractionSystem{}
}

func (s *InteractionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if _, open := ecs.First(w, component.DialogSessionComponent.Kind()); open {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	actions, ok := ecs.Get(w, player, component.PlayerActionsComponent.Kind())
	if !ok || !actions.State.JustPressed(input.Interact) {
		return
	}

	target, inter, ok := NearestInteractable(w, player)
	if !ok {
		return
	}

	if err := ecs.Add(w, ecs.CreateEntity(w), component.DialogSessionComponent.Kind(), &component.DialogSession{
		Dialog:  inter.Dialog,
		Speaker: uint64(target),
	}); err != nil {
		panic("interaction system: add dialog session: " + err.Error())
	}
	ActionsFrozen(w).Freeze()
	w.Events().Push(ecs.Event{Kind: ecs.EventDialogStarted, Entity: target, Data: inter.Dialog})
}

// NearestInteractable returns the closest interactable whose radius reaches
// from.
func NearestInteractable(w *ecs.World, from ecs.Entity) (ecs.Entity, *component.Interactable, bool) {
	ft, ok := ecs.Get(w, from, component.TransformComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	origin := ft.Position.Ground()

	var (
		best     ecs.Entity
		bestComp *component.Interactable
		bestDist = math.Inf(1)
	)
	ecs.ForEach2(w, component.InteractableComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, in *component.Interactable, t *component.Transform) {
		if e == from || in.Dialog == "" {
			return
		}
		r := in.Radius
		if r <= 0 {
			r = defaultInteractRadius
		}
		d := t.Position.Ground().Sub(origin).Length()
		if d <= r && d < bestDist {
			best, bestComp, bestDist = e, in, d
		}
	})
	return best, bestComp, bestComp != nil
}
