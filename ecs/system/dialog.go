package system

import (
	"github.com/milk9111/foxtrot/dialog"
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
	"github.com/milk9111/foxtrot/input"
	"go.uber.org/zap"
)

// revealRate is how many characters of a line appear per second.
const revealRate = 45.0

// DialogSystem advances the open dialog session: reveals lines, applies
// numbered choices and closes the session at the end of the tree.
type DialogSystem struct {
	library *dialog.Library
}

func NewDialogSystem(library *dialog.Library) *DialogSystem {
	return &DialogSystem{library: library}
}

func (s *DialogSystem) SetLibrary(library *dialog.Library) {
	s.library = library
}

func (s *DialogSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	sessionEnt, ok := ecs.First(w, component.DialogSessionComponent.Kind())
	if !ok {
		return
	}
	session, _ := ecs.Get(w, sessionEnt, component.DialogSessionComponent.Kind())

	tree, err := s.library.Tree(session.Dialog)
	if err != nil {
		zap.L().Warn("dialog: open session", zap.Error(err))
		s.close(w, sessionEnt, session)
		return
	}

	flags := DialogFlags(w)

	if session.Node == "" {
		s.enter(w, session, tree, flags, tree.Start)
	}
	node, ok := tree.Node(session.Node)
	if !ok {
		s.close(w, sessionEnt, session)
		return
	}

	var actions *input.PlayerActionState
	if player, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		if pa, ok := ecs.Get(w, player, component.PlayerActionsComponent.Kind()); ok {
			actions = &pa.State
		}
	}

	textLen := float64(len([]rune(node.Text)))
	revealed := session.Shown >= textLen
	session.Shown = min(session.Shown+revealRate*FrameDelta(w), textLen)

	if actions == nil {
		return
	}

	if actions.JustPressed(input.SpeedUpDialog) {
		if !revealed {
			session.Shown = textLen
			return
		}
		if len(node.Choices) == 0 {
			s.advance(w, sessionEnt, session, tree, flags, node.Next)
			return
		}
	}

	if !revealed {
		return
	}
	for slot, a := range input.NumberedChoices {
		if !actions.JustPressed(a) || slot >= len(session.Choices) {
			continue
		}
		choice := node.Choices[session.Choices[slot]]
		for k, v := range choice.Set {
			flags.Set(k, v)
		}
		s.advance(w, sessionEnt, session, tree, flags, choice.Next)
		return
	}
}

func (s *DialogSystem) advance(w *ecs.World, e ecs.Entity, session *component.DialogSession, tree *dialog.Tree, flags *component.DialogFlags, next string) {
	if next == "" || next == dialog.End {
		s.close(w, e, session)
		return
	}
	s.enter(w, session, tree, flags, next)
}

func (s *DialogSystem) enter(w *ecs.World, session *component.DialogSession, tree *dialog.Tree, flags *component.DialogFlags, id string) {
	node, ok := tree.Node(id)
	if !ok {
		return
	}
	session.Node = id
	session.Shown = 0
	for k, v := range node.Set {
		flags.Set(k, v)
	}
	available, err := node.Available(flags.Values)
	if err != nil {
		zap.L().Warn("dialog: evaluate choices", zap.String("dialog", tree.ID), zap.String("node", id), zap.Error(err))
		available = nil
	}
	session.Choices = available
}

func (s *DialogSystem) close(w *ecs.World, e ecs.Entity, session *component.DialogSession) {
	w.Events().Push(ecs.Event{Kind: ecs.EventDialogEnded, Entity: ecs.Entity(session.Speaker), Data: session.Dialog})
	ecs.DestroyEntity(w, e)
	ActionsFrozen(w).Unfreeze()
}

// DialogFlags returns the world's flag store, creating it on first use.
func DialogFlags(w *ecs.World) *component.DialogFlags {
	if e, ok := ecs.First(w, component.DialogFlagsComponent.Kind()); ok {
		if f, ok := ecs.Get(w, e, component.DialogFlagsComponent.Kind()); ok {
			return f
		}
	}
	f := &component.DialogFlags{Values: map[string]int{}}
	if err := ecs.Add(w, ecs.CreateEntity(w), component.DialogFlagsComponent.Kind(), f); err != nil {
		panic("dialog system: add flags: " + err.Error())
	}
	return f
}
