package system

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/foxtrot/common"
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/input"
)

func newInputScheduler(t *testing.T, src input.Source) *ecs.Scheduler {
	t.Helper()
	s := ecs.NewScheduler()
	if err := s.Add(ecs.PreUpdate, "input", NewActionInputSystem(src)); err != nil {
		t.Fatalf("add input: %v", err)
	}
	if err := s.Add(ecs.PreUpdate, "actions_frozen", NewActionsFrozenSystem(), ecs.After("input"), ecs.RunIf(IsFrozen)); err != nil {
		t.Fatalf("add actions_frozen: %v", err)
	}
	return s
}

func holdEverything(src *fakeSource) {
	for _, k := range []ebiten.Key{ebiten.KeyW, ebiten.KeyD, ebiten.KeySpace, ebiten.KeyE, ebiten.KeyShiftLeft, ebiten.KeyDigit1} {
		src.keys[k] = true
	}
	src.cursor = common.Vec2{X: 12, Y: -4}
	src.wheel = common.Vec2{Y: 1}
}

func TestActionsPassThroughWhenNotFrozen(t *testing.T) {
	src := newFakeSource()
	holdEverything(src)
	w, pa, ca := newActionWorld()
	ActionsFrozen(w)

	newInputScheduler(t, src).Update(w)

	if pa.State.AxisPair(input.Move).IsZero() {
		t.Fatalf("expected move input")
	}
	if !pa.State.JustPressed(input.Jump) || !pa.State.Pressed(input.Sprint) || !pa.State.Pressed(input.Interact) {
		t.Fatalf("expected buttons to be pressed")
	}
	if ca.State.AxisPair(input.Orbit).IsZero() || ca.State.Value(input.Zoom) == 0 {
		t.Fatalf("expected camera input")
	}
}

func TestFreezeSuppressesActions(t *testing.T) {
	src := newFakeSource()
	holdEverything(src)
	w, pa, ca := newActionWorld()
	ActionsFrozen(w).Freeze()

	sched := newInputScheduler(t, src)
	for frame := 0; frame < 3; frame++ {
		sched.Update(w)

		if !pa.State.AxisPair(input.Move).IsZero() {
			t.Fatalf("frame %d: move axis leaked: %v", frame, pa.State.AxisPair(input.Move))
		}
		for _, a := range []input.PlayerAction{input.Jump, input.Interact, input.Sprint} {
			if pa.State.Pressed(a) || pa.State.JustPressed(a) {
				t.Fatalf("frame %d: %v should be released", frame, a)
			}
		}
		if !ca.State.AxisPair(input.Orbit).IsZero() {
			t.Fatalf("frame %d: orbit leaked", frame)
		}
		if ca.State.Value(input.Zoom) != 0 {
			t.Fatalf("frame %d: zoom leaked", frame)
		}
		if !pa.State.Pressed(input.NumberedChoice1) {
			t.Fatalf("frame %d: numbered choices must stay available during a freeze", frame)
		}
	}
}

func TestNestedFreezesRelease(t *testing.T) {
	src := newFakeSource()
	holdEverything(src)
	w, pa, _ := newActionWorld()
	frozen := ActionsFrozen(w)
	frozen.Freeze()
	frozen.Freeze()

	sched := newInputScheduler(t, src)
	sched.Update(w)

	frozen.Unfreeze()
	sched.Update(w)
	if pa.State.Pressed(input.Jump) {
		t.Fatalf("one freeze still held, jump must stay suppressed")
	}

	frozen.Unfreeze()
	sched.Update(w)
	if !pa.State.Pressed(input.Jump) || !pa.State.JustPressed(input.Jump) {
		t.Fatalf("after the last unfreeze a held key should read as a fresh press")
	}
}
