package component

import "testing"

func TestUpdateByDiscriminant(t *testing.T) {
	var a AnimatingState

	first := a.UpdateByDiscriminant(StandingState())
	if !first.Alter || first.HasOld {
		t.Fatalf("first update should alter without an old state, got %+v", first)
	}

	same := a.UpdateByDiscriminant(StandingState())
	if same.Alter {
		t.Fatalf("same kind should maintain, got %+v", same)
	}

	walk := a.UpdateByDiscriminant(WalkingState(3))
	if !walk.Alter || walk.Old.Kind != AnimationStanding || walk.State.Speed != 3 {
		t.Fatalf("unexpected transition %+v", walk)
	}

	faster := a.UpdateByDiscriminant(WalkingState(6))
	if faster.Alter {
		t.Fatalf("payload change must not alter, got %+v", faster)
	}
	if cur, _ := a.Current(); cur.Speed != 6 {
		t.Fatalf("expected latest payload to be kept, got %v", cur.Speed)
	}
}

func TestAnimationPlayerTransition(t *testing.T) {
	var p AnimationPlayer
	p.PlayWithTransition("idle", 0.2).Repeating()
	if p.Fade != 0 || p.Weight() != 1 {
		t.Fatalf("first clip has nothing to fade from, got fade=%v", p.Fade)
	}

	p.PlayWithTransition("walk", 0.1).Repeating()
	if p.Previous != "idle" || p.Fade != 0.1 || !p.Repeat {
		t.Fatalf("unexpected player %+v", p)
	}
	if !p.Fading() {
		t.Fatalf("expected a cross-fade in progress")
	}

	starts := p.Starts
	p.PlayWithTransition("walk", 0.1)
	if p.Starts != starts {
		t.Fatalf("replaying the current clip must not restart it")
	}
}
