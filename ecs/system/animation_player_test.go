package system

import (
	"math"
	"testing"

	"github.com/milk9111/foxtrot/common"
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
)

func TestAnimationPlayerLoopsAndFades(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	p := &component.AnimationPlayer{}
	p.PlayWithTransition("idle", 0.2).Repeating()
	p.PlayWithTransition("walk", 0.1).Repeating()
	mustAdd(t, ecs.Add(w, e, component.AnimationPlayerComponent.Kind(), p))
	mustAdd(t, ecs.Add(w, e, component.AnimationLibraryComponent.Kind(), &component.AnimationLibrary{
		Clips: map[string]component.AnimationClip{"walk": {Duration: 0.5}},
	}))

	sys := NewAnimationPlayerSystem()
	for i := 0; i < 7; i++ {
		sys.Update(w)
	}
	if p.Fading() || p.Previous != "" {
		t.Fatalf("a 0.1s fade should be done after 7 frames, weight=%v", p.Weight())
	}

	for i := 0; i < 29; i++ {
		sys.Update(w)
	}
	// 36 frames at 60 TPS is 0.6s into a 0.5s loop.
	if math.Abs(p.Time-0.1) > 1e-6 {
		t.Fatalf("expected wrapped time 0.1, got %v", p.Time)
	}
}

func TestAnimationPlayerFootsteps(t *testing.T) {
	w := ecs.NewWorld()
	owner := ecs.CreateEntity(w)
	e := ecs.CreateEntity(w)
	p := &component.AnimationPlayer{Owner: uint64(owner)}
	p.PlayWithTransition("walk", 0).Repeating()
	mustAdd(t, ecs.Add(w, e, component.AnimationPlayerComponent.Kind(), p))
	mustAdd(t, ecs.Add(w, e, component.AnimationLibraryComponent.Kind(), &component.AnimationLibrary{
		Clips: map[string]component.AnimationClip{"walk": {Duration: 1, Footsteps: 2}},
	}))

	sys := NewAnimationPlayerSystem()
	for i := 0; i < common.TPS*2+common.TPS/4; i++ {
		sys.Update(w)
	}
	steps := w.Events().Read(ecs.EventFootstep)
	if len(steps) != 4 {
		t.Fatalf("two cycles with two plants each, got %d footsteps", len(steps))
	}
	if steps[0].Entity != owner {
		t.Fatalf("footstep should be attributed to the owner")
	}
}
