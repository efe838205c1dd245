package ecs

import (
	"errors"
	"reflect"
	"testing"
)

func recorder(log *[]string, name string) System {
	return SystemFunc(func(*World) { *log = append(*log, name) })
}

func TestSchedulerOrdering(t *testing.T) {
	var ran []string
	s := NewScheduler()
	add := func(phase Phase, name string, opts ...SystemOption) {
		t.Helper()
		if err := s.Add(phase, name, recorder(&ran, name), opts...); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}

	add(Update, "animation", After("controller"))
	add(PreUpdate, "frozen", After("input"))
	add(PreUpdate, "input")
	add(Update, "controller")
	add(PostUpdate, "playback")
	add(Update, "camera", Before("animation"))

	if err := s.Build(); err != nil {
		t.Fatalf("build: %v", err)
	}
	s.Update(NewWorld())

	want := []string{"input", "frozen", "controller", "camera", "animation", "playback"}
	if !reflect.DeepEqual(ran, want) {
		t.Fatalf("run order\n got %v\nwant %v", ran, want)
	}
}

func TestSchedulerRunIf(t *testing.T) {
	var ran []string
	enabled := false
	s := NewScheduler()
	_ = s.Add(PreUpdate, "gated", recorder(&ran, "gated"), RunIf(func(*World) bool { return enabled }))

	w := NewWorld()
	s.Update(w)
	if len(ran) != 0 {
		t.Fatalf("gated system ran while disabled")
	}
	enabled = true
	s.Update(w)
	if len(ran) != 1 {
		t.Fatalf("gated system should run once enabled, ran %v", ran)
	}
}

func TestSchedulerErrors(t *testing.T) {
	noop := SystemFunc(func(*World) {})
	tests := []struct {
		name  string
		setup func(s *Scheduler) error
		want  error
	}{
		{
			name: "duplicate",
			setup: func(s *Scheduler) error {
				_ = s.Add(Update, "a", noop)
				return s.Add(Update, "a", noop)
			},
			want: ErrDuplicateSystem,
		},
		{
			name: "unknown",
			setup: func(s *Scheduler) error {
				_ = s.Add(Update, "a", noop, After("missing"))
				return s.Build()
			},
			want: ErrUnknownSystem,
		},
		{
			name: "cycle",
			setup: func(s *Scheduler) error {
				_ = s.Add(Update, "a", noop, After("b"))
				_ = s.Add(Update, "b", noop, After("a"))
				return s.Build()
			},
			want: ErrSystemCycle,
		},
		{
			name: "phase_conflict",
			setup: func(s *Scheduler) error {
				_ = s.Add(PreUpdate, "early", noop, After("late"))
				_ = s.Add(PostUpdate, "late", noop)
				return s.Build()
			},
			want: ErrPhaseOrder,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.setup(NewScheduler())
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestEventsLiveForOneFrame(t *testing.T) {
	w := NewWorld()
	s := NewScheduler()
	var seen int
	_ = s.Add(Update, "emit", SystemFunc(func(w *World) {
		w.Events().Push(Event{Kind: EventJumped})
	}))
	_ = s.Add(Update, "read", SystemFunc(func(w *World) {
		seen += len(w.Events().Read(EventJumped))
	}), After("emit"))

	s.Update(w)
	s.Update(w)
	if seen != 2 {
		t.Fatalf("expected one jump per frame, saw %d", seen)
	}
}
