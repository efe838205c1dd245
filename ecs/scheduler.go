package ecs

import (
	"errors"
	"fmt"
	"sort"
)

// Phase groups systems inside one frame. Phases always run in declaration order.
type Phase int

const (
	PreUpdate Phase = iota
	Update
	PostUpdate
)

var phases = []Phase{PreUpdate, Update, PostUpdate}

func (p Phase) String() string {
	switch p {
	case PreUpdate:
		return "pre_update"
	case Update:
		return "update"
	case PostUpdate:
		return "post_update"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

var (
	ErrDuplicateSystem = errors.New("scheduler: duplicate system name")
	ErrUnknownSystem   = errors.New("scheduler: unknown system")
	ErrSystemCycle     = errors.New("scheduler: ordering cycle")
	ErrPhaseOrder      = errors.New("scheduler: ordering conflicts with phase")
)

// Condition gates a system for the current frame.
type Condition func(w *World) bool

type SystemOption func(*systemEntry)

// After orders the system after the named systems.
func After(names ...string) SystemOption {
	return func(e *systemEntry) { e.after = append(e.after, names...) }
}

// Before orders the system before the named systems.
func Before(names ...string) SystemOption {
	return func(e *systemEntry) { e.before = append(e.before, names...) }
}

// RunIf skips the system on frames where cond is false.
func RunIf(cond Condition) SystemOption {
	return func(e *systemEntry) {
		if cond != nil {
			e.runIf = append(e.runIf, cond)
		}
	}
}

type systemEntry struct {
	name   string
	phase  Phase
	system System
	after  []string
	before []string
	runIf  []Condition
	seq    int
}

func (e *systemEntry) shouldRun(w *World) bool {
	for _, cond := range e.runIf {
		if !cond(w) {
			return false
		}
	}
	return true
}

// Scheduler runs named systems per phase, honoring After/Before constraints.
// Systems without constraints keep insertion order.
type Scheduler struct {
	entries map[string]*systemEntry
	order   map[Phase][]*systemEntry
	nextSeq int
	dirty   bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		entries: make(map[string]*systemEntry),
		order:   make(map[Phase][]*systemEntry),
	}
}

func (s *Scheduler) Add(phase Phase, name string, system System, opts ...SystemOption) error {
	if system == nil {
		return fmt.Errorf("scheduler: add %q: nil system", name)
	}
	if _, exists := s.entries[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateSystem, name)
	}
	entry := &systemEntry{name: name, phase: phase, system: system, seq: s.nextSeq}
	for _, opt := range opts {
		opt(entry)
	}
	s.nextSeq++
	s.entries[name] = entry
	s.dirty = true
	return nil
}

// Build resolves the run order. It is called lazily by Update, but callers
// that want configuration errors up front should call it once after adding.
func (s *Scheduler) Build() error {
	order := make(map[Phase][]*systemEntry, len(phases))
	edges := make(map[string][]string)
	indegree := make(map[string]int, len(s.entries))
	for name := range s.entries {
		indegree[name] = 0
	}

	link := func(from, to *systemEntry) error {
		if from.phase != to.phase {
			if from.phase > to.phase {
				return fmt.Errorf("%w: %q (%s) must run before %q (%s)", ErrPhaseOrder, from.name, from.phase, to.name, to.phase)
			}
			return nil
		}
		edges[from.name] = append(edges[from.name], to.name)
		indegree[to.name]++
		return nil
	}

	for _, entry := range s.entries {
		for _, dep := range entry.after {
			other, ok := s.entries[dep]
			if !ok {
				return fmt.Errorf("%w: %q referenced by %q", ErrUnknownSystem, dep, entry.name)
			}
			if err := link(other, entry); err != nil {
				return err
			}
		}
		for _, dep := range entry.before {
			other, ok := s.entries[dep]
			if !ok {
				return fmt.Errorf("%w: %q referenced by %q", ErrUnknownSystem, dep, entry.name)
			}
			if err := link(entry, other); err != nil {
				return err
			}
		}
	}

	for _, phase := range phases {
		var ready []*systemEntry
		total := 0
		for _, entry := range s.entries {
			if entry.phase != phase {
				continue
			}
			total++
			if indegree[entry.name] == 0 {
				ready = append(ready, entry)
			}
		}

		sorted := make([]*systemEntry, 0, total)
		for len(ready) > 0 {
			sort.Slice(ready, func(i, j int) bool { return ready[i].seq < ready[j].seq })
			next := ready[0]
			ready = ready[1:]
			sorted = append(sorted, next)
			for _, to := range edges[next.name] {
				indegree[to]--
				if indegree[to] == 0 {
					ready = append(ready, s.entries[to])
				}
			}
		}
		if len(sorted) != total {
			return fmt.Errorf("%w in %s", ErrSystemCycle, phase)
		}
		order[phase] = sorted
	}

	s.order = order
	s.dirty = false
	return nil
}

// Update runs every phase once.
func (s *Scheduler) Update(w *World) {
	if s == nil {
		return
	}
	if s.dirty {
		if err := s.Build(); err != nil {
			panic("scheduler: build: " + err.Error())
		}
	}
	for _, phase := range phases {
		for _, entry := range s.order[phase] {
			if entry.shouldRun(w) {
				entry.system.Update(w)
			}
		}
	}
	w.Events().flush()
}

// Systems returns the resolved system names of a phase in run order.
func (s *Scheduler) Systems(phase Phase) ([]string, error) {
	if s.dirty {
		if err := s.Build(); err != nil {
			return nil, err
		}
	}
	names := make([]string, 0, len(s.order[phase]))
	for _, entry := range s.order[phase] {
		names = append(names, entry.name)
	}
	return names, nil
}
