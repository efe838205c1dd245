package system

import (
	"math"

	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
)

const defaultClipDuration = 1.0

// AnimationPlayerSystem advances clip time and cross-fades, and emits
// footstep events as walk cycles pass each foot plant.
type AnimationPlayerSystem struct{}

func NewAnimationPlayerSystem() *AnimationPlayerSystem {
	return &AnimationPlayerSystem{}
}

func (s *AnimationPlayerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.AnimationPlayerComponent.Kind(), func(e ecs.Entity, p *component.AnimationPlayer) {
		if p.Clip == "" {
			return
		}

		clip := component.AnimationClip{Duration: defaultClipDuration}
		if lib, ok := ecs.Get(w, e, component.AnimationLibraryComponent.Kind()); ok {
			if c, ok := lib.Clip(p.Clip); ok && c.Duration > 0 {
				clip = c
			}
		}

		dt := FrameDelta(w)
		if p.Fade > 0 && p.FadeElapsed < p.Fade {
			p.FadeElapsed = math.Min(p.FadeElapsed+dt, p.Fade)
			p.PreviousTime += dt
		}
		if p.Previous != "" && p.Weight() >= 1 {
			p.Previous = ""
			p.PreviousTime = 0
		}

		before := p.Time
		p.Time += dt * p.Speed
		if p.Time >= clip.Duration {
			if p.Repeat {
				p.Time = math.Mod(p.Time, clip.Duration)
			} else {
				p.Time = clip.Duration
			}
		}

		if clip.Footsteps > 0 && p.Owner != 0 {
			step := clip.Duration / float64(clip.Footsteps)
			prev := int(before / step)
			next := int(p.Time / step)
			if p.Time < before {
				// Wrapped; count the plant at the start of the cycle.
				next += clip.Footsteps
			}
			if next > prev {
				w.Events().Push(ecs.Event{Kind: ecs.EventFootstep, Entity: ecs.Entity(p.Owner)})
			}
		}
	})
}
