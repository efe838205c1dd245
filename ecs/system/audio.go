package system

import (
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
)

// AudioSystem turns this frame's gameplay events into play requests via each
// entity's AudioCue, then services Play and Stop requests.
type AudioSystem struct{}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{}
}

func (a *AudioSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	a.queueCues(w)

	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := min(len(audioComp.Play), len(audioComp.Players))

		for i := 0; i < count; i++ {
			if !audioComp.Play[i] {
				continue
			}

			player := audioComp.Players[i]
			if player != nil {
				if i < len(audioComp.Volume) {
					player.SetVolume(audioComp.Volume[i])
				}
				if err := player.Rewind(); err == nil {
					player.Play()
				}
			}

			audioComp.Play[i] = false
		}

		for i := 0; i < min(count, len(audioComp.Stop)); i++ {
			if !audioComp.Stop[i] {
				continue
			}

			player := audioComp.Players[i]
			if player != nil && player.IsPlaying() {
				player.Pause()
			}

			audioComp.Stop[i] = false
		}
	})
}

func (a *AudioSystem) queueCues(w *ecs.World) {
	var events []ecs.Event
	for _, kind := range []ecs.EventKind{ecs.EventJumped, ecs.EventLanded, ecs.EventFootstep} {
		events = append(events, w.Events().Read(kind)...)
	}
	for _, evt := range events {
		cue, ok := ecs.Get(w, evt.Entity, component.AudioCueComponent.Kind())
		if !ok {
			continue
		}
		var name string
		switch evt.Kind {
		case ecs.EventJumped:
			name = cue.Jump
		case ecs.EventLanded:
			name = cue.Land
		case ecs.EventFootstep:
			name = cue.Footstep
		}
		if name == "" {
			continue
		}
		audioComp, ok := ecs.Get(w, evt.Entity, component.AudioComponent.Kind())
		if !ok {
			continue
		}
		if i := audioComp.Index(name); i >= 0 && i < len(audioComp.Play) {
			audioComp.Play[i] = true
		}
	}
}
