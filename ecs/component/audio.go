package component

import "github.com/hajimehoshi/ebiten/v2/audio"

// Audio holds parallel slices of named players. Systems request playback by
// setting Play or Stop at the index of a name.
type Audio struct {
	Names   []string
	Players []*audio.Player
	Volume  []float64
	Play    []bool
	Stop    []bool
}

func (a *Audio) Index(name string) int {
	for i, n := range a.Names {
		if n == name {
			return i
		}
	}
	return -1
}

var AudioComponent = NewComponent[Audio]()

// AudioCue maps world events to sound names on the emitting entity.
type AudioCue struct {
	Jump     string
	Land     string
	Footstep string
}

var AudioCueComponent = NewComponent[AudioCue]()
