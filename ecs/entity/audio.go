package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/foxtrot/assets"
	"github.com/milk9111/foxtrot/ecs/component"
	"github.com/milk9111/foxtrot/prefabs"
)

// buildAudioComponent creates one player per clip from the decoded bank.
// Without a bank the names are kept and the players stay nil.
func buildAudioComponent(clips []prefabs.AudioClipSpec, bank *assets.Bank) (*component.Audio, error) {
	n := len(clips)
	if n == 0 {
		return nil, nil
	}

	names := make([]string, 0, n)
	players := make([]*audio.Player, 0, n)
	volume := make([]float64, 0, n)

	for i, clip := range clips {
		var player *audio.Player
		if bank != nil {
			p, err := bank.NewPlayer(assets.SoundName(clip.File))
			if err != nil {
				return nil, fmt.Errorf("audio clip %d (%q): %w", i, clip.Name, err)
			}
			player = p
		}
		names = append(names, clip.Name)
		players = append(players, player)
		volume = append(volume, clip.Volume)
	}

	return &component.Audio{
		Names:   names,
		Players: players,
		Volume:  volume,
		Play:    make([]bool, n),
		Stop:    make([]bool, n),
	}, nil
}
