package system

import (
	"errors"
	"strings"

	"github.com/milk9111/foxtrot/assets"
	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
	"go.uber.org/zap"
)

const (
	defaultMusicVolume     = 0.6
	defaultMusicFadeFrames = 30
	musicPlayerID          = "music_player"
)

// MusicSystem plays one looping ambience track at a time, fading between
// tracks when a level asks for a different one.
type MusicSystem struct {
	open func(track string) (component.Track, error)
}

func NewMusicSystem(bank *assets.Bank) *MusicSystem {
	return &MusicSystem{open: func(track string) (component.Track, error) {
		if bank == nil {
			return nil, errors.New("music: no sound bank")
		}
		return bank.NewPlayer(track)
	}}
}

func RequestMusic(w *ecs.World, track string) {
	RequestMusicWithOptions(w, &component.MusicRequest{Track: track, Loop: true, FadeOutFrames: defaultMusicFadeFrames})
}

func RequestMusicWithOptions(w *ecs.World, req *component.MusicRequest) {
	if w == nil || req == nil {
		return
	}
	_ = ecs.Add(w, ecs.CreateEntity(w), component.MusicRequestComponent.Kind(), req)
}

func StopMusic(w *ecs.World) {
	RequestMusicWithOptions(w, &component.MusicRequest{FadeOutFrames: defaultMusicFadeFrames})
}

// MusicPlayer returns the persistent playback singleton, creating it on
// first use.
func MusicPlayer(w *ecs.World) *component.MusicPlayer {
	if e, ok := ecs.First(w, component.MusicPlayerComponent.Kind()); ok {
		if p, ok := ecs.Get(w, e, component.MusicPlayerComponent.Kind()); ok {
			return p
		}
	}
	e := ecs.CreateEntity(w)
	p := &component.MusicPlayer{Players: map[string]component.Track{}, TrackVolumes: map[string]float64{}}
	if err := ecs.Add(w, e, component.MusicPlayerComponent.Kind(), p); err != nil {
		panic("music system: add player: " + err.Error())
	}
	if err := ecs.Add(w, e, component.PersistentComponent.Kind(), &component.Persistent{
		ID:                musicPlayerID,
		KeepOnLevelChange: true,
		KeepOnReload:      true,
	}); err != nil {
		panic("music system: add persistent: " + err.Error())
	}
	return p
}

func (m *MusicSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	latest, requestEntities := m.consumeLatestRequest(w)
	for _, ent := range requestEntities {
		ecs.DestroyEntity(w, ent)
	}
	if latest == nil {
		if _, ok := ecs.First(w, component.MusicPlayerComponent.Kind()); !ok {
			return
		}
	}

	player := MusicPlayer(w)
	if player.Players == nil {
		player.Players = make(map[string]component.Track)
	}
	if player.TrackVolumes == nil {
		player.TrackVolumes = make(map[string]float64)
	}

	if latest != nil {
		m.applyRequest(player, *latest)
	}

	if player.PendingActive {
		m.updateTransition(player)
		return
	}

	current := m.currentPlayer(player)
	if current != nil && !current.IsPlaying() && player.CurrentTrack != "" && player.CurrentLoop {
		_ = current.Rewind()
		current.SetVolume(player.CurrentVolume)
		current.Play()
	}
}

func (m *MusicSystem) consumeLatestRequest(w *ecs.World) (*component.MusicRequest, []ecs.Entity) {
	var latest *component.MusicRequest
	requestEntities := make([]ecs.Entity, 0)

	ecs.ForEach(w, component.MusicRequestComponent.Kind(), func(ent ecs.Entity, req *component.MusicRequest) {
		requestEntities = append(requestEntities, ent)
		if req == nil {
			return
		}
		r := *req
		latest = &r
	})

	return latest, requestEntities
}

func (m *MusicSystem) applyRequest(player *component.MusicPlayer, req component.MusicRequest) {
	track := strings.TrimSpace(req.Track)
	volume := req.Volume
	if volume <= 0 {
		if v, ok := player.TrackVolumes[track]; ok && v > 0 {
			volume = v
		} else {
			volume = defaultMusicVolume
		}
	}
	volume = min(volume, 1)
	fadeFrames := req.FadeOutFrames
	if fadeFrames <= 0 {
		fadeFrames = defaultMusicFadeFrames
	}

	current := m.currentPlayer(player)
	if track == "" {
		player.PendingActive = false
		if current == nil {
			player.CurrentTrack = ""
			player.CurrentVolume = 0
			player.CurrentLoop = false
			return
		}
		player.PendingTrack = ""
		player.PendingVolume = 0
		player.PendingLoop = false
		player.PendingActive = true
		player.FadeStep = fadeStep(player.CurrentVolume, fadeFrames)
		return
	}

	if !player.PendingActive && player.CurrentTrack == track && current != nil {
		player.CurrentVolume = volume
		current.SetVolume(volume)
		if !current.IsPlaying() {
			_ = current.Rewind()
			current.Play()
		}
		return
	}

	player.PendingTrack = track
	player.PendingVolume = volume
	player.PendingLoop = req.Loop
	player.PendingActive = true
	if current == nil {
		m.switchToPending(player)
		return
	}
	player.FadeStep = fadeStep(player.CurrentVolume, fadeFrames)
}

func fadeStep(volume float64, frames int) float64 {
	step := volume / float64(frames)
	if step <= 0 {
		return 1
	}
	return step
}

func (m *MusicSystem) updateTransition(player *component.MusicPlayer) {
	current := m.currentPlayer(player)
	if current == nil {
		m.switchToPending(player)
		return
	}

	player.CurrentVolume -= player.FadeStep
	if player.CurrentVolume > 0 {
		current.SetVolume(player.CurrentVolume)
		return
	}

	player.CurrentVolume = 0
	current.SetVolume(0)
	current.Pause()
	_ = current.Rewind()
	player.CurrentTrack = ""
	player.CurrentLoop = false
	m.switchToPending(player)
}

func (m *MusicSystem) switchToPending(player *component.MusicPlayer) {
	if !player.PendingActive {
		return
	}

	track := strings.TrimSpace(player.PendingTrack)
	volume := player.PendingVolume
	loop := player.PendingLoop

	player.PendingTrack = ""
	player.PendingVolume = 0
	player.PendingLoop = false
	player.PendingActive = false
	player.FadeStep = 0

	player.CurrentTrack = ""
	player.CurrentVolume = 0
	player.CurrentLoop = false
	if track == "" {
		return
	}

	p, err := m.playerForTrack(player, track)
	if err != nil {
		zap.L().Warn("music: load track", zap.String("track", track), zap.Error(err))
		return
	}

	player.CurrentTrack = track
	player.CurrentVolume = volume
	player.CurrentLoop = loop
	_ = p.Rewind()
	p.SetVolume(volume)
	p.Play()
}

func (m *MusicSystem) currentPlayer(player *component.MusicPlayer) component.Track {
	if strings.TrimSpace(player.CurrentTrack) == "" || player.Players == nil {
		return nil
	}
	return player.Players[player.CurrentTrack]
}

func (m *MusicSystem) playerForTrack(player *component.MusicPlayer, track string) (component.Track, error) {
	if existing, ok := player.Players[track]; ok && existing != nil {
		return existing, nil
	}
	if m.open == nil {
		return nil, errors.New("music: no track source")
	}
	p, err := m.open(track)
	if err != nil {
		return nil, err
	}
	player.Players[track] = p
	return p, nil
}
