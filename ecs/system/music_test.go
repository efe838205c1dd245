package system

import (
	"errors"
	"testing"

	"github.com/milk9111/foxtrot/ecs"
	"github.com/milk9111/foxtrot/ecs/component"
)

type fakeTrack struct {
	playing bool
	volume  float64
	rewinds int
}

func (f *fakeTrack) Play()               { f.playing = true }
func (f *fakeTrack) Pause()              { f.playing = false }
func (f *fakeTrack) Rewind() error       { f.rewinds++; return nil }
func (f *fakeTrack) SetVolume(v float64) { f.volume = v }
func (f *fakeTrack) IsPlaying() bool     { return f.playing }

func newFakeMusic() (*MusicSystem, map[string]*fakeTrack) {
	tracks := map[string]*fakeTrack{}
	m := &MusicSystem{open: func(name string) (component.Track, error) {
		if name == "missing" {
			return nil, errors.New("not loaded")
		}
		t := &fakeTrack{}
		tracks[name] = t
		return t, nil
	}}
	return m, tracks
}

func TestMusicStartsImmediatelyWhenSilent(t *testing.T) {
	w := ecs.NewWorld()
	m, tracks := newFakeMusic()

	RequestMusic(w, "ambience")
	m.Update(w)

	p := MusicPlayer(w)
	if p.CurrentTrack != "ambience" || !tracks["ambience"].playing {
		t.Fatalf("expected ambience playing, got %+v", p)
	}
	if tracks["ambience"].volume != defaultMusicVolume {
		t.Fatalf("expected default volume, got %v", tracks["ambience"].volume)
	}
	if n := len(w.Query(component.MusicRequestComponent.Kind())); n != 0 {
		t.Fatalf("expected requests consumed, got %d", n)
	}
}

func TestMusicFadesBetweenTracks(t *testing.T) {
	w := ecs.NewWorld()
	m, tracks := newFakeMusic()
	RequestMusic(w, "ambience")
	m.Update(w)

	RequestMusicWithOptions(w, &component.MusicRequest{Track: "night", Volume: 1, Loop: true, FadeOutFrames: 4})
	m.Update(w)
	if !MusicPlayer(w).PendingActive || tracks["night"] != nil {
		t.Fatalf("expected a fade before switching")
	}

	for i := 0; i < 4 && MusicPlayer(w).PendingActive; i++ {
		m.Update(w)
	}
	p := MusicPlayer(w)
	if p.CurrentTrack != "night" || tracks["ambience"].playing || !tracks["night"].playing {
		t.Fatalf("expected night after fade, got %+v", p)
	}
}

func TestMusicSameTrackKeepsPlaying(t *testing.T) {
	w := ecs.NewWorld()
	m, tracks := newFakeMusic()
	RequestMusic(w, "ambience")
	m.Update(w)
	rewinds := tracks["ambience"].rewinds

	RequestMusic(w, "ambience")
	m.Update(w)
	if MusicPlayer(w).PendingActive || tracks["ambience"].rewinds != rewinds {
		t.Fatalf("same track must not restart")
	}
}

func TestMusicLoopsAndStops(t *testing.T) {
	w := ecs.NewWorld()
	m, tracks := newFakeMusic()
	RequestMusic(w, "ambience")
	m.Update(w)

	tracks["ambience"].playing = false
	m.Update(w)
	if !tracks["ambience"].playing {
		t.Fatalf("expected the looping track to restart")
	}

	StopMusic(w)
	for i := 0; i <= defaultMusicFadeFrames; i++ {
		m.Update(w)
	}
	if p := MusicPlayer(w); p.CurrentTrack != "" || tracks["ambience"].playing {
		t.Fatalf("expected silence, got %+v", p)
	}
}

func TestMusicMissingTrackIsSilent(t *testing.T) {
	w := ecs.NewWorld()
	m, _ := newFakeMusic()
	RequestMusic(w, "missing")
	m.Update(w)
	if p := MusicPlayer(w); p.CurrentTrack != "" || p.PendingActive {
		t.Fatalf("expected no track, got %+v", p)
	}
}

func TestMusicPlayerIsPersistent(t *testing.T) {
	w := ecs.NewWorld()
	MusicPlayer(w)
	e, _ := w.First(component.MusicPlayerComponent.Kind())
	p, ok := ecs.Get(w, e, component.PersistentComponent.Kind())
	if !ok || !p.KeepOnReload || !p.KeepOnLevelChange {
		t.Fatalf("expected a persistent music player")
	}
}
