package component

// Track is the part of an audio player the music system drives.
type Track interface {
	Play()
	Pause()
	Rewind() error
	SetVolume(volume float64)
	IsPlaying() bool
}

// MusicPlayer stores level ambience playback on a persistent singleton so
// the same track keeps playing across reloads. The music system mutates it.
type MusicPlayer struct {
	Players      map[string]Track
	TrackVolumes map[string]float64

	CurrentTrack  string
	CurrentVolume float64
	CurrentLoop   bool

	PendingTrack  string
	PendingVolume float64
	PendingLoop   bool
	PendingActive bool

	FadeStep float64
}

var MusicPlayerComponent = NewComponent[MusicPlayer]()

// MusicRequest is a one-shot request for ambience playback. Only one track
// plays at a time: a new request fades the current track out, then starts
// the requested one. An empty Track fades to silence.
type MusicRequest struct {
	Track         string
	Volume        float64
	Loop          bool
	FadeOutFrames int
}

var MusicRequestComponent = NewComponent[MusicRequest]()
