package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

const SampleRate = 44100

var (
	contextOnce  sync.Once
	audioContext *audio.Context
)

// AudioContext returns the process wide audio context.
func AudioContext() *audio.Context {
	contextOnce.Do(func() {
		audioContext = audio.NewContext(SampleRate)
	})
	return audioContext
}

// Bank holds decoded PCM keyed by sound name (file name without extension).
type Bank struct {
	mu     sync.RWMutex
	sounds map[string][]byte
}

func NewBank() *Bank {
	return &Bank{sounds: make(map[string][]byte)}
}

func (b *Bank) put(name string, pcm []byte) {
	b.mu.Lock()
	b.sounds[name] = pcm
	b.mu.Unlock()
}

// PCM returns the decoded samples for name.
func (b *Bank) PCM(name string) ([]byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	pcm, ok := b.sounds[name]
	return pcm, ok
}

func (b *Bank) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.sounds)
}

// NewPlayer creates a player for a decoded sound.
func (b *Bank) NewPlayer(name string) (*audio.Player, error) {
	pcm, ok := b.PCM(name)
	if !ok {
		return nil, fmt.Errorf("assets: sound %q not loaded", name)
	}
	return AudioContext().NewPlayerFromBytes(pcm), nil
}

// Loader decodes assets on a worker pool so the loading screen keeps drawing.
type Loader struct {
	pool *ants.Pool
	read func(string) ([]byte, error)
}

func NewLoader(workers int) (*Loader, error) {
	if workers <= 0 {
		workers = 4
	}
	pool, err := ants.NewPool(workers, ants.WithPanicHandler(func(p any) {
		zap.L().Error("assets: loader worker panic", zap.Any("panic", p))
	}))
	if err != nil {
		return nil, fmt.Errorf("assets: create pool: %w", err)
	}
	return &Loader{pool: pool, read: LoadFile}, nil
}

func (l *Loader) Release() {
	if l != nil && l.pool != nil {
		l.pool.Release()
	}
}

// LoadSounds decodes every path into bank. The first error wins; remaining
// tasks still drain before returning.
func (l *Loader) LoadSounds(ctx context.Context, bank *Bank, paths []string) error {
	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() { firstErr = err })
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			fail(err)
			break
		}
		p := p
		wg.Add(1)
		err := l.pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				fail(err)
				return
			}
			pcm, err := l.decode(p)
			if err != nil {
				fail(err)
				return
			}
			bank.put(SoundName(p), pcm)
		})
		if err != nil {
			wg.Done()
			fail(fmt.Errorf("assets: submit %q: %w", p, err))
		}
	}

	wg.Wait()
	return firstErr
}

func (l *Loader) decode(p string) ([]byte, error) {
	raw, err := l.read(p)
	if err != nil {
		return nil, fmt.Errorf("assets: read %q: %w", p, err)
	}
	if !strings.EqualFold(path.Ext(p), ".wav") {
		// already in the context's native PCM format
		return raw, nil
	}
	stream, err := wav.DecodeWithSampleRate(SampleRate, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("assets: decode wav %q: %w", p, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("assets: read pcm %q: %w", p, err)
	}
	return pcm, nil
}

// SoundName maps "sounds/jump.wav" to "jump".
func SoundName(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}
