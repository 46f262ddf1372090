// Package audio synthesizes the pet's sound effects and per-room music.
package audio

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/petsim/config"
)

// Player mixes effects and one music track onto the speaker. Until
// Initialize succeeds every method is a no-op, so a headless run or a
// machine without an audio device never fails because of sound.
type Player struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	initialized bool

	effects map[string]config.SoundConfig
	music   map[string]config.MusicConfig

	sfxVolume   float64
	musicVolume float64

	track     string
	trackCtrl *beep.Ctrl
	trackVol  *effects.Volume
}

// NewPlayer creates a player from the audio tables.
func NewPlayer(cfg config.AudioConfig) *Player {
	rate := beep.SampleRate(cfg.SampleRate)
	if rate <= 0 {
		rate = 44100
	}
	p := &Player{
		rate:        rate,
		mixer:       &beep.Mixer{},
		effects:     make(map[string]config.SoundConfig, len(cfg.Effects)),
		music:       make(map[string]config.MusicConfig, len(cfg.Music)),
		sfxVolume:   cfg.SFXVolume,
		musicVolume: cfg.MusicVolume,
	}
	for _, e := range cfg.Effects {
		p.effects[e.Name] = e
	}
	for _, m := range cfg.Music {
		p.music[m.Name] = m
	}
	return p
}

// Initialize opens the speaker.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Enabled reports whether the speaker is open.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Effect builds the streamer for a named effect.
func (p *Player) Effect(name string) (beep.Streamer, bool) {
	e, ok := p.effects[name]
	if !ok {
		return nil, false
	}
	d := time.Duration(e.Duration * float64(time.Millisecond))
	return volume(NewTone(e.Freq, d, ParseWave(e.Wave), p.rate), p.sfxVolume), true
}

// PlayEffect plays a named effect once. Unknown names are logged and ignored.
func (p *Player) PlayEffect(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s, ok := p.Effect(name)
	if !ok {
		slog.Debug("unknown sound effect", "name", name)
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// PlayMusic switches the looping track. Playing the current track again is
// a no-op; an unknown name stops the music.
func (p *Player) PlayMusic(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if name == p.track && p.trackCtrl != nil && !p.trackCtrl.Paused {
		return
	}
	p.stopMusic()
	p.track = name
	if !p.initialized {
		return
	}
	m, ok := p.music[name]
	if !ok {
		slog.Debug("unknown music track", "name", name)
		return
	}

	vol := volume(NewMelody(m.Notes, m.NoteMs, WaveSquare, p.rate), p.musicVolume)
	p.trackVol = vol
	p.trackCtrl = &beep.Ctrl{Streamer: vol}
	speaker.Lock()
	p.mixer.Add(p.trackCtrl)
	speaker.Unlock()
}

// Track returns the name of the selected music track.
func (p *Player) Track() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.track
}

// StopMusic stops the looping track.
func (p *Player) StopMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopMusic()
	p.track = ""
}

func (p *Player) stopMusic() {
	if p.trackCtrl == nil {
		return
	}
	speaker.Lock()
	p.trackCtrl.Paused = true
	// Replacing the streamer lets the mixer drop the track.
	p.trackCtrl.Streamer = nil
	speaker.Unlock()
	p.trackCtrl = nil
	p.trackVol = nil
}

// SetVolumes sets the music and effect gains in [0,1]. The running track
// changes immediately; effects pick the new gain up on their next play.
func (p *Player) SetVolumes(music, sfx float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.musicVolume = clamp01(music)
	p.sfxVolume = clamp01(sfx)
	if p.trackVol != nil {
		speaker.Lock()
		applyVolume(p.trackVol, p.musicVolume)
		speaker.Unlock()
	}
}

// Volumes returns the music and effect gains.
func (p *Player) Volumes() (music, sfx float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.musicVolume, p.sfxVolume
}

// Close silences everything. The speaker itself stays open.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.stopMusic()
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// volume wraps s with a linear gain. Zero gain is silent since log2(0) is -Inf.
func volume(s beep.Streamer, gain float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	applyVolume(v, gain)
	return v
}

func applyVolume(v *effects.Volume, gain float64) {
	if gain <= 0 {
		v.Volume, v.Silent = 0, true
		return
	}
	v.Volume, v.Silent = math.Log2(gain), false
}
