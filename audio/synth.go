package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// WaveType is an oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// ParseWave maps a config name to a wave. Unknown names are sine.
func ParseWave(name string) WaveType {
	switch name {
	case "square":
		return WaveSquare
	case "saw":
		return WaveSaw
	case "noise":
		return WaveNoise
	}
	return WaveSine
}

// sample returns the wave's value at phase in [0,1).
func (w WaveType) sample(phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (phase - 0.5)
	case WaveNoise:
		return rand.Float64()*2 - 1
	}
	return math.Sin(2 * math.Pi * phase)
}

// releaseFrac is the tail of each tone that fades out linearly.
const releaseFrac = 0.25

// tone is a single fading note.
type tone struct {
	freq     float64
	wave     WaveType
	rate     beep.SampleRate
	phase    float64
	position int
	total    int
}

// NewTone creates a note of freq Hz lasting d, at least one sample long.
// A zero freq is a rest.
func NewTone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, wave: wave, rate: rate, total: max(1, rate.N(d))}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.position >= t.total {
		return 0, false
	}
	releaseStart := int(float64(t.total) * (1 - releaseFrac))
	for i := range samples {
		if t.position >= t.total {
			return i, true
		}
		var v float64
		if t.freq > 0 || t.wave == WaveNoise {
			v = t.wave.sample(t.phase)
		}
		if t.position >= releaseStart {
			v *= float64(t.total-t.position) / float64(t.total-releaseStart)
		}
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// melody loops a note sequence forever.
type melody struct {
	notes  []float64
	noteMs float64
	wave   WaveType
	rate   beep.SampleRate

	index   int
	current beep.Streamer
}

// NewMelody creates an endless streamer cycling through notes, each lasting
// noteMs. An empty sequence is silence.
func NewMelody(notes []float64, noteMs float64, wave WaveType, rate beep.SampleRate) beep.Streamer {
	if noteMs <= 0 {
		noteMs = 250
	}
	return &melody{notes: notes, noteMs: noteMs, wave: wave, rate: rate}
}

func (m *melody) next() beep.Streamer {
	d := time.Duration(m.noteMs * float64(time.Millisecond))
	if len(m.notes) == 0 {
		return NewTone(0, d, WaveSine, m.rate)
	}
	freq := m.notes[m.index]
	m.index = (m.index + 1) % len(m.notes)
	return NewTone(freq, d, m.wave, m.rate)
}

func (m *melody) Stream(samples [][2]float64) (int, bool) {
	filled := 0
	for filled < len(samples) {
		if m.current == nil {
			m.current = m.next()
		}
		n, ok := m.current.Stream(samples[filled:])
		filled += n
		if !ok || n == 0 {
			m.current = nil
		}
	}
	return filled, true
}

func (m *melody) Err() error { return nil }
