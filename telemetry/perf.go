package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one simulation tick, in pipeline order.
const (
	PhaseInput      = "input"
	PhasePet        = "pet"
	PhaseStats      = "stats"
	PhaseConditions = "conditions"
	PhaseObjects    = "objects"
	PhasePhysics    = "physics"
	PhaseParticles  = "particles"
	PhaseMessages   = "messages"
	PhaseAnimation  = "animation"
)

// Phases lists every pipeline phase in execution order.
var Phases = []string{
	PhaseInput, PhasePet, PhaseStats, PhaseConditions, PhaseObjects,
	PhasePhysics, PhaseParticles, PhaseMessages, PhaseAnimation,
}

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector keeps a ring of the most recent tick timings.
type PerfCollector struct {
	samples []PerfSample
	next    int
	count   int

	current    map[string]time.Duration
	tickStart  time.Time
	phaseStart time.Time
	phase      string

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		samples: make([]PerfSample, windowSize),
		current: make(map[string]time.Duration),
	}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = make(map[string]time.Duration, len(Phases))
	p.phase = ""
}

// StartPhase closes the running phase, if any, and opens the next one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the tick and stores its sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = ""

	p.samples[p.next] = PerfSample{
		TickDuration: now.Sub(p.tickStart),
		Phases:       p.current,
	}
	p.next = (p.next + 1) % len(p.samples)
	if p.count < len(p.samples) {
		p.count++
	}
}

// RecordFrame marks a rendered frame in windowed mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated timings over the window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // share of the average tick, 0-100

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		out.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return out
	}

	var total time.Duration
	sums := make(map[string]time.Duration)
	for i := 0; i < p.count; i++ {
		s := p.samples[i]
		total += s.TickDuration
		if i == 0 || s.TickDuration < out.MinTickDuration {
			out.MinTickDuration = s.TickDuration
		}
		if s.TickDuration > out.MaxTickDuration {
			out.MaxTickDuration = s.TickDuration
		}
		for phase, d := range s.Phases {
			sums[phase] += d
		}
	}

	n := time.Duration(p.count)
	out.AvgTickDuration = total / n
	for phase, sum := range sums {
		avg := sum / n
		out.PhaseAvg[phase] = avg
		if out.AvgTickDuration > 0 {
			out.PhasePct[phase] = float64(avg) / float64(out.AvgTickDuration) * 100
		}
	}
	if out.AvgTickDuration > 0 {
		out.TicksPerSecond = float64(time.Second) / float64(out.AvgTickDuration)
	}
	return out
}

// LogStats logs the window at info level. Phases under 0.1% are omitted.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range Phases {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	Session       string  `csv:"session"`
	WindowEnd     int64   `csv:"window_end"`
	AvgTickUS     int64   `csv:"avg_tick_us"`
	MinTickUS     int64   `csv:"min_tick_us"`
	MaxTickUS     int64   `csv:"max_tick_us"`
	TicksPerSec   float64 `csv:"ticks_per_sec"`
	FPS           float64 `csv:"fps"`
	InputPct      float64 `csv:"input_pct"`
	PetPct        float64 `csv:"pet_pct"`
	StatsPct      float64 `csv:"stats_pct"`
	ConditionsPct float64 `csv:"conditions_pct"`
	ObjectsPct    float64 `csv:"objects_pct"`
	PhysicsPct    float64 `csv:"physics_pct"`
	ParticlesPct  float64 `csv:"particles_pct"`
	MessagesPct   float64 `csv:"messages_pct"`
	AnimationPct  float64 `csv:"animation_pct"`
}

// ToCSV flattens the stats for perf.csv.
func (s PerfStats) ToCSV(session string, windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		Session:       session,
		WindowEnd:     windowEnd,
		AvgTickUS:     s.AvgTickDuration.Microseconds(),
		MinTickUS:     s.MinTickDuration.Microseconds(),
		MaxTickUS:     s.MaxTickDuration.Microseconds(),
		TicksPerSec:   s.TicksPerSecond,
		FPS:           s.FPS,
		InputPct:      s.PhasePct[PhaseInput],
		PetPct:        s.PhasePct[PhasePet],
		StatsPct:      s.PhasePct[PhaseStats],
		ConditionsPct: s.PhasePct[PhaseConditions],
		ObjectsPct:    s.PhasePct[PhaseObjects],
		PhysicsPct:    s.PhasePct[PhasePhysics],
		ParticlesPct:  s.PhasePct[PhaseParticles],
		MessagesPct:   s.PhasePct[PhaseMessages],
		AnimationPct:  s.PhasePct[PhaseAnimation],
	}
}
