// Package telemetry records pet wellbeing windows and tick timings and
// writes them as CSV.
package telemetry

import (
	"log/slog"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Summary describes one stat over a window.
type Summary struct {
	Mean   float64
	Std    float64
	Min    float64
	Max    float64
	Median float64
}

// Summarize computes the summary of values. An empty input yields zeros.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) < 2 || math.IsNaN(std) {
		std = 0
	}
	return Summary{
		Mean:   mean,
		Std:    std,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
	}
}

// WindowStats is one stats.csv row.
type WindowStats struct {
	Session         string  `csv:"session"`
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Room            string  `csv:"room"`

	HungerMean    float64 `csv:"hunger_mean"`
	HungerMin     float64 `csv:"hunger_min"`
	EnergyMean    float64 `csv:"energy_mean"`
	EnergyMin     float64 `csv:"energy_min"`
	HappinessMean float64 `csv:"happiness_mean"`
	HappinessStd  float64 `csv:"happiness_std"`
	HappinessP50  float64 `csv:"happiness_p50"`
	HygieneMean   float64 `csv:"hygiene_mean"`
	HygieneMin    float64 `csv:"hygiene_min"`

	// Share of sampled ticks spent in each state, 0-1.
	IdleFrac     float64 `csv:"idle"`
	WalkingFrac  float64 `csv:"walking"`
	GrabbedFrac  float64 `csv:"grabbed"`
	SleepingFrac float64 `csv:"sleeping"`
	ReactingFrac float64 `csv:"reacting"`
	EatingFrac   float64 `csv:"eating"`
	BathingFrac  float64 `csv:"bathing"`

	Meals     int `csv:"meals"`
	Reactions int `csv:"reactions"`
	Walks     int `csv:"walks"`
	Spawned   int `csv:"spawned"`

	Entities  int `csv:"entities"`
	Objects   int `csv:"objects"`
	Particles int `csv:"particles"`
	Messages  int `csv:"messages"`
}

// LogValue implements slog.LogValuer.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.String("room", s.Room),
		slog.Float64("hunger", s.HungerMean),
		slog.Float64("energy", s.EnergyMean),
		slog.Float64("happiness", s.HappinessMean),
		slog.Float64("hygiene", s.HygieneMean),
		slog.Float64("idle", s.IdleFrac),
		slog.Float64("sleeping", s.SleepingFrac),
		slog.Int("meals", s.Meals),
		slog.Int("reactions", s.Reactions),
		slog.Int("walks", s.Walks),
		slog.Int("entities", s.Entities),
	)
}

// LogStats logs the window at info level.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
