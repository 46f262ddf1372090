package game

import (
	"log/slog"

	"github.com/pthm-cable/petsim/pet"
	"github.com/pthm-cable/petsim/telemetry"
)

// sampleTelemetry records the pet at the end of a tick and counts state
// entries as events.
func (g *Game) sampleTelemetry() {
	value := func(name string) float64 {
		v, _ := g.pet.StatValue(name)
		return v
	}
	g.collector.Sample(telemetry.Sample{
		Hunger:    value(pet.StatHunger),
		Energy:    value(pet.StatEnergy),
		Happiness: value(pet.StatHappiness),
		Hygiene:   value(pet.StatHygiene),
		State:     g.pet.State.String(),
	})

	st := g.pet.State
	if st != g.lastState {
		switch st {
		case pet.Eating:
			g.collector.RecordMeal()
		case pet.Reacting:
			g.collector.RecordReaction()
		case pet.Walking:
			g.collector.RecordWalk()
		}
		g.lastState = st
	}
}

// flushTelemetry writes a window once it has elapsed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}
	g.writeTelemetry()
}

func (g *Game) writeTelemetry() {
	stats := g.collector.Flush(g.tick, g.Room().Name, telemetry.Counts{
		Entities:  g.store.Len(),
		Objects:   len(g.objects.Active()),
		Particles: g.particles.Len(),
		Messages:  len(g.messages.Messages()),
	})
	perfStats := g.perf.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.output.WriteStats(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
	if err := g.output.WritePerf(perfStats, stats.Session, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
