package game

import (
	"github.com/pthm-cable/petsim/telemetry"
)

// Update advances the simulation by dtMs milliseconds. The pipeline order
// is fixed; a call made while an update is running is ignored.
func (g *Game) Update(dtMs float64) {
	if g.updating || g.paused || dtMs <= 0 {
		return
	}
	g.updating = true
	defer func() { g.updating = false }()

	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseInput)
	g.petSvc.Tick(dtMs)
	g.input.Update(dtMs)
	g.grab.Update(dtMs)

	g.perf.StartPhase(telemetry.PhasePet)
	g.machine.Update(dtMs)

	g.perf.StartPhase(telemetry.PhaseStats)
	g.pet.Decay(dtMs)
	g.pet.ApplyCheats()

	g.perf.StartPhase(telemetry.PhaseConditions)
	g.conditions.Update(dtMs)

	g.perf.StartPhase(telemetry.PhaseObjects)
	g.objects.Update(dtMs)

	g.perf.StartPhase(telemetry.PhasePhysics)
	g.physics.Update(dtMs)

	g.perf.StartPhase(telemetry.PhaseParticles)
	g.particles.Update(dtMs)

	g.perf.StartPhase(telemetry.PhaseMessages)
	g.messages.Update(dtMs)

	g.perf.StartPhase(telemetry.PhaseAnimation)
	g.animation.Update(dtMs)

	g.perf.EndTick()
	g.tick++

	g.sampleTelemetry()
	g.flushTelemetry()
}

// PerfStats returns pipeline timings over the last second of ticks.
func (g *Game) PerfStats() telemetry.PerfStats { return g.perf.Stats() }

// RecordFrame marks a rendered frame for the fps figure.
func (g *Game) RecordFrame() { g.perf.RecordFrame() }
