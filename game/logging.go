package game

import (
	"log/slog"
)

// LogState logs a one-line summary of the pet and the scene.
func (g *Game) LogState() {
	attrs := []any{
		"tick", g.tick,
		"room", g.Room().Name,
		"state", g.pet.State.String(),
		"conditions", g.pet.Conditions.String(),
		"entities", g.store.Len(),
		"objects", len(g.objects.Active()),
		"particles", g.particles.Len(),
	}
	for _, s := range g.pet.Stats {
		attrs = append(attrs, s.Name, int(s.Porcent))
	}
	slog.Info("pet", attrs...)
}
