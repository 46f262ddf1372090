package telemetry

import (
	"github.com/google/uuid"
)

// Sample is the pet's condition at the end of one tick.
type Sample struct {
	Hunger    float64
	Energy    float64
	Happiness float64
	Hygiene   float64
	State     string
}

// Counts are the live population sizes at flush time.
type Counts struct {
	Entities  int
	Objects   int
	Particles int
	Messages  int
}

// Collector accumulates per-tick samples and events into windows.
type Collector struct {
	session     string
	windowTicks int64
	dtSec       float64

	windowStart int64

	hunger, energy, happiness, hygiene []float64
	states                             map[string]int

	meals, reactions, walks, spawned int
}

// NewCollector creates a collector flushing every windowSec of sim time at
// dtSec seconds per tick. Each collector gets its own session id.
func NewCollector(windowSec, dtSec float64) *Collector {
	ticks := int64(1)
	if dtSec > 0 {
		ticks = int64(windowSec / dtSec)
	}
	if ticks < 1 {
		ticks = 1
	}
	return &Collector{
		session:     uuid.NewString(),
		windowTicks: ticks,
		dtSec:       dtSec,
		states:      make(map[string]int),
	}
}

// Session returns the collector's session id.
func (c *Collector) Session() string { return c.session }

// Samples returns the number of ticks recorded in the open window.
func (c *Collector) Samples() int { return len(c.hunger) }

// Sample records one tick.
func (c *Collector) Sample(s Sample) {
	c.hunger = append(c.hunger, s.Hunger)
	c.energy = append(c.energy, s.Energy)
	c.happiness = append(c.happiness, s.Happiness)
	c.hygiene = append(c.hygiene, s.Hygiene)
	c.states[s.State]++
}

// RecordMeal counts a consumed food item.
func (c *Collector) RecordMeal() { c.meals++ }

// RecordReaction counts a tap reaction.
func (c *Collector) RecordReaction() { c.reactions++ }

// RecordWalk counts a planned walk.
func (c *Collector) RecordWalk() { c.walks++ }

// RecordSpawn counts a spawned object.
func (c *Collector) RecordSpawn() { c.spawned++ }

// ShouldFlush reports whether the window has elapsed at tick.
func (c *Collector) ShouldFlush(tick int64) bool {
	return tick-c.windowStart >= c.windowTicks
}

// Flush produces the window's stats and starts a new window at tick.
func (c *Collector) Flush(tick int64, room string, counts Counts) WindowStats {
	hunger := Summarize(c.hunger)
	energy := Summarize(c.energy)
	happiness := Summarize(c.happiness)
	hygiene := Summarize(c.hygiene)

	n := float64(len(c.hunger))
	frac := func(state string) float64 {
		if n == 0 {
			return 0
		}
		return float64(c.states[state]) / n
	}

	out := WindowStats{
		Session:         c.session,
		WindowStartTick: c.windowStart,
		WindowEndTick:   tick,
		SimTimeSec:      float64(tick) * c.dtSec,
		Room:            room,
		HungerMean:      hunger.Mean,
		HungerMin:       hunger.Min,
		EnergyMean:      energy.Mean,
		EnergyMin:       energy.Min,
		HappinessMean:   happiness.Mean,
		HappinessStd:    happiness.Std,
		HappinessP50:    happiness.Median,
		HygieneMean:     hygiene.Mean,
		HygieneMin:      hygiene.Min,
		IdleFrac:        frac("Idle"),
		WalkingFrac:     frac("Walking"),
		GrabbedFrac:     frac("Grabbed"),
		SleepingFrac:    frac("Sleeping"),
		ReactingFrac:    frac("Reacting"),
		EatingFrac:      frac("Eating"),
		BathingFrac:     frac("Bathing"),
		Meals:           c.meals,
		Reactions:       c.reactions,
		Walks:           c.walks,
		Spawned:         c.spawned,
		Entities:        counts.Entities,
		Objects:         counts.Objects,
		Particles:       counts.Particles,
		Messages:        counts.Messages,
	}

	c.windowStart = tick
	c.hunger = c.hunger[:0]
	c.energy = c.energy[:0]
	c.happiness = c.happiness[:0]
	c.hygiene = c.hygiene[:0]
	clear(c.states)
	c.meals, c.reactions, c.walks, c.spawned = 0, 0, 0, 0
	return out
}
