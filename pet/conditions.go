package pet

import (
	"math"
	"math/rand"
	"strings"

	"github.com/pthm-cable/petsim/config"
)

// Condition is a qualitative label derived from stats.
type Condition uint8

const (
	Tired Condition = iota
	Exhausted
	Energetic
	Happy
	Sad
	Depressed
	Hungry
	numConditions
)

var conditionNames = [...]string{"Tired", "Exhausted", "Energetic", "Happy", "Sad", "Depressed", "Hungry"}

func (c Condition) String() string {
	if c < numConditions {
		return conditionNames[c]
	}
	return "Unknown"
}

// Conditions is a set of conditions.
type Conditions uint16

// Has reports whether c is in the set.
func (s Conditions) Has(c Condition) bool { return s&(1<<c) != 0 }

// Add inserts c.
func (s *Conditions) Add(c Condition) { *s |= 1 << c }

// Remove deletes c.
func (s *Conditions) Remove(c Condition) { *s &^= 1 << c }

// Set adds or removes c.
func (s *Conditions) Set(c Condition, on bool) {
	if on {
		s.Add(c)
	} else {
		s.Remove(c)
	}
}

// List returns the members in declaration order.
func (s Conditions) List() []Condition {
	var out []Condition
	for c := Condition(0); c < numConditions; c++ {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s Conditions) String() string {
	names := make([]string, 0, numConditions)
	for _, c := range s.List() {
		names = append(names, c.String())
	}
	return strings.Join(names, ",")
}

// Idle clip variants selected by mood.
const (
	AnimHappy     = "happiness100"
	AnimSad       = "happiness65"
	AnimDepressed = "happiness15"
)

// ConditionContext is what the condition engine needs from the pet.
type ConditionContext interface {
	StatValue(name string) (float64, bool)
	Conditions() *Conditions
	State() State
	SetIdleAnimation(name string)
	EmitSweat()
	ShowMessage(text string) bool
}

// ConditionEngine runs condition side effects and re-derives the
// condition set from stats.
type ConditionEngine struct {
	ctx       ConditionContext
	cfg       config.ConditionsConfig
	rng       *rand.Rand
	cooldowns [numConditions]float64
}

// NewConditionEngine creates a condition engine.
func NewConditionEngine(ctx ConditionContext, cfg config.ConditionsConfig, rng *rand.Rand) *ConditionEngine {
	return &ConditionEngine{ctx: ctx, cfg: cfg, rng: rng}
}

// Update runs the behavior of every present condition, then derives the
// new set. Behaviors never modify the set.
func (e *ConditionEngine) Update(dtMs float64) {
	for i := range e.cooldowns {
		e.cooldowns[i] = math.Max(0, e.cooldowns[i]-dtMs)
	}
	for _, c := range e.ctx.Conditions().List() {
		e.behave(c)
	}
	e.Derive()
}

// ready reports whether c's cooldown has elapsed and restarts it if so.
func (e *ConditionEngine) ready(c Condition) bool {
	if e.cooldowns[c] > 0 {
		return false
	}
	e.cooldowns[c] = e.cfg.Cooldown
	return true
}

func (e *ConditionEngine) behave(c Condition) {
	switch c {
	case Tired:
		if e.ctx.State() == Sleeping || !e.ready(Tired) {
			return
		}
		energy, _ := e.ctx.StatValue(StatEnergy)
		chance := 0.5 + math.Min(energy/100, 0.5)
		if e.rng.Float64() > chance {
			e.ctx.EmitSweat()
			if e.rng.Float64() < e.cfg.TiredMessage {
				e.say(e.cfg.TiredMessages)
			}
		}
	case Hungry:
		if e.ctx.State() != Idle || !e.ready(Hungry) {
			return
		}
		hunger, _ := e.ctx.StatValue(StatHunger)
		chance := 0.02 + (1-hunger/100)*0.3
		if e.rng.Float64() < chance {
			e.say(e.cfg.HungryMessages)
		}
	case Happy:
		e.ctx.SetIdleAnimation(AnimHappy)
	case Sad:
		e.ctx.SetIdleAnimation(AnimSad)
	case Depressed:
		e.ctx.SetIdleAnimation(AnimDepressed)
	}
}

func (e *ConditionEngine) say(lines []string) {
	if len(lines) == 0 {
		return
	}
	e.ctx.ShowMessage(lines[e.rng.Intn(len(lines))])
}

// Derive recomputes the condition set from current stats. Missing stats
// leave their conditions untouched.
func (e *ConditionEngine) Derive() {
	set := e.ctx.Conditions()

	if energy, ok := e.ctx.StatValue(StatEnergy); ok {
		set.Set(Tired, energy <= e.cfg.TiredAt)
		set.Set(Exhausted, energy < e.cfg.ExhaustedBelow)
		set.Set(Energetic, energy > e.cfg.EnergeticAbove)
	}

	if happiness, ok := e.ctx.StatValue(StatHappiness); ok {
		DeriveMood(set, happiness, e.cfg.HappyAbove, e.cfg.DepressedBelow)
	}

	if hunger, ok := e.ctx.StatValue(StatHunger); ok {
		set.Set(Hungry, hunger <= e.cfg.HungryAt)
	}
}

// DeriveMood leaves exactly one of Happy, Sad or Depressed in the set.
func DeriveMood(set *Conditions, happiness, happyAbove, depressedBelow float64) {
	set.Remove(Happy)
	set.Remove(Sad)
	set.Remove(Depressed)
	switch {
	case happiness > happyAbove:
		set.Add(Happy)
	case happiness >= depressedBelow:
		set.Add(Sad)
	default:
		set.Add(Depressed)
	}
}
