// Package pet implements the virtual pet: its stats, derived conditions,
// movement planner, state machine and input handling.
package pet

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/petsim/components"
	"github.com/pthm-cable/petsim/config"
	"github.com/pthm-cable/petsim/entity"
)

// Stat names.
const (
	StatHunger    = "hunger"
	StatEnergy    = "energy"
	StatHappiness = "happiness"
	StatHygiene   = "hygiene"
)

// State is the pet's behavioral mode.
type State uint8

const (
	Idle State = iota
	Walking
	Grabbed
	Sleeping
	Reacting
	Eating
	Bathing
)

var stateNames = [...]string{"Idle", "Walking", "Grabbed", "Sleeping", "Reacting", "Eating", "Bathing"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// AllStates lists every state in declaration order.
var AllStates = []State{Idle, Walking, Grabbed, Sleeping, Reacting, Eating, Bathing}

// Stat is a need value kept in [0,100]. Inactive stats do not decay.
type Stat struct {
	Name    string
	Porcent float64
	Decay   float64 // units per second
	Active  bool
}

// Cheats are debug toggles.
type Cheats struct {
	GodMode    bool
	NoMoreMove bool
}

// Pet is the single pet of a session. Its visual and physical state lives
// in the entity store under ID.
type Pet struct {
	ID         entity.ID
	Name       string
	State      State
	Conditions Conditions
	Stats      []Stat
	Cheats     Cheats
}

// Spawn registers the pet entity and returns the pet built from the template.
func Spawn(store *entity.Store, cfg config.PetConfig, clips map[string]components.Clip) *Pet {
	id := store.Add(entity.Spec{
		Active: true,
		Tags:   []string{components.TagPet},
		Sprite: components.Sprite{
			X: cfg.X, Y: cfg.Y,
			Width: cfg.Width, Height: cfg.Height,
			Scale:      cfg.Scale,
			Animation:  "idle",
			FrameSpeed: cfg.FrameSpeed,
			Alpha:      100,
			Color:      components.RGBA(cfg.Color),
			HasColor:   true,
			Clips:      clips,
		},
		Collider: &components.Collider{
			OffsetX: cfg.Collider.OffsetX,
			OffsetY: cfg.Collider.OffsetY,
			Width:   cfg.Collider.Width,
			Height:  cfg.Collider.Height,
		},
		Grab: &components.Grab{},
	})

	p := &Pet{
		ID:     id,
		Name:   cfg.Name,
		State:  Idle,
		Cheats: Cheats{GodMode: cfg.Cheats.GodMode, NoMoreMove: cfg.Cheats.NoMoreMove},
	}
	for _, s := range cfg.Stats {
		p.Stats = append(p.Stats, Stat{Name: s.Name, Porcent: clamp(s.Porcent), Decay: s.Decay, Active: s.Active})
	}
	return p
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// Stat returns the named stat, or nil.
func (p *Pet) Stat(name string) *Stat {
	for i := range p.Stats {
		if p.Stats[i].Name == name {
			return &p.Stats[i]
		}
	}
	return nil
}

// StatValue returns the named stat's value.
func (p *Pet) StatValue(name string) (float64, bool) {
	s := p.Stat(name)
	if s == nil {
		return 0, false
	}
	return s.Porcent, true
}

// AdjustStat adds delta to the named stat and clamps it to [0,100].
// A positive delta always improves the stat. Unknown names and NaN deltas
// are ignored.
func (p *Pet) AdjustStat(name string, delta float64) bool {
	s := p.Stat(name)
	if s == nil {
		slog.Debug("unknown stat", "stat", name)
		return false
	}
	if math.IsNaN(delta) {
		slog.Debug("rejected NaN stat delta", "stat", name)
		return false
	}
	s.Porcent = clamp(s.Porcent + delta)
	return true
}

// SetStat assigns the named stat, clamped to [0,100]. NaN is rejected.
func (p *Pet) SetStat(name string, v float64) bool {
	s := p.Stat(name)
	if s == nil {
		slog.Debug("unknown stat", "stat", name)
		return false
	}
	if math.IsNaN(v) {
		slog.Debug("rejected NaN stat value", "stat", name)
		return false
	}
	s.Porcent = clamp(v)
	return true
}

// SetStatActive toggles decay for the named stat.
func (p *Pet) SetStatActive(name string, active bool) {
	if s := p.Stat(name); s != nil {
		s.Active = active
	}
}

// Decay lowers every active stat by its decay rate over dtMs.
func (p *Pet) Decay(dtMs float64) {
	dt := dtMs / 1000
	for i := range p.Stats {
		s := &p.Stats[i]
		if !s.Active {
			continue
		}
		s.Porcent = clamp(s.Porcent - s.Decay*dt)
	}
}

// ApplyCheats pins every stat to 100 under god mode.
func (p *Pet) ApplyCheats() {
	if !p.Cheats.GodMode {
		return
	}
	for i := range p.Stats {
		p.Stats[i].Porcent = 100
	}
}
