package pet

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/petsim/config"
	"github.com/pthm-cable/petsim/systems"
)

// Direction is a walking direction; its name doubles as the walk clip.
type Direction string

const (
	DirNone  Direction = "idle"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
	DirUp    Direction = "up"
	DirDown  Direction = "down"
)

var directions = []Direction{DirLeft, DirRight, DirUp, DirDown}

func (d Direction) delta() (float64, float64) {
	switch d {
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	}
	return 0, 0
}

// AIContext is what the planner needs from the pet.
type AIContext interface {
	Now() float64
	Box() systems.Rect
	MoveBy(dx, dy float64)
	Bounds() systems.Bounds
	HasCondition(c Condition) bool
	ClipLength(name string) float64
	AdjustStat(name string, delta float64)
	MovementBlocked() bool
}

// Planner decides when and where the pet walks and executes the walk.
type Planner struct {
	ctx AIContext
	cfg config.AIConfig
	rng *rand.Rand

	direction      Direction
	lastDirection  Direction
	targetDistance float64
	movedDistance  float64
	lastDecision   float64
	decisions      int
}

// NewPlanner creates a planner.
func NewPlanner(ctx AIContext, cfg config.AIConfig, rng *rand.Rand) *Planner {
	return &Planner{
		ctx:           ctx,
		cfg:           cfg,
		rng:           rng,
		direction:     DirNone,
		lastDirection: DirNone,
	}
}

// Direction returns the current walking direction.
func (p *Planner) Direction() Direction { return p.direction }

// TargetDistance returns the planned walk length in px.
func (p *Planner) TargetDistance() float64 { return p.targetDistance }

// Decisions returns how many decision cycles have run.
func (p *Planner) Decisions() int { return p.decisions }

// IdleUpdate runs one decision cycle if the cooldown has elapsed. It
// reports true when a walk was planned.
func (p *Planner) IdleUpdate() bool {
	now := p.ctx.Now()
	if now-p.lastDecision <= p.cfg.DecisionCooldown {
		return false
	}
	p.lastDecision = now
	p.decisions++

	if p.ctx.MovementBlocked() || !p.ShouldMove() {
		return false
	}
	dir, dist, ok := p.chooseDirection()
	if !ok {
		return false
	}
	p.direction = dir
	p.targetDistance = dist
	p.movedDistance = 0
	return true
}

// MoveChance returns the probability of moving this cycle given the
// current conditions.
func (p *Planner) MoveChance() float64 {
	chance := p.cfg.BaseMoveChance
	for c := Condition(0); c < numConditions; c++ {
		if p.ctx.HasCondition(c) {
			chance += p.cfg.Adjustments[c.String()]
		}
	}
	return math.Max(0, math.Min(1, chance))
}

// ShouldMove draws against MoveChance.
func (p *Planner) ShouldMove() bool {
	return p.rng.Float64() < p.MoveChance()
}

func (p *Planner) distanceFor(d Direction) float64 {
	frameMs := p.cfg.FrameMs
	if frameMs <= 0 {
		frameMs = 16.67
	}
	return math.Floor(p.ctx.ClipLength(string(d)) / frameMs * p.cfg.Speed)
}

// chooseDirection shuffles the candidate directions, excluding the last
// one, and returns the first whose whole path stays on the canvas.
func (p *Planner) chooseDirection() (Direction, float64, bool) {
	candidates := make([]Direction, 0, len(directions))
	for _, d := range directions {
		if d != p.lastDirection {
			candidates = append(candidates, d)
		}
	}
	p.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	for _, d := range candidates {
		dist := p.distanceFor(d)
		if dist > 0 && p.canMoveFull(d, dist) {
			return d, dist, true
		}
	}
	return DirNone, 0, false
}

// canMoveFull simulates the walk step by step against the canvas bounds.
func (p *Planner) canMoveFull(d Direction, dist float64) bool {
	box := p.ctx.Box()
	bounds := p.ctx.Bounds()
	dx, dy := d.delta()
	x, y := box.X, box.Y
	for moved := 0.0; moved < dist; moved += p.cfg.Speed {
		x += dx * p.cfg.Speed
		y += dy * p.cfg.Speed
		if systems.CheckCollision(x, y, box.W, box.H, bounds) {
			return false
		}
	}
	return true
}

// Walk advances the planned walk by one frame. It reports true when the
// walk is over, either completed or blocked by the canvas edge.
func (p *Planner) Walk() bool {
	if p.direction == DirNone || p.cfg.Speed <= 0 {
		p.Stop()
		return true
	}
	dx, dy := p.direction.delta()
	dx *= p.cfg.Speed
	dy *= p.cfg.Speed

	box := p.ctx.Box()
	if systems.CheckCollision(box.X+dx, box.Y+dy, box.W, box.H, p.ctx.Bounds()) {
		p.Stop()
		return true
	}
	p.ctx.MoveBy(dx, dy)
	p.movedDistance += p.cfg.Speed

	if p.movedDistance >= p.targetDistance {
		p.ctx.AdjustStat(StatEnergy, -p.cfg.MoveEnergyCost)
		p.Stop()
		return true
	}
	return false
}

// Stop ends any walk and remembers its direction to avoid repeating it.
func (p *Planner) Stop() {
	if p.direction != DirNone {
		p.lastDirection = p.direction
	}
	p.direction = DirNone
	p.targetDistance = 0
	p.movedDistance = 0
}
