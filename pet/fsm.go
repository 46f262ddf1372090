package pet

import (
	"math"

	"github.com/pthm-cable/petsim/config"
	"github.com/pthm-cable/petsim/systems"
)

// Hooks are the optional callbacks of one state.
type Hooks struct {
	Enter  func(prev State)
	Update func(dtMs float64)
	Exit   func(next State)
}

// StateSource reports the pet's current state.
type StateSource interface {
	State() State
}

// Machine dispatches state hooks. Transitions are detected by comparing
// the current state with the last one processed, so each contiguous run in
// a state gets exactly one Enter and one Exit.
type Machine struct {
	src     StateSource
	hooks   map[State]Hooks
	last    State
	started bool
}

// NewMachine creates a machine. States without hooks are no-ops.
func NewMachine(src StateSource, hooks map[State]Hooks) *Machine {
	return &Machine{src: src, hooks: hooks}
}

// Current returns the last processed state.
func (m *Machine) Current() State { return m.last }

// Update fires Exit/Enter on a state change, then the current state's
// Update. If Enter itself changes the state, Update is skipped and the
// change is handled on the next call.
func (m *Machine) Update(dtMs float64) {
	cur := m.src.State()
	if !m.started || cur != m.last {
		prev := m.last
		if m.started {
			if h := m.hooks[prev]; h.Exit != nil {
				h.Exit(cur)
			}
		}
		m.last = cur
		m.started = true
		if h := m.hooks[cur]; h.Enter != nil {
			h.Enter(prev)
		}
		if m.src.State() != cur {
			return
		}
	}
	if h := m.hooks[cur]; h.Update != nil {
		h.Update(dtMs)
	}
}

// StateContext is what the standard state behaviors need from the pet.
type StateContext interface {
	State() State
	SetState(s State)
	SetAnimation(name string)
	AnimationDuration(name string) float64
	AdjustStat(name string, delta float64)
	SetStatActive(name string, active bool)
	StatValue(name string) (float64, bool)
	ConsumeSoapContact() bool
	EmitReaction()
	PlaySound(name string)
}

// Clip names used by the state behaviors.
const (
	AnimGrab  = "grab"
	AnimSleep = "sleep"
	AnimReact = "tutsitutsi"
	AnimEat   = "eat"
)

// Behaviors holds the standard per-state logic and its timers.
type Behaviors struct {
	ctx StateContext
	ai  *Planner
	cfg config.PetConfig

	// Auto-return to Idle for Reacting and Eating.
	timer systems.Countdown
	// Bathing ends when soap contact lapses.
	bath systems.Countdown
}

// NewBehaviors creates the standard state behaviors.
func NewBehaviors(ctx StateContext, ai *Planner, cfg config.PetConfig) *Behaviors {
	return &Behaviors{ctx: ctx, ai: ai, cfg: cfg}
}

// Hooks returns the hook table for NewMachine.
func (b *Behaviors) Hooks() map[State]Hooks {
	return map[State]Hooks{
		Idle: {
			Enter:  func(State) { b.ctx.SetAnimation("idle") },
			Update: b.updateIdle,
		},
		Walking: {
			Enter:  func(State) { b.ctx.SetAnimation(string(b.ai.Direction())) },
			Update: b.updateWalking,
			Exit:   func(State) { b.ai.Stop() },
		},
		Grabbed: {
			Enter: func(State) {
				b.ai.Stop()
				b.ctx.SetAnimation(AnimGrab)
				b.ctx.PlaySound("grab")
			},
		},
		Sleeping: {
			Enter:  b.enterSleeping,
			Update: b.updateSleeping,
			Exit:   b.exitSleeping,
		},
		Reacting: {
			Enter:  b.enterReacting,
			Update: b.updateTimed,
			Exit:   func(State) { b.timer.Cancel() },
		},
		Eating: {
			Enter:  b.enterEating,
			Update: b.updateTimed,
			Exit:   func(State) { b.timer.Cancel() },
		},
		Bathing: {
			Enter:  b.enterBathing,
			Update: b.updateBathing,
			Exit:   b.exitBathing,
		},
	}
}

func (b *Behaviors) updateIdle(float64) {
	if b.ai.IdleUpdate() {
		b.ctx.SetState(Walking)
	}
}

func (b *Behaviors) updateWalking(float64) {
	if b.ai.Walk() {
		b.ctx.SetState(Idle)
	}
}

// Energy decay is frozen while sleeping so it cannot cancel the regen.
func (b *Behaviors) enterSleeping(State) {
	b.ctx.SetAnimation(AnimSleep)
	b.ctx.SetStatActive(StatEnergy, false)
}

func (b *Behaviors) updateSleeping(dtMs float64) {
	b.ctx.AdjustStat(StatEnergy, b.cfg.SleepRegen*dtMs/1000)
	if energy, ok := b.ctx.StatValue(StatEnergy); ok && energy >= 100 {
		b.ctx.SetState(Idle)
	}
}

func (b *Behaviors) exitSleeping(State) {
	b.ctx.SetAnimation("idle")
	b.ctx.SetStatActive(StatEnergy, true)
}

func (b *Behaviors) enterReacting(prev State) {
	// A tap does not wake the pet.
	if prev == Sleeping {
		b.ctx.SetState(Sleeping)
		return
	}
	b.ctx.SetAnimation(AnimReact)
	b.ctx.AdjustStat(StatHappiness, b.cfg.ReactHappiness)
	b.ctx.EmitReaction()
	b.ctx.PlaySound("react")
	b.startTimer(AnimReact)
}

func (b *Behaviors) enterEating(State) {
	b.ctx.SetAnimation(AnimEat)
	b.ctx.PlaySound("eat")
	b.startTimer(AnimEat)
}

func (b *Behaviors) startTimer(clip string) {
	d := b.ctx.AnimationDuration(clip)
	if math.IsInf(d, 1) {
		b.timer.Cancel()
		return
	}
	b.timer.Start(d)
}

func (b *Behaviors) updateTimed(dtMs float64) {
	if b.timer.Tick(dtMs) {
		b.ctx.SetState(Idle)
	}
}

func (b *Behaviors) enterBathing(State) {
	b.ctx.SetAnimation("idle")
	b.bath.Start(b.cfg.BathExitMs)
}

func (b *Behaviors) updateBathing(dtMs float64) {
	if b.ctx.ConsumeSoapContact() {
		b.bath.Start(b.cfg.BathExitMs)
		b.ctx.AdjustStat(StatHygiene, b.cfg.BathHygiene*dtMs/1000)
	}
	if b.bath.Tick(dtMs) {
		b.ctx.SetState(Idle)
	}
}

func (b *Behaviors) exitBathing(State) {
	b.bath.Cancel()
	b.ctx.SetAnimation("idle")
}
