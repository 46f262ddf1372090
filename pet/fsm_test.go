package pet

import (
	"math"
	"testing"
)

type stateBox struct{ s State }

func (b *stateBox) State() State { return b.s }

type hookCounts struct {
	enter, update, exit int
}

func countingHooks(counts map[State]*hookCounts, states ...State) map[State]Hooks {
	hooks := make(map[State]Hooks, len(states))
	for _, s := range states {
		c := &hookCounts{}
		counts[s] = c
		hooks[s] = Hooks{
			Enter:  func(State) { c.enter++ },
			Update: func(float64) { c.update++ },
			Exit:   func(State) { c.exit++ },
		}
	}
	return hooks
}

// ---------- Machine ----------

func TestMachine_EdgeTriggered(t *testing.T) {
	src := &stateBox{s: Idle}
	counts := map[State]*hookCounts{}
	m := NewMachine(src, countingHooks(counts, Idle, Walking))

	m.Update(16)
	src.s = Walking
	for range 3 {
		m.Update(16)
	}
	src.s = Idle
	m.Update(16)

	idle, walking := counts[Idle], counts[Walking]
	if idle.enter != 2 || idle.exit != 1 || idle.update != 2 {
		t.Errorf("idle hooks = %+v, want enter 2 exit 1 update 2", *idle)
	}
	if walking.enter != 1 || walking.exit != 1 || walking.update != 3 {
		t.Errorf("walking hooks = %+v, want enter 1 exit 1 update 3", *walking)
	}
	if m.Current() != Idle {
		t.Errorf("current = %v, want Idle", m.Current())
	}
}

func TestMachine_UnknownStateIsNoop(t *testing.T) {
	src := &stateBox{s: State(42)}
	counts := map[State]*hookCounts{}
	m := NewMachine(src, countingHooks(counts, Idle))

	m.Update(16)
	m.Update(16)
	if m.Current() != State(42) {
		t.Errorf("current = %v", m.Current())
	}
	if *counts[Idle] != (hookCounts{}) {
		t.Errorf("idle hooks fired: %+v", *counts[Idle])
	}
}

func TestMachine_EnterRedirectSkipsUpdate(t *testing.T) {
	src := &stateBox{s: Reacting}
	updated := false
	m := NewMachine(src, map[State]Hooks{
		Reacting: {
			Enter:  func(State) { src.s = Sleeping },
			Update: func(float64) { updated = true },
		},
	})

	m.Update(16)
	if updated {
		t.Error("update ran after enter changed the state")
	}
	m.Update(16)
	if m.Current() != Sleeping {
		t.Errorf("current = %v, want Sleeping", m.Current())
	}
}

// ---------- Standard behaviors ----------

func TestBehaviors_ReactingReturnsToIdle(t *testing.T) {
	h := newHarness(t)
	h.machine.Update(16)

	h.svc.SetState(Reacting)
	h.machine.Update(16)

	if got := statOf(t, h.pet, StatHappiness); got != 75 {
		t.Errorf("happiness = %v, want 75", got)
	}
	if h.effects.explosions != 1 || h.effects.lastN != h.cfg.Pet.ReactParticles {
		t.Errorf("explosions = %d (n=%d)", h.effects.explosions, h.effects.lastN)
	}
	if got := h.store.Sprite(h.pet.ID).Animation; got != AnimReact {
		t.Errorf("animation = %q, want %q", got, AnimReact)
	}

	clip := h.svc.AnimationDuration(AnimReact)
	h.machine.Update(clip - 32)
	if h.pet.State != Reacting {
		t.Fatalf("left Reacting early: %v", h.pet.State)
	}
	h.machine.Update(16)
	if h.pet.State != Idle {
		t.Errorf("state = %v after the clip, want Idle", h.pet.State)
	}
}

func TestBehaviors_TapDoesNotWakeSleeper(t *testing.T) {
	h := newHarness(t)
	h.svc.SetState(Sleeping)
	h.machine.Update(16)
	if stat := h.pet.Stat(StatEnergy); stat.Active {
		t.Fatal("energy still decaying while asleep")
	}

	h.svc.SetState(Reacting)
	h.machine.Update(16)
	h.machine.Update(16)

	if h.pet.State != Sleeping {
		t.Errorf("state = %v, want Sleeping", h.pet.State)
	}
	if got := statOf(t, h.pet, StatHappiness); got != 70 {
		t.Errorf("happiness = %v, want 70", got)
	}
	if h.pet.Stat(StatEnergy).Active {
		t.Error("energy decay resumed after returning to sleep")
	}
}

func TestBehaviors_SleepRegenWakes(t *testing.T) {
	h := newHarness(t)
	h.pet.SetStat(StatEnergy, 99)
	h.svc.SetState(Sleeping)

	h.machine.Update(1000)
	if h.pet.State != Idle {
		t.Fatalf("state = %v, want Idle once rested", h.pet.State)
	}
	if got := statOf(t, h.pet, StatEnergy); got != 100 {
		t.Errorf("energy = %v, want 100", got)
	}

	h.machine.Update(16)
	if !h.pet.Stat(StatEnergy).Active {
		t.Error("energy decay not restored on waking")
	}
}

func TestBehaviors_EatingReturnsToIdle(t *testing.T) {
	h := newHarness(t)
	h.svc.SetState(Eating)
	h.machine.Update(16)

	clip := h.svc.AnimationDuration(AnimEat)
	if math.IsInf(clip, 1) || clip == 0 {
		t.Fatalf("eat clip duration = %v", clip)
	}
	h.machine.Update(clip - 16)
	if h.pet.State != Idle {
		t.Errorf("state = %v, want Idle", h.pet.State)
	}
}

func TestBehaviors_BathingNeedsSoap(t *testing.T) {
	h := newHarness(t)
	h.svc.SetState(Bathing)
	h.machine.Update(16)

	h.svc.TouchSoap()
	h.machine.Update(100)
	want := 90 + h.cfg.Pet.BathHygiene*0.1
	if got := statOf(t, h.pet, StatHygiene); math.Abs(got-want) > 1e-9 {
		t.Errorf("hygiene = %v, want %v", got, want)
	}
	if h.pet.State != Bathing {
		t.Fatalf("left Bathing during contact: %v", h.pet.State)
	}

	h.machine.Update(h.cfg.Pet.BathExitMs)
	if h.pet.State != Idle {
		t.Errorf("state = %v after soap contact lapsed, want Idle", h.pet.State)
	}
}

func TestBehaviors_GrabbedStopsWalk(t *testing.T) {
	h := newHarness(t)
	h.planner.direction = DirRight
	h.planner.targetDistance = 20
	h.svc.SetState(Walking)
	h.machine.Update(16)

	h.svc.SetState(Grabbed)
	h.machine.Update(16)

	if h.planner.Direction() != DirNone {
		t.Errorf("direction = %v after grab, want none", h.planner.Direction())
	}
	if got := h.store.Sprite(h.pet.ID).Animation; got != AnimGrab {
		t.Errorf("animation = %q, want %q", got, AnimGrab)
	}
}
