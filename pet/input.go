package pet

import "github.com/pthm-cable/petsim/systems"

// InputContext is what pointer handling needs from the pet.
type InputContext interface {
	State() State
	SetState(s State)
	Box() systems.Rect
	Bounds() systems.Bounds
	MoveTo(x, y float64)
}

// Input turns pointer events on the pet into intents: a long press grabs,
// a short tap makes it react.
type Input struct {
	ctx       InputContext
	longPress float64

	timer            systems.Countdown
	px, py           float64
	offsetX, offsetY float64
}

// NewInput creates pointer handling with the given long-press delay in ms.
func NewInput(ctx InputContext, longPressMs float64) *Input {
	return &Input{ctx: ctx, longPress: longPressMs}
}

// PressDown starts a long press if the pointer is on the pet. It reports
// whether the pet was hit.
func (in *Input) PressDown(x, y float64) bool {
	in.px, in.py = x, y
	if !in.ctx.Box().Contains(x, y) {
		return false
	}
	in.timer.Start(in.longPress)
	return true
}

// Update advances the long-press timer and grabs the pet when it fires.
func (in *Input) Update(dtMs float64) {
	if !in.timer.Tick(dtMs) {
		return
	}
	if in.ctx.State() == Reacting {
		return
	}
	box := in.ctx.Box()
	in.offsetX = in.px - box.X
	in.offsetY = in.py - box.Y
	in.ctx.SetState(Grabbed)
}

// PressUp releases a grabbed pet, or treats a short press on the pet as a tap.
func (in *Input) PressUp(x, y float64) {
	pending := in.timer.Armed()
	in.timer.Cancel()

	if in.ctx.State() == Grabbed {
		in.ctx.SetState(Idle)
		return
	}
	if pending && in.ctx.Box().Contains(x, y) && in.ctx.State() != Reacting {
		in.ctx.SetState(Reacting)
	}
}

// Move drags the pet while grabbed, keeping it on the canvas' top-left side.
func (in *Input) Move(x, y float64) {
	in.px, in.py = x, y
	if in.ctx.State() != Grabbed {
		return
	}
	box := in.ctx.Box()
	in.ctx.MoveTo(in.ctx.Bounds().Clamp(x-in.offsetX, y-in.offsetY, box.W, box.H))
}

// Pending reports whether a long press is in progress.
func (in *Input) Pending() bool {
	return in.timer.Armed()
}

// ToggleSleep puts the pet to sleep or wakes it.
func (in *Input) ToggleSleep() {
	if in.ctx.State() == Sleeping {
		in.ctx.SetState(Idle)
		return
	}
	in.ctx.SetState(Sleeping)
}
