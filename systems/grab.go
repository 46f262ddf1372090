package systems

import "github.com/pthm-cable/petsim/entity"

// GrabSystem lets the pointer pick up objects after a long press.
type GrabSystem struct {
	store     *entity.Store
	objects   *ObjectService
	bounds    Bounds
	longPress float64

	timer   Countdown
	pending entity.ID
	held    entity.ID
	px, py  float64
}

// NewGrabSystem creates a grab system with the given long-press delay in ms.
// Dragged objects stay inside bounds.
func NewGrabSystem(store *entity.Store, objects *ObjectService, bounds Bounds, longPressMs float64) *GrabSystem {
	return &GrabSystem{store: store, objects: objects, bounds: bounds, longPress: longPressMs}
}

// PressDown starts a long press on the topmost object under the pointer.
// It reports whether an object was hit.
func (g *GrabSystem) PressDown(x, y float64) bool {
	g.px, g.py = x, y
	id, ok := g.objects.ObjectAt(x, y)
	if !ok {
		return false
	}
	g.pending = id
	g.timer.Start(g.longPress)
	return true
}

// PressUp cancels a pending press and drops any held object.
func (g *GrabSystem) PressUp() {
	g.timer.Cancel()
	g.pending = 0
	if g.held == 0 {
		return
	}
	if grab := g.store.Grab(g.held); grab != nil {
		grab.IsGrabbed = false
	}
	g.held = 0
}

// Move drags the held object, keeping the captured offset.
func (g *GrabSystem) Move(x, y float64) {
	g.px, g.py = x, y
	if g.held == 0 {
		return
	}
	sp := g.store.Sprite(g.held)
	grab := g.store.Grab(g.held)
	if sp == nil || grab == nil {
		g.held = 0
		return
	}
	r := SpriteBounds(sp)
	sp.X, sp.Y = g.bounds.Clamp(x-grab.OffsetX, y-grab.OffsetY, r.W, r.H)
}

// Update advances the long-press timer and grabs the pending object when
// it fires.
func (g *GrabSystem) Update(dtMs float64) {
	if !g.timer.Tick(dtMs) {
		return
	}
	id := g.pending
	g.pending = 0
	sp := g.store.Sprite(id)
	grab := g.store.Grab(id)
	if sp == nil || grab == nil {
		return
	}
	grab.IsGrabbed = true
	grab.OffsetX = g.px - sp.X
	grab.OffsetY = g.py - sp.Y
	if ph := g.store.Physics(id); ph != nil {
		ph.VX, ph.VY = 0, 0
	}
	g.held = id
}

// Held returns the held object, or 0.
func (g *GrabSystem) Held() entity.ID {
	if g.held != 0 && !g.store.Has(g.held) {
		g.held = 0
	}
	return g.held
}

// Pending reports whether a long press is in progress.
func (g *GrabSystem) Pending() bool {
	return g.timer.Armed()
}

// Reset drops all grab state without touching entities.
func (g *GrabSystem) Reset() {
	g.timer.Cancel()
	g.pending = 0
	g.held = 0
}
