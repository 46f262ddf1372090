package pet

import (
	"log/slog"

	"github.com/pthm-cable/petsim/entity"
	"github.com/pthm-cable/petsim/systems"
)

// Effects emits particle feedback.
type Effects interface {
	EmitExplosion(x, y float64, n int) []entity.ID
	EmitDroplets(x, y float64, n int) []entity.ID
}

// Messenger shows speech bubbles.
type Messenger interface {
	Show(target entity.ID, text string) bool
}

// Sounds plays named effects. Calls are fire-and-forget.
type Sounds interface {
	PlayEffect(name string)
}

// Service binds the pet model to its entity and collaborators. It is the
// single implementation of the narrow contexts used by the planner, state
// behaviors, condition engine, input and interaction rules.
type Service struct {
	pet    *Pet
	store  *entity.Store
	bounds systems.Bounds

	effects  Effects
	messages Messenger
	sounds   Sounds

	reactParticles int
	now            float64
	idleAnim       string
	soapContact    bool
}

// NewService creates a pet service. effects, messages and sounds may be nil.
func NewService(p *Pet, store *entity.Store, bounds systems.Bounds, effects Effects, messages Messenger, sounds Sounds, reactParticles int) *Service {
	return &Service{
		pet:            p,
		store:          store,
		bounds:         bounds,
		effects:        effects,
		messages:       messages,
		sounds:         sounds,
		reactParticles: reactParticles,
		idleAnim:       "idle",
	}
}

// Pet returns the pet model.
func (s *Service) Pet() *Pet { return s.pet }

// PetID returns the pet's entity id.
func (s *Service) PetID() entity.ID { return s.pet.ID }

// Tick advances the simulation clock.
func (s *Service) Tick(dtMs float64) { s.now += dtMs }

// Now returns simulation time in ms.
func (s *Service) Now() float64 { return s.now }

// State returns the pet's state.
func (s *Service) State() State { return s.pet.State }

// SetState changes the pet's state. The state machine picks the change up
// on its next update.
func (s *Service) SetState(st State) {
	if s.pet.State == st {
		return
	}
	slog.Debug("pet state", "from", s.pet.State, "to", st)
	s.pet.State = st
	if g := s.store.Grab(s.pet.ID); g != nil {
		g.IsGrabbed = st == Grabbed
	}
}

// IsBathing reports whether the pet is bathing.
func (s *Service) IsBathing() bool { return s.pet.State == Bathing }

// Box returns the pet's scaled sprite box.
func (s *Service) Box() systems.Rect {
	sp := s.store.Sprite(s.pet.ID)
	if sp == nil {
		return systems.Rect{}
	}
	return systems.SpriteBounds(sp)
}

// MoveBy shifts the pet.
func (s *Service) MoveBy(dx, dy float64) {
	if sp := s.store.Sprite(s.pet.ID); sp != nil {
		sp.X += dx
		sp.Y += dy
	}
}

// MoveTo places the pet.
func (s *Service) MoveTo(x, y float64) {
	if sp := s.store.Sprite(s.pet.ID); sp != nil {
		sp.X, sp.Y = x, y
	}
}

// Bounds returns the canvas size.
func (s *Service) Bounds() systems.Bounds { return s.bounds }

// Conditions returns the pet's condition set.
func (s *Service) Conditions() *Conditions { return &s.pet.Conditions }

// HasCondition reports whether the condition is present.
func (s *Service) HasCondition(c Condition) bool { return s.pet.Conditions.Has(c) }

// ClipLength returns frames times frame speed for the clip, looping or not.
func (s *Service) ClipLength(name string) float64 {
	sp := s.store.Sprite(s.pet.ID)
	if sp == nil {
		return 0
	}
	return systems.ClipLength(sp, name)
}

// AnimationDuration returns one play of the clip; loops are infinite.
func (s *Service) AnimationDuration(name string) float64 {
	sp := s.store.Sprite(s.pet.ID)
	if sp == nil {
		return 0
	}
	return systems.Duration(sp, name)
}

// SetAnimation switches the pet's clip.
func (s *Service) SetAnimation(name string) {
	sp := s.store.Sprite(s.pet.ID)
	if sp == nil {
		return
	}
	if !systems.HasClip(sp, name) {
		slog.Debug("missing animation clip", "clip", name)
	}
	systems.SetAnimation(sp, name)
}

// SetIdleAnimation selects the clip used while idle, falling back to the
// default clip and then to plain idle. It applies at once if the pet is idle.
func (s *Service) SetIdleAnimation(name string) {
	sp := s.store.Sprite(s.pet.ID)
	if sp == nil {
		return
	}
	for _, candidate := range []string{name, systems.AnimDefault, systems.AnimIdle} {
		if systems.HasClip(sp, candidate) {
			name = candidate
			break
		}
	}
	s.idleAnim = name
	if s.pet.State == Idle {
		systems.SetAnimation(sp, name)
	}
}

// IdleAnimation returns the clip selected for idling.
func (s *Service) IdleAnimation() string { return s.idleAnim }

// AdjustStat adds a signed delta to a stat.
func (s *Service) AdjustStat(name string, delta float64) { s.pet.AdjustStat(name, delta) }

// SetStatActive toggles decay of a stat.
func (s *Service) SetStatActive(name string, active bool) { s.pet.SetStatActive(name, active) }

// StatValue returns a stat's value.
func (s *Service) StatValue(name string) (float64, bool) { return s.pet.StatValue(name) }

// MovementBlocked reports whether autonomous walking is disabled.
func (s *Service) MovementBlocked() bool { return s.pet.Cheats.NoMoreMove }

// TouchSoap records soap contact for the bathing state.
func (s *Service) TouchSoap() { s.soapContact = true }

// ConsumeSoapContact reports and clears soap contact since the last call.
func (s *Service) ConsumeSoapContact() bool {
	c := s.soapContact
	s.soapContact = false
	return c
}

// EmitReaction bursts particles from the pet's center.
func (s *Service) EmitReaction() {
	if s.effects == nil {
		return
	}
	box := s.Box()
	s.effects.EmitExplosion(box.CenterX(), box.CenterY(), s.reactParticles)
}

// EmitSweat drops a bead of sweat from the top of the pet.
func (s *Service) EmitSweat() {
	if s.effects == nil {
		return
	}
	box := s.Box()
	s.effects.EmitDroplets(box.X+box.W*0.75, box.Y, 1)
}

// ShowMessage posts a speech bubble above the pet.
func (s *Service) ShowMessage(text string) bool {
	if s.messages == nil {
		return false
	}
	return s.messages.Show(s.pet.ID, text)
}

// PlaySound plays a named effect.
func (s *Service) PlaySound(name string) {
	if s.sounds != nil {
		s.sounds.PlayEffect(name)
	}
}
