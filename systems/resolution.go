package systems

import (
	"math"

	"github.com/pthm-cable/petsim/components"
	"github.com/pthm-cable/petsim/entity"
)

// PetContact receives pet-object contacts found during collision resolution.
type PetContact interface {
	OnPetTouchObject(pet, obj entity.ID)
}

// StatAdjuster changes a pet stat by a signed delta.
type StatAdjuster interface {
	AdjustStat(name string, delta float64)
}

// Resolver dispatches overlapping pairs by tag.
type Resolver struct {
	store         *entity.Store
	restitution   float64
	pet           PetContact
	stats         StatAdjuster
	bubbleHygiene float64
}

// NewResolver creates a resolver. pet and stats may be nil, which disables
// the rules that need them.
func NewResolver(store *entity.Store, restitution float64, pet PetContact, stats StatAdjuster, bubbleHygiene float64) *Resolver {
	return &Resolver{
		store:         store,
		restitution:   restitution,
		pet:           pet,
		stats:         stats,
		bubbleHygiene: bubbleHygiene,
	}
}

// Resolve applies the first matching rule: pet/object, particle/pet,
// particle/object, particle/particle, then generic two-body push-out.
func (r *Resolver) Resolve(a, b entity.ID) {
	is := func(id entity.ID, tag string) bool { return r.store.HasTag(id, tag) }

	switch {
	case is(a, components.TagPet) && is(b, components.TagObject):
		r.petObject(a, b)
	case is(b, components.TagPet) && is(a, components.TagObject):
		r.petObject(b, a)
	case is(a, components.TagParticle) && is(b, components.TagPet),
		is(b, components.TagParticle) && is(a, components.TagPet):
		// Particles never push the pet.
	case is(a, components.TagParticle) && is(b, components.TagObject):
		r.bounceParticle(a, b)
	case is(b, components.TagParticle) && is(a, components.TagObject):
		r.bounceParticle(b, a)
	case is(a, components.TagParticle) && is(b, components.TagParticle):
		r.particlePair(a, b)
	default:
		r.resolveBodies(a, b)
	}
}

func (r *Resolver) petObject(pet, obj entity.ID) {
	if r.pet != nil {
		r.pet.OnPetTouchObject(pet, obj)
	}
}

// particlePair extinguishes bubbles hit by water.
func (r *Resolver) particlePair(a, b entity.ID) {
	bubbleWater := r.store.HasTag(a, components.TagBubbles) && r.store.HasTag(b, components.TagWater) ||
		r.store.HasTag(b, components.TagBubbles) && r.store.HasTag(a, components.TagWater)
	if !bubbleWater {
		return
	}
	for _, id := range []entity.ID{a, b} {
		if !r.store.HasTag(id, components.TagBubbles) {
			continue
		}
		if p := r.store.Particle(id); p != nil {
			p.TimeToLife = 0
		}
	}
	if r.stats != nil {
		r.stats.AdjustStat("hygiene", r.bubbleHygiene)
	}
}

// overlaps returns the minimum push-out distance along each axis.
func overlaps(ra, rb Rect) (float64, float64) {
	ox := math.Min(ra.X+ra.W-rb.X, rb.X+rb.W-ra.X)
	oy := math.Min(ra.Y+ra.H-rb.Y, rb.Y+rb.H-ra.Y)
	return ox, oy
}

// bounceParticle pushes the particle out of an immovable object and
// reflects its velocity on the resolved axis.
func (r *Resolver) bounceParticle(particle, obj entity.ID) {
	rp, ok1 := EntityBounds(r.store, particle)
	ro, ok2 := EntityBounds(r.store, obj)
	if !ok1 || !ok2 {
		return
	}
	sp := r.store.Sprite(particle)
	ph := r.store.Physics(particle)
	ox, oy := overlaps(rp, ro)

	if ox < oy {
		if rp.CenterX() < ro.CenterX() {
			sp.X -= ox
		} else {
			sp.X += ox
		}
		if ph != nil {
			ph.VX = -ph.VX * r.restitution
		}
		return
	}
	if rp.CenterY() < ro.CenterY() {
		sp.Y -= oy
	} else {
		sp.Y += oy
	}
	if ph != nil {
		ph.VY = -ph.VY * r.restitution
	}
}

// movable reports whether resolution may displace the entity.
func (r *Resolver) movable(id entity.ID) bool {
	return r.store.Physics(id) != nil && !r.store.IsGrabbed(id)
}

// resolveBodies separates two generic bodies along the axis of least
// penetration. Equal overlaps resolve vertically.
func (r *Resolver) resolveBodies(a, b entity.ID) {
	ra, ok1 := EntityBounds(r.store, a)
	rb, ok2 := EntityBounds(r.store, b)
	if !ok1 || !ok2 {
		return
	}
	ox, oy := overlaps(ra, rb)

	if ox < oy {
		r.resolveHorizontal(a, b, ra, rb, ox)
		return
	}
	r.resolveVertical(a, b, ra, rb, oy)
}

func (r *Resolver) resolveVertical(a, b entity.ID, ra, rb Rect, oy float64) {
	upper, lower := a, b
	if rb.CenterY() < ra.CenterY() {
		upper, lower = b, a
	}

	switch {
	case r.movable(upper):
		r.store.Sprite(upper).Y -= oy
		r.reflectY(upper)
	case r.movable(lower):
		r.store.Sprite(lower).Y += oy
		r.reflectY(lower)
	}
}

func (r *Resolver) reflectY(id entity.ID) {
	if ph := r.store.Physics(id); ph != nil {
		ph.VY = -ph.VY * r.restitution
	}
}

func (r *Resolver) resolveHorizontal(a, b entity.ID, ra, rb Rect, ox float64) {
	left, right := a, b
	if rb.CenterX() < ra.CenterX() {
		left, right = b, a
	}
	ml, mr := r.movable(left), r.movable(right)

	var pushL, pushR float64
	switch {
	case ml && mr:
		pushL, pushR = ox/2, ox/2
	case ml:
		pushL = ox
	case mr:
		pushR = ox
	default:
		return
	}

	if ml {
		r.store.Sprite(left).X -= pushL
		r.reflectX(left)
	}
	if mr {
		r.store.Sprite(right).X += pushR
		r.reflectX(right)
	}
}

func (r *Resolver) reflectX(id entity.ID) {
	if ph := r.store.Physics(id); ph != nil {
		ph.VX = -ph.VX * r.restitution
	}
}
