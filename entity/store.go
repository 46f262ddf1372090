// Package entity provides the authoritative entity store backed by an ECS world.
package entity

import (
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/petsim/components"
)

// ID identifies an entity for its whole lifetime. Zero means "unassigned".
// IDs are never reused while in use; ark entity handles are recycled, so
// the store keeps its own monotonic counter.
type ID uint64

// Capability is a bit set of optional components present on an entity.
type Capability uint8

const (
	CapPhysics Capability = 1 << iota
	CapCollider
	CapGrab
	CapSticky
	CapObject
	CapParticle
)

// Spec describes an entity to create. Nil component pointers mean the
// capability is absent.
type Spec struct {
	ID     ID
	Active bool
	Tags   []string
	Sprite components.Sprite

	Physics  *components.Physics
	Collider *components.Collider
	Grab     *components.Grab
	Sticky   *components.StickyTarget
	Object   *components.Object
	Particle *components.Particle
}

type entry struct {
	e    ecs.Entity
	caps Capability
}

// Store maps ids to entities and owns their component storage.
//
// Component pointers returned by accessors stay valid only until the next
// Add or Remove; re-fetch after any structural change.
type Store struct {
	world *ecs.World

	base      *ecs.Map2[components.Identity, components.Sprite]
	identity  *ecs.Map1[components.Identity]
	sprites   *ecs.Map1[components.Sprite]
	physics   *ecs.Map1[components.Physics]
	colliders *ecs.Map1[components.Collider]
	grabs     *ecs.Map1[components.Grab]
	sticky    *ecs.Map1[components.StickyTarget]
	objects   *ecs.Map1[components.Object]
	particles *ecs.Map1[components.Particle]

	entries map[ID]entry
	order   []ID
	nextID  ID
}

// NewStore creates an empty store on a fresh ECS world.
func NewStore() *Store {
	w := ecs.NewWorld()
	return &Store{
		world:     w,
		base:      ecs.NewMap2[components.Identity, components.Sprite](w),
		identity:  ecs.NewMap1[components.Identity](w),
		sprites:   ecs.NewMap1[components.Sprite](w),
		physics:   ecs.NewMap1[components.Physics](w),
		colliders: ecs.NewMap1[components.Collider](w),
		grabs:     ecs.NewMap1[components.Grab](w),
		sticky:    ecs.NewMap1[components.StickyTarget](w),
		objects:   ecs.NewMap1[components.Object](w),
		particles: ecs.NewMap1[components.Particle](w),
		entries:   make(map[ID]entry),
		nextID:    1,
	}
}

// World exposes the underlying ECS world for systems that run filters.
func (s *Store) World() *ecs.World {
	return s.world
}

// Add registers a new entity and returns its id. A requested id is kept
// only if it is not already in use; otherwise a fresh one is assigned.
func (s *Store) Add(spec Spec) ID {
	id := spec.ID
	if _, taken := s.entries[id]; id == 0 || taken {
		id = s.nextID
	}
	if id >= s.nextID {
		s.nextID = id + 1
	}

	ident := components.Identity{ID: uint64(id), Active: spec.Active, Tags: slices.Clone(spec.Tags)}
	sprite := spec.Sprite
	e := s.base.NewEntity(&ident, &sprite)

	var caps Capability
	if spec.Physics != nil {
		c := *spec.Physics
		s.physics.Add(e, &c)
		caps |= CapPhysics
	}
	if spec.Collider != nil {
		c := *spec.Collider
		s.colliders.Add(e, &c)
		caps |= CapCollider
	}
	if spec.Grab != nil {
		c := *spec.Grab
		s.grabs.Add(e, &c)
		caps |= CapGrab
	}
	if spec.Sticky != nil {
		c := *spec.Sticky
		s.sticky.Add(e, &c)
		caps |= CapSticky
	}
	if spec.Object != nil {
		c := *spec.Object
		c.Behaviors = slices.Clone(c.Behaviors)
		s.objects.Add(e, &c)
		caps |= CapObject
	}
	if spec.Particle != nil {
		c := *spec.Particle
		c.Behaviors = slices.Clone(c.Behaviors)
		s.particles.Add(e, &c)
		caps |= CapParticle
	}

	s.entries[id] = entry{e: e, caps: caps}
	s.order = append(s.order, id)
	return id
}

// Remove deletes the entity. Removing an unknown id is a no-op.
func (s *Store) Remove(id ID) bool {
	en, ok := s.entries[id]
	if !ok {
		return false
	}
	s.world.RemoveEntity(en.e)
	delete(s.entries, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return true
}

// Has reports whether the id is registered.
func (s *Store) Has(id ID) bool {
	_, ok := s.entries[id]
	return ok
}

// Len returns the number of registered entities.
func (s *Store) Len() int {
	return len(s.entries)
}

// All returns a snapshot of registered ids in a stable order for the frame.
func (s *Store) All() []ID {
	return slices.Clone(s.order)
}

// Caps returns the capability set of the entity, or 0 if unknown.
func (s *Store) Caps(id ID) Capability {
	return s.entries[id].caps
}

// HasCap reports whether the entity carries every capability in c.
func (s *Store) HasCap(id ID, c Capability) bool {
	en, ok := s.entries[id]
	return ok && en.caps&c == c
}

// IDOf maps an ECS entity handle back to its store id.
func (s *Store) IDOf(e ecs.Entity) ID {
	return ID(s.identity.Get(e).ID)
}

// Identity returns the identity component, or nil if the id is unknown.
func (s *Store) Identity(id ID) *components.Identity {
	en, ok := s.entries[id]
	if !ok {
		return nil
	}
	return s.identity.Get(en.e)
}

// HasTag reports whether the entity exists and carries the tag.
func (s *Store) HasTag(id ID, tag string) bool {
	ident := s.Identity(id)
	return ident != nil && ident.HasTag(tag)
}

// Sprite returns the sprite, or nil if the id is unknown.
func (s *Store) Sprite(id ID) *components.Sprite {
	en, ok := s.entries[id]
	if !ok {
		return nil
	}
	return s.sprites.Get(en.e)
}

// Physics returns the physics component, or nil if absent.
func (s *Store) Physics(id ID) *components.Physics {
	en, ok := s.entries[id]
	if !ok || en.caps&CapPhysics == 0 {
		return nil
	}
	return s.physics.Get(en.e)
}

// Collider returns the collider component, or nil if absent.
func (s *Store) Collider(id ID) *components.Collider {
	en, ok := s.entries[id]
	if !ok || en.caps&CapCollider == 0 {
		return nil
	}
	return s.colliders.Get(en.e)
}

// Grab returns the grab component, or nil if absent.
func (s *Store) Grab(id ID) *components.Grab {
	en, ok := s.entries[id]
	if !ok || en.caps&CapGrab == 0 {
		return nil
	}
	return s.grabs.Get(en.e)
}

// Sticky returns the sticky target, or nil if absent.
func (s *Store) Sticky(id ID) *components.StickyTarget {
	en, ok := s.entries[id]
	if !ok || en.caps&CapSticky == 0 {
		return nil
	}
	return s.sticky.Get(en.e)
}

// Object returns the object component, or nil if absent.
func (s *Store) Object(id ID) *components.Object {
	en, ok := s.entries[id]
	if !ok || en.caps&CapObject == 0 {
		return nil
	}
	return s.objects.Get(en.e)
}

// Particle returns the particle component, or nil if absent.
func (s *Store) Particle(id ID) *components.Particle {
	en, ok := s.entries[id]
	if !ok || en.caps&CapParticle == 0 {
		return nil
	}
	return s.particles.Get(en.e)
}

// IsGrabbed reports whether the entity has a Grab component that is held.
func (s *Store) IsGrabbed(id ID) bool {
	g := s.Grab(id)
	return g != nil && g.IsGrabbed
}
