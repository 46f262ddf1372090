package systems

import (
	"log/slog"
	"math"
	"math/rand"
	"slices"

	"github.com/pthm-cable/petsim/components"
	"github.com/pthm-cable/petsim/config"
	"github.com/pthm-cable/petsim/entity"
)

// Object behavior names.
const (
	BehaviorDropWater = "dropWater"
	BehaviorSoap      = "soap"
)

// SurfaceName is the fixture food is served on.
const SurfaceName = "Mesa"

// ObjectBehavior is a per-tick script bound to one runtime object.
type ObjectBehavior func(id entity.ID, dtMs float64)

// PetView exposes what object behaviors need to know about the pet.
type PetView interface {
	PetID() entity.ID
	IsBathing() bool
}

// ObjectService spawns runtime clones of object templates and retires them
// when their lifetime runs out.
type ObjectService struct {
	store     *entity.Store
	particles *ParticleSystem
	pet       PetView
	rng       *rand.Rand

	gravity float64
	spawnX  float64
	spawnY  float64
	water   config.ParticleKindConfig
	bubbles config.ParticleKindConfig

	active    []entity.ID
	behaviors map[entity.ID][]ObjectBehavior
}

// NewObjectService creates a new object service. pet may be nil.
func NewObjectService(store *entity.Store, particles *ParticleSystem, pet PetView, rng *rand.Rand, cfg *config.Config) *ObjectService {
	return &ObjectService{
		store:     store,
		particles: particles,
		pet:       pet,
		rng:       rng,
		gravity:   cfg.Physics.Gravity,
		spawnX:    cfg.Canvas.SpawnX,
		spawnY:    cfg.Canvas.SpawnY,
		water:     cfg.Particles.Water,
		bubbles:   cfg.Particles.Bubbles,
		behaviors: make(map[entity.ID][]ObjectBehavior),
	}
}

// SetPet attaches the pet view used by behaviors.
func (s *ObjectService) SetPet(pet PetView) {
	s.pet = pet
}

// Active returns the ids of live objects in spawn order.
func (s *ObjectService) Active() []entity.ID {
	return slices.Clone(s.active)
}

// Spawn clones the template at its default spawn point. Food is placed on
// top of the first serving surface when one is present.
func (s *ObjectService) Spawn(t config.ObjectConfig) entity.ID {
	x, y := s.spawnX, s.spawnY
	if t.Type == config.ObjectFood {
		if sx, sy, ok := s.surfaceSpot(t); ok {
			x, y = sx, sy
		}
	}
	return s.SpawnAt(t, x, y)
}

func (s *ObjectService) surfaceSpot(t config.ObjectConfig) (float64, float64, bool) {
	for _, id := range s.active {
		obj := s.store.Object(id)
		ident := s.store.Identity(id)
		if obj == nil || ident == nil || !ident.Active {
			continue
		}
		if obj.Name != SurfaceName && !ident.HasTag(components.TagSurface) {
			continue
		}
		surf := SpriteBounds(s.store.Sprite(id))
		w, h := t.Width*templateScale(t), t.Height*templateScale(t)
		return surf.CenterX() - w/2, surf.Y - h, true
	}
	return 0, 0, false
}

// SpawnAt clones the template at the given position.
func (s *ObjectService) SpawnAt(t config.ObjectConfig, x, y float64) entity.ID {
	scale := templateScale(t)
	id := s.store.Add(entity.Spec{
		Active: true,
		Tags:   append([]string{components.TagObject}, t.Tags...),
		Sprite: components.Sprite{
			X: x, Y: y,
			Width: t.Width, Height: t.Height,
			Scale:    scale,
			Alpha:    100,
			Color:    components.RGBA(t.Color),
			HasColor: true,
			Image:    t.Name,
		},
		Physics:  &components.Physics{Gravity: s.gravity, Enabled: true},
		Collider: &components.Collider{Width: t.Width, Height: t.Height},
		Grab:     &components.Grab{},
		Object: &components.Object{
			Name:       t.Name,
			Type:       components.ParseObjectType(t.Type),
			Behaviors:  t.Behaviors,
			TimeToLife: t.TimeToLife,
			Persistent: t.Persistent,
		},
	})

	var bound []ObjectBehavior
	for _, name := range t.Behaviors {
		b := s.resolveBehavior(name)
		if b == nil {
			slog.Debug("unknown object behavior", "object", t.Name, "behavior", name)
			continue
		}
		bound = append(bound, b)
	}
	if len(bound) > 0 {
		s.behaviors[id] = bound
	}

	s.active = append(s.active, id)
	return id
}

func templateScale(t config.ObjectConfig) float64 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

func (s *ObjectService) resolveBehavior(name string) ObjectBehavior {
	switch name {
	case BehaviorDropWater:
		return s.dropWater
	case BehaviorSoap:
		return s.soap
	}
	return nil
}

// dropWater sprinkles water below the object while it is held.
func (s *ObjectService) dropWater(id entity.ID, _ float64) {
	if !s.store.IsGrabbed(id) || s.rng.Float64() >= s.water.Chance {
		return
	}
	r := SpriteBounds(s.store.Sprite(id))
	s.particles.EmitShowerWater(r.CenterX(), r.Y+r.H, max(1, s.water.Count))
}

// soap raises bubbles on the pet while it bathes against this object.
func (s *ObjectService) soap(id entity.ID, _ float64) {
	if s.pet == nil || !s.pet.IsBathing() {
		return
	}
	obj := s.store.Object(id)
	if obj == nil || !obj.TouchingPet || s.rng.Float64() >= s.bubbles.Chance {
		return
	}
	pet := s.pet.PetID()
	sp := s.store.Sprite(pet)
	if sp == nil {
		return
	}
	r := SpriteBounds(sp)
	s.particles.EmitBubble(pet, s.rng.Float64()*r.W, s.rng.Float64()*r.H)
}

// Update runs object behaviors, then counts down lifetimes of objects that
// are neither held nor room fixtures. Expired objects are deleted.
func (s *ObjectService) Update(dtMs float64) {
	for _, id := range slices.Clone(s.active) {
		if s.store.Object(id) == nil {
			s.forget(id)
			continue
		}
		for _, b := range s.behaviors[id] {
			b(id, dtMs)
		}

		// Behaviors may have spawned entities; re-fetch.
		obj := s.store.Object(id)
		// Contact is re-detected by the next collision pass.
		obj.TouchingPet = false
		if obj.Persistent || s.store.IsGrabbed(id) {
			continue
		}
		obj.TimeToLife = math.Max(0, obj.TimeToLife-dtMs)
		if obj.TimeToLife == 0 {
			s.Delete(id)
		}
	}
}

// Delete removes the object from the store and the active list.
func (s *ObjectService) Delete(id entity.ID) {
	s.store.Remove(id)
	s.forget(id)
}

func (s *ObjectService) forget(id entity.ID) {
	if i := slices.Index(s.active, id); i >= 0 {
		s.active = slices.Delete(s.active, i, i+1)
	}
	delete(s.behaviors, id)
}

// DeleteAll removes every live object regardless of remaining lifetime.
func (s *ObjectService) DeleteAll() {
	for _, id := range s.active {
		s.store.Remove(id)
	}
	s.active = s.active[:0]
	clear(s.behaviors)
}

// ObjectAt returns the topmost live object whose sprite contains the point.
func (s *ObjectService) ObjectAt(x, y float64) (entity.ID, bool) {
	for i := len(s.active) - 1; i >= 0; i-- {
		id := s.active[i]
		sp := s.store.Sprite(id)
		if sp != nil && SpriteBounds(sp).Contains(x, y) {
			return id, true
		}
	}
	return 0, false
}
