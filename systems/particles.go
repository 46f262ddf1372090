package systems

import (
	"math"
	"math/rand"
	"slices"

	"github.com/pthm-cable/petsim/components"
	"github.com/pthm-cable/petsim/config"
	"github.com/pthm-cable/petsim/entity"
)

// Particle kinds.
const (
	ParticleExplosion = "explosion"
	ParticleDroplet   = "droplet"
	ParticleBubbles   = components.TagBubbles
	ParticleWater     = components.TagWater
)

// ParticleSystem emits short-lived feedback entities and retires them when
// their lifetime runs out. It keeps its own list of live particles in sync
// with the store.
type ParticleSystem struct {
	store     *entity.Store
	cfg       config.ParticlesConfig
	rng       *rand.Rand
	particles []entity.ID
	enabled   bool
}

// NewParticleSystem creates a new particle system.
func NewParticleSystem(store *entity.Store, cfg config.ParticlesConfig, rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{
		store:     store,
		cfg:       cfg,
		rng:       rng,
		particles: make([]entity.ID, 0, 64),
		enabled:   true,
	}
}

// SetEnabled turns emission on or off. Live particles keep updating.
func (s *ParticleSystem) SetEnabled(on bool) {
	s.enabled = on
}

// Active returns the live particle ids.
func (s *ParticleSystem) Active() []entity.ID {
	return slices.Clone(s.particles)
}

// Len returns the number of live particles.
func (s *ParticleSystem) Len() int {
	return len(s.particles)
}

func (s *ParticleSystem) spawn(kind string, x, y float64, kc config.ParticleKindConfig, ph *components.Physics, sticky *components.StickyTarget, behaviors ...components.ParticleBehavior) entity.ID {
	id := s.store.Add(entity.Spec{
		Active: true,
		Tags:   []string{components.TagParticle, kind},
		Sprite: components.Sprite{
			X: x, Y: y,
			Width: kc.Size, Height: kc.Size,
			Scale:    1,
			Alpha:    100,
			Color:    components.RGBA(kc.Color),
			HasColor: true,
			Image:    "particle_" + kind,
		},
		Collider: &components.Collider{Width: kc.Size, Height: kc.Size},
		Physics:  ph,
		Sticky:   sticky,
		Particle: &components.Particle{
			Kind:          kind,
			TimeToLife:    kc.TTL,
			MaxTimeToLife: kc.TTL,
			Behaviors:     behaviors,
		},
	})
	s.particles = append(s.particles, id)
	return id
}

// EmitExplosion emits n fading particles with random velocities.
func (s *ParticleSystem) EmitExplosion(x, y float64, n int) []entity.ID {
	if !s.enabled {
		return nil
	}
	kc := s.cfg.Explosion
	ids := make([]entity.ID, 0, n)
	for range n {
		ph := &components.Physics{
			VX:      (s.rng.Float64() - 0.5) * kc.Spread,
			VY:      -(s.rng.Float64() - 0.5) * kc.Spread,
			Gravity: kc.Gravity,
			Enabled: true,
		}
		ids = append(ids, s.spawn(ParticleExplosion, x, y, kc, ph, nil, components.BehaviorFade))
	}
	return ids
}

// EmitDroplets emits n fading, slowing droplets.
func (s *ParticleSystem) EmitDroplets(x, y float64, n int) []entity.ID {
	if !s.enabled {
		return nil
	}
	kc := s.cfg.Droplet
	ids := make([]entity.ID, 0, n)
	for range n {
		ph := &components.Physics{Gravity: kc.Gravity, Enabled: true}
		ids = append(ids, s.spawn(ParticleDroplet, x, y, kc, ph, nil, components.BehaviorFade, components.BehaviorSlowDown))
	}
	return ids
}

// EmitBubble emits one bubble pinned to target at the given offset.
func (s *ParticleSystem) EmitBubble(target entity.ID, offsetX, offsetY float64) entity.ID {
	if !s.enabled {
		return 0
	}
	sp := s.store.Sprite(target)
	if sp == nil {
		return 0
	}
	x, y := sp.X+offsetX, sp.Y+offsetY
	sticky := &components.StickyTarget{Target: uint64(target), OffsetX: offsetX, OffsetY: offsetY}
	return s.spawn(ParticleBubbles, x, y, s.cfg.Bubbles, nil, sticky, components.BehaviorFade, components.BehaviorSticky)
}

// EmitShowerWater emits n falling water particles.
func (s *ParticleSystem) EmitShowerWater(x, y float64, n int) []entity.ID {
	if !s.enabled {
		return nil
	}
	kc := s.cfg.Water
	ids := make([]entity.ID, 0, n)
	for range n {
		ph := &components.Physics{
			VX:      (s.rng.Float64() - 0.5) * kc.Spread,
			VY:      s.rng.Float64() * 10,
			Gravity: kc.Gravity,
			Enabled: true,
		}
		ids = append(ids, s.spawn(ParticleWater, x, y, kc, ph, nil, components.BehaviorFade))
	}
	return ids
}

// Update runs each particle's behavior chain and removes expired ones from
// both the local list and the store.
func (s *ParticleSystem) Update(dtMs float64) {
	for i := len(s.particles) - 1; i >= 0; i-- {
		id := s.particles[i]
		p := s.store.Particle(id)
		if p == nil {
			// Removed elsewhere; drop the stale entry.
			s.particles = slices.Delete(s.particles, i, i+1)
			continue
		}

		for _, b := range p.Behaviors {
			s.apply(b, id, p, dtMs)
		}

		if p.TimeToLife <= 0 {
			s.particles = slices.Delete(s.particles, i, i+1)
			s.store.Remove(id)
		}
	}
}

func (s *ParticleSystem) apply(b components.ParticleBehavior, id entity.ID, p *components.Particle, dtMs float64) {
	switch b {
	case components.BehaviorFade:
		p.TimeToLife = math.Max(0, p.TimeToLife-dtMs)
		if sp := s.store.Sprite(id); sp != nil && p.MaxTimeToLife > 0 {
			sp.Alpha = p.TimeToLife / p.MaxTimeToLife * 100
		}
	case components.BehaviorSticky:
		st := s.store.Sticky(id)
		if st == nil {
			return
		}
		target := s.store.Sprite(entity.ID(st.Target))
		if target == nil {
			// Target is gone; nothing left to stick to.
			p.TimeToLife = 0
			return
		}
		sp := s.store.Sprite(id)
		sp.X = target.X + st.OffsetX
		sp.Y = target.Y + st.OffsetY
	case components.BehaviorSlowDown:
		if ph := s.store.Physics(id); ph != nil {
			k := math.Pow(0.95, dtMs/1000*60)
			ph.VX *= k
			ph.VY *= k
		}
	}
}

// Clear removes every live particle.
func (s *ParticleSystem) Clear() {
	for _, id := range s.particles {
		s.store.Remove(id)
	}
	s.particles = s.particles[:0]
}
