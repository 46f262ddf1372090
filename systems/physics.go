package systems

import (
	"cmp"
	"math"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/petsim/components"
	"github.com/pthm-cable/petsim/entity"
)

// PairResolver handles a pair of overlapping entities.
type PairResolver interface {
	Resolve(a, b entity.ID)
}

// PhysicsSystem integrates velocities, clamps bodies to the canvas and
// resolves pairwise collisions.
type PhysicsSystem struct {
	store    *entity.Store
	filter   ecs.Filter3[components.Sprite, components.Physics, components.Collider]
	bounds   Bounds
	floorY   float64
	resolver PairResolver

	// Optional broad phase; nil means exhaustive pairwise checks.
	grid  *SpatialGrid
	index map[entity.ID]int
	cand  []entity.ID
}

// NewPhysicsSystem creates a new physics system.
func NewPhysicsSystem(store *entity.Store, bounds Bounds, floorY float64, resolver PairResolver) *PhysicsSystem {
	return &PhysicsSystem{
		store:    store,
		filter:   *ecs.NewFilter3[components.Sprite, components.Physics, components.Collider](store.World()),
		bounds:   bounds,
		floorY:   floorY,
		resolver: resolver,
		index:    make(map[entity.ID]int),
	}
}

// UseGrid enables a broad-phase grid with the given cell size.
func (s *PhysicsSystem) UseGrid(cellSize float64) {
	s.grid = NewSpatialGrid(s.bounds.Width, s.bounds.Height, cellSize)
}

// Update runs integration then collision detection and resolution.
func (s *PhysicsSystem) Update(dtMs float64) {
	s.Integrate(dtMs / 1000)
	s.Collide()
}

// Integrate applies gravity and velocity to every enabled, ungrabbed body.
func (s *PhysicsSystem) Integrate(dt float64) {
	query := s.filter.Query()
	for query.Next() {
		sp, ph, col := query.Get()
		id := s.store.IDOf(query.Entity())
		if s.store.HasCap(id, entity.CapParticle) {
			integrateParticle(sp, ph, col, dt, s.floorY)
			continue
		}
		integrateBody(sp, ph, col, s.store.Grab(id), dt, s.bounds.Width, s.floorY)
	}
}

// integrateParticle moves a particle freely; only the floor stops it.
func integrateParticle(sp *components.Sprite, ph *components.Physics, col *components.Collider, dt, floorY float64) {
	if !ph.Enabled {
		return
	}
	ph.VY += ph.Gravity * dt
	sp.X += ph.VX * dt
	sp.Y += ph.VY * dt

	if h := col.Height * sp.ScaleOr1(); sp.Y+h > floorY {
		sp.Y = floorY - h
		ph.VY = 0
	}
}

func integrateBody(sp *components.Sprite, ph *components.Physics, col *components.Collider, grab *components.Grab, dt, width, floorY float64) {
	// Bodies that cannot be grabbed are static attachments.
	if grab == nil {
		ph.VX, ph.VY = 0, 0
		return
	}
	if !ph.Enabled || grab.IsGrabbed {
		return
	}

	ph.VY += ph.Gravity * dt
	sp.X += ph.VX * dt
	sp.Y += ph.VY * dt

	h := col.Height * sp.ScaleOr1()
	if sp.Y+h > floorY {
		sp.Y = floorY - h
		ph.VY = 0
	}

	if sp.X < 0 || sp.X+col.Width > width {
		sp.X = math.Max(0, math.Min(sp.X, width-col.Width))
		ph.VX = 0
	}
}

// Collide checks every collider-bearing pair once, in store order, and
// hands overlapping pairs to the resolver. Entities removed by an earlier
// resolution in the same pass are skipped.
func (s *PhysicsSystem) Collide() {
	ids := s.store.All()
	bodies := ids[:0]
	for _, id := range ids {
		if s.store.HasCap(id, entity.CapCollider) {
			bodies = append(bodies, id)
		}
	}

	if s.grid != nil {
		s.collideGrid(bodies)
		return
	}

	for i, a := range bodies {
		for _, b := range bodies[i+1:] {
			if !s.store.Has(a) {
				break
			}
			if !s.store.Has(b) {
				continue
			}
			if AreColliding(s.store, a, b) {
				s.resolver.Resolve(a, b)
			}
		}
	}
}

func (s *PhysicsSystem) collideGrid(bodies []entity.ID) {
	s.grid.Clear()
	clear(s.index)
	for i, id := range bodies {
		s.index[id] = i
		if r, ok := EntityBounds(s.store, id); ok {
			s.grid.Insert(id, r)
		}
	}

	for i, a := range bodies {
		r, ok := EntityBounds(s.store, a)
		if !ok {
			continue
		}
		s.cand = s.grid.QueryInto(s.cand[:0], r)
		// Same order as the exhaustive pass.
		slices.SortFunc(s.cand, func(x, y entity.ID) int {
			return cmp.Compare(s.index[x], s.index[y])
		})
		for _, b := range s.cand {
			if s.index[b] <= i {
				continue
			}
			if !s.store.Has(a) {
				break
			}
			if !s.store.Has(b) {
				continue
			}
			if AreColliding(s.store, a, b) {
				s.resolver.Resolve(a, b)
			}
		}
	}
}
