package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/petsim/components"
	"github.com/pthm-cable/petsim/entity"
)

// addBody adds a box entity. Movable bodies get physics and a grab handle.
func addBody(store *entity.Store, x, y, w, h float64, movable bool, tags ...string) entity.ID {
	spec := entity.Spec{
		Active:   true,
		Tags:     tags,
		Sprite:   components.Sprite{X: x, Y: y, Width: w, Height: h, Scale: 1},
		Collider: &components.Collider{Width: w, Height: h},
	}
	if movable {
		spec.Physics = &components.Physics{Enabled: true}
		spec.Grab = &components.Grab{}
	}
	return store.Add(spec)
}

type pairRecorder struct {
	pairs [][2]entity.ID
}

func (r *pairRecorder) Resolve(a, b entity.ID) {
	r.pairs = append(r.pairs, [2]entity.ID{a, b})
}

// ---------- Integration ----------

func TestIntegrate_FloorClamp(t *testing.T) {
	store := entity.NewStore()
	id := addBody(store, 50, 90, 10, 10, true)
	store.Physics(id).VY = 100

	ps := NewPhysicsSystem(store, Bounds{Width: 200, Height: 200}, 100, &pairRecorder{})
	ps.Integrate(1)

	sp, ph := store.Sprite(id), store.Physics(id)
	if sp.Y != 90 {
		t.Errorf("y = %v, want 90 (resting on floor)", sp.Y)
	}
	if ph.VY != 0 {
		t.Errorf("vy = %v, want 0 after landing", ph.VY)
	}
}

func TestIntegrate_Gravity(t *testing.T) {
	store := entity.NewStore()
	id := addBody(store, 50, 0, 10, 10, true)
	store.Physics(id).Gravity = 100

	ps := NewPhysicsSystem(store, Bounds{Width: 200, Height: 200}, 200, &pairRecorder{})
	ps.Update(500)

	ph, sp := store.Physics(id), store.Sprite(id)
	if ph.VY != 50 {
		t.Errorf("vy = %v, want 50", ph.VY)
	}
	if sp.Y != 25 {
		t.Errorf("y = %v, want 25", sp.Y)
	}
}

func TestIntegrate_SideWalls(t *testing.T) {
	store := entity.NewStore()
	id := addBody(store, 185, 0, 10, 10, true)
	store.Physics(id).VX = 100

	ps := NewPhysicsSystem(store, Bounds{Width: 200, Height: 200}, 200, &pairRecorder{})
	ps.Integrate(0.5)

	if sp := store.Sprite(id); sp.X != 190 {
		t.Errorf("x = %v, want 190", sp.X)
	}
	if ph := store.Physics(id); ph.VX != 0 {
		t.Errorf("vx = %v, want 0 after hitting the wall", ph.VX)
	}
}

func TestIntegrate_StaticWithoutGrab(t *testing.T) {
	store := entity.NewStore()
	id := store.Add(entity.Spec{
		Sprite:   components.Sprite{X: 10, Y: 10, Width: 4, Height: 4},
		Collider: &components.Collider{Width: 4, Height: 4},
		Physics:  &components.Physics{VX: 30, VY: 30, Gravity: 100, Enabled: true},
	})

	ps := NewPhysicsSystem(store, Bounds{Width: 200, Height: 200}, 200, &pairRecorder{})
	ps.Integrate(1)

	sp, ph := store.Sprite(id), store.Physics(id)
	if sp.X != 10 || sp.Y != 10 {
		t.Errorf("static body moved to (%v, %v)", sp.X, sp.Y)
	}
	if ph.VX != 0 || ph.VY != 0 {
		t.Errorf("static body kept velocity (%v, %v)", ph.VX, ph.VY)
	}
}

func TestIntegrate_GrabbedSkipped(t *testing.T) {
	store := entity.NewStore()
	id := addBody(store, 10, 10, 4, 4, true)
	store.Physics(id).VX = 30
	store.Physics(id).Gravity = 100
	store.Grab(id).IsGrabbed = true

	ps := NewPhysicsSystem(store, Bounds{Width: 200, Height: 200}, 200, &pairRecorder{})
	ps.Integrate(1)

	if sp := store.Sprite(id); sp.X != 10 || sp.Y != 10 {
		t.Errorf("grabbed body moved to (%v, %v)", sp.X, sp.Y)
	}
	if ph := store.Physics(id); ph.VX != 30 || ph.VY != 0 {
		t.Errorf("grabbed body velocity changed to (%v, %v)", ph.VX, ph.VY)
	}
}

// ---------- Collision detection ----------

func TestCollide_PairsInStoreOrder(t *testing.T) {
	store := entity.NewStore()
	a := addBody(store, 0, 0, 10, 10, false)
	b := addBody(store, 5, 5, 10, 10, false)
	addBody(store, 100, 100, 10, 10, false)
	store.Add(entity.Spec{Sprite: components.Sprite{X: 0, Y: 0, Width: 10, Height: 10}})

	rec := &pairRecorder{}
	ps := NewPhysicsSystem(store, Bounds{Width: 200, Height: 200}, 200, rec)
	ps.Collide()

	if len(rec.pairs) != 1 || rec.pairs[0] != [2]entity.ID{a, b} {
		t.Errorf("pairs = %v, want [[%d %d]]", rec.pairs, a, b)
	}
}

func TestCollide_GridMatchesPairwise(t *testing.T) {
	store := entity.NewStore()
	rng := rand.New(rand.NewSource(1))
	for range 40 {
		addBody(store, rng.Float64()*180, rng.Float64()*180, 5+rng.Float64()*30, 5+rng.Float64()*30, false)
	}

	pairwise := &pairRecorder{}
	NewPhysicsSystem(store, Bounds{Width: 200, Height: 200}, 200, pairwise).Collide()

	gridded := &pairRecorder{}
	ps := NewPhysicsSystem(store, Bounds{Width: 200, Height: 200}, 200, gridded)
	ps.UseGrid(32)
	ps.Collide()

	if len(pairwise.pairs) == 0 {
		t.Fatal("fixture produced no overlaps")
	}
	if len(gridded.pairs) != len(pairwise.pairs) {
		t.Fatalf("grid found %d pairs, pairwise %d", len(gridded.pairs), len(pairwise.pairs))
	}
	for i := range pairwise.pairs {
		if gridded.pairs[i] != pairwise.pairs[i] {
			t.Errorf("pair %d: grid %v, pairwise %v", i, gridded.pairs[i], pairwise.pairs[i])
		}
	}
}

// ---------- Resolution ----------

type contactRecorder struct {
	pet, obj entity.ID
}

func (c *contactRecorder) OnPetTouchObject(pet, obj entity.ID) {
	c.pet, c.obj = pet, obj
}

type statRecorder map[string]float64

func (s statRecorder) AdjustStat(name string, delta float64) {
	s[name] += delta
}

func TestResolve_VerticalOnTie(t *testing.T) {
	store := entity.NewStore()
	a := addBody(store, 0, 0, 10, 10, true)
	b := addBody(store, 5, 5, 10, 10, true)
	store.Physics(a).VY = 20

	NewResolver(store, 0.5, nil, nil, 0).Resolve(a, b)

	sa, sb := store.Sprite(a), store.Sprite(b)
	if sa.Y != -5 || sa.X != 0 {
		t.Errorf("upper body at (%v, %v), want (0, -5)", sa.X, sa.Y)
	}
	if sb.X != 5 || sb.Y != 5 {
		t.Errorf("lower body moved to (%v, %v)", sb.X, sb.Y)
	}
	if vy := store.Physics(a).VY; vy != -10 {
		t.Errorf("vy = %v, want -10", vy)
	}
}

func TestResolve_VerticalFallsBackToLower(t *testing.T) {
	store := entity.NewStore()
	upper := addBody(store, 0, 0, 10, 10, false)
	lower := addBody(store, 0, 6, 10, 10, true)

	NewResolver(store, 0.5, nil, nil, 0).Resolve(upper, lower)

	if y := store.Sprite(lower).Y; y != 10 {
		t.Errorf("lower y = %v, want 10", y)
	}
	if y := store.Sprite(upper).Y; y != 0 {
		t.Errorf("immovable upper moved to %v", y)
	}
}

func TestResolve_HorizontalSplit(t *testing.T) {
	tests := []struct {
		name         string
		grabRight    bool
		wantL, wantR float64
		wantLeftVX   float64
	}{
		{"both movable", false, -2, 8, -2.5},
		{"right held", true, -4, 6, -2.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := entity.NewStore()
			left := addBody(store, 0, 0, 10, 10, true)
			right := addBody(store, 6, 0, 10, 10, true)
			store.Physics(left).VX = 5
			if tc.grabRight {
				store.Grab(right).IsGrabbed = true
			}

			NewResolver(store, 0.5, nil, nil, 0).Resolve(right, left)

			if x := store.Sprite(left).X; x != tc.wantL {
				t.Errorf("left x = %v, want %v", x, tc.wantL)
			}
			if x := store.Sprite(right).X; x != tc.wantR {
				t.Errorf("right x = %v, want %v", x, tc.wantR)
			}
			if vx := store.Physics(left).VX; vx != tc.wantLeftVX {
				t.Errorf("left vx = %v, want %v", vx, tc.wantLeftVX)
			}
		})
	}
}

func TestResolve_PetObjectDispatch(t *testing.T) {
	store := entity.NewStore()
	obj := addBody(store, 0, 0, 10, 10, true, components.TagObject)
	pet := addBody(store, 5, 0, 10, 10, true, components.TagPet)

	rec := &contactRecorder{}
	NewResolver(store, 0.5, rec, nil, 0).Resolve(obj, pet)

	if rec.pet != pet || rec.obj != obj {
		t.Errorf("contact = (%d, %d), want (%d, %d)", rec.pet, rec.obj, pet, obj)
	}
	if x := store.Sprite(obj).X; x != 0 {
		t.Errorf("pet contact pushed the object to %v", x)
	}
}

func TestResolve_ParticleIgnoresPet(t *testing.T) {
	store := entity.NewStore()
	pet := addBody(store, 0, 0, 10, 10, true, components.TagPet)
	p := addBody(store, 5, 5, 4, 4, true, components.TagParticle)

	NewResolver(store, 0.5, nil, nil, 0).Resolve(p, pet)

	if sp := store.Sprite(p); sp.X != 5 || sp.Y != 5 {
		t.Errorf("particle moved to (%v, %v)", sp.X, sp.Y)
	}
	if sp := store.Sprite(pet); sp.X != 0 || sp.Y != 0 {
		t.Errorf("pet moved to (%v, %v)", sp.X, sp.Y)
	}
}

func TestResolve_ParticleBouncesOffObject(t *testing.T) {
	store := entity.NewStore()
	obj := addBody(store, 0, 10, 40, 10, false, components.TagObject)
	p := addBody(store, 10, 7, 4, 4, true, components.TagParticle)
	store.Physics(p).VY = 40

	NewResolver(store, 0.5, nil, nil, 0).Resolve(obj, p)

	if y := store.Sprite(p).Y; y != 6 {
		t.Errorf("particle y = %v, want 6", y)
	}
	if vy := store.Physics(p).VY; vy != -20 {
		t.Errorf("particle vy = %v, want -20", vy)
	}
	if y := store.Sprite(obj).Y; y != 10 {
		t.Errorf("object moved to %v", y)
	}
}

func TestResolve_BubbleMeetsWater(t *testing.T) {
	store := entity.NewStore()
	bubble := store.Add(entity.Spec{
		Tags:     []string{components.TagParticle, components.TagBubbles},
		Sprite:   components.Sprite{Width: 8, Height: 8},
		Collider: &components.Collider{Width: 8, Height: 8},
		Particle: &components.Particle{TimeToLife: 1000, MaxTimeToLife: 1000},
	})
	water := store.Add(entity.Spec{
		Tags:     []string{components.TagParticle, components.TagWater},
		Sprite:   components.Sprite{X: 2, Width: 5, Height: 5},
		Collider: &components.Collider{Width: 5, Height: 5},
		Particle: &components.Particle{TimeToLife: 1000, MaxTimeToLife: 1000},
	})

	stats := statRecorder{}
	NewResolver(store, 0.5, nil, stats, 5).Resolve(water, bubble)

	if ttl := store.Particle(bubble).TimeToLife; ttl != 0 {
		t.Errorf("bubble ttl = %v, want 0", ttl)
	}
	if ttl := store.Particle(water).TimeToLife; ttl != 1000 {
		t.Errorf("water ttl = %v, want untouched", ttl)
	}
	if math.Abs(stats["hygiene"]-5) > 1e-9 {
		t.Errorf("hygiene delta = %v, want 5", stats["hygiene"])
	}
}

// ---------- Particle motion ----------

func TestIntegrate_ExplosionParticlesMove(t *testing.T) {
	cfg := loadConfig(t)
	store, particles, _ := newObjects(t, cfg, nil)
	ps := NewPhysicsSystem(store, Bounds{Width: 480, Height: 320}, 300, NewResolver(store, 0.5, nil, nil, 0))

	ids := particles.EmitExplosion(200, 100, 4)
	type start struct{ vx, vy float64 }
	starts := make(map[entity.ID]start, len(ids))
	for _, id := range ids {
		ph := store.Physics(id)
		starts[id] = start{ph.VX, ph.VY}
	}

	const dtMs, ticks = 16.0, 20
	for range ticks {
		ps.Update(dtMs)
		particles.Update(dtMs)
	}

	dt := dtMs / 1000
	g := cfg.Particles.Explosion.Gravity
	for _, id := range ids {
		s := starts[id]
		sp, ph := store.Sprite(id), store.Physics(id)
		wantX := 200 + s.vx*dt*ticks
		// Velocity is updated before position, so step k moves by vy0+g*dt*k.
		wantY := 100 + s.vy*dt*ticks + g*dt*dt*ticks*(ticks+1)/2
		if math.Abs(sp.X-wantX) > 1e-6 || math.Abs(sp.Y-wantY) > 1e-6 {
			t.Errorf("particle %d at (%v, %v), want (%v, %v)", id, sp.X, sp.Y, wantX, wantY)
		}
		if want := s.vy + g*dt*ticks; math.Abs(ph.VY-want) > 1e-6 {
			t.Errorf("particle %d vy = %v, want %v", id, ph.VY, want)
		}
	}
}

func TestIntegrate_DropletsSlowDown(t *testing.T) {
	cfg := loadConfig(t)
	store, particles, _ := newObjects(t, cfg, nil)
	ps := NewPhysicsSystem(store, Bounds{Width: 480, Height: 320}, 300, NewResolver(store, 0.5, nil, nil, 0))

	id := particles.EmitDroplets(100, 100, 1)[0]
	store.Physics(id).VX = 100

	ps.Update(16)
	particles.Update(16)

	if x := store.Sprite(id).X; math.Abs(x-101.6) > 1e-9 {
		t.Errorf("x = %v, want 101.6", x)
	}
	if vx, want := store.Physics(id).VX, 100*math.Pow(0.95, 0.016*60); math.Abs(vx-want) > 1e-9 {
		t.Errorf("vx = %v, want %v", vx, want)
	}
}

func TestIntegrate_ParticleRestsOnFloor(t *testing.T) {
	cfg := loadConfig(t)
	store, particles, _ := newObjects(t, cfg, nil)
	ps := NewPhysicsSystem(store, Bounds{Width: 480, Height: 320}, 300, NewResolver(store, 0.5, nil, nil, 0))

	id := particles.EmitShowerWater(100, 290, 1)[0]
	store.Physics(id).VY = 500
	ps.Update(100)

	size := cfg.Particles.Water.Size
	if y := store.Sprite(id).Y; y != 300-size {
		t.Errorf("y = %v, want %v on the floor", y, 300-size)
	}
}

func TestParticles_WaterFallsOntoBubble(t *testing.T) {
	cfg := loadConfig(t)
	store, particles, _ := newObjects(t, cfg, nil)
	stats := statRecorder{}
	ps := NewPhysicsSystem(store, Bounds{Width: 480, Height: 320}, 300, NewResolver(store, 0.5, nil, stats, 5))

	target := store.Add(entity.Spec{
		Active: true,
		Sprite: components.Sprite{X: 100, Y: 200, Width: 64, Height: 64, Scale: 1},
	})
	bubble := particles.EmitBubble(target, 10, 10)
	water := particles.EmitShowerWater(111, 150, 1)[0]
	ph := store.Physics(water)
	ph.VX, ph.VY = 0, 0

	ticks := 0
	for store.Has(bubble) {
		ticks++
		if ticks > 60 {
			t.Fatalf("bubble still alive after %d ticks; water at y=%v", ticks, store.Sprite(water).Y)
		}
		ps.Update(16)
		particles.Update(16)
	}
	if store.Sprite(water).Y <= 150 {
		t.Error("water never fell")
	}
	if math.Abs(stats["hygiene"]-5) > 1e-9 {
		t.Errorf("hygiene delta = %v, want 5", stats["hygiene"])
	}
}
