package systems

import (
	"testing"

	"github.com/pthm-cable/petsim/components"
	"github.com/pthm-cable/petsim/entity"
)

func TestCheckCollision(t *testing.T) {
	b := Bounds{Width: 100, Height: 100}
	tests := []struct {
		name       string
		x, y, w, h float64
		want       bool
	}{
		{"fills canvas exactly", 0, 0, 100, 100, false},
		{"small box inside", 10, 10, 10, 10, false},
		{"flush with bottom right", 90, 90, 10, 10, false},
		{"past right edge", 1, 0, 100, 100, true},
		{"past bottom edge", 90, 91, 10, 10, true},
		{"negative x", -1, 0, 10, 10, true},
		{"negative y", 0, -0.5, 10, 10, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CheckCollision(tc.x, tc.y, tc.w, tc.h, b); got != tc.want {
				t.Errorf("CheckCollision = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRect_Overlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlapping", Rect{X: 5, Y: 5, W: 10, H: 10}, true},
		{"contained", Rect{X: 2, Y: 2, W: 2, H: 2}, true},
		{"touching right edge", Rect{X: 10, Y: 0, W: 10, H: 10}, false},
		{"touching bottom edge", Rect{X: 0, Y: 10, W: 10, H: 10}, false},
		{"apart", Rect{X: 30, Y: 30, W: 5, H: 5}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.Overlaps(tc.b); got != tc.want {
				t.Errorf("Overlaps = %v, want %v", got, tc.want)
			}
			if got := tc.b.Overlaps(a); got != tc.want {
				t.Errorf("Overlaps is not symmetric")
			}
		})
	}
}

func TestRect_ContainsEdges(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 10, H: 10}
	for _, p := range [][2]float64{{10, 10}, {20, 20}, {15, 15}} {
		if !r.Contains(p[0], p[1]) {
			t.Errorf("Contains(%v, %v) = false", p[0], p[1])
		}
	}
	if r.Contains(20.5, 15) {
		t.Error("point outside reported as inside")
	}
}

func TestBounds_Clamp(t *testing.T) {
	b := Bounds{Width: 100, Height: 80}
	tests := []struct {
		name         string
		x, y, w, h   float64
		wantX, wantY float64
	}{
		{"inside", 10, 10, 20, 20, 10, 10},
		{"negative", -5, -7, 20, 20, 0, 0},
		{"past right and bottom", 95, 70, 20, 20, 80, 60},
		{"exactly at edge", 80, 60, 20, 20, 80, 60},
		{"wider than canvas", 30, 10, 150, 20, 0, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := b.Clamp(tc.x, tc.y, tc.w, tc.h)
			if x != tc.wantX || y != tc.wantY {
				t.Errorf("Clamp = (%v, %v), want (%v, %v)", x, y, tc.wantX, tc.wantY)
			}
			if tc.w <= b.Width && CheckCollision(x, y, tc.w, tc.h, b) {
				t.Errorf("clamped box (%v, %v) still leaves the canvas", x, y)
			}
		})
	}
}

func TestColliderBounds_Scale(t *testing.T) {
	sp := &components.Sprite{X: 10, Y: 20, Scale: 2}
	c := &components.Collider{OffsetX: 4, OffsetY: 2, Width: 8, Height: 6}
	got := ColliderBounds(sp, c)
	want := Rect{X: 18, Y: 24, W: 16, H: 12}
	if got != want {
		t.Errorf("ColliderBounds = %+v, want %+v", got, want)
	}

	sp.Scale = 0
	got = ColliderBounds(sp, c)
	want = Rect{X: 14, Y: 22, W: 8, H: 6}
	if got != want {
		t.Errorf("zero scale bounds = %+v, want %+v", got, want)
	}
}

func TestAreColliding_RequiresColliders(t *testing.T) {
	store := entity.NewStore()
	a := store.Add(entity.Spec{
		Sprite:   components.Sprite{Width: 10, Height: 10},
		Collider: &components.Collider{Width: 10, Height: 10},
	})
	b := store.Add(entity.Spec{
		Sprite:   components.Sprite{X: 5, Width: 10, Height: 10},
		Collider: &components.Collider{Width: 10, Height: 10},
	})
	bare := store.Add(entity.Spec{Sprite: components.Sprite{Width: 10, Height: 10}})

	if !AreColliding(store, a, b) {
		t.Error("overlapping colliders not detected")
	}
	if AreColliding(store, a, bare) {
		t.Error("entity without collider reported colliding")
	}
	if AreColliding(store, a, 999) {
		t.Error("unknown entity reported colliding")
	}
}

func TestSpatialGrid_Query(t *testing.T) {
	g := NewSpatialGrid(200, 200, 50)
	g.Insert(1, Rect{X: 10, Y: 10, W: 60, H: 60})
	g.Insert(2, Rect{X: 160, Y: 160, W: 10, H: 10})

	got := g.QueryInto(nil, Rect{X: 0, Y: 0, W: 100, H: 100})
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("query = %v, want [1] without duplicates", got)
	}

	got = g.QueryInto(got[:0], Rect{X: 150, Y: 150, W: 100, H: 100})
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("query clamped to edge = %v, want [2]", got)
	}

	g.Clear()
	if got := g.QueryInto(nil, Rect{X: 0, Y: 0, W: 200, H: 200}); len(got) != 0 {
		t.Errorf("cleared grid returned %v", got)
	}
}
