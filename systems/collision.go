package systems

import (
	"math"

	"github.com/pthm-cable/petsim/components"
	"github.com/pthm-cable/petsim/entity"
)

// Bounds represents the canvas size.
type Bounds struct {
	Width, Height float64
}

// Clamp returns the position closest to (x, y) that keeps a w by h box
// inside the canvas. Boxes larger than the canvas pin to the origin.
func (b Bounds) Clamp(x, y, w, h float64) (float64, float64) {
	return math.Max(0, math.Min(x, b.Width-w)), math.Max(0, math.Min(y, b.Height-h))
}

// Rect is an axis-aligned box in canvas space.
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether the boxes intersect. Touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X &&
		r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Contains reports whether the point lies inside the box, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// ColliderBounds places the collider in canvas space using the sprite's
// position and scale.
func ColliderBounds(sp *components.Sprite, c *components.Collider) Rect {
	scale := sp.ScaleOr1()
	return Rect{
		X: sp.X + c.OffsetX*scale,
		Y: sp.Y + c.OffsetY*scale,
		W: c.Width * scale,
		H: c.Height * scale,
	}
}

// SpriteBounds returns the scaled sprite box.
func SpriteBounds(sp *components.Sprite) Rect {
	scale := sp.ScaleOr1()
	return Rect{X: sp.X, Y: sp.Y, W: sp.Width * scale, H: sp.Height * scale}
}

// EntityBounds returns the collider bounds of an entity.
func EntityBounds(store *entity.Store, id entity.ID) (Rect, bool) {
	sp := store.Sprite(id)
	c := store.Collider(id)
	if sp == nil || c == nil {
		return Rect{}, false
	}
	return ColliderBounds(sp, c), true
}

// AreColliding reports whether both entities carry colliders that overlap.
func AreColliding(store *entity.Store, a, b entity.ID) bool {
	ra, ok := EntityBounds(store, a)
	if !ok {
		return false
	}
	rb, ok := EntityBounds(store, b)
	if !ok {
		return false
	}
	return ra.Overlaps(rb)
}

// CheckCollision reports whether the box leaves the canvas. The right and
// bottom edges are exclusive: a box ending exactly at the edge is inside.
func CheckCollision(x, y, w, h float64, b Bounds) bool {
	return x < 0 || y < 0 || x+w > b.Width || y+h > b.Height
}
