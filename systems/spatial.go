package systems

import (
	"slices"

	"github.com/pthm-cable/petsim/entity"
)

// SpatialGrid is a uniform broad-phase grid over the canvas. Entities are
// inserted into every cell their box touches.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]entity.ID
}

// NewSpatialGrid creates a spatial grid covering the given canvas size.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 64
	}
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]entity.ID, cols*rows)
	for i := range cells {
		cells[i] = make([]entity.ID, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all entities from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity under every cell overlapped by r.
func (g *SpatialGrid) Insert(id entity.ID, r Rect) {
	c0, r0 := g.cellCoords(r.X, r.Y)
	c1, r1 := g.cellCoords(r.X+r.W, r.Y+r.H)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			idx := row*g.cols + col
			g.cells[idx] = append(g.cells[idx], id)
		}
	}
}

// QueryInto appends to dst the ids sharing a cell with r, without duplicates.
func (g *SpatialGrid) QueryInto(dst []entity.ID, r Rect) []entity.ID {
	c0, r0 := g.cellCoords(r.X, r.Y)
	c1, r1 := g.cellCoords(r.X+r.W, r.Y+r.H)
	start := len(dst)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			for _, id := range g.cells[row*g.cols+col] {
				if !slices.Contains(dst[start:], id) {
					dst = append(dst, id)
				}
			}
		}
	}
	return dst
}

// cellCoords returns the clamped cell column and row for a canvas position.
func (g *SpatialGrid) cellCoords(x, y float64) (int, int) {
	col := int(x / g.cellSize)
	row := int(y / g.cellSize)

	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
