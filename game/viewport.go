package game

import "math"

// Viewport maps the logical canvas onto a window, letterboxed and centered.
type Viewport struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// FitViewport scales a canvas to fit inside a screen while keeping its
// aspect ratio. Degenerate sizes yield the identity mapping.
func FitViewport(canvasW, canvasH, screenW, screenH float64) Viewport {
	if canvasW <= 0 || canvasH <= 0 || screenW <= 0 || screenH <= 0 {
		return Viewport{Scale: 1}
	}
	scale := math.Min(screenW/canvasW, screenH/canvasH)
	return Viewport{
		Scale:   scale,
		OffsetX: (screenW - canvasW*scale) / 2,
		OffsetY: (screenH - canvasH*scale) / 2,
	}
}

// ToCanvas converts a screen point to canvas coordinates.
func (v Viewport) ToCanvas(x, y float64) (float64, float64) {
	return (x - v.OffsetX) / v.Scale, (y - v.OffsetY) / v.Scale
}

// ToScreen converts a canvas point to screen coordinates.
func (v Viewport) ToScreen(x, y float64) (float64, float64) {
	return x*v.Scale + v.OffsetX, y*v.Scale + v.OffsetY
}
