// Package ui draws the HUD and the raygui settings panel.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	BarBg         rl.Color
	BarFillLow    rl.Color
	BarFillMedium rl.Color
	BarFillHigh   rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 250, G: 246, B: 238, A: 235},
		PanelBorder:    rl.Color{R: 120, G: 100, B: 80, A: 255},
		SectionHeader:  rl.Maroon,
		LabelColor:     rl.DarkGray,
		ValueColor:     rl.Black,
		BarBg:          rl.Color{R: 220, G: 214, B: 204, A: 255},
		BarFillLow:     rl.Color{R: 210, G: 90, B: 80, A: 255},
		BarFillMedium:  rl.Color{R: 220, G: 180, B: 80, A: 255},
		BarFillHigh:    rl.Color{R: 100, G: 180, B: 100, A: 255},
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     72,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// StatColor picks the bar color for a value in [0,100].
func (t Theme) StatColor(v float64) rl.Color {
	switch {
	case v < 30:
		return t.BarFillLow
	case v < 60:
		return t.BarFillMedium
	}
	return t.BarFillHigh
}
