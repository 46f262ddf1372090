package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/petsim/telemetry"
)

// StatView is one stat row of the HUD.
type StatView struct {
	Name  string
	Value float64
}

// HUDData holds everything the HUD shows.
type HUDData struct {
	PetName    string
	State      string
	Conditions string
	Stats      []StatView
	Room       string
	Tick       int64
	FPS        int32
	Paused     bool
}

// HUD renders the pet status panel.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a HUD anchored at x, y.
func NewHUD(x, y, width int32) *HUD {
	return &HUD{renderer: NewRenderer(), x: x, y: y, width: width}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	pad := r.Theme.Padding
	height := pad*2 + r.Theme.LineHeight*int32(4+len(data.Stats))
	r.DrawPanel(h.x, h.y, h.width, height)

	x, y := h.x+pad, h.y+pad
	y = r.DrawSectionHeader(x, y, data.PetName)
	y = r.DrawLabelValue(x, y, "State", data.State)
	y = r.DrawLabelValue(x, y, "Mood", data.Conditions)
	for _, s := range data.Stats {
		y = r.DrawStatBar(x, y, s.Name, s.Value, h.width-pad*2)
	}

	status := fmt.Sprintf("%s | tick %d | %d fps", data.Room, data.Tick, data.FPS)
	if data.Paused {
		status += " | PAUSED"
	}
	rl.DrawText(status, x, y, r.Theme.FontSize, r.Theme.LabelColor)
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-22, 12, rl.Gray)
}

// PerfPanel renders per-phase pipeline timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a perf panel anchored at x, y.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// Draw renders the phases in pipeline order.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	height := r.Theme.Padding*2 + int32(len(telemetry.Phases)+1)*14
	r.DrawPanel(p.x, p.y, 220, height)

	x, y := p.x+r.Theme.Padding, p.y+r.Theme.Padding
	rl.DrawText(fmt.Sprintf("tick %dus", stats.AvgTickDuration.Microseconds()), x, y, 12, r.Theme.SectionHeader)
	y += 14
	for _, phase := range telemetry.Phases {
		pct := stats.PhasePct[phase]
		color := r.Theme.LabelColor
		if pct > 30 {
			color = rl.Red
		}
		rl.DrawText(fmt.Sprintf("%-11s %5.1f%%", phase, pct), x, y, 12, color)
		y += 14
	}
}
