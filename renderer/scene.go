// Package renderer draws the simulation with raylib. It only reads state.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/petsim/components"
	"github.com/pthm-cable/petsim/entity"
	"github.com/pthm-cable/petsim/game"
	"github.com/pthm-cable/petsim/systems"
)

// Scene is the read-only view the renderer draws from.
type Scene interface {
	Store() *entity.Store
	Messages() []systems.Message
	Bounds() systems.Bounds
}

// SceneRenderer draws entities and speech bubbles onto the canvas area.
type SceneRenderer struct {
	Background rl.Color
	Floor      rl.Color
	floorY     float64
	showFrames bool
}

// NewSceneRenderer creates a renderer drawing the floor line at floorY.
func NewSceneRenderer(floorY float64) *SceneRenderer {
	return &SceneRenderer{
		Background: rl.Color{R: 236, G: 228, B: 214, A: 255},
		Floor:      rl.Color{R: 150, G: 120, B: 90, A: 255},
		floorY:     floorY,
		showFrames: true,
	}
}

// ToggleFrameLabels shows or hides the animation frame names.
func (r *SceneRenderer) ToggleFrameLabels() { r.showFrames = !r.showFrames }

// Draw renders the scene through the viewport, in store order so later
// entities sit on top.
func (r *SceneRenderer) Draw(s Scene, vp game.Viewport) {
	b := s.Bounds()
	x0, y0 := vp.ToScreen(0, 0)
	rl.DrawRectangle(int32(x0), int32(y0), int32(b.Width*vp.Scale), int32(b.Height*vp.Scale), r.Background)
	fx, fy := vp.ToScreen(0, r.floorY)
	rl.DrawLine(int32(fx), int32(fy), int32(fx+b.Width*vp.Scale), int32(fy), r.Floor)

	store := s.Store()
	for _, id := range store.All() {
		ident := store.Identity(id)
		sp := store.Sprite(id)
		if ident == nil || sp == nil || !ident.Active {
			continue
		}
		r.drawSprite(sp, ident, vp)
	}

	for _, m := range s.Messages() {
		r.drawMessage(m, vp)
	}
}

func (r *SceneRenderer) drawSprite(sp *components.Sprite, ident *components.Identity, vp game.Viewport) {
	box := systems.SpriteBounds(sp)
	x, y := vp.ToScreen(box.X, box.Y)
	rect := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(box.W * vp.Scale), Height: float32(box.H * vp.Scale)}

	c := rl.Gray
	if sp.HasColor {
		c = rl.Color{R: sp.Color.R, G: sp.Color.G, B: sp.Color.B, A: sp.Color.A}
	}
	c = rl.Fade(c, float32(sp.Alpha/100))

	if ident.HasTag(components.TagParticle) {
		rl.DrawRectangleRec(rect, c)
		return
	}
	rl.DrawRectangleRounded(rect, 0.2, 6, c)
	rl.DrawRectangleLinesEx(rect, 1, rl.Fade(rl.DarkGray, float32(sp.Alpha/100)))

	if r.showFrames {
		rl.DrawText(systems.Frame(sp), int32(rect.X)+2, int32(rect.Y)+2, 10, rl.Black)
	}
}

func (r *SceneRenderer) drawMessage(m systems.Message, vp game.Viewport) {
	const fontSize = 14
	x, y := vp.ToScreen(m.X, m.Y)
	w := rl.MeasureText(m.Text, fontSize)
	alpha := float32(m.Alpha / 100)

	bx := int32(x) - w/2 - 6
	by := int32(y) - fontSize - 10
	rl.DrawRectangle(bx, by, w+12, fontSize+8, rl.Fade(rl.White, alpha))
	rl.DrawRectangleLines(bx, by, w+12, fontSize+8, rl.Fade(rl.DarkGray, alpha))
	rl.DrawText(m.Text, bx+6, by+4, fontSize, rl.Fade(rl.Black, alpha))
}
