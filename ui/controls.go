package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/petsim/config"
	"github.com/pthm-cable/petsim/entity"
	"github.com/pthm-cable/petsim/pet"
)

// Controls is what the settings panel drives.
type Controls interface {
	Cheats() pet.Cheats
	SetGodMode(on bool)
	SetNoMoreMove(on bool)
	Volumes() (music, sfx float64)
	SetVolumes(music, sfx float64)
	Room() config.RoomConfig
	ChangeRoom(delta int)
	RoomAction()
	FoodNames() []string
	SpawnFood(name string) (entity.ID, bool)
}

// ControlsPanel is the raygui settings panel: cheats, volumes, room
// navigation and the food inventory.
type ControlsPanel struct {
	renderer  *Renderer
	x, y      int32
	width     int32
	visible   bool
	inventory bool
}

// NewControlsPanel creates a panel anchored at x, y.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{renderer: NewRenderer(), x: x, y: y, width: width, visible: true}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point falls on the visible panel, so
// the driver can keep clicks on widgets away from the canvas.
func (c *ControlsPanel) Contains(x, y float32) bool {
	if !c.visible {
		return false
	}
	return rl.CheckCollisionPointRec(rl.Vector2{X: x, Y: y}, c.bounds())
}

func (c *ControlsPanel) height(foods int) int32 {
	rows := int32(7)
	if c.inventory {
		rows += int32(foods)
	}
	return c.renderer.Theme.Padding*2 + rows*28
}

func (c *ControlsPanel) bounds() rl.Rectangle {
	return rl.Rectangle{X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: float32(c.height(8))}
}

// Draw renders the panel and applies any widget changes.
func (c *ControlsPanel) Draw(ctl Controls) {
	if !c.visible {
		return
	}
	r := c.renderer
	pad := float32(r.Theme.Padding)
	foods := ctl.FoodNames()
	r.DrawPanel(c.x, c.y, c.width, c.height(len(foods)))

	x := float32(c.x) + pad
	y := float32(c.y) + pad
	w := float32(c.width) - pad*2
	row := func(h float32) rl.Rectangle {
		rect := rl.Rectangle{X: x, Y: y, Width: w, Height: h}
		y += 28
		return rect
	}

	cheats := ctl.Cheats()
	if god := gui.CheckBox(checkRect(row(16)), "God mode", cheats.GodMode); god != cheats.GodMode {
		ctl.SetGodMode(god)
	}
	if still := gui.CheckBox(checkRect(row(16)), "No more move", cheats.NoMoreMove); still != cheats.NoMoreMove {
		ctl.SetNoMoreMove(still)
	}

	music, sfx := ctl.Volumes()
	newMusic := gui.SliderBar(sliderRect(row(16)), "Music", "", float32(music), 0, 1)
	newSfx := gui.SliderBar(sliderRect(row(16)), "SFX", "", float32(sfx), 0, 1)
	if float64(newMusic) != music || float64(newSfx) != sfx {
		ctl.SetVolumes(float64(newMusic), float64(newSfx))
	}

	nav := row(24)
	half := (nav.Width - 8) / 2
	if gui.Button(rl.Rectangle{X: nav.X, Y: nav.Y, Width: half, Height: nav.Height}, "< Room") {
		ctl.ChangeRoom(-1)
	}
	if gui.Button(rl.Rectangle{X: nav.X + half + 8, Y: nav.Y, Width: half, Height: nav.Height}, "Room >") {
		ctl.ChangeRoom(1)
	}

	room := ctl.Room()
	if room.Button != "" && gui.Button(row(24), room.Button) {
		if room.Button == config.ButtonOpenInventory {
			c.inventory = !c.inventory
		} else {
			ctl.RoomAction()
		}
	}

	if gui.Button(row(24), "Inventory") {
		c.inventory = !c.inventory
	}
	if !c.inventory {
		return
	}
	for _, name := range foods {
		if gui.Button(row(24), name) {
			ctl.SpawnFood(name)
		}
	}
}

// checkRect is the square box; raygui draws the text to its right.
func checkRect(r rl.Rectangle) rl.Rectangle {
	return rl.Rectangle{X: r.X, Y: r.Y, Width: r.Height, Height: r.Height}
}

// sliderRect leaves room for the left label drawn by raygui.
func sliderRect(r rl.Rectangle) rl.Rectangle {
	const label = 40
	return rl.Rectangle{X: r.X + label, Y: r.Y, Width: r.Width - label, Height: r.Height}
}
