package game

// PressDown starts a pointer press at canvas coordinates. The pet takes
// priority over objects under the pointer.
func (g *Game) PressDown(x, y float64) {
	if g.input.PressDown(x, y) {
		return
	}
	g.grab.PressDown(x, y)
}

// PressUp ends a pointer press. A short press on the pet is a tap; a long
// one releases whatever was grabbed.
func (g *Game) PressUp(x, y float64) {
	g.input.PressUp(x, y)
	g.grab.PressUp()
}

// PointerMove drags a grabbed pet or object.
func (g *Game) PointerMove(x, y float64) {
	g.input.Move(x, y)
	g.grab.Move(x, y)
}

// ToggleSleep puts the pet to sleep or wakes it.
func (g *Game) ToggleSleep() {
	g.input.ToggleSleep()
}
