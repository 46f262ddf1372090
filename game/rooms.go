package game

import (
	"log/slog"
	"slices"

	"github.com/pthm-cable/petsim/config"
	"github.com/pthm-cable/petsim/entity"
	"github.com/pthm-cable/petsim/systems"
)

// Room returns the current room, or a zero room when none are configured.
func (g *Game) Room() config.RoomConfig {
	if len(g.rooms) == 0 {
		return config.RoomConfig{}
	}
	return g.rooms[g.room]
}

// RoomIndex returns the index of the current room.
func (g *Game) RoomIndex() int { return g.room }

// Rooms returns the room list with fixture positions as last left.
func (g *Game) Rooms() []config.RoomConfig { return cloneRooms(g.rooms) }

// ChangeRoom moves delta rooms along the list, wrapping at either end.
// Fixture positions are saved, every object, message and particle of the
// old room is removed and the new room's fixtures are spawned.
func (g *Game) ChangeRoom(delta int) {
	n := len(g.rooms)
	if n == 0 {
		return
	}
	g.persistFixtures()
	g.objects.DeleteAll()
	g.messages.Clear()
	g.particles.Clear()
	g.grab.Reset()
	clear(g.fixtures)

	g.room = ((g.room+delta)%n + n) % n
	g.audio.PlayEffect("click")
	g.enterRoom()
	slog.Info("room changed", "room", g.Room().Name, "index", g.room)
}

// enterRoom spawns the current room's fixtures and starts its music.
func (g *Game) enterRoom() {
	room := g.Room()
	for i, pl := range room.Objects {
		t, ok := g.cfg.Object(pl.Name)
		if !ok {
			slog.Debug("unknown object template", "name", pl.Name, "room", room.Name)
			continue
		}
		g.fixtures[g.objects.SpawnAt(t, pl.X, pl.Y)] = i
	}
	if room.Music != "" {
		g.audio.PlayMusic(room.Music)
	} else {
		g.audio.StopMusic()
	}
}

// persistFixtures writes the positions of live fixtures back into the
// current room so they reappear where they were left.
func (g *Game) persistFixtures() {
	if len(g.rooms) == 0 {
		return
	}
	placements := g.rooms[g.room].Objects
	for id, i := range g.fixtures {
		sp := g.store.Sprite(id)
		if sp == nil || i >= len(placements) {
			continue
		}
		placements[i].X = sp.X
		placements[i].Y = sp.Y
	}
}

// RoomAction runs the current room's button.
func (g *Game) RoomAction() {
	button := g.Room().Button
	g.audio.PlayEffect("click")

	switch button {
	case config.ButtonOpenInventory:
		foods := g.FoodNames()
		if len(foods) == 0 {
			return
		}
		g.SpawnFood(foods[g.rng.Intn(len(foods))])
	case config.ButtonSleep:
		g.input.ToggleSleep()
	case config.ButtonBrushTeeth:
		g.spawnWithBehavior(systems.BehaviorSoap)
	case config.ButtonWaterPlants:
		g.spawnWithBehavior(systems.BehaviorDropWater)
	default:
		slog.Debug("room has no action", "room", g.Room().Name, "button", button)
	}
}

// FoodNames lists the food templates in config order.
func (g *Game) FoodNames() []string {
	return g.cfg.ObjectsOfType(config.ObjectFood)
}

// SpawnFood places a food template at its serving spot.
func (g *Game) SpawnFood(name string) (entity.ID, bool) {
	t, ok := g.cfg.Object(name)
	if !ok || t.Type != config.ObjectFood {
		slog.Debug("unknown food template", "name", name)
		return 0, false
	}
	return g.spawn(t), true
}

// SpawnObject places any template by name.
func (g *Game) SpawnObject(name string) (entity.ID, bool) {
	t, ok := g.cfg.Object(name)
	if !ok {
		slog.Debug("unknown object template", "name", name)
		return 0, false
	}
	return g.spawn(t), true
}

func (g *Game) spawnWithBehavior(behavior string) {
	for _, t := range g.cfg.Objects {
		if slices.Contains(t.Behaviors, behavior) {
			g.spawn(t)
			return
		}
	}
	slog.Debug("no object template with behavior", "behavior", behavior)
}

func (g *Game) spawn(t config.ObjectConfig) entity.ID {
	g.collector.RecordSpawn()
	return g.objects.Spawn(t)
}
