package game

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/petsim/config"
	"github.com/pthm-cable/petsim/pet"
)

func newTestGame(t *testing.T, opts Options) *Game {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	g, err := New(cfg, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func hunger(t *testing.T, g *Game) float64 {
	t.Helper()
	v, ok := g.Pet().StatValue(pet.StatHunger)
	if !ok {
		t.Fatal("hunger stat missing")
	}
	return v
}

// ---------- Lifecycle ----------

func TestNew_StartsInFirstRoom(t *testing.T) {
	g := newTestGame(t, Options{})

	if g.RoomIndex() != 0 || g.Room().Name != "Kitchen" {
		t.Errorf("room = %d %q, want 0 Kitchen", g.RoomIndex(), g.Room().Name)
	}
	if n := len(g.Objects()); n != 1 {
		t.Errorf("objects = %d, want the kitchen table only", n)
	}
	if g.Store().Len() != 2 {
		t.Errorf("entities = %d, want pet and table", g.Store().Len())
	}
	if g.Tick() != 0 || g.Pet().State != pet.Idle {
		t.Errorf("tick %d state %v", g.Tick(), g.Pet().State)
	}
	if g.Session() == "" {
		t.Error("no session id")
	}
}

func TestUpdate_AdvancesAndDecays(t *testing.T) {
	g := newTestGame(t, Options{})

	for range 60 {
		g.Update(DefaultDtMs)
	}
	if g.Tick() != 60 {
		t.Fatalf("tick = %d, want 60", g.Tick())
	}
	want := 80 - g.Config().Pet.Stats[0].Decay
	if got := hunger(t, g); math.Abs(got-want) > 1e-6 {
		t.Errorf("hunger = %v after 1s, want %v", got, want)
	}
}

func TestUpdate_SkippedWhenPausedOrReentrant(t *testing.T) {
	g := newTestGame(t, Options{})

	g.SetPaused(true)
	g.Update(DefaultDtMs)
	if g.Tick() != 0 {
		t.Error("paused game advanced")
	}
	g.SetPaused(false)

	g.Update(0)
	g.Update(-5)
	if g.Tick() != 0 {
		t.Error("non-positive step advanced the game")
	}

	g.updating = true
	g.Update(DefaultDtMs)
	g.updating = false
	if g.Tick() != 0 {
		t.Error("nested update ran")
	}

	g.Update(DefaultDtMs)
	if g.Tick() != 1 {
		t.Errorf("tick = %d, want 1", g.Tick())
	}
}

func TestGodMode(t *testing.T) {
	g := newTestGame(t, Options{})
	g.SetGodMode(true)
	g.Update(DefaultDtMs)
	for _, s := range g.Pet().Stats {
		if s.Porcent != 100 {
			t.Errorf("%s = %v under god mode", s.Name, s.Porcent)
		}
	}
	if !g.Cheats().GodMode {
		t.Error("cheat not reported")
	}
}

// ---------- Rooms ----------

func TestChangeRoom_Wraps(t *testing.T) {
	g := newTestGame(t, Options{})
	n := len(g.Config().Rooms)

	g.ChangeRoom(-1)
	if g.RoomIndex() != n-1 {
		t.Fatalf("room = %d, want %d", g.RoomIndex(), n-1)
	}
	if g.Room().Name != "Garden" || len(g.Objects()) != 2 {
		t.Errorf("room %q with %d objects, want Garden with 2", g.Room().Name, len(g.Objects()))
	}

	g.ChangeRoom(1)
	if g.RoomIndex() != 0 {
		t.Errorf("room = %d, want 0", g.RoomIndex())
	}
}

func TestChangeRoom_ClearsAndPersistsFixtures(t *testing.T) {
	g := newTestGame(t, Options{})

	if _, ok := g.SpawnFood("Apple"); !ok {
		t.Fatal("SpawnFood failed")
	}
	table := g.Objects()[0]
	g.Store().Sprite(table).X = 100

	g.ChangeRoom(1)
	for _, id := range g.Objects() {
		if o := g.Store().Object(id); o.Name == "Apple" {
			t.Error("food followed the pet into the next room")
		}
	}
	if !g.Store().Has(g.Pet().ID) {
		t.Fatal("pet removed on room change")
	}

	g.ChangeRoom(-1)
	objs := g.Objects()
	if len(objs) != 1 {
		t.Fatalf("kitchen objects = %d, want 1", len(objs))
	}
	if x := g.Store().Sprite(objs[0]).X; x != 100 {
		t.Errorf("table x = %v, want 100 where it was left", x)
	}
	if x := g.Config().Rooms[0].Objects[0].X; x != 320 {
		t.Errorf("config placement mutated to %v", x)
	}
	if x := g.Rooms()[0].Objects[0].X; x != 100 {
		t.Errorf("room list placement = %v, want 100", x)
	}
}

func TestRoomAction(t *testing.T) {
	tests := []struct {
		room     int
		wantObj  string
		wantPet  pet.State
		wantType string
	}{
		{room: 0, wantType: config.ObjectFood, wantPet: pet.Idle},
		{room: 1, wantPet: pet.Sleeping},
		{room: 2, wantObj: "Soap", wantPet: pet.Idle},
		{room: 3, wantObj: "Shower", wantPet: pet.Idle},
	}

	for _, tc := range tests {
		t.Run(tc.wantPet.String()+"_"+tc.wantObj, func(t *testing.T) {
			g := newTestGame(t, Options{})
			g.ChangeRoom(tc.room)
			before := len(g.Objects())

			g.RoomAction()

			if g.Pet().State != tc.wantPet {
				t.Errorf("pet state = %v, want %v", g.Pet().State, tc.wantPet)
			}
			objs := g.Objects()
			if tc.wantObj == "" && tc.wantType == "" {
				if len(objs) != before {
					t.Errorf("objects %d -> %d, want unchanged", before, len(objs))
				}
				return
			}
			if len(objs) != before+1 {
				t.Fatalf("objects %d -> %d, want one spawned", before, len(objs))
			}
			o := g.Store().Object(objs[len(objs)-1])
			if tc.wantObj != "" && o.Name != tc.wantObj {
				t.Errorf("spawned %q, want %q", o.Name, tc.wantObj)
			}
			if tc.wantType != "" && o.Type.String() != tc.wantType {
				t.Errorf("spawned type %v, want %v", o.Type, tc.wantType)
			}
		})
	}
}

func TestSpawnFood(t *testing.T) {
	g := newTestGame(t, Options{})

	if _, ok := g.SpawnFood("Anvil"); ok {
		t.Error("unknown template spawned")
	}
	if _, ok := g.SpawnFood("Mesa"); ok {
		t.Error("non-food template spawned as food")
	}
	id, ok := g.SpawnFood("Fish")
	if !ok || !g.Store().Has(id) {
		t.Fatal("Fish not spawned")
	}
	if names := g.FoodNames(); len(names) != 3 {
		t.Errorf("food names = %v", names)
	}
	if _, ok := g.SpawnObject("Plant"); !ok {
		t.Error("SpawnObject failed for a known template")
	}
}

// ---------- Interaction through the pipeline ----------

func TestUpdate_PetEatsTouchedFood(t *testing.T) {
	g := newTestGame(t, Options{})
	id, _ := g.SpawnFood("Apple")
	sp := g.Store().Sprite(id)
	sp.X, sp.Y = 220, 240

	g.Update(DefaultDtMs)

	if g.Store().Has(id) {
		t.Error("food not consumed")
	}
	if g.Pet().State != pet.Eating {
		t.Errorf("state = %v, want Eating", g.Pet().State)
	}
	if h := hunger(t, g); h < 89 {
		t.Errorf("hunger = %v, want about 90", h)
	}
}

func TestPointer_TapMakesPetReact(t *testing.T) {
	g := newTestGame(t, Options{})
	g.PressDown(210, 230)
	g.PressUp(210, 230)
	if g.Pet().State != pet.Reacting {
		t.Fatalf("state = %v, want Reacting", g.Pet().State)
	}

	g.Update(DefaultDtMs)
	if g.Particles() != g.Config().Pet.ReactParticles {
		t.Errorf("particles = %d, want %d", g.Particles(), g.Config().Pet.ReactParticles)
	}

	g.SetParticlesEnabled(false)
	g.ChangeRoom(1)
	if g.Particles() != 0 {
		t.Errorf("particles = %d after room change", g.Particles())
	}
}

func TestPointer_LongPressGrabsObject(t *testing.T) {
	g := newTestGame(t, Options{})
	table := g.Objects()[0]

	g.PressDown(330, 300)
	for range 30 {
		g.Update(DefaultDtMs)
	}
	if !g.Store().IsGrabbed(table) {
		t.Fatal("table not grabbed after a long press")
	}

	g.PointerMove(100, 100)
	if x := g.Store().Sprite(table).X; x != 90 {
		t.Errorf("table x = %v, want 90", x)
	}
	g.PressUp(100, 100)
	if g.Store().IsGrabbed(table) {
		t.Error("table still held after release")
	}
}

// ---------- Telemetry ----------

func TestTelemetry_WritesOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Telemetry.StatsWindow = 1

	g, err := New(cfg, Options{Seed: 3, DtMs: 100, OutputDir: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for range 25 {
		g.Update(100)
	}
	g.Unload()

	data, err := os.ReadFile(filepath.Join(dir, "stats.csv"))
	if err != nil {
		t.Fatalf("reading stats.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// Two full windows plus the partial one flushed on unload.
	if len(lines) != 4 {
		t.Errorf("stats.csv has %d lines, want header and 3 rows:\n%s", len(lines), data)
	}
	if !strings.Contains(lines[1], g.Session()) {
		t.Errorf("row does not carry the session id: %s", lines[1])
	}

	for _, name := range []string{"perf.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
}

// ---------- Viewport ----------

func TestFitViewport(t *testing.T) {
	tests := []struct {
		name                    string
		sw, sh                  float64
		wantScale, wantX, wantY float64
	}{
		{"exact double", 960, 640, 2, 0, 0},
		{"pillarbox", 1280, 640, 2, 160, 0},
		{"letterbox", 480, 480, 1, 0, 80},
		{"degenerate", 0, 100, 1, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			vp := FitViewport(480, 320, tc.sw, tc.sh)
			if vp.Scale != tc.wantScale || vp.OffsetX != tc.wantX || vp.OffsetY != tc.wantY {
				t.Errorf("viewport = %+v, want scale %v offset (%v, %v)", vp, tc.wantScale, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestViewport_RoundTrip(t *testing.T) {
	vp := FitViewport(480, 320, 1000, 700)
	sx, sy := vp.ToScreen(123, 45)
	cx, cy := vp.ToCanvas(sx, sy)
	if math.Abs(cx-123) > 1e-9 || math.Abs(cy-45) > 1e-9 {
		t.Errorf("round trip = (%v, %v), want (123, 45)", cx, cy)
	}
}
