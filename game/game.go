// Package game owns one pet simulation: the entity store, the pet and every
// system, run in a fixed order once per frame.
package game

import (
	"log/slog"
	"math/rand"
	"slices"
	"time"

	"github.com/pthm-cable/petsim/audio"
	"github.com/pthm-cable/petsim/config"
	"github.com/pthm-cable/petsim/entity"
	"github.com/pthm-cable/petsim/pet"
	"github.com/pthm-cable/petsim/systems"
	"github.com/pthm-cable/petsim/telemetry"
)

// DefaultDtMs is the fixed step used when none is given.
const DefaultDtMs = 1000.0 / 60.0

// Options configures a game instance.
type Options struct {
	Seed      int64   // 0 = time-based
	DtMs      float64 // nominal step, used for telemetry windows
	OutputDir string  // CSV and config snapshot; empty disables output
	LogStats  bool    // log each telemetry window
	Audio     bool    // open the speaker
}

// Game holds the complete simulation state.
type Game struct {
	cfg    *config.Config
	rng    *rand.Rand
	store  *entity.Store
	bounds systems.Bounds

	pet         *pet.Pet
	petSvc      *pet.Service
	planner     *pet.Planner
	machine     *pet.Machine
	conditions  *pet.ConditionEngine
	input       *pet.Input
	interaction *pet.Interaction

	physics   *systems.PhysicsSystem
	animation *systems.AnimationSystem
	particles *systems.ParticleSystem
	objects   *systems.ObjectService
	messages  *systems.MessageService
	grab      *systems.GrabSystem

	audio *audio.Player

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	logStats  bool

	rooms    []config.RoomConfig
	room     int
	fixtures map[entity.ID]int // live fixture -> placement index in the current room

	tick      int64
	paused    bool
	updating  bool
	lastState pet.State
}

// New builds a game from cfg. It only fails when the output directory
// cannot be created.
func New(cfg *config.Config, opts Options) (*Game, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	dtMs := opts.DtMs
	if dtMs <= 0 {
		dtMs = DefaultDtMs
	}

	g := &Game{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(seed)),
		store:    entity.NewStore(),
		bounds:   systems.Bounds{Width: cfg.Canvas.Width, Height: cfg.Canvas.Height},
		audio:    audio.NewPlayer(cfg.Audio),
		perf:     telemetry.NewPerfCollector(60),
		logStats: opts.LogStats,
		rooms:    cloneRooms(cfg.Rooms),
		fixtures: make(map[entity.ID]int),
	}
	g.collector = telemetry.NewCollector(cfg.Telemetry.StatsWindow, dtMs/1000)

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.output = output
	if err := g.output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	if opts.Audio && cfg.Audio.Enabled {
		if err := g.audio.Initialize(); err != nil {
			slog.Warn("audio disabled", "error", err)
		}
	}

	g.wire()
	g.enterRoom()

	slog.Info("session started",
		"session", g.collector.Session(),
		"seed", seed,
		"pet", g.pet.Name,
		"rooms", len(g.rooms),
	)
	return g, nil
}

// wire creates the pet and the systems and connects them.
func (g *Game) wire() {
	cfg := g.cfg

	g.particles = systems.NewParticleSystem(g.store, cfg.Particles, g.rng)
	g.objects = systems.NewObjectService(g.store, g.particles, nil, g.rng, cfg)
	g.messages = systems.NewMessageService(g.store, cfg.Messages)

	g.pet = pet.Spawn(g.store, cfg.Pet, systems.BuildClips(cfg.Animations))
	g.petSvc = pet.NewService(g.pet, g.store, g.bounds, g.particles, g.messages, g.audio, cfg.Pet.ReactParticles)
	g.objects.SetPet(g.petSvc)

	g.planner = pet.NewPlanner(g.petSvc, cfg.AI, g.rng)
	behaviors := pet.NewBehaviors(g.petSvc, g.planner, cfg.Pet)
	g.machine = pet.NewMachine(g.petSvc, behaviors.Hooks())
	g.conditions = pet.NewConditionEngine(g.petSvc, cfg.Conditions, g.rng)
	g.input = pet.NewInput(g.petSvc, cfg.Pet.LongPressMs)
	g.interaction = pet.NewInteraction(g.petSvc, g.store, g.objects, cfg.Pet.EatHunger)

	resolver := systems.NewResolver(g.store, cfg.Physics.Restitution, g.interaction, g.petSvc, cfg.Pet.BubbleHygiene)
	g.physics = systems.NewPhysicsSystem(g.store, g.bounds, cfg.Derived.FloorY, resolver)
	if cfg.Physics.BroadPhase {
		g.physics.UseGrid(cfg.Physics.CellSize)
	}
	g.animation = systems.NewAnimationSystem(g.store.World())
	g.grab = systems.NewGrabSystem(g.store, g.objects, g.bounds, cfg.Pet.ObjectLongPress)

	g.lastState = g.pet.State
}

func cloneRooms(rooms []config.RoomConfig) []config.RoomConfig {
	out := make([]config.RoomConfig, len(rooms))
	for i, r := range rooms {
		out[i] = r
		out[i].Objects = slices.Clone(r.Objects)
	}
	return out
}

// Config returns the configuration the game was built from.
func (g *Game) Config() *config.Config { return g.cfg }

// Store returns the entity store.
func (g *Game) Store() *entity.Store { return g.store }

// Pet returns the pet model.
func (g *Game) Pet() *pet.Pet { return g.pet }

// Bounds returns the canvas size.
func (g *Game) Bounds() systems.Bounds { return g.bounds }

// Messages returns the live speech bubbles.
func (g *Game) Messages() []systems.Message { return g.messages.Messages() }

// Objects returns the live object ids.
func (g *Game) Objects() []entity.ID { return g.objects.Active() }

// Particles returns the number of live particles.
func (g *Game) Particles() int { return g.particles.Len() }

// Tick returns the number of completed updates.
func (g *Game) Tick() int64 { return g.tick }

// Session returns the telemetry session id.
func (g *Game) Session() string { return g.collector.Session() }

// Paused reports whether updates are suspended.
func (g *Game) Paused() bool { return g.paused }

// SetPaused suspends or resumes updates.
func (g *Game) SetPaused(p bool) { g.paused = p }

// SetGodMode pins every stat to 100 while on.
func (g *Game) SetGodMode(on bool) {
	g.pet.Cheats.GodMode = on
	slog.Info("cheat", "god_mode", on)
}

// SetNoMoreMove blocks autonomous walking while on.
func (g *Game) SetNoMoreMove(on bool) {
	g.pet.Cheats.NoMoreMove = on
	slog.Info("cheat", "no_more_move", on)
}

// Cheats returns the current cheat toggles.
func (g *Game) Cheats() pet.Cheats { return g.pet.Cheats }

// SetParticlesEnabled toggles particle emission.
func (g *Game) SetParticlesEnabled(on bool) { g.particles.SetEnabled(on) }

// Volumes returns the music and effect gains.
func (g *Game) Volumes() (music, sfx float64) { return g.audio.Volumes() }

// SetVolumes sets the music and effect gains.
func (g *Game) SetVolumes(music, sfx float64) { g.audio.SetVolumes(music, sfx) }

// PlaySound plays a named effect.
func (g *Game) PlaySound(name string) { g.audio.PlayEffect(name) }

// Unload flushes the last partial telemetry window and releases outputs.
func (g *Game) Unload() {
	if g.collector.Samples() > 0 {
		g.writeTelemetry()
	}
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.audio.Close()
}
