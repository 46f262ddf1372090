// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig      `yaml:"screen"`
	Canvas     CanvasConfig      `yaml:"canvas"`
	Physics    PhysicsConfig     `yaml:"physics"`
	Pet        PetConfig         `yaml:"pet"`
	Animations []AnimationConfig `yaml:"animations"`
	Objects    []ObjectConfig    `yaml:"objects"`
	Rooms      []RoomConfig      `yaml:"rooms"`
	AI         AIConfig          `yaml:"ai"`
	Conditions ConditionsConfig  `yaml:"conditions"`
	Messages   MessagesConfig    `yaml:"messages"`
	Particles  ParticlesConfig   `yaml:"particles"`
	Audio      AudioConfig       `yaml:"audio"`
	Telemetry  TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window settings for the graphical driver.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// CanvasConfig holds the logical simulation surface.
// Pointer coordinates are translated into this space by the driver.
type CanvasConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	FloorOffset float64 `yaml:"floor_offset"` // floor sits this far above the bottom edge
	SpawnX      float64 `yaml:"spawn_x"`
	SpawnY      float64 `yaml:"spawn_y"`
}

// PhysicsConfig holds integration and collision parameters.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`     // px/s^2 for spawned objects
	Restitution float64 `yaml:"restitution"` // velocity kept after a bounce
	BroadPhase  bool    `yaml:"broad_phase"` // use the uniform grid for candidate pairs
	CellSize    float64 `yaml:"cell_size"`
}

// RGBA is a flat color overlay.
type RGBA struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
	A uint8 `yaml:"a"`
}

// ColliderConfig is a collider box relative to its sprite, pre-scale.
type ColliderConfig struct {
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
}

// StatConfig seeds one pet stat.
type StatConfig struct {
	Name    string  `yaml:"name"`
	Porcent float64 `yaml:"porcent"`
	Decay   float64 `yaml:"decay"` // units per second
	Active  bool    `yaml:"active"`
}

// CheatsConfig holds debug toggles.
type CheatsConfig struct {
	GodMode    bool `yaml:"god_mode"`
	NoMoreMove bool `yaml:"no_more_move"`
}

// PetConfig is the pet template.
type PetConfig struct {
	Name       string         `yaml:"name"`
	X          float64        `yaml:"x"`
	Y          float64        `yaml:"y"`
	Width      float64        `yaml:"width"`
	Height     float64        `yaml:"height"`
	Scale      float64        `yaml:"scale"`
	FrameSpeed float64        `yaml:"frame_speed"` // ms per animation frame
	Color      RGBA           `yaml:"color"`
	Collider   ColliderConfig `yaml:"collider"`
	Stats      []StatConfig   `yaml:"stats"`
	Cheats     CheatsConfig   `yaml:"cheats"`

	SleepRegen      float64 `yaml:"sleep_regen"`       // energy per second while sleeping
	ReactHappiness  float64 `yaml:"react_happiness"`   // happiness gained per tap reaction
	ReactParticles  int     `yaml:"react_particles"`   // explosion size on reaction
	EatHunger       float64 `yaml:"eat_hunger"`        // hunger restored per food item
	BathHygiene     float64 `yaml:"bath_hygiene"`      // hygiene per second while touching soap
	BathExitMs      float64 `yaml:"bath_exit_ms"`      // idle after this long without soap contact
	BubbleHygiene   float64 `yaml:"bubble_hygiene"`    // hygiene per extinguished bubble
	LongPressMs     float64 `yaml:"long_press_ms"`     // hold time before the pet is grabbed
	ObjectLongPress float64 `yaml:"object_long_press"` // hold time before an object is grabbed
}

// AnimationConfig describes one named clip.
type AnimationConfig struct {
	Name       string  `yaml:"name"`
	Frames     int     `yaml:"frames"`
	Type       string  `yaml:"type"`                  // loop or once
	FrameSpeed float64 `yaml:"frame_speed,omitempty"` // ms per frame; 0 uses the sprite's
}

// Object types.
const (
	ObjectFood     = "Food"
	ObjectBathroom = "Bathroom"
	ObjectDefault  = "Default"
	ObjectRoom     = "Room"
)

// ObjectConfig is an immutable interactable-object template.
type ObjectConfig struct {
	Name       string   `yaml:"name"`
	Type       string   `yaml:"type"`
	Tags       []string `yaml:"tags"`
	Behaviors  []string `yaml:"behaviors"`
	Width      float64  `yaml:"width"`
	Height     float64  `yaml:"height"`
	Scale      float64  `yaml:"scale"`
	Color      RGBA     `yaml:"color"`
	TimeToLife float64  `yaml:"time_to_life"` // ms
	Persistent bool     `yaml:"persistent"`   // room fixtures never expire
}

// PlacementConfig positions a template inside a room.
type PlacementConfig struct {
	Name string  `yaml:"name"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// Room button actions.
const (
	ButtonOpenInventory = "openInventory"
	ButtonSleep         = "sleep"
	ButtonBrushTeeth    = "brushTeeth"
	ButtonWaterPlants   = "waterPlants"
)

// RoomConfig defines a room.
type RoomConfig struct {
	Name    string            `yaml:"name"`
	Music   string            `yaml:"music"`
	Button  string            `yaml:"button"`
	Objects []PlacementConfig `yaml:"objects"`
}

// AIConfig holds movement planner tuning.
type AIConfig struct {
	Speed            float64            `yaml:"speed"`             // px per frame
	FrameMs          float64            `yaml:"frame_ms"`          // nominal frame length for distance planning
	DecisionCooldown float64            `yaml:"decision_cooldown"` // ms between decisions
	BaseMoveChance   float64            `yaml:"base_move_chance"`
	Adjustments      map[string]float64 `yaml:"adjustments"`       // condition name -> additive delta
	MoveEnergyCost   float64            `yaml:"move_energy_cost"`
}

// ConditionsConfig holds derivation thresholds and behavior tuning.
type ConditionsConfig struct {
	TiredAt        float64  `yaml:"tired_at"`        // energy <= this
	ExhaustedBelow float64  `yaml:"exhausted_below"` // energy < this
	EnergeticAbove float64  `yaml:"energetic_above"` // energy > this
	HappyAbove     float64  `yaml:"happy_above"`     // happiness > this
	DepressedBelow float64  `yaml:"depressed_below"` // happiness < this
	HungryAt       float64  `yaml:"hungry_at"`       // hunger <= this
	Cooldown       float64  `yaml:"cooldown"`        // ms between behavior effects
	TiredMessage   float64  `yaml:"tired_message"`   // chance of a message per sweat burst
	TiredMessages  []string `yaml:"tired_messages"`
	HungryMessages []string `yaml:"hungry_messages"`
}

// MessagesConfig holds speech bubble timing.
type MessagesConfig struct {
	Cooldown float64 `yaml:"cooldown"` // ms
	TTL      float64 `yaml:"ttl"`      // ms
	OffsetY  float64 `yaml:"offset_y"`
}

// ParticleKindConfig describes one particle preset.
type ParticleKindConfig struct {
	TTL     float64 `yaml:"ttl"` // ms
	Size    float64 `yaml:"size"`
	Count   int     `yaml:"count"`
	Spread  float64 `yaml:"spread"` // random velocity range, px/s
	Gravity float64 `yaml:"gravity"`
	Chance  float64 `yaml:"chance"` // per-tick emission chance for emitters
	Color   RGBA    `yaml:"color"`
}

// ParticlesConfig holds all particle presets.
type ParticlesConfig struct {
	Explosion ParticleKindConfig `yaml:"explosion"`
	Droplet   ParticleKindConfig `yaml:"droplet"`
	Bubbles   ParticleKindConfig `yaml:"bubbles"`
	Water     ParticleKindConfig `yaml:"water"`
}

// SoundConfig is a synthesized effect.
type SoundConfig struct {
	Name     string  `yaml:"name"`
	Freq     float64 `yaml:"freq"`
	Duration float64 `yaml:"duration"` // ms
	Wave     string  `yaml:"wave"`     // sine, square, saw, noise
}

// MusicConfig is a looping note sequence.
type MusicConfig struct {
	Name   string    `yaml:"name"`
	Notes  []float64 `yaml:"notes"` // Hz, 0 = rest
	NoteMs float64   `yaml:"note_ms"`
}

// AudioConfig holds the sound tables and volumes.
type AudioConfig struct {
	Enabled     bool          `yaml:"enabled"`
	SampleRate  int           `yaml:"sample_rate"`
	MusicVolume float64       `yaml:"music_volume"`
	SFXVolume   float64       `yaml:"sfx_volume"`
	Effects     []SoundConfig `yaml:"effects"`
	Music       []MusicConfig `yaml:"music"`
}

// TelemetryConfig holds output settings.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	FloorY         float64        // canvas height minus floor offset
	AnimationIndex map[string]int // name -> index into Animations
	ObjectIndex    map[string]int // name -> index into Objects
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file; lists are replaced whole.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %vx%v", c.Canvas.Width, c.Canvas.Height)
	}
	for _, a := range c.Animations {
		if a.Type != "loop" && a.Type != "once" {
			return fmt.Errorf("animation %q: unknown type %q", a.Name, a.Type)
		}
		if a.FrameSpeed < 0 {
			return fmt.Errorf("animation %q: negative frame_speed %v", a.Name, a.FrameSpeed)
		}
	}
	for _, o := range c.Objects {
		switch o.Type {
		case ObjectFood, ObjectBathroom, ObjectDefault, ObjectRoom:
		default:
			return fmt.Errorf("object %q: unknown type %q", o.Name, o.Type)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FloorY = c.Canvas.Height - c.Canvas.FloorOffset

	if c.Pet.Scale == 0 {
		c.Pet.Scale = 1
	}
	for i := range c.Objects {
		if c.Objects[i].Scale == 0 {
			c.Objects[i].Scale = 1
		}
	}

	c.Derived.AnimationIndex = make(map[string]int, len(c.Animations))
	for i, a := range c.Animations {
		c.Derived.AnimationIndex[a.Name] = i
	}
	c.Derived.ObjectIndex = make(map[string]int, len(c.Objects))
	for i, o := range c.Objects {
		c.Derived.ObjectIndex[o.Name] = i
	}
}

// Object returns the template with the given name.
func (c *Config) Object(name string) (ObjectConfig, bool) {
	i, ok := c.Derived.ObjectIndex[name]
	if !ok {
		return ObjectConfig{}, false
	}
	return c.Objects[i], true
}

// ObjectsOfType returns the names of all templates of the given type, in declaration order.
func (c *Config) ObjectsOfType(typ string) []string {
	var names []string
	for _, o := range c.Objects {
		if o.Type == typ {
			names = append(names, o.Name)
		}
	}
	return names
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
