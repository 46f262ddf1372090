// Package components defines ECS components for the simulation.
package components

import "slices"

// Entity tags used by collision dispatch and interaction rules.
const (
	TagPet      = "pet"
	TagObject   = "object"
	TagParticle = "particle"
	TagBubbles  = "bubbles"
	TagWater    = "water"
	TagSoap     = "soap"
	TagSurface  = "surface"
)

// Identity is attached to every entity and mirrors its store id.
type Identity struct {
	ID     uint64
	Active bool
	Tags   []string
}

// HasTag reports whether the entity carries the tag.
func (i *Identity) HasTag(tag string) bool {
	return slices.Contains(i.Tags, tag)
}

// RGBA is a flat color overlay.
type RGBA struct {
	R, G, B, A uint8
}

// Clip is a named animation: one image handle per frame.
type Clip struct {
	Name       string
	Frames     []string
	Loop       bool
	FrameSpeed float64 // overrides Sprite.FrameSpeed when positive
}

// Sprite holds the visual state of an entity.
type Sprite struct {
	X, Y          float64
	Width, Height float64
	Scale         float64

	Animation    string
	Frame        int
	FrameCounter float64 // ms accumulated toward the next frame
	FrameSpeed   float64 // ms per frame

	Alpha    float64 // 0-100
	Color    RGBA
	HasColor bool

	Image string          // static image handle used when no clip applies
	Clips map[string]Clip // shared, read-only
}

// ScaleOr1 returns the sprite scale, treating zero as 1.
func (s *Sprite) ScaleOr1() float64 {
	if s.Scale == 0 {
		return 1
	}
	return s.Scale
}

// Physics holds velocity state.
type Physics struct {
	VX, VY  float64 // px/s
	Gravity float64 // px/s^2
	Enabled bool
}

// Collider is a box relative to the sprite origin, pre-scale.
type Collider struct {
	OffsetX, OffsetY float64
	Width, Height    float64
}

// Grab marks an entity the pointer can pick up.
type Grab struct {
	IsGrabbed        bool
	OffsetX, OffsetY float64 // pointer offset captured at grab start
}

// StickyTarget pins an entity to another entity's sprite.
type StickyTarget struct {
	Target           uint64
	OffsetX, OffsetY float64
}

// ObjectType classifies interactable objects.
type ObjectType uint8

const (
	ObjectDefault ObjectType = iota
	ObjectFood
	ObjectBathroom
	ObjectRoom
)

func (t ObjectType) String() string {
	switch t {
	case ObjectFood:
		return "Food"
	case ObjectBathroom:
		return "Bathroom"
	case ObjectRoom:
		return "Room"
	default:
		return "Default"
	}
}

// ParseObjectType maps a template type name to an ObjectType.
func ParseObjectType(s string) ObjectType {
	switch s {
	case "Food":
		return ObjectFood
	case "Bathroom":
		return ObjectBathroom
	case "Room":
		return ObjectRoom
	default:
		return ObjectDefault
	}
}

// Object holds runtime state of an interactable object.
type Object struct {
	Name         string
	Type         ObjectType
	Behaviors    []string
	TimeToLife   float64 // ms
	Persistent   bool
	TouchingPet  bool
	LastTouchPet float64 // sim time (ms) of the last pet contact
}

// ParticleBehavior is one step of a particle's per-tick behavior chain.
type ParticleBehavior uint8

const (
	BehaviorFade ParticleBehavior = iota
	BehaviorSticky
	BehaviorSlowDown
)

// Particle holds the lifetime of a short-lived entity.
type Particle struct {
	Kind          string
	TimeToLife    float64 // ms
	MaxTimeToLife float64
	Behaviors     []ParticleBehavior
}
