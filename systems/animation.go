// Package systems contains the per-frame simulation systems.
package systems

import (
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/petsim/components"
	"github.com/pthm-cable/petsim/config"
)

// Animation names the simulation switches to on its own.
const (
	AnimIdle    = "idle"
	AnimDefault = "default"
)

// DefaultImage is returned when an entity's clip is missing.
const DefaultImage = "default"

// BuildClips turns animation configs into clips whose frames are named
// "<clip>_<index>".
func BuildClips(anims []config.AnimationConfig) map[string]components.Clip {
	clips := make(map[string]components.Clip, len(anims))
	for _, a := range anims {
		frames := make([]string, a.Frames)
		for i := range frames {
			frames[i] = fmt.Sprintf("%s_%d", a.Name, i)
		}
		clips[a.Name] = components.Clip{Name: a.Name, Frames: frames, Loop: a.Type != "once", FrameSpeed: a.FrameSpeed}
	}
	return clips
}

// AnimationSystem advances sprite clips.
type AnimationSystem struct {
	filter ecs.Filter1[components.Sprite]
}

// NewAnimationSystem creates a new animation system.
func NewAnimationSystem(w *ecs.World) *AnimationSystem {
	return &AnimationSystem{
		filter: *ecs.NewFilter1[components.Sprite](w),
	}
}

// Update advances every sprite by dtMs.
func (s *AnimationSystem) Update(dtMs float64) {
	query := s.filter.Query()
	for query.Next() {
		Advance(query.Get(), dtMs)
	}
}

// Advance accumulates elapsed time and steps frames. Overshoot carries
// into the next frame. A finished once-clip switches to idle.
func Advance(sp *components.Sprite, dtMs float64) {
	clip, ok := sp.Clips[sp.Animation]
	if !ok || len(clip.Frames) == 0 {
		return
	}
	speed := frameSpeed(sp, clip)
	if speed <= 0 {
		return
	}

	sp.FrameCounter += dtMs
	for sp.FrameCounter >= speed {
		sp.FrameCounter -= speed
		sp.Frame++
		if sp.Frame < len(clip.Frames) {
			continue
		}
		sp.Frame = 0
		if clip.Loop {
			continue
		}
		sp.Animation = AnimIdle
		clip, ok = sp.Clips[AnimIdle]
		if !ok || len(clip.Frames) == 0 {
			return
		}
		if speed = frameSpeed(sp, clip); speed <= 0 {
			return
		}
	}
}

func frameSpeed(sp *components.Sprite, clip components.Clip) float64 {
	if clip.FrameSpeed > 0 {
		return clip.FrameSpeed
	}
	return sp.FrameSpeed
}

// SetAnimation switches clips and restarts playback. Setting the current
// clip again is a no-op.
func SetAnimation(sp *components.Sprite, name string) {
	if sp.Animation == name {
		return
	}
	sp.Animation = name
	sp.Frame = 0
	sp.FrameCounter = 0
}

// HasClip reports whether the sprite defines the named clip.
func HasClip(sp *components.Sprite, name string) bool {
	_, ok := sp.Clips[name]
	return ok
}

// Frame returns the image handle to draw for the sprite.
func Frame(sp *components.Sprite) string {
	clip, ok := sp.Clips[sp.Animation]
	if !ok || len(clip.Frames) == 0 {
		if sp.Image != "" {
			return sp.Image
		}
		return DefaultImage
	}
	if sp.Frame < 0 || sp.Frame >= len(clip.Frames) {
		return clip.Frames[0]
	}
	return clip.Frames[sp.Frame]
}

// Duration returns how long one play of the clip lasts in ms.
// Loop clips never end; missing clips last zero.
func Duration(sp *components.Sprite, name string) float64 {
	clip, ok := sp.Clips[name]
	if !ok {
		return 0
	}
	if clip.Loop {
		return math.Inf(1)
	}
	return float64(len(clip.Frames)) * frameSpeed(sp, clip)
}

// ClipLength returns the time to play every frame of the clip once,
// looping or not. Missing clips last zero.
func ClipLength(sp *components.Sprite, name string) float64 {
	clip, ok := sp.Clips[name]
	if !ok {
		return 0
	}
	return float64(len(clip.Frames)) * frameSpeed(sp, clip)
}
