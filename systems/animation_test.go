package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/petsim/components"
	"github.com/pthm-cable/petsim/config"
)

func testSprite(anim string) *components.Sprite {
	return &components.Sprite{
		Animation:  anim,
		FrameSpeed: 100,
		Clips: BuildClips([]config.AnimationConfig{
			{Name: "idle", Frames: 4, Type: "loop"},
			{Name: "eat", Frames: 3, Type: "once"},
			{Name: "empty", Frames: 0, Type: "loop"},
		}),
	}
}

func TestBuildClips(t *testing.T) {
	clips := BuildClips([]config.AnimationConfig{{Name: "sleep", Frames: 2, Type: "once"}})
	c, ok := clips["sleep"]
	if !ok {
		t.Fatal("clip not built")
	}
	if c.Loop {
		t.Error("once clip marked as looping")
	}
	if len(c.Frames) != 2 || c.Frames[0] != "sleep_0" || c.Frames[1] != "sleep_1" {
		t.Errorf("frames = %v", c.Frames)
	}
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name        string
		anim        string
		dt          float64
		wantAnim    string
		wantFrame   int
		wantCounter float64
	}{
		{"below one frame", "idle", 60, "idle", 0, 60},
		{"overshoot carries", "idle", 250, "idle", 2, 50},
		{"loop wraps", "idle", 450, "idle", 0, 50},
		{"once clip ends on idle", "eat", 300, "idle", 0, 0},
		{"once clip continues into idle", "eat", 420, "idle", 1, 20},
		{"missing clip untouched", "dance", 500, "dance", 0, 0},
		{"empty clip untouched", "empty", 500, "empty", 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sp := testSprite(tc.anim)
			Advance(sp, tc.dt)
			if sp.Animation != tc.wantAnim {
				t.Errorf("animation = %q, want %q", sp.Animation, tc.wantAnim)
			}
			if sp.Frame != tc.wantFrame {
				t.Errorf("frame = %d, want %d", sp.Frame, tc.wantFrame)
			}
			if math.Abs(sp.FrameCounter-tc.wantCounter) > 1e-9 {
				t.Errorf("counter = %v, want %v", sp.FrameCounter, tc.wantCounter)
			}
		})
	}
}

func TestAdvance_ZeroSpeedFrozen(t *testing.T) {
	sp := testSprite("idle")
	sp.FrameSpeed = 0
	Advance(sp, 1000)
	if sp.Frame != 0 || sp.FrameCounter != 0 {
		t.Errorf("frozen sprite advanced: frame %d counter %v", sp.Frame, sp.FrameCounter)
	}
}

func TestSetAnimation(t *testing.T) {
	sp := testSprite("idle")
	Advance(sp, 250)

	SetAnimation(sp, "idle")
	if sp.Frame != 2 {
		t.Errorf("re-setting the current clip restarted it: frame %d", sp.Frame)
	}

	SetAnimation(sp, "eat")
	if sp.Animation != "eat" || sp.Frame != 0 || sp.FrameCounter != 0 {
		t.Errorf("switch did not restart: %+v", sp)
	}
}

func TestFrame(t *testing.T) {
	sp := testSprite("idle")
	sp.Frame = 2
	if got := Frame(sp); got != "idle_2" {
		t.Errorf("Frame = %q, want idle_2", got)
	}

	sp.Frame = 9
	if got := Frame(sp); got != "idle_0" {
		t.Errorf("out-of-range frame = %q, want idle_0", got)
	}

	sp.Animation = "dance"
	sp.Image = "Apple"
	if got := Frame(sp); got != "Apple" {
		t.Errorf("missing clip with image = %q, want Apple", got)
	}

	sp.Image = ""
	if got := Frame(sp); got != DefaultImage {
		t.Errorf("missing clip = %q, want %q", got, DefaultImage)
	}
}

func TestAdvance_ClipFrameSpeed(t *testing.T) {
	sp := &components.Sprite{
		Animation:  "react",
		FrameSpeed: 100,
		Clips: BuildClips([]config.AnimationConfig{
			{Name: "idle", Frames: 4, Type: "loop"},
			{Name: "react", Frames: 4, Type: "once", FrameSpeed: 50},
		}),
	}
	if d := Duration(sp, "react"); d != 200 {
		t.Errorf("react duration = %v, want 200", d)
	}
	if l := ClipLength(sp, "idle"); l != 400 {
		t.Errorf("idle length = %v, want 400 at the sprite speed", l)
	}

	Advance(sp, 50)
	if sp.Frame != 1 {
		t.Fatalf("frame = %d after 50ms at 50ms/frame, want 1", sp.Frame)
	}
	Advance(sp, 150)
	if sp.Animation != "idle" || sp.Frame != 0 {
		t.Fatalf("after react: %q frame %d, want idle 0", sp.Animation, sp.Frame)
	}
	Advance(sp, 50)
	if sp.Frame != 0 {
		t.Errorf("idle stepped at the clip speed of react: frame %d", sp.Frame)
	}
	Advance(sp, 50)
	if sp.Frame != 1 {
		t.Errorf("idle frame = %d after 100ms, want 1", sp.Frame)
	}
}

func TestDuration(t *testing.T) {
	sp := testSprite("idle")
	if d := Duration(sp, "idle"); !math.IsInf(d, 1) {
		t.Errorf("loop duration = %v, want +Inf", d)
	}
	if d := Duration(sp, "eat"); d != 300 {
		t.Errorf("once duration = %v, want 300", d)
	}
	if d := Duration(sp, "dance"); d != 0 {
		t.Errorf("missing duration = %v, want 0", d)
	}
	if !HasClip(sp, "eat") || HasClip(sp, "dance") {
		t.Error("HasClip mismatch")
	}
}
