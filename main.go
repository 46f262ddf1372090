package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/petsim/config"
	"github.com/pthm-cable/petsim/game"
	"github.com/pthm-cable/petsim/renderer"
	"github.com/pthm-cable/petsim/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics or audio")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	dtMs := flag.Float64("dt-ms", 0, "Fixed step in ms (0 = 1/60 s headless, frame time windowed)")
	logStats := flag.Bool("log-stats", false, "Log each telemetry window")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	opts := game.Options{
		Seed:      *seed,
		DtMs:      *dtMs,
		OutputDir: *outputDir,
		LogStats:  *logStats,
		Audio:     !*headless,
	}

	if *headless {
		runHeadless(cfg, opts, *maxTicks)
		return
	}
	runWindowed(cfg, opts, *maxTicks)
}

func runHeadless(cfg *config.Config, opts game.Options, maxTicks int64) {
	g, err := game.New(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	step := opts.DtMs
	if step <= 0 {
		step = game.DefaultDtMs
	}
	slog.Info("starting headless simulation", "dt_ms", step, "max_ticks", maxTicks)

	logEvery := int64(cfg.Telemetry.StatsWindow * 1000 / step)
	for maxTicks <= 0 || g.Tick() < maxTicks {
		g.Update(step)
		if logEvery > 0 && g.Tick()%logEvery == 0 {
			g.LogState()
		}
	}
	slog.Info("max ticks reached", "tick", g.Tick())
}

func runWindowed(cfg *config.Config, opts game.Options, maxTicks int64) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Pet.Name)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.New(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	scene := renderer.NewSceneRenderer(cfg.Derived.FloorY)
	hud := ui.NewHUD(10, 10, 220)
	panel := ui.NewControlsPanel(int32(cfg.Screen.Width)-190, 10, 180)
	perfPanel := ui.NewPerfPanel(10, 190)
	showPerf := false

	for !rl.WindowShouldClose() {
		sw, sh := float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
		vp := game.FitViewport(cfg.Canvas.Width, cfg.Canvas.Height, sw, sh)

		// Keyboard
		switch {
		case rl.IsKeyPressed(rl.KeySpace):
			g.SetPaused(!g.Paused())
		case rl.IsKeyPressed(rl.KeyLeft):
			g.ChangeRoom(-1)
		case rl.IsKeyPressed(rl.KeyRight):
			g.ChangeRoom(1)
		case rl.IsKeyPressed(rl.KeyS):
			g.ToggleSleep()
		case rl.IsKeyPressed(rl.KeyTab):
			panel.Toggle()
		case rl.IsKeyPressed(rl.KeyF):
			scene.ToggleFrameLabels()
		case rl.IsKeyPressed(rl.KeyP):
			showPerf = !showPerf
		}

		// Pointer, translated into canvas space
		mouse := rl.GetMousePosition()
		cx, cy := vp.ToCanvas(float64(mouse.X), float64(mouse.Y))
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !panel.Contains(mouse.X, mouse.Y) {
			g.PressDown(cx, cy)
		}
		g.PointerMove(cx, cy)
		if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
			g.PressUp(cx, cy)
		}

		step := opts.DtMs
		if step <= 0 {
			step = float64(rl.GetFrameTime()) * 1000
		}
		g.Update(step)
		g.RecordFrame()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 60, G: 52, B: 46, A: 255})
		scene.Draw(g, vp)
		hud.Draw(hudData(g))
		panel.Draw(g)
		if showPerf {
			perfPanel.Draw(g.PerfStats())
		}
		hud.DrawControls(int32(sh), "[Space] pause  [<-/->] room  [S] sleep  [Tab] panel  [F] frames  [P] perf")
		rl.EndDrawing()

		if maxTicks > 0 && g.Tick() >= maxTicks {
			break
		}
	}
}

func hudData(g *game.Game) ui.HUDData {
	p := g.Pet()
	data := ui.HUDData{
		PetName:    p.Name,
		State:      p.State.String(),
		Conditions: p.Conditions.String(),
		Room:       g.Room().Name,
		Tick:       g.Tick(),
		FPS:        rl.GetFPS(),
		Paused:     g.Paused(),
	}
	for _, s := range p.Stats {
		data.Stats = append(data.Stats, ui.StatView{Name: s.Name, Value: s.Porcent})
	}
	return data
}
