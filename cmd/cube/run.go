package main

import (
	"bytes"
	"fmt"

	"github.com/Carmen-Shannon/oxy-cube/engine"
	"github.com/Carmen-Shannon/oxy-cube/engine/config"
	"github.com/Carmen-Shannon/oxy-cube/engine/log"
	"github.com/Carmen-Shannon/oxy-cube/engine/profiler"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer"
	"github.com/Carmen-Shannon/oxy-cube/engine/scene"
	"github.com/Carmen-Shannon/oxy-cube/engine/window"
	"github.com/urfave/cli"
)

var logger = log.New("cube")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

// loadConfig layers the config file and then any flags set on the command line over the
// defaults.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg, err := config.Load(ctx.GlobalString("config"))
	if err != nil {
		return cfg, err
	}

	if ctx.GlobalIsSet("vertex-shader") {
		cfg.Shaders.Vertex = ctx.GlobalString("vertex-shader")
	}
	if ctx.GlobalIsSet("fragment-shader") {
		cfg.Shaders.Fragment = ctx.GlobalString("fragment-shader")
	}
	if ctx.GlobalBool("vsync") {
		cfg.Renderer.PresentMode = config.PresentModeVSync
	}
	if ctx.GlobalBool("software") {
		cfg.Renderer.ForceSoftware = true
	}
	if ctx.GlobalBool("seed-bounds") {
		cfg.Stats.SeedBounds = true
	}
	if ctx.GlobalIsSet("frame-limit") {
		cfg.Renderer.FrameLimit = ctx.GlobalFloat64("frame-limit")
	}

	return cfg, cfg.Validate()
}

func presentMode(name string) renderer.PresentMode {
	if name == config.PresentModeVSync {
		return renderer.PresentModeVSync
	}
	return renderer.PresentModeUncapped
}

// runCube opens the window, prepares the cube and renders until the window closes or a
// frame fails. The frame statistics summary is logged either way.
func runCube(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := win.Close(); err != nil {
			logger.Warningf("closing window: %v", err)
		}
	}()

	r, err := renderer.NewRenderer(win,
		renderer.WithPresentMode(presentMode(cfg.Renderer.PresentMode)),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
	)
	if err != nil {
		return err
	}
	defer r.Release()

	fsys, vertexPath, fragmentPath, err := shaderSource(cfg.Shaders.Vertex, cfg.Shaders.Fragment)
	if err != nil {
		return err
	}

	res, err := scene.Initialize(r, fsys,
		scene.WithShaderPaths(vertexPath, fragmentPath),
		scene.WithCamera(cfg.Camera.Distance, cfg.Camera.FovDegrees, cfg.Camera.Near, cfg.Camera.Far),
		scene.WithAspect(cfg.Aspect()),
	)
	if err != nil {
		return err
	}

	var statsOpts []profiler.FrameStatsOption
	if cfg.Stats.SeedBounds {
		statsOpts = append(statsOpts, profiler.WithSeededBounds())
	}
	state := scene.NewRenderLoopState(res, profiler.NewFrameStats(statsOpts...))

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderFrameLimit(cfg.Renderer.FrameLimit),
		engine.WithTickCallback(func(float32) {}),
		engine.WithRenderCallback(func(dt float32) error {
			_, err := scene.RenderFrame(dt, r, state)
			return err
		}),
	)

	logger.Noticef("rendering %q at %dx%d, present mode %s", cfg.Window.Title, win.Width(), win.Height(), cfg.Renderer.PresentMode)
	runErr := eng.Run()

	var summary bytes.Buffer
	profiler.WriteSummary(&summary, state.Stats, state.Elapsed())
	logger.Noticef("frame statistics\n%s", summary.String())

	if runErr != nil {
		return fmt.Errorf("render loop stopped: %w", runErr)
	}
	return nil
}
