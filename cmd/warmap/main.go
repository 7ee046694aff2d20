// cmd/warmap/main.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// warmap draws a WarGames-style strategic display: a phosphor-cyan
// world map under geodesic missile tracks, patrol aircraft and impact
// explosions, run through CRT post-processing.
package main

import (
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/warroom/warmap/geo"
	"github.com/warroom/warmap/log"
	"github.com/warroom/warmap/math"
	"github.com/warroom/warmap/platform"
	"github.com/warroom/warmap/post"
	"github.com/warroom/warmap/rand"
	"github.com/warroom/warmap/renderer"
	"github.com/warroom/warmap/sim"
	"github.com/warroom/warmap/vmap"
)

const (
	// The scene is always rendered at this resolution and then scaled
	// to the window.
	canvasWidth  = 1920
	canvasHeight = 1080

	targetFrameTime = time.Second / 60
)

var (
	logLevel = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir   = flag.String("logdir", "", "log file directory")
	seed     = flag.Int64("seed", 0, "random seed; 0 seeds from the clock")
	dataDir  = flag.String("datadir", "data", "directory with the Natural Earth GeoJSON files")
)

func init() {
	// OpenGL and GLFW want to run on the main thread.
	runtime.LockOSThread()
}

func main() {
	flag.Parse()

	lg := log.New(*logLevel, *logDir)

	config := LoadConfig(lg)

	r := rand.New()
	if *seed != 0 {
		r.Seed(*seed)
	} else {
		r.Seed(time.Now().UnixNano())
	}

	plat, err := platform.New(&platform.Config{
		InitialWindowSize:     config.WindowSize,
		InitialWindowPosition: config.WindowPosition,
		StartInFullScreen:     config.StartInFullScreen,
		FullScreenMonitor:     config.FullScreenMonitor,
	}, lg)
	if err != nil {
		lg.Errorf("unable to create window: %v", err)
		os.Exit(1)
	}

	rend, err := renderer.NewOpenGL41Renderer(lg)
	if err != nil {
		lg.Errorf("unable to initialize OpenGL: %v", err)
		plat.Dispose()
		os.Exit(1)
	}

	pipeline := post.New(rend, lg, canvasWidth, canvasHeight, config.CRTMode)

	proj := geo.Projector{Width: canvasWidth, Height: canvasHeight}
	worldMap := vmap.Load(*dataDir, proj, lg)
	world := sim.NewWorld(proj, &r, lg)
	world.SetLaunchInterval(config.LaunchInterval)

	plat.SetWindowTitle("warmap - CRT " + pipeline.Mode().String())

	lg.Info("starting main loop", "crt_mode", pipeline.Mode())
	runDisplay(plat, rend, pipeline, worldMap, world, lg)

	// Remember the window placement and display settings for next
	// time; the windowed placement is what's worth saving when we're
	// in fullscreen.
	config.StartInFullScreen = plat.IsFullScreen()
	if !config.StartInFullScreen {
		config.WindowSize = plat.WindowSize()
		config.WindowPosition = plat.WindowPosition()
	}
	config.CRTMode = pipeline.Mode()
	config.LaunchInterval = world.LaunchInterval()
	config.Save(lg)

	rend.Dispose()
	plat.Dispose()
}

func runDisplay(plat platform.Platform, rend renderer.Renderer, pipeline *post.Pipeline,
	worldMap *vmap.Map, world *sim.World, lg *log.Logger) {
	cb := renderer.GetCommandBuffer()
	defer renderer.ReturnCommandBuffer(cb)

	var stats renderer.RendererStats
	start := time.Now()
	last := start
	frame := 0

	for !plat.ShouldStop() {
		frameStart := time.Now()
		plat.ProcessEvents()

		// Clamp dt so that time doesn't leap after a long stall, e.g.
		// when the window was dragged or the laptop slept.
		now := time.Now()
		dt := math.Clamp(float32(now.Sub(last).Seconds()), 0, 0.1)
		last = now

		for _, key := range plat.KeyEvents() {
			switch key {
			case platform.KeyUp:
				world.FasterLaunches()
				lg.Info("launch interval", "seconds", world.LaunchInterval())
			case platform.KeyDown:
				world.SlowerLaunches()
				lg.Info("launch interval", "seconds", world.LaunchInterval())
			case platform.KeyR:
				world.Reset()
			case platform.KeySpace:
				world.Burst()
			case platform.KeyC:
				mode := pipeline.Toggle()
				plat.SetWindowTitle("warmap - CRT " + mode.String())
				lg.Info("CRT mode", "mode", mode)
			case platform.KeyF:
				plat.EnableFullScreen(!plat.IsFullScreen())
			case platform.KeyEscape, platform.KeyQ:
				return
			}
		}

		world.Update(dt)

		fb := plat.FramebufferSize()
		pipeline.SetOutputSize(int(fb[0]), int(fb[1]))

		cb.Reset()
		pipeline.BeginScene(cb)
		cb.LoadProjectionMatrix(math.Identity3x3().Ortho(0, canvasWidth, canvasHeight, 0))
		worldMap.Draw(cb)
		world.Draw(cb)
		pipeline.EndScene(cb)
		pipeline.Present(cb, float32(now.Sub(start).Seconds()))

		stats.Merge(rend.RenderCommandBuffer(cb))
		plat.PostRender()

		frame++
		if frame%300 == 0 {
			missiles, explosions := world.Counts()
			lg.Debug("frame", "n", frame, "missiles", missiles,
				"explosions", explosions, "render", stats)
			stats = renderer.RendererStats{}
		}

		// VSync normally paces us; cap explicitly anyway for displays
		// running faster than 60Hz.
		if elapsed := time.Since(frameStart); elapsed < targetFrameTime {
			time.Sleep(targetFrameTime - elapsed)
		}
	}
}
