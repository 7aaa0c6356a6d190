package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/gekko3d/neon"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	width := flag.Int("width", 1280, "Window width")
	height := flag.Int("height", 720, "Window height")
	title := flag.String("title", "Neon", "Window title")
	fullscreen := flag.Bool("fullscreen", false, "Cover the primary monitor")
	debug := flag.Bool("debug", false, "Enable debug mode (FPS and profiler overlay)")
	lit := flag.Bool("lit", false, "Shade particles with the scene lights")
	seed := flag.Int64("seed", 0, "Particle placement seed (0 picks one from the clock)")
	headless := flag.Bool("headless", false, "Run the animation loop at 60Hz without a window or GPU")
	flag.Parse()

	log := neon.NewDefaultLogger("neon", *debug)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	log.Debugf("seed %d", *seed)
	rng := rand.New(rand.NewSource(*seed))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *headless {
		runHeadless(ctx, log, neon.NewViewport(*width, *height, 1), rng)
		return
	}

	pw := neon.NewPlatformWindow(*width, *height, *title)
	pw.Fullscreen = *fullscreen
	window, err := pw.Open()
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
	defer window.Close()

	surface, err := neon.Mount(window,
		neon.WithLogger(log),
		neon.WithDebug(*debug),
		neon.WithRand(rng),
		neon.WithRenderer(neon.NewGpuRenderer(neon.GpuOptions{Debug: *debug, Lit: *lit})),
	)
	if err != nil {
		log.Errorf("%v", err)
		return
	}
	defer surface.Unmount()

	if err := window.Run(ctx); err != nil && ctx.Err() == nil {
		log.Errorf("%v", err)
	}
}

func runHeadless(ctx context.Context, log *neon.DefaultLogger, vp neon.Viewport, rng *rand.Rand) {
	host := neon.NewHeadlessHost(vp)
	surface, err := neon.Mount(host,
		neon.WithLogger(log),
		neon.WithRand(rng),
		neon.WithRenderer(neon.NewHeadlessRenderer().Factory()),
	)
	if err != nil {
		log.Errorf("%v", err)
		return
	}
	defer surface.Unmount()

	if err := host.Run(ctx, time.Second/60); err != nil && ctx.Err() == nil {
		log.Errorf("%v", err)
	}
	stats := surface.Stats()
	log.Infof("%d ticks, %d particles recycled", stats.Ticks, stats.Wrapped)
}
