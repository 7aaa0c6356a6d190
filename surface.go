package neon

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/gekko3d/neon/neonrt/rt/core"
)

type mountOptions struct {
	log      Logger
	debug    bool
	rng      *rand.Rand
	renderer RendererFactory
	modules  []Module
}

type Option func(*mountOptions)

// WithLogger sends mount logs to log. DefaultLoggers get the mount id as
// prefix.
func WithLogger(log Logger) Option {
	return func(o *mountOptions) { o.log = log }
}

// WithRand seeds particle placement.
func WithRand(rng *rand.Rand) Option {
	return func(o *mountOptions) { o.rng = rng }
}

// WithRenderer replaces the default WebGPU renderer.
func WithRenderer(factory RendererFactory) Option {
	return func(o *mountOptions) { o.renderer = factory }
}

// WithModules installs extra modules after the built-in ones. Their
// teardown registrations run with the surface's.
func WithModules(modules ...Module) Option {
	return func(o *mountOptions) { o.modules = append(o.modules, modules...) }
}

func WithDebug(debug bool) Option {
	return func(o *mountOptions) { o.debug = debug }
}

// Surface is one mounted particle field. It owns every resource it acquired
// and gives all of them back on Unmount.
type Surface struct {
	id       string
	host     Host
	log      Logger
	teardown *Teardown
	app      *App
	frame    FrameHandle
	mounted  bool

	time     *Time
	pointer  *Pointer
	viewport *Viewport
	camera   *core.CameraState
	field    *core.ParticleSet
	stats    *FieldStats
	renderer *RendererHandle
}

var ErrNoHost = errors.New("neon: mount without host")

// Mount builds the field inside host and starts the tick loop. If any step
// fails, everything acquired before it is released and the error returned.
func Mount(host Host, opts ...Option) (*Surface, error) {
	if host == nil {
		return nil, ErrNoHost
	}
	o := mountOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	id := uuid.NewString()
	log := o.log
	switch l := log.(type) {
	case nil:
		log = NewDefaultLogger(id, o.debug)
	case *DefaultLogger:
		if l == nil {
			log = NewDefaultLogger(id, o.debug)
		} else {
			log = l.WithPrefix(id)
		}
	}
	if o.renderer == nil {
		o.renderer = NewGpuRenderer(GpuOptions{Debug: o.debug})
	}

	s := &Surface{id: id, host: host, log: log, teardown: NewTeardown(log)}

	renderer, err := o.renderer(host, id, log)
	if err != nil {
		s.teardown.Run()
		return nil, fmt.Errorf("mount %s: %w", id, err)
	}
	s.teardown.Defer("renderer", renderer.Release)

	vp := host.Viewport()
	modules := []Module{
		LoggingModule{Logger: log},
		TimeModule{},
		InputModule{Viewport: vp},
		ParticleFieldModule{Rand: o.rng},
		FollowCameraModule{},
		RendererModule{Renderer: renderer},
	}
	s.app, err = buildApp(s.teardown, append(modules, o.modules...)...)
	if err != nil {
		s.teardown.Run()
		return nil, fmt.Errorf("mount %s: %w", id, err)
	}
	s.time, _ = Resource[Time](s.app)
	s.pointer, _ = Resource[Pointer](s.app)
	s.viewport, _ = Resource[Viewport](s.app)
	s.camera, _ = Resource[core.CameraState](s.app)
	s.field, _ = Resource[core.ParticleSet](s.app)
	s.stats, _ = Resource[FieldStats](s.app)
	s.renderer, _ = Resource[RendererHandle](s.app)
	s.mounted = true

	pointer := host.OnPointerMove(s.onPointerMove)
	s.teardown.Defer("pointer listener", pointer.Remove)
	resize := host.OnResize(s.onResize)
	s.teardown.Defer("resize listener", resize.Remove)
	s.onResize(vp)

	s.teardown.Defer("frame", s.cancelFrame)
	s.frame = host.Frames().RequestFrame(s.tick)

	log.Infof("mounted %d particles (%dx%d)", s.field.Len(), vp.Width, vp.Height)
	return s, nil
}

func buildApp(td *Teardown, modules ...Module) (app *App, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("install modules: %v", r)
		}
	}()
	return NewAppBuilder().WithTeardown(td).UseModule(modules...).Build(), nil
}

// tick runs one frame and re-arms the next one unless the surface was
// unmounted meanwhile.
func (s *Surface) tick(now float64) {
	s.frame = 0
	if !s.mounted {
		return
	}
	s.time.Advance(now)
	s.app.Tick()
	if s.mounted {
		s.frame = s.host.Frames().RequestFrame(s.tick)
	}
}

func (s *Surface) cancelFrame() {
	if s.frame != 0 {
		s.host.Frames().CancelFrame(s.frame)
		s.frame = 0
	}
}

func (s *Surface) onPointerMove(x, y float64) {
	if !s.mounted {
		return
	}
	s.pointer.Move(x, y, *s.viewport)
}

func (s *Surface) onResize(vp Viewport) {
	if !s.mounted {
		return
	}
	*s.viewport = vp
	s.camera.SetViewport(vp.Width, vp.Height)
	s.renderer.Renderer.Resize(vp)
}

// Unmount stops the loop, detaches the listeners and releases GPU and scene
// resources, in that order. Later calls do nothing.
func (s *Surface) Unmount() {
	if s == nil || !s.mounted {
		return
	}
	s.mounted = false
	s.teardown.Run()
	s.log.Infof("unmounted after %d ticks", s.stats.Ticks)
}

func (s *Surface) ID() string                   { return s.id }
func (s *Surface) Mounted() bool                { return s != nil && s.mounted }
func (s *Surface) App() *App                    { return s.app }
func (s *Surface) Camera() *core.CameraState    { return s.camera }
func (s *Surface) Particles() *core.ParticleSet { return s.field }
func (s *Surface) Pointer() *Pointer            { return s.pointer }
func (s *Surface) Stats() FieldStats            { return *s.stats }
func (s *Surface) Renderer() *RendererHandle    { return s.renderer }
func (s *Surface) Viewport() Viewport           { return *s.viewport }
