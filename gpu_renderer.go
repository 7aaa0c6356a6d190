package neon

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	rtapp "github.com/gekko3d/neon/neonrt/rt/app"
)

// GlfwHost is a Host backed by a native window the GPU renderer can draw into.
type GlfwHost interface {
	Host
	GlfwWindow() *glfw.Window
}

type GpuOptions struct {
	Debug bool
	Lit   bool
}

type gpuRenderer struct {
	app *rtapp.App
	log Logger
}

// NewGpuRenderer returns a factory for the WebGPU points renderer. The host
// must implement GlfwHost.
func NewGpuRenderer(opts GpuOptions) RendererFactory {
	return func(host Host, mountID string, log Logger) (Renderer, error) {
		gh, ok := host.(GlfwHost)
		if !ok || gh.GlfwWindow() == nil {
			return nil, fmt.Errorf("gpu renderer: host %T has no native window", host)
		}
		a := rtapp.NewApp(gh.GlfwWindow(), mountID)
		a.DebugMode = opts.Debug
		a.Lit = opts.Lit

		vp := host.Viewport()
		if err := a.Init(vp.SurfaceWidth, vp.SurfaceHeight); err != nil {
			a.Release()
			return nil, fmt.Errorf("gpu renderer init: %w", err)
		}
		log.Infof("gpu renderer ready (%dx%d, lit=%v)", vp.SurfaceWidth, vp.SurfaceHeight, opts.Lit)
		return &gpuRenderer{app: a, log: log}, nil
	}
}

func (r *gpuRenderer) Name() RendererName { return RendererWGPU }

func (r *gpuRenderer) Resize(vp Viewport) {
	r.app.Resize(vp.SurfaceWidth, vp.SurfaceHeight)
}

func (r *gpuRenderer) Render(frame *RenderFrame) error {
	if err := r.app.Update(frame.Scene, frame.Camera); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if err := r.app.Render(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func (r *gpuRenderer) Release() {
	r.app.Release()
}
