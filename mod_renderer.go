package neon

import (
	"fmt"

	"github.com/gekko3d/neon/neonrt/rt/core"
)

// RendererName identifies a concrete renderer.
type RendererName string

const (
	RendererWGPU     RendererName = "wgpu"
	RendererHeadless RendererName = "headless"
)

// RenderFrame is everything a renderer reads to draw one tick.
type RenderFrame struct {
	Scene  *core.Scene
	Camera *core.CameraState
	Time   *Time
}

// Renderer draws the field into a host surface.
type Renderer interface {
	Name() RendererName
	Resize(vp Viewport)
	Render(frame *RenderFrame) error
	Release()
}

// RendererFactory creates the renderer for one mount. A factory that fails
// must release whatever it acquired before returning.
type RendererFactory func(host Host, mountID string, log Logger) (Renderer, error)

// RendererHandle is the installed renderer plus frame bookkeeping.
type RendererHandle struct {
	Renderer Renderer
	Frames   uint64
	Failures uint64
}

type RendererModule struct {
	Renderer Renderer
}

// Install panics if the app already has a renderer; one renderer draws a
// surface.
func (mod RendererModule) Install(app *App, cmd *Commands) {
	if prev, ok := Resource[RendererHandle](app); ok {
		msg := fmt.Sprintf("Multiple renderers installed: %s and %s", prev.Renderer.Name(), mod.Renderer.Name())
		cmd.Logger().Errorf("%s", msg)
		panic(msg)
	}
	cmd.AddResources(&RendererHandle{Renderer: mod.Renderer})
	cmd.UseSystem(
		System(renderSystem).
			InStage(Render),
	)
	cmd.Logger().Infof("Renderer selected: %s", mod.Renderer.Name())
}

// renderSystem draws the current tick. A failed frame is logged and skipped;
// the loop keeps running.
func renderSystem(handle *RendererHandle, scene *core.Scene, cam *core.CameraState, t *Time, log Logger) {
	err := handle.Renderer.Render(&RenderFrame{Scene: scene, Camera: cam, Time: t})
	if err != nil {
		handle.Failures++
		log.Warnf("frame %d skipped: %v", t.Frame, err)
		return
	}
	handle.Frames++
}
