package neon

import (
	"github.com/gekko3d/neon/neonrt/rt/core"
)

// HeadlessRenderer draws nothing. It records what it was asked to draw, for
// tests and for running the loop without a GPU.
type HeadlessRenderer struct {
	Frames   int
	Viewport Viewport
	Resizes  int
	Released int

	LastCamera   core.CameraState
	LastUploaded int
}

func NewHeadlessRenderer() *HeadlessRenderer {
	return &HeadlessRenderer{}
}

// Factory returns a RendererFactory handing out r.
func (r *HeadlessRenderer) Factory() RendererFactory {
	return func(host Host, mountID string, log Logger) (Renderer, error) {
		r.Viewport = host.Viewport()
		log.Debugf("headless renderer for %s", mountID)
		return r, nil
	}
}

func (r *HeadlessRenderer) Name() RendererName { return RendererHeadless }

func (r *HeadlessRenderer) Resize(vp Viewport) {
	r.Viewport = vp
	r.Resizes++
}

func (r *HeadlessRenderer) Render(frame *RenderFrame) error {
	r.Frames++
	r.LastCamera = *frame.Camera
	if ps := frame.Scene.Particles; ps != nil && ps.Dirty {
		r.LastUploaded = ps.Len()
		ps.Dirty = false
	}
	return nil
}

func (r *HeadlessRenderer) Release() {
	r.Released++
}
