package neon

import (
	"context"
	"time"
)

// HeadlessHost is a Host without a window. Frames run on a synthetic clock;
// pointer and resize events are injected by the caller.
type HeadlessHost struct {
	frames  *FrameQueue
	vp      Viewport
	pointer ListenerSet[func(x, y float64)]
	resize  ListenerSet[func(vp Viewport)]
	now     float64
}

func NewHeadlessHost(vp Viewport) *HeadlessHost {
	return &HeadlessHost{frames: NewFrameQueue(), vp: vp}
}

func (h *HeadlessHost) Frames() FrameScheduler { return h.frames }
func (h *HeadlessHost) Viewport() Viewport     { return h.vp }

func (h *HeadlessHost) OnPointerMove(fn func(x, y float64)) Listener { return h.pointer.Add(fn) }
func (h *HeadlessHost) OnResize(fn func(vp Viewport)) Listener       { return h.resize.Add(fn) }

func (h *HeadlessHost) MovePointer(x, y float64) {
	h.pointer.Each(func(fn func(x, y float64)) { fn(x, y) })
}

func (h *HeadlessHost) Resize(vp Viewport) {
	h.vp = vp
	h.resize.Each(func(fn func(vp Viewport)) { fn(vp) })
}

// Step advances the clock by dtMs and dispatches one frame. Returns how many
// callbacks ran.
func (h *HeadlessHost) Step(dtMs float64) int {
	h.now += dtMs
	return h.frames.Dispatch(h.now)
}

// Now is the synthetic clock in milliseconds.
func (h *HeadlessHost) Now() float64 { return h.now }

// Run steps once per interval until ctx is done or nothing is scheduled.
func (h *HeadlessHost) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	dt := float64(interval) / float64(time.Millisecond)
	for h.frames.Pending() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			h.Step(dt)
		}
	}
	return nil
}
