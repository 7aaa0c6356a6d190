package neon

import (
	"sort"

	"github.com/gekko3d/neon/neonrt/rt/core"
)

// Viewport is the size of the visible area in window units, and of the
// render target in pixels.
type Viewport struct {
	Width         int
	Height        int
	SurfaceWidth  int
	SurfaceHeight int
}

// NewViewport derives the surface size from the window size and content
// scale, capping the pixel ratio at core.MaxPixelRatio.
func NewViewport(width, height int, scale float32) Viewport {
	sw, sh := core.SurfaceSize(width, height, scale)
	return Viewport{Width: width, Height: height, SurfaceWidth: sw, SurfaceHeight: sh}
}

func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// Listener is a registered notification handler.
type Listener interface {
	Remove()
}

// Host is the runtime a Surface is mounted into: refresh scheduling,
// pointer and resize notifications, viewport queries. All notifications and
// frame callbacks arrive on one goroutine.
type Host interface {
	Frames() FrameScheduler
	Viewport() Viewport
	OnPointerMove(fn func(x, y float64)) Listener
	OnResize(fn func(vp Viewport)) Listener
}

// ListenerSet holds handlers in registration order.
type ListenerSet[F any] struct {
	next     uint64
	handlers map[uint64]F
}

type listenerHandle[F any] struct {
	set *ListenerSet[F]
	id  uint64
}

func (h *listenerHandle[F]) Remove() {
	if h.set == nil {
		return
	}
	delete(h.set.handlers, h.id)
	h.set = nil
}

func (s *ListenerSet[F]) Add(fn F) Listener {
	if s.handlers == nil {
		s.handlers = make(map[uint64]F)
	}
	s.next++
	s.handlers[s.next] = fn
	return &listenerHandle[F]{set: s, id: s.next}
}

// Each calls visit for every handler, oldest first. Handlers removed during
// the walk are skipped.
func (s *ListenerSet[F]) Each(visit func(F)) {
	ids := make([]uint64, 0, len(s.handlers))
	for id := range s.handlers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if fn, ok := s.handlers[id]; ok {
			visit(fn)
		}
	}
}

func (s *ListenerSet[F]) Len() int {
	return len(s.handlers)
}
