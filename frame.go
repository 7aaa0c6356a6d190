package neon

// FrameHandle identifies one requested frame. Zero is never issued.
type FrameHandle uint64

// FrameCallback receives the frame timestamp in milliseconds.
type FrameCallback func(now float64)

// FrameScheduler is the display-refresh hook: callbacks requested now run on
// the next refresh, once.
type FrameScheduler interface {
	RequestFrame(cb FrameCallback) FrameHandle
	CancelFrame(h FrameHandle)
}

// FrameQueue is a FrameScheduler driven by explicit Dispatch calls. Hosts call
// Dispatch once per refresh; tests call it with synthetic timestamps.
type FrameQueue struct {
	next     FrameHandle
	pending  []pendingFrame
	inFlight []pendingFrame
}

type pendingFrame struct {
	handle FrameHandle
	cb     FrameCallback
}

func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

func (q *FrameQueue) RequestFrame(cb FrameCallback) FrameHandle {
	q.next++
	q.pending = append(q.pending, pendingFrame{handle: q.next, cb: cb})
	return q.next
}

// CancelFrame drops a pending callback. Unknown, stale or zero handles are
// ignored.
func (q *FrameQueue) CancelFrame(h FrameHandle) {
	if h == 0 {
		return
	}
	for i, p := range q.pending {
		if p.handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	// A callback earlier in the running batch may cancel a later one.
	for i := range q.inFlight {
		if q.inFlight[i].handle == h {
			q.inFlight[i].cb = nil
			return
		}
	}
}

// Dispatch runs the callbacks pending at call time. Callbacks requested while
// dispatching wait for the next Dispatch. Returns how many ran.
func (q *FrameQueue) Dispatch(now float64) int {
	q.inFlight = q.pending
	q.pending = nil
	ran := 0
	for i := range q.inFlight {
		cb := q.inFlight[i].cb
		if cb == nil {
			continue
		}
		q.inFlight[i].cb = nil
		cb(now)
		ran++
	}
	q.inFlight = nil
	return ran
}

func (q *FrameQueue) Pending() int {
	return len(q.pending)
}
