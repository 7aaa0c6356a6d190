package neon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameQueue_DispatchRunsOnce(t *testing.T) {
	q := NewFrameQueue()
	var got []float64
	h := q.RequestFrame(func(now float64) { got = append(got, now) })
	assert.NotZero(t, h)
	assert.Equal(t, 1, q.Pending())

	assert.Equal(t, 1, q.Dispatch(16))
	assert.Equal(t, 0, q.Dispatch(32))
	assert.Equal(t, []float64{16}, got)
}

func TestFrameQueue_RequestDuringDispatchWaits(t *testing.T) {
	q := NewFrameQueue()
	ticks := 0
	var loop FrameCallback
	loop = func(now float64) {
		ticks++
		q.RequestFrame(loop)
	}
	q.RequestFrame(loop)

	assert.Equal(t, 1, q.Dispatch(1))
	assert.Equal(t, 1, ticks)
	assert.Equal(t, 1, q.Pending())
	q.Dispatch(2)
	assert.Equal(t, 2, ticks)
}

func TestFrameQueue_Cancel(t *testing.T) {
	q := NewFrameQueue()
	ran := false
	h := q.RequestFrame(func(float64) { ran = true })
	q.CancelFrame(h)
	q.CancelFrame(h)
	q.CancelFrame(0)
	q.CancelFrame(999)

	assert.Zero(t, q.Pending())
	assert.Zero(t, q.Dispatch(1))
	assert.False(t, ran)
}

func TestFrameQueue_CancelLaterCallbackInSameBatch(t *testing.T) {
	q := NewFrameQueue()
	var second FrameHandle
	secondRan := false
	q.RequestFrame(func(float64) { q.CancelFrame(second) })
	second = q.RequestFrame(func(float64) { secondRan = true })

	assert.Equal(t, 1, q.Dispatch(1))
	assert.False(t, secondRan)
}

func TestListenerSet(t *testing.T) {
	var set ListenerSet[func(int)]
	var got []int
	a := set.Add(func(v int) { got = append(got, v) })
	set.Add(func(v int) { got = append(got, v*10) })
	assert.Equal(t, 2, set.Len())

	set.Each(func(fn func(int)) { fn(1) })
	assert.Equal(t, []int{1, 10}, got)

	a.Remove()
	a.Remove()
	assert.Equal(t, 1, set.Len())
	got = nil
	set.Each(func(fn func(int)) { fn(2) })
	assert.Equal(t, []int{20}, got)
}

func TestNewViewport(t *testing.T) {
	vp := NewViewport(800, 600, 3)
	assert.Equal(t, Viewport{Width: 800, Height: 600, SurfaceWidth: 1600, SurfaceHeight: 1200}, vp)
	assert.False(t, vp.Empty())
	assert.True(t, Viewport{}.Empty())
}
