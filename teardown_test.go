package neon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeardown_RunsNewestFirstOnce(t *testing.T) {
	td := NewTeardown(nil)
	var order []string
	td.Defer("a", func() { order = append(order, "a") })
	td.Defer("b", func() { order = append(order, "b") })
	td.Defer("nil", nil)
	td.Defer("c", func() { order = append(order, "c") })
	assert.Equal(t, 3, td.Len())

	td.Run()
	td.Run()
	assert.Equal(t, []string{"c", "b", "a"}, order)
	assert.True(t, td.Done())
	assert.Zero(t, td.Len())
}

func TestTeardown_PanicDoesNotStopOthers(t *testing.T) {
	td := NewTeardown(nil)
	ran := false
	td.Defer("first", func() { ran = true })
	td.Defer("boom", func() { panic("boom") })

	assert.NotPanics(t, td.Run)
	assert.True(t, ran)
}

func TestTeardown_DeferAfterRunReleasesImmediately(t *testing.T) {
	td := NewTeardown(nil)
	td.Run()

	released := false
	td.Defer("late", func() { released = true })
	assert.True(t, released)
	assert.Zero(t, td.Len())
}
