package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointerToTarget(t *testing.T) {
	tests := []struct {
		name   string
		px, py float64
		w, h   int
		wantX  float32
		wantY  float32
	}{
		{"center", 640, 360, 1280, 720, 0, 1.8},
		{"top-left", 0, 0, 1280, 720, -0.6, 2.2},
		{"bottom-right", 1280, 720, 1280, 720, 0.6, 1.4},
		{"top-right", 1920, 0, 1920, 1080, 0.6, 2.2},
		{"bottom-left", 0, 1080, 1920, 1080, -0.6, 1.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PointerToTarget(tt.px, tt.py, tt.w, tt.h)
			assert.True(t, ok)
			assert.InDelta(t, tt.wantX, got[0], 1e-6)
			assert.InDelta(t, tt.wantY, got[1], 1e-6)
		})
	}
}

func TestPointerToTarget_EmptyViewport(t *testing.T) {
	_, ok := PointerToTarget(10, 10, 0, 720)
	assert.False(t, ok)
	_, ok = PointerToTarget(10, 10, 1280, -1)
	assert.False(t, ok)
}

func TestSurfaceSize(t *testing.T) {
	w, h := SurfaceSize(1280, 720, 1)
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)

	w, h = SurfaceSize(1280, 720, 1.5)
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)

	// Capped at 2x.
	w, h = SurfaceSize(1000, 500, 3)
	assert.Equal(t, 2000, w)
	assert.Equal(t, 1000, h)

	w, h = SurfaceSize(1000, 500, 0)
	assert.Equal(t, 1000, w)
	assert.Equal(t, 500, h)
}
