package neon

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/neon/neonrt/rt/core"
)

type InputModule struct {
	Viewport Viewport
}

// Pointer holds the camera target derived from the latest pointer position.
// Moves between two ticks collapse to the last one.
type Pointer struct {
	Target mgl32.Vec2
	X, Y   float64
	Moves  uint64
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	vp := mod.Viewport
	cmd.AddResources(
		&Pointer{Target: core.PointerStart},
		&vp,
	)
}

// Move maps a pointer position in window units to a camera target. Moves
// over an empty viewport are dropped.
func (p *Pointer) Move(x, y float64, vp Viewport) bool {
	target, ok := core.PointerToTarget(x, y, vp.Width, vp.Height)
	if !ok {
		return false
	}
	p.X, p.Y = x, y
	p.Target = target
	p.Moves++
	return true
}
