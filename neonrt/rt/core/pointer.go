package core

import "github.com/go-gl/mathgl/mgl32"

// Where the camera aims before the first pointer event arrives.
var PointerStart = mgl32.Vec2{0, 2.1}

// PointerToTarget maps a viewport-relative pointer position to the camera's
// desired (x,y). The center maps to (0, 1.8); the x range is +-0.6 and the
// y range is 1.4..2.2 with y growing upward. ok is false for an empty
// viewport.
func PointerToTarget(px, py float64, width, height int) (target mgl32.Vec2, ok bool) {
	if width <= 0 || height <= 0 {
		return mgl32.Vec2{}, false
	}
	x := (px/float64(width) - 0.5) * 1.2
	y := (0.5-py/float64(height))*0.8 + 1.8
	return mgl32.Vec2{float32(x), float32(y)}, true
}
