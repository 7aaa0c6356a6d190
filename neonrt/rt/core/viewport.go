package core

// MaxPixelRatio caps the surface resolution on dense displays.
const MaxPixelRatio = 2

// SurfaceSize returns the render target size for a window of the given size
// at the given content scale. Scales below 1 are treated as 1.
func SurfaceSize(width, height int, scale float32) (int, int) {
	if scale < 1 {
		scale = 1
	}
	if scale > MaxPixelRatio {
		scale = MaxPixelRatio
	}
	return int(float32(width) * scale), int(float32(height) * scale)
}
