package core

import "github.com/go-gl/mathgl/mgl32"

type LightType uint32

const (
	LightTypePoint       LightType = 0
	LightTypeDirectional LightType = 1
	LightTypeHemisphere  LightType = 2
)

// Light is the GPU representation of a light.
type Light struct {
	Position  [4]float32 // xyz, w unused
	Direction [4]float32 // xyz toward the light, w unused
	Color     [4]float32 // rgb, intensity
	Params    [4]float32 // range, type, unused, unused
}

// LightDesc is the scene-side description a Light is packed from.
// Hemisphere lights use Color for the sky and Ground for the ground color.
type LightDesc struct {
	Type      LightType
	Color     [3]float32
	Ground    [3]float32
	Intensity float32
	Position  mgl32.Vec3
	Range     float32
}

func (d LightDesc) Pack() Light {
	l := Light{
		Position: [4]float32{d.Position[0], d.Position[1], d.Position[2], 0},
		Color:    [4]float32{d.Color[0], d.Color[1], d.Color[2], d.Intensity},
		Params:   [4]float32{d.Range, float32(d.Type), 0, 0},
	}
	switch d.Type {
	case LightTypeDirectional:
		dir := d.Position
		if dir.Len() > 0 {
			dir = dir.Normalize()
		}
		l.Direction = [4]float32{dir[0], dir[1], dir[2], 0}
	case LightTypeHemisphere:
		// Direction carries the ground color; sky stays in Color.
		l.Direction = [4]float32{d.Ground[0], d.Ground[1], d.Ground[2], 0}
	}
	return l
}

// HexColor converts 0xRRGGBB to linear-ish [0,1] rgb.
func HexColor(hex uint32) [3]float32 {
	return [3]float32{
		float32((hex>>16)&0xff) / 255.0,
		float32((hex>>8)&0xff) / 255.0,
		float32(hex&0xff) / 255.0,
	}
}
