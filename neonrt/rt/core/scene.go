package core

import "github.com/go-gl/mathgl/mgl32"

type Fog struct {
	Color   [3]float32
	Density float32
}

// PointsMaterial describes how the particle cloud is drawn. Size is in world
// units and shrinks with distance.
type PointsMaterial struct {
	Color   [3]float32
	Size    float32
	Opacity float32
	Lit     bool
}

type Scene struct {
	Fog       Fog
	Lights    []LightDesc
	Material  PointsMaterial
	Particles *ParticleSet
}

// NewNeonScene builds the fixed neon look around a particle set.
func NewNeonScene(particles *ParticleSet) *Scene {
	return &Scene{
		Fog: Fog{Color: HexColor(0x030014), Density: 0.02},
		Lights: []LightDesc{
			{
				Type:      LightTypeHemisphere,
				Color:     HexColor(0x202038),
				Ground:    HexColor(0x001020),
				Intensity: 0.6,
			},
			{
				Type:      LightTypeDirectional,
				Color:     HexColor(0xffffff),
				Intensity: 0.5,
				Position:  mgl32.Vec3{5, 10, 5},
			},
			{
				Type:      LightTypePoint,
				Color:     HexColor(0xff00ff),
				Intensity: 1.8,
				Position:  mgl32.Vec3{0, 4, 6},
				Range:     40,
			},
		},
		Material: PointsMaterial{
			Color:   HexColor(0x00f0ff),
			Size:    0.04,
			Opacity: 0.9,
		},
		Particles: particles,
	}
}

func (s *Scene) PackLights() []Light {
	out := make([]Light, len(s.Lights))
	for i, d := range s.Lights {
		out[i] = d.Pack()
	}
	return out
}
