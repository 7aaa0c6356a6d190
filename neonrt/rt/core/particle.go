package core

import (
	"math"
	"math/rand"
)

const (
	ParticleCount = 1400

	// Sampling half-extents of the initial field.
	FieldHalfX = 20.0
	FieldHalfY = 10.0
	FieldHalfZ = 20.0

	// Particles crossing WrapFar are recycled to WrapNear.
	WrapFar  = 40.0
	WrapNear = -40.0

	DriftBase      = 0.0006
	DriftTimeScale = 0.0001
	MaxDrift       = 2 * DriftBase
)

// ParticleStride is the instance stride in points.wgsl: one tightly packed
// vec3<f32> per particle, read straight from Positions.
const ParticleStride = 3 * 4

// ParticleSet is a fixed-length point cloud stored as a flat xyz buffer.
type ParticleSet struct {
	Positions []float32
	Dirty     bool
}

// NewParticleSet samples ParticleCount positions uniformly inside the field
// bounds: x,z in [-20,20), y in [-10,10).
func NewParticleSet(rng *rand.Rand) *ParticleSet {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	pos := make([]float32, ParticleCount*3)
	for i := 0; i < ParticleCount; i++ {
		pos[i*3] = sampleSymmetric(rng, FieldHalfX)
		pos[i*3+1] = sampleSymmetric(rng, FieldHalfY)
		pos[i*3+2] = sampleSymmetric(rng, FieldHalfZ)
	}
	return &ParticleSet{Positions: pos, Dirty: true}
}

// sampleSymmetric returns a value in [-half, half). The float32 rounding of
// a value just below half can land on half itself, so it is clamped back.
func sampleSymmetric(rng *rand.Rand, half float64) float32 {
	v := float32((rng.Float64() - 0.5) * 2 * half)
	if v >= float32(half) {
		v = math.Nextafter32(float32(half), 0)
	}
	return v
}

func (p *ParticleSet) Len() int {
	return len(p.Positions) / 3
}

func (p *ParticleSet) At(i int) [3]float32 {
	return [3]float32{p.Positions[i*3], p.Positions[i*3+1], p.Positions[i*3+2]}
}

func (p *ParticleSet) Set(i int, v [3]float32) {
	p.Positions[i*3] = v[0]
	p.Positions[i*3+1] = v[1]
	p.Positions[i*3+2] = v[2]
	p.Dirty = true
}

// DriftRate is the per-tick depth advance of particle i at timestamp t (ms).
// Always in [0, MaxDrift].
func DriftRate(t float64, i int) float64 {
	return DriftBase * (1 + math.Sin(t*DriftTimeScale+float64(i)))
}

// Drift advances every particle toward the viewer and recycles the ones that
// passed WrapFar. x and y are never touched. Returns the number of wraps.
func (p *ParticleSet) Drift(t float64) int {
	wrapped := 0
	n := p.Len()
	for i := 0; i < n; i++ {
		idx := i*3 + 2
		z := float32(float64(p.Positions[idx]) + DriftRate(t, i))
		if z > WrapFar {
			z = WrapNear
			wrapped++
		}
		p.Positions[idx] = z
	}
	p.Dirty = true
	return wrapped
}
