package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexColor(t *testing.T) {
	assert.Equal(t, [3]float32{1, 0, 1}, HexColor(0xff00ff))
	c := HexColor(0x00f0ff)
	assert.Equal(t, float32(0), c[0])
	assert.InDelta(t, 240.0/255.0, c[1], 1e-6)
	assert.Equal(t, float32(1), c[2])
}

func TestNewNeonScene(t *testing.T) {
	ps := NewParticleSet(rand.New(rand.NewSource(1)))
	s := NewNeonScene(ps)

	assert.Same(t, ps, s.Particles)
	assert.Equal(t, float32(0.02), s.Fog.Density)
	assert.Equal(t, float32(0.04), s.Material.Size)
	assert.Equal(t, float32(0.9), s.Material.Opacity)
	assert.False(t, s.Material.Lit, "points are unlit by default")

	require.Len(t, s.Lights, 3)
	kinds := map[LightType]bool{}
	for _, l := range s.Lights {
		kinds[l.Type] = true
	}
	assert.True(t, kinds[LightTypeHemisphere])
	assert.True(t, kinds[LightTypeDirectional])
	assert.True(t, kinds[LightTypePoint])
}

func TestLightDescPack(t *testing.T) {
	ps := NewParticleSet(rand.New(rand.NewSource(1)))
	lights := NewNeonScene(ps).PackLights()
	require.Len(t, lights, 3)

	for _, l := range lights {
		switch LightType(l.Params[1]) {
		case LightTypeHemisphere:
			assert.Equal(t, float32(0.6), l.Color[3])
			assert.InDelta(t, 0x10/255.0, l.Direction[1], 1e-6, "ground color rides in Direction")
		case LightTypeDirectional:
			dir := [3]float32{l.Direction[0], l.Direction[1], l.Direction[2]}
			lenSq := dir[0]*dir[0] + dir[1]*dir[1] + dir[2]*dir[2]
			assert.InDelta(t, 1, lenSq, 1e-5)
			assert.Equal(t, float32(0.5), l.Color[3])
		case LightTypePoint:
			assert.Equal(t, float32(40), l.Params[0])
			assert.Equal(t, [4]float32{0, 4, 6, 0}, l.Position)
			assert.Equal(t, float32(1.8), l.Color[3])
		default:
			t.Fatalf("unexpected light type %v", l.Params[1])
		}
	}
}

func TestTextRenderer_BuildVertices(t *testing.T) {
	tr := NewDebugTextRenderer()
	require.NotEmpty(t, tr.Glyphs)
	_, ok := tr.Glyphs['A']
	require.True(t, ok)

	items := []TextItem{{Text: "FPS 60", Position: [2]float32{10, 10}, Scale: 1, Color: [4]float32{1, 1, 0, 1}}}
	verts := tr.BuildVertices(items, 800, 600)

	// Space has a glyph in the bitmap face too; every rune emits 6 vertices.
	assert.Len(t, verts, 6*len("FPS 60"))
	for _, v := range verts {
		assert.True(t, v.Pos[0] >= -1 && v.Pos[0] <= 1, "x %v off screen", v.Pos[0])
		assert.True(t, v.Pos[1] >= -1 && v.Pos[1] <= 1, "y %v off screen", v.Pos[1])
		assert.True(t, v.UV[0] >= 0 && v.UV[0] <= 1)
	}

	assert.Nil(t, tr.BuildVertices(items, 0, 600))
	assert.Greater(t, tr.GetLineHeight(1), float32(0))
}
