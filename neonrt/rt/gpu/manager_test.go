package gpu

import (
	"encoding/binary"
	"math"
	"math/rand"
	"testing"

	"github.com/gekko3d/neon/neonrt/rt/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f32At(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func TestPackCameraData_Layout(t *testing.T) {
	scene := core.NewNeonScene(core.NewParticleSet(rand.New(rand.NewSource(1))))
	cam := core.NewCameraState()
	cam.SetViewport(1280, 720)

	buf := PackCameraData(cam, scene, 2560, 1440, false)
	require.Len(t, buf, CameraDataSize)

	vp := cam.GetViewProjection()
	for i := 0; i < 16; i++ {
		assert.Equal(t, vp[i], f32At(buf, i*4), "view_proj[%d]", i)
	}
	view := cam.GetViewMatrix()
	assert.Equal(t, view[12], f32At(buf, 64+12*4))

	assert.Equal(t, cam.Position[1], f32At(buf, 132))
	assert.Equal(t, float32(0.02), f32At(buf, 156), "fog density")
	assert.Equal(t, float32(0.9), f32At(buf, 172), "opacity")
	assert.Equal(t, float32(0.04), f32At(buf, 176), "size")
	assert.Equal(t, float32(0), f32At(buf, 180), "unlit")
	assert.Equal(t, float32(2560), f32At(buf, 184))
	assert.Equal(t, float32(1440), f32At(buf, 188))
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(buf[192:]))

	lit := PackCameraData(cam, scene, 2560, 1440, true)
	assert.Equal(t, float32(1), f32At(lit, 180))
}

func TestPackLights(t *testing.T) {
	scene := core.NewNeonScene(core.NewParticleSet(rand.New(rand.NewSource(1))))
	buf := PackLights(scene.PackLights())
	require.Len(t, buf, LightsDataSize)

	// Third light is the neon point light at (0,4,6) with range 40.
	off := 2 * LightSize
	assert.Equal(t, float32(4), f32At(buf, off+4))
	assert.Equal(t, float32(6), f32At(buf, off+8))
	assert.Equal(t, float32(1.8), f32At(buf, off+32+12))
	assert.Equal(t, float32(40), f32At(buf, off+48))

	// Unused slots stay zero.
	for _, b := range buf[3*LightSize:] {
		require.Zero(t, b)
	}
}

func TestPackLights_DropsOverflow(t *testing.T) {
	lights := make([]core.Light, MaxLights+2)
	for i := range lights {
		lights[i].Params[0] = float32(i + 1)
	}
	buf := PackLights(lights)
	require.Len(t, buf, LightsDataSize)
	assert.Equal(t, float32(MaxLights), f32At(buf, (MaxLights-1)*LightSize+48))
}

func TestUpdateParticles_NilSet(t *testing.T) {
	m := NewGpuBufferManager(nil, "test")
	recreated, err := m.UpdateParticles(nil)
	assert.NoError(t, err)
	assert.False(t, recreated)
}

func TestRelease_Idempotent(t *testing.T) {
	m := NewGpuBufferManager(nil, "test")
	m.Release()
	m.Release()
	assert.Nil(t, m.CameraBuf)
	assert.Zero(t, m.ParticleCount)
}
