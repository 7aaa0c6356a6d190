package gpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gekko3d/neon/neonrt/rt/core"

	"github.com/cogentcore/webgpu/wgpu"
)

const (
	CameraDataSize = 256
	MaxLights      = 4
	LightSize      = 64
	LightsDataSize = MaxLights * LightSize
)

// GpuBufferManager owns every buffer the points pass reads.
type GpuBufferManager struct {
	Device *wgpu.Device
	Label  string

	CameraBuf    *wgpu.Buffer
	LightsBuf    *wgpu.Buffer
	ParticlesBuf *wgpu.Buffer

	BindGroup0 *wgpu.BindGroup

	ParticleCount uint32
}

func NewGpuBufferManager(device *wgpu.Device, label string) *GpuBufferManager {
	return &GpuBufferManager{
		Device: device,
		Label:  label,
	}
}

func (m *GpuBufferManager) label(name string) string {
	if m.Label == "" {
		return name
	}
	return m.Label + " " + name
}

// ensureBuffer grows buf to fit data and uploads it. Returns true when the
// buffer was recreated, which invalidates bind groups referencing it.
func (m *GpuBufferManager) ensureBuffer(name string, buf **wgpu.Buffer, data []byte, usage wgpu.BufferUsage) (bool, error) {
	neededSize := uint64(len(data))
	if neededSize%4 != 0 {
		neededSize += 4 - (neededSize % 4)
	}
	if neededSize == 0 {
		neededSize = 4
	}

	recreated := false
	current := *buf
	if current == nil || current.GetSize() < neededSize {
		if current != nil {
			current.Release()
		}
		newBuf, err := m.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            m.label(name),
			Size:             neededSize,
			Usage:            usage | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			*buf = nil
			return false, fmt.Errorf("create %s buffer: %w", name, err)
		}
		*buf = newBuf
		recreated = true
	}

	if len(data) > 0 {
		if err := m.Device.GetQueue().WriteBuffer(*buf, 0, data); err != nil {
			return recreated, fmt.Errorf("write %s buffer: %w", name, err)
		}
	}
	return recreated, nil
}

func (m *GpuBufferManager) UpdateCamera(cam *core.CameraState, scene *core.Scene, width, height uint32, lit bool) error {
	data := PackCameraData(cam, scene, width, height, lit)
	_, err := m.ensureBuffer("CameraUB", &m.CameraBuf, data, wgpu.BufferUsageUniform)
	return err
}

func (m *GpuBufferManager) UpdateLights(scene *core.Scene) error {
	_, err := m.ensureBuffer("LightsUB", &m.LightsBuf, PackLights(scene.PackLights()), wgpu.BufferUsageUniform)
	return err
}

// UpdateParticles uploads positions only when the set is dirty and clears
// the flag. Returns true when the buffer was recreated.
func (m *GpuBufferManager) UpdateParticles(ps *core.ParticleSet) (bool, error) {
	if ps == nil {
		return false, nil
	}
	if !ps.Dirty && m.ParticlesBuf != nil {
		return false, nil
	}
	recreated, err := m.ensureBuffer("ParticlesVB", &m.ParticlesBuf, wgpu.ToBytes(ps.Positions), wgpu.BufferUsageVertex)
	if err != nil {
		return recreated, err
	}
	m.ParticleCount = uint32(ps.Len())
	ps.Dirty = false
	return recreated, nil
}

func (m *GpuBufferManager) CreateBindGroups(pipeline *wgpu.RenderPipeline) error {
	if m.CameraBuf == nil || m.LightsBuf == nil {
		return fmt.Errorf("bind groups need camera and lights buffers")
	}
	layout := pipeline.GetBindGroupLayout(0)
	defer layout.Release()

	if m.BindGroup0 != nil {
		m.BindGroup0.Release()
		m.BindGroup0 = nil
	}

	bg, err := m.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  m.label("Points BG0"),
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: m.CameraBuf, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: m.LightsBuf, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return fmt.Errorf("create points bind group: %w", err)
	}
	m.BindGroup0 = bg
	return nil
}

// Release frees every buffer. Safe to call more than once.
func (m *GpuBufferManager) Release() {
	if m.BindGroup0 != nil {
		m.BindGroup0.Release()
		m.BindGroup0 = nil
	}
	for _, buf := range []**wgpu.Buffer{&m.CameraBuf, &m.LightsBuf, &m.ParticlesBuf} {
		if *buf != nil {
			(*buf).Release()
			*buf = nil
		}
	}
	m.ParticleCount = 0
}

// PackCameraData lays out CameraData from points.wgsl:
//
//	view_proj   mat4  0
//	view        mat4  64
//	cam_pos     vec4  128
//	fog         vec4  144  rgb, density
//	point_color vec4  160  rgb, opacity
//	params      vec4  176  size, lit, viewport w, viewport h
//	counts      uvec4 192  light count
func PackCameraData(cam *core.CameraState, scene *core.Scene, width, height uint32, lit bool) []byte {
	buf := make([]byte, CameraDataSize)

	copy(buf[0:], mat4ToBytes(cam.GetViewProjection()))
	copy(buf[64:], mat4ToBytes(cam.GetViewMatrix()))
	copy(buf[128:], vec3ToBytesPadded(cam.Position))

	fog := scene.Fog
	copy(buf[144:], vec4ToBytes([4]float32{fog.Color[0], fog.Color[1], fog.Color[2], fog.Density}))

	mat := scene.Material
	copy(buf[160:], vec4ToBytes([4]float32{mat.Color[0], mat.Color[1], mat.Color[2], mat.Opacity}))

	litVal := float32(0)
	if lit || mat.Lit {
		litVal = 1
	}
	copy(buf[176:], vec4ToBytes([4]float32{mat.Size, litVal, float32(width), float32(height)}))

	lights := len(scene.Lights)
	if lights > MaxLights {
		lights = MaxLights
	}
	binary.LittleEndian.PutUint32(buf[192:], uint32(lights))

	return buf
}

// PackLights fills the fixed-size lights array; extra lights are dropped.
func PackLights(lights []core.Light) []byte {
	buf := make([]byte, LightsDataSize)
	for i, l := range lights {
		if i >= MaxLights {
			break
		}
		off := i * LightSize
		copy(buf[off:], vec4ToBytes(l.Position))
		copy(buf[off+16:], vec4ToBytes(l.Direction))
		copy(buf[off+32:], vec4ToBytes(l.Color))
		copy(buf[off+48:], vec4ToBytes(l.Params))
	}
	return buf
}

// Helpers
func mat4ToBytes(m [16]float32) []byte {
	buf := make([]byte, 64)
	for i, v := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func vec3ToBytesPadded(v [3]float32) []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v[2]))
	return buf
}

func vec4ToBytes(v [4]float32) []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v[3]))
	return buf
}
