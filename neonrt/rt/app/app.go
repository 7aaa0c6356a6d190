package app

import (
	"fmt"

	"github.com/gekko3d/neon/neonrt/rt/core"
	"github.com/gekko3d/neon/neonrt/rt/gpu"
	"github.com/gekko3d/neon/neonrt/rt/shaders"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// App is the WebGPU side of the neon surface: one instanced billboard pass
// for the particle cloud plus an optional text overlay.
type App struct {
	Window   *glfw.Window
	Label    string
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Surface  *wgpu.Surface
	Config   *wgpu.SurfaceConfiguration

	PointsPipeline *wgpu.RenderPipeline
	BufferManager  *gpu.GpuBufferManager

	Sampler *wgpu.Sampler

	TextRenderer     *core.TextRenderer
	TextPipeline     *wgpu.RenderPipeline
	TextAtlas        *wgpu.Texture
	TextAtlasView    *wgpu.TextureView
	TextBindGroup    *wgpu.BindGroup
	TextVertexBuffer *wgpu.Buffer
	TextItems        []core.TextItem
	TextVertexCount  uint32

	Profiler  *Profiler
	DebugMode bool
	Lit       bool

	ClearColor wgpu.Color

	LastRenderTime float64
	FrameCount     int
	FPS            float64
	FPSTime        float64

	released bool
}

// NewApp clears to transparent black so whatever is behind the window shows
// through; fog only tints the particles.
func NewApp(window *glfw.Window, label string) *App {
	return &App{
		Window:     window,
		Label:      label,
		Profiler:   NewProfiler(),
		ClearColor: wgpu.Color{R: 0, G: 0, B: 0, A: 0},
	}
}

// SelectAlphaMode prefers a compositing mode that honors framebuffer alpha.
// Surfaces that only report opaque modes get the first one.
func SelectAlphaMode(modes []wgpu.CompositeAlphaMode) wgpu.CompositeAlphaMode {
	for _, want := range []wgpu.CompositeAlphaMode{
		wgpu.CompositeAlphaModePremultiplied,
		wgpu.CompositeAlphaModeUnpremultiplied,
	} {
		for _, m := range modes {
			if m == want {
				return m
			}
		}
	}
	if len(modes) == 0 {
		return wgpu.CompositeAlphaModeAuto
	}
	return modes[0]
}

// Init acquires the surface, device and pipelines. On error the caller must
// still call Release to free whatever was acquired before the failure.
func (a *App) Init(width, height int) error {
	a.Instance = wgpu.CreateInstance(nil)
	a.Surface = a.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(a.Window))

	adapter, err := a.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: a.Surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("request adapter: %w", err)
	}
	a.Adapter = adapter

	a.Device, err = adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: a.Label + " device"})
	if err != nil {
		return fmt.Errorf("request device: %w", err)
	}
	a.Queue = a.Device.GetQueue()

	caps := a.Surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return fmt.Errorf("surface reports no usable formats")
	}
	a.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(max(width, 1)),
		Height:      uint32(max(height, 1)),
		PresentMode: wgpu.PresentModeFifo, // vsync paces the tick loop
		AlphaMode:   SelectAlphaMode(caps.AlphaModes),
	}
	a.Surface.Configure(a.Adapter, a.Device, a.Config)

	if err := a.setupPointsPipeline(); err != nil {
		return err
	}

	a.Sampler, err = a.Device.CreateSampler(&wgpu.SamplerDescriptor{
		MinFilter:     wgpu.FilterModeNearest,
		MagFilter:     wgpu.FilterModeNearest,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("create sampler: %w", err)
	}

	a.BufferManager = gpu.NewGpuBufferManager(a.Device, a.Label)

	if a.DebugMode {
		a.TextRenderer = core.NewDebugTextRenderer()
		if err := a.setupTextResources(); err != nil {
			return err
		}
	}

	a.LastRenderTime = glfw.GetTime()
	return nil
}

func (a *App) setupPointsPipeline() error {
	mod, err := a.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Points VS/FS",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.PointsWGSL},
	})
	if err != nil {
		return fmt.Errorf("create points shader: %w", err)
	}
	defer mod.Release()

	a.PointsPipeline, err = a.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Points Pipeline",
		Vertex: wgpu.VertexState{
			Module:     mod,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: core.ParticleStride,
				StepMode:    wgpu.VertexStepModeInstance,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     mod,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    a.Config.Format,
				Blend:     alphaBlend(),
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create points pipeline: %w", err)
	}
	return nil
}

func alphaBlend() *wgpu.BlendState {
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
	}
}

// Resize reconfigures the swapchain. Zero sizes (minimized windows) are
// ignored.
func (a *App) Resize(w, h int) {
	if a.released || a.Config == nil || w <= 0 || h <= 0 {
		return
	}
	a.Config.Width = uint32(w)
	a.Config.Height = uint32(h)
	a.Surface.Configure(a.Adapter, a.Device, a.Config)
}

// Update uploads camera, lights and (when dirty) particle positions.
func (a *App) Update(scene *core.Scene, cam *core.CameraState) error {
	a.Profiler.BeginScope("update")
	defer a.Profiler.EndScope("update")

	bm := a.BufferManager
	if err := bm.UpdateCamera(cam, scene, a.Config.Width, a.Config.Height, a.Lit); err != nil {
		return err
	}
	if err := bm.UpdateLights(scene); err != nil {
		return err
	}
	if _, err := bm.UpdateParticles(scene.Particles); err != nil {
		return err
	}
	// Camera and light buffers are fixed-size, so the bind group only needs
	// building once.
	if bm.BindGroup0 == nil {
		if err := bm.CreateBindGroups(a.PointsPipeline); err != nil {
			return err
		}
	}
	a.Profiler.SetCount("points", int(bm.ParticleCount))

	if a.DebugMode && a.TextRenderer != nil {
		a.ClearText()
		a.DrawText(fmt.Sprintf("Renderer FPS: %.1f\n%s", a.FPS, a.Profiler.GetStatsString()), 10, 10, 1.0, [4]float32{1, 1, 0, 1})
		if err := a.uploadText(); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) uploadText() error {
	vertices := a.TextRenderer.BuildVertices(a.TextItems, int(a.Config.Width), int(a.Config.Height))
	a.TextVertexCount = uint32(len(vertices))
	if len(vertices) == 0 {
		return nil
	}
	data := wgpu.ToBytes(vertices)
	size := uint64(len(data))
	if a.TextVertexBuffer == nil || a.TextVertexBuffer.GetSize() < size {
		if a.TextVertexBuffer != nil {
			a.TextVertexBuffer.Release()
		}
		var err error
		a.TextVertexBuffer, err = a.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: a.Label + " Text VB",
			Size:  size,
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			a.TextVertexCount = 0
			return fmt.Errorf("create text vertex buffer: %w", err)
		}
	}
	return a.Queue.WriteBuffer(a.TextVertexBuffer, 0, data)
}

func (a *App) ClearText() {
	a.TextItems = a.TextItems[:0]
	a.TextVertexCount = 0
}

func (a *App) DrawText(text string, x, y float32, scale float32, color [4]float32) {
	a.TextItems = append(a.TextItems, core.TextItem{
		Text:     text,
		Position: [2]float32{x, y},
		Scale:    scale,
		Color:    color,
	})
}

// Render draws one frame and presents it.
func (a *App) Render() error {
	if a.released {
		return nil
	}
	a.Profiler.BeginScope("render")
	defer a.Profiler.EndScope("render")

	nextTexture, err := a.Surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("get current texture: %w", err)
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create view: %w", err)
	}
	defer view.Release()

	encoder, err := a.Device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	rPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: a.ClearColor,
		}},
	})

	bm := a.BufferManager
	if bm.BindGroup0 != nil && bm.ParticlesBuf != nil && bm.ParticleCount > 0 {
		rPass.SetPipeline(a.PointsPipeline)
		rPass.SetBindGroup(0, bm.BindGroup0, nil)
		rPass.SetVertexBuffer(0, bm.ParticlesBuf, 0, bm.ParticlesBuf.GetSize())
		rPass.Draw(6, bm.ParticleCount, 0, 0)
	}

	if a.TextVertexCount > 0 && a.TextVertexBuffer != nil && a.TextPipeline != nil {
		rPass.SetPipeline(a.TextPipeline)
		rPass.SetBindGroup(0, a.TextBindGroup, nil)
		rPass.SetVertexBuffer(0, a.TextVertexBuffer, 0, a.TextVertexBuffer.GetSize())
		rPass.Draw(a.TextVertexCount, 1, 0, 0)
	}

	if err := rPass.End(); err != nil {
		return fmt.Errorf("render pass end: %w", err)
	}
	rPass.Release()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("encoder finish: %w", err)
	}
	defer cmd.Release()
	a.Queue.Submit(cmd)
	a.Surface.Present()

	now := glfw.GetTime()
	a.FrameCount++
	a.FPSTime += now - a.LastRenderTime
	if a.FPSTime >= 1.0 {
		a.FPS = float64(a.FrameCount) / a.FPSTime
		a.FrameCount = 0
		a.FPSTime = 0
	}
	a.LastRenderTime = now
	return nil
}

// Release frees every GPU object in reverse acquisition order. It tolerates
// partially initialized apps and repeated calls.
func (a *App) Release() {
	if a.released {
		return
	}
	a.released = true

	if a.TextVertexBuffer != nil {
		a.TextVertexBuffer.Release()
		a.TextVertexBuffer = nil
	}
	if a.TextBindGroup != nil {
		a.TextBindGroup.Release()
		a.TextBindGroup = nil
	}
	if a.TextPipeline != nil {
		a.TextPipeline.Release()
		a.TextPipeline = nil
	}
	if a.TextAtlasView != nil {
		a.TextAtlasView.Release()
		a.TextAtlasView = nil
	}
	if a.TextAtlas != nil {
		a.TextAtlas.Release()
		a.TextAtlas = nil
	}
	if a.BufferManager != nil {
		a.BufferManager.Release()
	}
	if a.Sampler != nil {
		a.Sampler.Release()
		a.Sampler = nil
	}
	if a.PointsPipeline != nil {
		a.PointsPipeline.Release()
		a.PointsPipeline = nil
	}
	if a.Queue != nil {
		a.Queue.Release()
		a.Queue = nil
	}
	if a.Device != nil {
		a.Device.Release()
		a.Device = nil
	}
	if a.Adapter != nil {
		a.Adapter.Release()
		a.Adapter = nil
	}
	if a.Surface != nil {
		a.Surface.Release()
		a.Surface = nil
	}
	if a.Instance != nil {
		a.Instance.Release()
		a.Instance = nil
	}
}

func (a *App) setupTextResources() error {
	tr := a.TextRenderer
	w, h := tr.AtlasImage.Bounds().Dx(), tr.AtlasImage.Bounds().Dy()
	var err error
	a.TextAtlas, err = a.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         a.Label + " Text Atlas",
		Size:          wgpu.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
		Format:        wgpu.TextureFormatR8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return fmt.Errorf("create text atlas: %w", err)
	}
	err = a.Queue.WriteTexture(a.TextAtlas.AsImageCopy(), tr.AtlasImage.Pix, &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(tr.AtlasImage.Stride),
		RowsPerImage: uint32(h),
	}, &wgpu.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1})
	if err != nil {
		return fmt.Errorf("upload text atlas: %w", err)
	}

	a.TextAtlasView, err = a.TextAtlas.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create text atlas view: %w", err)
	}

	textMod, err := a.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Text Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.TextWGSL},
	})
	if err != nil {
		return fmt.Errorf("create text shader: %w", err)
	}
	defer textMod.Release()

	a.TextPipeline, err = a.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Text Pipeline",
		Vertex: wgpu.VertexState{
			Module:     textMod,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: 32, // core.TextVertex: pos, uv, color
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
					{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     textMod,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    a.Config.Format,
				Blend:     alphaBlend(),
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create text pipeline: %w", err)
	}

	layout := a.TextPipeline.GetBindGroupLayout(0)
	defer layout.Release()
	a.TextBindGroup, err = a.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: a.TextAtlasView},
			{Binding: 1, Sampler: a.Sampler},
		},
	})
	if err != nil {
		return fmt.Errorf("create text bind group: %w", err)
	}
	return nil
}
