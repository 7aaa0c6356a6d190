package neon

import (
	"context"
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// PlatformWindow describes the native window a surface is mounted into.
type PlatformWindow struct {
	Width      int
	Height     int
	Title      string
	Fullscreen bool
}

// NewPlatformWindow fills in defaults for zero width, height or title.
func NewPlatformWindow(width, height int, title string) *PlatformWindow {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "Neon"
	}
	return &PlatformWindow{
		Width:  width,
		Height: height,
		Title:  title,
	}
}

// WindowState is a GLFW window acting as a Host. It must be created, driven
// and closed on the main OS thread.
type WindowState struct {
	windowGlfw  *glfw.Window
	windowTitle string
	viewport    Viewport

	frames  *FrameQueue
	pointer ListenerSet[func(x, y float64)]
	resize  ListenerSet[func(vp Viewport)]
	closed  bool
}

// Open initializes GLFW and creates the window. Fullscreen covers the primary
// monitor with an undecorated window.
func (p *PlatformWindow) Open() (*WindowState, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // WebGPU owns the surface
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.TransparentFramebuffer, glfw.True)

	width, height := p.Width, p.Height
	if p.Fullscreen {
		if mode := glfw.GetPrimaryMonitor().GetVideoMode(); mode != nil {
			width, height = mode.Width, mode.Height
		}
		glfw.WindowHint(glfw.Decorated, glfw.False)
	}

	win, err := glfw.CreateWindow(width, height, p.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	if p.Fullscreen {
		win.SetPos(0, 0)
	}

	ws := &WindowState{
		windowGlfw:  win,
		windowTitle: p.Title,
		frames:      NewFrameQueue(),
	}
	ws.viewport = ws.measure()

	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		ws.pointer.Each(func(fn func(x, y float64)) { fn(x, y) })
	})
	win.SetSizeCallback(func(_ *glfw.Window, _, _ int) {
		ws.notifyResize()
	})
	win.SetContentScaleCallback(func(_ *glfw.Window, _, _ float32) {
		ws.notifyResize()
	})
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})
	return ws, nil
}

func (ws *WindowState) measure() Viewport {
	w, h := ws.windowGlfw.GetSize()
	scale, _ := ws.windowGlfw.GetContentScale()
	return NewViewport(w, h, scale)
}

func (ws *WindowState) notifyResize() {
	ws.viewport = ws.measure()
	vp := ws.viewport
	ws.resize.Each(func(fn func(vp Viewport)) { fn(vp) })
}

func (ws *WindowState) Frames() FrameScheduler { return ws.frames }
func (ws *WindowState) Viewport() Viewport     { return ws.viewport }

func (ws *WindowState) OnPointerMove(fn func(x, y float64)) Listener {
	return ws.pointer.Add(fn)
}

func (ws *WindowState) OnResize(fn func(vp Viewport)) Listener {
	return ws.resize.Add(fn)
}

func (ws *WindowState) GlfwWindow() *glfw.Window {
	return ws.windowGlfw
}

// Run pumps window events and dispatches one frame per iteration until the
// window closes, ctx is done or nothing is scheduled anymore.
func (ws *WindowState) Run(ctx context.Context) error {
	for !ws.closed && !ws.windowGlfw.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}
		glfw.PollEvents()
		ws.frames.Dispatch(glfw.GetTime() * 1000)
		if ws.frames.Pending() == 0 {
			return nil
		}
	}
	return nil
}

// Close destroys the window and terminates GLFW. Later calls do nothing.
func (ws *WindowState) Close() {
	if ws.closed {
		return
	}
	ws.closed = true
	ws.windowGlfw.Destroy()
	glfw.Terminate()
}
