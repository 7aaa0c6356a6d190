package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	FollowRate = 0.03

	CameraFovDeg = 60
	CameraNear   = 0.1
	CameraFar    = 200
)

var (
	CameraStart = mgl32.Vec3{0, 2.2, 6}
	CameraFocus = mgl32.Vec3{0, 1.4, 0}
	CameraUp    = mgl32.Vec3{0, 1, 0}
)

// CameraState is a perspective camera that eases toward a pointer target
// while always looking at a fixed focus point.
type CameraState struct {
	Position mgl32.Vec3
	LookAt   mgl32.Vec3
	Up       mgl32.Vec3
	FovDeg   float32
	Aspect   float32
	Near     float32
	Far      float32
}

func NewCameraState() *CameraState {
	return &CameraState{
		Position: CameraStart,
		LookAt:   CameraFocus,
		Up:       CameraUp,
		FovDeg:   CameraFovDeg,
		Aspect:   1,
		Near:     CameraNear,
		Far:      CameraFar,
	}
}

// Follow moves x and y a fixed fraction of the way toward target. The rate is
// applied per call, not per second, so the easing speed tracks refresh rate.
func (c *CameraState) Follow(target mgl32.Vec2) {
	c.Position[0] += (target[0] - c.Position[0]) * FollowRate
	c.Position[1] += (target[1] - c.Position[1]) * FollowRate
}

func (c *CameraState) PointAt(focus mgl32.Vec3) {
	c.LookAt = focus
}

// SetViewport updates the aspect ratio. Zero sizes are ignored.
func (c *CameraState) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

func (c *CameraState) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.LookAt, c.Up)
}

func (c *CameraState) GetProjectionMatrix() mgl32.Mat4 {
	aspect := c.Aspect
	if aspect == 0 {
		aspect = 1.0
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovDeg), aspect, c.Near, c.Far)
}

func (c *CameraState) GetViewProjection() mgl32.Mat4 {
	return c.GetProjectionMatrix().Mul4(c.GetViewMatrix())
}
