package neon

import (
	"github.com/gekko3d/neon/neonrt/rt/core"
)

// FollowCameraModule eases the camera toward the pointer target and keeps it
// aimed at the field.
type FollowCameraModule struct{}

func (mod FollowCameraModule) Install(app *App, cmd *Commands) {
	cam := core.NewCameraState()
	if vp, ok := Resource[Viewport](app); ok {
		cam.SetViewport(vp.Width, vp.Height)
	}
	cmd.AddResources(cam)
	cmd.UseSystem(
		System(cameraFollowSystem).
			InStage(PostUpdate),
	)
}

func cameraFollowSystem(cam *core.CameraState, pointer *Pointer) {
	cam.Follow(pointer.Target)
	cam.PointAt(core.CameraFocus)
}
