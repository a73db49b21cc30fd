package metadata

import "github.com/spaghettifunk/skyview/engine/math"

/** @brief Everything the renderer needs to draw one frame. */
type RenderPacket struct {
	DeltaTime   float64
	FrameNumber uint64
	/** @brief The current view matrix. */
	View math.Mat4
	/** @brief The current projection matrix. */
	Projection math.Mat4
	/** @brief The current view position. */
	CameraPosition math.Vec3
	/** @brief The current view orientation. */
	CameraRotation math.Quaternion
	/** @brief Environment surfaces to draw behind the scene. */
	Skyboxes []SkyboxSurface
	/** @brief The texture referenced by the surfaces, nil until it is loaded. */
	Cubemap *Image
}
