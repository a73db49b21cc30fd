package components

import (
	"github.com/spaghettifunk/skyview/engine/math"
)

/**
 * @brief Represents a camera that can be used for
 * a variety of things, especially rendering. Orientation
 * and position live in the transform; the view matrix
 * is its inverse and is rebuilt only when needed.
 */
type Camera struct {
	/**
	 * @brief Position and orientation of this camera.
	 * NOTE: Mutate through SetPosition/SetRotation so the view matrix
	 * is recalculated when needed.
	 */
	Transform *math.Transform
	/** @brief Vertical field of view, in radians. */
	FOV float32
	/** @brief Width divided by height of the target surface. */
	AspectRatio float32
	NearClip    float32
	FarClip     float32
	/** @brief Internal flag used to determine when the view matrix needs to be rebuilt. */
	IsDirty bool

	viewMatrix       math.Mat4
	projectionMatrix math.Mat4
	projectionDirty  bool
}

type CameraLookup struct {
	ReferenceCount uint16
	Camera         *Camera
}

/** @brief The name of the default camera. */
const DEFAULT_CAMERA_NAME string = "default"

func NewCamera(width, height uint32) *Camera {
	camera := &Camera{}
	camera.Reset()
	camera.Resize(width, height)
	return camera
}

func (c *Camera) Reset() {
	c.Transform = math.TransformCreate()
	c.FOV = math.DegToRad(45.0)
	c.AspectRatio = 16.0 / 9.0
	c.NearClip = 0.1
	c.FarClip = 1000.0
	c.IsDirty = true
	c.projectionDirty = true
	c.viewMatrix = math.NewMat4Identity()
}

func (c *Camera) GetPosition() math.Vec3 {
	return c.Transform.Position
}

func (c *Camera) SetPosition(position math.Vec3) {
	c.Transform.SetPosition(position)
	c.IsDirty = true
}

func (c *Camera) GetRotation() math.Quaternion {
	return c.Transform.Rotation
}

func (c *Camera) SetRotation(rotation math.Quaternion) {
	c.Transform.SetRotation(rotation)
	c.IsDirty = true
}

func (c *Camera) GetView() math.Mat4 {
	if c.IsDirty {
		c.viewMatrix = c.Transform.GetWorld().Inverse()
		c.IsDirty = false
	}
	return c.viewMatrix
}

// Resize recomputes the aspect ratio. Zero sized surfaces (minimised
// windows) keep the previous projection.
func (c *Camera) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
	c.projectionDirty = true
}

func (c *Camera) GetProjection() math.Mat4 {
	if c.projectionDirty {
		c.projectionMatrix = math.NewMat4Perspective(c.FOV, c.AspectRatio, c.NearClip, c.FarClip)
		c.projectionDirty = false
	}
	return c.projectionMatrix
}

// Forward is the direction the camera looks at, in world space.
func (c *Camera) Forward() math.Vec3 {
	return c.Transform.Rotation.Rotate(math.NewVec3Forward())
}

func (c *Camera) Right() math.Vec3 {
	return c.Transform.Rotation.Rotate(math.NewVec3Right())
}
