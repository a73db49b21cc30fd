package components

import (
	"github.com/spaghettifunk/skyview/engine/math"
)

/** @brief Default pitch limit in degrees, short of straight up/down. */
const DEFAULT_PITCH_LIMIT float32 = 88.0

/** @brief Default degrees of rotation per unit of pointer motion. */
const DEFAULT_SENSITIVITY float32 = 0.035

/**
 * @brief Turns pointer motion into a yaw/pitch orientation.
 * Rotation.X is yaw and Rotation.Y is pitch, both in degrees.
 * Yaw is unbounded; pitch always stays within [-PitchLimit, PitchLimit].
 */
type CameraController struct {
	Sensitivity float32
	Rotation    math.Vec2
	PitchLimit  float32
}

func NewCameraController(sensitivity, pitchLimit float32) *CameraController {
	if sensitivity <= 0 {
		sensitivity = DEFAULT_SENSITIVITY
	}
	if pitchLimit <= 0 || pitchLimit > 90 {
		pitchLimit = DEFAULT_PITCH_LIMIT
	}
	return &CameraController{
		Sensitivity: sensitivity,
		Rotation:    math.NewVec2Zero(),
		PitchLimit:  pitchLimit,
	}
}

func (cc *CameraController) Yaw() float32 {
	return cc.Rotation.X
}

func (cc *CameraController) Pitch() float32 {
	return cc.Rotation.Y
}

// Update accumulates a pointer delta (screen space, y pointing down) and
// returns the resulting orientation. Non-finite deltas are ignored.
func (cc *CameraController) Update(delta math.Vec2) math.Quaternion {
	if !math.IsFinite(delta.X) || !math.IsFinite(delta.Y) {
		return cc.Orientation()
	}
	cc.Rotation.X += delta.X * cc.Sensitivity
	cc.Rotation.Y = math.Clamp(cc.Rotation.Y+delta.Y*cc.Sensitivity, -cc.PitchLimit, cc.PitchLimit)
	return cc.Orientation()
}

// Orientation applies pitch around the local right axis, then yaw around world up.
func (cc *CameraController) Orientation() math.Quaternion {
	yaw := math.NewQuatFromAxisAngle(math.NewVec3Up(), -math.DegToRad(cc.Rotation.X), false)
	pitch := math.NewQuatFromAxisAngle(math.NewVec3Right(), -math.DegToRad(cc.Rotation.Y), false)
	return yaw.Mul(pitch).Normalize()
}
