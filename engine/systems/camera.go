package systems

import (
	"fmt"

	"github.com/spaghettifunk/skyview/engine/core"
	"github.com/spaghettifunk/skyview/engine/math"
	"github.com/spaghettifunk/skyview/engine/renderer/components"
)

type CameraSystem struct {
	Config  *CameraSystemConfig
	Cameras map[string]*components.CameraLookup
	// A default, non-registered camera that always exists as a fallback.
	DefaultCamera *components.Camera
	// Drives the default camera from pointer motion.
	Controller *components.CameraController
}

/** @brief The camera system configuration. */
type CameraSystemConfig struct {
	/**
	 * @brief NOTE: The maximum number of cameras that can be managed by
	 * the system, the default one excluded.
	 */
	MaxCameraCount uint16
	Width          uint32
	Height         uint32
	Sensitivity    float32
	PitchLimit     float32
}

func NewCameraSystem(config *CameraSystemConfig) (*CameraSystem, error) {
	if config.MaxCameraCount == 0 {
		err := fmt.Errorf("func NewCameraSystem - config.MaxCameraCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	return &CameraSystem{
		Config:        config,
		Cameras:       make(map[string]*components.CameraLookup, config.MaxCameraCount),
		DefaultCamera: components.NewCamera(config.Width, config.Height),
		Controller:    components.NewCameraController(config.Sensitivity, config.PitchLimit),
	}, nil
}

func (cs *CameraSystem) Shutdown() error {
	cs.Cameras = make(map[string]*components.CameraLookup)
	return nil
}

/**
 * @brief Acquires a camera by name, creating it on first use.
 * Internal reference counter is incremented.
 */
func (cs *CameraSystem) Acquire(name string) (*components.Camera, error) {
	if name == components.DEFAULT_CAMERA_NAME {
		return cs.DefaultCamera, nil
	}
	lookup, ok := cs.Cameras[name]
	if !ok {
		if len(cs.Cameras) >= int(cs.Config.MaxCameraCount) {
			err := fmt.Errorf("func CameraSystemAcquire failed to acquire new slot. Adjust camera system config to allow more")
			core.LogError(err.Error())
			return nil, err
		}
		core.LogDebug("Creating new camera named '%s'...", name)
		lookup = &components.CameraLookup{
			Camera: components.NewCamera(cs.Config.Width, cs.Config.Height),
		}
		cs.Cameras[name] = lookup
	}
	lookup.ReferenceCount++
	return lookup.Camera, nil
}

/**
 * @brief Releases a camera with the given name. When the reference
 * count reaches 0 the camera is dropped.
 */
func (cs *CameraSystem) Release(name string) {
	if name == components.DEFAULT_CAMERA_NAME {
		core.LogDebug("Cannot release default camera. Nothing was done.")
		return
	}
	lookup, ok := cs.Cameras[name]
	if !ok {
		core.LogWarn("CameraSystemRelease failed lookup. Nothing was done.")
		return
	}
	lookup.ReferenceCount--
	if lookup.ReferenceCount == 0 {
		delete(cs.Cameras, name)
	}
}

// Update feeds this frame's pointer motion into the controller and writes
// the orientation to the default camera. No pointer input means no change.
func (cs *CameraSystem) Update() {
	dx, dy, err := core.InputGetMouseDelta()
	if err != nil {
		return
	}
	cs.Apply(math.NewVec2(float32(dx), float32(dy)))
}

// Apply rotates the default camera by a pointer delta. Position is kept.
func (cs *CameraSystem) Apply(delta math.Vec2) {
	orientation := cs.Controller.Update(delta)
	cs.DefaultCamera.SetRotation(orientation)
}

func (cs *CameraSystem) OnResize(width, height uint32) {
	cs.DefaultCamera.Resize(width, height)
	for _, l := range cs.Cameras {
		l.Camera.Resize(width, height)
	}
}
