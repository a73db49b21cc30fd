package systems

import "github.com/spaghettifunk/skyview/engine/core"

type SystemManagerConfig struct {
	Camera CameraSystemConfig
}

type SystemManager struct {
	jobSystem     *JobSystem
	cameraSystem  *CameraSystem
	cubemapSystem *CubemapSystem
	skyboxSystem  *SkyboxSystem
}

func NewSystemManager(config *SystemManagerConfig, jobs *JobSystem, store ImageStore) (*SystemManager, error) {
	cs, err := NewCameraSystem(&config.Camera)
	if err != nil {
		return nil, err
	}
	cms, err := NewCubemapSystem(store)
	if err != nil {
		return nil, err
	}
	ss, err := NewSkyboxSystem()
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		jobSystem:     jobs,
		cameraSystem:  cs,
		cubemapSystem: cms,
		skyboxSystem:  ss,
	}, nil
}

func (sm *SystemManager) JobSystem() *JobSystem         { return sm.jobSystem }
func (sm *SystemManager) CameraSystem() *CameraSystem   { return sm.cameraSystem }
func (sm *SystemManager) CubemapSystem() *CubemapSystem { return sm.cubemapSystem }
func (sm *SystemManager) SkyboxSystem() *SkyboxSystem   { return sm.skyboxSystem }

func (sm *SystemManager) Shutdown() error {
	if err := sm.skyboxSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.cubemapSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.cameraSystem.Shutdown(); err != nil {
		return err
	}
	if sm.jobSystem != nil {
		if err := sm.jobSystem.Shutdown(); err != nil {
			return err
		}
	}
	core.LogDebug("systems shut down")
	return nil
}
