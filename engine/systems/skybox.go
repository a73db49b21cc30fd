package systems

import (
	"github.com/spaghettifunk/skyview/engine/core"
	"github.com/spaghettifunk/skyview/engine/renderer/metadata"
)

/** @brief The default brightness of a newly created skybox surface. */
const DEFAULT_SKYBOX_BRIGHTNESS float32 = 1.0

type SkyboxSystem struct{}

func NewSkyboxSystem() (*SkyboxSystem, error) {
	return &SkyboxSystem{}, nil
}

func (ss *SkyboxSystem) Shutdown() error {
	return nil
}

// CreateSurfaces returns count surfaces with no texture bound yet.
func (ss *SkyboxSystem) CreateSurfaces(count int, brightness float32) []metadata.SkyboxSurface {
	if count < 0 {
		count = 0
	}
	surfaces := make([]metadata.SkyboxSurface, count)
	for i := range surfaces {
		surfaces[i].Brightness = brightness
	}
	return surfaces
}

/**
 * @brief Points every surface at the given texture. Brightness is left
 * untouched. Rebinding the same handle is harmless.
 */
func (ss *SkyboxSystem) BindAll(handle metadata.AssetHandle, surfaces []metadata.SkyboxSurface) {
	for i := range surfaces {
		surfaces[i].Texture = handle
	}
	if len(surfaces) > 0 {
		core.LogDebug("bound %s to %d skybox surfaces", handle, len(surfaces))
	}
}
