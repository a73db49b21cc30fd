package renderer

import "github.com/spaghettifunk/skyview/engine/renderer/metadata"

// RendererBackend is implemented by the graphics API specific renderers.
type RendererBackend interface {
	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error
	Resized(width, height uint32) error
	BeginFrame(deltaTime float64) error
	EndFrame(deltaTime float64) error
	// TextureCreate uploads the pixels according to the image descriptor,
	// replacing any previous upload under the same handle.
	TextureCreate(handle metadata.AssetHandle, image *metadata.Image) error
	TextureDestroy(handle metadata.AssetHandle)
	DrawSkybox(view *metadata.RenderPacket, surface metadata.SkyboxSurface) error
}
