package viewer

import (
	"github.com/spaghettifunk/skyview/engine"
	"github.com/spaghettifunk/skyview/engine/assets"
	"github.com/spaghettifunk/skyview/engine/core"
	"github.com/spaghettifunk/skyview/engine/renderer/components"
	"github.com/spaghettifunk/skyview/engine/renderer/metadata"
	"github.com/spaghettifunk/skyview/engine/systems"
)

type SkyviewGame struct {
	*engine.Game
}

type gameState struct {
	WorldCamera *components.Camera

	width  uint32
	height uint32

	cubemap  *metadata.CubemapState
	surfaces []metadata.SkyboxSurface
}

func NewSkyviewGame(config *engine.ApplicationConfig) *SkyviewGame {
	sg := &SkyviewGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{},
		},
	}

	sg.FnBoot = sg.Boot
	sg.FnInitialize = sg.Initialize
	sg.FnUpdate = sg.Update
	sg.FnRender = sg.Render
	sg.FnOnResize = sg.OnResize
	sg.FnShutdown = sg.Shutdown

	return sg
}

func (g *SkyviewGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *SkyviewGame) Boot() error {
	core.LogInfo("booting skyview...")
	return nil
}

func (g *SkyviewGame) Initialize() error {
	state := g.state()
	config := g.ApplicationConfig.Viewer

	camera, err := g.SystemManager.CameraSystem().Acquire(components.DEFAULT_CAMERA_NAME)
	if err != nil {
		return err
	}
	state.WorldCamera = camera

	core.EventRegister(assets.EVENT_CODE_ASSET_LOADED, g.onAssetLoaded)
	core.EventRegister(assets.EVENT_CODE_ASSET_FAILED, g.onAssetFailed)

	handle, err := g.AssetManager.Load(config.SheetPath)
	if err != nil {
		// a failed load leaves the skybox unset, the viewer keeps running
		core.LogError("could not queue sprite sheet %s: %s", config.SheetPath, err)
	}
	state.cubemap = metadata.NewCubemapState(handle)
	state.surfaces = g.SystemManager.SkyboxSystem().CreateSurfaces(config.SurfaceCount, config.SkyboxBrightness)

	core.EventRegister(systems.EVENT_CODE_CUBEMAP_READY, g.onCubemapReady)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, g.onKey)
	return nil
}

func (g *SkyviewGame) Update(deltaTime float64) error {
	state := g.state()

	ready, err := g.SystemManager.CubemapSystem().Update(state.cubemap)
	switch {
	case err != nil:
		// already reported, the sheet stays flat
	case ready:
		g.SystemManager.SkyboxSystem().BindAll(state.cubemap.Handle, state.surfaces)
	}

	g.SystemManager.CameraSystem().Update()
	return nil
}

func (g *SkyviewGame) Render(packet *metadata.RenderPacket, deltaTime float64) error {
	state := g.state()

	packet.View = state.WorldCamera.GetView()
	packet.Projection = state.WorldCamera.GetProjection()
	packet.CameraPosition = state.WorldCamera.GetPosition()
	packet.CameraRotation = state.WorldCamera.GetRotation()
	packet.Skyboxes = state.surfaces

	if state.cubemap.Reinterpreted {
		if img, ok := g.AssetManager.Get(state.cubemap.Handle); ok && img.Descriptor.ViewDimension == metadata.TextureViewDimensionCube {
			packet.Cubemap = img
		}
	}
	return nil
}

func (g *SkyviewGame) OnResize(width uint32, height uint32) error {
	state := g.state()
	state.width = width
	state.height = height
	return nil
}

func (g *SkyviewGame) Shutdown() error {
	core.LogInfo("shutting down skyview...")
	g.SystemManager.CameraSystem().Release(components.DEFAULT_CAMERA_NAME)
	return nil
}

func (g *SkyviewGame) isSheet(handle metadata.AssetHandle) bool {
	state := g.state()
	return state.cubemap != nil && state.cubemap.Handle == handle
}

func (g *SkyviewGame) onAssetLoaded(context core.EventContext) bool {
	e, ok := context.Data.(*assets.AssetEvent)
	if !ok || !g.isSheet(e.Handle) {
		return false
	}
	core.LogDebug("sprite sheet %s decoded", e.Handle.Path)
	return false
}

func (g *SkyviewGame) onAssetFailed(context core.EventContext) bool {
	e, ok := context.Data.(*assets.AssetEvent)
	if !ok || !g.isSheet(e.Handle) {
		return false
	}
	core.LogError("sprite sheet %s unavailable, the skybox stays unset: %s", e.Handle.Path, g.AssetManager.LoadError(e.Handle))
	return true
}

func (g *SkyviewGame) onCubemapReady(context core.EventContext) bool {
	if e, ok := context.Data.(*systems.CubemapReadyEvent); ok {
		core.LogInfo("skybox ready with %d faces", e.Layers)
	}
	return false
}

func (g *SkyviewGame) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok || ke.KeyCode != core.KEY_F1 {
		return false
	}
	state := g.state()
	controller := g.SystemManager.CameraSystem().Controller
	pos := state.WorldCamera.GetPosition()
	core.LogInfo("camera pos: [%.3f, %.3f, %.3f] yaw: %.2f pitch: %.2f, cubemap %s (reinterpreted=%t)",
		pos.X, pos.Y, pos.Z, controller.Yaw(), controller.Pitch(), state.cubemap.Handle, state.cubemap.Reinterpreted)
	return true
}
