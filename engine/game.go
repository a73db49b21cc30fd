package engine

import (
	"github.com/spaghettifunk/skyview/engine/assets"
	"github.com/spaghettifunk/skyview/engine/renderer/metadata"
	"github.com/spaghettifunk/skyview/engine/systems"
)

// Game is implemented by applications running on the engine. The engine
// fills in SystemManager and AssetManager before FnInitialize is called.
type Game struct {
	ApplicationConfig *ApplicationConfig
	SystemManager     *systems.SystemManager
	AssetManager      *assets.AssetManager
	State             interface{}
	FnBoot            Boot
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

type Boot func() error
type Initialize func() error
type Update func(deltaTime float64) error
type Render func(packet *metadata.RenderPacket, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
