package engine

import (
	"context"
	"fmt"

	"github.com/spaghettifunk/skyview/engine/assets"
	"github.com/spaghettifunk/skyview/engine/core"
	"github.com/spaghettifunk/skyview/engine/renderer"
	"github.com/spaghettifunk/skyview/engine/renderer/metadata"
	"github.com/spaghettifunk/skyview/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// Platform is the windowing layer the engine drives.
type Platform interface {
	Startup(applicationName string, x, y, width, height uint32) error
	CaptureCursor()
	PumpMessages() bool
	GetAbsoluteTime() float64
	Sleep(ms float64)
	Shutdown() error
}

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	config        *ApplicationConfig
	isRunning     bool
	isSuspended   bool
	platform      Platform
	jobSystem     *systems.JobSystem
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	renderer      *renderer.RendererSystem
	width         uint32
	height        uint32
	clock         *core.Clock
	metrics       *core.Metrics
	lastTime      float64
}

// New boots the engine for the game on the given platform. Frames are
// handed to the headless backend.
func New(g *Game, p Platform) (*Engine, error) {
	return newEngine(g, p, renderer.NewHeadlessBackend())
}

func newEngine(g *Game, p Platform, backend renderer.RendererBackend) (*Engine, error) {
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = DefaultApplicationConfig()
	}
	cfg := g.ApplicationConfig
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	core.SetLogLevel(cfg.LogLevel)

	e := &Engine{
		currentStage: EngineStageBooting,
		gameInstance: g,
		config:       cfg,
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
		platform:     p,
		isRunning:    false,
		isSuspended:  false,
		width:        cfg.Window.StartWidth,
		height:       cfg.Window.StartHeight,
		lastTime:     0,
	}

	js, err := systems.NewJobSystem(cfg.Jobs.WorkerCount, cfg.Jobs.QueueSize)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	e.jobSystem = js

	am, err := assets.NewAssetManager(js)
	if err != nil {
		core.LogError(err.Error())
		_ = js.Shutdown()
		return nil, err
	}
	e.assetManager = am

	sm, err := systems.NewSystemManager(&systems.SystemManagerConfig{
		Camera: systems.CameraSystemConfig{
			MaxCameraCount: 8,
			Width:          e.width,
			Height:         e.height,
			Sensitivity:    cfg.Camera.Sensitivity,
			PitchLimit:     cfg.Camera.PitchLimit,
		},
	}, js, am)
	if err != nil {
		core.LogError(err.Error())
		_ = js.Shutdown()
		return nil, err
	}
	e.systemManager = sm

	r, err := renderer.NewRendererSystem(cfg.Window.Name, e.width, e.height, backend)
	if err != nil {
		core.LogError(err.Error())
		_ = js.Shutdown()
		return nil, err
	}
	e.renderer = r

	g.SystemManager = sm
	g.AssetManager = am

	if g.FnBoot != nil {
		if err := g.FnBoot(); err != nil {
			core.LogError("game boot failed: %s", err)
			return nil, err
		}
	}
	e.currentStage = EngineStageBootComplete
	return e, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	// initialize input
	if err := core.InputInitialize(); err != nil {
		return err
	}

	// initialize events
	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}

	// register some events
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e.onKey)
	core.EventRegister(core.EVENT_CODE_KEY_RELEASED, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e.onResized)

	w := e.config.Window
	if err := e.platform.Startup(w.Name, w.StartPosX, w.StartPosY, w.StartWidth, w.StartHeight); err != nil {
		return err
	}
	e.platform.CaptureCursor()

	// initialize subsystems
	if err := e.assetManager.Initialize(e.config.AssetsDir); err != nil {
		return err
	}
	if err := e.renderer.Initialize(); err != nil {
		return err
	}

	if err := e.gameInstance.FnInitialize(); err != nil {
		return err
	}
	if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
		return err
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// Run drives the frame loop until the window closes, the application quits
// or ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	e.currentStage = EngineStageRunning
	e.isRunning = true

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	var targetFrameSeconds float64 = 0
	if e.config.TargetFPS > 0 {
		targetFrameSeconds = 1.0 / e.config.TargetFPS
	}

	for e.isRunning {
		select {
		case <-ctx.Done():
			core.LogInfo("context cancelled, shutting down.")
			e.isRunning = false
			continue
		default:
		}

		if !e.platform.PumpMessages() {
			e.isRunning = false
		}

		// dispatch everything deferred since the last frame
		core.EventProcess()

		if !e.isRunning {
			continue
		}
		if e.isSuspended {
			// motion while minimised must not land on the first restored frame
			core.InputUpdate(0)
			continue
		}

		// Update clock and get delta time.
		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		frameStartTime := e.platform.GetAbsoluteTime()

		if err := e.gameInstance.FnUpdate(delta); err != nil {
			core.LogError("Game update failed, shutting down: %s", err)
			e.isRunning = false
			return err
		}

		packet := &metadata.RenderPacket{
			DeltaTime: delta,
		}
		// Call the game's render routine.
		if err := e.gameInstance.FnRender(packet, delta); err != nil {
			core.LogError("Game render failed, shutting down: %s", err)
			e.isRunning = false
			return err
		}
		if err := e.renderer.DrawFrame(packet); err != nil {
			e.isRunning = false
			return err
		}

		// Figure out how long the frame took and, if below the target, give the rest back to the OS.
		frameElapsedTime := e.platform.GetAbsoluteTime() - frameStartTime
		if targetFrameSeconds > 0 {
			remainingMS := (targetFrameSeconds - frameElapsedTime) * 1000
			if remainingMS > 1 {
				e.platform.Sleep(remainingMS - 1)
			}
		}
		if e.metrics.Update(frameElapsedTime) {
			core.LogDebug("FPS: %.0f, frame time: %.3fms", e.metrics.FPS(), e.metrics.FrameTime())
		}

		// NOTE: Input update/state copying should always be handled
		// after any input should be recorded; I.E. before this line.
		// As a safety, input is the last thing to be updated before
		// this frame ends.
		core.InputUpdate(delta)

		e.lastTime = currentTime
	}

	return nil
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError("game shutdown failed: %s", err)
		}
	}
	if err := e.renderer.Shutdown(); err != nil {
		return err
	}
	// drains pending loads before the asset table goes away
	if err := e.systemManager.Shutdown(); err != nil {
		return err
	}
	if err := e.assetManager.Shutdown(); err != nil {
		return err
	}
	if err := core.EventSystemShutdown(); err != nil {
		return err
	}
	if err := core.InputShutdown(); err != nil {
		return err
	}
	if err := e.platform.Shutdown(); err != nil {
		return err
	}
	e.currentStage = EngineStageUninitialized
	return nil
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

// GetFramebufferSize returns the width and height (in this order)
// of the application framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
		return true
	}
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	if context.Type == core.EVENT_CODE_KEY_PRESSED && ke.KeyCode == core.KEY_ESCAPE {
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
		// Block anything else from processing this.
		return true
	}
	return false
}

func (e *Engine) onResized(context core.EventContext) bool {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	width := se.WindowWidth
	height := se.WindowHeight
	if width == e.width && height == e.height {
		return false
	}
	e.width = width
	e.height = height
	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	e.systemManager.CameraSystem().OnResize(width, height)
	e.renderer.OnResize(width, height)
	if err := e.gameInstance.FnOnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
	// Other listeners may want it too.
	return false
}
