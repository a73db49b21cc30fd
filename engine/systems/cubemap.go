package systems

import (
	"fmt"

	"github.com/spaghettifunk/skyview/engine/core"
	"github.com/spaghettifunk/skyview/engine/renderer/metadata"
)

// Fired once the sprite sheet has become a cube texture. Data: *CubemapReadyEvent
const EVENT_CODE_CUBEMAP_READY core.EventCode = 0x100

type CubemapReadyEvent struct {
	Handle metadata.AssetHandle
	Layers uint32
}

// ImageStore is the part of the asset manager the cubemap system relies on.
type ImageStore interface {
	LoadState(handle metadata.AssetHandle) metadata.LoadState
	GetMut(handle metadata.AssetHandle) (*metadata.Image, error)
}

type CubemapSystem struct {
	store  ImageStore
	warned map[metadata.AssetHandle]bool
}

func NewCubemapSystem(store ImageStore) (*CubemapSystem, error) {
	if store == nil {
		err := fmt.Errorf("func NewCubemapSystem - an image store is required")
		core.LogError(err.Error())
		return nil, err
	}
	return &CubemapSystem{
		store:  store,
		warned: make(map[metadata.AssetHandle]bool),
	}, nil
}

func (cs *CubemapSystem) Shutdown() error {
	cs.warned = make(map[metadata.AssetHandle]bool)
	return nil
}

// Ready reports whether the asset can be reinterpreted this frame.
func (cs *CubemapSystem) Ready(state *metadata.CubemapState) bool {
	return !state.Reinterpreted && cs.poll(state) == metadata.LoadStateLoaded
}

func (cs *CubemapSystem) poll(state *metadata.CubemapState) metadata.LoadState {
	ls := cs.store.LoadState(state.Handle)
	if ls == metadata.LoadStateFailed && !cs.warned[state.Handle] {
		cs.warned[state.Handle] = true
		core.LogWarn("cubemap source %s failed to load, the skybox stays unset", state.Handle)
	}
	return ls
}

/**
 * @brief Polls the sheet and reinterprets it on the first frame it is loaded.
 * @param state The cubemap state owned by the caller.
 * @return True on the frame the cube became usable. A non-nil error is a
 * terminal diagnostic for that asset.
 */
func (cs *CubemapSystem) Update(state *metadata.CubemapState) (bool, error) {
	if !cs.Ready(state) {
		return false, nil
	}
	if err := cs.Reinterpret(state); err != nil {
		core.LogError("cubemap %s: %s", state.Handle, err)
		return false, err
	}
	return true, nil
}

// Reinterpret flips the one-shot flag and turns the stacked sheet into a
// cube. A failure is terminal: the flag stays set so it is never retried.
func (cs *CubemapSystem) Reinterpret(state *metadata.CubemapState) error {
	state.Reinterpreted = true

	img, err := cs.store.GetMut(state.Handle)
	if err != nil {
		return err
	}
	layers, err := img.ReinterpretStackedAsCube()
	if err != nil {
		return err
	}
	if layers != metadata.CubeFaceCount {
		core.LogWarn("cubemap %s has %d layers, expected %d", state.Handle, layers, metadata.CubeFaceCount)
	}

	core.LogInfo("cubemap %s ready: %dx%d, %d layers", state.Handle, img.Descriptor.Width, img.Descriptor.Height, layers)
	core.EventFire(core.EventContext{
		Type: EVENT_CODE_CUBEMAP_READY,
		Data: &CubemapReadyEvent{Handle: state.Handle, Layers: layers},
	})
	return nil
}
