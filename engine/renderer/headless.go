package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/skyview/engine/core"
	"github.com/spaghettifunk/skyview/engine/renderer/metadata"
)

var (
	ErrNotInitialized  = errors.New("renderer backend not initialized")
	ErrFrameNotStarted = errors.New("no frame in flight")
	ErrNotCubeTexture  = errors.New("skybox texture is not a cube")
	ErrUnknownTexture  = errors.New("texture was never uploaded")
)

type headlessTexture struct {
	descriptor metadata.TextureDescriptor
	size       int
}

// HeadlessBackend validates what it is asked to draw without talking to a GPU.
type HeadlessBackend struct {
	mu sync.Mutex

	initialized bool
	inFrame     bool
	width       uint32
	height      uint32

	textures map[metadata.AssetHandle]headlessTexture

	FramesDrawn  uint64
	SkyboxDraws  uint64
	TextureLoads uint64
}

func NewHeadlessBackend() *HeadlessBackend {
	return &HeadlessBackend{
		textures: make(map[metadata.AssetHandle]headlessTexture),
	}
}

func (hb *HeadlessBackend) Initialize(appName string, appWidth, appHeight uint32) error {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	hb.initialized = true
	hb.width = appWidth
	hb.height = appHeight
	core.LogInfo("headless renderer ready for '%s' (%dx%d)", appName, appWidth, appHeight)
	return nil
}

func (hb *HeadlessBackend) Shutdown() error {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	hb.initialized = false
	hb.textures = make(map[metadata.AssetHandle]headlessTexture)
	return nil
}

func (hb *HeadlessBackend) Resized(width, height uint32) error {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	hb.width = width
	hb.height = height
	return nil
}

func (hb *HeadlessBackend) Size() (uint32, uint32) {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	return hb.width, hb.height
}

func (hb *HeadlessBackend) BeginFrame(deltaTime float64) error {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	if !hb.initialized {
		return ErrNotInitialized
	}
	hb.inFrame = true
	return nil
}

func (hb *HeadlessBackend) EndFrame(deltaTime float64) error {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	if !hb.inFrame {
		return ErrFrameNotStarted
	}
	hb.inFrame = false
	hb.FramesDrawn++
	return nil
}

func (hb *HeadlessBackend) TextureCreate(handle metadata.AssetHandle, image *metadata.Image) error {
	d := image.Descriptor
	if d.ArrayLayerCount == 0 {
		return fmt.Errorf("texture %s has no layers", handle)
	}
	expected := 0
	for i := uint32(0); i < d.ArrayLayerCount; i++ {
		layer, err := image.Layer(i)
		if err != nil {
			return fmt.Errorf("texture %s: %w", handle, err)
		}
		expected += len(layer)
	}

	hb.mu.Lock()
	defer hb.mu.Unlock()
	hb.textures[handle] = headlessTexture{descriptor: d, size: expected}
	hb.TextureLoads++
	return nil
}

func (hb *HeadlessBackend) TextureDestroy(handle metadata.AssetHandle) {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	delete(hb.textures, handle)
}

func (hb *HeadlessBackend) DrawSkybox(packet *metadata.RenderPacket, surface metadata.SkyboxSurface) error {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	if !hb.inFrame {
		return ErrFrameNotStarted
	}
	tex, ok := hb.textures[surface.Texture]
	if !ok {
		return fmt.Errorf("%s: %w", surface.Texture, ErrUnknownTexture)
	}
	if tex.descriptor.ViewDimension != metadata.TextureViewDimensionCube || tex.descriptor.ArrayLayerCount != metadata.CubeFaceCount {
		return fmt.Errorf("%s is %s with %d layers: %w", surface.Texture, tex.descriptor.ViewDimension, tex.descriptor.ArrayLayerCount, ErrNotCubeTexture)
	}
	hb.SkyboxDraws++
	return nil
}
