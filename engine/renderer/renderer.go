package renderer

import (
	"fmt"

	"github.com/spaghettifunk/skyview/engine/core"
	"github.com/spaghettifunk/skyview/engine/renderer/metadata"
)

// Frames to wait after the last resize event before the backend is told.
const RESIZE_SETTLE_FRAMES uint8 = 30

type RendererSystem struct {
	backend RendererBackend

	// application
	AppName   string
	AppWidth  uint32
	AppHeight uint32

	FrameNumber uint64
	// The current window framebuffer width.
	FramebufferWidth uint32
	// The current window framebuffer height.
	FramebufferHeight uint32
	// Indicates if the window is currently being resized.
	Resizing bool
	// The current number of frames since the last resize operation.
	// Only set if resizing = true. Otherwise 0.
	FramesSinceResize uint8

	// descriptors of what has been uploaded, to spot reinterpreted images
	uploaded map[metadata.AssetHandle]metadata.TextureDescriptor
	// handles whose draw failure was already logged
	rejected map[metadata.AssetHandle]struct{}
}

func NewRendererSystem(appName string, appWidth, appHeight uint32, backend RendererBackend) (*RendererSystem, error) {
	if backend == nil {
		return nil, fmt.Errorf("func NewRendererSystem - a backend is required")
	}
	return &RendererSystem{
		backend:   backend,
		AppName:   appName,
		AppWidth:  appWidth,
		AppHeight: appHeight,
		uploaded:  make(map[metadata.AssetHandle]metadata.TextureDescriptor),
		rejected:  make(map[metadata.AssetHandle]struct{}),
	}, nil
}

func (r *RendererSystem) Initialize() error {
	r.FramebufferWidth = r.AppWidth
	r.FramebufferHeight = r.AppHeight
	r.Resizing = false
	r.FramesSinceResize = 0
	r.FrameNumber = 0
	return r.backend.Initialize(r.AppName, r.AppWidth, r.AppHeight)
}

func (r *RendererSystem) Shutdown() error {
	for h := range r.uploaded {
		r.backend.TextureDestroy(h)
	}
	r.uploaded = make(map[metadata.AssetHandle]metadata.TextureDescriptor)
	r.rejected = make(map[metadata.AssetHandle]struct{})
	return r.backend.Shutdown()
}

func (r *RendererSystem) OnResize(width, height uint32) {
	// Flag as resizing and store the change, but wait to regenerate.
	r.Resizing = true
	r.FramebufferWidth = width
	r.FramebufferHeight = height
	r.FramesSinceResize = 0
}

// TextureSync uploads the image when it is new or its descriptor changed.
func (r *RendererSystem) TextureSync(handle metadata.AssetHandle, image *metadata.Image) error {
	if image == nil || !handle.IsValid() {
		return nil
	}
	if d, ok := r.uploaded[handle]; ok && d == image.Descriptor {
		return nil
	}
	if err := r.backend.TextureCreate(handle, image); err != nil {
		return err
	}
	r.uploaded[handle] = image.Descriptor
	delete(r.rejected, handle)
	core.LogDebug("uploaded texture %s as %s", handle, image.Descriptor.ViewDimension)
	return nil
}

func (r *RendererSystem) DrawFrame(packet *metadata.RenderPacket) error {
	r.FrameNumber++
	packet.FrameNumber = r.FrameNumber

	// Wait a number of frames after the last resize before touching the backend.
	if r.Resizing {
		r.FramesSinceResize++
		if r.FramesSinceResize < RESIZE_SETTLE_FRAMES {
			return nil
		}
		if err := r.backend.Resized(r.FramebufferWidth, r.FramebufferHeight); err != nil {
			return err
		}
		r.FramesSinceResize = 0
		r.Resizing = false
	}

	if packet.Cubemap != nil && len(packet.Skyboxes) > 0 {
		if err := r.TextureSync(packet.Skyboxes[0].Texture, packet.Cubemap); err != nil {
			core.LogError("texture upload failed: %s", err)
		}
	}

	if err := r.backend.BeginFrame(packet.DeltaTime); err != nil {
		core.LogError("BeginFrame failed: %s", err)
		return err
	}

	for i, s := range packet.Skyboxes {
		if _, ok := r.uploaded[s.Texture]; !ok {
			// unbound or not loaded yet
			continue
		}
		if err := r.backend.DrawSkybox(packet, s); err != nil {
			if _, seen := r.rejected[s.Texture]; !seen {
				r.rejected[s.Texture] = struct{}{}
				core.LogError("error rendering skybox surface %d: %s", i, err)
			}
		}
	}

	// End the frame. If this fails, it is likely unrecoverable.
	if err := r.backend.EndFrame(packet.DeltaTime); err != nil {
		err = fmt.Errorf("backend func EndFrame failed. Application shutting down: %w", err)
		core.LogError(err.Error())
		return err
	}
	return nil
}
