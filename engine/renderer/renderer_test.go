package renderer

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/skyview/engine/core"
	"github.com/spaghettifunk/skyview/engine/renderer/metadata"
)

func init() {
	core.SetLogOutput(io.Discard)
}

func cube(t *testing.T) *metadata.Image {
	t.Helper()
	img := metadata.NewImage(&metadata.ImageResourceData{
		ChannelCount: 4,
		Width:        4,
		Height:       24,
		Pixels:       make([]uint8, 4*24*4),
	})
	_, err := img.ReinterpretStackedAsCube()
	require.NoError(t, err)
	return img
}

func newRenderer(t *testing.T) (*RendererSystem, *HeadlessBackend) {
	t.Helper()
	hb := NewHeadlessBackend()
	r, err := NewRendererSystem("test", 640, 480, hb)
	require.NoError(t, err)
	require.NoError(t, r.Initialize())
	return r, hb
}

func TestDrawFrameWithoutSkybox(t *testing.T) {
	r, hb := newRenderer(t)
	packet := &metadata.RenderPacket{
		DeltaTime: 0.016,
		Skyboxes:  []metadata.SkyboxSurface{{Brightness: 1}},
	}
	require.NoError(t, r.DrawFrame(packet))
	assert.Equal(t, uint64(1), hb.FramesDrawn)
	assert.Equal(t, uint64(0), hb.SkyboxDraws)
	assert.Equal(t, uint64(1), packet.FrameNumber)
}

func TestDrawFrameUploadsCubeOnce(t *testing.T) {
	r, hb := newRenderer(t)
	h := metadata.NewAssetHandle("sky.png")
	packet := &metadata.RenderPacket{
		Skyboxes: []metadata.SkyboxSurface{{Texture: h, Brightness: 1}, {Texture: h, Brightness: 0.5}},
		Cubemap:  cube(t),
	}
	for i := 0; i < 3; i++ {
		require.NoError(t, r.DrawFrame(packet))
	}
	assert.Equal(t, uint64(1), hb.TextureLoads)
	assert.Equal(t, uint64(6), hb.SkyboxDraws)
	assert.Equal(t, uint64(3), hb.FramesDrawn)
}

func TestHeadlessRejectsFlatSkybox(t *testing.T) {
	hb := NewHeadlessBackend()
	require.NoError(t, hb.Initialize("test", 1, 1))
	h := metadata.NewAssetHandle("flat.png")
	flat := metadata.NewImage(&metadata.ImageResourceData{
		ChannelCount: 4, Width: 2, Height: 12, Pixels: make([]uint8, 2*12*4),
	})
	require.NoError(t, hb.TextureCreate(h, flat))

	require.NoError(t, hb.BeginFrame(0))
	err := hb.DrawSkybox(&metadata.RenderPacket{}, metadata.SkyboxSurface{Texture: h})
	assert.ErrorIs(t, err, ErrNotCubeTexture)

	err = hb.DrawSkybox(&metadata.RenderPacket{}, metadata.SkyboxSurface{Texture: metadata.NewAssetHandle("x.png")})
	assert.ErrorIs(t, err, ErrUnknownTexture)
	require.NoError(t, hb.EndFrame(0))
}

func TestDrawFrameReportsBadCubeOnce(t *testing.T) {
	var logs bytes.Buffer
	core.SetLogOutput(&logs)
	t.Cleanup(func() { core.SetLogOutput(io.Discard) })

	r, hb := newRenderer(t)
	// a valid sheet of eight faces reinterprets fine but is no cube
	img := metadata.NewImage(&metadata.ImageResourceData{
		ChannelCount: 4, Width: 4, Height: 32, Pixels: make([]uint8, 4*32*4),
	})
	layers, err := img.ReinterpretStackedAsCube()
	require.NoError(t, err)
	require.Equal(t, uint32(8), layers)

	h := metadata.NewAssetHandle("eight.png")
	packet := &metadata.RenderPacket{
		Skyboxes: []metadata.SkyboxSurface{{Texture: h, Brightness: 1}, {Texture: h, Brightness: 1}},
		Cubemap:  img,
	}
	for i := 0; i < 5; i++ {
		require.NoError(t, r.DrawFrame(packet))
	}

	assert.Equal(t, uint64(5), hb.FramesDrawn)
	assert.Equal(t, uint64(0), hb.SkyboxDraws)
	assert.Equal(t, 1, strings.Count(logs.String(), ErrNotCubeTexture.Error()))
}

func TestHeadlessFrameOrdering(t *testing.T) {
	hb := NewHeadlessBackend()
	assert.ErrorIs(t, hb.BeginFrame(0), ErrNotInitialized)
	require.NoError(t, hb.Initialize("test", 1, 1))
	assert.ErrorIs(t, hb.EndFrame(0), ErrFrameNotStarted)

	short := &metadata.Image{Descriptor: metadata.TextureDescriptor{Width: 2, Height: 2, ArrayLayerCount: 6, ChannelCount: 4}}
	assert.Error(t, hb.TextureCreate(metadata.NewAssetHandle("s.png"), short))
}

func TestResizeWaitsBeforeBackend(t *testing.T) {
	r, hb := newRenderer(t)
	r.OnResize(1024, 768)

	packet := &metadata.RenderPacket{}
	for i := uint8(1); i < RESIZE_SETTLE_FRAMES; i++ {
		require.NoError(t, r.DrawFrame(packet))
	}
	assert.Equal(t, uint64(0), hb.FramesDrawn)
	w, _ := hb.Size()
	assert.Equal(t, uint32(640), w)

	require.NoError(t, r.DrawFrame(packet))
	w, h := hb.Size()
	assert.Equal(t, uint32(1024), w)
	assert.Equal(t, uint32(768), h)
	assert.False(t, r.Resizing)
	assert.Equal(t, uint64(1), hb.FramesDrawn)
}

func TestShutdownReleasesTextures(t *testing.T) {
	r, hb := newRenderer(t)
	h := metadata.NewAssetHandle("sky.png")
	require.NoError(t, r.TextureSync(h, cube(t)))
	require.NoError(t, r.Shutdown())
	assert.Empty(t, hb.textures)
}
