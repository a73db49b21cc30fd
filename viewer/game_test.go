package viewer

import (
	"image"
	"image/color"
	"bytes"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/skyview/engine"
	"github.com/spaghettifunk/skyview/engine/assets"
	"github.com/spaghettifunk/skyview/engine/core"
	"github.com/spaghettifunk/skyview/engine/renderer/metadata"
	"github.com/spaghettifunk/skyview/engine/systems"
)

func init() {
	core.SetLogOutput(io.Discard)
}

func writeSheet(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(y / w * 40), A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func setup(t *testing.T, sheetW, sheetH int) *SkyviewGame {
	t.Helper()
	dir := t.TempDir()
	sheet := filepath.Join(dir, "skysheet.png")
	writeSheet(t, sheet, sheetW, sheetH)
	return newGame(t, dir, sheet)
}

func newGame(t *testing.T, dir, sheet string) *SkyviewGame {
	t.Helper()
	require.True(t, core.EventSystemInitialize())
	require.NoError(t, core.InputInitialize())
	t.Cleanup(func() {
		core.InputShutdown()
		core.EventSystemShutdown()
	})

	cfg := engine.DefaultApplicationConfig()
	cfg.AssetsDir = dir
	cfg.Viewer.SheetPath = sheet
	cfg.Viewer.SurfaceCount = 3
	cfg.Viewer.SkyboxBrightness = 0.8

	js, err := systems.NewJobSystem(1, 4)
	require.NoError(t, err)
	am, err := assets.NewAssetManager(js)
	require.NoError(t, err)
	require.NoError(t, am.Initialize(dir))
	sm, err := systems.NewSystemManager(&systems.SystemManagerConfig{
		Camera: systems.CameraSystemConfig{MaxCameraCount: 1, Width: 640, Height: 480, Sensitivity: 0.035, PitchLimit: 88},
	}, js, am)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sm.Shutdown()
		_ = am.Shutdown()
	})

	g := NewSkyviewGame(cfg)
	g.SystemManager = sm
	g.AssetManager = am
	require.NoError(t, g.Boot())
	require.NoError(t, g.Initialize())
	return g
}

func TestViewerBindsSkyboxOnceSheetLoads(t *testing.T) {
	g := setup(t, 8, 48)
	state := g.state()

	require.Eventually(t, func() bool {
		_ = g.Update(0.016)
		return state.cubemap.Reinterpreted
	}, 2*time.Second, 5*time.Millisecond)

	for _, s := range state.surfaces {
		assert.Equal(t, state.cubemap.Handle, s.Texture)
		assert.Equal(t, float32(0.8), s.Brightness)
	}

	packet := &metadata.RenderPacket{}
	require.NoError(t, g.Render(packet, 0.016))
	require.NotNil(t, packet.Cubemap)
	assert.Equal(t, metadata.TextureViewDimensionCube, packet.Cubemap.Descriptor.ViewDimension)
	assert.Equal(t, uint32(6), packet.Cubemap.Descriptor.ArrayLayerCount)
	assert.Len(t, packet.Skyboxes, 3)
}

func TestViewerKeepsRunningWithBadSheet(t *testing.T) {
	g := setup(t, 8, 44)
	state := g.state()

	require.Eventually(t, func() bool {
		_ = g.Update(0.016)
		return state.cubemap.Reinterpreted
	}, 2*time.Second, 5*time.Millisecond)

	for _, s := range state.surfaces {
		assert.False(t, s.Texture.IsValid())
	}
	packet := &metadata.RenderPacket{}
	require.NoError(t, g.Render(packet, 0.016))
	assert.Nil(t, packet.Cubemap)
}

func TestViewerCameraFollowsPointer(t *testing.T) {
	g := setup(t, 8, 48)
	require.NoError(t, g.OnResize(800, 600))

	core.InputProcessMouseMove(0, 0)
	core.InputProcessMouseMove(0, 3000)
	require.NoError(t, g.Update(0.016))

	assert.Equal(t, float32(88), g.SystemManager.CameraSystem().Controller.Pitch())

	packet := &metadata.RenderPacket{}
	require.NoError(t, g.Render(packet, 0.016))
	assert.Equal(t, g.state().WorldCamera.GetRotation(), packet.CameraRotation)
}

func TestViewerCameraRunsOnFrameSheetIsRejected(t *testing.T) {
	g := setup(t, 8, 44)
	state := g.state()

	require.Eventually(t, func() bool {
		return g.AssetManager.LoadState(state.cubemap.Handle) == metadata.LoadStateLoaded
	}, 2*time.Second, 5*time.Millisecond)
	require.False(t, state.cubemap.Reinterpreted)

	core.InputProcessMouseMove(0, 0)
	core.InputProcessMouseMove(100, 0)
	require.NoError(t, g.Update(0.016))

	assert.True(t, state.cubemap.Reinterpreted)
	assert.InDelta(t, 3.5, g.SystemManager.CameraSystem().Controller.Yaw(), 1e-4)
	assert.Equal(t, g.SystemManager.CameraSystem().Controller.Orientation(), state.WorldCamera.GetRotation())
}

func TestViewerReportsMissingSheet(t *testing.T) {
	var logs bytes.Buffer
	core.SetLogOutput(&logs)
	t.Cleanup(func() { core.SetLogOutput(io.Discard) })

	dir := t.TempDir()
	g := newGame(t, dir, filepath.Join(dir, "absent.png"))
	state := g.state()
	assert.Equal(t, metadata.LoadStateFailed, g.AssetManager.LoadState(state.cubemap.Handle))

	core.EventProcess()
	assert.Equal(t, 1, strings.Count(logs.String(), "absent.png unavailable"))

	// a failed load never reaches reinterpretation
	require.NoError(t, g.Update(0.016))
	assert.False(t, state.cubemap.Reinterpreted)
	for _, s := range state.surfaces {
		assert.False(t, s.Texture.IsValid())
	}
	require.NoError(t, g.Shutdown())
}
