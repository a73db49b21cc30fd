package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/skyview/engine/core"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	return writeConfigAs(t, "skyview.toml", body)
}

func writeConfigAs(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadApplicationConfigDefaults(t *testing.T) {
	cfg, err := LoadApplicationConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultApplicationConfig(), cfg)
}

func TestLoadApplicationConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"

[window]
name = "Sky"
start_width = 800

[camera]
sensitivity = 0.1

[viewer]
sheet_path = "assets/textures/other.png"
surface_count = 3
`)
	cfg, err := LoadApplicationConfig(path)
	require.NoError(t, err)

	assert.Equal(t, core.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "Sky", cfg.Window.Name)
	assert.Equal(t, uint32(800), cfg.Window.StartWidth)
	// untouched keys keep defaults
	assert.Equal(t, uint32(720), cfg.Window.StartHeight)
	assert.Equal(t, float32(88), cfg.Camera.PitchLimit)
	assert.InDelta(t, 0.1, cfg.Camera.Sensitivity, 1e-6)
	assert.Equal(t, "assets/textures/other.png", cfg.Viewer.SheetPath)
	assert.Equal(t, 3, cfg.Viewer.SurfaceCount)
	assert.Equal(t, 2, cfg.Jobs.WorkerCount)
}

func TestLoadApplicationConfigRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
[camera]
sensitivty = 0.1
`)
	_, err := LoadApplicationConfig(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadApplicationConfigValidates(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "pitch limit too large", body: "[camera]\npitch_limit = 95.0\n"},
		{name: "zero sensitivity", body: "[camera]\nsensitivity = 0.0\n"},
		{name: "no workers", body: "[jobs]\nworker_count = 0\n"},
		{name: "zero width", body: "[window]\nstart_width = 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadApplicationConfig(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadApplicationConfigSyntaxError(t *testing.T) {
	_, err := LoadApplicationConfig(writeConfig(t, "[window\n"))
	assert.Error(t, err)

	_, err = LoadApplicationConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadApplicationConfigYAML(t *testing.T) {
	path := writeConfigAs(t, "skyview.yaml", `
log_level: warn
camera:
  pitch_limit: 60
jobs:
  worker_count: 4
`)
	cfg, err := LoadApplicationConfig(path)
	require.NoError(t, err)
	assert.Equal(t, core.WarnLevel, cfg.LogLevel)
	assert.Equal(t, float32(60), cfg.Camera.PitchLimit)
	assert.Equal(t, 4, cfg.Jobs.WorkerCount)
	assert.InDelta(t, 0.035, cfg.Camera.Sensitivity, 1e-6)

	_, err = LoadApplicationConfig(writeConfigAs(t, "bad.yml", "camera:\n  pitch: 10\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg, err = LoadApplicationConfig(writeConfigAs(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultApplicationConfig(), cfg)
}
