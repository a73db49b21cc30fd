package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/spaghettifunk/skyview/engine/core"
)

var ErrInvalidConfig = errors.New("invalid configuration")

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Window: WindowConfig{
			Name:        "Skyview",
			StartPosX:   100,
			StartPosY:   100,
			StartWidth:  1280,
			StartHeight: 720,
		},
		LogLevel:  core.InfoLevel,
		AssetsDir: "assets",
		TargetFPS: 60,
		Camera: CameraConfig{
			Sensitivity: 0.035,
			PitchLimit:  88,
		},
		Jobs: JobsConfig{
			WorkerCount: 2,
			QueueSize:   16,
		},
		Viewer: ViewerConfig{
			SheetPath:        "assets/textures/skysheet.png",
			SkyboxBrightness: 1.0,
			SurfaceCount:     1,
		},
	}
}

// LoadApplicationConfig reads a TOML (or, by extension, YAML) file over the
// defaults. Keys missing from the file keep their default value; unknown
// keys are rejected. An empty path returns the defaults.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	cfg := DefaultApplicationConfig()
	if path == "" {
		return cfg, cfg.Validate()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(f, cfg)
	default:
		err = decodeTOML(f, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeTOML(r io.Reader, cfg *ApplicationConfig) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("%w\n%s", ErrInvalidConfig, strict.String())
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("%d:%d: %w", row, col, err)
		}
		return err
	}
	return nil
}

func decodeYAML(r io.Reader, cfg *ApplicationConfig) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			// empty document
			return nil
		}
		var terr *yaml.TypeError
		if errors.As(err, &terr) {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(terr.Errors, "; "))
		}
		return err
	}
	return nil
}

func (c *ApplicationConfig) Validate() error {
	switch {
	case c.Window.StartWidth == 0 || c.Window.StartHeight == 0:
		return fmt.Errorf("window size must be positive: %w", ErrInvalidConfig)
	case c.Camera.Sensitivity <= 0:
		return fmt.Errorf("camera sensitivity must be positive: %w", ErrInvalidConfig)
	case c.Camera.PitchLimit <= 0 || c.Camera.PitchLimit > 90:
		return fmt.Errorf("camera pitch_limit must be within (0, 90]: %w", ErrInvalidConfig)
	case c.Jobs.WorkerCount < 1:
		return fmt.Errorf("jobs worker_count must be at least 1: %w", ErrInvalidConfig)
	case c.Jobs.QueueSize < 0:
		return fmt.Errorf("jobs queue_size must not be negative: %w", ErrInvalidConfig)
	case c.Viewer.SurfaceCount < 0:
		return fmt.Errorf("viewer surface_count must not be negative: %w", ErrInvalidConfig)
	case c.TargetFPS < 0:
		return fmt.Errorf("target_fps must not be negative: %w", ErrInvalidConfig)
	}
	return nil
}
