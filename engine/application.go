package engine

import (
	"github.com/spaghettifunk/skyview/engine/core"
)

type WindowConfig struct {
	// The application name used in windowing, if applicable.
	Name string `toml:"name" yaml:"name"`
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x" yaml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y" yaml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"start_width" yaml:"start_width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"start_height" yaml:"start_height"`
}

type CameraConfig struct {
	// Degrees of rotation per unit of pointer motion.
	Sensitivity float32 `toml:"sensitivity" yaml:"sensitivity"`
	// Maximum pitch magnitude in degrees, within (0, 90].
	PitchLimit float32 `toml:"pitch_limit" yaml:"pitch_limit"`
}

type JobsConfig struct {
	WorkerCount int `toml:"worker_count" yaml:"worker_count"`
	QueueSize   int `toml:"queue_size" yaml:"queue_size"`
}

type ViewerConfig struct {
	// Path of the sprite sheet whose faces are stacked vertically.
	SheetPath        string  `toml:"sheet_path" yaml:"sheet_path"`
	SkyboxBrightness float32 `toml:"skybox_brightness" yaml:"skybox_brightness"`
	SurfaceCount     int     `toml:"surface_count" yaml:"surface_count"`
}

type ApplicationConfig struct {
	Window    WindowConfig  `toml:"window" yaml:"window"`
	LogLevel  core.LogLevel `toml:"log_level" yaml:"log_level"`
	AssetsDir string        `toml:"assets_dir" yaml:"assets_dir"`
	// Frame pacing target, 0 disables the limiter.
	TargetFPS float64      `toml:"target_fps" yaml:"target_fps"`
	Camera    CameraConfig `toml:"camera" yaml:"camera"`
	Jobs      JobsConfig   `toml:"jobs" yaml:"jobs"`
	Viewer    ViewerConfig `toml:"viewer" yaml:"viewer"`
}
