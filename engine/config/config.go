package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidWindow  = errors.New("config: window width and height must be positive")
	ErrInvalidCamera  = errors.New("config: invalid camera parameters")
	ErrMissingShader  = errors.New("config: shader path must not be empty")
	ErrInvalidLimit   = errors.New("config: frame limit must not be negative")
	ErrUnknownPresent = errors.New("config: unknown present mode")
)

// Present mode names accepted in the config file.
const (
	PresentModeImmediate = "immediate"
	PresentModeVSync     = "vsync"
)

// Config is the full application configuration. Zero values are never used directly:
// Default supplies every field and a YAML file only overrides what it names.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Shaders  ShaderConfig   `yaml:"shaders"`
	Camera   CameraConfig   `yaml:"camera"`
	Renderer RendererConfig `yaml:"renderer"`
	Stats    StatsConfig    `yaml:"stats"`
}

// WindowConfig describes the fixed-size output window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// ShaderConfig holds the WGSL source paths, relative to the working directory unless absolute.
type ShaderConfig struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

// CameraConfig holds the static camera. The aspect ratio comes from the window size.
type CameraConfig struct {
	Distance   float32 `yaml:"distance"`
	FovDegrees float32 `yaml:"fov_degrees"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

// RendererConfig selects GPU presentation behaviour.
type RendererConfig struct {
	PresentMode   string  `yaml:"present_mode"`
	ForceSoftware bool    `yaml:"force_software"`
	FrameLimit    float64 `yaml:"frame_limit"`
}

// StatsConfig configures the frame-time tracker.
type StatsConfig struct {
	SeedBounds bool `yaml:"seed_bounds"`
}

// Default returns the benchmark defaults: a 1280x720 window, the camera 3 units back with a
// 90 degree field of view, and uncapped immediate presentation.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "Cube Test",
			Width:  1280,
			Height: 720,
		},
		Shaders: ShaderConfig{
			Vertex:   "assets/shaders/cube_vertex.wgsl",
			Fragment: "assets/shaders/cube_fragment.wgsl",
		},
		Camera: CameraConfig{
			Distance:   3,
			FovDegrees: 90,
			Near:       0.1,
			Far:        100,
		},
		Renderer: RendererConfig{
			PresentMode: PresentModeImmediate,
		},
	}
}

// Load reads a YAML file on top of the defaults and validates the result.
// An empty path returns the validated defaults.
//
// Parameters:
//   - path: the YAML file to read, or "" for defaults only
//
// Returns:
//   - Config: the merged configuration
//   - error: error if the file cannot be read or parsed, or the result is invalid
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to read %q: %w", path, err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %q: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Parse decodes YAML into cfg, leaving fields absent from data untouched.
// Unknown keys are rejected.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks that the configuration describes a drawable setup.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return ErrInvalidWindow
	}
	if c.Shaders.Vertex == "" || c.Shaders.Fragment == "" {
		return ErrMissingShader
	}
	cam := c.Camera
	switch {
	case cam.Distance <= 0:
		return fmt.Errorf("%w: distance %v", ErrInvalidCamera, cam.Distance)
	case cam.FovDegrees <= 0 || cam.FovDegrees >= 180:
		return fmt.Errorf("%w: fov %v", ErrInvalidCamera, cam.FovDegrees)
	case cam.Near <= 0 || cam.Far <= cam.Near:
		return fmt.Errorf("%w: near %v far %v", ErrInvalidCamera, cam.Near, cam.Far)
	}
	switch c.Renderer.PresentMode {
	case PresentModeImmediate, PresentModeVSync:
	default:
		return fmt.Errorf("%w %q", ErrUnknownPresent, c.Renderer.PresentMode)
	}
	if c.Renderer.FrameLimit < 0 {
		return ErrInvalidLimit
	}
	return nil
}

// Aspect returns the window aspect ratio used by the projection.
func (c Config) Aspect() float32 {
	return float32(c.Window.Width) / float32(c.Window.Height)
}
