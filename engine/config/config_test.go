package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, float32(3), cfg.Camera.Distance)
	assert.Equal(t, float32(90), cfg.Camera.FovDegrees)
	assert.InDelta(t, 1280.0/720.0, cfg.Aspect(), 1e-6)
	assert.False(t, cfg.Stats.SeedBounds)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesOnlyNamedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.yaml")
	doc := `
window:
  title: Bench
camera:
  distance: 5
renderer:
  present_mode: vsync
stats:
  seed_bounds: true
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Bench", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, float32(5), cfg.Camera.Distance)
	assert.Equal(t, float32(0.1), cfg.Camera.Near)
	assert.Equal(t, PresentModeVSync, cfg.Renderer.PresentMode)
	assert.True(t, cfg.Stats.SeedBounds)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	cfg := Default()
	err := Parse([]byte("window:\n  resizable: true\n"), &cfg)
	assert.Error(t, err)
}

func TestParseEmptyDocumentKeepsDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, Parse(nil, &cfg))
	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, ErrInvalidWindow},
		{"negative height", func(c *Config) { c.Window.Height = -1 }, ErrInvalidWindow},
		{"empty vertex shader", func(c *Config) { c.Shaders.Vertex = "" }, ErrMissingShader},
		{"empty fragment shader", func(c *Config) { c.Shaders.Fragment = "" }, ErrMissingShader},
		{"zero distance", func(c *Config) { c.Camera.Distance = 0 }, ErrInvalidCamera},
		{"flat fov", func(c *Config) { c.Camera.FovDegrees = 180 }, ErrInvalidCamera},
		{"near beyond far", func(c *Config) { c.Camera.Near = 200 }, ErrInvalidCamera},
		{"unknown present mode", func(c *Config) { c.Renderer.PresentMode = "mailbox" }, ErrUnknownPresent},
		{"negative frame limit", func(c *Config) { c.Renderer.FrameLimit = -1 }, ErrInvalidLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}
