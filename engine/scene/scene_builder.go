package scene

import (
	"io"
	"time"

	"github.com/Carmen-Shannon/oxy-cube/common"
)

// Default shader locations, relative to the working directory.
const (
	DefaultVertexShaderPath   = "assets/shaders/cube_vertex.wgsl"
	DefaultFragmentShaderPath = "assets/shaders/cube_fragment.wgsl"
)

// initConfig collects the Initialize options.
type initConfig struct {
	programKey         string
	vertexShaderPath   string
	fragmentShaderPath string
	distance           float32
	fovDegrees         float32
	aspect             float32
	near               float32
	far                float32
}

func defaultInitConfig() initConfig {
	return initConfig{
		programKey:         "cube",
		vertexShaderPath:   DefaultVertexShaderPath,
		fragmentShaderPath: DefaultFragmentShaderPath,
		distance:           3,
		fovDegrees:         90,
		aspect:             1280.0 / 720.0,
		near:               0.1,
		far:                100,
	}
}

// InitOption is a functional option for Initialize.
type InitOption func(c *initConfig)

// WithShaderPaths sets the vertex and fragment shader paths inside the filesystem passed to Initialize.
//
// Parameters:
//   - vertex: path of the WGSL vertex shader
//   - fragment: path of the WGSL fragment shader
//
// Returns:
//   - InitOption: option function to apply
func WithShaderPaths(vertex, fragment string) InitOption {
	return func(c *initConfig) {
		c.vertexShaderPath = vertex
		c.fragmentShaderPath = fragment
	}
}

// WithCamera sets the static camera: its distance from the origin along +Z, the vertical
// field of view in degrees and the clip planes.
//
// Parameters:
//   - distance: distance from the cube center
//   - fovDegrees: vertical field of view in degrees
//   - near: near clip plane distance
//   - far: far clip plane distance
//
// Returns:
//   - InitOption: option function to apply
func WithCamera(distance, fovDegrees, near, far float32) InitOption {
	return func(c *initConfig) {
		c.distance = distance
		c.fovDegrees = fovDegrees
		c.near = near
		c.far = far
	}
}

// WithAspect sets the projection aspect ratio (width / height).
func WithAspect(aspect float32) InitOption {
	return func(c *initConfig) {
		c.aspect = aspect
	}
}

// LoopOption is a functional option for NewRenderLoopState.
type LoopOption func(s *RenderLoopState)

// WithClock replaces the wall clock. Tests use it to drive time by hand.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - LoopOption: option function to apply
func WithClock(now func() time.Time) LoopOption {
	return func(s *RenderLoopState) {
		s.now = now
	}
}

// WithReportWriter sets where the per-frame report is written. A nil writer disables the report.
//
// Parameters:
//   - w: the report destination (os.Stdout by default)
//
// Returns:
//   - LoopOption: option function to apply
func WithReportWriter(w io.Writer) LoopOption {
	return func(s *RenderLoopState) {
		s.reportWriter = w
	}
}

// WithClearColor sets the color each frame is cleared to.
func WithClearColor(c common.Color) LoopOption {
	return func(s *RenderLoopState) {
		s.clearColor = c
	}
}
