package scene

import (
	"errors"
	"fmt"
	"io/fs"
	"math"

	"github.com/Carmen-Shannon/oxy-cube/engine/camera"
	"github.com/Carmen-Shannon/oxy-cube/engine/log"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrShaderSource = errors.New("scene: failed to read shader source")
	ErrProgramLink  = errors.New("scene: failed to link shader program")
)

var logger = log.New("scene")

// cubeBoundingRadius is the radius of the sphere enclosing the unit-extent cube at any rotation.
var cubeBoundingRadius = float32(math.Sqrt(3))

// Mesh is immutable indexed geometry: tightly packed xyz positions and triangle list indices.
type Mesh struct {
	Label    string
	Vertices []float32
	Indices  []uint32
}

// IndexCount returns the number of indices drawn per frame.
func (m Mesh) IndexCount() int {
	return len(m.Indices)
}

// CubeMesh returns the cube spanning [-1, 1] on every axis: 8 corners and the 24 indices
// of its front, left, back and right faces.
func CubeMesh() Mesh {
	return Mesh{
		Label: "cube",
		Vertices: []float32{
			-1, -1, 1,
			-1, 1, 1,
			1, 1, 1,
			1, -1, 1,
			-1, -1, -1,
			-1, 1, -1,
			1, 1, -1,
			1, -1, -1,
		},
		Indices: []uint32{
			0, 1, 2, 0, 2, 3,
			4, 5, 1, 4, 1, 0,
			7, 6, 5, 7, 5, 4,
			3, 2, 6, 3, 6, 7,
		},
	}
}

// ShaderProgram is a linked vertex and fragment program addressed by key.
type ShaderProgram struct {
	Key string
}

// Resources is everything Initialize uploaded. All of it stays valid until the device is released.
type Resources struct {
	Mesh           Mesh
	Program        ShaderProgram
	Camera         camera.Camera
	ViewProjection mgl32.Mat4
}

// Initialize prepares the device for the frame loop: it enables the depth test, reads and links
// the cube shaders from fsys, uploads the cube mesh, and writes the view-projection matrix to
// uniform slot 0. The depth test comes first because WebGPU fixes it when the program is linked.
//
// Parameters:
//   - dev: the GPU device
//   - fsys: the filesystem the shader paths are resolved in
//   - options: functional options overriding shader paths and camera
//
// Returns:
//   - *Resources: the uploaded resources
//   - error: ErrShaderSource or ErrProgramLink wrapping the cause, or a device error
func Initialize(dev Device, fsys fs.FS, options ...InitOption) (*Resources, error) {
	cfg := defaultInitConfig()
	for _, opt := range options {
		opt(&cfg)
	}

	if err := dev.EnableDepthTest(); err != nil {
		return nil, fmt.Errorf("scene: enable depth test: %w", err)
	}

	vertexSource, err := fs.ReadFile(fsys, cfg.vertexShaderPath)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrShaderSource, cfg.vertexShaderPath, err)
	}
	fragmentSource, err := fs.ReadFile(fsys, cfg.fragmentShaderPath)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrShaderSource, cfg.fragmentShaderPath, err)
	}

	program := ShaderProgram{Key: cfg.programKey}
	if err := dev.CreateProgram(program.Key, string(vertexSource), string(fragmentSource)); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrProgramLink, program.Key, err)
	}
	if err := dev.UseProgram(program.Key); err != nil {
		return nil, fmt.Errorf("scene: use program %q: %w", program.Key, err)
	}
	logger.Infof("program %q linked from %s and %s", program.Key, cfg.vertexShaderPath, cfg.fragmentShaderPath)

	mesh := CubeMesh()
	if err := dev.CreateMesh(mesh.Label, mesh.Vertices, mesh.Indices); err != nil {
		return nil, fmt.Errorf("scene: create mesh %q: %w", mesh.Label, err)
	}
	if err := dev.BindMesh(mesh.Label); err != nil {
		return nil, fmt.Errorf("scene: bind mesh %q: %w", mesh.Label, err)
	}

	cam := camera.NewCamera(
		camera.WithDistance(cfg.distance),
		camera.WithFovDegrees(cfg.fovDegrees),
		camera.WithAspect(cfg.aspect),
		camera.WithClipPlanes(cfg.near, cfg.far),
	)
	viewProjection := cam.ViewProjectionMatrix()
	if err := dev.SetUniformMatrix(SlotViewProjection, viewProjection); err != nil {
		return nil, fmt.Errorf("scene: set view-projection: %w", err)
	}
	if !cam.Frustum().ContainsSphere(mgl32.Vec3{}, cubeBoundingRadius) {
		logger.Warningf("cube is partially outside the view at distance %.2f fov %.1f", cfg.distance, cfg.fovDegrees)
	}

	return &Resources{
		Mesh:           mesh,
		Program:        program,
		Camera:         cam,
		ViewProjection: viewProjection,
	}, nil
}
