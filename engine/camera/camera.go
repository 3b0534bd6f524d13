package camera

import (
	"github.com/Carmen-Shannon/oxy-cube/common"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	up mgl32.Vec3

	distance float32
	fov      float32
	aspect   float32
	near     float32
	far      float32

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4
}

// Camera is a fixed perspective camera on the +Z axis looking at the origin.
// Matrices are computed once at construction, so the getters are plain reads.
type Camera interface {
	// Position returns the eye position in world space.
	//
	// Returns:
	//   - mgl32.Vec3: (0, 0, distance)
	Position() mgl32.Vec3

	// Distance returns how far the eye sits from the origin.
	Distance() float32

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// ViewMatrix returns the current view matrix (column-major).
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix with [0, 1] clip depth.
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	ViewProjectionMatrix() mgl32.Mat4

	// Frustum returns the world-space view frustum of the current view-projection.
	Frustum() common.Frustum
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera 3 units from the origin with a 90 degree field of view,
// a 1280x720 aspect ratio and clip planes at 0.1 and 100.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		up:       mgl32.Vec3{0, 1, 0},
		distance: 3,
		fov:      mgl32.DegToRad(90),
		aspect:   1280.0 / 720.0,
		near:     0.1,
		far:      100,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	return mgl32.Vec3{0, 0, c.distance}
}

func (c *cameraImpl) Distance() float32 {
	return c.distance
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Frustum() common.Frustum {
	return common.ExtractFrustum(c.viewProjectionMatrix)
}

// updateMatrices recalculates the view, projection and view-projection matrices.
func (c *cameraImpl) updateMatrices() {
	c.viewMatrix = mgl32.LookAtV(c.Position(), mgl32.Vec3{}, c.up)
	c.projectionMatrix = common.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
