package common

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func project(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	clip := m.Mul4x1(p.Vec4(1))
	return clip.Vec3().Mul(1 / clip.W())
}

// viewProjection pulls the eye back along +Z by distance, looking at the origin.
func viewProjection(distance, fovY, aspect, near, far float32) mgl32.Mat4 {
	return Perspective(fovY, aspect, near, far).Mul4(mgl32.Translate3D(0, 0, -distance))
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := Perspective(mgl32.DegToRad(90), 16.0/9.0, 0.1, 100)

	assert.InDelta(t, 0.0, project(proj, mgl32.Vec3{0, 0, -0.1}).Z(), 1e-5)
	assert.InDelta(t, 1.0, project(proj, mgl32.Vec3{0, 0, -100}).Z(), 1e-5)
	mid := project(proj, mgl32.Vec3{0, 0, -3}).Z()
	assert.Greater(t, mid, float32(0))
	assert.Less(t, mid, float32(1))
}

func TestViewProjectionCentersOrigin(t *testing.T) {
	vp := viewProjection(3, mgl32.DegToRad(90), 1280.0/720.0, 0.1, 100)

	origin := project(vp, mgl32.Vec3{})
	assert.InDelta(t, 0.0, origin.X(), 1e-6)
	assert.InDelta(t, 0.0, origin.Y(), 1e-6)

	// A 90 degree vertical fov puts y=3 at distance 3 on the top edge.
	top := project(vp, mgl32.Vec3{0, 3, 0})
	assert.InDelta(t, 1.0, top.Y(), 1e-5)
}

func TestRotationY(t *testing.T) {
	ident, zero := mgl32.Ident4(), RotationY(0)
	assert.InDeltaSlice(t, ident[:], zero[:], 1e-7)

	x := RotationY(math.Pi / 2).Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	want := mgl32.Vec4{0, 0, -1, 1}
	for i := range want {
		assert.InDelta(t, want[i], x[i], 1e-6, "component %d", i)
	}

	// Angles are not normalized.
	once, wrapped := RotationY(0.5), RotationY(0.5+2*math.Pi)
	assert.InDeltaSlice(t, once[:], wrapped[:], 1e-5)
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]float32{}))
	assert.Len(t, SliceToBytes([]float32{1, 2, 3}), 12)
	assert.Len(t, SliceToBytes([]uint32{0, 1, 2, 3}), 16)
}

func TestMatrixToBytes(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3)
	b := MatrixToBytes(m)
	require.Len(t, b, 64)

	// Column-major: the translation sits in elements 12..14.
	for i, want := range m {
		got := math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
		assert.Equal(t, want, got, "element %d", i)
	}

	b[0] = 0xFF
	assert.Equal(t, float32(1), m[0])
}

func TestGray(t *testing.T) {
	assert.Equal(t, Color{R: 0.2, G: 0.2, B: 0.2, A: 1}, Gray(0.2))
}
