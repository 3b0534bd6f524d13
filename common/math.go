package common

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// clipDepthCorrection remaps OpenGL-style clip depth [-w, w] onto WebGPU's [0, w].
// Column-major: z' = 0.5*z + 0.5*w.
var clipDepthCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Perspective creates a right-handed perspective projection whose clip depth lies in [0, 1],
// matching the WebGPU clip volume.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	return clipDepthCorrection.Mul4(mgl32.Perspective(fovY, aspect, near, far))
}

// RotationY returns a homogeneous rotation about the vertical axis.
// The angle is not normalized; sin/cos periodicity handles wrap-around.
func RotationY(angle float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DY(angle)
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// MatrixToBytes returns a copy of m as 64 bytes in column-major order, the layout
// expected by a WGSL mat4x4f uniform.
func MatrixToBytes(m mgl32.Mat4) []byte {
	out := make([]byte, len(m)*4)
	copy(out, SliceToBytes(m[:]))
	return out
}
