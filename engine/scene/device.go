package scene

import (
	"github.com/Carmen-Shannon/oxy-cube/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Device is the GPU boundary the scene drives. Resources are addressed by key so the
// scene never holds GPU handles. renderer.Renderer implements it on WebGPU.
//
// Uniform slot 0 holds the view-projection matrix and slot 1 the model matrix.
type Device interface {
	EnableDepthTest() error
	CreateProgram(key, vertexSource, fragmentSource string) error
	UseProgram(key string) error
	CreateMesh(label string, vertices []float32, indices []uint32) error
	BindMesh(label string) error
	SetUniformMatrix(slot int, m mgl32.Mat4) error
	Clear(c common.Color) error
	DrawIndexed(count int) error
	Present() error
}

// Uniform slots of the cube program.
const (
	SlotViewProjection = 0
	SlotModel          = 1
)
