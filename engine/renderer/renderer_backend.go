package renderer

import (
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// GroupBinding is a bind group and the @group index it is bound at.
type GroupBinding struct {
	Group    uint32
	Provider bind_group_provider.BindGroupProvider
}

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May tear but measures the raw frame cost.
	PresentModeUncapped PresentMode = iota

	// PresentModeVSync waits for the next vertical blank, capping the frame rate to the
	// monitor's refresh rate. The wait happens inside Present.
	PresentModeVSync
)

func (m PresentMode) String() string {
	if m == PresentModeVSync {
		return "vsync"
	}
	return "uncapped"
}

// RendererBackend is the GPU API the Renderer drives. The Renderer owns the bookkeeping
// (active program, bound mesh, open frame); the backend only talks to the GPU.
type RendererBackend interface {
	// ConfigureSurface configures the swapchain and the depth attachment for the given size.
	//
	// Parameters:
	//   - width: the surface width in pixels
	//   - height: the surface height in pixels
	//
	// Returns:
	//   - error: an error if the surface or depth texture could not be configured
	ConfigureSurface(width, height int) error

	// SetPresentMode sets the present mode used by the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// RegisterRenderPipeline creates the shader modules, pipeline layout and render pipeline
	// for p and stores the result with p.SetRenderPipeline.
	//
	// Parameters:
	//   - p: the pipeline description
	//
	// Returns:
	//   - error: the driver error if compilation or validation fails
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitMeshBuffers uploads vertex and index data into static buffers stored on provider.
	//
	// Parameters:
	//   - provider: the provider that will own the buffers
	//   - vertexData: the raw vertex bytes
	//   - indexData: the raw uint32 index bytes
	//   - indexCount: the number of indices in indexData
	//
	// Returns:
	//   - error: an error if a buffer could not be created
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates one buffer per layout entry, sized by MinBindingSize, and a bind
	// group over them, all stored on provider.
	//
	// Parameters:
	//   - provider: the provider that will own the resources
	//   - descriptor: the layout descriptor of the group
	//
	// Returns:
	//   - error: an error if the layout, a buffer or the bind group could not be created
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// WriteBuffers queues buffer writes. They land before the next submitted command buffer.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next swapchain texture and opens a render pass that clears
	// color to clearColor and depth to 1.
	//
	// Returns:
	//   - error: an error if the swapchain texture or encoder could not be acquired
	BeginFrame(clearColor wgpu.Color) error

	// DrawCall encodes an indexed draw of indexCount indices of mesh with p. Each bind group
	// is bound at its own group index.
	DrawCall(p pipeline.Pipeline, mesh bind_group_provider.BindGroupProvider, indexCount uint32, bindGroups []GroupBinding)

	// EndFrame ends the render pass and submits it. The frame is not yet presented.
	//
	// Returns:
	//   - error: an error if the command buffer could not be finished
	EndFrame() error

	// Present presents the surface and releases the swapchain texture.
	//
	// Returns:
	//   - error: an error if the surface could not be presented
	Present() error

	// Release releases the depth texture, surface, device, adapter and instance.
	Release()
}
