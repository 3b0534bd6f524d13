package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is a debug label prefixed to every GPU object created for this provider.
	label string

	// The following fields are GPU allocated resources populated by the Renderer and released by Release.

	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout
	// buffers holds the uniform buffers keyed by binding index.
	buffers map[int]*wgpu.Buffer

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	// indexCount is the number of indices uploaded to indexBuffer.
	indexCount int
}

// BindGroupProvider holds the GPU resources of one drawable unit. A uniform provider carries
// a bind group and its buffers; a mesh provider carries vertex and index buffers. The
// Renderer creates the resources and stores them here; the provider owns them afterwards.
type BindGroupProvider interface {
	// Release releases every GPU resource held by this provider. It is safe to call twice.
	Release()

	// Label returns the debug label for this provider.
	Label() string

	// BindGroup returns the bind group, or nil before InitBindGroup.
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the bind group layout, or nil before InitBindGroup.
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the buffer at a binding, or nil if none was created.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// VertexBuffer returns the vertex buffer, or nil before InitMeshBuffers.
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the index buffer, or nil before InitMeshBuffers.
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices in the index buffer.
	IndexCount() int

	SetBindGroup(bg *wgpu.BindGroup)
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)
	SetBuffer(binding int, buf *wgpu.Buffer)
	SetVertexBuffer(buf *wgpu.Buffer)
	SetIndexBuffer(buf *wgpu.Buffer)
	SetIndexCount(count int)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty provider.
//
// Parameters:
//   - label: the debug label for the GPU objects created for this provider
//
// Returns:
//   - BindGroupProvider: the empty provider
func NewBindGroupProvider(label string) BindGroupProvider {
	return &bindGroupProvider{
		label:   label,
		buffers: make(map[int]*wgpu.Buffer),
	}
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer) {
	p.vertexBuffer = buf
}

func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer) {
	p.indexBuffer = buf
}

func (p *bindGroupProvider) SetIndexCount(count int) {
	p.indexCount = count
}

func (p *bindGroupProvider) Release() {
	// the bind group references the buffers, so it goes first
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.indexCount = 0
}
