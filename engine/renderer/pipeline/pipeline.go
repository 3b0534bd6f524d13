package pipeline

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	vertexShader, fragmentShader shader.Shader

	// renderPipeline is nil until the renderer registers the pipeline on the GPU
	renderPipeline *wgpu.RenderPipeline

	depthTestEnabled  bool
	depthWriteEnabled bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
}

// Pipeline describes a render pipeline: a vertex and fragment shader pair plus the fixed
// function state baked into the GPU pipeline object at creation. In WebGPU the depth test
// is part of that state, so it has to be decided before the pipeline is registered.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline.
	PipelineKey() string

	// Shader retrieves the shader for the given stage, or nil if not set.
	//
	// Parameters:
	//   - shaderType: the stage to look up
	//
	// Returns:
	//   - shader.Shader: the shader for that stage
	Shader(shaderType shader.ShaderType) shader.Shader

	// BindGroupLayoutDescriptors merges the layout descriptors of both stages.
	// A binding declared by both stages gets the union of their visibilities.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: the merged descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// Pipeline returns the GPU render pipeline, or nil before registration.
	Pipeline() *wgpu.RenderPipeline

	// DepthTestEnabled returns whether fragments are depth tested with CompareFunctionLess.
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether fragments write depth.
	DepthWriteEnabled() bool

	// CullMode returns the face culling mode.
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology.
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the winding order treated as front facing.
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask of the single color target.
	WriteMask() wgpu.ColorWriteMask

	// SetRenderPipeline stores the GPU pipeline created by the renderer.
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release releases the GPU pipeline if one was created.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a render pipeline description. Depth test and depth write default to
// off and the topology to a triangle list with no culling.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: the configured pipeline description
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey: pipelineKey,
		cullMode:    wgpu.CullModeNone,
		topology:    wgpu.PrimitiveTopologyTriangleList,
		frontFace:   wgpu.FrontFaceCCW,
		writeMask:   wgpu.ColorWriteMaskAll,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	var vertexLayouts, fragmentLayouts map[int]wgpu.BindGroupLayoutDescriptor
	if p.vertexShader != nil {
		vertexLayouts = p.vertexShader.BindGroupLayoutDescriptors()
	}
	if p.fragmentShader != nil {
		fragmentLayouts = p.fragmentShader.BindGroupLayoutDescriptors()
	}
	return mergeBindGroupLayouts(vertexLayouts, fragmentLayouts)
}

func (p *pipeline) Pipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}

// mergeBindGroupLayouts unions the per-group entries of two stages. Entries sharing a
// binding number have their visibility flags ORed together.
func mergeBindGroupLayouts(vertexLayouts, fragmentLayouts map[int]wgpu.BindGroupLayoutDescriptor) map[int]wgpu.BindGroupLayoutDescriptor {
	entriesByGroup := make(map[int]map[uint32]wgpu.BindGroupLayoutEntry)
	collect := func(layouts map[int]wgpu.BindGroupLayoutDescriptor) {
		for g, desc := range layouts {
			if entriesByGroup[g] == nil {
				entriesByGroup[g] = make(map[uint32]wgpu.BindGroupLayoutEntry)
			}
			for _, e := range desc.Entries {
				if existing, ok := entriesByGroup[g][e.Binding]; ok {
					existing.Visibility |= e.Visibility
					entriesByGroup[g][e.Binding] = existing
					continue
				}
				entriesByGroup[g][e.Binding] = e
			}
		}
	}
	collect(vertexLayouts)
	collect(fragmentLayouts)

	merged := make(map[int]wgpu.BindGroupLayoutDescriptor, len(entriesByGroup))
	for g, byBinding := range entriesByGroup {
		entries := make([]wgpu.BindGroupLayoutEntry, 0, len(byBinding))
		for _, e := range byBinding {
			entries = append(entries, e)
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Binding < entries[j].Binding
		})
		merged[g] = wgpu.BindGroupLayoutDescriptor{Entries: entries}
	}
	return merged
}
