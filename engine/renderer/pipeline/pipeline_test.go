package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("cube")

	assert.Equal(t, "cube", p.PipelineKey())
	assert.False(t, p.DepthTestEnabled())
	assert.False(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Nil(t, p.Pipeline())
	assert.Nil(t, p.Shader(shader.ShaderTypeVertex))
	assert.Empty(t, p.BindGroupLayoutDescriptors())
}

func TestWithDepthTestEnablesWrites(t *testing.T) {
	p := NewPipeline("cube", WithDepthTestEnabled(true))
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())

	p = NewPipeline("cube", WithDepthTestEnabled(true), WithDepthWriteEnabled(false))
	assert.True(t, p.DepthTestEnabled())
	assert.False(t, p.DepthWriteEnabled())
}

func TestBindGroupLayoutsMergeVisibility(t *testing.T) {
	vs, err := shader.NewShader("vs", shader.ShaderTypeVertex, `
@group(0) @binding(0) var<uniform> view_projection: mat4x4f;
@group(0) @binding(1) var<uniform> model: mat4x4f;
@vertex fn vs_main(@location(0) position: vec3f) -> @builtin(position) vec4f {
    return view_projection * model * vec4f(position, 1.0);
}`)
	require.NoError(t, err)
	fs, err := shader.NewShader("fs", shader.ShaderTypeFragment, `
@group(0) @binding(1) var<uniform> model: mat4x4f;
@group(1) @binding(0) var<uniform> tint: vec4f;
@fragment fn fs_main() -> @location(0) vec4f {
    return tint * model[0][0];
}`)
	require.NoError(t, err)

	p := NewPipeline("cube", WithVertexShader(vs), WithFragmentShader(fs))
	assert.Same(t, vs, p.Shader(shader.ShaderTypeVertex))
	assert.Same(t, fs, p.Shader(shader.ShaderTypeFragment))

	descs := p.BindGroupLayoutDescriptors()
	require.Len(t, descs, 2)

	group0 := descs[0].Entries
	require.Len(t, group0, 2)
	assert.Equal(t, wgpu.ShaderStageVertex, group0[0].Visibility)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, group0[1].Visibility)

	group1 := descs[1].Entries
	require.Len(t, group1, 1)
	assert.Equal(t, wgpu.ShaderStageFragment, group1[0].Visibility)
	assert.Equal(t, uint64(16), group1[0].Buffer.MinBindingSize)
}
