package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies the pipeline stage a shader module is written for.
type ShaderType int

const (
	// ShaderTypeVertex is a module with a @vertex entry point.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is a module with a @fragment entry point.
	ShaderTypeFragment
)

func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderType(%d)", int(t))
	}
}

var (
	ErrEmptySource  = errors.New("shader: source is empty")
	ErrNoEntryPoint = errors.New("shader: no entry point for stage")
)

// shader is the implementation of the Shader interface.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	entryPoint                 string
	vertexLayouts              []wgpu.VertexBufferLayout
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	module                     *wgpu.ShaderModuleDescriptor
}

// Shader is a WGSL module with the metadata the renderer needs to build a pipeline for it:
// the entry point, the vertex buffer layout of a vertex stage, and the bind group layouts
// of every @group/@binding resource declared in the source.
type Shader interface {
	// Key returns the unique identifier for this shader.
	Key() string

	// Source returns the WGSL source code.
	Source() string

	// ShaderType returns the stage this shader was parsed for.
	ShaderType() ShaderType

	// EntryPoint returns the name of the stage's entry point function.
	EntryPoint() string

	// VertexLayouts returns the vertex buffer layouts derived from the vertex input structs.
	// Fragment shaders return nil.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: one layout per vertex input struct, in declaration order
	VertexLayouts() []wgpu.VertexBufferLayout

	// BindGroupLayoutDescriptors returns the layout descriptors parsed from the source, keyed by group index.
	// Entries carry the visibility of this shader's stage and are sorted by binding.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName returns the WGSL variable name bound at group and binding, or "" if none.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - string: the variable name
	BindGroupVarName(group, binding int) string

	// Module returns the descriptor used to create the GPU shader module.
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader parses WGSL source for the given stage.
//
// Parameters:
//   - key: a unique identifier for the shader, used as the module label
//   - shaderType: the stage the source is written for
//   - source: the WGSL source code
//
// Returns:
//   - Shader: the parsed shader
//   - error: ErrEmptySource or ErrNoEntryPoint if the source cannot serve the stage
func NewShader(key string, shaderType ShaderType, source string) (Shader, error) {
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptySource, key)
	}

	s := &shader{
		key:        key,
		source:     source,
		shaderType: shaderType,
		module: &wgpu.ShaderModuleDescriptor{
			Label: key,
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
				Code: source,
			},
		},
	}

	cleaned := stripComments(source)
	s.entryPoint = parseEntryPoint(cleaned, shaderType)
	if s.entryPoint == "" {
		return nil, fmt.Errorf("%w: %s has no @%s function", ErrNoEntryPoint, key, shaderType)
	}

	var visibility wgpu.ShaderStage
	switch shaderType {
	case ShaderTypeVertex:
		visibility = wgpu.ShaderStageVertex
		s.vertexLayouts = parseVertexLayouts(cleaned)
	case ShaderTypeFragment:
		visibility = wgpu.ShaderStageFragment
	}
	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(cleaned, visibility)

	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	return s.bindingVarNames[group][binding]
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}
