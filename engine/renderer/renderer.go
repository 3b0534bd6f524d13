package renderer

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/oxy-cube/common"
	"github.com/Carmen-Shannon/oxy-cube/engine/log"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-cube/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrNoSurface          = errors.New("renderer: window has no surface descriptor")
	ErrNoAdapter          = errors.New("renderer: no suitable GPU adapter")
	ErrNoDevice           = errors.New("renderer: failed to create GPU device")
	ErrSurfaceUnsupported = errors.New("renderer: surface is not supported by the adapter")
	ErrDepthStateLocked   = errors.New("renderer: depth test must be enabled before any program is created")
	ErrDuplicateProgram   = errors.New("renderer: program already exists")
	ErrUnknownProgram     = errors.New("renderer: unknown program")
	ErrNoActiveProgram    = errors.New("renderer: no active program")
	ErrUnknownSlot        = errors.New("renderer: active program has no uniform at slot")
	ErrDuplicateMesh      = errors.New("renderer: mesh already exists")
	ErrUnknownMesh        = errors.New("renderer: unknown mesh")
	ErrNoMesh             = errors.New("renderer: no mesh bound")
	ErrIndexRange         = errors.New("renderer: index count exceeds bound mesh")
	ErrFrameNotStarted    = errors.New("renderer: no frame in progress")
	ErrFrameInProgress    = errors.New("renderer: frame already in progress")
	ErrReleased           = errors.New("renderer: released")
)

// uniformGroup is the bind group holding uniform slots. Slot N is @group(0) @binding(N).
const uniformGroup = 0

// matrixSize is the byte size of a mat4x4f uniform.
const matrixSize = 64

var logger = log.New("renderer")

// program is a registered pipeline plus the uniform bind groups created for it.
type program struct {
	pipeline pipeline.Pipeline
	// bindGroups are ordered by group index
	bindGroups []GroupBinding
	// uniforms is the provider of uniformGroup, nil if the program declares none
	uniforms bind_group_provider.BindGroupProvider
	// slots maps a binding in uniformGroup to its buffer size
	slots map[int]uint64
}

// Surface is the window side of the renderer: a WebGPU surface source of a fixed size.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	backend RendererBackend

	programs map[string]*program
	meshes   map[string]bind_group_provider.BindGroupProvider

	depthTest     bool
	activeProgram *program
	boundMesh     bind_group_provider.BindGroupProvider
	frameOpen     bool
	released      bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
}

// Renderer is a small, stateful GPU API over WebGPU: programs and meshes are created once and
// addressed by key, one program and one mesh are bound at a time, and a frame is the sequence
// Clear, uniform writes, DrawIndexed, Present.
//
// Every method must be called from the thread that owns the window.
type Renderer interface {
	// EnableDepthTest enables the less-than depth test and depth writes for every program
	// created afterwards. WebGPU bakes depth state into the pipeline, so calling this once a
	// program exists returns ErrDepthStateLocked.
	//
	// Returns:
	//   - error: ErrDepthStateLocked if a program was already created
	EnableDepthTest() error

	// CreateProgram compiles and links a vertex and fragment shader into a render pipeline
	// and allocates the uniform buffers declared in @group(0).
	//
	// Parameters:
	//   - key: the unique key for the program
	//   - vertexSource: WGSL source with a @vertex entry point
	//   - fragmentSource: WGSL source with a @fragment entry point
	//
	// Returns:
	//   - error: the parse or driver diagnostic if the program cannot be built
	CreateProgram(key, vertexSource, fragmentSource string) error

	// UseProgram makes the program with the given key active.
	//
	// Parameters:
	//   - key: the program key passed to CreateProgram
	//
	// Returns:
	//   - error: ErrUnknownProgram if no such program exists
	UseProgram(key string) error

	// CreateMesh uploads positions (3 float32 per vertex) and uint32 indices into static buffers.
	//
	// Parameters:
	//   - label: the unique label for the mesh
	//   - vertices: tightly packed xyz positions
	//   - indices: triangle list indices into vertices
	//
	// Returns:
	//   - error: an error if the data is malformed or the buffers could not be created
	CreateMesh(label string, vertices []float32, indices []uint32) error

	// BindMesh binds the mesh with the given label for subsequent draws.
	BindMesh(label string) error

	// SetUniformMatrix writes a 4x4 matrix into uniform slot N of the active program.
	//
	// Parameters:
	//   - slot: the binding index in @group(0)
	//   - m: the column-major matrix
	//
	// Returns:
	//   - error: ErrNoActiveProgram or ErrUnknownSlot
	SetUniformMatrix(slot int, m mgl32.Mat4) error

	// Clear starts a frame, clearing color to c and depth to 1.
	//
	// Returns:
	//   - error: ErrFrameInProgress if the previous frame was not presented, or the acquire error
	Clear(c common.Color) error

	// DrawIndexed draws the first count indices of the bound mesh with the active program.
	//
	// Returns:
	//   - error: ErrFrameNotStarted, ErrNoActiveProgram, ErrNoMesh or ErrIndexRange
	DrawIndexed(count int) error

	// Present submits the frame and presents it. With vsync this blocks until the next
	// vertical blank.
	//
	// Returns:
	//   - error: ErrFrameNotStarted or the submission error
	Present() error

	// Release releases every mesh, program and the GPU device. The renderer is unusable afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a WebGPU renderer drawing into the given surface. The calling goroutine
// must be locked to the OS thread that created the window.
//
// Parameters:
//   - surface: the window providing the surface descriptor and pixel size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the ready renderer with a configured surface
//   - error: an error if no adapter, device or surface configuration could be obtained
func NewRenderer(surface Surface, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(options...)

	backend, err := newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter)
	if err != nil {
		return nil, err
	}
	if err := r.attach(backend, surface.Width(), surface.Height()); err != nil {
		backend.Release()
		return nil, err
	}
	return r, nil
}

// newRenderer applies options to an empty renderer without touching the GPU.
func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		programs:    make(map[string]*program),
		meshes:      make(map[string]bind_group_provider.BindGroupProvider),
		presentMode: PresentModeUncapped,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// attach configures backend for the surface size and makes it the renderer's backend.
func (r *renderer) attach(backend RendererBackend, width, height int) error {
	backend.SetPresentMode(r.presentMode)
	if err := backend.ConfigureSurface(width, height); err != nil {
		return err
	}
	r.backend = backend
	logger.Infof("surface configured %dx%d present mode %s", width, height, r.presentMode)
	return nil
}

func (r *renderer) EnableDepthTest() error {
	if len(r.programs) > 0 {
		return ErrDepthStateLocked
	}
	r.depthTest = true
	return nil
}

func (r *renderer) CreateProgram(key, vertexSource, fragmentSource string) error {
	if r.released {
		return ErrReleased
	}
	if _, exists := r.programs[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateProgram, key)
	}

	vs, err := shader.NewShader(key+" Vertex", shader.ShaderTypeVertex, vertexSource)
	if err != nil {
		return err
	}
	fs, err := shader.NewShader(key+" Fragment", shader.ShaderTypeFragment, fragmentSource)
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(key,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithDepthTestEnabled(r.depthTest),
		pipeline.WithTopology(wgpu.PrimitiveTopologyTriangleList),
		pipeline.WithFrontFace(wgpu.FrontFaceCCW),
		pipeline.WithCullMode(wgpu.CullModeNone),
	)
	if err := r.backend.RegisterRenderPipeline(p); err != nil {
		return err
	}

	prog := &program{
		pipeline: p,
		slots:    make(map[int]uint64),
	}
	descriptors := p.BindGroupLayoutDescriptors()
	groups := make([]int, 0, len(descriptors))
	for g := range descriptors {
		groups = append(groups, g)
	}
	sort.Ints(groups)
	for _, g := range groups {
		provider := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("%s Group %d", key, g))
		prog.bindGroups = append(prog.bindGroups, GroupBinding{Group: uint32(g), Provider: provider})
		if err := r.backend.InitBindGroup(provider, descriptors[g]); err != nil {
			releaseProgram(prog)
			return err
		}
		if g == uniformGroup {
			prog.uniforms = provider
			for _, e := range descriptors[g].Entries {
				prog.slots[int(e.Binding)] = e.Buffer.MinBindingSize
			}
		}
	}

	r.programs[key] = prog
	logger.Debugf("program %q created with %d uniform slot(s), depth test %t", key, len(prog.slots), r.depthTest)
	return nil
}

func (r *renderer) UseProgram(key string) error {
	prog, ok := r.programs[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProgram, key)
	}
	r.activeProgram = prog
	return nil
}

func (r *renderer) CreateMesh(label string, vertices []float32, indices []uint32) error {
	if r.released {
		return ErrReleased
	}
	if _, exists := r.meshes[label]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateMesh, label)
	}
	if len(vertices) == 0 || len(vertices)%3 != 0 {
		return fmt.Errorf("renderer: mesh %q has %d floats, want a non-zero multiple of 3", label, len(vertices))
	}
	if len(indices) == 0 {
		return fmt.Errorf("renderer: mesh %q has no indices", label)
	}
	vertexCount := uint32(len(vertices) / 3)
	for i, idx := range indices {
		if idx >= vertexCount {
			return fmt.Errorf("renderer: mesh %q index %d references vertex %d of %d", label, i, idx, vertexCount)
		}
	}

	provider := bind_group_provider.NewBindGroupProvider(label)
	if err := r.backend.InitMeshBuffers(provider, common.SliceToBytes(vertices), common.SliceToBytes(indices), len(indices)); err != nil {
		provider.Release()
		return err
	}
	r.meshes[label] = provider
	return nil
}

func (r *renderer) BindMesh(label string) error {
	mesh, ok := r.meshes[label]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMesh, label)
	}
	r.boundMesh = mesh
	return nil
}

func (r *renderer) SetUniformMatrix(slot int, m mgl32.Mat4) error {
	if r.activeProgram == nil {
		return ErrNoActiveProgram
	}
	size, ok := r.activeProgram.slots[slot]
	if !ok || size < matrixSize {
		return fmt.Errorf("%w %d", ErrUnknownSlot, slot)
	}

	r.backend.WriteBuffers([]bind_group_provider.BufferWrite{
		{
			Provider: r.activeProgram.uniforms,
			Binding:  slot,
			Data:     common.MatrixToBytes(m),
		},
	})
	return nil
}

func (r *renderer) Clear(c common.Color) error {
	if r.released {
		return ErrReleased
	}
	if r.frameOpen {
		return ErrFrameInProgress
	}
	if err := r.backend.BeginFrame(wgpu.Color{R: c.R, G: c.G, B: c.B, A: c.A}); err != nil {
		return err
	}
	r.frameOpen = true
	return nil
}

func (r *renderer) DrawIndexed(count int) error {
	switch {
	case !r.frameOpen:
		return ErrFrameNotStarted
	case r.activeProgram == nil:
		return ErrNoActiveProgram
	case r.boundMesh == nil:
		return ErrNoMesh
	case count < 0 || count > r.boundMesh.IndexCount():
		return fmt.Errorf("%w: %d of %d", ErrIndexRange, count, r.boundMesh.IndexCount())
	}

	r.backend.DrawCall(r.activeProgram.pipeline, r.boundMesh, uint32(count), r.activeProgram.bindGroups)
	return nil
}

func (r *renderer) Present() error {
	if !r.frameOpen {
		return ErrFrameNotStarted
	}
	r.frameOpen = false
	if err := r.backend.EndFrame(); err != nil {
		return err
	}
	return r.backend.Present()
}

func (r *renderer) Release() {
	if r.released {
		return
	}
	r.released = true

	for label, mesh := range r.meshes {
		mesh.Release()
		delete(r.meshes, label)
	}
	for key, prog := range r.programs {
		releaseProgram(prog)
		delete(r.programs, key)
	}
	r.activeProgram = nil
	r.boundMesh = nil
	if r.backend != nil {
		r.backend.Release()
	}
	logger.Debug("renderer released")
}

func releaseProgram(prog *program) {
	for _, bg := range prog.bindGroups {
		bg.Provider.Release()
	}
	prog.pipeline.Release()
}
