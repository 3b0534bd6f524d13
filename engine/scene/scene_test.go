package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"
	"testing/fstest"

	"github.com/Carmen-Shannon/oxy-cube/common"
	"github.com/Carmen-Shannon/oxy-cube/engine/log"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uniformWrite struct {
	slot int
	m    mgl32.Mat4
}

// fakeDevice records every call and enforces that a program is active before uniform
// writes and draws.
type fakeDevice struct {
	calls      []string
	uniforms   []uniformWrite
	draws      []int
	clears     []common.Color
	programs   map[string][2]string
	active     string
	violations []string
	failOn     string
	failErr    error
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{programs: make(map[string][2]string)}
}

func (d *fakeDevice) record(call string) error {
	d.calls = append(d.calls, call)
	if call == d.failOn {
		return d.failErr
	}
	return nil
}

func (d *fakeDevice) EnableDepthTest() error {
	return d.record("EnableDepthTest")
}

func (d *fakeDevice) CreateProgram(key, vertexSource, fragmentSource string) error {
	if err := d.record("CreateProgram"); err != nil {
		return err
	}
	d.programs[key] = [2]string{vertexSource, fragmentSource}
	return nil
}

func (d *fakeDevice) UseProgram(key string) error {
	if err := d.record("UseProgram"); err != nil {
		return err
	}
	if _, ok := d.programs[key]; !ok {
		return fmt.Errorf("unknown program %q", key)
	}
	d.active = key
	return nil
}

func (d *fakeDevice) CreateMesh(label string, vertices []float32, indices []uint32) error {
	return d.record("CreateMesh")
}

func (d *fakeDevice) BindMesh(label string) error {
	return d.record("BindMesh")
}

func (d *fakeDevice) SetUniformMatrix(slot int, m mgl32.Mat4) error {
	if d.active == "" {
		d.violations = append(d.violations, "SetUniformMatrix")
	}
	if err := d.record(fmt.Sprintf("SetUniformMatrix(%d)", slot)); err != nil {
		return err
	}
	d.uniforms = append(d.uniforms, uniformWrite{slot: slot, m: m})
	return nil
}

func (d *fakeDevice) Clear(c common.Color) error {
	if err := d.record("Clear"); err != nil {
		return err
	}
	d.clears = append(d.clears, c)
	return nil
}

func (d *fakeDevice) DrawIndexed(count int) error {
	if d.active == "" {
		d.violations = append(d.violations, "DrawIndexed")
	}
	if err := d.record("DrawIndexed"); err != nil {
		return err
	}
	d.draws = append(d.draws, count)
	return nil
}

func (d *fakeDevice) Present() error {
	return d.record("Present")
}

func (d *fakeDevice) uniformCount(slot int) int {
	n := 0
	for _, u := range d.uniforms {
		if u.slot == slot {
			n++
		}
	}
	return n
}

const (
	testVertexSource   = "@vertex fn vs_main() {}"
	testFragmentSource = "@fragment fn fs_main() {}"
)

func shaderFS() fstest.MapFS {
	return fstest.MapFS{
		DefaultVertexShaderPath:   {Data: []byte(testVertexSource)},
		DefaultFragmentShaderPath: {Data: []byte(testFragmentSource)},
	}
}

func TestCubeMesh(t *testing.T) {
	mesh := CubeMesh()
	assert.Len(t, mesh.Vertices, 24)
	assert.Equal(t, 24, mesh.IndexCount())
	for _, idx := range mesh.Indices {
		assert.Less(t, idx, uint32(8))
	}
}

func TestInitializeOrder(t *testing.T) {
	dev := newFakeDevice()

	res, err := Initialize(dev, shaderFS())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"EnableDepthTest",
		"CreateProgram",
		"UseProgram",
		"CreateMesh",
		"BindMesh",
		"SetUniformMatrix(0)",
	}, dev.calls)
	assert.Empty(t, dev.violations)
	assert.Equal(t, [2]string{testVertexSource, testFragmentSource}, dev.programs["cube"])

	want := common.Perspective(mgl32.DegToRad(90), 1280.0/720.0, 0.1, 100).Mul4(mgl32.Translate3D(0, 0, -3))
	assert.InDeltaSlice(t, want[:], res.ViewProjection[:], 1e-6)
	assert.Equal(t, res.ViewProjection, res.Camera.ViewProjectionMatrix())
	require.Len(t, dev.uniforms, 1)
	assert.Equal(t, res.ViewProjection, dev.uniforms[0].m)
	assert.Equal(t, "cube", res.Program.Key)
	assert.Equal(t, 24, res.Mesh.IndexCount())
}

func TestInitializeCustomShaderPaths(t *testing.T) {
	dev := newFakeDevice()
	fsys := fstest.MapFS{
		"shaders/a.wgsl": {Data: []byte("a")},
		"shaders/b.wgsl": {Data: []byte("b")},
	}

	_, err := Initialize(dev, fsys, WithShaderPaths("shaders/a.wgsl", "shaders/b.wgsl"))
	require.NoError(t, err)
	assert.Equal(t, [2]string{"a", "b"}, dev.programs["cube"])
}

func TestInitializeMissingShader(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"vertex", fstest.MapFS{DefaultFragmentShaderPath: {Data: []byte(testFragmentSource)}}},
		{"fragment", fstest.MapFS{DefaultVertexShaderPath: {Data: []byte(testVertexSource)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := newFakeDevice()
			res, err := Initialize(dev, tt.fsys)

			assert.Nil(t, res)
			assert.ErrorIs(t, err, ErrShaderSource)
			assert.ErrorIs(t, err, fs.ErrNotExist)
			assert.NotContains(t, dev.calls, "CreateProgram")
		})
	}
}

func TestInitializeLinkFailure(t *testing.T) {
	dev := newFakeDevice()
	dev.failOn = "CreateProgram"
	dev.failErr = errors.New("error: expected ';', found 'fn'")

	_, err := Initialize(dev, shaderFS())
	assert.ErrorIs(t, err, ErrProgramLink)
	assert.ErrorIs(t, err, dev.failErr)
	assert.Contains(t, err.Error(), "expected ';'")
	assert.NotContains(t, dev.calls, "CreateMesh")
}

func TestInitializeDeviceFailures(t *testing.T) {
	for _, step := range []string{"EnableDepthTest", "UseProgram", "CreateMesh", "BindMesh", "SetUniformMatrix(0)"} {
		t.Run(step, func(t *testing.T) {
			dev := newFakeDevice()
			dev.failOn = step
			dev.failErr = errors.New("device lost")

			_, err := Initialize(dev, shaderFS())
			assert.ErrorIs(t, err, dev.failErr)
			assert.Equal(t, step, dev.calls[len(dev.calls)-1])
		})
	}
}

func TestInitializeWarnsWhenCubeIsClipped(t *testing.T) {
	var buf bytes.Buffer
	log.SetSink(&buf)
	t.Cleanup(func() { log.SetSink(os.Stderr) })

	_, err := Initialize(newFakeDevice(), shaderFS())
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "outside the view")

	_, err = Initialize(newFakeDevice(), shaderFS(), WithCamera(1.5, 90, 0.1, 100))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "outside the view")
}
