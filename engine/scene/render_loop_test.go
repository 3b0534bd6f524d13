package scene

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-cube/common"
	"github.com/Carmen-Shannon/oxy-cube/engine/profiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock returns a clock that advances by step on every call.
func stepClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func initializedDevice(t *testing.T) (*fakeDevice, *Resources) {
	t.Helper()
	dev := newFakeDevice()
	res, err := Initialize(dev, shaderFS())
	require.NoError(t, err)
	dev.calls = nil
	return dev, res
}

func TestRenderFrameOrder(t *testing.T) {
	dev, res := initializedDevice(t)
	state := NewRenderLoopState(res, nil, WithReportWriter(nil))

	_, err := RenderFrame(0.016, dev, state)
	require.NoError(t, err)

	assert.Equal(t, []string{"Clear", "SetUniformMatrix(1)", "DrawIndexed", "Present"}, dev.calls)
	assert.Equal(t, []common.Color{common.Gray(0.2)}, dev.clears)
	assert.Equal(t, common.Color{R: 0.2, G: 0.2, B: 0.2, A: 1}, dev.clears[0])
}

func TestRenderFrameUniformCounts(t *testing.T) {
	dev, res := initializedDevice(t)
	state := NewRenderLoopState(res, nil, WithReportWriter(nil))

	const frames = 25
	for i := 0; i < frames; i++ {
		_, err := RenderFrame(0.016, dev, state)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, dev.uniformCount(SlotViewProjection))
	assert.Equal(t, frames, dev.uniformCount(SlotModel))
	require.Len(t, dev.draws, frames)
	for _, n := range dev.draws {
		assert.Equal(t, 24, n)
	}
	assert.Empty(t, dev.violations)
	assert.Equal(t, uint64(frames), state.Stats.Frames())
}

func TestRenderFrameAngleAndSample(t *testing.T) {
	dev, res := initializedDevice(t)
	var out bytes.Buffer
	state := NewRenderLoopState(res, nil,
		WithClock(stepClock(1500*time.Microsecond)),
		WithReportWriter(&out),
	)

	// Each frame reads the clock three times: start, rotation, end.
	report, err := RenderFrame(0.016, dev, state)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, report.Sample, 1e-9)
	assert.Equal(t, uint64(1), report.Frame)
	wantModel, gotModel := common.RotationY(0.003), dev.uniforms[len(dev.uniforms)-1].m
	assert.InDeltaSlice(t, wantModel[:], gotModel[:], 1e-6)
	assert.Equal(t, "Render time: 3.000 ms \n Min: 1.000 ms \n Average: 0.300 ms \n Max: 3.000 ms \n", out.String())

	out.Reset()
	report, err = RenderFrame(0.016, dev, state)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, report.Sample, 1e-9)
	assert.InDelta(t, 0.6, report.Average, 1e-9)
	// 7.5ms elapsed truncates to 7 whole milliseconds.
	wantModel, gotModel = common.RotationY(0.007), dev.uniforms[len(dev.uniforms)-1].m
	assert.InDeltaSlice(t, wantModel[:], gotModel[:], 1e-6)
	assert.True(t, strings.HasPrefix(out.String(), "Render time: 3.000 ms \n"))
}

func TestRenderFrameSeededStats(t *testing.T) {
	dev, res := initializedDevice(t)
	stats := profiler.NewFrameStats(profiler.WithSeededBounds())
	state := NewRenderLoopState(res, stats,
		WithClock(stepClock(time.Millisecond)),
		WithReportWriter(nil),
	)

	report, err := RenderFrame(0, dev, state)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, report.Min, 1e-9)
	assert.InDelta(t, 2.0, report.Max, 1e-9)
	assert.Same(t, stats, state.Stats)
}

func TestRenderFrameDeviceErrors(t *testing.T) {
	for _, step := range []string{"Clear", "SetUniformMatrix(1)", "DrawIndexed", "Present"} {
		t.Run(step, func(t *testing.T) {
			dev, res := initializedDevice(t)
			var out bytes.Buffer
			state := NewRenderLoopState(res, nil, WithReportWriter(&out))
			dev.failOn = step
			dev.failErr = errors.New("device lost")

			_, err := RenderFrame(0.016, dev, state)
			assert.ErrorIs(t, err, dev.failErr)
			assert.Equal(t, step, dev.calls[len(dev.calls)-1])
			assert.Equal(t, uint64(0), state.Stats.Frames())
			assert.Empty(t, out.String())
			if step != "Present" {
				assert.NotContains(t, dev.calls, "Present")
			}
		})
	}
}

func TestRenderFrameReportWriteError(t *testing.T) {
	dev, res := initializedDevice(t)
	state := NewRenderLoopState(res, nil, WithReportWriter(failingWriter{}))

	report, err := RenderFrame(0.016, dev, state)
	assert.Error(t, err)
	assert.Equal(t, uint64(1), report.Frame)
	assert.Equal(t, uint64(1), state.Stats.Frames())
}

func TestRenderLoopStateElapsed(t *testing.T) {
	state := NewRenderLoopState(&Resources{Mesh: CubeMesh()}, nil, WithClock(stepClock(time.Second)))
	assert.Equal(t, time.Second, state.Elapsed())
	assert.Equal(t, 2*time.Second, state.Elapsed())
}
