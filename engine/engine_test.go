package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow runs the update callback until closed or until maxIterations is reached.
type fakeWindow struct {
	update        func()
	closed        bool
	closeRequests int
	iterations    int
	maxIterations int
}

func (w *fakeWindow) SetUpdateCallback(callback func()) {
	w.update = callback
}

func (w *fakeWindow) ProcessMessages() {
	for !w.closed && w.iterations < w.maxIterations {
		w.iterations++
		if w.update != nil {
			w.update()
		}
	}
}

func (w *fakeWindow) RequestClose() {
	w.closeRequests++
	w.closed = true
}

func stepClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestRunWithoutWindow(t *testing.T) {
	assert.ErrorIs(t, NewEngine().Run(), ErrNoWindow)
}

func TestRunCallsTickThenRender(t *testing.T) {
	w := &fakeWindow{maxIterations: 5}
	var order []string
	e := NewEngine(
		WithWindow(w),
		WithTickCallback(func(float32) { order = append(order, "tick") }),
		WithRenderCallback(func(float32) error {
			order = append(order, "render")
			return nil
		}),
	)

	require.NoError(t, e.Run())
	assert.Equal(t, 5, w.iterations)
	require.Len(t, order, 10)
	for i := 0; i < len(order); i += 2 {
		assert.Equal(t, []string{"tick", "render"}, order[i:i+2])
	}
}

func TestRunPassesDeltaTime(t *testing.T) {
	w := &fakeWindow{maxIterations: 3}
	var deltas []float32
	e := NewEngine(WithWindow(w), WithClock(stepClock(20*time.Millisecond)))
	e.SetRenderCallback(func(dt float32) error {
		deltas = append(deltas, dt)
		return nil
	})

	require.NoError(t, e.Run())
	require.Len(t, deltas, 3)
	for _, dt := range deltas {
		assert.InDelta(t, 0.02, dt, 1e-6)
	}
}

func TestRunStopsOnRenderError(t *testing.T) {
	w := &fakeWindow{maxIterations: 100}
	renderErr := errors.New("scene: present: surface lost")
	renders := 0
	ticks := 0
	e := NewEngine(WithWindow(w))
	e.SetTickCallback(func(float32) { ticks++ })
	e.SetRenderCallback(func(float32) error {
		renders++
		if renders == 3 {
			return renderErr
		}
		return nil
	})

	err := e.Run()
	assert.ErrorIs(t, err, renderErr)
	assert.Equal(t, 3, renders)
	assert.Equal(t, 3, ticks)
	assert.Equal(t, 1, w.closeRequests)
}

func TestQuit(t *testing.T) {
	w := &fakeWindow{maxIterations: 100}
	renders := 0
	var e Engine
	e = NewEngine(WithWindow(w), WithRenderCallback(func(float32) error {
		renders++
		if renders == 2 {
			e.Quit()
			e.Quit()
		}
		return nil
	}))

	require.NoError(t, e.Run())
	assert.Equal(t, 2, renders)
	assert.Equal(t, 1, w.closeRequests)

	// Quit outside Run is a no-op.
	e.Quit()
	assert.Equal(t, 1, w.closeRequests)
}

func TestRenderFrameLimit(t *testing.T) {
	assert.Equal(t, time.Duration(0), frameDuration(0))
	assert.Equal(t, time.Duration(0), frameDuration(-30))
	assert.Equal(t, 16666666*time.Nanosecond, frameDuration(60))

	w := &fakeWindow{maxIterations: 3}
	e := NewEngine(WithWindow(w), WithRenderFrameLimit(200))
	e.SetRenderCallback(func(float32) error { return nil })

	start := time.Now()
	require.NoError(t, e.Run())
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}
