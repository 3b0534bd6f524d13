package scene

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-cube/common"
	"github.com/Carmen-Shannon/oxy-cube/engine/profiler"
)

// rotationSpeed is the cube's angular speed in radians per millisecond.
const rotationSpeed = 0.001

// RenderLoopState is everything the frame driver carries between frames. It belongs to the
// render thread.
type RenderLoopState struct {
	Resources *Resources
	Stats     *profiler.FrameStats

	now          func() time.Time
	start        time.Time
	reportWriter io.Writer
	clearColor   common.Color
}

// NewRenderLoopState creates the loop state. The animation clock starts now.
//
// Parameters:
//   - res: the resources returned by Initialize
//   - stats: the frame-time tracker, or nil for a default one
//   - options: functional options for clock, report writer and clear color
//
// Returns:
//   - *RenderLoopState: the loop state
func NewRenderLoopState(res *Resources, stats *profiler.FrameStats, options ...LoopOption) *RenderLoopState {
	if stats == nil {
		stats = profiler.NewFrameStats()
	}
	s := &RenderLoopState{
		Resources:    res,
		Stats:        stats,
		now:          time.Now,
		reportWriter: os.Stdout,
		clearColor:   common.Gray(0.2),
	}
	for _, opt := range options {
		opt(s)
	}
	s.start = s.now()
	return s
}

// Elapsed returns the time since the loop state was created.
func (s *RenderLoopState) Elapsed() time.Duration {
	return s.now().Sub(s.start)
}

// RenderFrame draws one frame and records how long it took. The steps are, in order: clear
// color and depth, write the model rotation for the elapsed whole milliseconds to slot 1,
// draw the cube, present, then record the measured time and write the report.
//
// dt is the time since the previous tick as seen by the window loop. The rotation follows
// the wall clock instead so it stays correct when ticks are irregular.
//
// A device error aborts the frame before anything is recorded.
//
// Parameters:
//   - dt: seconds since the previous tick
//   - dev: the GPU device prepared by Initialize
//   - state: the loop state
//
// Returns:
//   - profiler.Report: the statistics after this frame
//   - error: the device error wrapped with the failing step, or a report write error
func RenderFrame(dt float32, dev Device, state *RenderLoopState) (profiler.Report, error) {
	frameStart := state.now()

	if err := dev.Clear(state.clearColor); err != nil {
		return profiler.Report{}, fmt.Errorf("scene: clear: %w", err)
	}

	elapsedMs := state.now().Sub(state.start).Milliseconds()
	angle := float32(float64(elapsedMs) * rotationSpeed)
	if err := dev.SetUniformMatrix(SlotModel, common.RotationY(angle)); err != nil {
		return profiler.Report{}, fmt.Errorf("scene: set model matrix: %w", err)
	}
	if err := dev.DrawIndexed(state.Resources.Mesh.IndexCount()); err != nil {
		return profiler.Report{}, fmt.Errorf("scene: draw: %w", err)
	}
	if err := dev.Present(); err != nil {
		return profiler.Report{}, fmt.Errorf("scene: present: %w", err)
	}

	sample := float64(state.now().Sub(frameStart)) / float64(time.Millisecond)
	report := state.Stats.Record(sample)
	logger.Debugf("frame %d dt %.6fs angle %.3f rad", report.Frame, dt, angle)

	if state.reportWriter != nil {
		if _, err := io.WriteString(state.reportWriter, report.String()); err != nil {
			return report, fmt.Errorf("scene: write report: %w", err)
		}
	}
	return report, nil
}
