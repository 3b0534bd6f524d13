package profiler

import (
	"fmt"
)

// WindowSize is the number of most recent frame samples averaged by FrameStats.
const WindowSize = 10

// Sentinel bounds a fresh tracker starts with. A first sample >= sentinelMin leaves Min at
// the sentinel until a smaller sample arrives.
const (
	sentinelMin = 1.0
	sentinelMax = 0.0
)

// FrameStats tracks frame render times in milliseconds.
// It keeps a fixed circular window of the last WindowSize samples plus the minimum and maximum
// seen over the whole run. The rolling average always divides by WindowSize, so during the
// first WindowSize-1 frames the zero-filled slots pull it down.
//
// FrameStats is owned by the render thread and is not safe for concurrent use.
type FrameStats struct {
	samples [WindowSize]float64
	cursor  int
	frames  uint64
	min     float64
	max     float64
	last    float64

	seedBounds bool
}

// Report is the per-frame statistics snapshot returned by Record.
type Report struct {
	// Frame is the 1-based index of the recorded frame.
	Frame uint64
	// Sample is the render time of this frame in milliseconds.
	Sample float64
	// Min is the smallest sample seen so far (or the sentinel, see FrameStats).
	Min float64
	// Average is the rolling mean over the sample window.
	Average float64
	// Max is the largest sample seen so far.
	Max float64
}

// NewFrameStats creates a tracker with a zeroed window and the sentinel bounds min=1, max=0.
//
// Parameters:
//   - options: functional options for tracker configuration
//
// Returns:
//   - *FrameStats: the newly created tracker
func NewFrameStats(options ...FrameStatsOption) *FrameStats {
	s := &FrameStats{
		min: sentinelMin,
		max: sentinelMax,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Record adds a frame sample and returns the updated statistics.
//
// Parameters:
//   - sample: the frame render time in milliseconds
//
// Returns:
//   - Report: the sample together with the running min, rolling average and running max
func (s *FrameStats) Record(sample float64) Report {
	if s.seedBounds && s.frames == 0 {
		s.min, s.max = sample, sample
	}
	if sample < s.min {
		s.min = sample
	}
	if sample > s.max {
		s.max = sample
	}

	s.samples[s.cursor] = sample
	s.cursor = (s.cursor + 1) % WindowSize
	s.frames++
	s.last = sample

	return Report{
		Frame:   s.frames,
		Sample:  sample,
		Min:     s.min,
		Average: s.Average(),
		Max:     s.max,
	}
}

// Average returns the sum of every window slot divided by WindowSize.
func (s *FrameStats) Average() float64 {
	var sum float64
	for _, ms := range s.samples {
		sum += ms
	}
	return sum / WindowSize
}

// Min returns the running minimum.
func (s *FrameStats) Min() float64 {
	return s.min
}

// Max returns the running maximum.
func (s *FrameStats) Max() float64 {
	return s.max
}

// Last returns the most recently recorded sample, or 0 before the first frame.
func (s *FrameStats) Last() float64 {
	return s.last
}

// Frames returns how many samples have been recorded.
func (s *FrameStats) Frames() uint64 {
	return s.frames
}

// Samples returns the recorded samples currently held in the window, oldest first.
// Before the window fills only the recorded samples are returned.
//
// Returns:
//   - []float64: a copy of the windowed samples in time order
func (s *FrameStats) Samples() []float64 {
	if s.frames < WindowSize {
		out := make([]float64, s.frames)
		copy(out, s.samples[:s.frames])
		return out
	}
	out := make([]float64, 0, WindowSize)
	out = append(out, s.samples[s.cursor:]...)
	out = append(out, s.samples[:s.cursor]...)
	return out
}

// String formats the report as the multi-line console block printed after each frame.
func (r Report) String() string {
	return fmt.Sprintf("Render time: %.3f ms \n Min: %.3f ms \n Average: %.3f ms \n Max: %.3f ms \n",
		r.Sample, r.Min, r.Average, r.Max)
}
