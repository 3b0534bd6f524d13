package profiler

// FrameStatsOption is a functional option for configuring a FrameStats tracker.
type FrameStatsOption func(*FrameStats)

// WithSeededBounds makes the first recorded sample seed both Min and Max instead of
// comparing it against the min=1, max=0 sentinels.
//
// Returns:
//   - FrameStatsOption: option function to apply
func WithSeededBounds() FrameStatsOption {
	return func(s *FrameStats) {
		s.seedBounds = true
	}
}
