package profiler

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
)

// WriteSummary renders an end-of-run statistics table for s.
//
// Parameters:
//   - w: destination for the rendered table
//   - s: the tracker to summarize
//   - wall: total wall-clock time the render loop ran
func WriteSummary(w io.Writer, s *FrameStats, wall time.Duration) {
	window := s.Samples()
	formatted := make([]string, len(window))
	for i, ms := range window {
		formatted[i] = fmt.Sprintf("%.3f", ms)
	}

	var fps string
	if wall > 0 {
		fps = fmt.Sprintf("%.2f", float64(s.Frames())/wall.Seconds())
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Statistic", "Value"})
	table.AppendBulk([][]string{
		{"Frames", fmt.Sprintf("%d", s.Frames())},
		{"Wall time", wall.Round(time.Millisecond).String()},
		{"Average FPS", fps},
		{"Last (ms)", fmt.Sprintf("%.3f", s.Last())},
		{"Min (ms)", fmt.Sprintf("%.3f", s.Min())},
		{"Average (ms)", fmt.Sprintf("%.3f", s.Average())},
		{"Max (ms)", fmt.Sprintf("%.3f", s.Max())},
		{"Window (ms)", strings.Join(formatted, " ")},
	})
	table.Render()
}
