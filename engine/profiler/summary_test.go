package profiler

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWriteSummary(t *testing.T) {
	s := NewFrameStats()
	for _, v := range []float64{0.5, 1.25, 4} {
		s.Record(v)
	}

	var buf bytes.Buffer
	WriteSummary(&buf, s, 2*time.Second)

	out := buf.String()
	assert.Contains(t, out, "Frames")
	assert.Contains(t, out, "| 3 ")
	assert.Contains(t, out, "1.50")
	assert.Contains(t, out, "0.500 1.250 4.000")
	assert.Contains(t, out, "4.000")
}
