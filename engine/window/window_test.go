package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngineWindowDefaults(t *testing.T) {
	w := newEngineWindow()
	assert.Equal(t, "Cube Test", w.title)
	assert.Equal(t, 1280, w.Width())
	assert.Equal(t, 720, w.Height())
}

func TestEngineWindowOptions(t *testing.T) {
	w := newEngineWindow(WithTitle("bench"), WithWidth(640), WithHeight(480))
	assert.Equal(t, "bench", w.title)
	assert.Equal(t, 640, w.Width())
	assert.Equal(t, 480, w.Height())
}

func TestNewWindowRejectsInvalidSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 720},
		{"zero height", 1280, 0},
		{"negative", -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewWindow(WithWidth(tt.width), WithHeight(tt.height))
			assert.Nil(t, w)
			assert.ErrorIs(t, err, ErrInvalidSize)
		})
	}
}

func TestUninitializedWindow(t *testing.T) {
	w := newEngineWindow()
	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.ErrorIs(t, w.Close(), ErrNotInitialized)

	called := false
	w.SetUpdateCallback(func() { called = true })
	w.ProcessMessages()
	assert.False(t, called)
}

func TestRequestClose(t *testing.T) {
	w := newEngineWindow()
	w.RequestClose()
	assert.True(t, w.closeRequested)
	assert.False(t, w.IsRunning())
}
