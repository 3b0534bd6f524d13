package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-cube/engine/log"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	ErrInvalidSize    = errors.New("window: width and height must be positive")
	ErrPlatform       = errors.New("window: platform window creation failed")
	ErrNotInitialized = errors.New("window: window is not initialized")
)

var logger = log.New("window")

// Window is a fixed-size native window that drives the frame loop.
// The client area never changes size after creation.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true until the window is asked to close.
	IsRunning() bool

	// RequestClose asks the message loop to stop after the current iteration.
	RequestClose()

	// Close destroys the window and releases platform resources.
	//
	// Returns:
	//   - error: ErrNotInitialized if the window was never created
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed or RequestClose is called. Calls the update
	// callback once per iteration after pending events are handled.
	ProcessMessages()

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int
}

// engineWindow holds window configuration, GLFW state, and the update hook.
type engineWindow struct {
	title string

	// width and height are the framebuffer size in pixels once the window exists.
	width  int
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate func()

	closeRequested bool
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a new fixed-size Window.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the created window
//   - error: ErrInvalidSize for a non-positive size, or ErrPlatform wrapping the GLFW failure
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options...)
	if w.width <= 0 || w.height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w.width, w.height)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPlatform, err)
	}
	logger.Infof("window %q created with a %dx%d framebuffer", w.title, w.width, w.height)
	return w, nil
}

func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:  "Cube Test",
		width:  1280,
		height: 720,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return !w.closeRequested && platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	w.closeRequested = true
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
