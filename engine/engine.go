package engine

import (
	"errors"
	"time"

	"github.com/Carmen-Shannon/oxy-cube/engine/log"
)

var ErrNoWindow = errors.New("engine: no window configured")

var logger = log.New("engine")

// Window is the message loop the engine runs inside. window.Window satisfies it.
type Window interface {
	SetUpdateCallback(callback func())
	ProcessMessages()
	RequestClose()
}

// engine implements the Engine interface.
// Every callback runs on the goroutine that called Run, which must be the thread that
// created the window and the GPU device.
type engine struct {
	window Window

	now func() time.Time

	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32) error

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	running  bool
	lastTick time.Time
	err      error
}

// Engine drives the update and render hooks from the window's message loop.
type Engine interface {
	// SetTickCallback registers the function called once per loop iteration before rendering.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called once per loop iteration after the tick.
	// A returned error stops the loop and is returned from Run.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32) error)

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run blocks in the window message loop until the window closes, Quit is called or a
	// render callback fails.
	//
	// Returns:
	//   - error: the first render error, or ErrNoWindow
	Run() error

	// Quit asks the window loop to stop after the current iteration.
	// Safe to call multiple times.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		now: time.Now,
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}
	e.running = true
	e.err = nil
	e.lastTick = e.now()
	e.window.SetUpdateCallback(e.frame)
	e.window.ProcessMessages()
	e.running = false
	return e.err
}

// Quit asks the window loop to stop. Subsequent calls are no-ops.
func (e *engine) Quit() {
	if !e.running {
		return
	}
	e.running = false
	if e.window != nil {
		e.window.RequestClose()
	}
}

// frame runs one tick and one render, then sleeps off any remaining frame budget.
// The sleep happens after the render callback so it never lands inside a measured frame.
func (e *engine) frame() {
	if !e.running {
		return
	}

	frameStart := e.now()
	dt := float32(frameStart.Sub(e.lastTick).Seconds())
	e.lastTick = frameStart

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}

	if e.renderCallback != nil {
		if err := e.renderCallback(dt); err != nil {
			logger.Errorf("render failed, stopping: %v", err)
			e.err = err
			e.Quit()
			return
		}
	}

	// Frame rate limiting
	if e.renderFrameLimit > 0 {
		elapsed := e.now().Sub(frameStart)
		if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// SetTickCallback registers the function called each loop iteration.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32) error) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
