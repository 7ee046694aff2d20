// platform/platform.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package platform provides the window, the OpenGL context and the
// keyboard underneath the display. Everything here must be called
// from the main thread.
package platform

// Platform abstracts the windowing system; there is currently a
// single GLFW implementation.
type Platform interface {
	// ProcessEvents polls for window and keyboard events.
	ProcessEvents()

	// ShouldStop returns true when the window has been asked to close.
	ShouldStop() bool

	// KeyEvents returns the key presses since the previous call,
	// oldest first, and clears the queue.
	KeyEvents() []Key

	// FramebufferSize returns the dimensions of the framebuffer in
	// pixels; on a retina-style display this is larger than the
	// window size.
	FramebufferSize() [2]float32

	// WindowSize returns the window size in screen coordinates.
	WindowSize() [2]int

	// WindowPosition returns the position of the window on the screen.
	WindowPosition() [2]int

	// IsFullScreen reports whether the window covers a monitor.
	IsFullScreen() bool

	// EnableFullScreen moves the window to or from fullscreen.
	EnableFullScreen(fullscreen bool)

	// EnableVSync sets whether buffer swaps wait for the vertical
	// retrace.
	EnableVSync(sync bool)

	// SetWindowTitle sets the title bar text.
	SetWindowTitle(title string)

	// PostRender swaps the front and back buffers.
	PostRender()

	// Dispose destroys the window and shuts the library down.
	Dispose()
}

// Key identifies the keyboard inputs the display responds to.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyR
	KeySpace
	KeyC
	KeyF
	KeyEscape
	KeyQ
)

// Config gives the initial window placement, restored from the
// previous run.
type Config struct {
	InitialWindowSize     [2]int
	InitialWindowPosition [2]int

	StartInFullScreen bool
	FullScreenMonitor int
}
