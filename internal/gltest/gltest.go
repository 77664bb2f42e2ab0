// Package gltest provides a current OpenGL context to tests.
package gltest

import (
	"errors"
	"fmt"
	"runtime"
	"testing"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Context creates a hidden 1x1 window with an OpenGL 3.3 core
// context and makes it current on the calling goroutine's thread.
// The test is skipped when no display or driver is available.
// Everything is torn down by t.Cleanup.
func Context(t testing.TB) {
	t.Helper()

	// a GL context is current on one thread only
	runtime.LockOSThread()

	window, err := open(t.Name())
	if err != nil {
		runtime.UnlockOSThread()
		t.Skip("no OpenGL 3.3 core context:", err)
	}

	t.Cleanup(func() {
		glfw.DetachCurrentContext()
		window.Destroy()
		glfw.Terminate()
		runtime.UnlockOSThread()
	})
}

// open converts glfw panics (e.g. on a failed Init without a display)
// into errors.
func open(title string) (window *glfw.Window, err error) {
	defer func() {
		if r := recover(); r != nil {
			glfw.Terminate()
			window, err = nil, fmt.Errorf("glfw: %v", r)
		}
	}()

	if err := glfw.Init(); err != nil {
		return nil, err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err = glfw.CreateWindow(1, 1, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	if window == nil {
		glfw.Terminate()
		return nil, errors.New("glfw: window not created")
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, err
	}
	return window, nil
}
