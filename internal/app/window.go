package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// ErrInit is matched by window, context, and loader failures.
var ErrInit = errors.New("initialization failed")

func initError(what string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrInit, what, err)
}

// openWindow initializes glfw, creates the window and its
// OpenGL 3.3 core context, and loads the GL functions.
// glfw is terminated again on failure.
func openWindow(cfg WindowConfig, logger *slog.Logger) (window *glfw.Window, err error) {
	// glfw reports some failures by panicking
	defer func() {
		if r := recover(); r != nil {
			glfw.Terminate()
			window, err = nil, initError("glfw", fmt.Errorf("%v", r))
		}
	}()

	// initalize glfw
	if err := glfw.Init(); err != nil {
		return nil, initError("glfw", err)
	}

	// use OpenGL v3.3 core
	glfw.WindowHint(glfw.Resizable, boolHint(cfg.Resizable))
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	// create window handle
	window, err = glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, initError("window", err)
	}
	window.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	// initialize OpenGL
	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, initError("gl", err)
	}
	logger.Info("OpenGL context",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	)
	return window, nil
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
