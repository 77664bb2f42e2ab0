// Package app runs the frame loop: it owns the window, the
// application state fed by input callbacks, and the scene.
package app

import (
	"context"
	"log/slog"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/paperboard/bluemarble/internal/camera"
	"github.com/paperboard/bluemarble/internal/render"
	"github.com/paperboard/bluemarble/internal/resource"
)

// App is an open window with a loaded scene.
// Every method must be called from the thread that called Open.
type App struct {
	cfg    Config
	logger *slog.Logger
	window *glfw.Window
	state  *State
	scene  *Scene
}

// Open creates the window, sets up GL state and input callbacks,
// and loads the scene described by cfg.
func Open(cfg Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	window, err := openWindow(cfg.Window, logger)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:    cfg,
		logger: logger,
		window: window,
		state:  NewState(camera.New(cfg.CameraOptions())),
	}

	// pixel and screen sizes differ on high resolution monitors
	a.resize(window.GetFramebufferSize())
	setupGL(cfg.Scene.ClearColor)

	a.scene, err = LoadScene(&cfg, logger)
	if err != nil {
		a.destroyWindow()
		return nil, err
	}
	if err := resource.CheckError(); err != nil {
		a.Close()
		return nil, err
	}

	a.setCallbacks()
	return a, nil
}

func setupGL(clear [4]float32) {
	gl.ClearColor(clear[0], clear[1], clear[2], clear[3])

	// do not render pixels covered by nearer ones
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	// each mesh selects its own front faces when bound
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
}

func (a *App) setCallbacks() {
	a.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		a.resize(width, height)
	})
	a.window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		a.state.MouseButton(w, button, action)
	})
	a.window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		a.state.CursorMoved(x, y)
	})
	a.window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})
}

func (a *App) resize(width, height int) {
	a.state.Resize(width, height)
	gl.Viewport(0, 0, int32(width), int32(height))
	a.logger.Debug("framebuffer resized", "width", width, "height", height, "aspect", a.state.Camera.Aspect())
}

// State returns the application state.
func (a *App) State() *State { return a.state }

// Run draws frames until the window is asked to close or ctx is done.
func (a *App) Run(ctx context.Context) {
	a.state.StartClock(glfw.GetTime())
	frames := 0

	for !a.window.ShouldClose() {
		if ctx.Err() != nil {
			a.window.SetShouldClose(true)
			break
		}

		// frame timing
		dt := a.state.Tick(glfw.GetTime())

		// glfw events, callbacks run here
		glfw.PollEvents()

		// movement keys
		a.state.SampleKeys(a.window, dt)

		// draw into buffer
		a.draw()

		// render buffer to screen
		a.window.SwapBuffers()

		if a.cfg.CheckErrors {
			if err := resource.CheckError(); err != nil {
				a.logger.Warn("GL errors", "frame", frames, "err", err)
			}
		}
		frames++
	}
	a.logger.Info("frame loop stopped", "frames", frames)
}

func (a *App) draw() {
	cam := a.state.Camera
	frame := render.Frame{
		View:           cam.View(),
		ViewProjection: cam.ViewProjection(),
	}
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	render.Draw(a.scene.Program, &a.scene.Drawable, frame)
}

// Close releases the scene, destroys the window, and terminates glfw.
func (a *App) Close() {
	if a.scene != nil {
		a.scene.Release()
		a.scene = nil
	}
	a.destroyWindow()
}

func (a *App) destroyWindow() {
	if a.window == nil {
		return
	}
	a.window.Destroy()
	a.window = nil
	glfw.Terminate()
}
