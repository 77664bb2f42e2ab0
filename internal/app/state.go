package app

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/paperboard/bluemarble/internal/camera"
)

// LookButton gates mouse look.
const LookButton = glfw.MouseButtonLeft

// Movement keys.
const (
	KeyForward = glfw.KeyW
	KeyBack    = glfw.KeyS
	KeyLeft    = glfw.KeyA
	KeyRight   = glfw.KeyD
)

// KeyReader reports key states. *glfw.Window implements it.
type KeyReader interface {
	GetKey(key glfw.Key) glfw.Action
}

// Cursor controls the pointer. *glfw.Window implements it.
type Cursor interface {
	GetCursorPos() (x, y float64)
	SetInputMode(mode glfw.InputMode, value int)
}

// State is the mutable application state shared by the frame
// loop and the input callbacks.
type State struct {
	Camera *camera.Camera

	capturing    bool
	lastX, lastY float64 // cursor baseline while capturing

	lastTime float64

	viewportW, viewportH int
}

// NewState returns a State driving cam.
func NewState(cam *camera.Camera) *State {
	return &State{Camera: cam}
}

// Capturing reports whether mouse motion turns the camera.
func (s *State) Capturing() bool { return s.capturing }

// Viewport returns the last framebuffer size seen by Resize.
func (s *State) Viewport() (width, height int) { return s.viewportW, s.viewportH }

// StartClock sets the timestamp the first delta is measured from.
func (s *State) StartClock(now float64) { s.lastTime = now }

// Tick returns the time elapsed since the previous call.
func (s *State) Tick(now float64) float32 {
	delta := now - s.lastTime
	s.lastTime = now
	return float32(delta)
}

// MouseButton captures the cursor while LookButton is held.
func (s *State) MouseButton(c Cursor, button glfw.MouseButton, action glfw.Action) {
	if button != LookButton {
		return
	}
	switch action {
	case glfw.Press:
		c.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		s.lastX, s.lastY = c.GetCursorPos()
		s.capturing = true
	case glfw.Release:
		c.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		s.capturing = false
	}
}

// CursorMoved turns the camera by the motion since the baseline
// (previous minus current) and moves the baseline.
func (s *State) CursorMoved(x, y float64) {
	if !s.capturing {
		return
	}
	dx, dy := s.lastX-x, s.lastY-y
	s.lastX, s.lastY = x, y
	s.Camera.Look(float32(dx), float32(dy))
}

// Resize follows a framebuffer size change.
func (s *State) Resize(width, height int) {
	s.viewportW, s.viewportH = width, height
	s.Camera.Resize(width, height)
}

// SampleKeys moves the camera by the held movement keys,
// scaled by dt. Opposite keys cancel out.
func (s *State) SampleKeys(k KeyReader, dt float32) {
	forward := axis(k, KeyForward, KeyBack)
	right := axis(k, KeyRight, KeyLeft)
	if forward != 0 {
		s.Camera.MoveForward(forward * dt)
	}
	if right != 0 {
		s.Camera.MoveRight(right * dt)
	}
}

func axis(k KeyReader, pos, neg glfw.Key) float32 {
	var v float32
	if k.GetKey(pos) == glfw.Press {
		v++
	}
	if k.GetKey(neg) == glfw.Press {
		v--
	}
	return v
}
