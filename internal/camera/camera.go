// Package camera implements a fly camera: it moves along its view
// direction, strafes, and turns from mouse deltas.
package camera

import "github.com/go-gl/mathgl/mgl32"

// Options configures a new Camera. Zero fields take the defaults;
// a nil Position takes DefaultPosition, so the origin stays reachable.
type Options struct {
	Position    *mgl32.Vec3
	Direction   mgl32.Vec3
	Up          mgl32.Vec3
	FOV         float32 // vertical field of view, degrees
	Aspect      float32
	Near, Far   float32
	Speed       float32 // world units per unit of movement
	Sensitivity float32 // degrees per unit of look delta
}

// Defaults.
var (
	DefaultPosition  = mgl32.Vec3{0, 0, 5}
	DefaultDirection = mgl32.Vec3{0, 0, -1}
	DefaultUp        = mgl32.Vec3{0, 1, 0}
)

// Default scalars.
const (
	DefaultFOV         = 45
	DefaultAspect      = 4.0 / 3.0
	DefaultNear        = 0.1
	DefaultFar         = 100
	DefaultSpeed       = 2.5
	DefaultSensitivity = 0.1
)

// Camera is a movable viewpoint.
type Camera struct {
	position  mgl32.Vec3
	direction mgl32.Vec3
	up        mgl32.Vec3

	fov, aspect, near, far float32
	speed, sensitivity     float32
}

// New returns a Camera configured from opts.
func New(opts Options) *Camera {
	c := &Camera{
		position:    DefaultPosition,
		direction:   opts.Direction,
		up:          opts.Up,
		fov:         opts.FOV,
		aspect:      opts.Aspect,
		near:        opts.Near,
		far:         opts.Far,
		speed:       opts.Speed,
		sensitivity: opts.Sensitivity,
	}
	if opts.Position != nil {
		c.position = *opts.Position
	}
	if c.direction == (mgl32.Vec3{}) {
		c.direction = DefaultDirection
	}
	if c.up == (mgl32.Vec3{}) {
		c.up = DefaultUp
	}
	c.direction = c.direction.Normalize()
	c.up = c.up.Normalize()
	setDefault(&c.fov, DefaultFOV)
	setDefault(&c.aspect, DefaultAspect)
	setDefault(&c.near, DefaultNear)
	setDefault(&c.far, DefaultFar)
	setDefault(&c.speed, DefaultSpeed)
	setDefault(&c.sensitivity, DefaultSensitivity)
	return c
}

func setDefault(f *float32, def float32) {
	if *f == 0 {
		*f = def
	}
}

// Position returns the eye position.
func (c *Camera) Position() mgl32.Vec3 { return c.position }

// Direction returns the unit view direction.
func (c *Camera) Direction() mgl32.Vec3 { return c.direction }

// Up returns the unit up vector.
func (c *Camera) Up() mgl32.Vec3 { return c.up }

// Aspect returns the projection aspect ratio.
func (c *Camera) Aspect() float32 { return c.aspect }

// FOV returns the vertical field of view in degrees.
func (c *Camera) FOV() float32 { return c.fov }

// right is the unit vector pointing to the right of the view.
func (c *Camera) right() mgl32.Vec3 { return c.direction.Cross(c.up).Normalize() }

// MoveForward moves along the view direction; negative amounts move back.
func (c *Camera) MoveForward(amount float32) {
	c.position = c.position.Add(c.direction.Normalize().Mul(amount * c.speed))
}

// MoveRight strafes; negative amounts move left.
func (c *Camera) MoveRight(amount float32) {
	c.position = c.position.Add(c.right().Mul(amount * c.speed))
}

// Look turns the camera by yaw and pitch deltas, scaled by the
// sensitivity into degrees.
//
// Pitch rotates up about the right axis. Direction is pitched first
// and then yawed about the previous up. Pitch is not clamped.
func (c *Camera) Look(yawDelta, pitchDelta float32) {
	yaw := mgl32.DegToRad(yawDelta * c.sensitivity)
	pitch := mgl32.DegToRad(pitchDelta * c.sensitivity)

	right := c.right()
	up := c.up

	pitchRotation := mgl32.HomogRotate3D(pitch, right)
	c.up = pitchRotation.Mul4x1(up.Vec4(0)).Vec3().Normalize()

	rotation := mgl32.HomogRotate3D(yaw, up).Mul4(pitchRotation)
	c.direction = rotation.Mul4x1(c.direction.Vec4(0)).Vec3().Normalize()
}

// View returns the world-to-eye matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.direction), c.up)
}

// Projection returns the eye-to-clip matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.fov), c.aspect, c.near, c.far)
}

// ViewProjection returns Projection() * View().
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Resize sets the aspect ratio to width/height.
// Nothing else changes; a zero height (minimized window) is ignored.
func (c *Camera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.aspect = float32(width) / float32(height)
}
