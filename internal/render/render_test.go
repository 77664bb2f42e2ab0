package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperboard/bluemarble/internal/camera"
	"github.com/paperboard/bluemarble/internal/geometry"
	"github.com/paperboard/bluemarble/internal/gltest"
	"github.com/paperboard/bluemarble/internal/resource"
	"github.com/paperboard/bluemarble/internal/shader"
	"github.com/paperboard/bluemarble/shaders"
)

const tolerance = 1e-5

// approx compares matrices element-wise within delta.
func approx(t *testing.T, want, have mgl32.Mat3, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	return assert.InDeltaSlice(t, want[:], have[:], delta, msgAndArgs...)
}

func frameOf(c *camera.Camera) Frame {
	return Frame{View: c.View(), ViewProjection: c.ViewProjection()}
}

func TestComputeUnlit(t *testing.T) {
	c := camera.New(camera.Options{})
	d := &Drawable{Model: mgl32.Translate3D(1, 2, 3)}
	u := d.Compute(frameOf(c))

	want := c.ViewProjection().Mul4(d.Model)
	assert.InDeltaSlice(t, want[:], u.ModelViewProjection[:], tolerance)
	assert.False(t, u.Lit)
	assert.False(t, u.Textured)
	assert.Equal(t, mgl32.Mat4{}, u.NormalMatrix)
}

func TestComputeLit(t *testing.T) {
	c := camera.New(camera.Options{})
	// turn the camera so view space differs from world space
	c.Look(900, 0)
	d := &Drawable{
		Model: mgl32.Ident4(),
		Light: &Light{Direction: mgl32.Vec3{0, 0, 2}, Intensity: 1.5},
	}
	u := d.Compute(frameOf(c))
	require.True(t, u.Lit)
	assert.Equal(t, float32(1.5), u.LightIntensity)
	assert.InDelta(t, 1, u.LightDirection.Len(), tolerance)

	// the light in view space points where the world direction does
	world := c.View().Inv().Mul4x1(u.LightDirection.Vec4(0)).Vec3()
	assert.InDeltaSlice(t, []float32{0, 0, 1}, world[:], tolerance)

	// rigid view: the normal matrix keeps the view rotation
	approx(t, c.View().Mat3(), u.NormalMatrix.Mat3(), 1e-4)
}

func TestNormalMatrixScale(t *testing.T) {
	mv := mgl32.Scale3D(2, 4, 8)
	n := NormalMatrix(mv)
	approx(t, mgl32.Scale3D(0.5, 0.25, 0.125).Mat3(), n.Mat3(), tolerance)

	// normals stay perpendicular to transformed tangents
	tangent := mgl32.Vec3{1, -1, 0}
	normal := mgl32.Vec3{1, 1, 0}
	tt := mv.Mul4x1(tangent.Vec4(0)).Vec3()
	tn := n.Mul4x1(normal.Vec4(0)).Vec3()
	assert.InDelta(t, 0, tt.Dot(tn), tolerance)
}

func TestDraw(t *testing.T) {
	gltest.Context(t)

	p, err := (&shader.Compiler{FS: shaders.FS}).Compile(shaders.Sphere)
	require.NoError(t, err)
	t.Cleanup(p.Release)

	m := resource.NewManager(nil)
	t.Cleanup(m.ReleaseAll)

	sphere, err := geometry.Sphere(8)
	require.NoError(t, err)
	mesh, err := m.UploadMesh("sphere", sphere)
	require.NoError(t, err)
	tex, err := m.UploadTexture("white", &resource.Image{Pix: []byte{255, 255, 255}, Width: 1, Height: 1, Channels: 3})
	require.NoError(t, err)

	d := &Drawable{
		Mesh:    mesh,
		Texture: tex,
		Light:   &Light{Direction: mgl32.Vec3{1, 1, 1}, Intensity: 1},
		Model:   mgl32.Ident4(),
	}
	c := camera.New(camera.Options{Aspect: 1})
	Draw(p, d, frameOf(c))
	assert.NoError(t, resource.CheckError())

	// unlit: the light uniforms stay unset
	d.Light = nil
	Draw(p, d, frameOf(c))
	assert.NoError(t, resource.CheckError())
}
