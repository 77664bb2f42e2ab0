package resource

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperboard/bluemarble/internal/geometry"
	"github.com/paperboard/bluemarble/internal/gltest"
	"github.com/paperboard/bluemarble/internal/shader"
)

func TestNewLayout(t *testing.T) {
	l := NewLayout(geometry.Position | geometry.Normal | geometry.TexCoord)
	assert.Equal(t, int32(44), l.Stride)
	require.Len(t, l.Attributes, 3)

	assert.Equal(t, Attribute{geometry.Position, shader.LocationPosition, 3, gl.FLOAT, false, 0}, l.Attributes[0])
	assert.Equal(t, Attribute{geometry.Normal, shader.LocationNormal, 3, gl.FLOAT, false, 12}, l.Attributes[1])
	assert.Equal(t, Attribute{geometry.TexCoord, shader.LocationTexCoord, 2, gl.FLOAT, true, 36}, l.Attributes[2])

	l = NewLayout(geometry.Quad().Attributes)
	require.Len(t, l.Attributes, 3)
	assert.Equal(t, geometry.Color, l.Attributes[1].Field)
	assert.Equal(t, 24, l.Attributes[1].Offset)
	assert.True(t, l.Attributes[1].Normalized)
}

func TestGLError(t *testing.T) {
	assert.Equal(t, "GL_ERROR: GL_INVALID_OPERATION", GLError(0x502).Error())
	assert.Equal(t, "GL_ERROR UNKNOWN: 0x1", GLError(1).Error())
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeImage(t *testing.T) {
	// 2x2: top row red, green; bottom row blue, translucent white
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	src.SetNRGBA(1, 0, color.NRGBA{0, 255, 0, 255})
	src.SetNRGBA(0, 1, color.NRGBA{0, 0, 255, 255})
	src.SetNRGBA(1, 1, color.NRGBA{255, 255, 255, 128})

	fsys := fstest.MapFS{"t.png": {Data: encodePNG(t, src)}}
	img, err := DecodeImage(fsys, "t.png")
	require.NoError(t, err)

	assert.Equal(t, 2, img.Width)
	assert.Equal(t, 2, img.Height)
	assert.Equal(t, 3, img.Channels)
	// bottom row first
	assert.Equal(t, []byte{
		0, 0, 255, 255, 255, 255,
		255, 0, 0, 0, 255, 0,
	}, img.Pix)
}

func TestDecodeImageGray(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 1, 2))
	src.SetGray(0, 0, color.Gray{10})
	src.SetGray(0, 1, color.Gray{200})

	fsys := fstest.MapFS{"g.png": {Data: encodePNG(t, src)}}
	img, err := DecodeImage(fsys, "g.png")
	require.NoError(t, err)
	assert.Equal(t, 3, img.Channels)
	assert.Equal(t, []byte{200, 200, 200, 10, 10, 10}, img.Pix)
}

func TestDecodeImageFailure(t *testing.T) {
	fsys := fstest.MapFS{"bad.png": {Data: []byte("not a png")}}
	for _, path := range []string{"bad.png", "missing.png"} {
		img, err := DecodeImage(fsys, path)
		assert.Nil(t, img)
		assert.ErrorIs(t, err, ErrTextureDecode)

		var de *DecodeError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, path, de.Path)
	}
}

type fakeResource struct {
	name string
	log  *[]string
}

func (f fakeResource) Release() { *f.log = append(*f.log, f.name) }

func TestManagerReleaseOrder(t *testing.T) {
	var released []string
	m := NewManager(nil)
	for _, name := range []string{"vbo", "ibo", "layout", "earth"} {
		m.add(name, "fake", fakeResource{name, &released})
	}
	assert.Equal(t, []string{"vbo", "ibo", "layout", "earth"}, m.Names())

	m.ReleaseAll()
	assert.Equal(t, []string{"earth", "layout", "ibo", "vbo"}, released)

	// once only
	m.ReleaseAll()
	assert.Len(t, released, 4)
	assert.Empty(t, m.Names())

	_, err := m.UploadMesh("sphere", geometry.Quad())
	assert.ErrorIs(t, err, ErrReleased)
	_, err = m.UploadTexture("earth", &Image{})
	assert.ErrorIs(t, err, ErrReleased)
}

func TestUploadTextureValidation(t *testing.T) {
	_, err := UploadTexture(&Image{Pix: make([]byte, 10), Width: 1, Height: 2, Channels: 5})
	assert.ErrorIs(t, err, ErrChannels)
	_, err = UploadTexture(&Image{Pix: make([]byte, 10), Width: 2, Height: 2, Channels: 3})
	assert.ErrorIs(t, err, ErrPixelSize)
}

func TestUploadMeshEmpty(t *testing.T) {
	_, err := UploadMesh(&geometry.Mesh{})
	assert.ErrorIs(t, err, ErrEmptyMesh)
}

func TestManagerUpload(t *testing.T) {
	gltest.Context(t)

	m := NewManager(nil)
	t.Cleanup(m.ReleaseAll)

	sphere, err := geometry.Sphere(16)
	require.NoError(t, err)
	gm, err := m.UploadMesh("sphere", sphere)
	require.NoError(t, err)
	assert.Equal(t, int32(6*15*15), gm.IndexCount())
	assert.Equal(t, 16*16*geometry.VertexSize, gm.VertexBuffer().Size())
	assert.Equal(t, 2*15*15*3*4, gm.IndexBuffer().Size())
	assert.Equal(t, uint32(gl.CW), gm.FrontFace())

	_, err = m.UploadMesh("sphere", geometry.Quad())
	assert.ErrorIs(t, err, ErrDuplicate)

	img := &Image{Pix: make([]byte, 4*2*3), Width: 4, Height: 2, Channels: 3}
	tex, err := m.UploadTexture("earth", img)
	require.NoError(t, err)
	assert.NotZero(t, tex.ID())
	w, h := tex.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 2, h)

	got, ok := m.Mesh("sphere")
	assert.True(t, ok)
	assert.Same(t, gm, got)
	gotTex, ok := m.Texture("earth")
	assert.True(t, ok)
	assert.Same(t, tex, gotTex)
	assert.NoError(t, CheckError())

	m.ReleaseAll()
	assert.Zero(t, tex.ID())
	assert.Zero(t, gm.VertexBuffer().ID())
	assert.Zero(t, gm.IndexBuffer().ID())
	assert.NoError(t, CheckError())
}

// Every index of the quad is consumed by a single draw.
func TestDrawQuadIndices(t *testing.T) {
	gltest.Context(t)

	src := shader.Sources{
		Name: "flat",
		Vertex: `#version 330 core
layout(location = 0) in vec3 vertexPosition;
void main() { gl_Position = vec4(vertexPosition, 1); }
`,
		Fragment: `#version 330 core
out vec4 outputColor;
void main() { outputColor = vec4(1); }
`,
	}
	p, err := shader.CompileSources(src)
	require.NoError(t, err)
	t.Cleanup(p.Release)

	quad := geometry.Quad()
	gm, err := UploadMesh(quad)
	require.NoError(t, err)
	t.Cleanup(gm.Release)
	require.Equal(t, int32(6), gm.IndexCount())

	var query uint32
	gl.GenQueries(1, &query)
	t.Cleanup(func() { gl.DeleteQueries(1, &query) })

	p.Use()
	gm.Bind()
	gl.BeginQuery(gl.PRIMITIVES_GENERATED, query)
	gm.Draw()
	gl.EndQuery(gl.PRIMITIVES_GENERATED)
	gm.Unbind()
	gl.UseProgram(0)

	var prims uint32
	gl.GetQueryObjectuiv(query, gl.QUERY_RESULT, &prims)
	assert.Equal(t, uint32(2), prims)
	assert.Equal(t, int(gm.IndexCount()), int(prims)*3)
	assert.NoError(t, CheckError())
}
