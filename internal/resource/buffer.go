// Package resource owns the GPU-resident objects of the renderer:
// vertex and index buffers, vertex arrays, and textures.
package resource

import (
	"errors"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/paperboard/bluemarble/internal/geometry"
)

const (
	bytesUint32     = 4 // a uint32 is 4 bytes
	indicesPerTri   = 3
	bytesPerTri     = int(unsafe.Sizeof(geometry.Triangle{}))
	bytesPerVertex  = geometry.VertexSize
	primitivesDrawn = gl.TRIANGLES
)

// ErrEmptyMesh is returned when uploading a mesh without
// vertices or triangles.
var ErrEmptyMesh = errors.New("resource: mesh has no vertices or triangles")

// noCopy may be embedded into structs which must not be copied
// after first use. See sync.noCopy.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Buffer is a GL buffer object written once with STATIC_DRAW.
// It owns its GL object.
type Buffer struct {
	_      noCopy
	id     uint32
	target uint32
	size   int
}

func newBuffer(target uint32, size int, data unsafe.Pointer) *Buffer {
	b := &Buffer{target: target, size: size}
	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(target, b.id)
	gl.BufferData(target, size, data, gl.STATIC_DRAW)
	gl.BindBuffer(target, 0)
	return b
}

// ID returns the GL name of b.
func (b *Buffer) ID() uint32 { return b.id }

// Size returns the byte size of b.
func (b *Buffer) Size() int { return b.size }

// Release deletes the GL object. Calling it again is a no-op.
func (b *Buffer) Release() {
	if b.id == 0 {
		return
	}
	gl.DeleteBuffers(1, &b.id)
	b.id = 0
}

// Mesh is an uploaded geometry.Mesh: its vertex buffer, index
// buffer, and the vertex array binding both with the mesh layout.
// The CPU-side mesh is not retained.
type Mesh struct {
	_          noCopy
	vbo        *Buffer
	ibo        *Buffer
	vao        *VertexArray
	layout     Layout
	frontFace  uint32
	indexCount int32
}

var frontFaces = map[geometry.Winding]uint32{
	geometry.CounterClockwise: gl.CCW,
	geometry.Clockwise:        gl.CW,
}

// UploadMesh copies m to device memory.
// It requires a current GL context.
func UploadMesh(m *geometry.Mesh) (*Mesh, error) {
	if len(m.Vertices) == 0 || len(m.Triangles) == 0 {
		return nil, ErrEmptyMesh
	}
	layout := NewLayout(m.Attributes)

	// copy vertex data to VBO
	vbo := newBuffer(gl.ARRAY_BUFFER, len(m.Vertices)*bytesPerVertex, gl.Ptr(m.Vertices))

	// copy index data to IBO
	ibo := newBuffer(gl.ELEMENT_ARRAY_BUFFER, len(m.Triangles)*bytesPerTri, gl.Ptr(m.Triangles))

	return &Mesh{
		vbo:        vbo,
		ibo:        ibo,
		vao:        NewVertexArray(layout, vbo, ibo),
		layout:     layout,
		frontFace:  frontFaces[m.Winding],
		indexCount: int32(len(m.Triangles) * indicesPerTri),
	}, nil
}

// IndexCount returns the number of indices drawn for m.
func (m *Mesh) IndexCount() int32 { return m.indexCount }

// Layout returns the vertex layout bound to m.
func (m *Mesh) Layout() Layout { return m.layout }

// VertexBuffer returns the vertex buffer of m.
func (m *Mesh) VertexBuffer() *Buffer { return m.vbo }

// IndexBuffer returns the index buffer of m.
func (m *Mesh) IndexBuffer() *Buffer { return m.ibo }

// FrontFace returns gl.CCW or gl.CW, the winding of the front faces of m.
func (m *Mesh) FrontFace() uint32 { return m.frontFace }

// Bind binds the vertex array of m and selects its front faces.
func (m *Mesh) Bind() {
	m.vao.Bind()
	gl.FrontFace(m.frontFace)
}

// Unbind restores the zero vertex array.
func (m *Mesh) Unbind() { m.vao.Unbind() }

// Draw issues one indexed draw over every triangle of m.
// m must be bound.
func (m *Mesh) Draw() {
	gl.DrawElements(primitivesDrawn, m.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0*bytesUint32))
}

// Release deletes the vertex array and both buffers.
// Calling it again is a no-op.
func (m *Mesh) Release() {
	m.vao.Release()
	m.ibo.Release()
	m.vbo.Release()
}
