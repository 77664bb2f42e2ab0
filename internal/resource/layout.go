package resource

import (
	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/paperboard/bluemarble/internal/geometry"
	"github.com/paperboard/bluemarble/internal/shader"
)

const (
	vec3Count = 3 // x,y,z or r,g,b
	vec2Count = 2 // s,t
)

// Attribute describes one vertex attribute inside the
// interleaved vertex buffer.
type Attribute struct {
	Field      geometry.Attributes
	Location   uint32
	Components int32
	Type       uint32
	Normalized bool
	Offset     int
}

// Layout describes how a shader reads geometry.Vertex records.
type Layout struct {
	Stride     int32
	Attributes []Attribute
}

// NewLayout returns the layout for a mesh that writes attrs.
// Fields absent from attrs are left out.
func NewLayout(attrs geometry.Attributes) Layout {
	all := [...]Attribute{
		{geometry.Position, shader.LocationPosition, vec3Count, gl.FLOAT, false, geometry.OffsetPosition},
		{geometry.Normal, shader.LocationNormal, vec3Count, gl.FLOAT, false, geometry.OffsetNormal},
		{geometry.Color, shader.LocationColor, vec3Count, gl.FLOAT, true, geometry.OffsetColor},
		{geometry.TexCoord, shader.LocationTexCoord, vec2Count, gl.FLOAT, true, geometry.OffsetTexCoord},
	}
	l := Layout{Stride: int32(geometry.VertexSize)}
	for _, a := range all {
		if attrs.Has(a.Field) {
			l.Attributes = append(l.Attributes, a)
		}
	}
	return l
}

// VertexArray is a GL vertex array object. It owns its GL object.
type VertexArray struct {
	_  noCopy
	id uint32
}

// NewVertexArray records l over buffers vbo and ibo.
func NewVertexArray(l Layout, vbo, ibo *Buffer) *VertexArray {
	va := &VertexArray{}
	gl.GenVertexArrays(1, &va.id)
	gl.BindVertexArray(va.id)

	// attribute pointers read from the bound ARRAY_BUFFER
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo.id)
	for _, a := range l.Attributes {
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointer(a.Location, a.Components, a.Type, a.Normalized, l.Stride, gl.PtrOffset(a.Offset))
	}

	// the ELEMENT_ARRAY_BUFFER binding is stored in the VAO
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ibo.id)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	return va
}

// ID returns the GL name of va.
func (va *VertexArray) ID() uint32 { return va.id }

// Bind binds va.
func (va *VertexArray) Bind() {
	if va.id == 0 {
		panic("resource: bind of released vertex array")
	}
	gl.BindVertexArray(va.id)
}

// Unbind restores the zero vertex array.
func (va *VertexArray) Unbind() { gl.BindVertexArray(0) }

// Release deletes the GL object. Calling it again is a no-op.
func (va *VertexArray) Release() {
	if va.id == 0 {
		return
	}
	gl.DeleteVertexArrays(1, &va.id)
	va.id = 0
}
