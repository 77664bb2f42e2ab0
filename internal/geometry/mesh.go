// Package geometry generates the static meshes drawn by the renderer.
package geometry

import (
	"errors"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the record stored in every vertex buffer.
// A mesh need not fill every field; Mesh.Attributes tells
// which ones carry data.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Color    mgl32.Vec3
	TexCoord mgl32.Vec2
}

// byte layout of Vertex
const (
	VertexSize     = int(unsafe.Sizeof(Vertex{}))
	OffsetPosition = int(unsafe.Offsetof(Vertex{}.Position))
	OffsetNormal   = int(unsafe.Offsetof(Vertex{}.Normal))
	OffsetColor    = int(unsafe.Offsetof(Vertex{}.Color))
	OffsetTexCoord = int(unsafe.Offsetof(Vertex{}.TexCoord))
)

// Triangle holds three vertex indices. The order is given by
// the Winding of the mesh.
type Triangle [3]uint32

// Attributes is a set of Vertex fields written by a mesh.
type Attributes uint8

// Vertex fields.
const (
	Position Attributes = 1 << iota
	Normal
	Color
	TexCoord
)

// Has reports whether all fields in x are present in a.
func (a Attributes) Has(x Attributes) bool { return a&x == x }

// String implements fmt.Stringer.
func (a Attributes) String() string {
	if a == 0 {
		return "none"
	}
	s := ""
	for _, x := range [...]struct {
		attr Attributes
		name string
	}{
		{Position, "position"},
		{Normal, "normal"},
		{Color, "color"},
		{TexCoord, "texCoord"},
	} {
		if a.Has(x.attr) {
			if s != "" {
				s += "|"
			}
			s += x.name
		}
	}
	return s
}

// Winding is the vertex order of front-facing triangles,
// seen from outside the mesh.
type Winding uint8

// Windings.
const (
	CounterClockwise Winding = iota
	Clockwise
)

func (w Winding) String() string {
	if w == Clockwise {
		return "cw"
	}
	return "ccw"
}

// Mesh is an indexed triangle list.
// It is not modified after generation.
type Mesh struct {
	Vertices   []Vertex
	Triangles  []Triangle
	Attributes Attributes
	Winding    Winding
}

// ErrResolution means a sphere was requested with fewer than
// two samples per angle.
var ErrResolution = errors.New("geometry: sphere resolution must be at least 2")

// IndexCount returns the number of indices drawn for m.
func (m *Mesh) IndexCount() int { return 3 * len(m.Triangles) }
