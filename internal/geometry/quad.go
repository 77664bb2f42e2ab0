package geometry

import "github.com/go-gl/mathgl/mgl32"

// unit quad, facing +z
//
//  (0,1)    (1,1)
//   v1------v0
//   |       |
//   |       |
//   v2------v3
//  (0,0)    (1,0)
//
var quadCorners = [4]struct {
	pos mgl32.Vec3
	uv  mgl32.Vec2
}{
	{mgl32.Vec3{0.5, 0.5, 0}, mgl32.Vec2{1, 1}},   // v0 top-right
	{mgl32.Vec3{-0.5, 0.5, 0}, mgl32.Vec2{0, 1}},  // v1 top-left
	{mgl32.Vec3{-0.5, -0.5, 0}, mgl32.Vec2{0, 0}}, // v2 bottom-left
	{mgl32.Vec3{0.5, -0.5, 0}, mgl32.Vec2{1, 0}},  // v3 bottom-right
}

// Quad returns a screen-aligned unit quad made of two
// triangles fanned out from the top-right corner.
func Quad() *Mesh {
	m := &Mesh{
		Vertices:   make([]Vertex, len(quadCorners)),
		Triangles:  []Triangle{{0, 1, 2}, {0, 2, 3}},
		Attributes: Position | Color | TexCoord,
	}
	for i, c := range quadCorners {
		m.Vertices[i] = Vertex{
			Position: c.pos,
			Color:    mgl32.Vec3{c.uv[0], c.uv[1], 1},
			TexCoord: c.uv,
		}
	}
	return m
}
