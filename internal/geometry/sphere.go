package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Sphere returns a unit UV sphere sampled at resolution steps
// in both azimuth (φ ∈ [0, 2π]) and polar angle (θ ∈ [0, π]).
//
// The mesh has resolution² vertices and 2·(resolution-1)² triangles.
// The φ=0 and φ=2π columns are separate vertices, and each pole is a
// ring of resolution coincident vertices with their own UVs.
//
// Seen from outside, the triangles are clockwise.
func Sphere(resolution int) (*Mesh, error) {
	if resolution < 2 {
		return nil, ErrResolution
	}
	r := resolution
	step := 1 / float64(r-1)

	m := &Mesh{
		Vertices:   make([]Vertex, 0, r*r),
		Triangles:  make([]Triangle, 0, 2*(r-1)*(r-1)),
		Attributes: Position | Normal | TexCoord,
		Winding:    Clockwise,
	}

	// vertex (u, v) lands at index u + v*r
	for v := 0; v < r; v++ {
		fv := float64(v) * step
		theta := math.Pi * fv
		sinT, cosT := math.Sincos(theta)
		for u := 0; u < r; u++ {
			fu := float64(u) * step
			phi := 2 * math.Pi * fu
			sinP, cosP := math.Sincos(phi)

			pos := mgl32.Vec3{
				float32(sinT * cosP),
				float32(sinT * sinP),
				float32(cosT),
			}
			m.Vertices = append(m.Vertices, Vertex{
				Position: pos,
				Normal:   pos.Normalize(),
				Color:    mgl32.Vec3{1, 1, 1},
				TexCoord: mgl32.Vec2{float32(1 - fu), float32(fv)},
			})
		}
	}

	for v := 0; v < r-1; v++ {
		for u := 0; u < r-1; u++ {
			p0 := uint32(u + v*r)
			p1 := uint32((u + 1) + v*r)
			p2 := uint32((u + 1) + (v+1)*r)
			p3 := uint32(u + (v+1)*r)
			m.Triangles = append(m.Triangles,
				Triangle{p0, p1, p3},
				Triangle{p3, p1, p2},
			)
		}
	}

	return m, nil
}
