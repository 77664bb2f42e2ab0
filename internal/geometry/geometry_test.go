package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// approx compares vectors component-wise within delta.
func approx(t *testing.T, want, have mgl32.Vec3, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	return assert.InDeltaSlice(t, want[:], have[:], delta, msgAndArgs...)
}

func TestVertexLayout(t *testing.T) {
	assert.Equal(t, 44, VertexSize)
	assert.Equal(t, 0, OffsetPosition)
	assert.Equal(t, 12, OffsetNormal)
	assert.Equal(t, 24, OffsetColor)
	assert.Equal(t, 36, OffsetTexCoord)
}

func TestAttributes(t *testing.T) {
	a := Position | TexCoord
	assert.True(t, a.Has(Position))
	assert.True(t, a.Has(Position|TexCoord))
	assert.False(t, a.Has(Normal))
	assert.Equal(t, "position|texCoord", a.String())
	assert.Equal(t, "none", Attributes(0).String())
}

func TestSphereCounts(t *testing.T) {
	for _, r := range []int{2, 3, 4, 16, 33, 100} {
		m, err := Sphere(r)
		require.NoError(t, err)
		assert.Len(t, m.Vertices, r*r, "resolution %d", r)
		assert.Len(t, m.Triangles, 2*(r-1)*(r-1), "resolution %d", r)
		assert.Equal(t, 6*(r-1)*(r-1), m.IndexCount(), "resolution %d", r)
	}
}

func TestSphereResolution(t *testing.T) {
	for _, r := range []int{-1, 0, 1} {
		m, err := Sphere(r)
		assert.ErrorIs(t, err, ErrResolution)
		assert.Nil(t, m)
	}
}

func TestSphereNormals(t *testing.T) {
	m, err := Sphere(24)
	require.NoError(t, err)
	for i, v := range m.Vertices {
		assert.InDelta(t, 1, v.Normal.Len(), 1e-5, "vertex %d", i)
		approx(t, v.Position, v.Normal, 1e-5, "vertex %d", i)
	}
}

func TestSphereIndices(t *testing.T) {
	const r = 8
	m, err := Sphere(r)
	require.NoError(t, err)
	for _, tri := range m.Triangles {
		for _, i := range tri {
			assert.Less(t, int(i), len(m.Vertices))
		}
	}
	// first cell
	assert.Equal(t, Triangle{0, 1, r}, m.Triangles[0])
	assert.Equal(t, Triangle{r, 1, r + 1}, m.Triangles[1])
}

func TestSphereWinding(t *testing.T) {
	m, err := Sphere(12)
	require.NoError(t, err)
	assert.Equal(t, Clockwise, m.Winding)
	faces := 0
	for _, tri := range m.Triangles {
		a := m.Vertices[tri[0]].Position
		b := m.Vertices[tri[1]].Position
		c := m.Vertices[tri[2]].Position
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Len() < 1e-6 {
			// collapsed at a pole
			continue
		}
		faces++
		assert.Less(t, n.Dot(a.Add(b).Add(c)), float32(0))
	}
	assert.Greater(t, faces, len(m.Triangles)/2)
}

func TestSphereSeamAndPoles(t *testing.T) {
	const r = 5
	m, err := Sphere(r)
	require.NoError(t, err)

	// north pole ring (v = 0) and south pole ring (v = r-1)
	for u := 0; u < r; u++ {
		north := m.Vertices[u]
		south := m.Vertices[u+(r-1)*r]
		approx(t, mgl32.Vec3{0, 0, 1}, north.Position, 1e-6)
		approx(t, mgl32.Vec3{0, 0, -1}, south.Position, 1e-6)
		assert.InDelta(t, 1-float32(u)/(r-1), north.TexCoord[0], 1e-6)
	}

	// φ=0 and φ=2π columns share positions, not vertices
	for v := 0; v < r; v++ {
		first := m.Vertices[v*r]
		last := m.Vertices[(r-1)+v*r]
		approx(t, first.Position, last.Position, 1e-6)
		assert.Equal(t, float32(1), first.TexCoord[0])
		assert.Equal(t, float32(0), last.TexCoord[0])
	}
}

func TestSphereUV(t *testing.T) {
	const r = 3
	m, err := Sphere(r)
	require.NoError(t, err)
	want := []mgl32.Vec2{
		{1, 0}, {0.5, 0}, {0, 0},
		{1, 0.5}, {0.5, 0.5}, {0, 0.5},
		{1, 1}, {0.5, 1}, {0, 1},
	}
	for i, w := range want {
		have := m.Vertices[i].TexCoord
		assert.InDeltaSlice(t, w[:], have[:], 1e-6, "vertex %d", i)
	}
	assert.Equal(t, Position|Normal|TexCoord, m.Attributes)
}

func TestQuad(t *testing.T) {
	m := Quad()
	require.Len(t, m.Vertices, 4)
	assert.Equal(t, []Triangle{{0, 1, 2}, {0, 2, 3}}, m.Triangles)
	assert.Equal(t, 6, m.IndexCount())
	assert.Equal(t, Position|Color|TexCoord, m.Attributes)
	assert.Equal(t, CounterClockwise, m.Winding)
	assert.False(t, m.Attributes.Has(Normal))

	// counter-clockwise when seen from +z
	for _, tri := range m.Triangles {
		a := m.Vertices[tri[0]].Position
		b := m.Vertices[tri[1]].Position
		c := m.Vertices[tri[2]].Position
		n := b.Sub(a).Cross(c.Sub(a))
		assert.Greater(t, n.Z(), float32(0))
	}
	for _, v := range m.Vertices {
		assert.InDelta(t, 0.5, abs(v.Position.X()), 1e-6)
		assert.InDelta(t, 0.5, abs(v.Position.Y()), 1e-6)
	}
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
