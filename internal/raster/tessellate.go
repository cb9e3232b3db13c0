package raster

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/iburimskiy/spiral-visualization/internal/spiral"
)

// Topology says how a Mesh's vertices connect.
type Topology int

const (
	// TriangleStrip: vertices k, k+1, k+2 form a triangle.
	TriangleStrip Topology = iota
	// LineStrip: consecutive vertices form a one-pixel line.
	LineStrip
)

// Vertex is a mesh vertex with its arclength-so-far.
type Vertex struct {
	X, Y     float32
	Distance float32
}

// Mesh is the tessellated geometry of one path.
type Mesh struct {
	Topology    Topology
	Vertices    []Vertex
	MaxDistance float32
}

// Tessellate converts a polyline into mesh geometry. Line widths above one
// pixel become one quad per segment, (p0+n, p0-n, p1+n, p1-n), laid out as a
// triangle strip; thinner lines stay a line strip. Fewer than two points
// produce an empty mesh.
func Tessellate(pts []spiral.Point, lineWidth float64) Mesh {
	if lineWidth <= 1 {
		return lineStrip(pts)
	}
	m := Mesh{Topology: TriangleStrip}
	if len(pts) < 2 {
		return m
	}
	dist := spiral.Arclength(pts)
	m.Vertices = make([]Vertex, 0, 4*(len(pts)-1))
	half := float32(lineWidth / 2)
	for i := 1; i < len(pts); i++ {
		m.Vertices = appendQuad(m.Vertices, vec(pts[i-1]), vec(pts[i]), half, float32(dist[i-1]), float32(dist[i]))
	}
	m.MaxDistance = float32(dist[len(dist)-1])
	return m
}

func lineStrip(pts []spiral.Point) Mesh {
	m := Mesh{Topology: LineStrip}
	if len(pts) < 2 {
		return m
	}
	dist := spiral.Arclength(pts)
	m.Vertices = make([]Vertex, len(pts))
	for i, p := range pts {
		m.Vertices[i] = Vertex{X: float32(p.X), Y: float32(p.Y), Distance: float32(dist[i])}
	}
	m.MaxDistance = float32(dist[len(dist)-1])
	return m
}

// Hairline returns a line strip as a one-pixel-wide triangle strip, for
// pipelines without line primitives. Other meshes are returned unchanged.
func (m Mesh) Hairline() Mesh {
	if m.Topology != LineStrip {
		return m
	}
	out := Mesh{Topology: TriangleStrip, MaxDistance: m.MaxDistance}
	if len(m.Vertices) < 2 {
		return out
	}
	out.Vertices = make([]Vertex, 0, 4*(len(m.Vertices)-1))
	for i := 1; i < len(m.Vertices); i++ {
		p, q := m.Vertices[i-1], m.Vertices[i]
		out.Vertices = appendQuad(out.Vertices, mgl32.Vec2{p.X, p.Y}, mgl32.Vec2{q.X, q.Y}, 0.5, p.Distance, q.Distance)
	}
	return out
}

// Triangles is the number of triangles the mesh draws.
func (m Mesh) Triangles() int {
	if m.Topology != TriangleStrip || len(m.Vertices) < 3 {
		return 0
	}
	return len(m.Vertices) - 2
}

func appendQuad(dst []Vertex, a, b mgl32.Vec2, half, da, db float32) []Vertex {
	d := b.Sub(a)
	var n mgl32.Vec2
	if l := d.Len(); l > 0 {
		n = mgl32.Vec2{d[1], -d[0]}.Mul(half / l)
	}
	p0, p1 := a.Add(n), a.Sub(n)
	p2, p3 := b.Add(n), b.Sub(n)
	return append(dst,
		Vertex{X: p0[0], Y: p0[1], Distance: da},
		Vertex{X: p1[0], Y: p1[1], Distance: da},
		Vertex{X: p2[0], Y: p2[1], Distance: db},
		Vertex{X: p3[0], Y: p3[1], Distance: db},
	)
}

// StripIndices expands a triangle strip of n vertices into triangle list
// indices.
func StripIndices(n int) []uint16 {
	if n < 3 {
		return nil
	}
	is := make([]uint16, 0, 3*(n-2))
	for k := 0; k+2 < n; k++ {
		is = append(is, uint16(k), uint16(k+1), uint16(k+2))
	}
	return is
}

func vec(p spiral.Point) mgl32.Vec2 {
	return mgl32.Vec2{float32(p.X), float32(p.Y)}
}
