package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// SoftPipeline is a CPU Pipeline: golang.org/x/image/vector computes the
// coverage of a whole mesh in one pass and Shade colours the covered pixels.
type SoftPipeline struct {
	img *image.RGBA
	z   *vector.Rasterizer

	// per-pixel arclength and squared distance to the nearest segment,
	// reused between draws
	dist []float32
	near []float32
}

var _ Pipeline = (*SoftPipeline)(nil)

func NewSoftPipeline(width, height int) *SoftPipeline {
	return &SoftPipeline{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		z:   vector.NewRasterizer(1, 1),
	}
}

// Image returns the render target.
func (s *SoftPipeline) Image() *image.RGBA { return s.img }

func (s *SoftPipeline) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *SoftPipeline) Clear(bg color.NRGBA) error {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return nil
}

// Draw composites the mesh once. Every triangle is added with the same
// winding, so shared edges add up to full coverage and overlaps at joints
// saturate instead of blending twice.
func (s *SoftPipeline) Draw(m Mesh, u Uniforms) error {
	m = m.Hairline()
	if m.Triangles() == 0 {
		return nil
	}
	r := bounds(m.Vertices, 1).Intersect(s.img.Bounds())
	if r.Empty() {
		return nil
	}

	ox, oy := float32(r.Min.X), float32(r.Min.Y)
	s.z.Reset(r.Dx(), r.Dy())
	s.z.DrawOp = draw.Over
	vs := m.Vertices
	for k := 0; k+2 < len(vs); k++ {
		a, b, c := vs[k], vs[k+1], vs[k+2]
		area := edge(a, b, c.X, c.Y)
		if math.Abs(float64(area)) < 1e-6 {
			continue
		}
		if area < 0 {
			b, c = c, b
		}
		s.z.MoveTo(a.X-ox, a.Y-oy)
		s.z.LineTo(b.X-ox, b.Y-oy)
		s.z.LineTo(c.X-ox, c.Y-oy)
		s.z.ClosePath()
	}
	s.arclength(vs, r)
	s.z.Draw(s.img, r, &fragments{r: r, dist: s.dist, u: u}, r.Min)
	return nil
}

func (s *SoftPipeline) Finish() error { return nil }

// arclength fills s.dist over r by projecting each pixel centre onto the
// nearest segment centre line. Vertices come in groups of four per segment,
// (a+n, a-n, b+n, b-n).
func (s *SoftPipeline) arclength(vs []Vertex, r image.Rectangle) {
	n := r.Dx() * r.Dy()
	if cap(s.dist) < n {
		s.dist = make([]float32, n)
		s.near = make([]float32, n)
	}
	s.dist, s.near = s.dist[:n], s.near[:n]
	for i := range s.near {
		s.dist[i] = 0
		s.near[i] = math.MaxFloat32
	}

	for k := 0; k+3 < len(vs); k += 4 {
		p0, p1, p2, p3 := vs[k], vs[k+1], vs[k+2], vs[k+3]
		ax, ay := (p0.X+p1.X)/2, (p0.Y+p1.Y)/2
		bx, by := (p2.X+p3.X)/2, (p2.Y+p3.Y)/2
		half := float32(math.Hypot(float64(p0.X-ax), float64(p0.Y-ay)))
		dx, dy := bx-ax, by-ay
		l2 := dx*dx + dy*dy

		// The joint wedges around b stay within half of b, so the
		// segment's capsule box holds every pixel it can own.
		qb := bounds([]Vertex{{X: ax, Y: ay}, {X: bx, Y: by}}, half+1).Intersect(r)
		for y := qb.Min.Y; y < qb.Max.Y; y++ {
			py := float32(y) + 0.5
			row := (y - r.Min.Y) * r.Dx()
			for x := qb.Min.X; x < qb.Max.X; x++ {
				px := float32(x) + 0.5
				var t float32
				if l2 > 0 {
					t = clampUnit(((px-ax)*dx + (py-ay)*dy) / l2)
				}
				ex, ey := px-(ax+t*dx), py-(ay+t*dy)
				i := row + x - r.Min.X
				if e := ex*ex + ey*ey; e < s.near[i] {
					s.near[i] = e
					s.dist[i] = p0.Distance + t*(p2.Distance-p0.Distance)
				}
			}
		}
	}
}

// bounds is the pixel box around vs grown by pad.
func bounds(vs []Vertex, pad float32) image.Rectangle {
	minX, minY := float32(math.MaxFloat32), float32(math.MaxFloat32)
	maxX, maxY := -minX, -minY
	for _, v := range vs {
		minX, maxX = min(minX, v.X), max(maxX, v.X)
		minY, maxY = min(minY, v.Y), max(maxY, v.Y)
	}
	return image.Rect(
		int(math.Floor(float64(minX-pad))), int(math.Floor(float64(minY-pad))),
		int(math.Ceil(float64(maxX+pad))), int(math.Ceil(float64(maxY+pad))),
	)
}

// edge is twice the signed area of (a, b, p).
func edge(a, b Vertex, px, py float32) float32 {
	return (b.X-a.X)*(py-a.Y) - (b.Y-a.Y)*(px-a.X)
}

// fragments is an image.Image whose pixels are the shaded fragments of one
// mesh over r.
type fragments struct {
	r    image.Rectangle
	dist []float32
	u    Uniforms
}

func (f *fragments) ColorModel() color.Model { return color.NRGBAModel }

func (f *fragments) Bounds() image.Rectangle { return f.r }

func (f *fragments) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(f.r) {
		return color.NRGBA{}
	}
	d := f.dist[(y-f.r.Min.Y)*f.r.Dx()+x-f.r.Min.X]
	c, keep := Shade(f.u, d)
	if !keep {
		return color.NRGBA{}
	}
	return color.NRGBA{
		R: unit8(c[0]),
		G: unit8(c[1]),
		B: unit8(c[2]),
		A: unit8(c[3]),
	}
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func unit8(v float32) uint8 {
	return uint8(math.Round(float64(clampUnit(v)) * 255))
}
