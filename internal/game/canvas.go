package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/spiral-visualization/internal/raster"
	"github.com/iburimskiy/spiral-visualization/internal/spiral"
)

const (
	// curveSteps is how finely the canvas flattens quadratic segments.
	curveSteps = 16
	// gradientStep is the longest stroke segment coloured from its two ends.
	gradientStep = 4.0
)

var whiteSubImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// canvas is a raster.Canvas drawing onto an ebiten image with the vector
// package. Paths are flattened and dashed before they are stroked, so dash
// and gradient apply to curves the same way as to lines.
type canvas struct {
	dst *ebiten.Image

	runs     [][]spiral.Point
	width    float64
	alpha    float64
	dash     []float64
	solid    color.NRGBA
	gradient *raster.RadialGradient

	vs []ebiten.Vertex
	is []uint16
}

var _ raster.Canvas = (*canvas)(nil)

func newCanvas(dst *ebiten.Image) *canvas {
	return &canvas{dst: dst, width: 1, alpha: 1}
}

func (c *canvas) Size() (int, int) {
	b := c.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (c *canvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	col.A = uint8(math.Round(float64(col.A) * c.alpha))
	vector.DrawFilledRect(c.dst, float32(x), float32(y), float32(w), float32(h), col, false)
}

func (c *canvas) BeginPath() { c.runs = c.runs[:0] }

func (c *canvas) MoveTo(x, y float64) {
	c.runs = append(c.runs, []spiral.Point{{X: x, Y: y}})
}

func (c *canvas) LineTo(x, y float64) {
	if len(c.runs) == 0 {
		c.MoveTo(x, y)
		return
	}
	last := &c.runs[len(c.runs)-1]
	*last = append(*last, spiral.Point{X: x, Y: y})
}

func (c *canvas) QuadraticTo(cx, cy, x, y float64) {
	if len(c.runs) == 0 {
		c.MoveTo(cx, cy)
	}
	last := &c.runs[len(c.runs)-1]
	p0 := (*last)[len(*last)-1]
	*last = spiral.AppendQuadratic(*last, p0, spiral.Point{X: cx, Y: cy}, spiral.Point{X: x, Y: y}, curveSteps)
}

func (c *canvas) SetLineWidth(w float64)   { c.width = w }
func (c *canvas) SetGlobalAlpha(a float64) { c.alpha = min(max(a, 0), 1) }

func (c *canvas) SetDash(pattern ...float64) {
	c.dash = append(c.dash[:0], pattern...)
}

func (c *canvas) SetStrokeColor(col color.NRGBA) {
	c.solid = col
	c.gradient = nil
}

func (c *canvas) SetStrokeGradient(g raster.RadialGradient) {
	c.gradient = &g
}

func (c *canvas) Stroke() error {
	if c.width <= 0 {
		return nil
	}
	op := &vector.StrokeOptions{
		Width:    float32(c.width),
		LineCap:  vector.LineCapButt,
		LineJoin: vector.LineJoinRound,
	}
	for _, run := range c.runs {
		pieces := [][]spiral.Point{run}
		if len(c.dash) == 2 {
			pieces = raster.DashPolyline(run, c.dash[0], c.dash[1])
		}
		for _, pts := range pieces {
			if len(pts) < 2 {
				continue
			}
			if c.gradient != nil {
				pts = raster.Subdivide(pts, gradientStep)
			}
			var path vector.Path
			path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
			for _, p := range pts[1:] {
				path.LineTo(float32(p.X), float32(p.Y))
			}
			c.vs, c.is = path.AppendVerticesAndIndicesForStroke(c.vs, c.is, op)
			if len(c.vs) > flushVertices {
				c.flush()
			}
		}
	}
	c.flush()
	return nil
}

// flushVertices keeps a batch well inside uint16 indices.
const flushVertices = 1 << 15

func (c *canvas) flush() {
	if len(c.is) > 0 {
		for i := range c.vs {
			c.paint(&c.vs[i])
		}
		c.dst.DrawTriangles(c.vs, c.is, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
	}
	c.vs, c.is = c.vs[:0], c.is[:0]
}

// paint colours one vertex with the stroke style.
func (c *canvas) paint(v *ebiten.Vertex) {
	v.SrcX, v.SrcY = 1, 1
	col := c.solid
	if g := c.gradient; g != nil {
		t := math.Hypot(float64(v.DstX)-g.CX, float64(v.DstY)-g.CY) / g.Radius
		col = lerpNRGBA(g.Inner, g.Outer, t)
	}
	v.ColorR = float32(col.R) / 0xff
	v.ColorG = float32(col.G) / 0xff
	v.ColorB = float32(col.B) / 0xff
	v.ColorA = float32(col.A) / 0xff * float32(c.alpha)
}

func lerpNRGBA(a, b color.NRGBA, t float64) color.NRGBA {
	t = min(max(t, 0), 1)
	from := spiral.RGB{R: a.R, G: a.G, B: a.B}
	to := spiral.RGB{R: b.R, G: b.G, B: b.B}
	return from.Lerp(to, t).NRGBA((float64(a.A) + (float64(b.A)-float64(a.A))*t) / 0xff)
}
