package raster

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
)

// GGCanvas is a headless Canvas backed by a fogleman/gg context.
type GGCanvas struct {
	dc    *gg.Context
	alpha float64
}

var _ Canvas = (*GGCanvas)(nil)

func NewGGCanvas(width, height int) *GGCanvas {
	dc := gg.NewContext(width, height)
	dc.SetLineCap(gg.LineCapButt)
	dc.SetLineJoin(gg.LineJoinRound)
	return &GGCanvas{dc: dc, alpha: 1}
}

func (c *GGCanvas) Size() (int, int) { return c.dc.Width(), c.dc.Height() }

func (c *GGCanvas) Image() image.Image { return c.dc.Image() }

func (c *GGCanvas) EncodePNG(w io.Writer) error { return c.dc.EncodePNG(w) }

func (c *GGCanvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	c.dc.ClearPath()
	c.dc.SetFillStyle(gg.NewSolidPattern(c.withAlpha(col)))
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
}

func (c *GGCanvas) BeginPath()                       { c.dc.ClearPath() }
func (c *GGCanvas) MoveTo(x, y float64)              { c.dc.MoveTo(x, y) }
func (c *GGCanvas) LineTo(x, y float64)              { c.dc.LineTo(x, y) }
func (c *GGCanvas) QuadraticTo(cx, cy, x, y float64) { c.dc.QuadraticTo(cx, cy, x, y) }
func (c *GGCanvas) SetLineWidth(w float64)           { c.dc.SetLineWidth(w) }
func (c *GGCanvas) SetGlobalAlpha(a float64)         { c.alpha = a }
func (c *GGCanvas) SetDash(pattern ...float64)       { c.dc.SetDash(pattern...) }

func (c *GGCanvas) SetStrokeColor(col color.NRGBA) {
	c.dc.SetStrokeStyle(gg.NewSolidPattern(c.withAlpha(col)))
}

func (c *GGCanvas) SetStrokeGradient(g RadialGradient) {
	grad := gg.NewRadialGradient(g.CX, g.CY, 0, g.CX, g.CY, g.Radius)
	grad.AddColorStop(0, c.withAlpha(g.Inner))
	grad.AddColorStop(1, c.withAlpha(g.Outer))
	c.dc.SetStrokeStyle(grad)
}

func (c *GGCanvas) Stroke() error {
	c.dc.Stroke()
	return nil
}

// withAlpha folds the global alpha into col; gg has no global alpha.
func (c *GGCanvas) withAlpha(col color.NRGBA) color.NRGBA {
	col.A = uint8(float64(col.A)*clampAlpha(c.alpha) + 0.5)
	return col
}

func clampAlpha(a float64) float64 {
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}
