// Package raster holds the two spiral rasterizers: Immediate strokes paths
// on a 2D canvas, Tessellating turns them into triangle meshes for a
// vertex/fragment pipeline.
package raster

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/iburimskiy/spiral-visualization/internal/frame"
	"github.com/iburimskiy/spiral-visualization/internal/spiral"
)

const (
	DashSize = 5.0
	GapSize  = 5.0
)

// ErrNoSurface is returned when a frame is begun on a surface that cannot
// hold it.
var ErrNoSurface = errors.New("raster: no drawing surface")

// RadialGradient runs from Inner at the centre to Outer at Radius.
type RadialGradient struct {
	CX, CY float64
	Radius float64
	Inner  color.NRGBA
	Outer  color.NRGBA
}

// Canvas is an immediate-mode 2D drawing surface.
type Canvas interface {
	Size() (width, height int)
	FillRect(x, y, w, h float64, c color.NRGBA)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)

	SetLineWidth(w float64)
	SetGlobalAlpha(a float64)
	// SetDash sets an on/off pattern; no arguments means solid.
	SetDash(pattern ...float64)
	SetStrokeColor(c color.NRGBA)
	SetStrokeGradient(g RadialGradient)
	Stroke() error
}

// Immediate strokes spiral paths directly on a Canvas.
type Immediate struct {
	c Canvas
}

var _ frame.Rasterizer = (*Immediate)(nil)

func NewImmediate(c Canvas) *Immediate {
	return &Immediate{c: c}
}

func (r *Immediate) Begin(f frame.Frame) error {
	if r.c == nil {
		return ErrNoSurface
	}
	w, h := r.c.Size()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: canvas is %dx%d", ErrNoSurface, w, h)
	}
	// The background is not subject to global alpha.
	r.c.SetGlobalAlpha(1)
	r.c.FillRect(0, 0, float64(w), float64(h), f.Background.NRGBA(1))

	r.c.SetLineWidth(f.LineWidth)
	r.c.SetGlobalAlpha(f.Opacity)
	if f.Dash {
		r.c.SetDash(DashSize, GapSize)
	} else {
		r.c.SetDash()
	}
	return nil
}

func (r *Immediate) StrokePath(p spiral.Path, s frame.Style) error {
	if p.Segments() == 0 {
		return nil
	}
	if radius := p.Reach(); s.Gradient && radius > 0 {
		r.c.SetStrokeGradient(RadialGradient{
			CX:     p.Center.X,
			CY:     p.Center.Y,
			Radius: radius,
			Inner:  s.Color.NRGBA(1),
			Outer:  spiral.Black.NRGBA(1),
		})
	} else {
		r.c.SetStrokeColor(s.Color.NRGBA(1))
	}

	r.c.BeginPath()
	r.c.MoveTo(p.Nodes[0].X, p.Nodes[0].Y)
	for i := 1; i < len(p.Nodes); i++ {
		prev, next := p.Nodes[i-1], p.Nodes[i]
		if p.Curved {
			mid := prev.Mid(next)
			r.c.QuadraticTo(mid.X, mid.Y, next.X, next.Y)
		} else {
			r.c.LineTo(next.X, next.Y)
		}
	}
	return r.c.Stroke()
}

func (r *Immediate) End() error { return nil }
