package raster

import (
	"fmt"
	"image/color"
	"math"

	"github.com/iburimskiy/spiral-visualization/internal/frame"
	"github.com/iburimskiy/spiral-visualization/internal/spiral"
)

// Uniforms are the per-draw inputs of the fragment stage.
type Uniforms struct {
	Resolution      [2]float32
	Color           [4]float32 // straight alpha
	DashSize        float32
	GapSize         float32
	DashEnabled     int
	GradientEnabled int
	MaxDistance     float32
}

// Pipeline is a vertex/fragment pipeline with no stroke, dash or gradient
// primitives of its own.
type Pipeline interface {
	Size() (width, height int)
	Clear(bg color.NRGBA) error
	Draw(m Mesh, u Uniforms) error
	// Finish blocks until all submitted draws are on the target.
	Finish() error
}

// Shade is the fragment stage: it returns the straight-alpha colour for a
// fragment at arclength d, or keep=false when the fragment is discarded.
func Shade(u Uniforms, d float32) (c [4]float32, keep bool) {
	if u.DashEnabled == 1 {
		if period := float64(u.DashSize + u.GapSize); period > 0 && math.Mod(float64(d), period) > float64(u.DashSize) {
			return c, false
		}
	}
	c = u.Color
	if u.GradientEnabled == 1 && u.MaxDistance > 0 {
		t := d / u.MaxDistance
		for i := 0; i < 3; i++ {
			c[i] *= 1 - t
		}
	}
	return c, true
}

// Tessellating rasterizes paths by building meshes and drawing them through
// a Pipeline. Geometry and uniforms are rebuilt on every draw.
type Tessellating struct {
	p Pipeline
	f frame.Frame
}

var _ frame.Rasterizer = (*Tessellating)(nil)

func NewTessellating(p Pipeline) *Tessellating {
	return &Tessellating{p: p}
}

func (r *Tessellating) Begin(f frame.Frame) error {
	if r.p == nil {
		return ErrNoSurface
	}
	if w, h := r.p.Size(); w <= 0 || h <= 0 {
		return fmt.Errorf("%w: pipeline target is %dx%d", ErrNoSurface, w, h)
	}
	r.f = f
	return r.p.Clear(f.Background.NRGBA(1))
}

func (r *Tessellating) StrokePath(p spiral.Path, s frame.Style) error {
	m := Tessellate(p.Polyline(), r.f.LineWidth)
	if len(m.Vertices) == 0 {
		return nil
	}
	return r.p.Draw(m, r.uniforms(s, m.MaxDistance))
}

func (r *Tessellating) uniforms(s frame.Style, maxDistance float32) Uniforms {
	w, h := r.p.Size()
	cr, cg, cb := s.Color.Floats()
	u := Uniforms{
		Resolution:  [2]float32{float32(w), float32(h)},
		Color:       [4]float32{float32(cr), float32(cg), float32(cb), float32(r.f.Opacity)},
		DashSize:    DashSize,
		GapSize:     GapSize,
		MaxDistance: maxDistance,
	}
	if r.f.Dash {
		u.DashEnabled = 1
	}
	if s.Gradient {
		u.GradientEnabled = 1
	}
	return u
}

func (r *Tessellating) End() error {
	return r.p.Finish()
}
