package spiral

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is returned by Validate.
var ErrInvalidParams = errors.New("spiral: invalid parameters")

// SpiralType selects the radius growth law.
type SpiralType int

const (
	Linear SpiralType = iota
	Logarithmic
)

func (t SpiralType) String() string {
	switch t {
	case Linear:
		return "linear"
	case Logarithmic:
		return "logarithmic"
	default:
		return fmt.Sprintf("SpiralType(%d)", int(t))
	}
}

// Mirror holds the two independent reflection axes. Vertical reflects x
// across the centre, Horizontal reflects y.
type Mirror struct {
	Vertical   bool
	Horizontal bool
}

// ParameterSet is the full configuration for one composition. It is built
// fresh for every frame and passed by value.
type ParameterSet struct {
	Scale      float64
	Nodes      int
	Rotation   float64 // degrees
	Layers     int
	LayerRatio float64
	SpiralType SpiralType
	Mirror     Mirror

	StrokeColor     RGB
	VerticalColor   RGB
	HorizontalColor RGB
	BothColor       RGB
	BackgroundColor RGB

	LineWidth      float64
	Opacity        float64
	GradientStroke bool
	DashEffect     bool
	CurvedLines    bool

	CanvasWidth  int
	CanvasHeight int
}

// Center returns the middle of the canvas.
func (p ParameterSet) Center() Point {
	return Point{X: float64(p.CanvasWidth) / 2, Y: float64(p.CanvasHeight) / 2}
}

// Normalize wraps rotation into [0, 360), clamps opacity into [0, 1] and
// line width to be non-negative. Degenerate node and layer counts are kept:
// they compose to an empty frame.
func (p ParameterSet) Normalize() ParameterSet {
	p.Rotation = WrapDegrees(p.Rotation)
	p.Opacity = clamp01(p.Opacity)
	if p.LineWidth < 0 || math.IsNaN(p.LineWidth) {
		p.LineWidth = 0
	}
	return p
}

// Validate reports values the control layer should never produce.
func (p ParameterSet) Validate() error {
	var errs []error
	if !(p.Scale > 0) {
		errs = append(errs, fmt.Errorf("scale %v must be > 0", p.Scale))
	}
	if p.Nodes < 1 {
		errs = append(errs, fmt.Errorf("nodes %d must be >= 1", p.Nodes))
	}
	if p.Layers < 1 {
		errs = append(errs, fmt.Errorf("layers %d must be >= 1", p.Layers))
	}
	if !(p.LayerRatio > 0) {
		errs = append(errs, fmt.Errorf("layer ratio %v must be > 0", p.LayerRatio))
	}
	if p.LineWidth < 0 {
		errs = append(errs, fmt.Errorf("line width %v must be >= 0", p.LineWidth))
	}
	if p.Opacity < 0 || p.Opacity > 1 {
		errs = append(errs, fmt.Errorf("opacity %v must be in [0,1]", p.Opacity))
	}
	if p.CanvasWidth <= 0 || p.CanvasHeight <= 0 {
		errs = append(errs, fmt.Errorf("canvas %dx%d must be positive", p.CanvasWidth, p.CanvasHeight))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidParams, errors.Join(errs...))
}

// WrapDegrees maps any angle into [0, 360).
func WrapDegrees(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}
