// Package frame composes a spiral frame out of layers and mirror variants.
// It knows nothing about the drawing surface; a Rasterizer does the pixels.
package frame

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iburimskiy/spiral-visualization/internal/spiral"
)

// Frame holds the settings that apply to the whole composed image.
type Frame struct {
	Width, Height int
	Background    spiral.RGB
	LineWidth     float64
	Opacity       float64
	Dash          bool
}

// Style is the per-path stroke style.
type Style struct {
	Color    spiral.RGB
	Gradient bool
}

// Rasterizer draws spiral paths onto some surface.
type Rasterizer interface {
	// Begin fills the whole surface with the background and applies the
	// frame-wide alpha, line width and dash.
	Begin(f Frame) error
	StrokePath(p spiral.Path, s Style) error
	// End flushes pending work.
	End() error
}

// Variant is one mirror variant of a layer.
type Variant struct {
	Name    string
	MirrorX bool
	MirrorY bool
	Color   spiral.RGB
}

// Variants lists the variants drawn for every layer, in draw order: base,
// then both-mirror, then vertical, then horizontal.
func Variants(p spiral.ParameterSet) []Variant {
	vs := make([]Variant, 0, 4)
	vs = append(vs, Variant{Name: "base", Color: p.StrokeColor})
	if p.Mirror.Vertical && p.Mirror.Horizontal {
		vs = append(vs, Variant{Name: "both", MirrorX: true, MirrorY: true, Color: p.BothColor})
	}
	if p.Mirror.Vertical {
		vs = append(vs, Variant{Name: "vertical", MirrorX: true, Color: p.VerticalColor})
	}
	if p.Mirror.Horizontal {
		vs = append(vs, Variant{Name: "horizontal", MirrorY: true, Color: p.HorizontalColor})
	}
	return vs
}

// Composer drives a Rasterizer through one frame.
type Composer struct {
	r   Rasterizer
	log *slog.Logger
}

// NewComposer returns a Composer drawing with r. A nil logger discards.
func NewComposer(r Rasterizer, log *slog.Logger) *Composer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Composer{r: r, log: log}
}

// Compose clears the surface and draws every layer and variant of p.
func (c *Composer) Compose(p spiral.ParameterSet) error {
	p = p.Normalize()
	err := c.r.Begin(Frame{
		Width:      p.CanvasWidth,
		Height:     p.CanvasHeight,
		Background: p.BackgroundColor,
		LineWidth:  p.LineWidth,
		Opacity:    p.Opacity,
		Dash:       p.DashEffect,
	})
	if err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}

	variants := Variants(p)
	for l := 0; l < p.Layers; l++ {
		for _, v := range variants {
			path := spiral.Generate(p, l, v.MirrorX, v.MirrorY)
			if err := c.r.StrokePath(path, Style{Color: v.Color, Gradient: p.GradientStroke}); err != nil {
				return fmt.Errorf("layer %d %s: %w", l, v.Name, err)
			}
		}
	}

	if err := c.r.End(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}
	if c.log.Enabled(context.Background(), slog.LevelDebug) {
		c.log.Debug("composed frame",
			"size", fmt.Sprintf("%dx%d", p.CanvasWidth, p.CanvasHeight),
			"layers", p.Layers, "variants", len(variants), "nodes", p.Nodes)
	}
	return nil
}
