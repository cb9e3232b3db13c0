// Package export renders a composition at a fixed resolution and encodes
// it as PNG.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/iburimskiy/spiral-visualization/internal/config"
	"github.com/iburimskiy/spiral-visualization/internal/frame"
	"github.com/iburimskiy/spiral-visualization/internal/raster"
	"github.com/iburimskiy/spiral-visualization/internal/spiral"
)

// Target is a rasterizer that can return what it drew. Targets that also
// implement io.Closer are closed once the image has been taken.
type Target interface {
	frame.Rasterizer
	Image() (image.Image, error)
}

// NewTarget creates a render target of the given size.
type NewTarget func(width, height int) (Target, error)

type Options struct {
	Size    int
	Backend config.Backend
	// Target overrides the headless target chosen by Backend.
	Target NewTarget
	Log    *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Size <= 0 {
		o.Size = config.ExportSize
	}
	if o.Backend == "" {
		o.Backend = config.Immediate
	}
	if o.Log == nil {
		o.Log = slog.New(slog.DiscardHandler)
	}
	return o
}

// Headless returns the in-memory target for a backend: a fogleman/gg canvas
// for the immediate backend, the software pipeline for the tessellating
// one.
func Headless(b config.Backend) (NewTarget, error) {
	switch b {
	case config.Immediate:
		return func(w, h int) (Target, error) {
			c := raster.NewGGCanvas(w, h)
			return &canvasTarget{Immediate: raster.NewImmediate(c), c: c}, nil
		}, nil
	case config.Tessellate:
		return func(w, h int) (Target, error) {
			p := raster.NewSoftPipeline(w, h)
			return &pipelineTarget{Tessellating: raster.NewTessellating(p), p: p}, nil
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, b)
	}
}

type canvasTarget struct {
	*raster.Immediate
	c *raster.GGCanvas
}

func (t *canvasTarget) Image() (image.Image, error) { return t.c.Image(), nil }

type pipelineTarget struct {
	*raster.Tessellating
	p *raster.SoftPipeline
}

func (t *pipelineTarget) Image() (image.Image, error) { return t.p.Image(), nil }

// Render composes p on a square canvas of opts.Size.
func Render(ctx context.Context, p spiral.ParameterSet, opts Options) (image.Image, error) {
	opts = opts.withDefaults()
	newTarget := opts.Target
	if newTarget == nil {
		var err error
		if newTarget, err = Headless(opts.Backend); err != nil {
			return nil, err
		}
	}
	p.CanvasWidth, p.CanvasHeight = opts.Size, opts.Size

	t, err := newTarget(opts.Size, opts.Size)
	if err != nil {
		return nil, fmt.Errorf("create export target: %w", err)
	}
	if c, ok := t.(io.Closer); ok {
		defer c.Close()
	}
	if err := frame.NewComposer(t, opts.Log).Compose(p); err != nil {
		return nil, fmt.Errorf("compose export: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return t.Image()
}

// Write renders p and encodes it to w.
func Write(ctx context.Context, w io.Writer, p spiral.ParameterSet, opts Options) error {
	img, err := Render(ctx, p, opts)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// File writes the PNG to path through a temporary file in the same
// directory. Nothing is left behind when any step fails.
func File(ctx context.Context, path string, p spiral.ParameterSet, opts Options) (err error) {
	opts = opts.withDefaults()
	if path == "" {
		return errors.New("export: empty path")
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
			err = fmt.Errorf("export %s: %w", path, err)
		}
	}()

	if err = Write(ctx, tmp, p, opts); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return err
	}
	opts.Log.Info("exported", "path", path, "size", opts.Size, "backend", opts.Backend)
	return nil
}
