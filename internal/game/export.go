package game

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/spiral-visualization/internal/config"
	"github.com/iburimskiy/spiral-visualization/internal/export"
	"github.com/iburimskiy/spiral-visualization/internal/frame"
	"github.com/iburimskiy/spiral-visualization/internal/raster"
)

// offscreenTarget renders an export on its own ebiten image and reads it
// back once composed.
type offscreenTarget struct {
	frame.Rasterizer
	img    *ebiten.Image
	shader *ebiten.Shader
}

func (t *offscreenTarget) Image() (image.Image, error) {
	out := image.NewRGBA(t.img.Bounds())
	t.img.ReadPixels(out.Pix)
	return out, nil
}

func (t *offscreenTarget) Close() error {
	t.img.Deallocate()
	if t.shader != nil {
		t.shader.Deallocate()
	}
	return nil
}

// exportTarget builds export targets for backend. The tessellating backend
// compiles its own shader so the export never shares state with the live
// view.
func exportTarget(backend config.Backend) export.NewTarget {
	return func(w, h int) (export.Target, error) {
		img := ebiten.NewImage(w, h)
		if backend == config.Tessellate {
			shader, err := compileShader()
			if err != nil {
				img.Deallocate()
				return nil, err
			}
			return &offscreenTarget{
				Rasterizer: raster.NewTessellating(newPipeline(img, shader)),
				img:        img,
				shader:     shader,
			}, nil
		}
		return &offscreenTarget{Rasterizer: raster.NewImmediate(newCanvas(img)), img: img}, nil
	}
}
