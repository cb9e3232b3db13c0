package game

import (
	_ "embed"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/spiral-visualization/internal/raster"
)

//go:embed shader.kage
var shaderSource []byte

// maxStrip is the longest strip sent in one draw; indices are uint16.
const maxStrip = 1 << 15

func compileShader() (*ebiten.Shader, error) {
	s, err := ebiten.NewShader(shaderSource)
	if err != nil {
		return nil, fmt.Errorf("compile stroke shader: %w", err)
	}
	return s, nil
}

// pipeline is a raster.Pipeline drawing meshes with the stroke shader.
type pipeline struct {
	dst    *ebiten.Image
	shader *ebiten.Shader
	vs     []ebiten.Vertex
}

var _ raster.Pipeline = (*pipeline)(nil)

func newPipeline(dst *ebiten.Image, shader *ebiten.Shader) *pipeline {
	return &pipeline{dst: dst, shader: shader}
}

func (p *pipeline) Size() (int, int) {
	b := p.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (p *pipeline) Clear(bg color.NRGBA) error {
	p.dst.Fill(bg)
	return nil
}

func (p *pipeline) Draw(m raster.Mesh, u raster.Uniforms) error {
	m = m.Hairline()
	if len(m.Vertices) < 3 {
		return nil
	}
	p.vs = p.vs[:0]
	for _, v := range m.Vertices {
		p.vs = append(p.vs, ebiten.Vertex{
			DstX:   v.X,
			DstY:   v.Y,
			SrcX:   v.Distance,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		})
	}
	op := &ebiten.DrawTrianglesShaderOptions{
		Uniforms: map[string]any{
			"Color":           u.Color[:],
			"DashSize":        u.DashSize,
			"GapSize":         u.GapSize,
			"DashEnabled":     u.DashEnabled,
			"GradientEnabled": u.GradientEnabled,
			"MaxDistance":     u.MaxDistance,
		},
		AntiAlias: true,
	}
	// Long strips go in chunks that share their two boundary vertices.
	for start := 0; start+2 < len(p.vs); start += maxStrip - 2 {
		end := min(start+maxStrip, len(p.vs))
		chunk := p.vs[start:end]
		p.dst.DrawTrianglesShader(chunk, raster.StripIndices(len(chunk)), p.shader, op)
	}
	return nil
}

// Finish is a no-op: ebiten flushes queued draws before presenting or
// reading pixels.
func (p *pipeline) Finish() error { return nil }
