package spiral

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

func TestWrapDegrees(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{359.5, 359.5},
		{360, 0},
		{361, 1},
		{-1, 359},
		{-720, 0},
		{725, 5},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tt := range tests {
		if got := WrapDegrees(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WrapDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	p := Defaults()
	p.Rotation = -90
	p.Opacity = 1.7
	p.LineWidth = -2
	p.Nodes = 0
	p.Layers = -1
	n := p.Normalize()
	if n.Rotation != 270 {
		t.Errorf("rotation = %v, want 270", n.Rotation)
	}
	if n.Opacity != 1 {
		t.Errorf("opacity = %v, want 1", n.Opacity)
	}
	if n.LineWidth != 0 {
		t.Errorf("line width = %v, want 0", n.LineWidth)
	}
	if n.Nodes != 0 || n.Layers != -1 {
		t.Errorf("Normalize must keep degenerate counts, got nodes=%d layers=%d", n.Nodes, n.Layers)
	}
}

func TestValidate(t *testing.T) {
	good := Defaults()
	good.CanvasWidth, good.CanvasHeight = 100, 100
	if err := good.Validate(); err != nil {
		t.Fatalf("defaults: %v", err)
	}

	bad := []func(*ParameterSet){
		func(p *ParameterSet) { p.Scale = 0 },
		func(p *ParameterSet) { p.Nodes = 0 },
		func(p *ParameterSet) { p.Layers = 0 },
		func(p *ParameterSet) { p.LayerRatio = -1 },
		func(p *ParameterSet) { p.LineWidth = -0.5 },
		func(p *ParameterSet) { p.Opacity = 2 },
		func(p *ParameterSet) { p.CanvasWidth = 0 },
	}
	for i, mutate := range bad {
		p := good
		mutate(&p)
		if err := p.Validate(); !errors.Is(err, ErrInvalidParams) {
			t.Errorf("case %d: Validate() = %v, want ErrInvalidParams", i, err)
		}
	}
}

func TestParseRGB(t *testing.T) {
	c, err := ParseRGB("#00CED1")
	if err != nil {
		t.Fatal(err)
	}
	if c != (RGB{0x00, 0xCE, 0xD1}) {
		t.Errorf("got %+v", c)
	}
	if c.Hex() != "#00ced1" {
		t.Errorf("Hex() = %q", c.Hex())
	}
	if _, err := ParseRGB("cyan"); err == nil {
		t.Error("expected error for non-hex colour")
	}
}

func TestRGBLerpAndAlpha(t *testing.T) {
	c := MustRGB("#FF8000")
	if got := c.Lerp(Black, 0); got != c {
		t.Errorf("t=0 gave %v", got)
	}
	if got := c.Lerp(Black, 1); got != Black {
		t.Errorf("t=1 gave %v", got)
	}
	if got := c.Lerp(Black, 0.5); got != (RGB{128, 64, 0}) {
		t.Errorf("t=0.5 gave %v", got)
	}
	if got := c.NRGBA(0.5); got != (color.NRGBA{255, 128, 0, 128}) {
		t.Errorf("NRGBA(0.5) = %v", got)
	}
}

func TestPresets(t *testing.T) {
	if len(Presets) != 9 {
		t.Fatalf("got %d presets, want 9", len(Presets))
	}
	seen := map[string]bool{}
	for _, p := range Presets {
		if seen[p.Name] {
			t.Errorf("duplicate preset %q", p.Name)
		}
		seen[p.Name] = true
		params := p.Params
		params.CanvasWidth, params.CanvasHeight = 10, 10
		if err := params.Validate(); err != nil {
			t.Errorf("preset %q: %v", p.Name, err)
		}
	}
	p, ok := PresetByName("KALEIDOSCOPE")
	if !ok || !p.Params.DashEffect || !p.Params.Mirror.Vertical || !p.Params.Mirror.Horizontal {
		t.Errorf("kaleidoscope lookup = %+v, %v", p, ok)
	}
	if _, ok := PresetByName("nope"); ok {
		t.Error("unknown preset found")
	}
	if cw, _ := PresetByName("cosmicWave"); !cw.AutoRotate {
		t.Error("cosmicWave should auto-rotate")
	}
}
