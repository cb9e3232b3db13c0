package spiral

import "strings"

// Preset is a named starting point for the controls.
type Preset struct {
	Name       string
	Params     ParameterSet
	AutoRotate bool
}

// Ratios are the quick-set layer ratios: 1.5, golden, 2 and silver.
var Ratios = []float64{1.5, 1.618, 2, 2.414}

// Defaults returns the parameters the controls start from and reset to.
// Canvas size is left to the caller.
func Defaults() ParameterSet {
	return ParameterSet{
		Scale:           30,
		Nodes:           12,
		Rotation:        0,
		Layers:          3,
		LayerRatio:      2,
		SpiralType:      Linear,
		StrokeColor:     MustRGB("#00FFFF"),
		VerticalColor:   MustRGB("#FF00FF"),
		HorizontalColor: MustRGB("#FFFF00"),
		BothColor:       MustRGB("#FFFFFF"),
		BackgroundColor: MustRGB("#111111"),
		LineWidth:       2,
		Opacity:         1,
		GradientStroke:  true,
	}
}

type presetSpec struct {
	name                          string
	scale                         float64
	nodes, layers                 int
	ratio                         float64
	vertical, horizontal          bool
	stroke                        string
	lineWidth, opacity            float64
	spiralType                    SpiralType
	background                    string
	verticalC, horizontalC, bothC string
	gradient, dash, autoRotate    bool
}

var presetSpecs = []presetSpec{
	{"goldenSpiral", 20, 50, 5, 1.618, true, false, "#FFD700", 2, 1, Logarithmic, "#111111", "#FF4500", "#FFFF00", "#FFFFFF", true, false, false},
	{"denseMirror", 10, 50, 10, 2, true, true, "#00FF00", 3, 1, Linear, "#111111", "#FF00FF", "#FFFF00", "#00FF00", false, false, false},
	{"minimalist", 30, 12, 1, 2, false, false, "#FFFFFF", 1, 0.8, Linear, "#111111", "#FF00FF", "#FFFF00", "#FFFFFF", false, false, false},
	{"starBurst", 25, 50, 3, 1.5, true, true, "#FF69B4", 2, 1, Linear, "#111111", "#FF00FF", "#FFFF00", "#FFA500", true, false, false},
	{"doubleHelix", 15, 40, 2, 2, true, false, "#00CED1", 2, 1, Logarithmic, "#111111", "#9400D3", "#FFFF00", "#FFFFFF", true, false, false},
	{"nebula", 35, 50, 7, 1.8, false, false, "#8A2BE2", 2, 0.6, Logarithmic, "#1A0033", "#FF00FF", "#FFFF00", "#FFFFFF", true, false, false},
	{"kaleidoscope", 20, 50, 4, 2.2, true, true, "#FF1493", 3, 1, Linear, "#111111", "#FF00FF", "#FFFF00", "#00FFFF", false, true, false},
	{"cosmicWave", 40, 45, 6, 1.9, false, true, "#00B7EB", 2, 0.9, Logarithmic, "#0A1F44", "#FF00FF", "#00CED1", "#FFFFFF", true, false, true},
	{"fractalBloom", 15, 50, 8, 2.414, true, true, "#FF4500", 1, 0.7, Linear, "#222222", "#FFD700", "#FF69B4", "#FFFFFF", false, true, false},
}

// Presets are listed in menu order.
var Presets = buildPresets()

func buildPresets() []Preset {
	out := make([]Preset, 0, len(presetSpecs))
	for _, s := range presetSpecs {
		out = append(out, Preset{
			Name: s.name,
			Params: ParameterSet{
				Scale:           s.scale,
				Nodes:           s.nodes,
				Layers:          s.layers,
				LayerRatio:      s.ratio,
				SpiralType:      s.spiralType,
				Mirror:          Mirror{Vertical: s.vertical, Horizontal: s.horizontal},
				StrokeColor:     MustRGB(s.stroke),
				VerticalColor:   MustRGB(s.verticalC),
				HorizontalColor: MustRGB(s.horizontalC),
				BothColor:       MustRGB(s.bothC),
				BackgroundColor: MustRGB(s.background),
				LineWidth:       s.lineWidth,
				Opacity:         s.opacity,
				GradientStroke:  s.gradient,
				DashEffect:      s.dash,
			},
			AutoRotate: s.autoRotate,
		})
	}
	return out
}

// PresetByName looks a preset up case-insensitively.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}
