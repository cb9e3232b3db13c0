// Package controls holds the raw user-facing control state and turns it into
// the immutable parameter set the renderer consumes.
package controls

import (
	"fmt"
	"math"

	"github.com/iburimskiy/spiral-visualization/internal/animate"
	"github.com/iburimskiy/spiral-visualization/internal/config"
	"github.com/iburimskiy/spiral-visualization/internal/spiral"
)

// Master is the style that survives preset changes while pinned.
type Master struct {
	StrokeColor     spiral.RGB
	VerticalColor   spiral.RGB
	HorizontalColor spiral.RGB
	BothColor       spiral.RGB
	BackgroundColor spiral.RGB
	LineWidth       float64
	Opacity         float64
	GradientStroke  bool
	DashEffect      bool
	CurvedLines     bool
}

func masterOf(p spiral.ParameterSet) Master {
	return Master{
		StrokeColor:     p.StrokeColor,
		VerticalColor:   p.VerticalColor,
		HorizontalColor: p.HorizontalColor,
		BothColor:       p.BothColor,
		BackgroundColor: p.BackgroundColor,
		LineWidth:       p.LineWidth,
		Opacity:         p.Opacity,
		GradientStroke:  p.GradientStroke,
		DashEffect:      p.DashEffect,
		CurvedLines:     p.CurvedLines,
	}
}

func (m Master) apply(p spiral.ParameterSet) spiral.ParameterSet {
	p.StrokeColor = m.StrokeColor
	p.VerticalColor = m.VerticalColor
	p.HorizontalColor = m.HorizontalColor
	p.BothColor = m.BothColor
	p.BackgroundColor = m.BackgroundColor
	p.LineWidth = m.LineWidth
	p.Opacity = m.Opacity
	p.GradientStroke = m.GradientStroke
	p.DashEffect = m.DashEffect
	p.CurvedLines = m.CurvedLines
	return p
}

// State is the control surface. It is a plain value so it can be kept in
// the undo history.
type State struct {
	Params     spiral.ParameterSet
	Preset     string
	AutoRotate bool

	AudioEnabled bool
	Audio        animate.AudioReactive
	Base         animate.Base

	Master       Master
	MasterPinned bool
}

func New() State {
	return State{
		Params: spiral.Defaults(),
		Audio:  animate.NewAudioReactive(),
	}
}

// Snapshot builds the parameter set for a canvas of the given size.
func (s State) Snapshot(width, height int) spiral.ParameterSet {
	p := s.Params
	p.CanvasWidth, p.CanvasHeight = width, height
	return p.Normalize()
}

// Checked is Snapshot for entry points that take parameters from outside
// the interactive controls, such as a preset named in the environment. It
// rejects values the renderer should never be handed.
func (s State) Checked(width, height int) (spiral.ParameterSet, error) {
	p := s.Snapshot(width, height)
	if err := p.Validate(); err != nil {
		return spiral.ParameterSet{}, err
	}
	return p, nil
}

// ApplyPreset loads pr. Pinned master settings override the preset's
// style.
func (s *State) ApplyPreset(pr spiral.Preset) {
	p := pr.Params
	p.Rotation = s.Params.Rotation
	if s.MasterPinned {
		p = s.Master.apply(p)
	}
	s.Params = p
	s.Preset = pr.Name
	s.AutoRotate = pr.AutoRotate
	s.Base = animate.Base{Scale: p.Scale, Opacity: p.Opacity}
}

// ApplyPresetByName is ApplyPreset for a name lookup.
func (s *State) ApplyPresetByName(name string) error {
	pr, ok := spiral.PresetByName(name)
	if !ok {
		return fmt.Errorf("%w: unknown preset %q", spiral.ErrInvalidParams, name)
	}
	s.ApplyPreset(pr)
	return nil
}

// ToggleMaster pins the current style, or unpins it.
func (s *State) ToggleMaster() {
	s.MasterPinned = !s.MasterPinned
	if s.MasterPinned {
		s.Master = masterOf(s.Params)
	}
}

// Reset returns to the defaults with every animation off. A pinned master
// style is kept.
func (s *State) Reset() {
	pinned, master := s.MasterPinned, s.Master
	*s = New()
	s.MasterPinned, s.Master = pinned, master
	if pinned {
		s.Params = master.apply(s.Params)
	}
}

// SetScale sets the base scale, clamped for pointer and key gestures.
// While audio drives the scale only the base moves.
func (s *State) SetScale(v float64) {
	v = clamp(v, config.MinScale, config.MaxScale)
	if s.AudioEnabled && s.Audio.Scale {
		s.Base.Scale = v
		return
	}
	s.Params.Scale = v
	if s.AudioEnabled {
		s.Base.Scale = v
	}
}

// ScaleBy nudges the scale by d.
func (s *State) ScaleBy(d float64) {
	cur := s.Params.Scale
	if s.AudioEnabled && s.Audio.Scale {
		cur = s.Base.Scale
	}
	s.SetScale(cur + d)
}

func (s *State) RotateBy(deg float64) {
	s.Params.Rotation = spiral.WrapDegrees(s.Params.Rotation + deg)
}

func (s *State) AddNodes(d int) {
	s.Params.Nodes = clampInt(s.Params.Nodes+d, 1, config.MaxNodes)
}

func (s *State) AddLayers(d int) {
	s.Params.Layers = clampInt(s.Params.Layers+d, 1, config.MaxLayers)
}

func (s *State) SetLayerRatio(r float64) {
	r = math.Round(r*10) / 10
	s.Params.LayerRatio = clamp(r, config.MinLayerRatio, config.MaxLayerRatio)
}

// CycleRatio moves to the next quick-set ratio after the current one.
func (s *State) CycleRatio() {
	for _, r := range spiral.Ratios {
		if r > s.Params.LayerRatio+1e-9 {
			s.Params.LayerRatio = r
			return
		}
	}
	s.Params.LayerRatio = spiral.Ratios[0]
}

func (s *State) ToggleSpiralType() {
	if s.Params.SpiralType == spiral.Linear {
		s.Params.SpiralType = spiral.Logarithmic
	} else {
		s.Params.SpiralType = spiral.Linear
	}
}

func (s *State) ToggleVertical()   { s.Params.Mirror.Vertical = !s.Params.Mirror.Vertical }
func (s *State) ToggleHorizontal() { s.Params.Mirror.Horizontal = !s.Params.Mirror.Horizontal }
func (s *State) ToggleGradient()   { s.Params.GradientStroke = !s.Params.GradientStroke }
func (s *State) ToggleDash()       { s.Params.DashEffect = !s.Params.DashEffect }
func (s *State) ToggleCurved()     { s.Params.CurvedLines = !s.Params.CurvedLines }
func (s *State) ToggleAutoRotate() { s.AutoRotate = !s.AutoRotate }

// StartAudio captures the base the audio mapping swings around.
func (s *State) StartAudio() {
	if s.AudioEnabled {
		return
	}
	s.AudioEnabled = true
	s.Base = animate.Base{Scale: s.Params.Scale, Opacity: s.Params.Opacity}
}

// StopAudio restores the captured base.
func (s *State) StopAudio() {
	if !s.AudioEnabled {
		return
	}
	s.AudioEnabled = false
	s.Params.Scale = s.Base.Scale
	s.Params.Opacity = s.Base.Opacity
}

func (s *State) ToggleAudio() {
	if s.AudioEnabled {
		s.StopAudio()
	} else {
		s.StartAudio()
	}
}

// ToggleAudioRotate switches the rotation swing.
func (s *State) ToggleAudioRotate() { s.Audio.Rotate = !s.Audio.Rotate }

// ToggleAudioScale switches the scale mapping. Turning it off while audio
// runs puts the scale back on its base.
func (s *State) ToggleAudioScale() {
	s.Audio.Scale = !s.Audio.Scale
	if !s.Audio.Scale && s.AudioEnabled {
		s.Params.Scale = s.Base.Scale
	}
}

// ToggleAudioOpacity switches the opacity mapping, restoring the base
// opacity when it goes off.
func (s *State) ToggleAudioOpacity() {
	s.Audio.Opacity = !s.Audio.Opacity
	if !s.Audio.Opacity && s.AudioEnabled {
		s.Params.Opacity = s.Base.Opacity
	}
}

// AdjustScaleGap moves the headroom above the base scale by d.
func (s *State) AdjustScaleGap(d float64) {
	s.Audio.ScaleGap = clamp(s.Audio.ScaleGap+d, 0, config.MaxScaleGap)
}

// AdjustSensitivity moves the scale sensitivity by d, rounded to a tenth.
func (s *State) AdjustSensitivity(d float64) {
	v := math.Round((s.Audio.ScaleSensitivity+d)*10) / 10
	s.Audio.ScaleSensitivity = clamp(v, config.MinSensitivity, config.MaxSensitivity)
}

// StepAudio moves the audio-driven fields by one frame of amplitude amp.
func (s *State) StepAudio(amp float64) {
	if !s.AudioEnabled {
		return
	}
	t := s.Audio.Apply(animate.Targets{
		Rotation: s.Params.Rotation,
		Scale:    s.Params.Scale,
		Opacity:  s.Params.Opacity,
	}, s.Base, amp)
	s.Params.Rotation, s.Params.Scale, s.Params.Opacity = t.Rotation, t.Scale, t.Opacity
}

// StepAutoRotate advances the rotation by one degree.
func (s *State) StepAutoRotate() {
	s.Params.Rotation = animate.AutoRotate(s.Params.Rotation)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return min(max(v, lo), hi)
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
