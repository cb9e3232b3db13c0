// Package animate drives the time-varying parameters: a frame-ticked task
// loop, auto-rotation and the audio-reactive mapping.
package animate

import (
	"math"

	"github.com/iburimskiy/spiral-visualization/internal/spiral"
)

// Task is a repeating step that runs on every tick while Enabled reports
// true. Flipping Enabled to false cancels it.
type Task struct {
	Name    string
	Enabled func() bool
	Step    func()
}

// Loop holds the tasks ticked once per frame.
type Loop struct {
	tasks []Task
}

func (l *Loop) Add(t Task) {
	l.tasks = append(l.tasks, t)
}

// Tick runs every enabled task and reports whether any ran.
func (l *Loop) Tick() bool {
	ran := false
	for _, t := range l.tasks {
		if t.Enabled != nil && !t.Enabled() {
			continue
		}
		t.Step()
		ran = true
	}
	return ran
}

// AutoRotate advances rotation by one degree, wrapping at 360.
func AutoRotate(rotation float64) float64 {
	return spiral.WrapDegrees(rotation + 1)
}

const (
	// AmplitudeThreshold is the level below which scale relaxes to its base.
	AmplitudeThreshold = 0.05
	RotationSwing      = 180.0
	OpacitySwing       = 0.5
	ScaleEasing        = 0.1

	DefaultScaleGap         = 10.0
	DefaultScaleSensitivity = 1.0
)

// Targets are the parameters audio can move.
type Targets struct {
	Rotation float64
	Scale    float64
	Opacity  float64
}

// Base is the resting point the audio mapping swings around, captured when
// audio reactivity starts.
type Base struct {
	Scale   float64
	Opacity float64
}

// AudioReactive maps an amplitude in [0, 1] onto rotation, scale and
// opacity. Each mapping is toggled on its own.
type AudioReactive struct {
	Rotate  bool
	Scale   bool
	Opacity bool

	ScaleGap         float64
	ScaleSensitivity float64
}

func NewAudioReactive() AudioReactive {
	return AudioReactive{
		Rotate:           true,
		Scale:            true,
		Opacity:          true,
		ScaleGap:         DefaultScaleGap,
		ScaleSensitivity: DefaultScaleSensitivity,
	}
}

// Apply returns t moved by one frame of amplitude amp.
func (a AudioReactive) Apply(t Targets, base Base, amp float64) Targets {
	if math.IsNaN(amp) {
		return t
	}
	amp = min(max(amp, 0), 1)

	if a.Rotate {
		t.Rotation = spiral.WrapDegrees(t.Rotation + amp*RotationSwing)
	}
	if a.Scale {
		gap := max(a.ScaleGap, 0)
		target := base.Scale
		if amp > AmplitudeThreshold {
			target = min(max(base.Scale+amp*a.ScaleSensitivity*gap, base.Scale), base.Scale+gap)
		}
		s := t.Scale + (target-t.Scale)*ScaleEasing
		t.Scale = min(max(s, base.Scale), base.Scale+gap)
	}
	if a.Opacity {
		t.Opacity = min(max(base.Opacity-amp*OpacitySwing, 0), 1)
	}
	return t
}
