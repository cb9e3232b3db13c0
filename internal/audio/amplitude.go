package audio

import (
	"fmt"
	"math"
	"strings"
)

// Measure reduces a window of samples to a level in [0, 1].
type Measure func(samples [][2]float64) float64

// MeasureByName returns Peak for "peak" and RMS for "rms".
func MeasureByName(name string) (Measure, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "peak", "":
		return Peak, nil
	case "rms":
		return RMS, nil
	}
	return nil, fmt.Errorf("unknown amplitude measure %q", name)
}

// Peak is the largest absolute sample value over both channels, clamped to
// [0, 1].
func Peak(samples [][2]float64) float64 {
	var peak float64
	for _, s := range samples {
		peak = max(peak, math.Abs(s[0]), math.Abs(s[1]))
	}
	return min(peak, 1)
}

// RMS is the root mean square of the mono mix, clamped to 1.
func RMS(samples [][2]float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sumSquares float64
	for _, s := range samples {
		mono := (s[0] + s[1]) * 0.5
		sumSquares += mono * mono
	}
	return min(math.Sqrt(sumSquares/float64(len(samples))), 1)
}

// Meter smooths a level for display.
type Meter struct {
	Smoothing float64
	value     float64
}

func (m *Meter) Update(v float64) float64 {
	m.value = m.Smoothing*m.value + (1-m.Smoothing)*v
	return m.value
}

func (m *Meter) Value() float64 { return m.value }

func (m *Meter) Reset() { m.value = 0 }
