package raster

import (
	"math"

	"github.com/iburimskiy/spiral-visualization/internal/spiral"
)

const dashEpsilon = 1e-9

// DashPolyline splits pts into the "on" runs of an on/off dash pattern
// starting at the first point. A non-positive gap returns the whole
// polyline as one run.
func DashPolyline(pts []spiral.Point, on, off float64) [][]spiral.Point {
	if len(pts) < 2 || on <= 0 {
		return nil
	}
	if off <= 0 {
		run := make([]spiral.Point, len(pts))
		copy(run, pts)
		return [][]spiral.Point{run}
	}

	period := on + off
	var (
		runs  [][]spiral.Point
		cur   []spiral.Point
		phase float64
	)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		length := a.Dist(b)
		for pos := 0.0; length-pos > dashEpsilon; {
			drawing := phase < on-dashEpsilon
			left := period - phase
			if drawing {
				left = on - phase
			}
			step := min(left, length-pos)
			if drawing {
				if cur == nil {
					cur = append(cur, a.Lerp(b, pos/length))
				}
				cur = append(cur, a.Lerp(b, (pos+step)/length))
			}
			pos += step
			phase += step
			if drawing && phase >= on-dashEpsilon {
				runs = append(runs, cur)
				cur = nil
			}
			if phase >= period-dashEpsilon {
				phase = 0
			}
		}
	}
	if len(cur) > 1 {
		runs = append(runs, cur)
	}
	return runs
}

// Subdivide inserts points so that no segment is longer than maxLen.
// Original points are kept. Canvases that colour per vertex use it so a
// radial gradient follows the distance from the centre along each chord.
func Subdivide(pts []spiral.Point, maxLen float64) []spiral.Point {
	if len(pts) < 2 || !(maxLen > 0) {
		return pts
	}
	out := make([]spiral.Point, 0, len(pts))
	out = append(out, pts[0])
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		n := int(math.Ceil(a.Dist(b) / maxLen))
		for k := 1; k < n; k++ {
			out = append(out, a.Lerp(b, float64(k)/float64(n)))
		}
		out = append(out, b)
	}
	return out
}
