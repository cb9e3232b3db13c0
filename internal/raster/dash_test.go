package raster

import (
	"math"
	"testing"

	"github.com/iburimskiy/spiral-visualization/internal/spiral"
)

func TestDashPolyline(t *testing.T) {
	line := func(length float64) []spiral.Point {
		return []spiral.Point{{X: 0, Y: 0}, {X: length, Y: 0}}
	}
	tests := []struct {
		name string
		pts  []spiral.Point
		want [][2]float64 // start and end x of each run
	}{
		{"two periods", line(20), [][2]float64{{0, 5}, {10, 15}}},
		{"partial dash", line(22), [][2]float64{{0, 5}, {10, 15}, {20, 22}}},
		{"shorter than a dash", line(3), [][2]float64{{0, 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs := DashPolyline(tt.pts, DashSize, GapSize)
			if len(runs) != len(tt.want) {
				t.Fatalf("got %d runs, want %d: %v", len(runs), len(tt.want), runs)
			}
			for i, run := range runs {
				first, last := run[0], run[len(run)-1]
				if math.Abs(first.X-tt.want[i][0]) > 1e-9 || math.Abs(last.X-tt.want[i][1]) > 1e-9 {
					t.Errorf("run %d spans %v..%v, want %v", i, first.X, last.X, tt.want[i])
				}
			}
		})
	}
}

func TestDashPolylineAcrossCorner(t *testing.T) {
	pts := []spiral.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 4}}
	runs := DashPolyline(pts, 5, 5)
	if len(runs) != 1 {
		t.Fatalf("got %d runs: %v", len(runs), runs)
	}
	want := []spiral.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 2}}
	if len(runs[0]) != len(want) {
		t.Fatalf("run = %v, want %v", runs[0], want)
	}
	for i := range want {
		if runs[0][i].Dist(want[i]) > 1e-9 {
			t.Errorf("point %d = %v, want %v", i, runs[0][i], want[i])
		}
	}
}

func TestDashPolylineDegenerate(t *testing.T) {
	if DashPolyline([]spiral.Point{{X: 1, Y: 1}}, 5, 5) != nil {
		t.Error("single point should give no runs")
	}
	if DashPolyline(unitPath(4), 0, 5) != nil {
		t.Error("zero dash should give no runs")
	}
	pts := unitPath(4)
	solid := DashPolyline(pts, 5, 0)
	if len(solid) != 1 || len(solid[0]) != 4 {
		t.Fatalf("solid pattern = %v", solid)
	}
	solid[0][0].X = -1
	if pts[0].X == -1 {
		t.Error("solid run aliases the input")
	}
}

func TestSubdivide(t *testing.T) {
	pts := []spiral.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 3}}
	got := Subdivide(pts, 4)
	want := []spiral.Point{
		{X: 0, Y: 0}, {X: 10.0 / 3, Y: 0}, {X: 20.0 / 3, Y: 0}, {X: 10, Y: 0},
		{X: 10, Y: 3},
	}
	if len(got) != len(want) {
		t.Fatalf("Subdivide = %v, want %v", got, want)
	}
	for i := range want {
		if got[i].Dist(want[i]) > 1e-9 {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
	for i := 1; i < len(got); i++ {
		if d := got[i-1].Dist(got[i]); d > 4+1e-9 {
			t.Errorf("segment %d is %v long", i, d)
		}
	}

	// A gradient sampled per vertex now tracks the true radius: the middle
	// of a 60° chord is closer to the centre than its endpoints.
	c := spiral.Point{}
	chord := []spiral.Point{{X: 100, Y: 0}, {X: 50, Y: 50 * math.Sqrt(3)}}
	mid := Subdivide(chord, 10)
	m := mid[len(mid)/2]
	if r := m.Dist(c); math.Abs(r-100*math.Sqrt(3)/2) > 1 {
		t.Errorf("chord middle radius = %v, want about %v", r, 100*math.Sqrt(3)/2)
	}

	if got := Subdivide(pts[:1], 4); len(got) != 1 {
		t.Errorf("single point = %v", got)
	}
	if got := Subdivide(pts, 0); len(got) != len(pts) {
		t.Errorf("zero step = %v", got)
	}
}
