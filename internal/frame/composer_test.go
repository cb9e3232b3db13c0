package frame

import (
	"errors"
	"reflect"
	"testing"

	"github.com/iburimskiy/spiral-visualization/internal/spiral"
)

type stroke struct {
	path  spiral.Path
	style Style
}

type recorder struct {
	frames  []Frame
	strokes []stroke
	ended   int
	failOn  int
}

func (r *recorder) Begin(f Frame) error {
	r.frames = append(r.frames, f)
	return nil
}

func (r *recorder) StrokePath(p spiral.Path, s Style) error {
	r.strokes = append(r.strokes, stroke{p, s})
	if r.failOn > 0 && len(r.strokes) == r.failOn {
		return errors.New("boom")
	}
	return nil
}

func (r *recorder) End() error {
	r.ended++
	return nil
}

func params() spiral.ParameterSet {
	p := spiral.Defaults()
	p.CanvasWidth, p.CanvasHeight = 640, 480
	p.StrokeColor = spiral.MustRGB("#010101")
	p.BothColor = spiral.MustRGB("#020202")
	p.VerticalColor = spiral.MustRGB("#030303")
	p.HorizontalColor = spiral.MustRGB("#040404")
	return p
}

func TestVariantsOrder(t *testing.T) {
	tests := []struct {
		name   string
		mirror spiral.Mirror
		want   []string
	}{
		{"none", spiral.Mirror{}, []string{"base"}},
		{"vertical", spiral.Mirror{Vertical: true}, []string{"base", "vertical"}},
		{"horizontal", spiral.Mirror{Horizontal: true}, []string{"base", "horizontal"}},
		{"both", spiral.Mirror{Vertical: true, Horizontal: true}, []string{"base", "both", "vertical", "horizontal"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := params()
			p.Mirror = tt.mirror
			var got []string
			for _, v := range Variants(p) {
				got = append(got, v.Name)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Variants = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComposeBothMirrorsSingleLayer(t *testing.T) {
	p := params()
	p.Layers = 1
	p.Mirror = spiral.Mirror{Vertical: true, Horizontal: true}

	var r recorder
	if err := NewComposer(&r, nil).Compose(p); err != nil {
		t.Fatal(err)
	}
	if len(r.strokes) != 4 {
		t.Fatalf("got %d strokes, want 4", len(r.strokes))
	}
	wantColors := []spiral.RGB{p.StrokeColor, p.BothColor, p.VerticalColor, p.HorizontalColor}
	c := p.Center()
	base := r.strokes[0].path.Nodes
	for i, s := range r.strokes {
		if s.style.Color != wantColors[i] {
			t.Errorf("stroke %d colour = %v, want %v", i, s.style.Color, wantColors[i])
		}
		if len(s.path.Nodes) != p.Nodes {
			t.Errorf("stroke %d has %d nodes", i, len(s.path.Nodes))
		}
	}
	last := len(base) - 1
	if got, want := r.strokes[2].path.Nodes[last].X, 2*c.X-base[last].X; got != want {
		t.Errorf("vertical variant x = %v, want %v", got, want)
	}
	if got, want := r.strokes[3].path.Nodes[last].Y, 2*c.Y-base[last].Y; got != want {
		t.Errorf("horizontal variant y = %v, want %v", got, want)
	}
}

func TestComposeFrameSettings(t *testing.T) {
	p := params()
	p.Opacity = 0.4
	p.LineWidth = 3
	p.DashEffect = true
	p.Rotation = 400

	var r recorder
	if err := NewComposer(&r, nil).Compose(p); err != nil {
		t.Fatal(err)
	}
	want := Frame{Width: 640, Height: 480, Background: p.BackgroundColor, LineWidth: 3, Opacity: 0.4, Dash: true}
	if len(r.frames) != 1 || r.frames[0] != want {
		t.Errorf("frames = %+v, want [%+v]", r.frames, want)
	}
	if r.ended != 1 {
		t.Errorf("End called %d times", r.ended)
	}
	if got := len(r.strokes); got != p.Layers {
		t.Errorf("got %d strokes, want %d", got, p.Layers)
	}
	for l, s := range r.strokes {
		want := spiral.LayerScale(p.Scale, p.LayerRatio, l)
		if s.path.LayerScale != want {
			t.Errorf("layer %d scale = %v, want %v", l, s.path.LayerScale, want)
		}
	}
}

func TestComposeDegenerate(t *testing.T) {
	for _, tt := range []struct {
		name          string
		nodes, layers int
		wantStrokes   int
	}{
		{"no layers", 12, 0, 0},
		{"negative layers", 12, -2, 0},
		{"single node", 1, 2, 2},
		{"no nodes", 0, 2, 2},
	} {
		t.Run(tt.name, func(t *testing.T) {
			p := params()
			p.Nodes = tt.nodes
			p.Layers = tt.layers
			var r recorder
			if err := NewComposer(&r, nil).Compose(p); err != nil {
				t.Fatal(err)
			}
			if len(r.frames) != 1 || r.ended != 1 {
				t.Errorf("frame not begun and ended: %d/%d", len(r.frames), r.ended)
			}
			if len(r.strokes) != tt.wantStrokes {
				t.Errorf("got %d strokes, want %d", len(r.strokes), tt.wantStrokes)
			}
			for _, s := range r.strokes {
				if s.path.Segments() != 0 {
					t.Errorf("degenerate path has %d segments", s.path.Segments())
				}
			}
		})
	}
}

func TestComposeIdempotent(t *testing.T) {
	p := params()
	p.Mirror = spiral.Mirror{Vertical: true, Horizontal: true}
	p.CurvedLines = true

	var a, b recorder
	if err := NewComposer(&a, nil).Compose(p); err != nil {
		t.Fatal(err)
	}
	if err := NewComposer(&b, nil).Compose(p); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two compositions of the same parameters differ")
	}
}

func TestComposeStopsOnError(t *testing.T) {
	p := params()
	r := recorder{failOn: 2}
	err := NewComposer(&r, nil).Compose(p)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(r.strokes) != 2 || r.ended != 0 {
		t.Errorf("strokes=%d ended=%d after failure", len(r.strokes), r.ended)
	}
}
