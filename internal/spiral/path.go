package spiral

import "math"

const (
	// NodeStep is the angle between consecutive nodes. It gives the spiral
	// its hexagonal look.
	NodeStep = math.Pi / 3

	// LayerTwist is the extra rotation in degrees applied per layer.
	LayerTwist = 10.0

	// CurveSteps is the number of samples per curved segment.
	CurveSteps = 5

	logGrowth = 0.1

	// neutralRatio is the layer ratio that keeps every layer at Scale.
	neutralRatio = 5.0
)

// Point is a position in canvas pixels, y pointing down.
type Point struct {
	X, Y float64
}

func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }
func (p Point) Mid(q Point) Point { return Point{(p.X + q.X) / 2, (p.Y + q.Y) / 2} }
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Path is one spiral arm: the generated nodes for a layer and mirror
// variant, plus what the rasterizers need to style it.
type Path struct {
	Nodes      []Point
	Center     Point
	LayerScale float64
	Curved     bool
}

// LayerScale returns scale * (ratio/5)^layer. Layer 0 is always scale.
func LayerScale(scale, ratio float64, layer int) float64 {
	if layer == 0 {
		return scale
	}
	return scale * math.Pow(ratio/neutralRatio, float64(layer))
}

// Generate computes the nodes of one arm. It never fails: nodes <= 0
// yields an empty path and a zero layer scale collapses every node onto the
// centre.
func Generate(p ParameterSet, layer int, mirrorX, mirrorY bool) Path {
	center := p.Center()
	ls := LayerScale(p.Scale, p.LayerRatio, layer)
	path := Path{
		Center:     center,
		LayerScale: ls,
		Curved:     p.CurvedLines,
	}
	if p.Nodes <= 0 {
		return path
	}

	initial := (p.Rotation + LayerTwist*float64(layer)) * math.Pi / 180
	path.Nodes = make([]Point, p.Nodes)
	for i := range path.Nodes {
		r := radius(p.SpiralType, ls, i)
		theta := initial + float64(i)*NodeStep
		x := center.X + r*math.Cos(theta)
		y := center.Y + r*math.Sin(theta)
		if mirrorX {
			x = 2*center.X - x
		}
		if mirrorY {
			y = 2*center.Y - y
		}
		path.Nodes[i] = Point{X: x, Y: y}
	}
	return path
}

func radius(t SpiralType, layerScale float64, i int) float64 {
	var r float64
	if t == Logarithmic {
		r = layerScale * math.Exp(logGrowth*float64(i))
	} else {
		r = layerScale * float64(i)
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// Reach is the outermost extent used as the gradient radius.
func (p Path) Reach() float64 {
	return p.LayerScale * float64(len(p.Nodes))
}

// Segments is the number of node-to-node segments.
func (p Path) Segments() int {
	if len(p.Nodes) < 2 {
		return 0
	}
	return len(p.Nodes) - 1
}

// Polyline returns the points to connect with straight segments. Curved
// paths are subdivided into CurveSteps samples per segment.
func (p Path) Polyline() []Point {
	if !p.Curved || len(p.Nodes) < 2 {
		out := make([]Point, len(p.Nodes))
		copy(out, p.Nodes)
		return out
	}
	out := make([]Point, 0, (len(p.Nodes)-1)*CurveSteps+1)
	out = append(out, p.Nodes[0])
	for i := 1; i < len(p.Nodes); i++ {
		out = AppendQuadratic(out, p.Nodes[i-1], p.Nodes[i-1].Mid(p.Nodes[i]), p.Nodes[i], CurveSteps)
	}
	return out
}

// Arclength accumulates Euclidean length along pts: the first entry is 0
// and the last is the total length.
func Arclength(pts []Point) []float64 {
	out := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		out[i] = out[i-1] + pts[i-1].Dist(pts[i])
	}
	return out
}

// Quadratic evaluates the quadratic Bézier p0, c, p1 at t.
func Quadratic(p0, c, p1 Point, t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*p0.X + 2*u*t*c.X + t*t*p1.X,
		Y: u*u*p0.Y + 2*u*t*c.Y + t*t*p1.Y,
	}
}

// AppendQuadratic appends steps samples of the curve, excluding p0 and
// ending exactly on p1.
func AppendQuadratic(dst []Point, p0, c, p1 Point, steps int) []Point {
	if steps < 1 {
		steps = 1
	}
	for k := 1; k < steps; k++ {
		dst = append(dst, Quadratic(p0, c, p1, float64(k)/float64(steps)))
	}
	return append(dst, p1)
}
