package layout

import "math"

// Point is a canvas coordinate in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func Pt(x, y int) Point { return Point{X: float64(x), Y: float64(y)} }

func (p Point) Add(dx, dy float64) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

// QuadBezier evaluates B(t) = (1-t)^2*p0 + 2(1-t)t*pc + t^2*p1.
func QuadBezier(p0, pc, p1 Point, t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*p0.X + 2*u*t*pc.X + t*t*p1.X,
		Y: u*u*p0.Y + 2*u*t*pc.Y + t*t*p1.Y,
	}
}

// ArcControl returns the control point of the upward arc between two anchors:
// horizontally centred, lifted above the higher anchor.
func ArcControl(p0, p1 Point) Point {
	return Point{
		X: (p0.X + p1.X) / 2,
		Y: math.Min(p0.Y, p1.Y) - ArcLift,
	}
}
