package core

// Point is an integer position in screen space
type Point struct {
	X, Y int
}

// Size is an integer extent in screen space
type Size struct {
	W, H int
}

// Rect is an axis-aligned screen rectangle, origin at top-left
type Rect struct {
	X, Y int
	W, H int
}

// Contains reports whether p lies inside r using inclusive-exclusive bounds:
// origin <= p < origin+extent on both axes
func (r Rect) Contains(p Point) bool {
	return r.X <= p.X && p.X < r.X+r.W &&
		r.Y <= p.Y && p.Y < r.Y+r.H
}

// Origin returns the top-left corner
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Extent returns the rectangle size
func (r Rect) Extent() Size {
	return Size{W: r.W, H: r.H}
}

// Intersect clips r against o, returning an empty rect when disjoint
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Empty reports whether the rectangle covers no area
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Vec2 is a world-space vector
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
