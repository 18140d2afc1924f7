// Package geom holds the small amount of 2D math the controller needs.
// Coordinates are y-up: positive Y points away from gravity.
package geom

import "math"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

var (
	Zero  = Vec2{}
	Up    = Vec2{X: 0, Y: 1}
	Down  = Vec2{X: 0, Y: -1}
	Right = Vec2{X: 1, Y: 0}
	Left  = Vec2{X: -1, Y: 0}
)

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) Abs() Vec2 { return Vec2{X: math.Abs(v.X), Y: math.Abs(v.Y)} }
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{X: v.X * o.X, Y: v.Y * o.Y} }
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }
func (v Vec2) Div(s float64) Vec2 { return Vec2{X: v.X / s, Y: v.Y / s} }

// Normalize returns the unit vector in the direction of v, or Zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Zero
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// AngleDeg returns the unsigned angle between a and b in degrees, 0..180.
func AngleDeg(a, b Vec2) float64 {
	if a.IsZero() || b.IsZero() {
		return 0
	}
	return math.Atan2(math.Abs(a.Cross(b)), a.Dot(b)) * (180 / math.Pi)
}

func Deg2Rad(deg float64) float64 { return deg * math.Pi / 180 }

// ClampFloat constrains value to [min, max].
func ClampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
