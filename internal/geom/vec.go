// Package geom provides the small amount of 2D vector math the stick needs.
package geom

import "math"

// Vec2 is a point or displacement in local control units.
// Y grows downward, as in screen space.
type Vec2 struct {
	X, Y float64
}

// V creates a new Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Len returns the Euclidean length.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns the unit vector in the direction of v.
// The zero vector normalizes to itself instead of NaN.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// AngleDeg returns atan2(y, x) in degrees, in the range (-180, 180].
func (v Vec2) AngleDeg() float64 {
	a := math.Atan2(v.Y, v.X) * 180 / math.Pi
	if a == -180 {
		// atan2(-0, -x) yields -180; fold it onto the closed end of the range.
		a = 180
	}
	return a
}

// ClampLen returns v unchanged when its length is within max, otherwise the
// vector of length max pointing the same way. A non-positive max yields zero.
func (v Vec2) ClampLen(max float64) Vec2 {
	if max <= 0 {
		return Vec2{}
	}
	if v.Len() <= max {
		return v
	}
	return v.Normalize().Scale(max)
}

// IsValid reports whether both components are finite.
func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
