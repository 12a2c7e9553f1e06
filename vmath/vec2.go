package vmath

import "math"

// Vec2 is a 2D vector in world units
// World space: x grows to the right from the paddle side (x=0), y in [-1, 1] top to bottom
type Vec2 struct {
	X, Y float64
}

// V returns a vector with the given components
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale multiplies both components by s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Mul multiplies component-wise
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{v.X * o.X, v.Y * o.Y}
}

// Dot returns the dot product
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the Euclidean length
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns the unit vector, zero-safe
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Lerp interpolates from v toward o by t, t is clamped to [0, 1]
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	t = Clamp(t, 0, 1)
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// FromAngle returns the unit vector for angle radians, 0 points along +x
func FromAngle(angle float64) Vec2 {
	return Vec2{math.Cos(angle), math.Sin(angle)}
}

// Clamp limits x to [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ReflectY returns v with Y pointing away from a horizontal wall
// up=true forces negative Y (world top is -1), otherwise positive Y
func (v Vec2) ReflectY(up bool) Vec2 {
	if up {
		return Vec2{v.X, -math.Abs(v.Y)}
	}
	return Vec2{v.X, math.Abs(v.Y)}
}
