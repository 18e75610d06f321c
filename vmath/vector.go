package vmath

import "math"

// Vec2 is a continuous position or displacement in dot units
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// FromAngle returns the vector of length mag pointing along angle (radians)
func FromAngle(angle, mag float64) Vec2 {
	return Vec2{X: mag * math.Cos(angle), Y: mag * math.Sin(angle)}
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale multiplies both components by f
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

// Len returns the Euclidean length
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// LenSq returns the squared length without sqrt
func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

// Normalize returns the unit vector, zero-safe
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Angle returns atan2(y, x) in (-π, π]
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Dist returns the Euclidean distance between v and o
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// Cell floors the position to integer cell coordinates
func (v Vec2) Cell() (int, int) {
	return int(math.Floor(v.X)), int(math.Floor(v.Y))
}

// ReflectAxisX returns velocity reflected off a vertical wall
func ReflectAxisX(vel Vec2) Vec2 { return Vec2{-vel.X, vel.Y} }

// ReflectAxisY returns velocity reflected off a horizontal wall
func ReflectAxisY(vel Vec2) Vec2 { return Vec2{vel.X, -vel.Y} }
