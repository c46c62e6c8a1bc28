package orbit

import "math"

// Vec2 is a sun-centred offset in layout units. X points right, Y down,
// matching the screen translate(x, y) convention.
type Vec2 struct {
	X, Y float64
}

// Add returns the sum of two vectors.
func (v Vec2) Add(u Vec2) Vec2 {
	return Vec2{X: v.X + u.X, Y: v.Y + u.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(u Vec2) Vec2 {
	return Vec2{X: v.X - u.X, Y: v.Y - u.Y}
}

// Scale returns the vector scaled by a factor.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Norm returns the magnitude of the vector.
func (v Vec2) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

// PositionAt returns the position of a body at the given progress (0-100)
// around a parent located at parentPos.
func PositionAt(progress, distance float64, parentPos Vec2) Vec2 {
	angle := progress / 100 * 2 * math.Pi
	offset := Vec2{
		X: distance * math.Cos(angle),
		Y: distance * math.Sin(angle),
	}
	return parentPos.Add(offset)
}
