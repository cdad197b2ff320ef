package dynamo

import (
	"fmt"
	"math"
)

// Vector2 is an immutable 2-D vector. Its magnitude is computed once at
// construction; every operation returns a fresh value.
type Vector2 struct {
	x, y      float64
	magnitude float64
}

// Zero is the zero vector.
var Zero = Vector2{}

// NewVector2 builds a vector and caches its magnitude.
// NaN and Inf components propagate untouched.
func NewVector2(x, y float64) Vector2 {
	return Vector2{x: x, y: y, magnitude: math.Sqrt(x*x + y*y)}
}

func (v Vector2) X() float64         { return v.x }
func (v Vector2) Y() float64         { return v.y }
func (v Vector2) Magnitude() float64 { return v.magnitude }

func (v Vector2) Add(other Vector2) Vector2 {
	return NewVector2(v.x+other.x, v.y+other.y)
}

func (v Vector2) Sub(other Vector2) Vector2 {
	return NewVector2(v.x-other.x, v.y-other.y)
}

func (v Vector2) Neg() Vector2 {
	return NewVector2(-v.x, -v.y)
}

func (v Vector2) Scale(k float64) Vector2 {
	return NewVector2(v.x*k, v.y*k)
}

// Unit returns v scaled to length one. The zero vector yields NaN
// components; callers must rule out zero distance first.
func (v Vector2) Unit() Vector2 {
	return v.Scale(1 / v.magnitude)
}

// DistanceVector points from v toward to.
func (v Vector2) DistanceVector(to Vector2) Vector2 {
	return NewVector2(to.x-v.x, to.y-v.y)
}

func (v Vector2) Distance(to Vector2) float64 {
	return v.DistanceVector(to).magnitude
}

func (v Vector2) Equal(other Vector2) bool {
	return v.x == other.x && v.y == other.y
}

// IsFinite reports whether neither component is NaN or Inf.
func (v Vector2) IsFinite() bool {
	return !math.IsNaN(v.x) && !math.IsInf(v.x, 0) &&
		!math.IsNaN(v.y) && !math.IsInf(v.y, 0)
}

func (v Vector2) String() string {
	return fmt.Sprintf("%g, %g", v.x, v.y)
}
