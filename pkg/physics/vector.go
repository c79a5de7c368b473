// pkg/physics/vector.go
package physics

import "math"

// Vector2D is a 2D vector in screen units. Y grows downward.
type Vector2D struct {
	X float64
	Y float64
}

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X - other.X,
		Y: v.Y - other.Y,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{
		X: v.X * factor,
		Y: v.Y * factor,
	}
}

// Length returns the magnitude of the vector
func (v Vector2D) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to itself.
func (v Vector2D) Normalize() Vector2D {
	length := v.Length()
	if length == 0 {
		return Vector2D{}
	}
	return Vector2D{
		X: v.X / length,
		Y: v.Y / length,
	}
}

// WithMagnitude returns a vector with the direction of v and the given length.
func (v Vector2D) WithMagnitude(magnitude float64) Vector2D {
	return v.Normalize().Scale(magnitude)
}

// Distance returns the distance between two points
func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Length()
}

// Heading returns the angle of the vector in radians, measured from +X.
func (v Vector2D) Heading() float64 {
	return math.Atan2(v.Y, v.X)
}

// FromAngle creates a vector from an angle and magnitude
func FromAngle(angle float64, magnitude float64) Vector2D {
	sin, cos := math.Sincos(angle)
	return Vector2D{
		X: magnitude * cos,
		Y: magnitude * sin,
	}
}

// Bounds is an axis-aligned screen area anchored at the origin.
type Bounds struct {
	Width  float64
	Height float64
}

// ContainsStrict reports whether p lies strictly inside the bounds.
func (b Bounds) ContainsStrict(p Vector2D) bool {
	return p.X > 0 && p.X < b.Width && p.Y > 0 && p.Y < b.Height
}

// Wrap relocates p to the opposite edge on any axis where it has left the
// bounds. Axes are handled independently.
func (b Bounds) Wrap(p Vector2D) Vector2D {
	if p.X > b.Width {
		p.X = 0
	}
	if p.X < 0 {
		p.X = b.Width
	}
	if p.Y > b.Height {
		p.Y = 0
	}
	if p.Y < 0 {
		p.Y = b.Height
	}
	return p
}
