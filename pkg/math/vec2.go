package math

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Fit returns the largest uniform scale at which v fits inside bounds.
// Zero-sized vectors fit at scale 1.
func (v Vec2) Fit(bounds Vec2) float32 {
	if v.X <= 0 || v.Y <= 0 {
		return 1
	}
	sx := bounds.X / v.X
	sy := bounds.Y / v.Y
	if sx < sy {
		return sx
	}
	return sy
}
