// Package math provides the small geometry types shared by the texture set
// builder and the preview renderer.
package math

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
// Texture set rectangles are stored in content-scaled units.
type Rect struct {
	X, Y float32
	W, H float32
}

// Div returns the rectangle with every field divided by d.
func (r Rect) Div(d float32) Rect {
	return Rect{X: r.X / d, Y: r.Y / d, W: r.W / d, H: r.H / d}
}

// Mul returns the rectangle with every field multiplied by s.
func (r Rect) Mul(s float32) Rect {
	return Rect{X: r.X * s, Y: r.Y * s, W: r.W * s, H: r.H * s}
}

// Min returns the top-left corner.
func (r Rect) Min() Vec2 {
	return Vec2{r.X, r.Y}
}

// Size returns the width and height as a vector.
func (r Rect) Size() Vec2 {
	return Vec2{r.W, r.H}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// UV returns normalized texture coordinates (u0, v0, u1, v1) of r inside a
// texture of texW x texH units. A zero-sized texture yields all zeroes.
func (r Rect) UV(texW, texH float32) (u0, v0, u1, v1 float32) {
	if texW == 0 || texH == 0 {
		return 0, 0, 0, 0
	}
	u0 = r.X / texW
	v0 = r.Y / texH
	u1 = (r.X + r.W) / texW
	v1 = (r.Y + r.H) / texH
	return u0, v0, u1, v1
}
