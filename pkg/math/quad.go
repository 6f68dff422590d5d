package math

// QuadVertices returns two triangles covering dst, textured with the src
// rectangle of a texW x texH texture. Each vertex is x, y, u, v.
func QuadVertices(src, dst Rect, texW, texH float32) []float32 {
	u0, v0, u1, v1 := src.UV(texW, texH)
	x0, y0 := dst.X, dst.Y
	x1, y1 := dst.X+dst.W, dst.Y+dst.H

	return []float32{
		x0, y0, u0, v0,
		x1, y0, u1, v0,
		x1, y1, u1, v1,

		x0, y0, u0, v0,
		x1, y1, u1, v1,
		x0, y1, u0, v1,
	}
}

// FitCentered scales size uniformly to fit within bounds, never above
// maxScale when maxScale is positive, and centers the result.
func FitCentered(size, bounds Vec2, maxScale float32) Rect {
	scale := size.Fit(bounds)
	if maxScale > 0 && scale > maxScale {
		scale = maxScale
	}
	s := size.Scale(scale)
	return Rect{
		X: (bounds.X - s.X) / 2,
		Y: (bounds.Y - s.Y) / 2,
		W: s.X,
		H: s.Y,
	}
}
