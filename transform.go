package sheaf

import "math"

// Affine matrices are stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |

// IdentityTransform is the identity affine matrix.
var IdentityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// spriteTransform maps sprite-local pixel space to destination space.
//
// Composition order:
//
//	Translate(-Origin) -> Scale -> Rotate -> Translate(Position)
func spriteTransform(opts *DrawOptions) [6]float64 {
	sx, sy := opts.Scale.X, opts.Scale.Y
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	px, py := opts.Origin.X, opts.Origin.Y

	if opts.Rotation == 0 {
		return [6]float64{sx, 0, 0, sy, opts.Position.X - px*sx, opts.Position.Y - py*sy}
	}

	sin, cos := math.Sincos(opts.Rotation)
	preTx := -px * sx
	preTy := -py * sy
	return [6]float64{
		cos * sx,
		sin * sx,
		-sin * sy,
		cos * sy,
		cos*preTx - sin*preTy + opts.Position.X,
		sin*preTx + cos*preTy + opts.Position.Y,
	}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// TranslateTransform returns a pure translation matrix.
func TranslateTransform(x, y float64) [6]float64 {
	return [6]float64{1, 0, 0, 1, x, y}
}

// ScaleTransform returns a pure scale matrix.
func ScaleTransform(sx, sy float64) [6]float64 {
	return [6]float64{sx, 0, 0, sy, 0, 0}
}

// ConcatTransform returns the matrix that applies child first, then parent.
func ConcatTransform(parent, child [6]float64) [6]float64 {
	return multiplyAffine(parent, child)
}

// invertAffine returns the inverse of m, or the identity when m is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return IdentityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// InvertTransform returns the inverse of m. Singular matrices invert to the
// identity.
func InvertTransform(m [6]float64) [6]float64 {
	return invertAffine(m)
}
