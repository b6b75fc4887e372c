package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// angleEpsilon bounds the identity and straight-angle windows of the trace
// test and the smallest rotation magnitude treated as non-identity.
const angleEpsilon = 1e-6

// BasisToRotationVector converts the three orthonormal column vectors of a
// rotation matrix to the equivalent axis-angle rotation vector.
//
// Three numeric regimes: a trace near 3 is the identity and maps to the zero
// vector; a trace near -1 is a straight (pi) rotation whose axis is rebuilt
// from the largest diagonal term so no divisor is near zero; the general case
// takes the angle from the trace and the axis from the skew-symmetric part.
// At pi the axis is recoverable only up to sign.
func BasisToRotationVector(x, y, z r3.Vector) r3.Vector {
	r11, r12, r13 := x.X, y.X, z.X
	r21, r22, r23 := x.Y, y.Y, z.Y
	r31, r32, r33 := x.Z, y.Z, z.Z

	trace := r11 + r22 + r33
	switch {
	case trace >= 3-angleEpsilon:
		return r3.Vector{}
	case trace <= -1+angleEpsilon:
		var axis r3.Vector
		switch {
		case r11 > r22 && r11 > r33:
			d := math.Sqrt((r11 + 1) / 2)
			axis = r3.Vector{X: d, Y: (r12 + r21) / (4 * d), Z: (r13 + r31) / (4 * d)}
		case r22 > r33:
			d := math.Sqrt((r22 + 1) / 2)
			axis = r3.Vector{X: (r12 + r21) / (4 * d), Y: d, Z: (r23 + r32) / (4 * d)}
		default:
			d := math.Sqrt((r33 + 1) / 2)
			axis = r3.Vector{X: (r13 + r31) / (4 * d), Y: (r23 + r32) / (4 * d), Z: d}
		}
		return normalizeAxis(axis).Mul(math.Pi)
	default:
		theta := math.Acos((trace - 1) / 2)
		s := 2 * math.Sin(theta)
		axis := r3.Vector{X: (r32 - r23) / s, Y: (r13 - r31) / s, Z: (r21 - r12) / s}
		return normalizeAxis(axis).Mul(theta)
	}
}

// RotationVectorToBasis is the inverse of BasisToRotationVector via the
// Rodrigues formula, returning the column vectors of the rotation matrix.
// Magnitudes under angleEpsilon yield the identity basis.
func RotationVectorToBasis(rv r3.Vector) (x, y, z r3.Vector) {
	theta := rv.Norm()
	if theta < angleEpsilon {
		return r3.Vector{X: 1}, r3.Vector{Y: 1}, r3.Vector{Z: 1}
	}

	k := rv.Mul(1 / theta)
	c := math.Cos(theta)
	s := math.Sin(theta)
	v := 1 - c

	x = r3.Vector{X: k.X*k.X*v + c, Y: k.X*k.Y*v + k.Z*s, Z: k.X*k.Z*v - k.Y*s}
	y = r3.Vector{X: k.X*k.Y*v - k.Z*s, Y: k.Y*k.Y*v + c, Z: k.Y*k.Z*v + k.X*s}
	z = r3.Vector{X: k.X*k.Z*v + k.Y*s, Y: k.Y*k.Z*v - k.X*s, Z: k.Z*k.Z*v + c}
	return x, y, z
}

// normalizeAxis scales an axis onto the unit sphere, falling back to +Z for
// degenerate near-zero input.
func normalizeAxis(axis r3.Vector) r3.Vector {
	n := axis.Norm()
	if n < 1e-9 {
		return r3.Vector{Z: 1}
	}
	return axis.Mul(1 / n)
}
