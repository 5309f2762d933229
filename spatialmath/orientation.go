package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Quaternion returns the unit quaternion q such that q*v*conj(q) equals m.TransformVector(v).
// m must be a rotation.
func (m RotationMatrix) Quaternion() quat.Number {
	// column-vector form R = m^T, R[i][j] = m[3j+i]
	tr := m[0] + m[4] + m[8]
	var q quat.Number
	switch {
	case tr > 0:
		s := math.Sqrt(tr+1) * 2
		q = quat.Number{Real: s / 4, Imag: (m[5] - m[7]) / s, Jmag: (m[6] - m[2]) / s, Kmag: (m[1] - m[3]) / s}
	case m[0] > m[4] && m[0] > m[8]:
		s := math.Sqrt(1+m[0]-m[4]-m[8]) * 2
		q = quat.Number{Real: (m[5] - m[7]) / s, Imag: s / 4, Jmag: (m[3] + m[1]) / s, Kmag: (m[6] + m[2]) / s}
	case m[4] > m[8]:
		s := math.Sqrt(1+m[4]-m[0]-m[8]) * 2
		q = quat.Number{Real: (m[6] - m[2]) / s, Imag: (m[3] + m[1]) / s, Jmag: s / 4, Kmag: (m[7] + m[5]) / s}
	default:
		s := math.Sqrt(1+m[8]-m[0]-m[4]) * 2
		q = quat.Number{Real: (m[1] - m[3]) / s, Imag: (m[6] + m[2]) / s, Jmag: (m[7] + m[5]) / s, Kmag: s / 4}
	}
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	return q
}

// RotateVector rotates v by the unit quaternion q.
func RotateVector(q quat.Number, x, y, z float64) (float64, float64, float64) {
	p := quat.Mul(quat.Mul(q, quat.Number{Imag: x, Jmag: y, Kmag: z}), quat.Conj(q))
	return p.Imag, p.Jmag, p.Kmag
}

// OrientationBetween returns the rotation taking a to b.
func OrientationBetween(a, b RotationMatrix) RotationMatrix {
	return Concatenate(a.Transpose(), b)
}

// AngleBetween returns the angle in radians of the smallest rotation taking a to b.
func AngleBetween(a, b RotationMatrix) float64 {
	d := quat.Mul(quat.Conj(a.Quaternion()), b.Quaternion())
	return 2 * math.Atan2(math.Sqrt(d.Imag*d.Imag+d.Jmag*d.Jmag+d.Kmag*d.Kmag), math.Abs(d.Real))
}
