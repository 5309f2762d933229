package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// RotationMatrix is a 3x3 transform stored row-major and applied to row vectors, w = v*M:
//
//	w.X = M[0]*v.X + M[3]*v.Y + M[6]*v.Z
//	w.Y = M[1]*v.X + M[4]*v.Y + M[7]*v.Z
//	w.Z = M[2]*v.X + M[5]*v.Y + M[8]*v.Z
//
// Rows are therefore the images of the X, Y and Z axes.
type RotationMatrix [9]float64

// NewIdentityRotation returns the transform that leaves every vector unchanged.
func NewIdentityRotation() RotationMatrix {
	return RotationMatrix{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Transpose returns the transpose of m, which is its inverse when m is orthogonal.
func (m RotationMatrix) Transpose() RotationMatrix {
	return RotationMatrix{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// TransformVector applies m to v.
func (m RotationMatrix) TransformVector(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		Y: m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		Z: m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// InverseTransformVector applies the inverse of m to v. It is only correct for orthogonal m.
func (m RotationMatrix) InverseTransformVector(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		Y: m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		Z: m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

func (m RotationMatrix) row(i int) r3.Vector {
	return r3.Vector{X: m[3*i], Y: m[3*i+1], Z: m[3*i+2]}
}

// Concatenate returns the transform that applies t1 first and t2 second.
func Concatenate(t1, t2 RotationMatrix) RotationMatrix {
	var t12 RotationMatrix
	for i := 0; i < 3; i++ {
		w := t2.TransformVector(t1.row(i))
		t12[3*i], t12[3*i+1], t12[3*i+2] = w.X, w.Y, w.Z
	}
	return t12
}

// Mat returns m as a gonum matrix in the same row-major layout.
func (m RotationMatrix) Mat() *mat.Dense {
	data := m
	return mat.NewDense(3, 3, data[:])
}

// IsOrthogonal reports whether m*m^T is the identity within eps.
func (m RotationMatrix) IsOrthogonal(eps float64) bool {
	d := m.Mat()
	var p mat.Dense
	p.Mul(d, d.T())
	return mat.EqualApprox(&p, mat.NewDiagDense(3, []float64{1, 1, 1}), eps)
}

// IsRotation reports whether m is orthogonal and preserves handedness, within eps.
func (m RotationMatrix) IsRotation(eps float64) bool {
	return m.IsOrthogonal(eps) && math.Abs(mat.Det(m.Mat())-1) <= eps
}
