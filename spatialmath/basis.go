package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Basis names the axis convention of a coordinate system. All three are right-handed.
type Basis int

const (
	// YUp has X right, Y up and Z inward. It is the native basis of this package.
	YUp Basis = iota
	// YDown has X right, Y down and Z outward, as in image coordinates.
	YDown
	// ZUp has X right, Y outward and Z up.
	ZUp
)

// ErrUnknownBasis is returned for a Basis value or name that is not recognized.
var ErrUnknownBasis = errors.New("unknown coordinate basis")

func (b Basis) String() string {
	switch b {
	case YUp:
		return "yup"
	case YDown:
		return "ydown"
	case ZUp:
		return "zup"
	default:
		return "unknown"
	}
}

// ParseBasis parses the name produced by Basis.String.
func ParseBasis(s string) (Basis, error) {
	for _, b := range []Basis{YUp, YDown, ZUp} {
		if s == b.String() {
			return b, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownBasis, "%q", s)
}

// ConvertVectorYupToYdown converts a vector from Y-up to Y-down.
func ConvertVectorYupToYdown(v r3.Vector) r3.Vector { return r3.Vector{X: v.X, Y: -v.Y, Z: -v.Z} }

// ConvertVectorYdownToYup converts a vector from Y-down to Y-up.
func ConvertVectorYdownToYup(v r3.Vector) r3.Vector { return r3.Vector{X: v.X, Y: -v.Y, Z: -v.Z} }

// ConvertVectorYupToZup converts a vector from Y-up to Z-up.
func ConvertVectorYupToZup(v r3.Vector) r3.Vector { return r3.Vector{X: v.X, Y: -v.Z, Z: v.Y} }

// ConvertVectorZupToYup converts a vector from Z-up to Y-up.
func ConvertVectorZupToYup(v r3.Vector) r3.Vector { return r3.Vector{X: v.X, Y: v.Z, Z: -v.Y} }

// ConvertVectorYdownToZup converts a vector from Y-down to Z-up.
func ConvertVectorYdownToZup(v r3.Vector) r3.Vector { return r3.Vector{X: v.X, Y: v.Z, Z: -v.Y} }

// ConvertVectorZupToYdown converts a vector from Z-up to Y-down.
func ConvertVectorZupToYdown(v r3.Vector) r3.Vector { return r3.Vector{X: v.X, Y: -v.Z, Z: v.Y} }

// The transform conversions conjugate by the basis change, so for each pair
// ConvertTransformAToB(m).TransformVector(ConvertVectorAToB(v)) == ConvertVectorAToB(m.TransformVector(v)).

// ConvertTransformYupToYdown converts a transform from Y-up to Y-down.
func ConvertTransformYupToYdown(f RotationMatrix) RotationMatrix {
	return RotationMatrix{
		f[0], -f[1], -f[2],
		-f[3], f[4], f[5],
		-f[6], f[7], f[8],
	}
}

// ConvertTransformYdownToYup converts a transform from Y-down to Y-up.
func ConvertTransformYdownToYup(f RotationMatrix) RotationMatrix {
	return ConvertTransformYupToYdown(f)
}

// ConvertTransformYupToZup converts a transform from Y-up to Z-up.
func ConvertTransformYupToZup(f RotationMatrix) RotationMatrix {
	return RotationMatrix{
		f[0], -f[2], f[1],
		-f[6], f[8], -f[7],
		f[3], -f[5], f[4],
	}
}

// ConvertTransformZupToYup converts a transform from Z-up to Y-up.
func ConvertTransformZupToYup(f RotationMatrix) RotationMatrix {
	return RotationMatrix{
		f[0], f[2], -f[1],
		f[6], f[8], -f[7],
		-f[3], -f[5], f[4],
	}
}

// ConvertTransformYdownToZup converts a transform from Y-down to Z-up.
func ConvertTransformYdownToZup(f RotationMatrix) RotationMatrix {
	return ConvertTransformZupToYup(f)
}

// ConvertTransformZupToYdown converts a transform from Z-up to Y-down.
func ConvertTransformZupToYdown(f RotationMatrix) RotationMatrix {
	return ConvertTransformYupToZup(f)
}

// ConvertVector converts v from one basis to another.
func ConvertVector(v r3.Vector, from, to Basis) (r3.Vector, error) {
	if err := checkBases(from, to); err != nil {
		return r3.Vector{}, err
	}
	switch {
	case from == to:
		return v, nil
	case from == YUp && to == YDown:
		return ConvertVectorYupToYdown(v), nil
	case from == YDown && to == YUp:
		return ConvertVectorYdownToYup(v), nil
	case from == YUp && to == ZUp:
		return ConvertVectorYupToZup(v), nil
	case from == ZUp && to == YUp:
		return ConvertVectorZupToYup(v), nil
	case from == YDown && to == ZUp:
		return ConvertVectorYdownToZup(v), nil
	default:
		return ConvertVectorZupToYdown(v), nil
	}
}

// ConvertTransform converts a transform from one basis to another.
func ConvertTransform(m RotationMatrix, from, to Basis) (RotationMatrix, error) {
	if err := checkBases(from, to); err != nil {
		return RotationMatrix{}, err
	}
	switch {
	case from == to:
		return m, nil
	case from == YUp && to == YDown:
		return ConvertTransformYupToYdown(m), nil
	case from == YDown && to == YUp:
		return ConvertTransformYdownToYup(m), nil
	case from == YUp && to == ZUp:
		return ConvertTransformYupToZup(m), nil
	case from == ZUp && to == YUp:
		return ConvertTransformZupToYup(m), nil
	case from == YDown && to == ZUp:
		return ConvertTransformYdownToZup(m), nil
	default:
		return ConvertTransformZupToYdown(m), nil
	}
}

func checkBases(bases ...Basis) error {
	for _, b := range bases {
		if b < YUp || b > ZUp {
			return errors.Wrapf(ErrUnknownBasis, "%d", int(b))
		}
	}
	return nil
}
