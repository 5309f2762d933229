package transform

import (
	"math"

	"github.com/pkg/errors"

	"go.viam.com/rigcalib/polynomial"
)

// BrownConrady is the Brown-Conrady model with three radial and two tangential coefficients,
// in rig file order:
//
//	x_d = x * (1 + k0*r² + k1*r⁴ + k4*r⁶) + 2*k2*x*y + k3*(r² + 2*x²)
//	y_d = y * (1 + k0*r² + k1*r⁴ + k4*r⁶) + 2*k3*x*y + k2*(r² + 2*y²)
//
// K2 and K3 are the tangential p1 and p2.
type BrownConrady struct {
	K0 float64 `json:"k0"`
	K1 float64 `json:"k1"`
	K2 float64 `json:"k2"`
	K3 float64 `json:"k3"`
	K4 float64 `json:"k4"`
}

// NewBrownConrady takes in a slice of at most 5 floats that will be passed into the struct in order.
func NewBrownConrady(inp []float64) (*BrownConrady, error) {
	p, err := padParameters(inp, 5)
	if err != nil {
		return nil, err
	}
	return &BrownConrady{p[0], p[1], p[2], p[3], p[4]}, nil
}

// CheckValid checks if the fields for BrownConrady have valid inputs.
func (bc *BrownConrady) CheckValid() error {
	if bc == nil {
		return InvalidDistortionError("BrownConrady shaped distortion parameters not provided")
	}
	return checkFinite(bc.Parameters())
}

// ModelType returns the type of distortion model.
func (bc *BrownConrady) ModelType() DistortionType {
	return BrownDistortionType
}

// Parameters returns the parameters of the distortion model as a list of floats.
func (bc *BrownConrady) Parameters() []float64 {
	if bc == nil {
		return []float64{}
	}
	return []float64{bc.K0, bc.K1, bc.K2, bc.K3, bc.K4}
}

// Radial returns the radial terms as a distortion polynomial in the pinhole radius.
func (bc *BrownConrady) Radial() polynomial.Distortion {
	if bc == nil {
		return polynomial.Distortion{}
	}
	return polynomial.Distortion{bc.K0, bc.K1, bc.K4}
}

// HasTangential reports whether either tangential coefficient is set.
func (bc *BrownConrady) HasTangential() bool {
	return bc != nil && (bc.K2 != 0 || bc.K3 != 0)
}

// Transform distorts pinhole coordinates.
func (bc *BrownConrady) Transform(x, y float64) (float64, float64) {
	if bc == nil {
		return x, y
	}
	r2 := x*x + y*y
	radDist := 1 + r2*(bc.K0+r2*(bc.K1+r2*bc.K4))
	return x*radDist + 2*bc.K2*x*y + bc.K3*(r2+2*x*x),
		y*radDist + 2*bc.K3*x*y + bc.K2*(r2+2*y*y)
}

// Inverse finds the pinhole coordinates that distort to (xd, yd) with Newton-Raphson
// iterations on the full two dimensional model.
func (bc *BrownConrady) Inverse(xd, yd float64) (float64, float64, error) {
	if bc == nil {
		return xd, yd, nil
	}

	// Start with the distorted point as initial guess
	xu, yu := xd, yd

	const maxIterations = 20
	const tolerance = 1e-12

	for i := 0; i <= maxIterations; i++ {
		xdEst, ydEst := bc.Transform(xu, yu)
		errX := xdEst - xd
		errY := ydEst - yd
		if errX*errX+errY*errY < tolerance*tolerance {
			return xu, yu, nil
		}

		r2 := xu*xu + yu*yu
		radDist := 1 + r2*(bc.K0+r2*(bc.K1+r2*bc.K4))
		dRad := 2 * (bc.K0 + r2*(2*bc.K1+3*bc.K4*r2))
		dRadDistDxu := xu * dRad
		dRadDistDyu := yu * dRad

		// J = [[dxd/dxu, dxd/dyu], [dyd/dxu, dyd/dyu]]
		dxdDxu := radDist + xu*dRadDistDxu + 2*bc.K2*yu + 6*bc.K3*xu
		dxdDyu := xu*dRadDistDyu + 2*bc.K2*xu + 2*bc.K3*yu
		dydDxu := yu*dRadDistDxu + 2*bc.K3*yu + 2*bc.K2*xu
		dydDyu := radDist + yu*dRadDistDyu + 2*bc.K3*xu + 6*bc.K2*yu

		det := dxdDxu*dydDyu - dxdDyu*dydDxu
		if det == 0 || math.IsNaN(det) {
			break
		}

		// [xu, yu] -= J^-1 * [errX, errY]
		xu -= (dydDyu*errX - dxdDyu*errY) / det
		yu -= (-dydDxu*errX + dxdDxu*errY) / det
	}
	return math.NaN(), math.NaN(), errors.Wrapf(ErrNoConvergence, "distorted point (%g, %g)", xd, yd)
}
