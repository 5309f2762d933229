package transform

import (
	"math"

	"go.viam.com/rigcalib/polynomial"
)

// Fisheye is the equidistant family of fisheye models. A ray at angle theta from the optical
// axis lands at normalized radius
//
//	theta * (1 + k0*theta^2 + k1*theta^4 + k2*theta^6 + k3*theta^8)
type Fisheye struct {
	K0 float64 `json:"k0"`
	K1 float64 `json:"k1"`
	K2 float64 `json:"k2"`
	K3 float64 `json:"k3"`
}

// NewFisheye takes in a slice of at most 4 floats that will be passed into the struct in order.
func NewFisheye(inp []float64) (*Fisheye, error) {
	p, err := padParameters(inp, 4)
	if err != nil {
		return nil, err
	}
	return &Fisheye{p[0], p[1], p[2], p[3]}, nil
}

// CheckValid checks if the fields for Fisheye have valid inputs.
func (fe *Fisheye) CheckValid() error {
	if fe == nil {
		return InvalidDistortionError("Fisheye shaped distortion parameters not provided")
	}
	return checkFinite(fe.Parameters())
}

// ModelType returns the type of distortion model.
func (fe *Fisheye) ModelType() DistortionType {
	return FisheyeDistortionType
}

// Parameters returns the parameters of the distortion model as a list of floats.
func (fe *Fisheye) Parameters() []float64 {
	if fe == nil {
		return []float64{}
	}
	return []float64{fe.K0, fe.K1, fe.K2, fe.K3}
}

// Radial returns the distortion polynomial in the ray angle.
func (fe *Fisheye) Radial() polynomial.Distortion {
	if fe == nil {
		return polynomial.Distortion{}
	}
	return polynomial.Distortion{fe.K0, fe.K1, fe.K2, fe.K3}
}

// Transform maps pinhole coordinates to fisheye coordinates.
func (fe *Fisheye) Transform(x, y float64) (float64, float64) {
	r := math.Hypot(x, y)
	if r == 0 {
		return x, y
	}
	scale := fe.Radial().Evaluate(math.Atan(r)) / r
	return x * scale, y * scale
}
