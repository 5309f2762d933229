// Package transform models camera intrinsics and lens distortion: the fisheye and Brown-Conrady
// lens models, their inverses, focal length estimates and principal point conventions.
package transform

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"go.viam.com/rigcalib/polynomial"
)

// DistortionType is the name of the distortion model.
type DistortionType string

const (
	// FisheyeDistortionType is for wide-angle lenses whose image radius follows the ray angle.
	FisheyeDistortionType = DistortionType("fisheye")
	// BrownDistortionType is for simple lenses of narrow field easily modeled as a pinhole camera.
	BrownDistortionType = DistortionType("brown")
)

var (
	// ErrNoConvergence is returned when an iterative inverse does not settle.
	ErrNoConvergence = errors.New("distortion inverse did not converge")
	// ErrBeyondHorizon is returned when an undistorted ray would be at or past 90 degrees from
	// the optical axis and so has no pinhole image.
	ErrBeyondHorizon = errors.New("ray is beyond the pinhole horizon")
)

// Distorter defines a Transform that takes undistorted normalized image coordinates and
// distorts them according to the model.
type Distorter interface {
	ModelType() DistortionType
	CheckValid() error
	Parameters() []float64
	// Radial is the radial part of the model as a distortion polynomial.
	Radial() polynomial.Distortion
	Transform(x, y float64) (float64, float64)
}

// InvalidDistortionError is used when the distortion parameters are invalid.
func InvalidDistortionError(msg string) error {
	return errors.Wrap(errors.New("invalid distortion parameters"), msg)
}

// NewDistorter returns a Distorter given a valid DistortionType and its parameters.
func NewDistorter(distortionType DistortionType, parameters []float64) (Distorter, error) {
	switch distortionType {
	case FisheyeDistortionType:
		return NewFisheye(parameters)
	case BrownDistortionType:
		return NewBrownConrady(parameters)
	default:
		return nil, errors.Errorf("do not know how to parse %q distortion model", distortionType)
	}
}

// padParameters copies inp into a slice of length n, filling missing values with 0.
func padParameters(inp []float64, n int) ([]float64, error) {
	if len(inp) > n {
		return nil, errors.Errorf("list of parameters too long, expected max %d, got %d", n, len(inp))
	}
	out := make([]float64, n)
	copy(out, inp)
	return out, nil
}

func checkFinite(params []float64) error {
	for i, p := range params {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return InvalidDistortionError(fmt.Sprintf("parameter %d is %v", i, p))
		}
	}
	return nil
}

// Undistort maps distorted normalized coordinates back to undistorted ones. maxRadius bounds
// the undistorted radial variable as in UndistortRadius. Models with tangential terms are
// inverted iteratively and ignore maxRadius.
func Undistort(d Distorter, x, y, maxRadius float64) (float64, float64, error) {
	if bc, ok := d.(*BrownConrady); ok && bc.HasTangential() {
		return bc.Inverse(x, y)
	}

	rd := math.Hypot(x, y)
	if rd == 0 {
		return x, y, nil
	}
	ru, err := UndistortRadius(d, rd, maxRadius)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}

	if d.ModelType() == FisheyeDistortionType {
		if ru >= math.Pi/2 {
			return math.NaN(), math.NaN(), errors.Wrapf(ErrBeyondHorizon, "theta = %g", ru)
		}
		ru = math.Tan(ru)
	}
	scale := ru / rd
	return x * scale, y * scale, nil
}

// UndistortRadius inverts the radial part of d for a distorted normalized radius, returning
// the undistorted radial variable: the ray angle for fisheye lenses, the pinhole radius
// otherwise. maxRadius bounds the result; pass the result of Radial().FindFlat(0), or a
// non-positive value to search for a bound.
func UndistortRadius(d Distorter, rd, maxRadius float64) (float64, error) {
	k := d.Radial()
	if !(maxRadius > 0) || math.IsInf(maxRadius, 1) {
		maxRadius = searchBound(k, math.Abs(rd))
	}
	return k.FindRoot(maxRadius, rd)
}

// searchBound doubles a radius until the distortion curve reaches y.
func searchBound(k polynomial.Distortion, y float64) float64 {
	bound := math.Max(y, 1)
	for i := 0; i < 64 && k.Evaluate(bound) < y; i++ {
		bound *= 2
	}
	return bound
}
