// Package calibration reports how well camera calibrations agree: lens curve differences,
// lens models that fold over inside the image, and per camera differences between two rigs.
package calibration

import (
	"math"

	"github.com/pkg/errors"

	"go.viam.com/rigcalib/logging"
	"go.viam.com/rigcalib/polynomial"
	"go.viam.com/rigcalib/transform"
)

// ErrModelMismatch is returned when comparing lenses of different model types.
var ErrModelMismatch = errors.New("lens models differ")

// LensComparison is the difference between two radial lens curves over [0, maxRadius] of the
// undistorted radial variable, in normalized units.
type LensComparison struct {
	RIS float64 `json:"ris"`
	RMS float64 `json:"rms"`
	Max float64 `json:"max"`
}

// Scale returns the comparison multiplied by s, e.g. a focal length to get pixels.
func (lc LensComparison) Scale(s float64) LensComparison {
	return LensComparison{RIS: lc.RIS * s, RMS: lc.RMS * s, Max: lc.Max * s}
}

// CompareLenses compares the radial curves of two lenses of the same model type.
func CompareLenses(a, b transform.Distorter, maxRadius float64) (LensComparison, error) {
	if a.ModelType() != b.ModelType() {
		return LensComparison{}, errors.Wrapf(ErrModelMismatch, "%s and %s", a.ModelType(), b.ModelType())
	}
	if !(maxRadius > 0) {
		return LensComparison{}, errors.Errorf("radius must be positive, got %v", maxRadius)
	}
	ka, kb := padToSameOrder(a.Radial(), b.Radial())

	var lc LensComparison
	var err error
	if lc.RIS, err = polynomial.RISDiff(ka, kb, maxRadius); err != nil {
		return LensComparison{}, err
	}
	if lc.RMS, err = polynomial.RMSDiff(ka, kb, maxRadius); err != nil {
		return LensComparison{}, err
	}
	if lc.Max, err = polynomial.MaxDiff(ka, kb, maxRadius); err != nil {
		return LensComparison{}, err
	}
	return lc, nil
}

func padToSameOrder(a, b polynomial.Distortion) (polynomial.Distortion, polynomial.Distortion) {
	a = polynomial.Distortion(polynomial.Polynomial(a).MinimizeOrder())
	b = polynomial.Distortion(polynomial.Polynomial(b).MinimizeOrder())
	n := max(len(a), len(b))
	pa := make(polynomial.Distortion, n)
	pb := make(polynomial.Distortion, n)
	copy(pa, a)
	copy(pb, b)
	return pa, pb
}

// ImageRadius returns the distance in pixels from the principal point to the farthest image
// corner, limited to the fisheye radius when one is set.
func ImageRadius(m *transform.CameraModel) float64 {
	pp := m.PrincipalPoint
	w, h := float64(m.Width-1), float64(m.Height-1)
	r := math.Max(math.Max(math.Hypot(pp.X, pp.Y), math.Hypot(w-pp.X, pp.Y)),
		math.Max(math.Hypot(pp.X, h-pp.Y), math.Hypot(w-pp.X, h-pp.Y)))
	if m.FisheyeRadius > 0 {
		r = math.Min(r, m.FisheyeRadius)
	}
	return r
}

// CameraCheck is the result of CheckCamera. Radii are in pixels.
type CameraCheck struct {
	Name            string  `json:"name"`
	ImageRadius     float64 `json:"image_radius_px"`
	MonotonicRadius float64 `json:"monotonic_radius_px"`
	// Flattens is set when the lens model stops increasing inside the image.
	Flattens bool `json:"flattens"`
	// RadialExtent is the undistorted radial variable at the image radius, or at the flat
	// point when the model flattens first.
	RadialExtent float64 `json:"radial_extent"`
}

// CheckCamera checks that the lens model of a camera can be inverted everywhere in its image,
// logging a warning when it cannot.
func CheckCamera(name string, m *transform.CameraModel, logger logging.Logger) (CameraCheck, error) {
	if err := m.CheckValid(); err != nil {
		return CameraCheck{}, errors.Wrapf(err, "camera %q", name)
	}
	check := CameraCheck{Name: name, ImageRadius: ImageRadius(m)}

	k := m.Distortion.Radial()
	flat, err := k.FindFlat(0)
	if err != nil {
		return CameraCheck{}, errors.Wrapf(err, "camera %q", name)
	}
	check.MonotonicRadius = math.Inf(1)
	if !math.IsInf(flat, 1) {
		check.MonotonicRadius = m.FocalLength * k.Evaluate(flat)
	}

	if check.MonotonicRadius < check.ImageRadius {
		check.Flattens = true
		check.RadialExtent = flat
		logger.WithFields("camera", name).Warnw("lens model flattens inside the image",
			"monotonic_radius_px", check.MonotonicRadius, "image_radius_px", check.ImageRadius)
		return check, nil
	}

	check.RadialExtent, err = transform.UndistortRadius(m.Distortion, check.ImageRadius/m.FocalLength, flat)
	if err != nil {
		return CameraCheck{}, errors.Wrapf(err, "camera %q", name)
	}
	return check, nil
}
