package transform

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/rigcalib/utils"
)

var (
	// ErrNoIntrinsics is when a camera does not have intrinsics parameters or other parameters.
	ErrNoIntrinsics = errors.New("camera intrinsic parameters are not available")
	// ErrNoFieldOfView is returned by FocalLengthFromFOV when neither field of view is given.
	ErrNoFieldOfView = errors.New("no horizontal or vertical field of view given")
)

// NewNoIntrinsicsError is used when the intriniscs are not defined.
func NewNoIntrinsicsError(msg string) error {
	return errors.Wrap(ErrNoIntrinsics, msg)
}

// FocalLengthFromFOV estimates the focal length in pixels from a field of view in degrees.
// The horizontal field of view is used when positive, else the vertical one. Zero means not
// given; a negative field of view is an error.
//
// Brown lenses are treated as pinholes, f = (dim/2) / tan(fov/2), and need fov under 180.
// Fisheye lenses use the equidistant approximation f = r / (fov/2), where r is the smaller of
// validRadius and dim/2; a non-positive validRadius means the whole half dimension is valid.
func FocalLengthFromFOV(width, height int, hfov, vfov float64, lens DistortionType, validRadius float64) (float64, error) {
	if hfov < 0 || vfov < 0 {
		return math.NaN(), errors.Errorf("field of view must not be negative, got %v horizontal and %v vertical", hfov, vfov)
	}
	var dim, fov float64
	switch {
	case hfov > 0:
		dim, fov = float64(width), hfov
	case vfov > 0:
		dim, fov = float64(height), vfov
	default:
		return math.NaN(), ErrNoFieldOfView
	}
	half := dim / 2

	switch lens {
	case BrownDistortionType:
		if fov >= 180 {
			return math.NaN(), errors.Errorf("%v degrees is too wide for a brown lens, which must be under 180", fov)
		}
		return half / math.Tan(utils.DegToRad(fov/2)), nil
	case FisheyeDistortionType:
		if validRadius > 0 && validRadius < half {
			half = validRadius
		}
		return half / utils.DegToRad(fov/2), nil
	default:
		return math.NaN(), errors.Errorf("do not know how to estimate focal length for %q lens", lens)
	}
}

// PrincipalPointTopLeftToCenter converts a principal point given in pixels from the top left
// corner into an offset from the image center.
func PrincipalPointTopLeftToCenter(width, height int, pp r2.Point) r2.Point {
	return r2.Point{X: pp.X - float64(width-1)/2, Y: pp.Y - float64(height-1)/2}
}

// PrincipalPointCenterToTopLeft is the inverse of PrincipalPointTopLeftToCenter.
func PrincipalPointCenterToTopLeft(width, height int, offset r2.Point) r2.Point {
	return r2.Point{X: offset.X + float64(width-1)/2, Y: offset.Y + float64(height-1)/2}
}

// CameraIntrinsics holds the parameters of a camera with a single focal length. The principal
// point is in pixels from the top left corner. FisheyeRadius is the radius in pixels of the
// valid image circle of a fisheye lens, zero when unknown or not applicable.
type CameraIntrinsics struct {
	Width          int      `json:"width_px"`
	Height         int      `json:"height_px"`
	FocalLength    float64  `json:"focal_length_px"`
	PrincipalPoint r2.Point `json:"principal_point_px"`
	FisheyeRadius  float64  `json:"fisheye_radius_px,omitempty"`
}

// CheckValid checks if the fields for CameraIntrinsics have valid inputs.
func (params *CameraIntrinsics) CheckValid() error {
	if params == nil {
		return NewNoIntrinsicsError("Intrinsics do not exist")
	}
	if params.Width <= 0 || params.Height <= 0 {
		return NewNoIntrinsicsError(fmt.Sprintf("Invalid size (%#v, %#v)", params.Width, params.Height))
	}
	if !(params.FocalLength > 0) || math.IsInf(params.FocalLength, 0) {
		return NewNoIntrinsicsError(fmt.Sprintf("Invalid focal length %#v", params.FocalLength))
	}
	if params.PrincipalPoint.X < 0 || params.PrincipalPoint.X > float64(params.Width-1) {
		return NewNoIntrinsicsError(fmt.Sprintf("Invalid principal X point %#v", params.PrincipalPoint.X))
	}
	if params.PrincipalPoint.Y < 0 || params.PrincipalPoint.Y > float64(params.Height-1) {
		return NewNoIntrinsicsError(fmt.Sprintf("Invalid principal Y point %#v", params.PrincipalPoint.Y))
	}
	if params.FisheyeRadius < 0 {
		return NewNoIntrinsicsError(fmt.Sprintf("Invalid fisheye radius %#v", params.FisheyeRadius))
	}
	return nil
}

// PrincipalPointOffset returns the principal point as an offset from the image center.
func (params *CameraIntrinsics) PrincipalPointOffset() r2.Point {
	return PrincipalPointTopLeftToCenter(params.Width, params.Height, params.PrincipalPoint)
}

// PixelToNormalized converts a pixel into coordinates on the plane at unit focal distance.
func (params *CameraIntrinsics) PixelToNormalized(u, v float64) (float64, float64) {
	return (u - params.PrincipalPoint.X) / params.FocalLength, (v - params.PrincipalPoint.Y) / params.FocalLength
}

// NormalizedToPixel is the inverse of PixelToNormalized.
func (params *CameraIntrinsics) NormalizedToPixel(x, y float64) (float64, float64) {
	return x*params.FocalLength + params.PrincipalPoint.X, y*params.FocalLength + params.PrincipalPoint.Y
}

// CameraModel is a camera's intrinsics together with its lens model.
type CameraModel struct {
	*CameraIntrinsics `json:"intrinsic_parameters"`
	Distortion        Distorter `json:"distortion"`
}

// CheckValid checks the intrinsics and the lens model.
func (m *CameraModel) CheckValid() error {
	if m == nil {
		return NewNoIntrinsicsError("camera model does not exist")
	}
	if err := m.CameraIntrinsics.CheckValid(); err != nil {
		return err
	}
	if m.Distortion == nil {
		return InvalidDistortionError("no distortion model")
	}
	return m.Distortion.CheckValid()
}

// MonotonicRadius returns the distorted radius in pixels beyond which the radial lens model
// stops increasing, or +Inf if it never does. Pixels farther from the principal point than this
// cannot be undistorted.
func (m *CameraModel) MonotonicRadius() (float64, error) {
	k := m.Distortion.Radial()
	flat, err := k.FindFlat(0)
	if err != nil || math.IsInf(flat, 1) {
		return flat, err
	}
	return m.FocalLength * k.Evaluate(flat), nil
}

// DistortPixel maps a pixel of the ideal pinhole image to the pixel the lens images it at.
func (m *CameraModel) DistortPixel(u, v float64) (float64, float64) {
	x, y := m.PixelToNormalized(u, v)
	x, y = m.Distortion.Transform(x, y)
	return m.NormalizedToPixel(x, y)
}

// UndistortPixel is the inverse of DistortPixel.
func (m *CameraModel) UndistortPixel(u, v float64) (float64, float64, error) {
	flat, err := m.Distortion.Radial().FindFlat(0)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	x, y := m.PixelToNormalized(u, v)
	x, y, err = Undistort(m.Distortion, x, y, flat)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	u, v = m.NormalizedToPixel(x, y)
	return u, v, nil
}
