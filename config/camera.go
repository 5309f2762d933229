package config

import (
	"math"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/rigcalib/spatialmath"
	"go.viam.com/rigcalib/transform"
)

// Camera describes one camera of a rig.
type Camera struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	Lens          transform.DistortionType `json:"lens"`
	Distortion    []float64                `json:"distortion,omitempty"`
	FocalLengthPx float64                  `json:"focal_length_px,omitempty"`
	HFOVDeg       float64                  `json:"hfov_deg,omitempty"`
	VFOVDeg       float64                  `json:"vfov_deg,omitempty"`
	FisheyeRadius float64                  `json:"fisheye_radius_px,omitempty"`

	PrincipalPoint *PrincipalPoint `json:"principal_point,omitempty"`
	Rotation       *Rotation       `json:"rotation,omitempty"`
	Translation    *Translation    `json:"translation,omitempty"`
}

// PointOrigin names the convention of a principal point.
type PointOrigin string

const (
	// OriginTopLeft points are in pixels from the top left corner.
	OriginTopLeft = PointOrigin("top_left")
	// OriginCenter points are offsets in pixels from the image center.
	OriginCenter = PointOrigin("center")
)

// PrincipalPoint is a principal point in either convention, top left by default.
type PrincipalPoint struct {
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Origin PointOrigin `json:"origin,omitempty"`
}

// AngleUnits names the unit of rotation angles.
type AngleUnits string

const (
	// Degrees is the default unit.
	Degrees = AngleUnits("degrees")
	// Radians unit.
	Radians = AngleUnits("radians")
)

// Rotation is a camera-to-world rotation given either as yaw, pitch and roll or as a row-major
// matrix acting on row vectors.
type Rotation struct {
	Yaw    float64    `json:"yaw,omitempty"`
	Pitch  float64    `json:"pitch,omitempty"`
	Roll   float64    `json:"roll,omitempty"`
	Units  AngleUnits `json:"units,omitempty"`
	Matrix []float64  `json:"matrix,omitempty"`
}

// Translation is the position of the camera's optical center in centimeters.
type Translation struct {
	XCm float64 `json:"x_cm"`
	YCm float64 `json:"y_cm"`
	ZCm float64 `json:"z_cm"`
}

// SetFlags records which optional camera properties were given explicitly.
type SetFlags uint32

// The optional camera properties.
const (
	FlagFocalLength SetFlags = 1 << iota
	FlagFieldOfView
	FlagPrincipalPoint
	FlagDistortion
	FlagFisheyeRadius
	FlagRotation
	FlagTranslation
)

var flagNames = []string{"focal_length", "fov", "principal_point", "distortion", "fisheye_radius", "rotation", "translation"}

// Has reports whether every flag in flag is set.
func (f SetFlags) Has(flag SetFlags) bool {
	return f&flag == flag
}

func (f SetFlags) String() string {
	var names []string
	for i, name := range flagNames {
		if f.Has(1 << i) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// SetFlags returns the properties this camera sets explicitly.
func (cam *Camera) SetFlags() SetFlags {
	var f SetFlags
	if cam.FocalLengthPx != 0 {
		f |= FlagFocalLength
	}
	if cam.HFOVDeg != 0 || cam.VFOVDeg != 0 {
		f |= FlagFieldOfView
	}
	if cam.PrincipalPoint != nil {
		f |= FlagPrincipalPoint
	}
	if len(cam.Distortion) != 0 {
		f |= FlagDistortion
	}
	if cam.FisheyeRadius != 0 {
		f |= FlagFisheyeRadius
	}
	if cam.Rotation != nil {
		f |= FlagRotation
	}
	if cam.Translation != nil {
		f |= FlagTranslation
	}
	return f
}

// Validate returns every problem with the camera combined.
func (cam *Camera) Validate(path string) error {
	var errs error
	if cam.Name == "" {
		errs = multierr.Append(errs, NewFieldRequiredError(path, "name"))
	}
	if cam.Width <= 0 {
		errs = multierr.Append(errs, NewFieldRequiredError(path, "width"))
	}
	if cam.Height <= 0 {
		errs = multierr.Append(errs, NewFieldRequiredError(path, "height"))
	}

	if cam.Lens == "" {
		errs = multierr.Append(errs, NewFieldRequiredError(path, "lens"))
	} else if d, err := transform.NewDistorter(cam.Lens, cam.Distortion); err != nil {
		errs = multierr.Append(errs, NewValidationError(joinPath(path, "distortion"), err))
	} else if err := d.CheckValid(); err != nil {
		errs = multierr.Append(errs, NewValidationError(joinPath(path, "distortion"), err))
	}

	if cam.FocalLengthPx < 0 {
		errs = multierr.Append(errs, NewValidationError(joinPath(path, "focal_length_px"), errors.New("must be positive")))
	}
	for _, fov := range []struct {
		field string
		deg   float64
	}{{"hfov_deg", cam.HFOVDeg}, {"vfov_deg", cam.VFOVDeg}} {
		switch {
		case fov.deg < 0:
			errs = multierr.Append(errs, NewValidationError(joinPath(path, fov.field), errors.New("field of view must be positive")))
		case fov.deg >= 180 && cam.Lens == transform.BrownDistortionType:
			errs = multierr.Append(errs, NewValidationError(joinPath(path, fov.field),
				errors.Errorf("%v degrees is too wide for a brown lens, which must be under 180", fov.deg)))
		}
	}
	if cam.FocalLengthPx == 0 && cam.HFOVDeg == 0 && cam.VFOVDeg == 0 {
		errs = multierr.Append(errs, NewFieldRequiredError(path, "focal_length_px"))
	}
	if cam.FisheyeRadius < 0 {
		errs = multierr.Append(errs, NewValidationError(joinPath(path, "fisheye_radius_px"), errors.New("must not be negative")))
	}

	if pp := cam.PrincipalPoint; pp != nil {
		switch pp.Origin {
		case "", OriginTopLeft, OriginCenter:
		default:
			errs = multierr.Append(errs, NewValidationError(joinPath(path, "principal_point.origin"), errors.Errorf("unknown origin %q", pp.Origin)))
		}
	}

	if rot := cam.Rotation; rot != nil {
		switch rot.Units {
		case "", Degrees, Radians:
		default:
			errs = multierr.Append(errs, NewValidationError(joinPath(path, "rotation.units"), errors.Errorf("unknown units %q", rot.Units)))
		}
		if len(rot.Matrix) != 0 {
			if _, err := rot.RotationMatrix(); err != nil {
				errs = multierr.Append(errs, NewValidationError(joinPath(path, "rotation.matrix"), err))
			}
			if rot.Yaw != 0 || rot.Pitch != 0 || rot.Roll != 0 {
				errs = multierr.Append(errs, NewValidationError(joinPath(path, "rotation"), errors.New("give either angles or a matrix, not both")))
			}
		}
	}
	return errs
}

// RotationMatrix returns the camera-to-world transform.
func (rot *Rotation) RotationMatrix() (spatialmath.RotationMatrix, error) {
	if rot == nil {
		return spatialmath.NewIdentityRotation(), nil
	}
	if len(rot.Matrix) != 0 {
		if len(rot.Matrix) != 9 {
			return spatialmath.RotationMatrix{}, errors.Errorf("rotation matrix needs 9 elements, got %d", len(rot.Matrix))
		}
		m := spatialmath.RotationMatrix(rot.Matrix)
		if !m.IsRotation(1e-6) {
			return spatialmath.RotationMatrix{}, errors.New("rotation matrix is not a proper rotation")
		}
		return m, nil
	}
	return rot.Angles().CameraToWorld(), nil
}

// Angles returns yaw, pitch and roll in radians. For a matrix rotation they are decomposed from it.
func (rot *Rotation) Angles() spatialmath.EulerAngles {
	if rot == nil {
		return spatialmath.EulerAngles{}
	}
	if len(rot.Matrix) == 9 {
		return spatialmath.CameraToWorldAngles(spatialmath.RotationMatrix(rot.Matrix))
	}
	if rot.Units == Radians {
		return spatialmath.EulerAngles{Yaw: rot.Yaw, Pitch: rot.Pitch, Roll: rot.Roll}
	}
	return spatialmath.NewEulerAnglesDegrees(rot.Yaw, rot.Pitch, rot.Roll)
}

// FocalLength returns the focal length in pixels, estimated from the field of view when not
// given directly.
func (cam *Camera) FocalLength() (float64, error) {
	if cam.FocalLengthPx > 0 {
		return cam.FocalLengthPx, nil
	}
	return transform.FocalLengthFromFOV(cam.Width, cam.Height, cam.HFOVDeg, cam.VFOVDeg, cam.Lens, cam.FisheyeRadius)
}

// PrincipalPointTopLeft returns the principal point in pixels from the top left corner,
// defaulting to the image center.
func (cam *Camera) PrincipalPointTopLeft() r2.Point {
	pp := cam.PrincipalPoint
	if pp == nil {
		return transform.PrincipalPointCenterToTopLeft(cam.Width, cam.Height, r2.Point{})
	}
	if pp.Origin == OriginCenter {
		return transform.PrincipalPointCenterToTopLeft(cam.Width, cam.Height, r2.Point{X: pp.X, Y: pp.Y})
	}
	return r2.Point{X: pp.X, Y: pp.Y}
}

// Model builds the camera's intrinsics and lens model.
func (cam *Camera) Model() (*transform.CameraModel, error) {
	d, err := transform.NewDistorter(cam.Lens, cam.Distortion)
	if err != nil {
		return nil, err
	}
	f, err := cam.FocalLength()
	if err != nil {
		return nil, err
	}
	model := &transform.CameraModel{
		CameraIntrinsics: &transform.CameraIntrinsics{
			Width:          cam.Width,
			Height:         cam.Height,
			FocalLength:    f,
			PrincipalPoint: cam.PrincipalPointTopLeft(),
			FisheyeRadius:  cam.FisheyeRadius,
		},
		Distortion: d,
	}
	if err := model.CheckValid(); err != nil {
		return nil, err
	}
	return model, nil
}

// Pose returns the camera pose converted from the given basis to Y-up, with the translation in
// centimeters.
func (cam *Camera) Pose(basis spatialmath.Basis) (spatialmath.Pose, error) {
	var trans r3.Vector
	if t := cam.Translation; t != nil {
		trans = r3.Vector{X: t.XCm, Y: t.YCm, Z: t.ZCm}
	}
	for _, v := range []float64{trans.X, trans.Y, trans.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return spatialmath.Pose{}, errors.New("translation is not finite")
		}
	}

	if rot := cam.Rotation; rot == nil || len(rot.Matrix) == 0 {
		return spatialmath.NewPoseFromAngles(cam.Rotation.Angles(), trans).ConvertBasis(basis, spatialmath.YUp)
	}
	rot, err := cam.Rotation.RotationMatrix()
	if err != nil {
		return spatialmath.Pose{}, err
	}
	return spatialmath.Pose{Rotation: rot, Translation: trans}.ConvertBasis(basis, spatialmath.YUp)
}
