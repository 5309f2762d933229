package calibration

import (
	"context"
	"math"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/rigcalib/config"
	"go.viam.com/rigcalib/logging"
	"go.viam.com/rigcalib/spatialmath"
	"go.viam.com/rigcalib/utils"
)

// CameraReport compares one camera of a candidate calibration against the reference.
type CameraReport struct {
	Name string `json:"name"`

	FocalDiffPx          float64 `json:"focal_diff_px"`
	PrincipalPointDiffPx float64 `json:"principal_point_diff_px"`
	RotationDiffDeg      float64 `json:"rotation_diff_deg"`
	TranslationDiffCm    float64 `json:"translation_diff_cm"`

	// Per axis differences are not meaningful when either camera is pitched by about
	// 90 degrees, where yaw and roll cannot be told apart.
	YawDiffDeg   float64 `json:"yaw_diff_deg"`
	PitchDiffDeg float64 `json:"pitch_diff_deg"`
	RollDiffDeg  float64 `json:"roll_diff_deg"`

	// Lens is in pixels at the reference focal length. It is nil when the lens models differ.
	Lens *LensComparison `json:"lens,omitempty"`
}

// Summary aggregates one quantity over the cameras of a rig.
type Summary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// RigReport is the result of CompareRigs.
type RigReport struct {
	Cameras []CameraReport `json:"cameras"`
	// Missing lists reference cameras absent from the candidate.
	Missing []string `json:"missing,omitempty"`

	Focal          Summary `json:"focal_px"`
	PrincipalPoint Summary `json:"principal_point_px"`
	Rotation       Summary `json:"rotation_deg"`
	Translation    Summary `json:"translation_cm"`
	LensRMS        Summary `json:"lens_rms_px"`
	LensMax        Summary `json:"lens_max_px"`
}

// CompareRigs compares every camera of candidate with the camera of the same name in
// reference. Focal and principal point differences are absolute, in pixels.
func CompareRigs(ctx context.Context, reference, candidate *config.Config, logger logging.Logger) (*RigReport, error) {
	refPoses, err := reference.Poses()
	if err != nil {
		return nil, errors.Wrap(err, "reference rig")
	}
	candPoses, err := candidate.Poses()
	if err != nil {
		return nil, errors.Wrap(err, "candidate rig")
	}

	logger = logger.WithFields("reference", reference.Name, "candidate", candidate.Name)
	report := &RigReport{}
	for idx := range reference.Cameras {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ref := &reference.Cameras[idx]
		camLogger := logger.WithFields("camera", ref.Name)
		cand, ok := candidate.Camera(ref.Name)
		if !ok {
			camLogger.Warnw("camera missing from candidate rig")
			report.Missing = append(report.Missing, ref.Name)
			continue
		}

		cr, err := compareCameras(ref, cand, refPoses[ref.Name], candPoses[ref.Name], logger)
		if err != nil {
			return nil, errors.Wrapf(err, "camera %q", ref.Name)
		}
		camLogger.CDebugw(ctx, "camera compared", "rotation_diff_deg", cr.RotationDiffDeg, "focal_diff_px", cr.FocalDiffPx)
		report.Cameras = append(report.Cameras, cr)
	}

	if err := report.summarize(); err != nil {
		return nil, err
	}
	return report, nil
}

func compareCameras(ref, cand *config.Camera, refPose, candPose spatialmath.Pose, logger logging.Logger) (CameraReport, error) {
	refModel, err := ref.Model()
	if err != nil {
		return CameraReport{}, errors.Wrap(err, "reference")
	}
	candModel, err := cand.Model()
	if err != nil {
		return CameraReport{}, errors.Wrap(err, "candidate")
	}

	refYaw, refPitch, refRoll := spatialmath.CameraToWorldAngles(refPose.Rotation).Degrees()
	candYaw, candPitch, candRoll := spatialmath.CameraToWorldAngles(candPose.Rotation).Degrees()
	cr := CameraReport{
		Name:                 ref.Name,
		FocalDiffPx:          math.Abs(candModel.FocalLength - refModel.FocalLength),
		PrincipalPointDiffPx: candModel.PrincipalPoint.Sub(refModel.PrincipalPoint).Norm(),
		RotationDiffDeg:      utils.RadToDeg(spatialmath.AngleBetween(refPose.Rotation, candPose.Rotation)),
		YawDiffDeg:           utils.AngleDiffDeg(refYaw, candYaw),
		PitchDiffDeg:         utils.AngleDiffDeg(refPitch, candPitch),
		RollDiffDeg:          utils.AngleDiffDeg(refRoll, candRoll),
		TranslationDiffCm:    candPose.Translation.Sub(refPose.Translation).Norm(),
	}

	check, err := CheckCamera(ref.Name, refModel, logger)
	if err != nil {
		return CameraReport{}, err
	}
	lc, err := CompareLenses(refModel.Distortion, candModel.Distortion, check.RadialExtent)
	switch {
	case errors.Is(err, ErrModelMismatch):
		logger.WithFields("camera", ref.Name).Warnw("lens models differ, not comparing lens curves")
	case err != nil:
		return CameraReport{}, err
	default:
		lc = lc.Scale(refModel.FocalLength)
		cr.Lens = &lc
	}
	return cr, nil
}

func (r *RigReport) summarize() error {
	withLens := lo.Filter(r.Cameras, func(c CameraReport, _ int) bool { return c.Lens != nil })
	focal := lo.Map(r.Cameras, func(c CameraReport, _ int) float64 { return c.FocalDiffPx })
	pp := lo.Map(r.Cameras, func(c CameraReport, _ int) float64 { return c.PrincipalPointDiffPx })
	rot := lo.Map(r.Cameras, func(c CameraReport, _ int) float64 { return c.RotationDiffDeg })
	trans := lo.Map(r.Cameras, func(c CameraReport, _ int) float64 { return c.TranslationDiffCm })
	lensRMS := lo.Map(withLens, func(c CameraReport, _ int) float64 { return c.Lens.RMS })
	lensMax := lo.Map(withLens, func(c CameraReport, _ int) float64 { return c.Lens.Max })

	var err error
	for _, s := range []struct {
		dst    *Summary
		values []float64
	}{
		{&r.Focal, focal},
		{&r.PrincipalPoint, pp},
		{&r.Rotation, rot},
		{&r.Translation, trans},
		{&r.LensRMS, lensRMS},
		{&r.LensMax, lensMax},
	} {
		if *s.dst, err = summarize(s.values); err != nil {
			return err
		}
	}
	return nil
}

// summarize returns a zero Summary for no values.
func summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, nil
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return Summary{}, err
	}
	median, err := stats.Median(values)
	if err != nil {
		return Summary{}, err
	}
	maxValue, err := stats.Max(values)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Mean: mean, Median: median, Max: maxValue}, nil
}
