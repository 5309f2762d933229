package cli

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"go.viam.com/rigcalib/calibration"
	"go.viam.com/rigcalib/config"
	"go.viam.com/rigcalib/logging"
)

// ErrLensFlattens is returned by CheckAction when a lens model cannot be inverted across its image.
var ErrLensFlattens = errors.New("lens model flattens inside the image")

// CheckAction checks every camera of a rig and prints a table of the results.
func CheckAction(c *cli.Context) error {
	logger := logging.Global().Sublogger("check")
	cfg, err := config.Read(c.Context, c.Path(flagRig), logger)
	if err != nil {
		return err
	}

	var flattened []string
	t := newTable("Camera", "Image radius", "Monotonic radius", "Radial extent", "Flattens")
	for idx := range cfg.Cameras {
		cam := &cfg.Cameras[idx]
		model, err := cam.Model()
		if err != nil {
			return errors.Wrapf(err, "camera %q", cam.Name)
		}
		check, err := calibration.CheckCamera(cam.Name, model, logger)
		if err != nil {
			return err
		}
		if check.Flattens {
			flattened = append(flattened, check.Name)
		}
		t.AppendRow([]interface{}{
			check.Name,
			fmt.Sprintf("%.2f", check.ImageRadius),
			fmt.Sprintf("%.2f", check.MonotonicRadius),
			fmt.Sprintf("%.6f", check.RadialExtent),
			check.Flattens,
		})
	}
	printf(c.App.Writer, "%s", t.Render())

	if len(flattened) > 0 {
		return errors.Wrapf(ErrLensFlattens, "cameras %v", flattened)
	}
	return nil
}

// CompareAction compares a candidate rig with a reference rig.
func CompareAction(c *cli.Context) error {
	logger := logging.Global().Sublogger("compare")
	reference, candidate, err := readRigs(c, logger)
	if err != nil {
		return err
	}

	report, err := calibration.CompareRigs(c.Context, reference, candidate, logger)
	if err != nil {
		return err
	}

	if c.Bool(flagJSON) {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printReport(c, report)
	return nil
}

// readRigs reads the reference and candidate rigs concurrently.
func readRigs(c *cli.Context, logger logging.Logger) (reference, candidate *config.Config, err error) {
	errs, ctx := errgroup.WithContext(c.Context)
	errs.Go(func() error {
		var err error
		reference, err = config.Read(ctx, c.Path(flagReference), logger)
		return errors.Wrap(err, "reading reference rig")
	})
	errs.Go(func() error {
		var err error
		candidate, err = config.Read(ctx, c.Path(flagCandidate), logger)
		return errors.Wrap(err, "reading candidate rig")
	})
	if err := errs.Wait(); err != nil {
		return nil, nil, err
	}
	return reference, candidate, nil
}

func printReport(c *cli.Context, report *calibration.RigReport) {
	t := newTable("Camera", "Focal px", "Principal point px", "Rotation deg", "Yaw/pitch/roll deg",
		"Translation cm", "Lens RMS px", "Lens max px")
	for _, cr := range report.Cameras {
		lensRMS, lensMax := "-", "-"
		if cr.Lens != nil {
			lensRMS, lensMax = fmt.Sprintf("%.3f", cr.Lens.RMS), fmt.Sprintf("%.3f", cr.Lens.Max)
		}
		t.AppendRow([]interface{}{
			cr.Name,
			fmt.Sprintf("%.3f", cr.FocalDiffPx),
			fmt.Sprintf("%.3f", cr.PrincipalPointDiffPx),
			fmt.Sprintf("%.3f", cr.RotationDiffDeg),
			fmt.Sprintf("%.3f/%.3f/%.3f", cr.YawDiffDeg, cr.PitchDiffDeg, cr.RollDiffDeg),
			fmt.Sprintf("%.3f", cr.TranslationDiffCm),
			lensRMS,
			lensMax,
		})
	}
	for _, s := range []struct {
		name    string
		summary func(calibration.Summary) float64
	}{
		{"mean", func(s calibration.Summary) float64 { return s.Mean }},
		{"median", func(s calibration.Summary) float64 { return s.Median }},
		{"max", func(s calibration.Summary) float64 { return s.Max }},
	} {
		t.AppendFooter([]interface{}{
			s.name,
			fmt.Sprintf("%.3f", s.summary(report.Focal)),
			fmt.Sprintf("%.3f", s.summary(report.PrincipalPoint)),
			fmt.Sprintf("%.3f", s.summary(report.Rotation)),
			"",
			fmt.Sprintf("%.3f", s.summary(report.Translation)),
			fmt.Sprintf("%.3f", s.summary(report.LensRMS)),
			fmt.Sprintf("%.3f", s.summary(report.LensMax)),
		})
	}
	printf(c.App.Writer, "%s", t.Render())
	if len(report.Missing) > 0 {
		printf(c.App.Writer, "missing from candidate: %v", report.Missing)
	}
}
