package cli

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/plot/vg"

	"go.viam.com/rigcalib/calibration"
	"go.viam.com/rigcalib/config"
	"go.viam.com/rigcalib/logging"
)

// PlotAction draws the reference and candidate lens curves of one camera to an image file.
func PlotAction(c *cli.Context) error {
	logger := logging.Global().Sublogger("plot")
	reference, candidate, err := readRigs(c, logger)
	if err != nil {
		return err
	}

	name := c.String(flagCamera)
	ref, cand, err := cameraPair(reference, candidate, name)
	if err != nil {
		return err
	}
	refModel, err := ref.Model()
	if err != nil {
		return errors.Wrap(err, "reference")
	}
	candModel, err := cand.Model()
	if err != nil {
		return errors.Wrap(err, "candidate")
	}

	check, err := calibration.CheckCamera(name, refModel, logger)
	if err != nil {
		return err
	}
	p, err := calibration.PlotLensCurves(name, check.RadialExtent,
		calibration.LensCurve{Name: "reference", Lens: refModel.Distortion},
		calibration.LensCurve{Name: "candidate", Lens: candModel.Distortion},
	)
	if err != nil {
		return err
	}

	out := c.Path(flagOut)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, out); err != nil {
		return errors.Wrapf(err, "saving plot to %q", out)
	}
	logger.CDebugw(c.Context, "plot saved", "camera", name, "path", out)
	printf(c.App.Writer, "wrote %s", out)
	return nil
}

func cameraPair(reference, candidate *config.Config, name string) (*config.Camera, *config.Camera, error) {
	ref, ok := reference.Camera(name)
	if !ok {
		return nil, nil, errors.Errorf("no camera %q in reference rig", name)
	}
	cand, ok := candidate.Camera(name)
	if !ok {
		return nil, nil, errors.Errorf("no camera %q in candidate rig", name)
	}
	return ref, cand, nil
}
