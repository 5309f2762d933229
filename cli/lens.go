package cli

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/rigcalib/logging"
	"go.viam.com/rigcalib/transform"
)

// FocalAction prints the focal length in pixels implied by a field of view.
func FocalAction(c *cli.Context) error {
	f, err := transform.FocalLengthFromFOV(
		c.Int(flagWidth),
		c.Int(flagHeight),
		c.Float64(flagHFOV),
		c.Float64(flagVFOV),
		transform.DistortionType(c.String(flagLens)),
		c.Float64(flagRadius),
	)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%.4f", f)
	return nil
}

// InvertAction undistorts each distorted normalized radius given as an argument.
func InvertAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("expected at least one radius")
	}
	d, err := distorterFromFlags(c)
	if err != nil {
		return err
	}

	maxRadius := c.Float64(flagMaxRadius)
	if maxRadius <= 0 {
		if maxRadius, err = d.Radial().FindFlat(0); err != nil {
			return err
		}
	}
	logging.Global().CDebugw(c.Context, "inverting lens", "lens", d.ModelType(), "max_radius", maxRadius)

	t := newTable("Distorted", "Undistorted")
	for _, arg := range c.Args().Slice() {
		rd, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid radius %q", arg)
		}
		ru, err := transform.UndistortRadius(d, rd, maxRadius)
		if err != nil {
			return errors.Wrapf(err, "radius %v", rd)
		}
		t.AppendRow([]interface{}{arg, strconv.FormatFloat(ru, 'f', 6, 64)})
	}
	printf(c.App.Writer, "%s", t.Render())
	return nil
}

// FlatAction prints where the radial curve of a lens reaches the given slope.
func FlatAction(c *cli.Context) error {
	d, err := distorterFromFlags(c)
	if err != nil {
		return err
	}
	x, err := d.Radial().FindFlat(c.Float64(flagSlope))
	if err != nil {
		return err
	}
	if math.IsInf(x, 1) {
		printf(c.App.Writer, "lens model does not flatten")
		return nil
	}
	printf(c.App.Writer, "%.6f", x)
	return nil
}
