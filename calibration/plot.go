package calibration

import (
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"go.viam.com/rigcalib/polynomial"
	"go.viam.com/rigcalib/transform"
)

// PlotSamples is the number of segments each lens curve is drawn with.
const PlotSamples = 200

// LensCurve names a lens model to plot.
type LensCurve struct {
	Name string
	Lens transform.Distorter
}

// PlotLensCurves plots the radial curves of the given lenses over [0, maxRadius] of the
// undistorted radial variable. Save the result with plot.Save; the file extension picks the
// image format.
func PlotLensCurves(title string, maxRadius float64, curves ...LensCurve) (*plot.Plot, error) {
	if !(maxRadius > 0) {
		return nil, errors.Errorf("radius must be positive, got %v", maxRadius)
	}
	if len(curves) == 0 {
		return nil, errors.New("no lens curves to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "undistorted radius"
	p.Y.Label.Text = "distorted radius"
	p.Add(plotter.NewGrid())

	for i, c := range curves {
		line, err := plotter.NewLine(curvePoints(c.Lens.Radial(), maxRadius, PlotSamples))
		if err != nil {
			return nil, errors.Wrapf(err, "lens %q", c.Name)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(c.Name, line)
	}
	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

// curvePoints samples k at n+1 evenly spaced points of [0, maxRadius].
func curvePoints(k polynomial.Distortion, maxRadius float64, n int) plotter.XYs {
	pts := make(plotter.XYs, n+1)
	for i := range pts {
		x := maxRadius * float64(i) / float64(n)
		pts[i] = plotter.XY{X: x, Y: k.Evaluate(x)}
	}
	return pts
}
