package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/rigcalib/spatialmath"
	"go.viam.com/rigcalib/utils"
)

// PoseAction prints the rotation matrix and quaternion of yaw, pitch and roll given in degrees,
// and optionally a point rotated by it.
func PoseAction(c *cli.Context) error {
	point := c.Float64Slice(flagPoint)
	if c.IsSet(flagPoint) && len(point) != 3 {
		return errors.Errorf("expected 3 point coordinates, got %d", len(point))
	}
	basis, err := spatialmath.ParseBasis(c.String(flagBasis))
	if err != nil {
		return err
	}
	angles := spatialmath.NewEulerAnglesDegrees(c.Float64(flagYaw), c.Float64(flagPitch), c.Float64(flagRoll))
	m := angles.CameraToWorld()
	if c.Bool(flagWorldToCamera) {
		m = m.Transpose()
	}
	if m, err = spatialmath.ConvertTransform(m, spatialmath.YUp, basis); err != nil {
		return err
	}

	printMatrix(c.App.Writer, m)
	q := m.Quaternion()
	printf(c.App.Writer, "quaternion: %.6f %.6f %.6f %.6f", q.Real, q.Imag, q.Jmag, q.Kmag)
	if len(point) == 3 {
		x, y, z := spatialmath.RotateVector(q, point[0], point[1], point[2])
		printf(c.App.Writer, "point: %.6f %.6f %.6f", zeroed(x), zeroed(y), zeroed(z))
	}
	return nil
}

// AnglesAction decomposes a Y-up rotation matrix into yaw, pitch and roll in degrees.
func AnglesAction(c *cli.Context) error {
	if c.NArg() != 9 {
		return errors.Errorf("expected 9 matrix elements, got %d", c.NArg())
	}
	var m spatialmath.RotationMatrix
	for i, arg := range c.Args().Slice() {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid matrix element %d", i)
		}
		m[i] = v
	}
	if !m.IsRotation(1e-6) {
		return errors.New("matrix is not a rotation")
	}

	angles := spatialmath.CameraToWorldAngles(m)
	if c.Bool(flagWorldToCamera) {
		angles = spatialmath.WorldToCameraAngles(m)
	}
	yaw, pitch, roll := angles.Degrees()
	printf(c.App.Writer, "yaw: %.4f pitch: %.4f roll: %.4f", yaw, pitch, roll)
	return nil
}

func printMatrix(w io.Writer, m spatialmath.RotationMatrix) {
	t := newTable("", "X", "Y", "Z")
	for i, axis := range []string{"X", "Y", "Z"} {
		row := []interface{}{axis}
		for j := 0; j < 3; j++ {
			row = append(row, fmt.Sprintf("%.6f", zeroed(m[3*i+j])))
		}
		t.AppendRow(row)
	}
	printf(w, "%s", t.Render())
}

// zeroed keeps values that round to zero at six decimals from printing as "-0.000000".
func zeroed(v float64) float64 {
	if utils.Float64AlmostEqual(v, 0, 5e-7) {
		return 0
	}
	return v
}
