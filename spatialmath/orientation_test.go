package spatialmath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func TestQuaternion(t *testing.T) {
	test.That(t, NewIdentityRotation().Quaternion(), test.ShouldResemble, quat.Number{Real: 1})

	rng := rand.New(rand.NewSource(11))
	v := r3.Vector{X: 0.2, Y: -3, Z: 1.5}
	// include half turns, which exercise the branches where the trace is not positive
	angles := []EulerAngles{{Yaw: math.Pi}, {Pitch: math.Pi / 2, Roll: math.Pi}, {Roll: math.Pi}, {Yaw: 3, Pitch: 0.1, Roll: -3}}
	for i := 0; i < 50; i++ {
		angles = append(angles, EulerAngles{Yaw: rng.Float64()*6 - 3, Pitch: rng.Float64()*3 - 1.5, Roll: rng.Float64()*6 - 3})
	}
	for _, ea := range angles {
		m := ea.CameraToWorld()
		q := m.Quaternion()
		test.That(t, quat.Abs(q), test.ShouldAlmostEqual, 1, 1e-12)
		test.That(t, q.Real, test.ShouldBeGreaterThanOrEqualTo, 0.)

		want := m.TransformVector(v)
		x, y, z := RotateVector(q, v.X, v.Y, v.Z)
		test.That(t, x, test.ShouldAlmostEqual, want.X, 1e-9)
		test.That(t, y, test.ShouldAlmostEqual, want.Y, 1e-9)
		test.That(t, z, test.ShouldAlmostEqual, want.Z, 1e-9)
	}
}

func TestAngleBetween(t *testing.T) {
	a := CameraToWorldTransform(0.4, 0.2, -0.1)
	test.That(t, AngleBetween(a, a), test.ShouldAlmostEqual, 0, 1e-7)

	b := Concatenate(a, YawTransform(0.25))
	test.That(t, AngleBetween(a, b), test.ShouldAlmostEqual, 0.25, 1e-12)
	test.That(t, AngleBetween(b, a), test.ShouldAlmostEqual, 0.25, 1e-12)

	test.That(t, AngleBetween(NewIdentityRotation(), RollTransform(math.Pi)), test.ShouldAlmostEqual, math.Pi, 1e-12)
	test.That(t, AngleBetween(NewIdentityRotation(), RollTransform(-2)), test.ShouldAlmostEqual, 2, 1e-12)

	rotationAlmostEqual(t, Concatenate(a, OrientationBetween(a, b)), b, 1e-12)
}

func TestRotationMatrixChecks(t *testing.T) {
	m := CameraToWorldTransform(1, 0.5, -2)
	test.That(t, m.IsOrthogonal(1e-12), test.ShouldBeTrue)
	test.That(t, m.IsRotation(1e-12), test.ShouldBeTrue)

	mirror := RotationMatrix{-1, 0, 0, 0, 1, 0, 0, 0, 1}
	test.That(t, mirror.IsOrthogonal(1e-12), test.ShouldBeTrue)
	test.That(t, mirror.IsRotation(1e-12), test.ShouldBeFalse)

	scaled := RotationMatrix{2, 0, 0, 0, 1, 0, 0, 0, 1}
	test.That(t, scaled.IsOrthogonal(1e-6), test.ShouldBeFalse)

	d := m.Mat()
	test.That(t, d.At(0, 2), test.ShouldEqual, m[2])
	test.That(t, d.At(2, 1), test.ShouldEqual, m[7])
	d.Set(0, 0, 42)
	test.That(t, m[0], test.ShouldNotEqual, 42.)
}
