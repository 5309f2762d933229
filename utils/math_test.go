package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestDegRad(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldEqual, math.Pi)
	test.That(t, DegToRad(90), test.ShouldEqual, math.Pi/2)
	test.That(t, RadToDeg(math.Pi), test.ShouldEqual, 180.)
	test.That(t, RadToDeg(DegToRad(37.5)), test.ShouldAlmostEqual, 37.5)
}

func TestAngleDiffDeg(t *testing.T) {
	for _, tc := range []struct {
		a1, a2, want float64
	}{
		{0, 0, 0},
		{10, 350, 20},
		{350, 10, 20},
		{-170, 170, 20},
		{90, 270, 180},
		{720, 45, 45},
	} {
		test.That(t, AngleDiffDeg(tc.a1, tc.a2), test.ShouldAlmostEqual, tc.want)
	}
}

func TestModAngDeg(t *testing.T) {
	test.That(t, ModAngDeg(-90), test.ShouldEqual, 270.)
	test.That(t, ModAngDeg(360), test.ShouldEqual, 0.)
	test.That(t, ModAngDeg(725), test.ShouldEqual, 5.)
	test.That(t, Float64AlmostEqual(1, 1.05, 0.1), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1, 1.2, 0.1), test.ShouldBeFalse)
}
