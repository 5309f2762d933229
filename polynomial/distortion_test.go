package polynomial

import (
	"errors"
	"math"
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/integrate/quad"
)

// barrel flattens at x = sqrt(2): its derivative is 1 - 0.6x^2 + 0.05x^4.
var barrel = Distortion{-0.2, 0.01}

func TestEvaluateDistortion(t *testing.T) {
	test.That(t, Distortion{0.1}.Evaluate(2), test.ShouldAlmostEqual, 2.8)
	test.That(t, Distortion{}.Evaluate(1.5), test.ShouldEqual, 1.5)
	test.That(t, barrel.Evaluate(1), test.ShouldAlmostEqual, 0.81)
	test.That(t, barrel.Evaluate(-1), test.ShouldAlmostEqual, -0.81)

	// identical to the equivalent ordinary polynomial
	p := Polynomial{0, 1, 0, -0.2, 0, 0.01}
	for _, x := range []float64{0, 0.4, 1.1, 2.5} {
		test.That(t, barrel.Evaluate(x), test.ShouldAlmostEqual, p.Evaluate(x), 1e-12)
		test.That(t, barrel.EvaluateDerivative(x), test.ShouldAlmostEqual, p.EvaluateDerivative(x), 1e-12)
	}
}

func TestEvaluateDistortionDerivative(t *testing.T) {
	test.That(t, Distortion{}.EvaluateDerivative(3), test.ShouldEqual, 1.)
	test.That(t, Distortion{0.1}.EvaluateDerivative(2), test.ShouldAlmostEqual, 2.2)

	k := Distortion{0.03, -0.011, 0.002, -0.0001}
	for _, x := range []float64{0, 0.2, 0.9, 1.6, 2.3} {
		approx := fd.Derivative(k.Evaluate, x, &fd.Settings{Formula: fd.Central})
		test.That(t, k.EvaluateDerivative(x), test.ShouldAlmostEqual, approx, 1e-6)
	}
}

func TestFindFlat(t *testing.T) {
	t.Run("two coefficients", func(t *testing.T) {
		x, err := barrel.FindFlat(0)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, x, test.ShouldAlmostEqual, math.Sqrt2, 1e-12)
		test.That(t, barrel.EvaluateDerivative(x), test.ShouldAlmostEqual, 0, 1e-12)
	})

	t.Run("single coefficient", func(t *testing.T) {
		x, err := Distortion{-0.05}.FindFlat(0)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, x, test.ShouldAlmostEqual, 1/math.Sqrt(0.15), 1e-12)
	})

	t.Run("nonzero slope", func(t *testing.T) {
		x, err := Distortion{-0.05}.FindFlat(0.25)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, Distortion{-0.05}.EvaluateDerivative(x), test.ShouldAlmostEqual, 0.25, 1e-12)
	})

	t.Run("never flattens", func(t *testing.T) {
		x, err := Distortion{0.1, 0.01}.FindFlat(0)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, math.IsInf(x, 1), test.ShouldBeTrue)

		x, err = Distortion{}.FindFlat(0)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, math.IsInf(x, 1), test.ShouldBeTrue)
	})

	t.Run("trailing zeros are ignored", func(t *testing.T) {
		x, err := Distortion{-0.05, 0, 0, 0, 0, 0, 0, 0}.FindFlat(0)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, x, test.ShouldAlmostEqual, 1/math.Sqrt(0.15), 1e-12)
	})

	t.Run("too many coefficients", func(t *testing.T) {
		x, err := Distortion{-0.1, 0, 0, 0, 0, 0, 1e-9}.FindFlat(0)
		test.That(t, errors.Is(err, ErrOrderTooHigh), test.ShouldBeTrue)
		test.That(t, math.IsNaN(x), test.ShouldBeTrue)
	})

	t.Run("monotonic below the flat", func(t *testing.T) {
		for _, k := range []Distortion{barrel, {-0.05}, {-0.3, 0.05, -0.002}} {
			flat, err := k.FindFlat(0)
			test.That(t, err, test.ShouldBeNil)
			for i := 0; i < 100; i++ {
				x := flat * float64(i) / 100
				test.That(t, k.EvaluateDerivative(x), test.ShouldBeGreaterThan, 0)
			}
		}
	})
}

func TestFindRootOfDistortion(t *testing.T) {
	t.Run("inverts barrel distortion", func(t *testing.T) {
		maxX, err := barrel.FindFlat(0)
		test.That(t, err, test.ShouldBeNil)
		for _, x0 := range []float64{0, 0.1, 0.5, 1, 1.2, 1.4} {
			x, err := barrel.FindRoot(maxX, barrel.Evaluate(x0))
			test.That(t, err, test.ShouldBeNil)
			test.That(t, x, test.ShouldAlmostEqual, x0, 1e-9)
		}
	})

	t.Run("inverts pincushion distortion", func(t *testing.T) {
		k := Distortion{0.1}
		x, err := FindRootOfDistortionPolynomial(k, 2, k.Evaluate(1.5))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, x, test.ShouldAlmostEqual, 1.5, 1e-12)
	})

	t.Run("odd symmetry", func(t *testing.T) {
		k := Distortion{0.1}
		x, err := k.FindRoot(2, -k.Evaluate(1.5))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, x, test.ShouldAlmostEqual, -1.5, 1e-12)
	})

	t.Run("no bracket", func(t *testing.T) {
		x, err := barrel.FindRoot(1, barrel.Evaluate(1.4))
		test.That(t, errors.Is(err, ErrNoBracket), test.ShouldBeTrue)
		test.That(t, math.IsNaN(x), test.ShouldBeTrue)
	})
}

func TestRISDiff(t *testing.T) {
	a := Distortion{0.1, -0.02, 0.003}
	b := Distortion{0.05, 0.01, 0}
	const max = 1.5

	integrand := func(x float64) float64 {
		d := a.Evaluate(x) - b.Evaluate(x)
		return d * d
	}
	want := math.Sqrt(quad.Fixed(integrand, 0, max, 30, nil, 0))

	ris, err := RISDiff(a, b, max)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ris, test.ShouldAlmostEqual, want, 1e-12)

	rms, err := RMSDiff(a, b, max)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rms, test.ShouldAlmostEqual, want/math.Sqrt(max), 1e-12)

	t.Run("symmetric", func(t *testing.T) {
		ris2, err := RISDiff(b, a, max)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, ris2, test.ShouldAlmostEqual, ris, 1e-15)
	})

	t.Run("identical curves", func(t *testing.T) {
		ris, err := RISDiff(a, a, max)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, ris, test.ShouldEqual, 0.)
		ris, err = RISDiff(Distortion{}, Distortion{}, max)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, ris, test.ShouldEqual, 0.)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := RISDiff(a, Distortion{1}, max)
		test.That(t, errors.Is(err, ErrCoefficientMismatch), test.ShouldBeTrue)
		five := Distortion{1, 2, 3, 4, 5}
		v, err := RMSDiff(five, five, max)
		test.That(t, errors.Is(err, ErrOrderTooHigh), test.ShouldBeTrue)
		test.That(t, math.IsNaN(v), test.ShouldBeTrue)
	})
}

func TestMaxDiff(t *testing.T) {
	sampledMax := func(a, b Distortion, max float64) float64 {
		var best float64
		for i := 0; i <= 20000; i++ {
			x := max * float64(i) / 20000
			best = math.Max(best, math.Abs(a.Evaluate(x)-b.Evaluate(x)))
		}
		return best
	}

	for _, tc := range []struct {
		name string
		a, b Distortion
		max  float64
	}{
		{"interior maximum", Distortion{0.3, -0.1}, Distortion{0, 0}, 1.6},
		{"endpoint maximum", Distortion{0.3, -0.1}, Distortion{0, 0}, 2},
		{"one coefficient", Distortion{0.2}, Distortion{-0.1}, 1.3},
		{"three coefficients", Distortion{0.2, -0.15, 0.02}, Distortion{0.05, 0.01, 0}, 2.2},
		{"four coefficients", Distortion{0.4, -0.3, 0.06, -0.003}, Distortion{0.1, 0.02, 0, 0.001}, 1.9},
		{"degenerate top coefficient", Distortion{0.4, -0.3, 0.06, 0.001}, Distortion{0.1, 0.02, 0, 0.001}, 1.9},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MaxDiff(tc.a, tc.b, tc.max)
			test.That(t, err, test.ShouldBeNil)
			want := sampledMax(tc.a, tc.b, tc.max)
			test.That(t, got, test.ShouldBeGreaterThanOrEqualTo, want-1e-12)
			test.That(t, got, test.ShouldAlmostEqual, want, 1e-6)
		})
	}

	t.Run("identical curves", func(t *testing.T) {
		got, err := MaxDiff(barrel, barrel, 1)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, got, test.ShouldEqual, 0.)
	})

	t.Run("unsupported order", func(t *testing.T) {
		five := Distortion{1, 2, 3, 4, 5}
		v, err := MaxDiff(five, five, 1)
		test.That(t, errors.Is(err, ErrNotImplemented), test.ShouldBeTrue)
		test.That(t, math.IsNaN(v), test.ShouldBeTrue)
	})
}
