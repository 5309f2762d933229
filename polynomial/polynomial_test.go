package polynomial

import (
	"errors"
	"math"
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/diff/fd"
)

// (x-1)(x-2)(x-3)
var cubic123 = Polynomial{-6, 11, -6, 1}

func TestEvaluate(t *testing.T) {
	test.That(t, Polynomial{1, 2, 3}.Evaluate(2), test.ShouldEqual, 17.)
	test.That(t, Polynomial{}.Evaluate(2), test.ShouldEqual, 0.)
	test.That(t, Polynomial{4}.Evaluate(-7), test.ShouldEqual, 4.)
	for _, x := range []float64{1, 2, 3} {
		test.That(t, cubic123.Evaluate(x), test.ShouldEqual, 0.)
	}
}

func TestEvaluateDerivative(t *testing.T) {
	test.That(t, Polynomial{1, 2, 3}.EvaluateDerivative(2), test.ShouldEqual, 14.)
	test.That(t, Polynomial{}.EvaluateDerivative(2), test.ShouldEqual, 0.)
	test.That(t, Polynomial{5}.EvaluateDerivative(2), test.ShouldEqual, 0.)

	t.Run("matches finite differences", func(t *testing.T) {
		p := Polynomial{0.5, -1.25, 0.3, 2, -0.7}
		for _, x := range []float64{-2, -0.5, 0, 0.3, 1, 1.7} {
			approx := fd.Derivative(p.Evaluate, x, &fd.Settings{Formula: fd.Central})
			test.That(t, p.EvaluateDerivative(x), test.ShouldAlmostEqual, approx, 1e-5)
		}
	})
}

func TestMinimizeOrder(t *testing.T) {
	p := Polynomial{1, 2, 0, 0}
	m := p.MinimizeOrder()
	test.That(t, m, test.ShouldResemble, Polynomial{1, 2})
	test.That(t, p, test.ShouldHaveLength, 4)
	test.That(t, Polynomial{0, 0}.MinimizeOrder(), test.ShouldHaveLength, 0)
	test.That(t, Polynomial{}.MinimizeOrder(), test.ShouldHaveLength, 0)
	test.That(t, Polynomial{0, 3}.MinimizeOrder(), test.ShouldResemble, Polynomial{0, 3})
}

func TestBoundRoots(t *testing.T) {
	low, high, err := cubic123.BoundRoots(0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, low, test.ShouldAlmostEqual, 6./17.)
	test.That(t, high, test.ShouldEqual, 12.)
	test.That(t, low, test.ShouldBeLessThanOrEqualTo, 1.)
	test.That(t, high, test.ShouldBeGreaterThanOrEqualTo, 3.)

	t.Run("shifted by y", func(t *testing.T) {
		// x^2 = 4
		low, high, err := Polynomial{0, 0, 1}.BoundRoots(4)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, low, test.ShouldBeLessThanOrEqualTo, 2.)
		test.That(t, high, test.ShouldBeGreaterThanOrEqualTo, 2.)
	})

	t.Run("too few coefficients", func(t *testing.T) {
		low, high, err := Polynomial{3}.BoundRoots(0)
		test.That(t, errors.Is(err, ErrTooFewCoefficients), test.ShouldBeTrue)
		test.That(t, math.IsNaN(low), test.ShouldBeTrue)
		test.That(t, math.IsNaN(high), test.ShouldBeTrue)
	})
}

func TestFindRoot(t *testing.T) {
	for _, tc := range []struct {
		x0, x1, want float64
	}{
		{0.5, 1.5, 1},
		{1.5, 2.5, 2},
		{2.5, 3.5, 3},
		{1.5, 0.5, 1},
		{2, 2.7, 2},
	} {
		x, err := cubic123.FindRoot(tc.x0, tc.x1, 0)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, x, test.ShouldAlmostEqual, tc.want, 1e-12)
	}

	t.Run("nonzero target", func(t *testing.T) {
		x, err := FindRootOfPolynomial([]float64{0, 0, 1, 0, 0}, 0, 3, 2)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, x, test.ShouldAlmostEqual, math.Sqrt2, 1e-12)
	})

	t.Run("no bracket", func(t *testing.T) {
		x, err := cubic123.FindRoot(4, 5, 0)
		test.That(t, errors.Is(err, ErrNoBracket), test.ShouldBeTrue)
		test.That(t, math.IsNaN(x), test.ShouldBeTrue)
	})
}

func TestMultiply(t *testing.T) {
	test.That(t, Multiply(Polynomial{1, 1}, Polynomial{1, -1}), test.ShouldResemble, Polynomial{1, 0, -1})
	test.That(t, Multiply(Polynomial{2}, Polynomial{1, 2, 3}), test.ShouldResemble, Polynomial{2, 4, 6})
	test.That(t, Multiply(Polynomial{}, Polynomial{1, 2, 3}), test.ShouldHaveLength, 0)

	t.Run("into overwrites buffer", func(t *testing.T) {
		r := []float64{9, 9, 9, 9}
		MultiplyInto([]float64{1, 2}, []float64{3, 0, 1}, r)
		test.That(t, r, test.ShouldResemble, []float64{3, 6, 1, 2})
	})

	t.Run("into rejects wrong size", func(t *testing.T) {
		test.That(t, func() { MultiplyInto([]float64{1, 2}, []float64{3}, make([]float64, 3)) }, test.ShouldPanic)
	})

	t.Run("product evaluates as product", func(t *testing.T) {
		p := Polynomial{0.5, -1, 2}
		q := Polynomial{-3, 0.25, 0, 1}
		pq := Multiply(p, q)
		for _, x := range []float64{-1.5, 0, 0.7, 2} {
			test.That(t, pq.Evaluate(x), test.ShouldAlmostEqual, p.Evaluate(x)*q.Evaluate(x), 1e-12)
		}
	})
}
