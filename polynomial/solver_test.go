package polynomial

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"go.viam.com/test"
)

func TestSolve(t *testing.T) {
	t.Run("closure with derivative", func(t *testing.T) {
		f := Func{F: math.Cos, DF: func(x float64) float64 { return -math.Sin(x) }}
		x, err := Solve(f, 0, 0, 3)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, x, test.ShouldAlmostEqual, math.Pi/2, 1e-12)
	})

	t.Run("root at an endpoint", func(t *testing.T) {
		x, err := Solve(cubic123, 0, 3, 10)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, x, test.ShouldEqual, 3.)
		x, err = Solve(cubic123, 0, -10, 1)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, x, test.ShouldEqual, 1.)
	})

	t.Run("no derivative", func(t *testing.T) {
		f := Func{F: func(x float64) float64 { return x - 1 }}
		test.That(t, HasDerivative(f), test.ShouldBeFalse)
		x, err := Solve(f, 0, 0, 2)
		test.That(t, err, test.ShouldBeError, ErrNoDerivative)
		test.That(t, math.IsNaN(x), test.ShouldBeTrue)
	})

	t.Run("singular derivative at one probe", func(t *testing.T) {
		f := Func{
			F:  math.Sqrt,
			DF: func(x float64) float64 { return 0.5 / math.Sqrt(x) },
		}
		test.That(t, HasDerivative(f), test.ShouldBeTrue)
		x, err := Solve(f, 0.5, 0, 1)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, x, test.ShouldAlmostEqual, 0.25, 1e-12)
	})

	t.Run("no sign change", func(t *testing.T) {
		x, err := Solve(Polynomial{1, 0, 1}, 0, -1, 1)
		test.That(t, errors.Is(err, ErrNoBracket), test.ShouldBeTrue)
		test.That(t, math.IsNaN(x), test.ShouldBeTrue)
	})

	t.Run("flat start falls back to bisection", func(t *testing.T) {
		// derivative of x^3 vanishes at 0, where the search starts
		x, err := Solve(Polynomial{0, 0, 0, 1}, 0.125, 0, 1)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, x, test.ShouldAlmostEqual, 0.5, 1e-12)
	})
}

func TestSolveResidual(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		p := make(Polynomial, 2+rng.Intn(5))
		for j := range p {
			p[j] = rng.Float64()*4 - 2
		}
		y := rng.Float64()*2 - 1
		x0 := rng.Float64()*4 - 2
		x1 := x0 + rng.Float64()*3

		x, err := Solve(p, y, x0, x1)
		if err != nil {
			test.That(t, errors.Is(err, ErrNoBracket), test.ShouldBeTrue)
			test.That(t, (p.Evaluate(x0)-y)*(p.Evaluate(x1)-y), test.ShouldBeGreaterThan, 0)
			continue
		}
		test.That(t, x, test.ShouldBeGreaterThanOrEqualTo, x0)
		test.That(t, x, test.ShouldBeLessThanOrEqualTo, x1)
		test.That(t, p.Evaluate(x)-y, test.ShouldAlmostEqual, 0, 1e-9)
	}
}
