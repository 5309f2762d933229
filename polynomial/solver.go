package polynomial

import (
	"math"

	"github.com/pkg/errors"
)

const (
	// MaxSolveIterations caps the Newton/bisection loop in Solve. Eight is typical.
	MaxSolveIterations = 60

	// ulp is 2^-52, the relative spacing of float64 values near 1.
	ulp = 2.2204460492503130808e-16
)

// ScalarFunction is a continuous real function of one variable. Functions that cannot
// supply a derivative return NaN from Derivative.
type ScalarFunction interface {
	Evaluate(x float64) float64
	Derivative(x float64) float64
}

// Func adapts a pair of closures to a ScalarFunction. A nil DF means no derivative.
type Func struct {
	F  func(x float64) float64
	DF func(x float64) float64
}

// Evaluate returns F(x).
func (f Func) Evaluate(x float64) float64 {
	return f.F(x)
}

// Derivative returns DF(x), or NaN if DF is nil.
func (f Func) Derivative(x float64) float64 {
	if f.DF == nil {
		return math.NaN()
	}
	return f.DF(x)
}

// HasDerivative probes f at 0 and 1 and reports whether it supplies a derivative.
func HasDerivative(f ScalarFunction) bool {
	return !(isNonFinite(f.Derivative(0)) && isNonFinite(f.Derivative(1)))
}

func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// Solve finds x in [x0, x1] such that f(x) = y. The interval must bracket the solution, i.e.
// (f(x0)-y) * (f(x1)-y) <= 0; otherwise NaN and ErrNoBracket are returned. The interval should
// be as tight as possible, since which of several roots is found is unspecified.
//
// Each step takes a Newton step and falls back to bisection when the derivative vanishes or
// the step leaves the bracket, then shrinks the bracket around the sign change. The loop ends
// after MaxSolveIterations steps or once the bracket shrinks by less than one ulp of x.
func Solve(f ScalarFunction, y, x0, x1 float64) (float64, error) {
	f0 := f.Evaluate(x0) - y
	if f0 == 0 {
		return x0, nil
	}
	f1 := f.Evaluate(x1) - y
	if f1 == 0 {
		return x1, nil
	}
	if f0*f1 > 0 {
		return math.NaN(), errors.Wrapf(ErrNoBracket, "f(%g)-y=%g, f(%g)-y=%g", x0, f0, x1, f1)
	}
	if math.IsNaN(f0 * f1) {
		return math.NaN(), errors.Wrapf(ErrNoBracket, "function is not finite at %g or %g", x0, x1)
	}

	if x0 > x1 {
		x0, x1 = x1, x0
		f0, f1 = f1, f0
	}

	x, fx := x1, f1
	if math.Abs(f0) < math.Abs(f1) {
		x, fx = x0, f0
	}

	if !HasDerivative(f) {
		return math.NaN(), ErrNoDerivative
	}

	for k := MaxSolveIterations; k > 0; k-- {
		// TODO: Brent's method would bound the worst case better than Newton with bisection.
		if d := f.Derivative(x); d != 0 {
			if next := x - fx/d; x0 < next && next < x1 {
				x = next
			} else {
				x = (x0 + x1) * .5
			}
		} else {
			x = (x0 + x1) * .5
		}

		if fx = f.Evaluate(x) - y; fx == 0 {
			return x, nil
		}

		var dx float64
		if fx*f0 > 0 {
			f0 = fx
			dx = x - x0
			x0 = x
		} else {
			dx = x1 - x
			x1 = x
		}
		if dx <= ulp*math.Abs(x) {
			break
		}
	}
	return x, nil
}
