package polynomial

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

const (
	// MaxOrder is the largest number of distortion coefficients FindFlat accepts.
	MaxOrder = 6

	// MaxCompareCoefficients is the largest number of coefficients the curve comparisons accept.
	MaxCompareCoefficients = 4
)

// Distortion holds the coefficients k of the odd distortion polynomial
//
//	x * (1 + k[0]*x^2 + k[1]*x^4 + ... + k[n-1]*x^(2n))
//
// The linear coefficient is always 1 and is not stored. The model is meaningful for x >= 0
// up to the point where it stops increasing; see FindFlat.
type Distortion []float64

// Evaluate returns the distortion polynomial at x.
func (k Distortion) Evaluate(x float64) float64 {
	x2 := x * x
	var f float64
	for i := len(k) - 1; i >= 0; i-- {
		f = (f + k[i]) * x2
	}
	return (f + 1) * x
}

// EvaluateDerivative returns the derivative of the distortion polynomial at x.
func (k Distortion) EvaluateDerivative(x float64) float64 {
	x2 := x * x
	var d float64
	for i := len(k) - 1; i >= 0; i-- {
		d = (d + k[i]*float64(2*i+3)) * x2
	}
	return d + 1
}

// Derivative implements ScalarFunction.
func (k Distortion) Derivative(x float64) float64 {
	return k.EvaluateDerivative(x)
}

// FindFlat finds the smallest positive x at which the slope of the distortion polynomial
// falls to the given value, which bounds the domain where the lens model is monotonic.
// It returns +Inf when the curve does not appear to flatten, and NaN with an error when the
// polynomial has more than MaxOrder significant coefficients or the root cannot be found.
func (k Distortion) FindFlat(slope float64) (float64, error) {
	k = Distortion(Polynomial(k).MinimizeOrder())
	n := len(k)
	if n > MaxOrder {
		return math.NaN(), errors.Wrapf(ErrOrderTooHigh, "%d distortion coefficients, at most %d supported", n, MaxOrder)
	}

	// the derivative is a polynomial in x^2 of n+1 coefficients
	var scratch [MaxOrder + 1]float64
	der := Polynomial(scratch[:n+1])
	der[0] = 1 - slope
	for i := n; i > 0; i-- {
		der[i] = k[i-1] * float64(2*i+1)
	}

	low, high, ok := bracketFirstZeroCrossing(der)
	if !ok {
		return math.Inf(1), nil
	}
	u, err := der.FindRoot(low, high, 0)
	if err != nil {
		return math.NaN(), err
	}
	return math.Sqrt(u), nil
}

// bracketFirstZeroCrossing brackets the first positive root of der, the derivative of a
// distortion polynomial written in x^2. The first negative coefficient is most likely
// responsible for the first zero crossing, so the Cauchy bounds of the polynomial truncated
// after it are tried as a bracket of the full polynomial.
func bracketFirstZeroCrossing(der Polynomial) (low, high float64, ok bool) {
	for i := 2; i <= len(der); i++ {
		if der[i-1] >= 0 {
			continue
		}
		lo, hi, err := der[:i].BoundRoots(0)
		if err != nil {
			continue
		}
		if der.Evaluate(lo)*der.Evaluate(hi) <= 0 {
			return lo, hi, true
		}
	}
	return 0, 0, false
}

// FindRoot inverts the distortion polynomial, solving d(x) = y for x in [0, maxX].
// Negative y are solved through the odd symmetry of the polynomial.
// NaN and ErrNoBracket are returned when no solution is bracketed.
func (k Distortion) FindRoot(maxX, y float64) (float64, error) {
	if y < 0 {
		x, err := k.FindRoot(maxX, -y)
		return -x, err
	}

	// distortion is usually slight, so the undistorted value is close to y
	x0, x1 := 0.0, y
	if k.Evaluate(y)-y < 0 {
		x0, x1 = y, maxX
		if !(k.Evaluate(maxX)-y >= 0) {
			return math.NaN(), errors.Wrapf(ErrNoBracket, "d(%g) < %g", maxX, y)
		}
	}
	return Solve(k, y, x0, x1)
}

// FindRootOfDistortionPolynomial solves x*(1 + cf[0]*x^2 + ...) = y for x in [0, maxX].
func FindRootOfDistortionPolynomial(cf []float64, maxX, y float64) (float64, error) {
	return Distortion(cf).FindRoot(maxX, y)
}

// integrateEven integrates c[0] + c[1]*x^2 + c[2]*x^4 + ... over [x0, x1].
func integrateEven(c []float64, x0, x1 float64) float64 {
	x02, x12 := x0*x0, x1*x1
	var a0, a1 float64
	for i := len(c) - 1; i >= 0; i-- {
		e := c[i] / float64(2*i+1)
		a0 = a0*x02 + e
		a1 = a1*x12 + e
	}
	return a1*x1 - a0*x0
}

func checkComparable(a, b Distortion, capacity int, capErr error) error {
	if len(a) != len(b) {
		return errors.Wrapf(ErrCoefficientMismatch, "%d != %d", len(a), len(b))
	}
	if len(a) > capacity {
		return errors.Wrapf(capErr, "%d distortion coefficients, at most %d supported", len(a), capacity)
	}
	return nil
}

// RISDiff returns the root of the integrated square difference between two distortion
// curves over [0, max]:
//
//	sqrt(integral_0^max (a(x) - b(x))^2 dx)
//
// The integral is evaluated in closed form.
func RISDiff(a, b Distortion, max float64) (float64, error) {
	if err := checkComparable(a, b, MaxCompareCoefficients, ErrOrderTooHigh); err != nil {
		return math.NaN(), err
	}
	n := len(a)
	if n == 0 {
		return 0, nil
	}

	// a(x) - b(x) = sum(d[i] x^(2i+3)), so its square is x^6 times d*d written in x^2
	var d [MaxCompareCoefficients]float64
	floats.SubTo(d[:n], a, b)
	var q [2*MaxCompareCoefficients + 2]float64
	MultiplyInto(d[:n], d[:n], q[3:2*n+2])
	return math.Sqrt(integrateEven(q[:2*n+2], 0, max)), nil
}

// RMSDiff returns the root mean square difference between two distortion curves over [0, max].
func RMSDiff(a, b Distortion, max float64) (float64, error) {
	ris, err := RISDiff(a, b, max)
	if err != nil {
		return math.NaN(), err
	}
	return math.Sqrt(ris * ris / max), nil
}

// MaxDiff returns the largest absolute difference between two distortion curves over
// [0, max]. The critical points of the difference are found in closed form, so at most four
// coefficients are supported.
func MaxDiff(a, b Distortion, max float64) (float64, error) {
	if err := checkComparable(a, b, MaxCompareCoefficients, ErrNotImplemented); err != nil {
		return math.NaN(), err
	}
	n := len(a)

	// the derivative of the difference is u * sum(d[i] u^i) with u = x^2
	var d [MaxCompareCoefficients]float64
	for i := 0; i < n; i++ {
		d[i] = float64(2*i+3) * (a[i] - b[i])
	}
	der := Polynomial(d[:n]).MinimizeOrder()

	var crit [3]float64
	var m int
	switch len(der) {
	case 4:
		crit, m = CubicRoots([4]float64(der))
	case 3:
		var re [2]float64
		re, _, m = QuadraticRoots([3]float64(der))
		copy(crit[:], re[:])
	case 2:
		crit[0], m = -der[0]/der[1], 1
	}

	diff := func(x float64) float64 {
		return math.Abs(a.Evaluate(x) - b.Evaluate(x))
	}
	best := diff(max)
	for _, u := range crit[:m] {
		if !(u > 0) {
			continue
		}
		if x := math.Sqrt(u); x < max {
			best = math.Max(best, diff(x))
		}
	}
	return best, nil
}
