package polynomial

import (
	"math"

	"github.com/pkg/errors"
)

// Polynomial is the list of coefficients of sum(p[i] * x^i), starting with the constant term.
type Polynomial []float64

// Evaluate returns the value of the polynomial at x.
func (p Polynomial) Evaluate(x float64) float64 {
	var y float64
	for i := len(p) - 1; i >= 0; i-- {
		y = y*x + p[i]
	}
	return y
}

// EvaluateDerivative returns the value of the first derivative of the polynomial at x.
// Constant and empty polynomials have a zero derivative.
func (p Polynomial) EvaluateDerivative(x float64) float64 {
	var y float64
	for i := len(p) - 1; i > 0; i-- {
		y = y*x + p[i]*float64(i)
	}
	return y
}

// Derivative implements ScalarFunction.
func (p Polynomial) Derivative(x float64) float64 {
	return p.EvaluateDerivative(x)
}

// MinimizeOrder returns p without its high-order zero coefficients. The result shares
// storage with p.
func (p Polynomial) MinimizeOrder() Polynomial {
	n := len(p)
	for n > 0 && p[n-1] == 0 {
		n--
	}
	return p[:n]
}

// BoundRoots bounds the magnitude of every real root of p(x) = y with Cauchy's method: each
// root r satisfies low <= |r| <= high.
func (p Polynomial) BoundRoots(y float64) (low, high float64, err error) {
	n := len(p)
	if n < 2 {
		return math.NaN(), math.NaN(), errors.Wrapf(ErrTooFewCoefficients, "cannot bound roots of %d coefficients", n)
	}

	var middle float64
	for i := n - 2; i > 0; i-- {
		middle = math.Max(middle, math.Abs(p[i]))
	}
	m0 := math.Abs(p[0] - y)
	m1 := math.Abs(p[n-1])
	low = m0 / (m0 + math.Max(middle, m1))
	high = 1 + math.Max(middle, m0)/m1
	return low, high, nil
}

// FindRoot solves p(x) = y for x in the interval [x0, x1], which must bracket the solution.
// When several roots lie in the interval it is unspecified which one is found.
func (p Polynomial) FindRoot(x0, x1, y float64) (float64, error) {
	return Solve(p.MinimizeOrder(), y, x0, x1)
}

// FindRootOfPolynomial solves sum(cf[i] * x^i) = y in [x0, x1].
func FindRootOfPolynomial(cf []float64, x0, x1, y float64) (float64, error) {
	return Polynomial(cf).FindRoot(x0, x1, y)
}

// Multiply returns the product p*q, which has len(p)+len(q)-1 coefficients.
// The product with an empty polynomial is empty.
func Multiply(p, q Polynomial) Polynomial {
	if len(p) == 0 || len(q) == 0 {
		return Polynomial{}
	}
	r := make(Polynomial, len(p)+len(q)-1)
	MultiplyInto(p, q, r)
	return r
}

// MultiplyInto writes the product p*q into r, overwriting every element. r must hold exactly
// len(p)+len(q)-1 coefficients and must not overlap p or q.
func MultiplyInto(p, q, r []float64) {
	if len(r) != len(p)+len(q)-1 {
		panic(errors.Errorf("product buffer holds %d coefficients, need %d", len(r), len(p)+len(q)-1))
	}
	for i := range r {
		r[i] = 0
	}
	for ip, pc := range p {
		for iq, qc := range q {
			r[ip+iq] += pc * qc
		}
	}
}
