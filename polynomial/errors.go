package polynomial

import "github.com/pkg/errors"

// Every failing operation in this package returns NaN together with one of these errors, so
// callers that only look at the value keep working while newer callers can use errors.Is.
var (
	// ErrNoBracket is returned when f(x0)-y and f(x1)-y have the same sign.
	ErrNoBracket = errors.New("polynomial: interval does not bracket a root")

	// ErrNoDerivative is returned by Solve when the function cannot report its derivative.
	ErrNoDerivative = errors.New("polynomial: function has no derivative")

	// ErrTooFewCoefficients is returned when an operation needs at least a linear polynomial.
	ErrTooFewCoefficients = errors.New("polynomial: too few coefficients")

	// ErrOrderTooHigh is returned when a polynomial exceeds a fixed working capacity.
	ErrOrderTooHigh = errors.New("polynomial: order exceeds supported maximum")

	// ErrNotImplemented marks orders that have no closed-form treatment.
	ErrNotImplemented = errors.New("polynomial: order not implemented")

	// ErrCoefficientMismatch is returned when two distortion curves have different lengths.
	ErrCoefficientMismatch = errors.New("polynomial: coefficient counts differ")
)
