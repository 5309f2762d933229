package polynomial

import "math"

// QuadraticRoots computes the roots of c[0] + c[1]*x + c[2]*x^2 and returns the number of real
// roots. With two real roots im is zero; with one the root is repeated in re; with none re and
// im hold the real and imaginary parts of the conjugate pair.
//
// The larger-magnitude root comes from q = -(c[1] + sign(c[1])*sqrt(disc))/2, the other from
// c[0]/q, which avoids cancellation when c[1]^2 dominates the discriminant.
func QuadraticRoots(c [3]float64) (re, im [2]float64, n int) {
	d := c[1]*c[1] - 4*c[2]*c[0]
	if d > 0 {
		d = math.Sqrt(d)
		if c[1] < 0 {
			d = -d
		}
		q := (-c[1] - d) * .5
		re[0] = q / c[2]
		re[1] = c[0] / q
		return re, im, 2
	}

	re[0] = -c[1] / (2 * c[2])
	re[1] = re[0]
	if d == 0 {
		return re, im, 1
	}
	im[0] = math.Sqrt(-d) / (2 * c[2])
	im[1] = -im[0]
	return re, im, 0
}

// doubleRootTolerance bounds |q^3 - r^2| relative to q^3 below which CubicRoots reports a
// repeated root.
const doubleRootTolerance = 1e-12

// CubicRoots computes the real roots of c[0] + c[1]*x + c[2]*x^2 + c[3]*x^3 and returns how
// many of re are valid. With a repeated root n is 2, re[0] is the simple root and re[1] the
// repeated one. When the cubic has a complex pair only its real root is returned; complex
// roots are not computed.
func CubicRoots(c [4]float64) (re [3]float64, n int) {
	a1 := c[2] / c[3]
	a2 := c[1] / c[3]
	a3 := c[0] / c[3]
	q := (a1*a1 - 3*a2) / 9
	r := (2*a1*a1*a1 - 9*a1*a2 + 27*a3) / 54
	q3 := q * q * q
	d := q3 - r*r
	shift := a1 / 3

	if q3 > 0 && math.Abs(d) <= doubleRootTolerance*q3 {
		qq := math.Copysign(math.Sqrt(q), r)
		re[0] = -2*qq - shift
		re[1] = qq - shift
		re[2] = re[1]
		return re, 2
	}

	if d < 0 {
		e := math.Cbrt(math.Sqrt(-d) + math.Abs(r))
		if r > 0 {
			e = -e
		}
		re[0] = e + q/e - shift
		return re, 1
	}

	if q3 == 0 {
		re[0] = -shift
		re[1], re[2] = re[0], re[0]
		return re, 1
	}

	t := math.Acos(math.Max(-1, math.Min(1, r/math.Sqrt(q3))))
	qq := math.Sqrt(q)
	re[0] = -2*qq*math.Cos(t/3) - shift
	re[1] = -2*qq*math.Cos((t+2*math.Pi)/3) - shift
	re[2] = -2*qq*math.Cos((t+4*math.Pi)/3) - shift
	return re, 3
}
