// Package polynomial finds roots of real polynomials and analyzes the odd distortion
// polynomials used by fisheye and Brown lens models.
//
// Polynomials are coefficient slices starting with the constant term. A distortion
// polynomial stores only the coefficients after the implicit linear term:
//
//	d(x) = x * (1 + k[0]*x^2 + k[1]*x^4 + ... + k[n-1]*x^(2n))
//
// Nothing here allocates beyond small fixed scratch buffers or keeps state between calls, so
// every function is safe for concurrent use.
package polynomial
