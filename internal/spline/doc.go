// Package spline implements the interpolation kernel shared by every
// equilibrium quantity: 1D {Linear, Cubic, Steffen} and 2D {Bilinear,
// Bicubic} interpolants over rectangular, strictly monotone knot grids.
//
// Every interpolant supports value queries and first/second partial
// derivative queries. Evaluation outside the knot domain always fails with
// dexterr.ErrOutOfDomain; there is no silent extrapolation.
package spline
