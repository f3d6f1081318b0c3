// Package equilibrium reconstructs a toroidal plasma equilibrium's
// geometry, safety factor, plasma current, magnetic field strength, and
// perturbation harmonics from tabulated data, exposing each as a small
// closed set of tagged variants (a numerical variant built on
// internal/spline plus one or two trivial analytic variants), following
// the guidance that a closed, finite set of implementations is better
// modeled as tagged variants than as an open interface hierarchy.
package equilibrium
