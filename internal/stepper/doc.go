// Package stepper drives a gc.State through time with an embedded
// Runge-Kutta method, adapting its step size to either a local error
// estimate or the drift of the conserved Hamiltonian, and reports zero
// crossings of an arbitrary scalar event function via bisection.
package stepper
