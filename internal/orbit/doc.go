// Package orbit records a guiding-center trajectory's time series, maps it
// through a Poincaré section, classifies it as trapped or passing, and
// extracts its bounce/transit frequencies and kinetic safety factor.
package orbit
