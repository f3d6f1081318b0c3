package orbit

import (
	"math"

	"github.com/san-kum/dexter/internal/gc"
	"github.com/san-kum/dexter/internal/stepper"
)

// Section names which guiding-center angle a Poincaré map is taken at a
// fixed value of.
type Section int

const (
	ConstTheta Section = iota
	ConstZeta
)

// Direction restricts which way the section variable must be moving at a
// crossing for it to count. The zero value, Increasing, matches the
// section's default sense (x increasing through α).
type Direction int

const (
	Increasing Direction = iota
	Decreasing
	Either
)

// MappingParameters configures a Poincaré map: the section variable, the
// section angle α (in radians, taken modulo 2π), which crossing direction
// to count, how many intersections to collect, and the accuracy check on
// successive intersection spacing.
type MappingParameters struct {
	Section       Section
	Alpha         float64
	Direction     Direction
	Intersections int
	MapThreshold  float64 // max |Δ(section var) - 2π| tolerated between crossings
}

// sectionValue extracts the raw (unwrapped) section-variable coordinate
// from a stepper.Vec4, which is never itself reduced modulo 2π — only
// field evaluations wrap it, so crossing detection here never has to
// handle the wraparound pole the original modified-system trick guarded
// against.
func (p MappingParameters) sectionValue(v stepper.Vec4) float64 {
	if p.Section == ConstTheta {
		return v[0]
	}
	return v[3]
}

// level returns which 2π-band of the section variable v currently sits in,
// relative to Alpha.
func (p MappingParameters) level(v float64) float64 {
	return math.Floor((v - p.Alpha) / (2 * math.Pi))
}

// Intersection is one exact Poincaré-section crossing.
type Intersection struct {
	T      float64
	State  stepper.Vec4
	Sample float64 // raw section-variable value at the crossing, for accuracy checking
}

// MapResult is the outcome of tracing a trajectory through a Poincaré
// section.
type MapResult struct {
	Points []Intersection
	Status stepper.Status
}

// Map integrates from (t0, x0) collecting exact crossings of the section
// defined by params, refining each crossing to machine precision via the
// stepper's dense output and bisection. It reports the accuracy of the
// mapping through MapResult but does not fail on its own — a caller
// checking Testable Property "map accuracy" compares consecutive Sample
// spacings against params.MapThreshold.
func Map(s *stepper.Stepper, t0 float64, x0 stepper.Vec4, params MappingParameters) MapResult {
	var points []Intersection
	t, x, dt := t0, x0, s.Cfg.FirstStep
	prevLevel := params.level(params.sectionValue(x))

	for step := 0; step < s.Cfg.MaxSteps && len(points) < params.Intersections; step++ {
		res, ok, err := s.Step(t, x, dt)
		if err != nil {
			return MapResult{Points: points, Status: stepper.EscapedDomain}
		}
		if !ok {
			return MapResult{Points: points, Status: stepper.StepTooSmall}
		}

		newLevel := params.level(params.sectionValue(res.X1))
		if newLevel != prevLevel {
			increasing := newLevel > prevLevel
			matches := params.Direction == Either ||
				(params.Direction == Increasing && increasing) ||
				(params.Direction == Decreasing && !increasing)
			// The boundary crossed is the one between the two bands; a step
			// that starts exactly on it is leaving the section, not crossing it.
			target := params.Alpha + math.Max(newLevel, prevLevel)*2*math.Pi
			if matches && params.sectionValue(res.X0) != target {
				event := func(_ float64, v stepper.Vec4) float64 {
					return params.sectionValue(v) - target
				}
				tEv, xEv := stepper.FindEvent(event, res.Dense, res.T0, res.T1, 1e-13, 80)
				points = append(points, Intersection{T: tEv, State: xEv, Sample: params.sectionValue(xEv)})
			}
		}
		prevLevel = newLevel
		t, x, dt = res.T1, res.X1, res.DtNext
	}

	status := stepper.Completed
	if len(points) < params.Intersections {
		status = stepper.StepLimit
	}
	return MapResult{Points: points, Status: status}
}

// CheckAccuracy reports the largest deviation, across consecutive
// intersections, of the section variable's spacing from 2π. A well-formed
// map keeps this well under MapThreshold; a large value usually means the
// step size was too coarse near the section.
func CheckAccuracy(points []Intersection) float64 {
	worst := 0.0
	for i := 1; i < len(points); i++ {
		d := math.Abs(points[i].Sample-points[i-1].Sample) - 2*math.Pi
		worst = math.Max(worst, math.Abs(d))
	}
	return worst
}

// mustState rebuilds a gc.State from a mapped Vec4 and the particle's
// constant magnetic moment.
func mustState(t float64, v stepper.Vec4, mu float64) gc.State {
	return gc.State{T: t, Theta: v[0], Psip: v[1], Rho: v[2], Zeta: v[3], Mu: mu}
}
