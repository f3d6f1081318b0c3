package stepper

import (
	"errors"
	"math"

	"github.com/san-kum/dexter/internal/dexterr"
	"github.com/san-kum/dexter/internal/gc"
)

// Stepper drives one particle's guiding-center trajectory forward in time
// using an embedded Dormand-Prince RK45 step, rescaled per Config.Method.
type Stepper struct {
	Eq  *gc.Equilibrium
	Mu  float64
	Cfg Config
}

// New builds a Stepper bound to one equilibrium, one particle's constant
// magnetic moment, and one stepping configuration.
func New(eq *gc.Equilibrium, mu float64, cfg Config) *Stepper {
	return &Stepper{Eq: eq, Mu: mu, Cfg: cfg}
}

// StepResult is one accepted step, carrying everything needed to build a
// dense-output interpolant on [T0, T1] without further RHS evaluations.
type StepResult struct {
	T0, T1 float64
	X0, X1 Vec4
	K0, K1 Vec4
	DtNext float64
}

// Dense returns the interpolated state at time t within [r.T0, r.T1].
func (r StepResult) Dense(t float64) Vec4 {
	dt := r.T1 - r.T0
	if dt == 0 {
		return r.X0
	}
	frac := (t - r.T0) / dt
	return hermiteInterp(r.X0, r.X1, r.K0, r.K1, dt, frac)
}

// Step advances from (t, x) using trial size dt, internally rejecting and
// rescaling until a step is accepted, or the step size underflows
// Cfg.MinStep (reported via ok=false).
func (s *Stepper) Step(t float64, x Vec4, dt float64) (res StepResult, ok bool, err error) {
	for {
		if math.Abs(dt) < s.Cfg.MinStep {
			return StepResult{}, false, nil
		}

		switch s.Cfg.Method {
		case Fixed:
			stage, derr := stepDP(s.Eq, s.Mu, x, t, dt, s.Cfg.ErrorRelTol, s.Cfg.ErrorAbsTol)
			if derr != nil {
				return StepResult{}, false, derr
			}
			return StepResult{T0: t, T1: t + dt, X0: x, X1: stage.xNew, K0: stage.k1, K1: stage.k7, DtNext: dt}, true, nil

		case ErrorAdaptive:
			stage, derr := stepDP(s.Eq, s.Mu, x, t, dt, s.Cfg.ErrorRelTol, s.Cfg.ErrorAbsTol)
			if derr != nil {
				return StepResult{}, false, derr
			}
			dtNext := rescale(dt, stage.errRatio, s.Cfg.SafetyFactor)
			if stage.errRatio > 1 {
				dt = dtNext
				continue
			}
			return StepResult{T0: t, T1: t + dt, X0: x, X1: stage.xNew, K0: stage.k1, K1: stage.k7, DtNext: dtNext}, true, nil

		case EnergyAdaptive:
			stage, derr := stepDP(s.Eq, s.Mu, x, t, dt, s.Cfg.ErrorRelTol, s.Cfg.ErrorAbsTol)
			if derr != nil {
				return StepResult{}, false, derr
			}
			e0, eerr := gc.Energy(s.Eq, gc.State{T: t, Theta: x[0], Psip: x[1], Rho: x[2], Zeta: x[3], Mu: s.Mu})
			if eerr != nil {
				return StepResult{}, false, eerr
			}
			e1, eerr := gc.Energy(s.Eq, gc.State{T: t + dt, Theta: stage.xNew[0], Psip: stage.xNew[1], Rho: stage.xNew[2], Zeta: stage.xNew[3], Mu: s.Mu})
			if eerr != nil {
				return StepResult{}, false, eerr
			}
			scale := s.Cfg.EnergyAbsTol + s.Cfg.EnergyRelTol*math.Max(math.Abs(e0), math.Abs(e1))
			errRatio := math.Abs(e1-e0) / scale
			dtNext := rescale(dt, errRatio, s.Cfg.SafetyFactor)
			if errRatio > 1 {
				dt = dtNext
				continue
			}
			return StepResult{T0: t, T1: t + dt, X0: x, X1: stage.xNew, K0: stage.k1, K1: stage.k7, DtNext: dtNext}, true, nil
		}
	}
}

func rescale(dt, errRatio, safety float64) float64 {
	const minScale, maxScale = 0.2, 10.0
	if errRatio <= 0 {
		return dt * maxScale
	}
	if errRatio > 1 {
		return dt * math.Max(minScale, safety*math.Pow(errRatio, -0.25))
	}
	return dt * math.Min(maxScale, safety*math.Pow(errRatio, -0.2))
}

// Run advances the trajectory from (t0, x0) until MaxSteps is exhausted,
// the domain is escaped (RHS returns dexterr.ErrOutOfDomain), the step
// underflows, or event (if non-nil) crosses zero — whichever comes first.
// onAccept is called once per accepted step, before the event check, so a
// caller recording an Evolution sees every accepted state even when the
// step that follows triggers the event.
func (s *Stepper) Run(t0 float64, x0 Vec4, event EventFunc, onAccept func(StepResult)) (finalT float64, finalX Vec4, status Status, err error) {
	t, x, dt := t0, x0, s.Cfg.FirstStep
	var prevEvent float64
	haveEvent := event != nil
	if haveEvent {
		prevEvent = event(t, x)
	}

	for step := 0; step < s.Cfg.MaxSteps; step++ {
		res, ok, serr := s.Step(t, x, dt)
		if serr != nil {
			if errors.Is(serr, dexterr.ErrOutOfDomain) {
				return t, x, EscapedDomain, nil
			}
			return t, x, Completed, serr
		}
		if !ok {
			return t, x, StepTooSmall, nil
		}

		if onAccept != nil {
			onAccept(res)
		}

		if haveEvent {
			curEvent := event(res.T1, res.X1)
			if !sameSign(prevEvent, curEvent) {
				tEv, xEv := FindEvent(event, res.Dense, res.T0, res.T1, 1e-13, 80)
				return tEv, xEv, EventReached, nil
			}
			prevEvent = curEvent
		}

		t, x, dt = res.T1, res.X1, res.DtNext
	}
	return t, x, StepLimit, nil
}
