package stepper

import (
	"math"

	"github.com/san-kum/dexter/internal/gc"
)

// Dormand-Prince RK45 coefficients, fixed to the guiding-center 4-vector
// (θ, ψp, ρ‖, ζ) rather than a general variable-length state.
var (
	a2, a3, a4, a5 = 1.0 / 5.0, 3.0 / 10.0, 4.0 / 5.0, 8.0 / 9.0

	b21             = 1.0 / 5.0
	b31, b32        = 3.0 / 40.0, 9.0 / 40.0
	b41, b42, b43   = 44.0 / 45.0, -56.0 / 15.0, 32.0 / 9.0
	b51, b52, b53, b54 = 19372.0 / 6561.0, -25360.0 / 2187.0, 64448.0 / 6561.0, -212.0 / 729.0
	b61, b62, b63, b64, b65 = 9017.0 / 3168.0, -355.0 / 33.0, 46732.0 / 5247.0, 49.0 / 176.0, -5103.0 / 18656.0

	c1, c3, c4, c5, c6 = 35.0 / 384.0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// Vec4 is the integrated guiding-center coordinate vector (θ, ψp, ρ‖, ζ).
type Vec4 = [4]float64

func deriveVec(eq *gc.Equilibrium, mu float64, t float64, v Vec4) (Vec4, error) {
	s := gc.State{T: t, Theta: v[0], Psip: v[1], Rho: v[2], Zeta: v[3], Mu: mu}
	return gc.RHS(eq, s)
}

// rk45Stage is one embedded-RK45 trial step. It returns the accepted-order
// solution xNew, the FSAL derivative k7 at (t+dt, xNew) needed for dense
// output, and the normalized error ratio used to accept/reject and
// rescale the step.
type rk45Stage struct {
	xNew    Vec4
	k1, k7  Vec4
	errRatio float64
}

func stepDP(eq *gc.Equilibrium, mu float64, x Vec4, t, dt, relTol, absTol float64) (rk45Stage, error) {
	k1, err := deriveVec(eq, mu, t, x)
	if err != nil {
		return rk45Stage{}, err
	}

	x2 := scaleAdd(x, dt, term{b21, k1})
	k2, err := deriveVec(eq, mu, t+a2*dt, x2)
	if err != nil {
		return rk45Stage{}, err
	}

	x3 := scaleAdd(x, dt, term{b31, k1}, term{b32, k2})
	k3, err := deriveVec(eq, mu, t+a3*dt, x3)
	if err != nil {
		return rk45Stage{}, err
	}

	x4 := scaleAdd(x, dt, term{b41, k1}, term{b42, k2}, term{b43, k3})
	k4, err := deriveVec(eq, mu, t+a4*dt, x4)
	if err != nil {
		return rk45Stage{}, err
	}

	x5 := scaleAdd(x, dt, term{b51, k1}, term{b52, k2}, term{b53, k3}, term{b54, k4})
	k5, err := deriveVec(eq, mu, t+a5*dt, x5)
	if err != nil {
		return rk45Stage{}, err
	}

	x6 := scaleAdd(x, dt, term{b61, k1}, term{b62, k2}, term{b63, k3}, term{b64, k4}, term{b65, k5})
	k6, err := deriveVec(eq, mu, t+dt, x6)
	if err != nil {
		return rk45Stage{}, err
	}

	xNew := scaleAdd(x, dt, term{c1, k1}, term{c3, k3}, term{c4, k4}, term{c5, k5}, term{c6, k6})
	k7, err := deriveVec(eq, mu, t+dt, xNew)
	if err != nil {
		return rk45Stage{}, err
	}

	errMax := 0.0
	for i := 0; i < 4; i++ {
		errEst := dt * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
		scale := absTol + relTol*math.Max(math.Abs(x[i]), math.Abs(xNew[i]))
		errMax = math.Max(errMax, math.Abs(errEst)/scale)
	}

	return rk45Stage{xNew: xNew, k1: k1, k7: k7, errRatio: errMax}, nil
}

// term is one coefficient*stage-derivative contribution to a Runge-Kutta
// intermediate state.
type term struct {
	coef float64
	k    Vec4
}

func scaleAdd(x Vec4, dt float64, terms ...term) Vec4 {
	out := x
	for _, tm := range terms {
		for i := range out {
			out[i] += dt * tm.coef * tm.k[i]
		}
	}
	return out
}

// hermiteInterp builds a cubic Hermite dense-output value at fraction
// theta∈[0,1] of the step [t, t+dt], using the endpoint values and
// derivatives already computed by stepDP — no extra RHS evaluations.
func hermiteInterp(x0, x1, k0, k1 Vec4, dt, theta float64) Vec4 {
	var out Vec4
	h00 := 2*theta*theta*theta - 3*theta*theta + 1
	h10 := theta*theta*theta - 2*theta*theta + theta
	h01 := -2*theta*theta*theta + 3*theta*theta
	h11 := theta*theta*theta - theta*theta
	for i := 0; i < 4; i++ {
		out[i] = h00*x0[i] + h10*dt*k0[i] + h01*x1[i] + h11*dt*k1[i]
	}
	return out
}
