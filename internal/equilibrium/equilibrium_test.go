package equilibrium

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/dexter/internal/dexterr"
	"github.com/san-kum/dexter/internal/equilibrium/fixture"
	"github.com/san-kum/dexter/internal/spline"
)

func TestUnityQfactorIdentities(t *testing.T) {
	var q Qfactor = UnityQfactor{}
	for _, psip := range []float64{0.0, 0.3, 1.0} {
		qv, err := q.Q(psip)
		if err != nil || qv != 1.0 {
			t.Fatalf("Q(%v) = %v, %v; want 1.0, nil", psip, qv, err)
		}
		psi, err := q.Psi(psip)
		if err != nil || psi != psip {
			t.Fatalf("Psi(%v) = %v, %v; want %v, nil", psip, psi, err, psip)
		}
		dpsi, err := q.DPsiDPsip(psip)
		if err != nil || dpsi != 1.0 {
			t.Fatalf("DPsiDPsip(%v) = %v, %v; want 1.0, nil", psip, dpsi, err)
		}
	}
}

func TestLarCurrentIdentities(t *testing.T) {
	var c Current = LarCurrent{}
	g, _ := c.G(0.5)
	i, _ := c.I(0.5)
	dg, _ := c.DGDPsip(0.5)
	di, _ := c.DIDPsip(0.5)
	if g != 1.0 || i != 0.0 || dg != 0.0 || di != 0.0 {
		t.Fatalf("LarCurrent(0.5) = (%v, %v, %v, %v); want (1, 0, 0, 0)", g, i, dg, di)
	}
}

func makeFixture() *fixture.Loader {
	f := fixture.New()
	f.Scalars[VarBaxis] = 1.0
	f.Scalars[VarRaxis] = 1.0
	f.Scalars[VarZaxis] = 0.0
	f.Scalars[VarRgeo] = 1.0
	psip := []float64{0.0, 0.25, 0.5, 0.75, 1.0}
	f.Arrays1D[VarPsipNorm] = psip
	f.Arrays1D[VarQ] = []float64{1.0, 1.25, 1.5, 1.75, 2.0}
	f.Arrays1D[VarPsiLab] = []float64{0.0, 0.3, 0.55, 0.85, 1.1}
	f.Arrays1D[VarGNorm] = []float64{1.0, 1.0, 1.0, 1.0, 1.0}
	f.Arrays1D[VarINorm] = []float64{0.0, 0.01, 0.02, 0.03, 0.04}
	theta := []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2}
	f.Arrays1D[VarTheta] = theta
	b := make([][]float64, len(psip))
	for i, p := range psip {
		row := make([]float64, len(theta))
		for j, th := range theta {
			row[j] = 1.0 - 0.1*p*math.Cos(th)
		}
		b[i] = row
	}
	f.Arrays2D[VarBNorm] = b
	f.Harmonics[[2]int{2, 1}] = [2][]float64{
		{0.0, 0.01, 0.02, 0.03, 0.04},
		{0.1, 0.1, 0.1, 0.1, 0.1},
	}
	return f
}

func TestNumericQfactorMatchesTable(t *testing.T) {
	f := makeFixture()
	q, err := NewNumericQfactor(f, spline.Linear)
	if err != nil {
		t.Fatalf("NewNumericQfactor: %v", err)
	}
	v, err := q.Q(0.5)
	if err != nil || math.Abs(v-1.5) > 1e-9 {
		t.Fatalf("Q(0.5) = %v, %v; want 1.5", v, err)
	}
}

func TestNumericBfieldOutOfDomain(t *testing.T) {
	f := makeFixture()
	b, err := NewNumericBfield(f, spline.Bilinear)
	if err != nil {
		t.Fatalf("NewNumericBfield: %v", err)
	}
	if _, err := b.B(2.0, 0.0); !errors.Is(err, dexterr.ErrOutOfDomain) {
		t.Fatalf("B(2.0, 0) error = %v; want ErrOutOfDomain", err)
	}
}

func TestHarmonicPhaseZero(t *testing.T) {
	f := makeFixture()
	h, err := NewHarmonic(f, spline.Linear, 2, 1, PhaseZero, UnityQfactor{})
	if err != nil {
		t.Fatalf("NewHarmonic: %v", err)
	}
	v, err := h.H(0.5, 0.0, 0.0)
	if err != nil {
		t.Fatalf("H: %v", err)
	}
	// alpha(0.5) = 0.02, angle = 0, cos(0) = 1
	if math.Abs(v-0.02) > 1e-9 {
		t.Fatalf("H(0.5,0,0) = %v; want 0.02", v)
	}
}

func TestHarmonicResonanceNoSurfaceFails(t *testing.T) {
	f := makeFixture()
	// q ranges [1,2]; m/n = 10 is outside the table, so no resonance exists.
	f.Harmonics[[2]int{10, 1}] = f.Harmonics[[2]int{2, 1}]
	_, err := NewHarmonic(f, spline.Linear, 10, 1, PhaseResonance, mustQfactor(t, f))
	if err == nil {
		t.Fatal("expected NewHarmonic to fail when no resonant surface exists")
	}
	if !errors.Is(err, dexterr.ErrNoResonance) {
		var evalErr *dexterr.EvalError
		if !errors.As(err, &evalErr) || !errors.Is(evalErr, dexterr.ErrNoResonance) {
			t.Fatalf("error = %v; want to wrap ErrNoResonance", err)
		}
	}
}

func mustQfactor(t *testing.T, f *fixture.Loader) Qfactor {
	t.Helper()
	q, err := NewNumericQfactor(f, spline.Linear)
	if err != nil {
		t.Fatalf("NewNumericQfactor: %v", err)
	}
	return q
}

func TestLarBfieldSecondPartialsFinite(t *testing.T) {
	q := UnityQfactor{}
	b := NewLarBfield(q)
	psip, theta := 0.4, 0.7
	dd1, err := b.DDBDPsip2(psip, theta)
	if err != nil {
		t.Fatalf("DDBDPsip2: %v", err)
	}
	dd2, err := b.DDBDTheta2(psip, theta)
	if err != nil {
		t.Fatalf("DDBDTheta2: %v", err)
	}
	dd3, err := b.DDBDPsipDTheta(psip, theta)
	if err != nil {
		t.Fatalf("DDBDPsipDTheta: %v", err)
	}
	// UnityQfactor makes ψ=ψp, dψ/dψp≡1 and d²ψ/dψp²≡0, so the second
	// psip-derivative is exactly that of B = 1 - √(2ψp)·cos(θ).
	want1 := math.Cos(theta) / math.Pow(2*psip, 1.5)
	if math.Abs(dd1-want1) > 1e-9 {
		t.Fatalf("DDBDPsip2 = %v, want %v", dd1, want1)
	}
	want2 := math.Sqrt(2*psip) * math.Cos(theta)
	if math.Abs(dd2-want2) > 1e-9 {
		t.Fatalf("DDBDTheta2 = %v, want %v", dd2, want2)
	}
	want3 := math.Sin(theta) / math.Sqrt(2*psip)
	if math.Abs(dd3-want3) > 1e-9 {
		t.Fatalf("DDBDPsipDTheta = %v, want %v", dd3, want3)
	}
}

func TestNumericBfieldSecondPartialsFinite(t *testing.T) {
	f := makeFixture()
	b, err := NewNumericBfield(f, spline.Bicubic)
	if err != nil {
		t.Fatalf("NewNumericBfield: %v", err)
	}
	for _, method := range []func(float64, float64) (float64, error){b.DDBDPsip2, b.DDBDTheta2, b.DDBDPsipDTheta} {
		v, err := method(0.5, 1.0)
		if err != nil {
			t.Fatalf("second partial: %v", err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("second partial = %v, want finite", v)
		}
	}
}

func makeGeometryFixture() *fixture.Loader {
	f := makeFixture()
	psip := f.Arrays1D[VarPsipNorm]
	theta := f.Arrays1D[VarTheta]
	r := make([]float64, len(psip))
	psi := make([]float64, len(psip))
	for i, p := range psip {
		r[i] = math.Sqrt(p)
		psi[i] = 1.1 * p
	}
	f.Arrays1D[VarR] = r
	f.Arrays1D[VarPsiLab] = psi
	rlab := make([][]float64, len(psip))
	zlab := make([][]float64, len(psip))
	jac := make([][]float64, len(psip))
	for i, p := range psip {
		rlabRow := make([]float64, len(theta))
		zlabRow := make([]float64, len(theta))
		jacRow := make([]float64, len(theta))
		for j, th := range theta {
			rlabRow[j] = 1.0 + r[i]*math.Cos(th)
			zlabRow[j] = r[i] * math.Sin(th)
			jacRow[j] = 1.0 + 0.1*p
		}
		rlab[i] = rlabRow
		zlab[i] = zlabRow
		jac[i] = jacRow
	}
	f.Arrays2D[VarRlab] = rlab
	f.Arrays2D[VarZlab] = zlab
	f.Arrays2D[VarJacobian] = jac
	return f
}

func TestGeometryInterpolantsRoundTrip(t *testing.T) {
	f := makeGeometryFixture()
	g, err := NewGeometry(f, spline.Steffen, spline.Bicubic)
	if err != nil {
		t.Fatalf("NewGeometry: %v", err)
	}
	r, err := g.RadiusAt(0.5)
	if err != nil {
		t.Fatalf("RadiusAt: %v", err)
	}
	if want := math.Sqrt(0.5); math.Abs(r-want) > 1e-6 {
		t.Fatalf("RadiusAt(0.5) = %v, want %v", r, want)
	}
	psip, err := g.PsipAt(r)
	if err != nil {
		t.Fatalf("PsipAt: %v", err)
	}
	if math.Abs(psip-0.5) > 1e-4 {
		t.Fatalf("PsipAt(RadiusAt(0.5)) = %v, want 0.5", psip)
	}
	psi, err := g.PsiAt(0.5)
	if err != nil {
		t.Fatalf("PsiAt: %v", err)
	}
	if math.Abs(psi-0.55) > 1e-6 {
		t.Fatalf("PsiAt(0.5) = %v, want 0.55", psi)
	}
	if _, err := g.RlabAt(0.5, 0.0); err != nil {
		t.Fatalf("RlabAt: %v", err)
	}
	if _, err := g.ZlabAt(0.5, 0.0); err != nil {
		t.Fatalf("ZlabAt: %v", err)
	}
	if _, err := g.JacobianAt(0.5, 0.0); err != nil {
		t.Fatalf("JacobianAt: %v", err)
	}
}

func TestGeometryMissingArraysReportError(t *testing.T) {
	f := makeFixture()
	g, err := NewGeometry(f, spline.Steffen, spline.Bicubic)
	if err != nil {
		t.Fatalf("NewGeometry: %v", err)
	}
	if _, err := g.RadiusAt(0.5); !errors.Is(err, dexterr.ErrMissingVariable) {
		t.Fatalf("RadiusAt error = %v, want ErrMissingVariable", err)
	}
	if _, err := g.RlabAt(0.5, 0.0); !errors.Is(err, dexterr.ErrMissingVariable) {
		t.Fatalf("RlabAt error = %v, want ErrMissingVariable", err)
	}
}

func TestBuildTabulatedUsesNonConstantCurrent(t *testing.T) {
	f := makeGeometryFixture()
	eq, err := BuildTabulated(f, spline.Steffen, spline.Bicubic)
	if err != nil {
		t.Fatalf("BuildTabulated: %v", err)
	}
	dg, err := eq.Current.DGDPsip(0.5)
	if err != nil {
		t.Fatalf("DGDPsip: %v", err)
	}
	di, err := eq.Current.DIDPsip(0.5)
	if err != nil {
		t.Fatalf("DIDPsip: %v", err)
	}
	if dg != 0 {
		t.Fatalf("DGDPsip(0.5) = %v, want 0 for the flat g_norm fixture", dg)
	}
	if di <= 0 {
		t.Fatalf("DIDPsip(0.5) = %v, want > 0 for the rising i_norm fixture", di)
	}
	if _, err := eq.Geometry.RlabAt(0.5, 0.0); err != nil {
		t.Fatalf("Geometry.RlabAt: %v", err)
	}
}

func TestEmptyPerturbationIsZero(t *testing.T) {
	p := NewPerturbation()
	v, err := p.P(0.5, 1.0, 2.0)
	if err != nil || v != 0 {
		t.Fatalf("P() = %v, %v; want 0, nil", v, err)
	}
}
