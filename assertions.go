package mie

import (
	"math"
	"math/cmplx"
	"testing"
)

// AssertionConfig contains tolerances for the physical self-checks.
type AssertionConfig struct {
	// Relative tolerance for comparing efficiencies
	RelTol float64

	// Absolute floor below which values count as zero
	AbsTol float64
}

// DefaultAssertionConfig returns tolerances of a few hundred ulps.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		RelTol: 1e3 * 2.220446049250313e-16,
		AbsTol: 1e-14,
	}
}

func (cfg AssertionConfig) close(got, want float64) bool {
	diff := math.Abs(got - want)
	return diff <= cfg.AbsTol || diff <= cfg.RelTol*math.Abs(want)
}

// AssertPropertiesClose verifies every efficiency of got against want within
// the relative tolerance.
func AssertPropertiesClose(t *testing.T, got, want Properties, cfg AssertionConfig) {
	t.Helper()

	fields := []struct {
		name      string
		got, want float64
	}{
		{"qext", got.Qext, want.Qext},
		{"qsca", got.Qsca, want.Qsca},
		{"qabs", got.Qabs, want.Qabs},
		{"qb", got.Qb, want.Qb},
		{"asy", got.Asy, want.Asy},
		{"qratio", got.Qratio, want.Qratio},
	}
	for _, f := range fields {
		if math.Abs(f.got-f.want) > cfg.RelTol*math.Abs(f.want) {
			t.Errorf("%s = %.17g, want %.17g (relative error %.3g > %.3g)",
				f.name, f.got, f.want, math.Abs(f.got-f.want)/math.Abs(f.want), cfg.RelTol)
		}
	}
}

// AssertAmplitudeClose verifies a complex amplitude within the relative tolerance.
func AssertAmplitudeClose(t *testing.T, name string, got, want complex128, cfg AssertionConfig) {
	t.Helper()

	if rel := cmplx.Abs(got-want) / cmplx.Abs(want); rel > cfg.RelTol {
		t.Errorf("%s = %v, want %v (relative error %.3g > %.3g)", name, got, want, rel, cfg.RelTol)
	}
}

// AssertEnergyBalance verifies Qabs = Qext − Qsca, non-negative extinction
// and scattering, and Qratio = Qb/Qsca.
//
// For absorbing media (Im eps > 0) Qabs must also be non-negative.
func AssertEnergyBalance(t *testing.T, p Properties, cfg AssertionConfig) {
	t.Helper()

	if p.Qext < -cfg.AbsTol {
		t.Errorf("negative extinction: qext = %g", p.Qext)
	}
	if p.Qsca < -cfg.AbsTol {
		t.Errorf("negative scattering: qsca = %g", p.Qsca)
	}
	if !cfg.close(p.Qabs, p.Qext-p.Qsca) {
		t.Errorf("qabs = %.17g, but qext − qsca = %.17g", p.Qabs, p.Qext-p.Qsca)
	}
	if p.Qsca > 0 && !cfg.close(p.Qratio, p.Qb/p.Qsca) {
		t.Errorf("qratio = %.17g, but qb/qsca = %.17g", p.Qratio, p.Qb/p.Qsca)
	}
	if p.Qsca > 0 && (p.Asy < -1-cfg.AbsTol || p.Asy > 1+cfg.AbsTol) {
		t.Errorf("asymmetry parameter outside [-1, 1]: %g", p.Asy)
	}
}

// AssertNonAbsorbing verifies Qabs ≈ 0, as required for real eps and mu.
func AssertNonAbsorbing(t *testing.T, p Properties, tol float64) {
	t.Helper()

	if math.Abs(p.Qabs) > tol*math.Max(1, p.Qext) {
		t.Errorf("non-absorbing sphere absorbs: qabs = %g (qext %g)", p.Qabs, p.Qext)
	}
}

// AssertOpticalTheorem verifies the forward-scattering identities
// S1(1) = S2(1) and Qext = 4/y² Re S(1).
func AssertOpticalTheorem(t *testing.T, c Coefficients, size float64, cfg AssertionConfig) {
	t.Helper()

	s1, s2, err := ComputeS12(c, 1)
	if err != nil {
		t.Fatalf("S12(1) failed: %v", err)
	}
	if cmplx.Abs(s1-s2) > cfg.RelTol*math.Max(cmplx.Abs(s1), 1) {
		t.Errorf("forward amplitudes differ: S1(1) = %v, S2(1) = %v", s1, s2)
	}

	p := ComputeProperties(c, size)
	fromTheorem := 4 / (size * size) * real(s1)
	if !cfg.close(fromTheorem, p.Qext) {
		t.Errorf("optical theorem: 4/y² Re S(1) = %.17g, qext = %.17g", fromTheorem, p.Qext)
	}
}
