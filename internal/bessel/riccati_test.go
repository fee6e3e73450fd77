package bessel

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func relErr(got, want float64) float64 {
	if want == 0 {
		return math.Abs(got)
	}
	return math.Abs(got-want) / math.Abs(want)
}

// TestSphericalJ_ClosedForms compares against the elementary expressions of j_0..j_3.
func TestSphericalJ_ClosedForms(t *testing.T) {
	closed := []func(x float64) float64{
		func(x float64) float64 { return math.Sin(x) / x },
		func(x float64) float64 { return math.Sin(x)/(x*x) - math.Cos(x)/x },
		func(x float64) float64 {
			return (3/(x*x)-1)*math.Sin(x)/x - 3*math.Cos(x)/(x*x)
		},
		func(x float64) float64 {
			return (15/(x*x*x)-6/x)*math.Sin(x)/x - (15/(x*x)-1)*math.Cos(x)/x
		},
	}

	for _, x := range []float64{1, 2.5, math.Pi, 7.3, 20} {
		for n, f := range closed {
			got := SphericalJ(n, x)
			want := f(x)
			// Absolute floor near the zeros of j_n, where the closed form itself cancels.
			tol := 1e-12 * math.Max(math.Abs(want), 1e-3)
			assert.LessOrEqualf(t, math.Abs(got-want), tol, "j_%d(%g) = %g, want %g", n, x, got, want)
		}
	}

	t.Logf("✓ j_0..j_3 match closed forms")
}

func TestSphericalY_ClosedForms(t *testing.T) {
	for _, x := range []float64{0.5, 1, 2.5, 9} {
		y0 := -math.Cos(x) / x
		y1 := -math.Cos(x)/(x*x) - math.Sin(x)/x
		assert.InDelta(t, y0, SphericalY(0, x), 1e-15*math.Abs(y0)+1e-300)
		assert.Less(t, relErr(SphericalY(1, x), y1), 1e-14)
	}
}

func TestSphericalJ_AtZero(t *testing.T) {
	assert.Equal(t, 1.0, SphericalJ(0, 0))
	assert.Equal(t, 0.0, SphericalJ(4, 0))
	assert.True(t, math.IsInf(SphericalY(2, 0), -1))
}

// TestRiccati_HighOrderAccuracy checks orders far above the argument, where
// upward recurrence of ψ would have lost all significance.
func TestRiccati_HighOrderAccuracy(t *testing.T) {
	// Series value of j_3(0.5); the closed form cancels badly this far below the order.
	assert.Less(t, relErr(SphericalJ(3, 0.5), 0.0011740354438675574), 1e-13)

	psi := Psi(10, complex(2.5, 0))
	assert.Less(t, relErr(real(psi[10])/2.5, 6.050436229638541e-07), 1e-12)
}

// TestRiccati_Wronskian verifies ψ_n·χ_{n−1} − ψ_{n−1}·χ_n = −1 for real and
// complex arguments.
func TestRiccati_Wronskian(t *testing.T) {
	args := []complex128{
		complex(0.1, 0),
		complex(2.5, 0),
		complex(30, 0),
		complex(1.8, 0.3),
		complex(6, 1),
		complex(12.5, 2.5),
	}

	for _, z := range args {
		nmax := int(math.Round(2+cmplx.Abs(z)+4*math.Cbrt(cmplx.Abs(z)))) + 4
		psi, chi := Riccati(nmax, z)
		require.Len(t, psi, nmax+1)
		require.Len(t, chi, nmax+1)

		for n := 1; n <= nmax; n++ {
			w := psi[n]*chi[n-1] - psi[n-1]*chi[n]
			assert.Lessf(t, cmplx.Abs(w+1), 1e-12, "z=%v n=%d wronskian=%v", z, n, w)
		}
	}

	t.Logf("✓ Wronskian holds for %d arguments", len(args))
}

func TestRiccati_LowOrders(t *testing.T) {
	z := complex(1.8, 0.3)
	psi, chi := Riccati(1, z)

	assert.Less(t, cmplx.Abs(psi[0]-cmplx.Sin(z)), 1e-15)
	assert.Less(t, cmplx.Abs(psi[1]-(cmplx.Sin(z)/z-cmplx.Cos(z))), 1e-14)
	assert.Equal(t, cmplx.Cos(z), chi[0])
	assert.Equal(t, cmplx.Cos(z)/z+cmplx.Sin(z), chi[1])
}

func TestRiccati_ZeroOrder(t *testing.T) {
	psi, chi := Riccati(0, complex(1, 0))
	require.Len(t, psi, 1)
	require.Len(t, chi, 1)
	assert.InDelta(t, math.Sin(1), real(psi[0]), 1e-15)
	assert.Equal(t, math.Cos(1), real(chi[0]))
}

func TestPsi_LargeArgumentRescaling(t *testing.T) {
	// Orders far above x drive the unnormalized recurrence past rescaleLimit.
	psi := Psi(300, complex(1, 0))
	for n, v := range psi {
		require.Falsef(t, cmplx.IsNaN(v) || cmplx.IsInf(v), "ψ_%d is %v", n, v)
	}
	assert.InDelta(t, math.Sin(1)-math.Cos(1), real(psi[1]), 1e-15)
}
