package mie

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAngularFunctions_Endpoints(t *testing.T) {
	nmax := 30
	fwdPi, fwdTau := AngularFunctions(1, nmax)
	backPi, backTau := AngularFunctions(-1, nmax)

	for k := 0; k < nmax; k++ {
		n := float64(k + 1)
		half := n * (n + 1) / 2
		sign := 1.0
		if (k+1)%2 == 0 {
			sign = -1
		}

		assert.InEpsilon(t, half, fwdPi[k], 1e-13, "π_%d(1)", k+1)
		assert.InEpsilon(t, half, fwdTau[k], 1e-13, "τ_%d(1)", k+1)
		assert.InEpsilon(t, sign*half, backPi[k], 1e-13, "π_%d(-1)", k+1)
		assert.InEpsilon(t, -sign*half, backTau[k], 1e-13, "τ_%d(-1)", k+1)
	}
}

func TestAngularFunctions_Sideways(t *testing.T) {
	// At θ = 90°: π_n(0) = 0 for even n, τ_n(0) = 0 for odd n.
	pi, tau := AngularFunctions(0, 8)
	for k := 0; k < 8; k++ {
		n := k + 1
		if n%2 == 0 {
			assert.Zero(t, pi[k], "π_%d(0)", n)
		} else {
			assert.Zero(t, tau[k], "τ_%d(0)", n)
		}
	}
	assert.Equal(t, 1.0, pi[0])
	assert.Equal(t, -1.5, pi[2])
}

func TestAngularFunctions_Short(t *testing.T) {
	pi, tau := AngularFunctions(0.3, 0)
	assert.Empty(t, pi)
	assert.Empty(t, tau)

	pi, tau = AngularFunctions(0.3, 1)
	assert.Equal(t, []float64{1}, pi)
	assert.Equal(t, []float64{0.3}, tau)
}

func TestComputeS12_InvalidAngle(t *testing.T) {
	c := mustCoefficients(t, WithM(complex(1.5, 0.5)), WithX(2.5))

	for _, u := range []float64{-1.5, 1.0000001, math.NaN(), math.Inf(1)} {
		_, _, err := ComputeS12(c, u)
		assert.Equal(t, CodeInvalidAngle, CodeOf(err), "u = %g", u)
	}

	for _, u := range []float64{-1, 0, 1} {
		_, _, err := ComputeS12(c, u)
		assert.NoError(t, err, "u = %g", u)
	}
}

func TestComputeS12_OpticalTheorem(t *testing.T) {
	cfg := AssertionConfig{RelTol: 1e-12, AbsTol: 1e-14}

	for _, tc := range referenceCases {
		t.Run(tc.name, func(t *testing.T) {
			p := mustParameters(t, tc.opts...)
			c, err := ComputeCoefficients(p)
			require.NoError(t, err)
			AssertOpticalTheorem(t, c, p.Size(), cfg)
		})
	}
}

// TestComputeS12_Backscatter relates S(−1) to the backscattering efficiency:
// Qb = 4/y² |S1(−1)|², with S1(−1) = −S2(−1).
func TestComputeS12_Backscatter(t *testing.T) {
	for _, tc := range referenceCases {
		p := mustParameters(t, tc.opts...)
		c, err := ComputeCoefficients(p)
		require.NoError(t, err)

		s1, s2, err := ComputeS12(c, -1)
		require.NoError(t, err)
		assert.LessOrEqual(t, cmplx.Abs(s1+s2), 1e-12*cmplx.Abs(s1), tc.name)

		y := p.Size()
		i1, _ := Intensities(s1, s2)
		assert.InEpsilon(t, tc.props.Qb, 4/(y*y)*i1, 1e-12, tc.name)
	}
}

func TestIntensities(t *testing.T) {
	i1, i2 := Intensities(complex(3, 4), complex(0, -2))
	assert.Equal(t, 25.0, i1)
	assert.Equal(t, 4.0, i2)
}
