package mie

import (
	"math"

	"github.com/jmgilman/go/errors"
)

// AngularFunctions returns π_n(u) and τ_n(u) for n = 1..nmax, stored at
// index n−1, unscaled.
//
//	π_1 = 1, π_2 = 3u, π_n = (2n−1)/(n−1)·u·π_{n−1} − n/(n−1)·π_{n−2}
//	τ_n = n·u·π_n − (n+1)·π_{n−1}
func AngularFunctions(u float64, nmax int) (pi, tau []float64) {
	pi = make([]float64, nmax)
	tau = make([]float64, nmax)
	if nmax == 0 {
		return pi, tau
	}

	pi[0] = 1
	tau[0] = u
	if nmax > 1 {
		pi[1] = 3 * u
		tau[1] = 6*u*u - 3
	}
	for k := 2; k < nmax; k++ {
		n := float64(k)
		pi[k] = (2*n+1)/n*pi[k-1]*u - (n+1)/n*pi[k-2]
		tau[k] = (n+1)*u*pi[k] - (n+2)*pi[k-1]
	}
	return pi, tau
}

// ComputeS12 returns the amplitude scattering matrix elements S1 and S2 at
// scattering-angle cosine u, following Bohren and Huffman (1983).
func ComputeS12(c Coefficients, u float64) (s1, s2 complex128, err error) {
	if err = checkAngle(u); err != nil {
		return 0, 0, err
	}

	pi, tau := AngularFunctions(u, c.NMax)
	for k := 0; k < c.NMax; k++ {
		n := float64(k + 1)
		scale := (2*n + 1) / (n * (n + 1))
		p := complex(pi[k]*scale, 0)
		t := complex(tau[k]*scale, 0)

		s1 += c.An[k]*p + c.Bn[k]*t
		s2 += c.An[k]*t + c.Bn[k]*p
	}
	return s1, s2, nil
}

// Intensities returns |S1|² and |S2|², proportional to the differential
// scattering cross sections for perpendicular and parallel polarization.
func Intensities(s1, s2 complex128) (i1, i2 float64) {
	return real(s1)*real(s1) + imag(s1)*imag(s1), real(s2)*real(s2) + imag(s2)*imag(s2)
}

func checkAngle(u float64) error {
	if math.IsNaN(u) || math.Abs(u) > 1 {
		err := errors.Newf(CodeInvalidAngle, "the cosine u must be between -1 and 1, got %g", u)
		return errors.WithContext(err, "u", u)
	}
	return nil
}
