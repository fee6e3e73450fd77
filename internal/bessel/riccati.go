// Package bessel evaluates the Riccati-Bessel functions used by the Mie
// coefficient recursions.
//
// With j_n and y_n the spherical Bessel functions of the first and second
// kind, the package works with
//
//	ψ_n(z) = z·j_n(z)    χ_n(z) = −z·y_n(z)
//
// for real or complex z. The half-integer order Bessel functions satisfy
// ψ_n(z) = sqrt(πz/2)·J_{n+1/2}(z), so any caller that thinks in terms of
// J_{ν} and Y_{ν} at ν = n + 0.5 can use these directly.
//
// ψ is evaluated by Miller's downward recurrence normalized against the
// closed forms of ψ_0 or ψ_1; χ by upward recurrence from χ_0 and χ_1, which
// is the stable direction for the second kind.
package bessel

import (
	"math"
	"math/cmplx"
)

// rescaleLimit bounds the magnitude of the unnormalized downward recurrence.
const rescaleLimit = 1e250

// millerSeed is the starting value of the unnormalized recurrence.
const millerSeed = 1e-30

// Riccati returns ψ_n(z) and χ_n(z) for n = 0..nmax.
//
// Both slices have length nmax+1. z must be non-zero; at z = 0 ψ vanishes
// identically and χ_n diverges for n ≥ 1.
func Riccati(nmax int, z complex128) (psi, chi []complex128) {
	if nmax < 0 {
		nmax = 0
	}
	return Psi(nmax, z), Chi(nmax, z)
}

// Psi returns ψ_0(z)..ψ_nmax(z).
func Psi(nmax int, z complex128) []complex128 {
	psi := make([]complex128, nmax+1)
	if z == 0 {
		return psi
	}

	// One extra order above nmax so ψ_1 is always available for normalization.
	vals := make([]complex128, nmax+2)
	start := millerStart(nmax, cmplx.Abs(z))

	var next complex128 // ψ_{n+1}
	cur := complex(millerSeed, 0)
	for n := start; n >= 1; n-- {
		prev := complex(float64(2*n+1), 0)/z*cur - next
		next, cur = cur, prev

		k := n - 1
		if k <= nmax+1 {
			vals[k] = cur
		}
		if magnitude(cur) > rescaleLimit {
			cur *= 1 / rescaleLimit
			next *= 1 / rescaleLimit
			for i := k; i < len(vals); i++ {
				vals[i] *= 1 / rescaleLimit
			}
		}
	}

	sin, cos := cmplx.Sin(z), cmplx.Cos(z)
	psi0 := sin
	psi1 := sin/z - cos

	// Normalize on whichever closed form is further from a zero.
	var scale complex128
	if cmplx.Abs(psi0) >= cmplx.Abs(psi1) {
		scale = psi0 / vals[0]
	} else {
		scale = psi1 / vals[1]
	}
	for i := range psi {
		psi[i] = vals[i] * scale
	}
	return psi
}

// Chi returns χ_0(z)..χ_nmax(z).
func Chi(nmax int, z complex128) []complex128 {
	chi := make([]complex128, nmax+1)
	sin, cos := cmplx.Sin(z), cmplx.Cos(z)
	chi[0] = cos
	if nmax == 0 {
		return chi
	}
	chi[1] = cos/z + sin
	for n := 1; n < nmax; n++ {
		chi[n+1] = complex(float64(2*n+1), 0)/z*chi[n] - chi[n-1]
	}
	return chi
}

// SphericalJ returns the spherical Bessel function of the first kind j_n(x).
func SphericalJ(n int, x float64) float64 {
	if x == 0 {
		if n == 0 {
			return 1
		}
		return 0
	}
	psi := Psi(n, complex(x, 0))
	return real(psi[n]) / x
}

// SphericalY returns the spherical Bessel function of the second kind y_n(x).
func SphericalY(n int, x float64) float64 {
	if x == 0 {
		return math.Inf(-1)
	}
	chi := Chi(n, complex(x, 0))
	return -real(chi[n]) / x
}

// millerStart picks the order at which the downward recurrence is seeded.
// The margin above max(nmax, |z|) follows the usual Miller rule of
// sqrt(160·N) extra orders.
func millerStart(nmax int, absZ float64) int {
	n := nmax
	if c := int(math.Ceil(absZ)); c > n {
		n = c
	}
	return n + 16 + int(math.Sqrt(160*float64(n)))
}

func magnitude(z complex128) float64 {
	return math.Max(math.Abs(real(z)), math.Abs(imag(z)))
}
