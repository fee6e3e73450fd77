package mie

import (
	"math"
)

// Properties holds the scattering efficiencies of a sphere.
//
// The efficiencies are cross sections normalized by the geometric cross
// section πr² of the outer sphere.
type Properties struct {
	Qext   float64 // Extinction efficiency
	Qsca   float64 // Scattering efficiency
	Qabs   float64 // Absorption efficiency, Qext − Qsca
	Qb     float64 // Backscattering efficiency
	Asy    float64 // Asymmetry parameter <cos θ>
	Qratio float64 // Backscattering ratio Qb/Qsca
}

// Defined reports whether Asy and Qratio carry values. They are NaN for a
// sphere of zero size, where both are 0/0.
func (p Properties) Defined() bool {
	return !math.IsNaN(p.Asy) && !math.IsNaN(p.Qratio)
}

// ComputeProperties reduces the coefficients of a sphere with outer size
// parameter size into its six efficiency factors, in a single pass.
//
//	Qext = 2/y² Σ (2n+1) Re(a_n + b_n)
//	Qsca = 2/y² Σ (2n+1) (|a_n|² + |b_n|²)
//	Qb   = 1/y² |Σ (2n+1) (−1)^n (a_n − b_n)|²
//	Asy  = 4/(y² Qsca) [Σ n(n+2)/(n+1) Re(a_n a*_{n+1} + b_n b*_{n+1}) + Σ (2n+1)/(n(n+1)) Re(a_n b*_n)]
func ComputeProperties(c Coefficients, size float64) Properties {
	if size == 0 {
		return Properties{Asy: math.NaN(), Qratio: math.NaN()}
	}

	var ext, sca, asy1, asy2 float64
	var back complex128
	sign := -1.0
	nmax := c.NMax

	for k := 0; k < nmax; k++ {
		n := float64(k + 1)
		cn := 2*n + 1

		ar, ai := real(c.An[k]), imag(c.An[k])
		br, bi := real(c.Bn[k]), imag(c.Bn[k])

		ext += cn * (ar + br)
		sca += cn * (ar*ar + ai*ai + br*br + bi*bi)
		back += complex(cn*sign, 0) * (c.An[k] - c.Bn[k])

		if k+1 < nmax {
			anr, ani := real(c.An[k+1]), imag(c.An[k+1])
			bnr, bni := real(c.Bn[k+1]), imag(c.Bn[k+1])
			asy1 += n * (n + 2) / (n + 1) * (ar*anr + ai*ani + br*bnr + bi*bni)
		}
		asy2 += cn / (n * (n + 1)) * (ar*br + ai*bi)

		sign = -sign
	}

	y2 := size * size
	qext := 2 * ext / y2
	qsca := 2 * sca / y2
	qb := (real(back)*real(back) + imag(back)*imag(back)) / y2

	return Properties{
		Qext:   qext,
		Qsca:   qsca,
		Qabs:   qext - qsca,
		Qb:     qb,
		Asy:    4 / y2 * (asy1 + asy2) / qsca,
		Qratio: qb / qsca,
	}
}
