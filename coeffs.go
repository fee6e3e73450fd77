package mie

import (
	"math"
	"math/cmplx"

	"github.com/alexshd/mie/internal/bessel"
	"github.com/jmgilman/go/errors"
)

// recursionMargin is the number of orders the logarithmic-derivative
// recursion starts above max(nmax, |z|).
const recursionMargin = 16

// Coefficients holds the Mie expansion coefficients a_n, b_n for n = 1..NMax.
// An[k] and Bn[k] store order n = k+1.
type Coefficients struct {
	An   []complex128
	Bn   []complex128
	NMax int
}

// Variant identifies the recursion used for a parameter set.
type Variant int

const (
	// VariantHomogeneous is the single-layer recursion at (eps, mu, x).
	VariantHomogeneous Variant = iota

	// VariantUniformShell is a coated sphere indistinguishable from a
	// homogeneous one (x == y or eps == eps2), evaluated at (eps2, mu, y).
	VariantUniformShell

	// VariantEmptyCore is a coated sphere with x == 0, evaluated at (eps2, mu, y).
	VariantEmptyCore

	// VariantCoated is the full two-layer recursion.
	VariantCoated
)

func (v Variant) String() string {
	switch v {
	case VariantHomogeneous:
		return "homogeneous"
	case VariantUniformShell:
		return "uniform-shell"
	case VariantEmptyCore:
		return "empty-core"
	case VariantCoated:
		return "coated"
	default:
		return "unknown"
	}
}

// NMax returns the series truncation order for outer size parameter size:
// round(2 + size + 4·size^(1/3)).
func NMax(size float64) int {
	return int(math.Round(2 + size + 4*math.Cbrt(size)))
}

// SelectVariant picks the recursion for a validated parameter set.
func SelectVariant(p Parameters) Variant {
	if !p.hasY {
		return VariantHomogeneous
	}
	if p.x == p.y || p.eps == p.eps2 {
		return VariantUniformShell
	}
	if p.x == 0 {
		return VariantEmptyCore
	}
	return VariantCoated
}

// ComputeCoefficients evaluates a_n and b_n for a parameter set that has
// already passed Validate. Missing x or eps is reported as an internal error:
// it means the caller skipped validation.
func ComputeCoefficients(p Parameters) (Coefficients, error) {
	if !p.hasX || !p.hasEps {
		return Coefficients{}, errors.New(errors.CodeInternal,
			"coefficients requested for parameters without x or eps")
	}

	switch SelectVariant(p) {
	case VariantUniformShell, VariantEmptyCore:
		return singleLayer(p.eps2, p.Mu(), p.y), nil
	case VariantCoated:
		return coatedLayer(p.eps, p.eps2, p.x, p.y), nil
	default:
		return singleLayer(p.eps, p.Mu(), p.x), nil
	}
}

// singleLayer computes the coefficients of a homogeneous sphere.
func singleLayer(eps, mu complex128, x float64) Coefficients {
	nmax := NMax(x)
	if x == 0 {
		return zeroCoefficients(nmax)
	}

	z := cmplx.Sqrt(eps*mu) * complex(x, 0)
	m := cmplx.Sqrt(eps / mu)
	nmx := int(math.Round(math.Max(float64(nmax), cmplx.Abs(z)) + recursionMargin))

	d := logDerivative(z, nmx, nmax)
	psi, chi := bessel.Riccati(nmax, complex(x, 0))

	c := Coefficients{
		An:   make([]complex128, nmax),
		Bn:   make([]complex128, nmax),
		NMax: nmax,
	}
	for k := 0; k < nmax; k++ {
		n := k + 1
		nx := complex(float64(n)/x, 0)
		xi := psi[n] - 1i*chi[n]
		xi1 := psi[n-1] - 1i*chi[n-1]

		da := d[k]/m + nx
		db := d[k]*m + nx
		c.An[k] = (da*psi[n] - psi[n-1]) / (da*xi - xi1)
		c.Bn[k] = (db*psi[n] - psi[n-1]) / (db*xi - xi1)
	}
	return c
}

// coatedLayer computes the coefficients of a core of permittivity eps1 and
// size x inside a shell of permittivity eps2 and size y.
func coatedLayer(eps1, eps2 complex128, x, y float64) Coefficients {
	m1 := cmplx.Sqrt(eps1)
	m2 := cmplx.Sqrt(eps2)
	m := m2 / m1
	u := m1 * complex(x, 0)
	v := m2 * complex(x, 0)
	w := m2 * complex(y, 0)

	nmax := NMax(y)
	mx := math.Max(cmplx.Abs(m1*complex(y, 0)), cmplx.Abs(w))
	nmx := int(math.Round(math.Max(float64(nmax), mx) + recursionMargin))

	du := logDerivative(u, nmx, nmax)
	dv := logDerivative(v, nmx, nmax)
	dw := logDerivative(w, nmx, nmax)

	pv, chv := bessel.Riccati(nmax, v)
	pw, chw := bessel.Riccati(nmax, w)
	py, chy := bessel.Riccati(nmax, complex(y, 0))

	c := Coefficients{
		An:   make([]complex128, nmax),
		Bn:   make([]complex128, nmax),
		NMax: nmax,
	}
	for k := 0; k < nmax; k++ {
		n := k + 1

		// Match the fields at the core/shell interface, then fold the
		// result into an effective logarithmic derivative at the outer surface.
		uu := m*du[k] - dv[k]
		vv := du[k]/m - dv[k]
		fv := pv[n] / chv[n]
		ku1 := uu * fv / pw[n]
		kv1 := vv * fv / pw[n]
		pt := pw[n] - chw[n]*fv
		prat := pw[n] / pv[n] / chv[n]
		ku2 := uu*pt + prat
		kv2 := vv*pt + prat
		dns := ku1/ku2 + dw[k]
		gns := kv1/kv2 + dw[k]

		ny := complex(float64(n)/y, 0)
		a1 := dns/m2 + ny
		b1 := m2*gns + ny
		xi := py[n] - 1i*chy[n]
		xi1 := py[n-1] - 1i*chy[n-1]

		c.An[k] = (py[n]*a1 - py[n-1]) / (xi*a1 - xi1)
		c.Bn[k] = (py[n]*b1 - py[n-1]) / (xi*b1 - xi1)
	}
	return c
}

// logDerivative returns D_1(z)..D_nmax(z), the logarithmic derivative of
// ψ_n, by downward recursion from a zero seed at order nmx.
// The working buffer lives only for the duration of the call.
func logDerivative(z complex128, nmx, nmax int) []complex128 {
	if nmx < nmax+1 {
		nmx = nmax + 1
	}
	buf := make([]complex128, nmx)
	for j := nmx - 1; j > 0; j-- {
		r := complex(float64(j+1), 0) / z
		buf[j-1] = r - 1/(buf[j]+r)
	}
	return buf[:nmax]
}

func zeroCoefficients(nmax int) Coefficients {
	return Coefficients{
		An:   make([]complex128, nmax),
		Bn:   make([]complex128, nmax),
		NMax: nmax,
	}
}

// clone returns a deep copy so callers cannot alias cached arrays.
func (c Coefficients) clone() Coefficients {
	out := Coefficients{
		An:   make([]complex128, len(c.An)),
		Bn:   make([]complex128, len(c.Bn)),
		NMax: c.NMax,
	}
	copy(out.An, c.An)
	copy(out.Bn, c.Bn)
	return out
}
