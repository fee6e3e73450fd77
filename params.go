package mie

import (
	"math"
	"math/cmplx"

	"github.com/jmgilman/go/errors"
)

// Parameters holds the physical description of a sphere.
//
// The zero value describes nothing yet: x and eps must be set before any
// query. mu defaults to 1. Setting y (the shell size parameter) and eps2
// (the shell permittivity) together switches to a coated sphere whose core is
// described by x and eps.
//
// Parameters is a value type; copies are independent.
type Parameters struct {
	eps     complex128
	hasEps  bool
	mu      complex128
	hasMu   bool
	x       float64
	hasX    bool
	y       float64
	hasY    bool
	eps2    complex128
	hasEps2 bool
}

// Signature is the exact-equality cache key of a parameter set.
// Optional fields carry a presence flag so an unset y never collides with y = 0.
type Signature struct {
	Eps     complex128
	Mu      complex128
	X       float64
	Y       float64
	HasY    bool
	Eps2    complex128
	HasEps2 bool
}

// Eps returns the (core) relative permittivity and whether it was set.
func (p Parameters) Eps() (complex128, bool) { return p.eps, p.hasEps }

// Mu returns the relative permeability, 1 unless set.
func (p Parameters) Mu() complex128 {
	if !p.hasMu {
		return 1
	}
	return p.mu
}

// X returns the (core) size parameter and whether it was set.
func (p Parameters) X() (float64, bool) { return p.x, p.hasX }

// Y returns the shell size parameter and whether it was set.
func (p Parameters) Y() (float64, bool) { return p.y, p.hasY }

// Eps2 returns the shell permittivity and whether it was set.
func (p Parameters) Eps2() (complex128, bool) { return p.eps2, p.hasEps2 }

// M returns the refractive index sqrt(eps/mu), derived on demand.
func (p Parameters) M() (complex128, bool) {
	if !p.hasEps {
		return 0, false
	}
	return cmplx.Sqrt(p.eps / p.Mu()), true
}

// M2 returns the shell refractive index sqrt(eps2), derived on demand.
func (p Parameters) M2() (complex128, bool) {
	if !p.hasEps2 {
		return 0, false
	}
	return cmplx.Sqrt(p.eps2), true
}

// Coated reports whether the sphere has a shell.
func (p Parameters) Coated() bool { return p.hasY }

// Size returns the outer size parameter: y for coated spheres, x otherwise.
func (p Parameters) Size() float64 {
	if p.hasY {
		return p.y
	}
	return p.x
}

// SetEps sets the (core) permittivity.
func (p *Parameters) SetEps(eps complex128) error {
	if cmplx.IsNaN(eps) {
		return invalidParameter("eps", eps, "eps must not be NaN")
	}
	p.eps, p.hasEps = eps, true
	return nil
}

// SetMu sets the relative permeability.
func (p *Parameters) SetMu(mu complex128) error {
	if cmplx.IsNaN(mu) {
		return invalidParameter("mu", mu, "mu must not be NaN")
	}
	p.mu, p.hasMu = mu, true
	return nil
}

// SetEps2 sets the shell permittivity.
func (p *Parameters) SetEps2(eps2 complex128) error {
	if cmplx.IsNaN(eps2) {
		return invalidParameter("eps2", eps2, "eps2 must not be NaN")
	}
	p.eps2, p.hasEps2 = eps2, true
	return nil
}

// SetM sets the refractive index: eps = m², mu = 1.
func (p *Parameters) SetM(m complex128) error {
	if cmplx.IsNaN(m) {
		return invalidParameter("m", m, "m must not be NaN")
	}
	p.mu, p.hasMu = 1, true
	p.eps, p.hasEps = m*m, true
	return nil
}

// SetM2 sets the shell refractive index: eps2 = m2².
func (p *Parameters) SetM2(m2 complex128) error {
	if cmplx.IsNaN(m2) {
		return invalidParameter("m2", m2, "m2 must not be NaN")
	}
	p.eps2, p.hasEps2 = m2*m2, true
	return nil
}

// SetX sets the size parameter (of the core, for coated spheres).
// x must be non-negative.
func (p *Parameters) SetX(x float64) error {
	if math.IsNaN(x) || x < 0 {
		return invalidParameter("x", x, "the size x cannot be smaller than 0, got %g", x)
	}
	p.x, p.hasX = x, true
	return nil
}

// SetY sets the shell size parameter. y must not be smaller than the
// current x; y == x is the degenerate shell-equals-core case.
func (p *Parameters) SetY(y float64) error {
	if math.IsNaN(y) {
		return invalidParameter("y", y, "y must not be NaN")
	}
	if p.hasX && y < p.x {
		return invalidParameter("y", y, "the size y cannot be smaller than x (y=%g, x=%g)", y, p.x)
	}
	p.y, p.hasY = y, true
	return nil
}

// Validate checks the cross-field constraints that can only be judged once
// the whole parameter set is known.
func (p Parameters) Validate() error {
	if !p.hasX || !p.hasEps {
		return errors.New(CodeMissingParameter, "must specify x and either eps or m")
	}
	if p.hasY != p.hasEps2 {
		return errors.New(CodeInconsistentLayering, "must specify both y and m2 for coated particles")
	}
	if p.hasY && p.Mu() != 1 {
		err := errors.New(CodeUnsupportedConfiguration,
			"multilayer calculations for magnetic particles are not supported")
		return errors.WithContext(err, "mu", p.Mu())
	}
	if p.hasY && p.y < p.x {
		return invalidParameter("y", p.y, "the size y cannot be smaller than x (y=%g, x=%g)", p.y, p.x)
	}
	return nil
}

// Signature returns the cache key of the parameter set.
func (p Parameters) Signature() Signature {
	return Signature{
		Eps:     p.eps,
		Mu:      p.Mu(),
		X:       p.x,
		Y:       p.y,
		HasY:    p.hasY,
		Eps2:    p.eps2,
		HasEps2: p.hasEps2,
	}
}
