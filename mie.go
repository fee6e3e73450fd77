package mie

import (
	"log/slog"
)

// Option configures a parameter set or an engine at construction.
type Option func(*options)

// options collects construction arguments so they can be applied in a fixed
// order regardless of how they were passed: eps, mu, eps2 first, then the
// refractive-index forms m and m2, then the sizes x and y.
type options struct {
	eps, mu, eps2 *complex128
	m, m2         *complex128
	x, y          *float64
	cfg           Config
	logger        *slog.Logger
}

// WithEps sets the (core) permittivity.
func WithEps(eps complex128) Option { return func(o *options) { o.eps = &eps } }

// WithMu sets the permeability.
func WithMu(mu complex128) Option { return func(o *options) { o.mu = &mu } }

// WithEps2 sets the shell permittivity.
func WithEps2(eps2 complex128) Option { return func(o *options) { o.eps2 = &eps2 } }

// WithM sets the refractive index (eps = m², mu = 1).
func WithM(m complex128) Option { return func(o *options) { o.m = &m } }

// WithM2 sets the shell refractive index (eps2 = m2²).
func WithM2(m2 complex128) Option { return func(o *options) { o.m2 = &m2 } }

// WithX sets the (core) size parameter.
func WithX(x float64) Option { return func(o *options) { o.x = &x } }

// WithY sets the shell size parameter.
func WithY(y float64) Option { return func(o *options) { o.y = &y } }

// WithConfig replaces the engine configuration. Ignored by NewParameters.
func WithConfig(cfg Config) Option { return func(o *options) { o.cfg = cfg } }

// WithLogger sets the engine logger. Ignored by NewParameters.
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

func collect(opts []Option) options {
	o := options{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) parameters() (Parameters, error) {
	var p Parameters
	steps := []func() error{
		func() error { return applyComplex(o.eps, p.SetEps) },
		func() error { return applyComplex(o.mu, p.SetMu) },
		func() error { return applyComplex(o.eps2, p.SetEps2) },
		func() error { return applyComplex(o.m, p.SetM) },
		func() error { return applyComplex(o.m2, p.SetM2) },
		func() error { return applyFloat(o.x, p.SetX) },
		func() error { return applyFloat(o.y, p.SetY) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return Parameters{}, err
		}
	}
	return p, nil
}

func applyComplex(v *complex128, set func(complex128) error) error {
	if v == nil {
		return nil
	}
	return set(*v)
}

func applyFloat(v *float64, set func(float64) error) error {
	if v == nil {
		return nil
	}
	return set(*v)
}

// NewParameters builds a parameter set from options, running the setter
// validation of each field.
func NewParameters(opts ...Option) (Parameters, error) {
	return collect(opts).parameters()
}

// Mie computes scattering by homogeneous and coated spheres.
//
// Set the size and material parameters, at construction or through the
// setters, then query efficiencies or amplitudes. Coefficients are computed
// at most once per distinct parameter set and kept in the engine's cache.
//
// A Mie value is not safe for concurrent use; give each goroutine its own
// engine or use Sweep.
type Mie struct {
	params Parameters
	cache  *resultCache
	logger *slog.Logger
}

// New creates an engine.
//
// Example:
//
//	m, err := mie.New(mie.WithX(1.5), mie.WithM(complex(1.2, 0.1)))
func New(opts ...Option) (*Mie, error) {
	o := collect(opts)

	params, err := o.parameters()
	if err != nil {
		return nil, err
	}

	cache, err := newResultCache(o.cfg.MaxEntries)
	if err != nil {
		return nil, err
	}

	logger := o.cfg.logger()
	if o.logger != nil {
		logger = o.logger
	}

	return &Mie{params: params, cache: cache, logger: logger}, nil
}

// Parameters returns a copy of the current parameter set.
func (m *Mie) Parameters() Parameters { return m.params }

// SetEps sets the (core) permittivity.
func (m *Mie) SetEps(eps complex128) error { return m.params.SetEps(eps) }

// SetMu sets the permeability.
func (m *Mie) SetMu(mu complex128) error { return m.params.SetMu(mu) }

// SetEps2 sets the shell permittivity.
func (m *Mie) SetEps2(eps2 complex128) error { return m.params.SetEps2(eps2) }

// SetM sets the refractive index (eps = m², mu = 1).
func (m *Mie) SetM(idx complex128) error { return m.params.SetM(idx) }

// SetM2 sets the shell refractive index (eps2 = m2²).
func (m *Mie) SetM2(idx complex128) error { return m.params.SetM2(idx) }

// SetX sets the (core) size parameter.
func (m *Mie) SetX(x float64) error { return m.params.SetX(x) }

// SetY sets the shell size parameter.
func (m *Mie) SetY(y float64) error { return m.params.SetY(y) }

// Qext returns the extinction efficiency. Multiply by πr² for the cross section.
func (m *Mie) Qext() (float64, error) { return m.property(func(p Properties) float64 { return p.Qext }) }

// Qsca returns the scattering efficiency. Multiply by πr² for the cross section.
func (m *Mie) Qsca() (float64, error) { return m.property(func(p Properties) float64 { return p.Qsca }) }

// Qabs returns the absorption efficiency. Multiply by πr² for the cross section.
func (m *Mie) Qabs() (float64, error) { return m.property(func(p Properties) float64 { return p.Qabs }) }

// Qb returns the backscattering efficiency. Multiply by πr² for the cross section.
func (m *Mie) Qb() (float64, error) { return m.property(func(p Properties) float64 { return p.Qb }) }

// Asy returns the asymmetry parameter <cos θ>. NaN for a sphere of zero size.
func (m *Mie) Asy() (float64, error) { return m.property(func(p Properties) float64 { return p.Asy }) }

// Qratio returns the backscattering ratio Qb/Qsca. NaN for a sphere of zero size.
func (m *Mie) Qratio() (float64, error) {
	return m.property(func(p Properties) float64 { return p.Qratio })
}

// Properties returns all six efficiencies at once.
func (m *Mie) Properties() (Properties, error) {
	e, err := m.entry()
	if err != nil {
		return Properties{}, err
	}
	return e.properties(), nil
}

// S12 returns the amplitude scattering matrix elements at scattering-angle
// cosine u, −1 ≤ u ≤ 1. Follows the conventions of Bohren and Huffman (1983).
func (m *Mie) S12(u float64) (s1, s2 complex128, err error) {
	if err = checkAngle(u); err != nil {
		return 0, 0, err
	}
	e, err := m.entry()
	if err != nil {
		return 0, 0, err
	}
	return e.s12(u)
}

// Coefficients returns a copy of the expansion coefficients for the current
// parameters.
func (m *Mie) Coefficients() (Coefficients, error) {
	e, err := m.entry()
	if err != nil {
		return Coefficients{}, err
	}
	return e.coeffs.clone(), nil
}

// Variant returns the recursion the current parameters select.
func (m *Mie) Variant() (Variant, error) {
	if err := m.params.Validate(); err != nil {
		return 0, err
	}
	return SelectVariant(m.params), nil
}

// CacheStats returns the cache hit and miss counters.
func (m *Mie) CacheStats() CacheStats { return m.cache.stats() }

func (m *Mie) property(get func(Properties) float64) (float64, error) {
	e, err := m.entry()
	if err != nil {
		return 0, err
	}
	return get(e.properties()), nil
}

func (m *Mie) entry() (*cacheEntry, error) {
	if err := m.params.Validate(); err != nil {
		return nil, err
	}

	e, hit, err := m.cache.lookup(m.params)
	if err != nil {
		return nil, err
	}
	if !hit {
		m.logger.Debug("mie coefficients computed",
			"variant", SelectVariant(m.params).String(),
			"nmax", e.coeffs.NMax,
			"size", e.size)
	}
	return e, nil
}
