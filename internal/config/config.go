// Package config loads the runtime configuration of the mie tools: process
// settings from MIE_* environment variables and sweep definitions from TOML
// or YAML files.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/jmgilman/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/alexshd/mie"
)

// Env holds the settings read from the environment.
type Env struct {
	LogLevel     slog.Level `env:"MIE_LOG_LEVEL" envDefault:"INFO"`
	Workers      int        `env:"MIE_WORKERS" envDefault:"0"`       // 0 selects one per CPU
	CacheEntries int        `env:"MIE_CACHE_ENTRIES" envDefault:"0"` // 0 keeps every entry
}

// Load parses the environment.
func Load() (Env, error) {
	cfg, err := env.ParseAs[Env]()
	if err != nil {
		return Env{}, errors.Wrap(err, errors.CodeInvalidConfig, "failed to parse environment")
	}
	if cfg.Workers < 0 {
		return Env{}, errors.Newf(errors.CodeInvalidConfig, "MIE_WORKERS must not be negative, got %d", cfg.Workers)
	}
	if cfg.CacheEntries < 0 {
		return Env{}, errors.Newf(errors.CodeInvalidConfig, "MIE_CACHE_ENTRIES must not be negative, got %d", cfg.CacheEntries)
	}
	return cfg, nil
}

// EngineConfig returns the engine configuration for these settings.
func (e Env) EngineConfig(logger *slog.Logger) mie.Config {
	return mie.Config{MaxEntries: e.CacheEntries, Logger: logger}
}

// SweepConfig returns sweep settings with the configured worker count.
func (e Env) SweepConfig(logger *slog.Logger) mie.SweepConfig {
	cfg := mie.DefaultSweepConfig()
	if e.Workers > 0 {
		cfg.Workers = e.Workers
	}
	cfg.Logger = logger
	return cfg
}

// Material describes a medium either by refractive index m or by
// permittivity eps and optional permeability mu. Values are complex
// literals such as "1.5+0.5i".
type Material struct {
	M   string `toml:"m" yaml:"m"`
	Eps string `toml:"eps" yaml:"eps"`
	Mu  string `toml:"mu" yaml:"mu"`
}

// Range lists size parameters explicitly or as Count evenly spaced values
// from Start to Stop.
type Range struct {
	Start  float64   `toml:"start" yaml:"start"`
	Stop   float64   `toml:"stop" yaml:"stop"`
	Count  int       `toml:"count" yaml:"count"`
	Values []float64 `toml:"values" yaml:"values"`
}

// SweepFile is a sweep definition. Without a shell, Sizes are size
// parameters of homogeneous spheres of the Core material. With a shell,
// Sizes are outer size parameters, scanned for every core volume fraction.
type SweepFile struct {
	Name      string    `toml:"name" yaml:"name"`
	Core      Material  `toml:"core" yaml:"core"`
	Shell     *Material `toml:"shell" yaml:"shell"`
	Sizes     Range     `toml:"sizes" yaml:"sizes"`
	Fractions []float64 `toml:"fractions" yaml:"fractions"`
	Angles    []float64 `toml:"angles" yaml:"angles"`
}

// LoadSweep reads a sweep definition. The format follows the extension:
// .toml, .yaml or .yml.
func LoadSweep(path string) (*SweepFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithContext(
			errors.Wrap(err, errors.CodeNotFound, "failed to read sweep file"), "path", path)
	}

	var f SweepFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &f)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	default:
		return nil, errors.WithContext(
			errors.Newf(errors.CodeInvalidConfig, "unsupported sweep file format %q", ext), "path", path)
	}
	if err != nil {
		return nil, errors.WithContext(
			errors.Wrap(err, errors.CodeInvalidConfig, "failed to decode sweep file"), "path", path)
	}
	return &f, nil
}

// Points expands the definition into parameter sets, in the order of
// mie.CoreShellScan for coated sweeps.
func (f *SweepFile) Points() ([]mie.Parameters, error) {
	sizes, err := f.Sizes.expand()
	if err != nil {
		return nil, err
	}

	if f.Shell == nil {
		if len(f.Fractions) > 0 {
			return nil, errors.New(errors.CodeInvalidConfig, "fractions require a shell material")
		}
		opts, err := f.Core.options()
		if err != nil {
			return nil, errors.WithContext(err, "material", "core")
		}
		points := make([]mie.Parameters, 0, len(sizes))
		for _, x := range sizes {
			p, err := mie.NewParameters(append(opts, mie.WithX(x))...)
			if err != nil {
				return nil, err
			}
			points = append(points, p)
		}
		return points, nil
	}

	epsCore, err := f.Core.nonMagneticEps()
	if err != nil {
		return nil, errors.WithContext(err, "material", "core")
	}
	epsShell, err := f.Shell.nonMagneticEps()
	if err != nil {
		return nil, errors.WithContext(err, "material", "shell")
	}
	if len(f.Fractions) == 0 {
		return nil, errors.New(errors.CodeInvalidConfig, "a shell sweep needs core volume fractions")
	}
	return mie.CoreShellScan(epsCore, epsShell, sizes, f.Fractions)
}

func (r Range) expand() ([]float64, error) {
	if len(r.Values) > 0 {
		return r.Values, nil
	}
	if r.Count <= 0 {
		return nil, errors.New(errors.CodeInvalidConfig, "sizes need either values or a positive count")
	}
	return mie.Linspace(r.Start, r.Stop, r.Count), nil
}

func (m Material) options() ([]mie.Option, error) {
	switch {
	case m.M != "" && (m.Eps != "" || m.Mu != ""):
		return nil, errors.New(errors.CodeInvalidConfig, "specify either m or eps/mu, not both")
	case m.M != "":
		idx, err := ParseComplex("m", m.M)
		if err != nil {
			return nil, err
		}
		return []mie.Option{mie.WithM(idx)}, nil
	case m.Eps != "":
		eps, err := ParseComplex("eps", m.Eps)
		if err != nil {
			return nil, err
		}
		opts := []mie.Option{mie.WithEps(eps)}
		if m.Mu != "" {
			mu, err := ParseComplex("mu", m.Mu)
			if err != nil {
				return nil, err
			}
			opts = append(opts, mie.WithMu(mu))
		}
		return opts, nil
	default:
		return nil, errors.New(errors.CodeInvalidConfig, "material needs m or eps")
	}
}

func (m Material) nonMagneticEps() (complex128, error) {
	opts, err := m.options()
	if err != nil {
		return 0, err
	}
	p, err := mie.NewParameters(opts...)
	if err != nil {
		return 0, err
	}
	if p.Mu() != 1 {
		return 0, errors.New(errors.CodeInvalidConfig, "coated spheres must be non-magnetic")
	}
	eps, _ := p.Eps()
	return eps, nil
}

// ParseComplex parses a complex literal such as "1.5+0.5i"; blanks are ignored.
// field names the value in the error context.
func ParseComplex(field, s string) (complex128, error) {
	v, err := strconv.ParseComplex(strings.ReplaceAll(s, " ", ""), 128)
	if err != nil {
		return 0, errors.WithContext(
			errors.Wrapf(err, errors.CodeInvalidConfig, "invalid complex value %q", s), "field", field)
	}
	return v, nil
}
