package mie

import (
	"context"
	"log/slog"
	"math"
	"runtime"
	"time"

	"github.com/jmgilman/go/errors"
	"golang.org/x/sync/errgroup"
)

// SweepConfig controls a parallel evaluation over many parameter sets.
type SweepConfig struct {
	Workers int          // Concurrent evaluations (default: runtime.NumCPU())
	Angles  []float64    // Scattering-angle cosines at which S1, S2 are evaluated
	Logger  *slog.Logger // Progress records at Debug, summary at Info; nil discards
}

// DefaultSweepConfig returns one worker per CPU and no angles.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		Workers: runtime.NumCPU(),
	}
}

// Amplitude is the S1, S2 pair at one scattering-angle cosine.
type Amplitude struct {
	U  float64
	S1 complex128
	S2 complex128
}

// SweepResult holds the outcome for one parameter set of a sweep.
type SweepResult struct {
	Index      int         // Position in the input slice
	Parameters Parameters  // The evaluated parameter set
	Variant    Variant     // Recursion used
	NMax       int         // Series truncation order
	Properties Properties  // Efficiencies
	Amplitudes []Amplitude // One per SweepConfig.Angles entry
}

// Sweep evaluates every parameter set concurrently and returns the results
// in input order. Parameter sets are independent, so no cache is shared; a
// sweep that repeats a set simply recomputes it.
//
// The first failing parameter set cancels the sweep; its error carries the
// failing index as context.
func Sweep(ctx context.Context, points []Parameters, cfg SweepConfig) ([]SweepResult, error) {
	for _, u := range cfg.Angles {
		if err := checkAngle(u); err != nil {
			return nil, err
		}
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := Config{Logger: cfg.Logger}.logger()

	results := make([]SweepResult, len(points))
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range points {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := evaluate(points[i], cfg.Angles)
			if err != nil {
				return errors.WithContext(err, "index", i)
			}
			r.Index = i
			results[i] = r
			logger.Debug("sweep point done", "index", i, "variant", r.Variant.String(), "nmax", r.NMax)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("sweep complete",
		"points", len(points),
		"workers", workers,
		"elapsed", time.Since(start))
	return results, nil
}

func evaluate(p Parameters, angles []float64) (SweepResult, error) {
	if err := p.Validate(); err != nil {
		return SweepResult{}, err
	}
	coeffs, err := ComputeCoefficients(p)
	if err != nil {
		return SweepResult{}, err
	}

	r := SweepResult{
		Parameters: p,
		Variant:    SelectVariant(p),
		NMax:       coeffs.NMax,
		Properties: ComputeProperties(coeffs, p.Size()),
	}
	if len(angles) > 0 {
		r.Amplitudes = make([]Amplitude, len(angles))
		for j, u := range angles {
			s1, s2, err := ComputeS12(coeffs, u)
			if err != nil {
				return SweepResult{}, err
			}
			r.Amplitudes[j] = Amplitude{U: u, S1: s1, S2: s2}
		}
	}
	return r, nil
}

// CoreShellScan builds the parameter sets of a core/shell scan: for every
// core volume fraction f and every shell size parameter y, a sphere with core
// size x = y·f^(1/3). Results are ordered by fraction, then by size.
//
// f = 0 yields an empty core and f = 1 a shell-less sphere; both resolve to
// the homogeneous recursion.
func CoreShellScan(epsCore, epsShell complex128, shellSizes, fractions []float64) ([]Parameters, error) {
	points := make([]Parameters, 0, len(shellSizes)*len(fractions))
	for _, f := range fractions {
		if math.IsNaN(f) || f < 0 || f > 1 {
			return nil, invalidParameter("fraction", f, "core volume fraction must be within [0, 1], got %g", f)
		}
		scale := math.Cbrt(f)
		for _, y := range shellSizes {
			p, err := NewParameters(
				WithEps(epsCore),
				WithEps2(epsShell),
				WithX(y*scale),
				WithY(y),
			)
			if err != nil {
				return nil, err
			}
			points = append(points, p)
		}
	}
	return points, nil
}

// Linspace returns count evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	if count == 1 {
		return []float64{start}
	}
	out := make([]float64, count)
	step := (stop - start) / float64(count-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[count-1] = stop
	return out
}
