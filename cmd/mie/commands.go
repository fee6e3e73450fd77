package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/alexshd/mie"
	"github.com/alexshd/mie/internal/config"
)

func (a *app) newPropsCmd() *cobra.Command {
	var f sphereFlags

	cmd := &cobra.Command{
		Use:   "props",
		Short: "Print the efficiencies of one sphere",
		Example: `  mie props --m 1.5+0.5i --x 2.5
  mie props --eps 2.2+0.8i --mu 1.6+1.4i --x 4
  mie props --m 1.5+0.5i --m2 1.2+0.2i --x 1.5 --y 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.engine(cmd, &f)
			if err != nil {
				return err
			}
			props, err := m.Properties()
			if err != nil {
				return err
			}
			variant, err := m.Variant()
			if err != nil {
				return err
			}
			coeffs, err := m.Coefficients()
			if err != nil {
				return err
			}

			if a.json {
				return writeJSON(a.out, toPropertiesJSON(variant, coeffs.NMax, props))
			}
			return writeProperties(a.out, variant, coeffs.NMax, props)
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) newS12Cmd() *cobra.Command {
	var (
		f      sphereFlags
		angles []float64
	)

	cmd := &cobra.Command{
		Use:     "s12",
		Short:   "Print the amplitude scattering matrix elements S1, S2",
		Example: `  mie s12 --m 1.5+0.5i --x 2.5 --u=-0.6 --u 0 --u 1`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.engine(cmd, &f)
			if err != nil {
				return err
			}

			amps := make([]mie.Amplitude, 0, len(angles))
			for _, u := range angles {
				s1, s2, err := m.S12(u)
				if err != nil {
					return err
				}
				amps = append(amps, mie.Amplitude{U: u, S1: s1, S2: s2})
			}

			if a.json {
				rows := make([]amplitudeJSON, len(amps))
				for i, amp := range amps {
					rows[i] = toAmplitudeJSON(amp)
				}
				return writeJSON(a.out, rows)
			}
			return writeAmplitudes(a.out, amps)
		},
	}
	f.register(cmd)
	cmd.Flags().Float64SliceVar(&angles, "u", []float64{1}, "scattering-angle cosines, repeatable")
	return cmd
}

func (a *app) newSweepCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate a TOML or YAML sweep definition in parallel",
		Example: `  mie sweep --file hail.toml
  MIE_WORKERS=4 mie sweep --file sizes.yaml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := config.LoadSweep(path)
			if err != nil {
				return err
			}
			points, err := f.Points()
			if err != nil {
				return err
			}

			logger := a.logger.With("run_id", uuid.New().String(), "sweep", f.Name)
			cfg := a.env.SweepConfig(logger)
			cfg.Angles = f.Angles

			logger.Info("sweep starting", "points", len(points), "workers", cfg.Workers)
			results, err := mie.Sweep(cmd.Context(), points, cfg)
			if err != nil {
				logger.Error("sweep failed", "error", err)
				return err
			}

			if a.json {
				return writeJSON(a.out, toSweepJSON(results))
			}
			return writeSweep(a.out, results)
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "sweep definition (.toml, .yaml, .yml)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
