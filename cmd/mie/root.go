package main

import (
	"io"
	"log/slog"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/alexshd/mie"
	"github.com/alexshd/mie/internal/config"
)

// app carries what every subcommand needs once the root command has run.
type app struct {
	out    io.Writer
	errOut io.Writer
	json   bool
	env    config.Env
	logger *slog.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "mie",
		Short: "Mie scattering by homogeneous and coated spheres",
		Long: `Computes extinction, scattering, absorption and backscattering
efficiencies, the asymmetry parameter and the amplitude scattering matrix of
spheres from Mie theory.

Materials are given as complex literals, e.g. --m 1.5+0.5i or --eps 2.2+0.8i.
A shell is described by --y and --m2 (or --eps2); --x and --m then describe
the core.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			env, err := config.Load()
			if err != nil {
				return err
			}
			a.env = env
			a.logger = slog.New(tint.NewHandler(a.errOut, &tint.Options{
				Level:      env.LogLevel,
				TimeFormat: "15:04:05",
			}))
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().BoolVar(&a.json, "json", false, "write results as JSON")

	root.AddCommand(a.newPropsCmd(), a.newS12Cmd(), a.newSweepCmd())
	return root
}

// sphereFlags are the material and size flags shared by props and s12.
type sphereFlags struct {
	eps, mu, eps2, m, m2 string
	x, y                 float64
}

func (f *sphereFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.eps, "eps", "", "(core) permittivity")
	fs.StringVar(&f.mu, "mu", "", "permeability (default 1)")
	fs.StringVar(&f.eps2, "eps2", "", "shell permittivity")
	fs.StringVar(&f.m, "m", "", "(core) refractive index, sets mu = 1")
	fs.StringVar(&f.m2, "m2", "", "shell refractive index")
	fs.Float64Var(&f.x, "x", 0, "(core) size parameter 2πr/λ")
	fs.Float64Var(&f.y, "y", 0, "shell size parameter")
}

// options turns the flags that were actually given into engine options.
func (f *sphereFlags) options(cmd *cobra.Command) ([]mie.Option, error) {
	materials := []struct {
		name  string
		value string
		with  func(complex128) mie.Option
	}{
		{"eps", f.eps, mie.WithEps},
		{"mu", f.mu, mie.WithMu},
		{"eps2", f.eps2, mie.WithEps2},
		{"m", f.m, mie.WithM},
		{"m2", f.m2, mie.WithM2},
	}

	var opts []mie.Option
	for _, mat := range materials {
		if !cmd.Flags().Changed(mat.name) {
			continue
		}
		v, err := config.ParseComplex(mat.name, mat.value)
		if err != nil {
			return nil, err
		}
		opts = append(opts, mat.with(v))
	}
	if cmd.Flags().Changed("x") {
		opts = append(opts, mie.WithX(f.x))
	}
	if cmd.Flags().Changed("y") {
		opts = append(opts, mie.WithY(f.y))
	}
	return opts, nil
}

func (a *app) engine(cmd *cobra.Command, f *sphereFlags) (*mie.Mie, error) {
	opts, err := f.options(cmd)
	if err != nil {
		return nil, err
	}
	return mie.New(append(opts, mie.WithConfig(a.env.EngineConfig(a.logger)))...)
}
