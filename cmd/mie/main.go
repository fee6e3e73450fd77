// Command mie computes Mie scattering efficiencies and amplitudes of
// homogeneous and coated spheres.
//
//	mie props --m 1.5+0.5i --x 2.5
//	mie s12 --m 1.5+0.5i --m2 1.2+0.2i --x 1.5 --y 5 --u=-0.6 --u 0
//	mie sweep --file hail.toml --json
//
// Logging is configured through MIE_LOG_LEVEL; MIE_WORKERS and
// MIE_CACHE_ENTRIES tune sweeps and the engine cache.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
