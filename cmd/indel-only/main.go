// Command indel-only runs the pure insertion/deletion simulation of spec
// §6: no substitution model, output rows carry 'X' placeholders wherever a
// residue survived to the alignment.
package main

import (
	"fmt"
	"os"

	"github.com/nimrodSerokTAU/evo-sim/internal/runner"
	"github.com/nimrodSerokTAU/evo-sim/internal/simconfig"
	"github.com/nimrodSerokTAU/evo-sim/internal/simlog"
	"github.com/nimrodSerokTAU/evo-sim/internal/substitution"
	"github.com/spf13/cobra"
)

func main() {
	var cfg simconfig.SimConfiguration
	var logLevel string

	cmd := &cobra.Command{
		Use:   "indel-only",
		Short: "Simulate insertion/deletion events along a phylogeny and emit a gapped alignment",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := simlog.Configure(logLevel); err != nil {
				return err
			}
			return runner.Run(cfg, nil, substitution.Gillespie)
		},
	}

	simconfig.BindIndelFlags(cmd.Flags(), &cfg)
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "debug|info|warn|error")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
