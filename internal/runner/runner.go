// Package runner wires one parsed SimConfiguration and tree file into
// NumberOfSimulations independent calls to simulation.Run, and applies the
// three output_type behaviors the CLI layer exposes (spec §6): drop
// (benchmarking, discard everything), multi (one FASTA file per replicate)
// and single (every replicate's rows concatenated into one file). This is
// the thin layer shared by the indel-only, substitution-only and combined
// cobra commands so none of them duplicates the replicate loop.
package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/containerd/log"
	"github.com/nimrodSerokTAU/evo-sim/internal/phylotree"
	"github.com/nimrodSerokTAU/evo-sim/internal/simconfig"
	"github.com/nimrodSerokTAU/evo-sim/internal/simlog"
	"github.com/nimrodSerokTAU/evo-sim/internal/simulation"
	"github.com/nimrodSerokTAU/evo-sim/internal/substitution"
	"go.uber.org/zap"
)

// Run loads the configured tree and executes cfg.NumberOfSimulations
// independent replicates, writing output per cfg.OutputType.
func Run(cfg simconfig.SimConfiguration, matrix *substitution.RateMatrix, algorithm substitution.Algorithm) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	f, err := os.Open(cfg.TreeFile)
	if err != nil {
		return err
	}
	tree, err := phylotree.Parse(f)
	f.Close()
	if err != nil {
		return err
	}

	var singleFile *os.File
	if cfg.OutputType == simconfig.OutputSingle {
		singleFile, err = os.Create(filepath.Join(cfg.OutputDirectory, "combined.fasta"))
		if err != nil {
			return err
		}
		defer singleFile.Close()
	}

	var bench *zap.Logger
	if cfg.Verbose {
		bench, err = simlog.NewBenchmarkLogger()
		if err != nil {
			return err
		}
		defer bench.Sync() //nolint:errcheck
	}
	runStart := time.Now()

	for rep := 0; rep < cfg.NumberOfSimulations; rep++ {
		seed := uint64(cfg.Seed) + uint64(rep)*0x9E3779B97F4A7C15
		seed = (seed ^ (seed >> 30)) * 0xBF58476D1CE4E5B9
		seed = (seed ^ (seed >> 27)) * 0x94D049BB133111EB
		seed ^= seed >> 31
		streamPath := ""
		if !cfg.KeepInMemory && cfg.OutputType != simconfig.OutputDrop {
			streamPath = filepath.Join(cfg.OutputDirectory, fmt.Sprintf("sim_%d.fasta", rep))
		}

		repStart := time.Now()
		res, err := simulation.Run(tree, cfg, matrix, algorithm, seed, streamPath)
		if err != nil {
			return fmt.Errorf("replicate %d: %w", rep, err)
		}
		repElapsed := time.Since(repStart)

		log.L.WithField("replicate", rep).WithField("rows", len(res.Names)).Info("simulation replicate finished")
		if bench != nil {
			bench.Info("replicate timing",
				zap.Int("replicate", rep),
				zap.Int("rows", len(res.Names)),
				zap.Duration("elapsed", repElapsed),
			)
		}

		switch cfg.OutputType {
		case simconfig.OutputDrop:
			// nothing to write; the replicate ran purely for timing.
		case simconfig.OutputMulti:
			if cfg.KeepInMemory {
				if err := writeFasta(filepath.Join(cfg.OutputDirectory, fmt.Sprintf("sim_%d.fasta", rep)), res.Names, res.Rows); err != nil {
					return err
				}
			}
		case simconfig.OutputSingle:
			if cfg.KeepInMemory {
				if err := appendFasta(singleFile, res.Names, res.Rows); err != nil {
					return err
				}
			} else {
				if err := appendFile(singleFile, streamPath); err != nil {
					return err
				}
			}
		}
	}
	if bench != nil {
		bench.Info("run finished",
			zap.Int("replicates", cfg.NumberOfSimulations),
			zap.Duration("elapsed", time.Since(runStart)),
		)
	}
	return nil
}

func writeFasta(path string, names, rows []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return appendFasta(f, names, rows)
}

func appendFasta(f *os.File, names, rows []string) error {
	for i, name := range names {
		if _, err := fmt.Fprintf(f, ">%s\n%s\n", name, rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func appendFile(dst *os.File, srcPath string) error {
	contents, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	_, err = dst.Write(contents)
	return err
}
