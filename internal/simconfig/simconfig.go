// Package simconfig defines SimConfiguration, validated the way
// indelsim.classes.sim_config.SimConfiguration validates its constructor
// arguments, and the cobra/pflag flag set shared by the three CLI
// executables (spec §6).
package simconfig

import (
	"github.com/nimrodSerokTAU/evo-sim/internal/simerrors"
	"github.com/spf13/pflag"
)

// SeqNodeVariant selects which C4 backing store applies IndelEvents.
type SeqNodeVariant string

const (
	VariantNaive SeqNodeVariant = "naive"
	VariantList  SeqNodeVariant = "list"
	VariantTree  SeqNodeVariant = "tree"
)

// SubstitutionAlgorithm selects between the two C8 sampling strategies.
type SubstitutionAlgorithm string

const (
	AlgorithmGillespie SubstitutionAlgorithm = "gillespie"
	AlgorithmMatrix    SubstitutionAlgorithm = "matrix"
)

// OutputMode controls how MSA rows are written (SPEC_FULL §13): drop
// discards output (benchmarking only), multi writes one FASTA file per
// simulation replicate, single concatenates every replicate into one file.
type OutputMode string

const (
	OutputDrop   OutputMode = "drop"
	OutputMulti  OutputMode = "multi"
	OutputSingle OutputMode = "single"
)

// SimConfiguration is the full parameter set for indel-only, substitution-
// only, and combined runs; each CLI binds the subset of fields it needs.
type SimConfiguration struct {
	OriginalSequenceLength int
	IndelLengthAlpha       float64
	IndelTruncatedLength   int
	InsertionRate          float64
	DeletionRate           float64
	DeletionExtraEdgeLen   int
	Seed                   int64

	EnableSubstitutions   bool
	SubstitutionRate      float64
	SubstitutionAlgorithm SubstitutionAlgorithm

	Variant            SeqNodeVariant
	TreeFile           string
	NumberOfSimulations int
	OutputType         OutputMode
	OutputDirectory    string
	KeepInMemory       bool
	IncludeInternal    bool
	RunawayLengthCeiling int
	Verbose            bool
}

// Validate mirrors SimConfiguration.__init__'s checks in
// indelsim/classes/sim_config.py, extended to every field this port adds.
func (c *SimConfiguration) Validate() error {
	if c.OriginalSequenceLength <= 0 {
		return simerrors.InvalidConfig("original_sequence_length must be positive, got %d", c.OriginalSequenceLength)
	}
	if c.InsertionRate < 0 || c.DeletionRate < 0 {
		return simerrors.InvalidConfig("insertion_rate and deletion_rate must be non-negative")
	}
	if (c.InsertionRate > 0 || c.DeletionRate > 0) && c.IndelTruncatedLength <= 0 {
		return simerrors.InvalidConfig("indel_truncated_length must be positive, got %d", c.IndelTruncatedLength)
	}
	if c.DeletionExtraEdgeLen < 0 {
		return simerrors.InvalidConfig("deletion_extra_edge_length must be non-negative, got %d", c.DeletionExtraEdgeLen)
	}
	if c.EnableSubstitutions {
		if c.SubstitutionRate < 0 {
			return simerrors.InvalidConfig("substitution_rate must be non-negative, got %v", c.SubstitutionRate)
		}
		switch c.SubstitutionAlgorithm {
		case AlgorithmGillespie, AlgorithmMatrix:
		default:
			return simerrors.InvalidConfig("substitution_algorithm must be 'gillespie' or 'matrix', got %q", c.SubstitutionAlgorithm)
		}
	}
	switch c.Variant {
	case VariantNaive, VariantList, VariantTree:
	default:
		return simerrors.InvalidConfig("type must be 'naive', 'list' or 'tree', got %q", c.Variant)
	}
	switch c.OutputType {
	case OutputDrop, OutputMulti, OutputSingle:
	default:
		return simerrors.InvalidConfig("output_type must be 'drop', 'multi' or 'single', got %q", c.OutputType)
	}
	if c.TreeFile == "" {
		return simerrors.InvalidConfig("tree_file is required")
	}
	if c.NumberOfSimulations <= 0 {
		return simerrors.InvalidConfig("number_of_simulations must be positive, got %d", c.NumberOfSimulations)
	}
	if c.RunawayLengthCeiling <= 0 {
		return simerrors.InvalidConfig("runaway_length_ceiling must be positive, got %d", c.RunawayLengthCeiling)
	}
	return nil
}

// bindCommonFlags registers the flags every one of the three executables
// shares (spec §6: "plus common flags").
func bindCommonFlags(fs *pflag.FlagSet, c *SimConfiguration) {
	fs.IntVar(&c.OriginalSequenceLength, "original_sequence_length", 100, "root sequence length")
	fs.StringVar(&c.TreeFile, "tree_file", "", "path to a Newick tree file")
	fs.IntVar(&c.NumberOfSimulations, "number_of_simulations", 1, "number of independent replicate simulations")
	fs.Int64Var(&c.Seed, "seed", 1, "root random seed")
	fs.StringVar((*string)(&c.OutputType), "output_type", string(OutputMulti), "drop|multi|single")
	fs.StringVar(&c.OutputDirectory, "output_directory", ".", "directory for FASTA output")
	fs.BoolVar(&c.KeepInMemory, "keep_in_memory", true, "hold every saved row in memory instead of streaming to disk")
	fs.BoolVar(&c.IncludeInternal, "include-internal", false, "save internal-node rows in the MSA, not just leaves")
	fs.IntVar(&c.RunawayLengthCeiling, "runaway-length-ceiling", 1_000_000, "abort a simulation whose sequence length exceeds this")
	fs.BoolVar(&c.Verbose, "verbose", false, "emit benchmark timing statistics")
}

// bindIndelParamFlags registers only the indel-model-specific parameters,
// not the common flags every executable shares.
func bindIndelParamFlags(fs *pflag.FlagSet, c *SimConfiguration) {
	fs.StringVar((*string)(&c.Variant), "type", string(VariantTree), "seq node backing store: naive|list|tree")
	fs.Float64Var(&c.InsertionRate, "insertion_rate", 0.01, "per-site insertion rate")
	fs.Float64Var(&c.DeletionRate, "deletion_rate", 0.01, "per-site deletion rate")
	fs.Float64Var(&c.IndelLengthAlpha, "insertion_length_alpha", 1.5, "Zipf shape for indel length")
	fs.IntVar(&c.IndelTruncatedLength, "insertion_length_truncation", 50, "truncation ceiling for indel length sampling")
	// deletion_length_alpha/deletion_length_truncation are part of the CLI
	// surface for parity with the original flag set, but spec §4.4 is
	// explicit that deletion length is drawn "from the same truncated
	// Zipf" as insertion length, so both aliases bind the same fields
	// rather than driving a second, independent distribution.
	fs.Float64Var(&c.IndelLengthAlpha, "deletion_length_alpha", 1.5, "Zipf shape for indel length (alias of insertion_length_alpha)")
	fs.IntVar(&c.IndelTruncatedLength, "deletion_length_truncation", 50, "truncation ceiling for indel length sampling (alias of insertion_length_truncation)")
	fs.IntVar(&c.DeletionExtraEdgeLen, "deletion_extra_edge_length", 50, "extra edge allowance for deletions starting before position 0")
}

// bindSubstitutionParamFlags registers only the substitution-model-specific
// parameters, not the common flags every executable shares.
func bindSubstitutionParamFlags(fs *pflag.FlagSet, c *SimConfiguration) {
	c.EnableSubstitutions = true
	fs.Float64Var(&c.SubstitutionRate, "substitution_rate", 1.0, "substitution rate scale factor")
	fs.StringVar((*string)(&c.SubstitutionAlgorithm), "algorithm", string(AlgorithmGillespie), "gillespie|matrix")
}

// BindIndelFlags registers every flag the indel-only executable exposes:
// the indel model parameters plus the common flags.
func BindIndelFlags(fs *pflag.FlagSet, c *SimConfiguration) {
	bindIndelParamFlags(fs, c)
	bindCommonFlags(fs, c)
}

// BindSubstitutionFlags registers every flag the substitution-only
// executable exposes: the substitution model parameters plus the common
// flags.
func BindSubstitutionFlags(fs *pflag.FlagSet, c *SimConfiguration) {
	// No --type flag here; the indel rates stay zero, so the tree store
	// only ever holds the identity block.
	c.Variant = VariantTree
	bindSubstitutionParamFlags(fs, c)
	bindCommonFlags(fs, c)
}

// BindCombinedFlags registers the union of both models' parameters plus
// the common flags exactly once (spec §6: "combined: the union of the
// two").
func BindCombinedFlags(fs *pflag.FlagSet, c *SimConfiguration) {
	bindIndelParamFlags(fs, c)
	bindSubstitutionParamFlags(fs, c)
	bindCommonFlags(fs, c)
}
