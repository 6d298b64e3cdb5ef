package simulation

import (
	"strings"
	"testing"

	"github.com/nimrodSerokTAU/evo-sim/internal/phylotree"
	"github.com/nimrodSerokTAU/evo-sim/internal/simconfig"
	"github.com/nimrodSerokTAU/evo-sim/internal/substitution"
	"gotest.tools/v3/assert"
)

func parseTree(t *testing.T, newick string) *phylotree.Tree {
	t.Helper()
	tree, err := phylotree.Parse(strings.NewReader(newick))
	assert.NilError(t, err)
	return tree
}

func baseConfig() simconfig.SimConfiguration {
	return simconfig.SimConfiguration{
		OriginalSequenceLength: 20,
		IndelLengthAlpha:       1.5,
		IndelTruncatedLength:   10,
		InsertionRate:          0.05,
		DeletionRate:           0.05,
		DeletionExtraEdgeLen:   5,
		Variant:                simconfig.VariantTree,
		KeepInMemory:           true,
		IncludeInternal:        false,
		RunawayLengthCeiling:   100000,
	}
}

func TestRunProducesOneRowPerLeaf(t *testing.T) {
	tree := parseTree(t, "((A:0.1,B:0.2):0.1,C:0.3);")
	cfg := baseConfig()
	res, err := Run(tree, cfg, nil, substitution.Gillespie, 42, "")
	assert.NilError(t, err)
	assert.Equal(t, len(res.Names), 3)
	assert.Equal(t, len(res.Rows), 3)
	width := len(res.Rows[0])
	for _, row := range res.Rows {
		assert.Equal(t, len(row), width)
	}
}

func TestRunIsDeterministicForAFixedSeed(t *testing.T) {
	tree1 := parseTree(t, "((A:0.1,B:0.2):0.1,C:0.3);")
	tree2 := parseTree(t, "((A:0.1,B:0.2):0.1,C:0.3);")
	cfg := baseConfig()

	res1, err := Run(tree1, cfg, nil, substitution.Gillespie, 7, "")
	assert.NilError(t, err)
	res2, err := Run(tree2, cfg, nil, substitution.Gillespie, 7, "")
	assert.NilError(t, err)

	assert.DeepEqual(t, res1.Rows, res2.Rows)
}

func TestDifferentSeedsUsuallyDiffer(t *testing.T) {
	tree1 := parseTree(t, "(A:2.0,B:2.0);")
	tree2 := parseTree(t, "(A:2.0,B:2.0);")
	cfg := baseConfig()

	res1, err := Run(tree1, cfg, nil, substitution.Gillespie, 1, "")
	assert.NilError(t, err)
	res2, err := Run(tree2, cfg, nil, substitution.Gillespie, 2, "")
	assert.NilError(t, err)

	assert.Assert(t, res1.Rows[0] != res2.Rows[0] || res1.Rows[1] != res2.Rows[1])
}

func TestIncludeInternalSavesInternalNodes(t *testing.T) {
	tree := parseTree(t, "((A:0.1,B:0.2)I1:0.1,C:0.3);")
	cfg := baseConfig()
	cfg.IncludeInternal = true
	res, err := Run(tree, cfg, nil, substitution.Gillespie, 3, "")
	assert.NilError(t, err)
	assert.Equal(t, len(res.Names), len(tree.Nodes))
}

func TestSubstitutionsFillPlaceholders(t *testing.T) {
	tree := parseTree(t, "(A:0.5,B:0.5);")
	cfg := baseConfig()
	cfg.EnableSubstitutions = true
	cfg.SubstitutionRate = 1.0
	matrix := substitution.Uniform()

	res, err := Run(tree, cfg, matrix, substitution.Gillespie, 9, "")
	assert.NilError(t, err)
	for _, row := range res.Rows {
		assert.Assert(t, !strings.ContainsRune(row, 'X'))
	}
}

func TestRunawayLengthCeilingAborts(t *testing.T) {
	tree := parseTree(t, "(A:50.0,B:50.0);")
	cfg := baseConfig()
	cfg.InsertionRate = 5
	cfg.DeletionRate = 0
	cfg.RunawayLengthCeiling = 50

	_, err := Run(tree, cfg, nil, substitution.Gillespie, 11, "")
	assert.ErrorContains(t, err, "exceeding ceiling")
}

func TestAllThreeVariantsAgreeOnWidth(t *testing.T) {
	tree := parseTree(t, "((A:0.2,B:0.2):0.1,C:0.3);")
	var widths []int
	for _, v := range []simconfig.SeqNodeVariant{simconfig.VariantTree, simconfig.VariantList, simconfig.VariantNaive} {
		cfg := baseConfig()
		cfg.Variant = v
		res, err := Run(tree, cfg, nil, substitution.Gillespie, 99, "")
		assert.NilError(t, err)
		widths = append(widths, len(res.Rows[0]))
	}
	assert.Equal(t, widths[0], widths[1])
	assert.Equal(t, widths[1], widths[2])
}
