package msa

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nimrodSerokTAU/evo-sim/internal/block"
	"github.com/nimrodSerokTAU/evo-sim/internal/supersequence"
	"gotest.tools/v3/assert"
)

func TestTemplateAllGapsWhenViewEmpty(t *testing.T) {
	super := supersequence.New(0)
	view := supersequence.NewRootView(super, 0, true)
	super.AssignAbsolutePositions()
	out := Template(4, view)
	assert.Equal(t, out, "----")
}

func TestTemplateRootViewIsAllPlaceholders(t *testing.T) {
	super := supersequence.New(3)
	view := supersequence.NewRootView(super, 0, true)
	super.AssignAbsolutePositions()
	out := Template(3, view)
	assert.Equal(t, out, "XXX")
}

func TestTemplateLeavesGapsForUnreferencedColumns(t *testing.T) {
	super := supersequence.New(3)
	root := supersequence.NewRootView(super, 0, true)
	blocks := []block.Block{{AncestorIndex: 0, Copied: 1, Inserted: 0}}
	child := supersequence.NewChildView(super, 1, true, root, blocks)
	super.AssignAbsolutePositions()
	out := Template(super.Width(), child)
	assert.Equal(t, strings.Count(out, "X"), 1)
	assert.Equal(t, strings.Count(out, "-"), super.Width()-1)
}

func TestApplyResiduesOverlaysInOrder(t *testing.T) {
	out := ApplyResidues("-X-X-", []byte("AC"))
	assert.Equal(t, out, "-A-C-")
}

func TestApplyResiduesIgnoresExcessResidues(t *testing.T) {
	out := ApplyResidues("-X-", []byte("AC"))
	assert.Equal(t, out, "-A-")
}

// TestS5ThreeTaxonMSA is spec scenario S5: root, child, and grandchild
// views over a shared super-sequence must produce the three exact FASTA
// rows named in the spec, widths and gap placement included.
func TestS5ThreeTaxonMSA(t *testing.T) {
	super := supersequence.New(20)
	root := supersequence.NewRootView(super, 0, true)

	childBlocks := []block.Block{
		{AncestorIndex: block.NoAncestor, Copied: 0, Inserted: 1},
		{AncestorIndex: 0, Copied: 10, Inserted: 5},
		{AncestorIndex: 10, Copied: 10, Inserted: 4},
	}
	child := supersequence.NewChildView(super, 1, true, root, childBlocks)

	grandchildBlocks := []block.Block{
		{AncestorIndex: 0, Copied: 5, Inserted: 2},
		{AncestorIndex: 5, Copied: 15, Inserted: 0},
		{AncestorIndex: 23, Copied: 7, Inserted: 1},
	}
	grandchild := supersequence.NewChildView(super, 2, true, child, grandchildBlocks)

	super.AssignAbsolutePositions()
	width := super.Width()
	assert.Equal(t, width, 33)

	rootRow := Template(width, root)
	childRow := Template(width, child)
	grandchildRow := Template(width, grandchild)

	assert.Equal(t, rootRow, "-XXXX--XXXXXX-----XXXXXXXXXX-----")
	assert.Equal(t, childRow, "XXXXX--XXXXXXXXXXXXXXXXXXXXXXXXX-")
	assert.Equal(t, grandchildRow, "XXXXXXXXXXXXXXXXXXXXXX---XXXXXXXX")
}

func TestBuilderWriteFastaEmitsRegisteredRowsInOrder(t *testing.T) {
	super := supersequence.New(2)
	b := New(super)
	root := supersequence.NewRootView(super, 0, true)
	b.Register("root", root)
	super.AssignAbsolutePositions()

	var buf bytes.Buffer
	err := b.WriteFasta(&buf, nil)
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(buf.String(), ">root"))
	assert.Assert(t, strings.Contains(buf.String(), "XX"))
}
