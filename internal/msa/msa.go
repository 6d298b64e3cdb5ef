// Package msa implements C10 (MsaBuilder): turning a set of saved
// SequenceViews into FASTA-formatted alignment rows, grounded on
// indelsim.classes.msa.Msa's compute_msa/compute_msa_to_disk split (spec
// §4.6, §5 memory discipline).
package msa

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/nimrodSerokTAU/evo-sim/internal/supersequence"
)

// GapChar and the amino-acid alphabet are fixed by spec §6.
const (
	GapChar            = '-'
	PlaceholderResidue  = 'X'
	AminoAlphabet       = "ACDEFGHIKLMNPQRSTVWY"
)

// Row is one registered alignment row, in registration order.
type Row struct {
	Name string
	View *supersequence.View
}

// Builder accumulates saved views in the order they are registered and
// emits them as a FASTA alignment once the super-sequence's absolute
// positions have been assigned.
type Builder struct {
	superSeq *supersequence.SuperSequence
	rows     []Row
}

// New creates a Builder bound to one simulation's super-sequence.
func New(superSeq *supersequence.SuperSequence) *Builder {
	return &Builder{superSeq: superSeq}
}

// Register records a saved view under the given header name.
func (b *Builder) Register(name string, view *supersequence.View) {
	b.rows = append(b.rows, Row{Name: name, View: view})
}

// Width is the MSA width: the number of referenced (is_column) sites.
func (b *Builder) Width() int { return b.superSeq.Width() }

// Rows exposes the registered rows in registration order, for callers that
// stream output row by row instead of calling Build/WriteFasta.
func (b *Builder) Rows() []Row { return b.rows }

// Template reconstructs one row's gap/placeholder string by walking its
// handles, per spec §4.6: starting from previous_absolute = -1, each
// handle at absolute position q emits q-previous_absolute-1 gaps followed
// by one residue placeholder. Offset 0 (the anchor) is skipped — it never
// becomes a column, mirroring indelsim's msa.py, which walks `seq[1:]`.
func Template(width int, view *supersequence.View) string {
	handles := view.Handles()
	if len(handles) <= 1 {
		out := make([]byte, width)
		for i := range out {
			out[i] = GapChar
		}
		return string(out)
	}
	buf := make([]byte, 0, width)
	previous := -1
	for _, h := range handles[1:] {
		q := supersequence.AbsolutePosition(h)
		for g := previous + 1; g < q; g++ {
			buf = append(buf, GapChar)
		}
		buf = append(buf, PlaceholderResidue)
		previous = q
	}
	for len(buf) < width {
		buf = append(buf, GapChar)
	}
	return string(buf)
}

// ApplyResidues overlays a sampled residue sequence onto a gap/placeholder
// template: every PlaceholderResidue position consumes the next byte of
// residues, in order; gaps pass through untouched. Spec §4.8: "combine gap
// template with residues by overwriting residue positions wherever the
// template has [a residue]."
func ApplyResidues(template string, residues []byte) string {
	out := make([]byte, len(template))
	copy(out, template)
	next := 0
	for i, c := range out {
		if c == PlaceholderResidue && next < len(residues) {
			out[i] = residues[next]
			next++
		}
	}
	return string(out)
}

// Build renders every registered row in registration order. It does not
// assign absolute positions itself: call AssignAbsolutePositions before
// Build if it has not already run this simulation.
func (b *Builder) Build(residuesByNode map[int][]byte) []string {
	width := b.Width()
	out := make([]string, len(b.rows))
	for i, row := range b.rows {
		template := Template(width, row.View)
		if residues, ok := residuesByNode[row.View.NodeID()]; ok {
			template = ApplyResidues(template, residues)
		}
		out[i] = template
	}
	return out
}

// WriteFasta writes every registered row as `>name\nrow\n` to w, in
// registration order.
func (b *Builder) WriteFasta(w io.Writer, residuesByNode map[int][]byte) error {
	rows := b.Build(residuesByNode)
	bw := bufio.NewWriter(w)
	for i, row := range b.rows {
		if _, err := fmt.Fprintf(bw, ">%s\n%s\n", row.Name, rows[i]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// StreamRow renders one row and appends it directly to a file without
// keeping the rendered string, per spec §5's keep_in_memory=false
// discipline: large trees must not hold every saved view's rendered row at
// once. The row's registration in the builder is left as it is.
func (b *Builder) StreamRow(path string, name string, view *supersequence.View, residues []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	template := Template(b.Width(), view)
	if residues != nil {
		template = ApplyResidues(template, residues)
	}
	_, err = fmt.Fprintf(f, ">%s\n%s\n", name, template)
	return err
}
