package seqnode

import "github.com/nimrodSerokTAU/evo-sim/internal/block"

// Naive is the oracle variant (spec §4.3): it tracks the sequence as a flat
// slice of global site ids instead of blocks, trading performance for an
// implementation simple enough to trust blindly. Tests use it to check that
// TreeNode and ListNode compute the same sequence, not merely the same
// block encoding of it.
type Naive struct {
	sites    []int
	maxSite  int
	original int
}

// NewNaive seeds the oracle with parentLength sites numbered 0..parentLength-1.
func NewNaive(parentLength int) *Naive {
	sites := make([]int, parentLength)
	for i := range sites {
		sites[i] = i
	}
	return &Naive{sites: sites, maxSite: parentLength - 1, original: parentLength}
}

// Length is the oracle's current total sequence length.
func (n *Naive) Length() int { return len(n.sites) }

// Apply mirrors SequenceNodeNaive.calculate_event: insertions splice in
// fresh site ids (monotonically increasing, never reused), deletions trim
// the slice, clipping a deletion that starts before index 0 down to [0,
// place+length).
func (n *Naive) Apply(ev block.IndelEvent) {
	if ev.Length < 0 || ev.Place > n.Length() {
		return
	}
	if ev.IsInsertion {
		n.applyInsertion(ev)
		return
	}
	if ev.Place+ev.Length <= 0 {
		return
	}
	start := ev.Place
	if start < 0 {
		start = 0
	}
	end := ev.Place + ev.Length
	if end > len(n.sites) {
		end = len(n.sites)
	}
	n.sites = append(n.sites[:start], n.sites[end:]...)
}

func (n *Naive) applyInsertion(ev block.IndelEvent) {
	fresh := make([]int, ev.Length)
	for i := range fresh {
		n.maxSite++
		fresh[i] = n.maxSite
	}
	place := ev.Place
	if place > len(n.sites) {
		place = len(n.sites)
	}
	grown := make([]int, 0, len(n.sites)+ev.Length)
	grown = append(grown, n.sites[:place]...)
	grown = append(grown, fresh...)
	grown = append(grown, n.sites[place:]...)
	n.sites = grown
}

// ApplyAll applies events in order.
func (n *Naive) ApplyAll(events []block.IndelEvent) {
	for _, ev := range events {
		n.Apply(ev)
	}
}

// Sites exposes the global site-id sequence directly.
func (n *Naive) Sites() []int { return append([]int(nil), n.sites...) }

// Blocks reconstructs a block.Block run-length encoding of the site-id
// sequence for cross-validation against TreeNode/ListNode, mirroring
// SequenceNodeNaive.get_block_dto_from_single_branch. A run of consecutive
// original-sequence ids (< original) is a copied block; any other run is an
// inserted block attached to the copied block preceding it (or a leading
// pure-insertion block if the sequence starts with one).
func (n *Naive) Blocks() []block.Block {
	if len(n.sites) == 0 {
		return nil
	}
	var out []block.Block
	blockStart := block.NoAncestor
	copied, inserted := 0, 0
	isCopied := false
	prev := -1
	flush := func() {
		if copied > 0 || inserted > 0 {
			out = append(out, block.Block{AncestorIndex: blockStart, Copied: copied, Inserted: inserted})
		}
	}
	for _, site := range n.sites {
		switch {
		case site == prev+1 && (site < n.original) == isCopied:
			if isCopied {
				copied++
			} else {
				inserted++
			}
		case site < n.original:
			flush()
			copied, inserted = 1, 0
			blockStart = site
			isCopied = true
		case isCopied:
			isCopied = false
			inserted++
		default:
			inserted++
		}
		prev = site
	}
	flush()
	return out
}
