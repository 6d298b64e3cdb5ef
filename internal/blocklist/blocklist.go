// Package blocklist implements the "list" SeqNode variant of spec §4.3: the
// same block classification and rewrite rules as blocktree, applied against
// a sorted slice instead of an AVL tree. It exists purely for cross-
// validation (testable property 3) and as a fall-back when block counts are
// small enough that O(n) operations don't matter.
package blocklist

import "github.com/nimrodSerokTAU/evo-sim/internal/block"

// Entry is a handle into the list: a stable pointer to one element. Because
// List stores *Entry values in a slice, inserting or deleting elsewhere in
// the slice never invalidates a previously returned *Entry.
type Entry struct {
	Block block.Block
}

// List is a sequence-ordered (by AncestorIndex, with block.NoAncestor
// sorting first) slice of blocks.
type List struct {
	entries []*Entry
}

// New creates a list with a single entry holding the initial block.
func New(initial block.Block) *List {
	return &List{entries: []*Entry{{Block: initial}}}
}

// TotalLength sums every entry's own length.
func (l *List) TotalLength() int {
	total := 0
	for _, e := range l.entries {
		total += e.Block.Length()
	}
	return total
}

// Insert adds a new block in key order and returns its handle.
func (l *List) Insert(b block.Block) *Entry {
	e := &Entry{Block: b}
	idx := l.indexForKey(b.AncestorIndex)
	l.entries = append(l.entries, nil)
	copy(l.entries[idx+1:], l.entries[idx:])
	l.entries[idx] = e
	return e
}

func (l *List) indexForKey(key int) int {
	lo, hi := 0, len(l.entries)
	for lo < hi {
		mid := (lo + hi) / 2
		if l.entries[mid].Block.AncestorIndex < key {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// DeleteEntry removes an entry by identity.
func (l *List) DeleteEntry(target *Entry) {
	for i, e := range l.entries {
		if e == target {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return
		}
	}
}

// UpdateInPlace overwrites Copied and/or Inserted on an existing entry.
func (l *List) UpdateInPlace(e *Entry, newCopied, newInserted *int) {
	if newCopied != nil {
		e.Block.Copied = *newCopied
	}
	if newInserted != nil {
		e.Block.Inserted = *newInserted
	}
}

// IncrementInPlace adds deltas to Copied and/or Inserted on an existing entry.
func (l *List) IncrementInPlace(e *Entry, deltaCopied, deltaInserted *int) {
	if deltaCopied != nil {
		e.Block.Copied += *deltaCopied
	}
	if deltaInserted != nil {
		e.Block.Inserted += *deltaInserted
	}
}

// RekeyToInsertOnly turns an entry into a pure-insertion block in place. As
// with blocktree, this is only called on the current leftmost entry, so the
// sorted invariant is preserved (block.NoAncestor still sorts first).
func (l *List) RekeyToInsertOnly(e *Entry) {
	e.Block.AncestorIndex = block.NoAncestor
}

// IsLeftmost reports whether e is the first entry of the list.
func (l *List) IsLeftmost(e *Entry) bool {
	return len(l.entries) > 0 && l.entries[0] == e
}

// Search returns the entry whose span contains position and the offset of
// position within it, under the same AtEnd/roll-forward convention as
// blocktree.Search (see its doc comment — isInsertion resolves the
// position==length boundary case differently for insertions vs deletions).
func (l *List) Search(position int, isInsertion bool) (*Entry, int) {
	offset := position
	for i, e := range l.entries {
		own := e.Block.Length()
		lastEntry := i == len(l.entries)-1
		if (!isInsertion && offset < own) || (isInsertion && offset <= own) {
			return e, offset
		}
		if lastEntry {
			return e, offset
		}
		offset -= own
	}
	return nil, 0
}

// Entries returns the entries in sequence order.
func (l *List) Entries() []*Entry {
	return l.entries
}

// Blocks is a convenience projection onto plain block.Block values.
func (l *List) Blocks() []block.Block {
	out := make([]block.Block, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Block
	}
	return out
}
