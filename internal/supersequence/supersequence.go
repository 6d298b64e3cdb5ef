// Package supersequence implements C6 (SuperSequence) and C7 (SequenceView)
// of spec §4.5: an append-only, handle-stable ordered spine of every site
// that ever existed anywhere in the tree, plus per-node views into it.
//
// The original implementation (indelsim.classes.sequence/super_sequence)
// builds this spine on python-llist's sllist, chosen there for the same
// reason we reach for container/list here: O(1) insert-after with node
// handles that remain valid no matter how much the list grows around them.
// No third-party Go linked-list package appears anywhere in the example
// corpus, so container/list is the direct idiomatic substitute — here the
// standard library is the right call, not a concession.
package supersequence

import "container/list"

// anchorSiteID marks the sentinel site every view starts from — it
// guarantees there is always a valid "insert after" handle, even for an
// insertion at position zero. It is never promoted to a column.
const anchorSiteID = -1

// Site is the payload stored in each spine element.
type Site struct {
	SiteID           int
	IsColumn         bool
	AbsolutePosition int
}

// Handle is a stable reference into the spine. It remains valid across any
// number of insertions elsewhere in the spine.
type Handle = *list.Element

// SuperSequence owns the whole tree's site spine, shared read-write by
// every SequenceView for the lifetime of one simulation (spec §5: no
// locking needed because the driver is single-threaded).
type SuperSequence struct {
	spine          *list.List
	width          int
	nextInsertedID int
}

// New seeds the spine with the anchor sentinel followed by rootLength real
// sites numbered 0..rootLength-1.
func New(rootLength int) *SuperSequence {
	spine := list.New()
	spine.PushBack(&Site{SiteID: anchorSiteID})
	for i := 0; i < rootLength; i++ {
		spine.PushBack(&Site{SiteID: i})
	}
	return &SuperSequence{spine: spine, nextInsertedID: rootLength}
}

func siteOf(h Handle) *Site { return h.Value.(*Site) }

// RootHandles returns every spine element in order, for the root's view.
func (s *SuperSequence) RootHandles() []Handle {
	handles := make([]Handle, 0, s.spine.Len())
	for e := s.spine.Front(); e != nil; e = e.Next() {
		handles = append(handles, e)
	}
	return handles
}

// Reference marks a site a retained MSA column, bumping the width once on
// first reference. The anchor sentinel is never a column no matter how
// often it is referenced — every view's own anchor handle gets passed
// through Reference unconditionally, so the no-op guard lives here rather
// than at every call site.
func (s *SuperSequence) Reference(h Handle) {
	site := siteOf(h)
	if site.SiteID == anchorSiteID {
		return
	}
	if !site.IsColumn {
		site.IsColumn = true
		s.width++
	}
}

// InsertAfter splices a new site immediately after h and returns a handle
// to it.
func (s *SuperSequence) InsertAfter(h Handle, siteID int, isColumn bool) Handle {
	site := &Site{SiteID: siteID}
	inserted := s.spine.InsertAfter(site, h)
	if isColumn {
		s.Reference(inserted)
	}
	return inserted
}

// NextInsertedID returns the next fresh site id without consuming it.
func (s *SuperSequence) NextInsertedID() int { return s.nextInsertedID }

// ConsumeInsertedID hands out the next fresh site id and advances the
// counter.
func (s *SuperSequence) ConsumeInsertedID() int {
	id := s.nextInsertedID
	s.nextInsertedID++
	return id
}

// Width is the current MSA width: the count of referenced (is_column)
// sites.
func (s *SuperSequence) Width() int { return s.width }

// AssignAbsolutePositions walks the spine once, numbering every column
// site contiguously from 0. Call this exactly once, after every view in
// the simulation has finished growing the spine.
func (s *SuperSequence) AssignAbsolutePositions() {
	pos := 0
	for e := s.spine.Front(); e != nil; e = e.Next() {
		site := siteOf(e)
		if !site.IsColumn {
			continue
		}
		site.AbsolutePosition = pos
		pos++
	}
}

// AbsolutePosition reads back the column position assigned by
// AssignAbsolutePositions. Only meaningful for sites with IsColumn true.
func AbsolutePosition(h Handle) int { return siteOf(h).AbsolutePosition }

// IsColumn reports whether a handle's site was ever referenced.
func IsColumn(h Handle) bool { return siteOf(h).IsColumn }
