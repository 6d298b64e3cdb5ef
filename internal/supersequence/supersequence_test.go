package supersequence

import (
	"testing"

	"github.com/nimrodSerokTAU/evo-sim/internal/block"
	"gotest.tools/v3/assert"
)

func TestNewRootViewReferencesEverySite(t *testing.T) {
	super := New(5)
	view := NewRootView(super, 0, true)
	assert.Equal(t, view.Len(), 6) // anchor + 5 real sites
	super.AssignAbsolutePositions()
	assert.Equal(t, super.Width(), 5)
}

func TestUnsavedRootViewDoesNotGrowWidth(t *testing.T) {
	super := New(5)
	NewRootView(super, 0, false)
	assert.Equal(t, super.Width(), 0)
}

func TestChildViewPureInsertionAtStartAnchorsOnParentAnchor(t *testing.T) {
	super := New(3)
	root := NewRootView(super, 0, true)
	blocks := []block.Block{
		{AncestorIndex: block.NoAncestor, Copied: 0, Inserted: 2},
		{AncestorIndex: 0, Copied: 3, Inserted: 0},
	}
	child := NewChildView(super, 1, true, root, blocks)
	assert.Equal(t, child.Len(), 1+2+3) // anchor + 2 inserted + 3 copied
}

func TestChildViewCopiesExactSpan(t *testing.T) {
	super := New(4)
	root := NewRootView(super, 0, true)
	blocks := []block.Block{{AncestorIndex: 0, Copied: 4, Inserted: 0}}
	child := NewChildView(super, 1, true, root, blocks)
	assert.Equal(t, child.Len(), root.Len())
}

func TestInsertAfterInsertsAdjacentToHandle(t *testing.T) {
	super := New(1)
	handles := super.RootHandles()
	anchor := handles[0]
	fresh := super.ConsumeInsertedID()
	inserted := super.InsertAfter(anchor, fresh, true)
	assert.Assert(t, inserted.Prev() == anchor && inserted.Next() == handles[1])
}

func TestReferenceIsIdempotent(t *testing.T) {
	super := New(2)
	handles := super.RootHandles()
	super.Reference(handles[1])
	super.Reference(handles[1])
	assert.Equal(t, super.Width(), 1)
}

func TestReferenceNeverPromotesAnchor(t *testing.T) {
	super := New(0)
	handles := super.RootHandles()
	super.Reference(handles[0])
	assert.Equal(t, super.Width(), 0)
}
