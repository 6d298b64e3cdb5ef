package block

import "testing"

func TestBlockLength(t *testing.T) {
	b := Block{AncestorIndex: 4, Copied: 3, Inserted: 2}
	if got := b.Length(); got != 5 {
		t.Fatalf("Length() = %d, want 5", got)
	}
}

func TestBlockIsRedundant(t *testing.T) {
	cases := []struct {
		name string
		b    Block
		want bool
	}{
		{"both zero", Block{AncestorIndex: 0, Copied: 0, Inserted: 0}, true},
		{"copied only", Block{AncestorIndex: 0, Copied: 1, Inserted: 0}, false},
		{"inserted only", Block{AncestorIndex: NoAncestor, Copied: 0, Inserted: 1}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.b.IsRedundant(); got != c.want {
				t.Fatalf("IsRedundant() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestBlockIsPureInsertion(t *testing.T) {
	pure := Block{AncestorIndex: NoAncestor, Copied: 0, Inserted: 3}
	if !pure.IsPureInsertion() {
		t.Fatalf("expected pure insertion block to report true")
	}
	mixed := Block{AncestorIndex: 0, Copied: 2, Inserted: 3}
	if mixed.IsPureInsertion() {
		t.Fatalf("expected mixed block to report false")
	}
}

func TestIndelEventConstructors(t *testing.T) {
	ins := Insertion(5, 2)
	if !ins.IsInsertion || ins.Place != 5 || ins.Length != 2 {
		t.Fatalf("Insertion() = %+v, want {true 5 2}", ins)
	}
	del := Deletion(5, 2)
	if del.IsInsertion || del.Place != 5 || del.Length != 2 {
		t.Fatalf("Deletion() = %+v, want {false 5 2}", del)
	}
}
