package expr

import (
	"slices"
	"testing"
)

func TestSet_Operations(t *testing.T) {
	a := NewSet("/x", "/y")
	b := NewSet("/y", "/z")

	if got := a.Union(b); !got.Equal(NewSet("/x", "/y", "/z")) {
		t.Errorf("Union = %v", got.Sorted())
	}
	if got := a.Intersect(b); !got.Equal(NewSet("/y")) {
		t.Errorf("Intersect = %v", got.Sorted())
	}
	if got := a.Diff(b); !got.Equal(NewSet("/x")) {
		t.Errorf("Diff = %v", got.Sorted())
	}
}

func TestSet_Equal(t *testing.T) {
	if !NewSet().Equal(NewSet()) {
		t.Error("empty sets should be equal")
	}
	if NewSet("/x").Equal(NewSet("/x", "/y")) {
		t.Error("sets of different size should not be equal")
	}
	if NewSet("/x").Equal(NewSet("/y")) {
		t.Error("disjoint sets should not be equal")
	}
}

func TestSet_Sorted(t *testing.T) {
	s := NewSet("/c", "/a", "/b")
	got := s.Sorted()
	if !slices.Equal(got, []string{"/a", "/b", "/c"}) {
		t.Errorf("Sorted = %v", got)
	}
}
