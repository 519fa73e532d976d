package expr

import (
	"testing"

	"github.com/spf13/afero"
)

func TestAnd_IsIntersection(t *testing.T) {
	fsys := musicFs(t)

	mp3 := MustNameMatches("*.mp3")
	big := LargerThan(100)

	got := And(mp3, big).Evaluate(fsys, "/music")
	want := mp3.Evaluate(fsys, "/music").Intersect(big.Evaluate(fsys, "/music"))
	if !got.Equal(want) {
		t.Errorf("And = %v, want intersection %v", got.Sorted(), want.Sorted())
	}
	if !got.Equal(NewSet("/music/b.mp3")) {
		t.Errorf("And(*.mp3, >100) = %v, want only b.mp3", got.Sorted())
	}
}

func TestOr_IsUnion(t *testing.T) {
	fsys := musicFs(t)

	mp3 := MustNameMatches("*.mp3")
	big := LargerThan(100)

	got := Or(big, mp3).Evaluate(fsys, "/music")
	want := big.Evaluate(fsys, "/music").Union(mp3.Evaluate(fsys, "/music"))
	if !got.Equal(want) {
		t.Errorf("Or = %v, want union %v", got.Sorted(), want.Sorted())
	}

	// b.mp3 matches both sides and must appear exactly once.
	if !got.Equal(NewSet("/music/b.mp3", "/music/c.mp3")) {
		t.Errorf("Or(>100, *.mp3) = %v, want {b.mp3, c.mp3}", got.Sorted())
	}
}

func TestNot_IsComplementOfAll(t *testing.T) {
	fsys := musicFs(t)

	mp3 := MustNameMatches("*.mp3")

	got := Not(mp3).Evaluate(fsys, "/music")
	want := All().Evaluate(fsys, "/music").Diff(mp3.Evaluate(fsys, "/music"))
	if !got.Equal(want) {
		t.Errorf("Not = %v, want complement %v", got.Sorted(), want.Sorted())
	}
	if !got.Equal(NewSet("/music/a.txt")) {
		t.Errorf("Not(*.mp3) = %v, want only a.txt", got.Sorted())
	}
}

func TestExcept_SameAsNot(t *testing.T) {
	fsys := musicFs(t)

	mp3 := MustNameMatches("*.mp3")
	if !Except(mp3).Evaluate(fsys, "/music").Equal(Not(mp3).Evaluate(fsys, "/music")) {
		t.Error("Except must select the same files as Not")
	}
}

func TestNot_RelistsPerNode(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/data/keep.txt", 1)

	e := And(Not(MustNameMatches("*.tmp")), Not(LargerThan(1000)))

	first := e.Evaluate(fsys, "/data")
	if !first.Has("/data/keep.txt") {
		t.Fatalf("first evaluation = %v", first.Sorted())
	}

	// A file added between evaluations must show up: the complement is
	// computed against a fresh listing every time.
	writeFile(t, fsys, "/data/new.txt", 1)
	second := e.Evaluate(fsys, "/data")
	if !second.Has("/data/new.txt") {
		t.Errorf("second evaluation = %v, want new.txt included", second.Sorted())
	}
}

func TestNestedComposition(t *testing.T) {
	fsys := musicFs(t)

	// Writable mp3s that are small: c.mp3 only.
	e := And(MustNameMatches("*.mp3"), Not(LargerThan(100)))
	got := e.Evaluate(fsys, "/music")
	if !got.Equal(NewSet("/music/c.mp3")) {
		t.Errorf("And(*.mp3, Not(>100)) = %v, want only c.mp3", got.Sorted())
	}
}
