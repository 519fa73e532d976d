package expr

import (
	"os"
	"testing"

	"github.com/spf13/afero"
)

// musicFs builds the fixture tree used across the engine tests:
// a.txt (10 bytes), b.mp3 (2000 bytes), c.mp3 (5 bytes).
func musicFs(t *testing.T) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/music/a.txt", 10)
	writeFile(t, fsys, "/music/b.mp3", 2000)
	writeFile(t, fsys, "/music/c.mp3", 5)
	return fsys
}

func writeFile(t *testing.T, fsys afero.Fs, path string, size int) {
	t.Helper()
	if err := afero.WriteFile(fsys, path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func chmod(t *testing.T, fsys afero.Fs, path string, mode os.FileMode) {
	t.Helper()
	if err := fsys.Chmod(path, mode); err != nil {
		t.Fatalf("chmod %s: %v", path, err)
	}
}

func TestAll(t *testing.T) {
	fsys := musicFs(t)

	got := All().Evaluate(fsys, "/music")
	want := NewSet("/music/a.txt", "/music/b.mp3", "/music/c.mp3")
	if !got.Equal(want) {
		t.Errorf("All() = %v, want %v", got.Sorted(), want.Sorted())
	}
}

func TestAll_SkipsDirectories(t *testing.T) {
	fsys := musicFs(t)
	if err := fsys.MkdirAll("/music/empty", 0o755); err != nil {
		t.Fatal(err)
	}

	got := All().Evaluate(fsys, "/music")
	if got.Has("/music/empty") {
		t.Error("All() should not match directories")
	}
}

func TestNameMatches(t *testing.T) {
	fsys := musicFs(t)

	e := MustNameMatches("*.mp3")
	got := e.Evaluate(fsys, "/music")
	want := NewSet("/music/b.mp3", "/music/c.mp3")
	if !got.Equal(want) {
		t.Errorf("NameMatches(*.mp3) = %v, want %v", got.Sorted(), want.Sorted())
	}
}

func TestNameMatches_BaseNameOnly(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/music/sub/track.mp3", 1)

	// The pattern applies to "track.mp3", not "/music/sub/track.mp3".
	got := MustNameMatches("track.*").Evaluate(fsys, "/music")
	if !got.Has("/music/sub/track.mp3") {
		t.Errorf("pattern should match base name in subdirectory, got %v", got.Sorted())
	}

	got = MustNameMatches("music*").Evaluate(fsys, "/music")
	if len(got) != 0 {
		t.Errorf("pattern must not match path components, got %v", got.Sorted())
	}
}

func TestNameMatches_BadPattern(t *testing.T) {
	if _, err := NameMatches("[unterminated"); err == nil {
		t.Fatal("NameMatches should reject a malformed pattern")
	}
}

func TestLargerThan_Boundary(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/data/exact", 100)
	writeFile(t, fsys, "/data/over", 101)

	got := LargerThan(100).Evaluate(fsys, "/data")
	if got.Has("/data/exact") {
		t.Error("LargerThan(100) must exclude a file of exactly 100 bytes")
	}
	if !got.Has("/data/over") {
		t.Error("LargerThan(100) must include a file of 101 bytes")
	}
}

func TestWritable(t *testing.T) {
	fsys := musicFs(t)
	chmod(t, fsys, "/music/a.txt", 0o444)

	got := Writable().Evaluate(fsys, "/music")
	want := NewSet("/music/b.mp3", "/music/c.mp3")
	if !got.Equal(want) {
		t.Errorf("Writable() = %v, want %v", got.Sorted(), want.Sorted())
	}
}

func TestWritable_LiveCheck(t *testing.T) {
	fsys := musicFs(t)

	before := Writable().Evaluate(fsys, "/music")
	if !before.Has("/music/a.txt") {
		t.Fatal("a.txt should start writable")
	}

	chmod(t, fsys, "/music/a.txt", 0o444)

	after := Writable().Evaluate(fsys, "/music")
	if after.Has("/music/a.txt") {
		t.Error("Writable() must reflect permission changes between evaluations")
	}
}

func TestEvaluate_NonexistentRoot(t *testing.T) {
	fsys := afero.NewMemMapFs()

	exprs := map[string]Expr{
		"All":         All(),
		"NameMatches": MustNameMatches("*"),
		"LargerThan":  LargerThan(0),
		"Writable":    Writable(),
		"Not":         Not(All()),
		"And":         And(All(), Writable()),
		"Or":          Or(All(), Writable()),
	}
	for name, e := range exprs {
		if got := e.Evaluate(fsys, "/does/not/exist"); len(got) != 0 {
			t.Errorf("%s on nonexistent root = %v, want empty set", name, got.Sorted())
		}
	}
}

// denyOpenFs fails Open for one path, simulating an unreadable directory.
type denyOpenFs struct {
	afero.Fs
	path string
}

func (f *denyOpenFs) Open(name string) (afero.File, error) {
	if name == f.path {
		return nil, os.ErrPermission
	}
	return f.Fs.Open(name)
}

func TestEvaluate_UnreadableSubtree(t *testing.T) {
	base := afero.NewMemMapFs()
	writeFile(t, base, "/data/ok.txt", 1)
	writeFile(t, base, "/data/locked/secret.txt", 1)

	fsys := &denyOpenFs{Fs: base, path: "/data/locked"}

	got := All().Evaluate(fsys, "/data")
	if !got.Has("/data/ok.txt") {
		t.Errorf("sibling of unreadable subtree should still match, got %v", got.Sorted())
	}
	if got.Has("/data/locked/secret.txt") {
		t.Error("files under an unreadable directory should be treated as absent")
	}

	// Complements operate on the same partial listing.
	got = Not(MustNameMatches("*.mp3")).Evaluate(fsys, "/data")
	if !got.Equal(NewSet("/data/ok.txt")) {
		t.Errorf("Not over partial tree = %v, want only ok.txt", got.Sorted())
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	fsys := musicFs(t)
	e := And(MustNameMatches("*.mp3"), LargerThan(100))

	first := e.Evaluate(fsys, "/music")
	second := e.Evaluate(fsys, "/music")
	if !first.Equal(second) {
		t.Errorf("repeated evaluation differs: %v vs %v", first.Sorted(), second.Sorted())
	}
}
