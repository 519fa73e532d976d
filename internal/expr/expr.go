package expr

import (
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

// ErrBadPattern indicates a malformed glob pattern passed to NameMatches.
var ErrBadPattern = errors.New("bad glob pattern")

// Expr is a file-selection predicate over a filesystem subtree.
//
// Evaluate returns the set of regular files under root that satisfy the
// predicate. Evaluation is pure and deterministic for a fixed filesystem
// snapshot. Traversal irregularities are absorbed: a nonexistent root
// yields the empty set and unreadable subtrees are skipped.
type Expr interface {
	Evaluate(fsys afero.Fs, root string) Set
}

// walkFiles visits every regular file under root, calling fn with the file
// path and its FileInfo. Traversal errors are absorbed: entries that cannot
// be statted or listed are treated as absent.
func walkFiles(fsys afero.Fs, root string, fn func(path string, info os.FileInfo)) {
	_ = afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Nonexistent root, permission denied, or the entry vanished
			// mid-walk. Treat the subtree as absent and keep going.
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		fn(path, info)
		return nil
	})
}

type allExpr struct{}

// All matches every regular file under the root.
func All() Expr {
	return allExpr{}
}

func (allExpr) Evaluate(fsys afero.Fs, root string) Set {
	out := make(Set)
	walkFiles(fsys, root, func(path string, _ os.FileInfo) {
		out.Add(path)
	})
	return out
}

type nameMatchesExpr struct {
	pattern string
}

// NameMatches matches regular files whose base name satisfies a shell-glob
// pattern. The pattern applies to the base name only, never the full path.
// Malformed patterns are rejected at construction.
func NameMatches(pattern string) (Expr, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.Wrapf(ErrBadPattern, "pattern %q", pattern)
	}
	return nameMatchesExpr{pattern: pattern}, nil
}

// MustNameMatches is NameMatches for patterns known valid at compile time.
// It panics on a malformed pattern.
func MustNameMatches(pattern string) Expr {
	e, err := NameMatches(pattern)
	if err != nil {
		panic(err)
	}
	return e
}

func (e nameMatchesExpr) Evaluate(fsys afero.Fs, root string) Set {
	out := make(Set)
	walkFiles(fsys, root, func(path string, info os.FileInfo) {
		// Pattern was validated at construction, so Match cannot fail here.
		if ok, _ := doublestar.Match(e.pattern, info.Name()); ok {
			out.Add(path)
		}
	})
	return out
}

type largerThanExpr struct {
	threshold int64
}

// LargerThan matches regular files whose size in bytes is strictly greater
// than threshold. A file of exactly threshold bytes is excluded.
func LargerThan(threshold int64) Expr {
	return largerThanExpr{threshold: threshold}
}

func (e largerThanExpr) Evaluate(fsys afero.Fs, root string) Set {
	out := make(Set)
	walkFiles(fsys, root, func(path string, info os.FileInfo) {
		if info.Size() > e.threshold {
			out.Add(path)
		}
	})
	return out
}

type writableExpr struct{}

// Writable matches regular files whose owner-write permission bit is set.
// The check is live: it reflects the permission bits at evaluation time,
// so two evaluations can differ if permissions change between them.
func Writable() Expr {
	return writableExpr{}
}

func (writableExpr) Evaluate(fsys afero.Fs, root string) Set {
	out := make(Set)
	walkFiles(fsys, root, func(path string, info os.FileInfo) {
		if info.Mode().Perm()&0o200 != 0 {
			out.Add(path)
		}
	})
	return out
}
