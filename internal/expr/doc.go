// Package expr implements the file-selection expression engine for filebak.
//
// An [Expr] is a predicate over a filesystem subtree: evaluating it against
// a root directory yields the set of regular files under that root which
// satisfy the predicate. Expressions are pure values; evaluation never
// mutates the filesystem or the expression itself.
//
// # Building Expressions
//
// Leaf expressions select files by attribute:
//
//	expr.All()                    // every regular file
//	expr.NameMatches("*.mp3")     // base name matches a shell glob
//	expr.LargerThan(1 << 20)      // size strictly greater than 1 MiB
//	expr.Writable()               // owner-writable at evaluation time
//
// Combinators compose them:
//
//	expr.And(expr.NameMatches("*.mp3"), expr.LargerThan(100))
//	expr.Or(expr.NameMatches("*.flac"), expr.NameMatches("*.wav"))
//	expr.Not(expr.Writable())
//
// Combinators operate on result sets, so traversal order is never
// observable: And is set intersection, Or is deduplicated union, and Not is
// the complement relative to All.
//
// # Declarative Form
//
// [FromSpec] compiles the nested-map form used in configuration files:
//
//	and:
//	  - name: "*.mp3"
//	  - larger_than: 100
//
// # Error Absorption
//
// Evaluation swallows traversal irregularities: a nonexistent root yields
// the empty set, and an unreadable subtree is treated as absent. The source
// tree is expected to be mutated concurrently by other processes, so these
// conditions are ordinary, not exceptional.
package expr
