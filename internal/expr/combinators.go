package expr

import "github.com/spf13/afero"

type notExpr struct {
	inner Expr
}

// Not matches every regular file under the root that the inner expression
// does not match: the complement of inner relative to All.
//
// Each evaluation re-lists the root independently; nothing is cached across
// sibling Not nodes, so the complement always reflects the directory as it
// is at the moment of that node's evaluation.
func Not(inner Expr) Expr {
	return notExpr{inner: inner}
}

// Except is the exclusion combinator. It is the same operation as [Not]
// under the name the configuration surface exposes.
func Except(inner Expr) Expr {
	return Not(inner)
}

func (e notExpr) Evaluate(fsys afero.Fs, root string) Set {
	return All().Evaluate(fsys, root).Diff(e.inner.Evaluate(fsys, root))
}

type andExpr struct {
	left, right Expr
}

// And matches files selected by both sub-expressions: set intersection.
func And(left, right Expr) Expr {
	return andExpr{left: left, right: right}
}

func (e andExpr) Evaluate(fsys afero.Fs, root string) Set {
	return e.left.Evaluate(fsys, root).Intersect(e.right.Evaluate(fsys, root))
}

type orExpr struct {
	left, right Expr
}

// Or matches files selected by either sub-expression: set union, with a
// file matching both sides appearing once.
func Or(left, right Expr) Expr {
	return orExpr{left: left, right: right}
}

func (e orExpr) Evaluate(fsys afero.Fs, root string) Set {
	return e.left.Evaluate(fsys, root).Union(e.right.Evaluate(fsys, root))
}
