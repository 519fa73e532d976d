package expr

import "slices"

// Set is an unordered collection of file paths. All combinators operate on
// Sets, so only membership is significant, never traversal order.
type Set map[string]struct{}

// NewSet creates a Set containing the given paths.
func NewSet(paths ...string) Set {
	s := make(Set, len(paths))
	for _, p := range paths {
		s[p] = struct{}{}
	}
	return s
}

// Add inserts a path into the set.
func (s Set) Add(path string) {
	s[path] = struct{}{}
}

// Has reports whether path is a member of the set.
func (s Set) Has(path string) bool {
	_, ok := s[path]
	return ok
}

// Union returns a new Set containing every member of s and other.
// Paths present in both appear once.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for p := range s {
		out[p] = struct{}{}
	}
	for p := range other {
		out[p] = struct{}{}
	}
	return out
}

// Intersect returns a new Set containing paths present in both s and other.
func (s Set) Intersect(other Set) Set {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(Set)
	for p := range small {
		if _, ok := large[p]; ok {
			out[p] = struct{}{}
		}
	}
	return out
}

// Diff returns a new Set containing members of s that are not in other.
func (s Set) Diff(other Set) Set {
	out := make(Set)
	for p := range s {
		if _, ok := other[p]; !ok {
			out[p] = struct{}{}
		}
	}
	return out
}

// Equal reports whether s and other contain exactly the same paths.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for p := range s {
		if _, ok := other[p]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns the members of s as a lexically sorted slice.
// Used for stable output and manifests; evaluation itself is order-free.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}
