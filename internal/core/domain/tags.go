package domain

import "slices"

// TagAll is the implicit tag carried by every task. Running with the
// default --tags all therefore matches everything.
const TagAll = "all"

// TagSet is an ordered, deduplicated set of tag names. Order is
// preserved for listing output; matching uses set semantics.
type TagSet struct {
	names []string
}

// NewTagSet creates a TagSet from the given names, dropping duplicates
// while keeping first-occurrence order.
func NewTagSet(names ...string) TagSet {
	t := TagSet{}
	for _, n := range names {
		if n == "" || t.Contains(n) {
			continue
		}
		t.names = append(t.names, n)
	}
	return t
}

// Contains reports whether name is in the set.
func (t TagSet) Contains(name string) bool {
	return slices.Contains(t.names, name)
}

// Union returns a new TagSet containing the tags of both sets.
func (t TagSet) Union(other TagSet) TagSet {
	merged := make([]string, 0, len(t.names)+len(other.names))
	merged = append(merged, t.names...)
	merged = append(merged, other.names...)
	return NewTagSet(merged...)
}

// Intersects reports whether the two sets share at least one tag.
func (t TagSet) Intersects(other TagSet) bool {
	for _, n := range t.names {
		if other.Contains(n) {
			return true
		}
	}
	return false
}

// Matches implements the task selection rule: the set must intersect
// only and must not intersect skip.
func (t TagSet) Matches(only, skip TagSet) bool {
	return t.Intersects(only) && !t.Intersects(skip)
}

// Names returns the tags in insertion order. The returned slice is a copy.
func (t TagSet) Names() []string {
	return slices.Clone(t.names)
}

// Len returns the number of tags in the set.
func (t TagSet) Len() int {
	return len(t.names)
}
