// Package corpus holds the sequence-of-groups data model: Group,
// Sequence, Corpus, and the per-sequence ElementIndex used by the
// evaluator.
package corpus

import "github.com/JoaoFelipe/patterncounter/intset"

// Group is a finite, unordered set of elements at a single time step.
type Group struct {
	elements intset.Set[string]
}

// NewGroup builds a Group from the given elements (duplicates collapse).
func NewGroup(elements ...string) Group {
	return Group{elements: intset.Of(elements...)}
}

// Contains reports whether e is a member of the group.
func (g Group) Contains(e string) bool {
	if g.elements == nil {
		return false
	}
	return g.elements.Contains(e)
}

// Elements returns the group's members in unspecified order.
func (g Group) Elements() []string {
	if g.elements == nil {
		return nil
	}
	return g.elements.ToSlice()
}

// Len returns the number of elements in the group.
func (g Group) Len() int {
	return g.elements.Len()
}

// Sequence is an ordered, finite list of groups, indexed from 0.
type Sequence []Group

// Corpus is an ordered list of sequences, indexed from 0 (line number).
type Corpus []Sequence
