// Package variable implements pattern variables: declarations, their
// corpus-derived universes, and the injective binding enumerator.
package variable

import (
	"fmt"
	"strings"

	"github.com/JoaoFelipe/patterncounter/corpus"
	"github.com/JoaoFelipe/patterncounter/intset"
)

// DomainKind tags the variant of a Domain.
type DomainKind byte

const (
	// DomainAny admits every element in the corpus.
	DomainAny DomainKind = iota
	// DomainExclude admits every corpus element not in Set.
	DomainExclude
	// DomainInclude admits only corpus elements in Set.
	DomainInclude
)

// Domain restricts the elements a Variable may bind to.
type Domain struct {
	Kind DomainKind
	Set  intset.Set[string]
}

// Variable is a symbolic placeholder ranging over a corpus-derived
// universe, restricted by Domain.
type Variable struct {
	Name   string
	Domain Domain
}

// ParseDecl parses a variable declaration in one of three shapes:
// "NAME", "NAME~A,B,C", "NAME:A,B,C".
func ParseDecl(decl string) (Variable, error) {
	if i := strings.IndexByte(decl, '~'); i >= 0 {
		name, set := decl[:i], decl[i+1:]
		if name == "" {
			return Variable{}, fmt.Errorf("variable: empty name in declaration %q", decl)
		}
		return Variable{Name: name, Domain: Domain{Kind: DomainExclude, Set: splitSet(set)}}, nil
	}
	if i := strings.IndexByte(decl, ':'); i >= 0 {
		name, set := decl[:i], decl[i+1:]
		if name == "" {
			return Variable{}, fmt.Errorf("variable: empty name in declaration %q", decl)
		}
		return Variable{Name: name, Domain: Domain{Kind: DomainInclude, Set: splitSet(set)}}, nil
	}
	if decl == "" {
		return Variable{}, fmt.Errorf("variable: empty declaration")
	}
	return Variable{Name: decl, Domain: Domain{Kind: DomainAny}}, nil
}

func splitSet(s string) intset.Set[string] {
	parts := strings.Split(s, ",")
	set := intset.New[string](len(parts))
	for _, p := range parts {
		if p != "" {
			set.Add(p)
		}
	}
	return set
}

// Universe computes V's corpus-derived universe once: the elements
// appearing anywhere in c, filtered by V's domain rule.
func Universe(c corpus.Corpus, v Variable) []string {
	all := corpusElements(c)

	var universe []string
	for _, e := range all {
		if admits(v.Domain, e) {
			universe = append(universe, e)
		}
	}
	return universe
}

func admits(d Domain, e string) bool {
	switch d.Kind {
	case DomainExclude:
		return !d.Set.Contains(e)
	case DomainInclude:
		return d.Set.Contains(e)
	default:
		return true
	}
}

// corpusElements returns every distinct element in c. Order is a walk
// over sequences and groups and is not guaranteed stable within a group;
// binding enumeration order is an implementation detail.
func corpusElements(c corpus.Corpus) []string {
	seen := intset.New[string]()
	var order []string
	for _, seq := range c {
		for _, g := range seq {
			for _, e := range g.Elements() {
				if !seen.Contains(e) {
					seen.Add(e)
					order = append(order, e)
				}
			}
		}
	}
	return order
}
