// Package patterncounter ties the lexer, parser, evaluator, variable
// enumerator and statistics aggregator together into the driver
// operations exposed to callers: Count (single or multi-pattern,
// variable-aware) and Select.
package patterncounter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/JoaoFelipe/patterncounter/corpus"
	"github.com/JoaoFelipe/patterncounter/eval"
	"github.com/JoaoFelipe/patterncounter/stats"
	"github.com/JoaoFelipe/patterncounter/syntax"
	"github.com/JoaoFelipe/patterncounter/variable"
)

// Driver holds a loaded corpus and its per-sequence element indices,
// built once and reused across every pattern and binding evaluated
// against it.
type Driver struct {
	corpus  corpus.Corpus
	rawLine []string
	indices []*corpus.ElementIndex
}

// NewDriver builds a Driver over an already-parsed corpus.
func NewDriver(c corpus.Corpus) *Driver {
	indices := make([]*corpus.ElementIndex, len(c))
	for i, seq := range c {
		indices[i] = corpus.BuildElementIndex(seq)
	}
	return &Driver{corpus: c, indices: indices}
}

// LoadCorpus reads a corpus from r and builds a ready-to-use Driver,
// retaining each line's raw source text for the selection operation.
func LoadCorpus(r io.Reader) (*Driver, error) {
	var c corpus.Corpus
	var raw []string

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		seq, err := corpus.ParseSequenceLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		c = append(c, seq)
		raw = append(raw, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	d := NewDriver(c)
	d.rawLine = raw
	return d, nil
}

// Len returns the number of sequences in the driver's corpus.
func (d *Driver) Len() int { return len(d.corpus) }

// BindingResult is one binding's per-sequence match set.
type BindingResult struct {
	Binding variable.Binding
	Matches []int
}

// PatternResult is a single pattern's aggregate result, plus its
// per-binding breakdown when it carries free variables.
type PatternResult struct {
	Pattern  string
	Support  stats.Fraction
	Matches  []int
	Bindings []BindingResult
}

// Report is the full output of Count/CountAll: per-pattern results,
// the joint support over every pattern supplied, and pairwise
// association-rule statistics.
type Report struct {
	Patterns []PatternResult
	// Joint is the support of the m-way intersection of every pattern in
	// Patterns (the sequences matching all of them). JointDefined is
	// false when Patterns holds fewer than two entries; patterns that
	// failed to parse are not in Patterns.
	Joint        stats.Fraction
	JointDefined bool
	Pairs        []stats.PairStats
}

// PatternError pairs a pattern string with the error reported for it:
// a parse error, which halts that pattern, or a DomainError, which
// leaves it in the report with support 0. Other patterns in the same
// CountAll call proceed independently.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Count runs a single pattern through parse, variable enumeration and
// evaluation, returning its PatternResult. A DomainError is returned
// alongside the pattern's (support-0) result rather than in place of
// it; a parse error leaves the result zero-valued.
func (d *Driver) Count(pattern string, declared []variable.Variable) (PatternResult, error) {
	report, errs := d.CountAll([]string{pattern}, declared)
	var err error
	if len(errs) > 0 {
		err = errs[0]
	}
	if len(report.Patterns) == 0 {
		return PatternResult{}, err
	}
	return report.Patterns[0], err
}

// CountAll runs every pattern independently, aggregates support for
// each, and computes the joint support over all successfully-parsed
// patterns plus association-rule statistics for every ordered pair. A
// pattern that fails to parse is omitted from Report and reported in
// the returned error slice; every other pattern still proceeds. A
// pattern whose free variable has an empty domain is reported with
// support 0 (its DomainError is also returned) rather than omitted,
// since evaluation itself cannot fail.
func (d *Driver) CountAll(patterns []string, declared []variable.Variable) (Report, []error) {
	var results []PatternResult
	var errs []error

	universes := map[string][]string{}
	for _, v := range declared {
		universes[v.Name] = variable.Universe(d.corpus, v)
	}

	for _, patternText := range patterns {
		node, err := syntax.NewParser().Parse(patternText)
		if err != nil {
			errs = append(errs, &PatternError{Pattern: patternText, Err: err})
			continue
		}

		result, err := d.evalPattern(patternText, node, declared, universes)
		if err != nil {
			errs = append(errs, &PatternError{Pattern: patternText, Err: err})
		}
		results = append(results, result)
	}

	matchLists := make([][]int, len(results))
	for i, r := range results {
		matchLists[i] = r.Matches
	}
	statsResult := stats.Aggregate(matchLists, d.Len())

	return Report{
		Patterns:     results,
		Joint:        statsResult.Joint,
		JointDefined: statsResult.JointDefined,
		Pairs:        statsResult.Pairs,
	}, errs
}

// evalPattern always returns a usable PatternResult, even when err is
// non-nil: a DomainError still yields a zero-support result so the
// pattern stays in the report instead of vanishing from it.
func (d *Driver) evalPattern(patternText string, node *syntax.Node, declared []variable.Variable, universes map[string][]string) (PatternResult, error) {
	free := freeVariables(node, declared)
	if len(free) == 0 {
		matches := d.matchSequences(node)
		return PatternResult{
			Pattern: patternText,
			Support: stats.NewFraction(len(matches), max(d.Len(), 1)),
			Matches: matches,
		}, nil
	}

	for _, v := range free {
		if len(universes[v.Name]) == 0 {
			return PatternResult{
				Pattern: patternText,
				Support: stats.NewFraction(0, max(d.Len(), 1)),
			}, &variable.DomainError{Variable: v.Name}
		}
	}

	aggregate := map[int]bool{}
	var bindings []BindingResult
	for binding := range variable.Enumerate(free, universes) {
		rewritten := variable.Substitute(node, binding)
		matches := d.matchSequences(rewritten)
		bindings = append(bindings, BindingResult{Binding: binding, Matches: matches})
		for _, s := range matches {
			aggregate[s] = true
		}
	}

	return PatternResult{
		Pattern:  patternText,
		Support:  stats.NewFraction(len(aggregate), max(d.Len(), 1)),
		Matches:  sortedKeys(aggregate),
		Bindings: bindings,
	}, nil
}

// matchSequences evaluates node against every sequence, optionally
// fanning the loop out across goroutines with errgroup when the corpus
// is large; the aggregator only ever sees a commutative union, so no
// ordering guarantee is required.
func (d *Driver) matchSequences(node *syntax.Node) []int {
	const parallelThreshold = 64
	if d.Len() < parallelThreshold {
		var matches []int
		for i, idx := range d.indices {
			if eval.Matches(node, eval.RootContext(idx)) {
				matches = append(matches, i)
			}
		}
		return matches
	}

	hits := make([]bool, d.Len())
	g, _ := errgroup.WithContext(context.Background())
	for i, idx := range d.indices {
		i, idx := i, idx
		g.Go(func() error {
			hits[i] = eval.Matches(node, eval.RootContext(idx))
			return nil
		})
	}
	_ = g.Wait()

	var matches []int
	for i, hit := range hits {
		if hit {
			matches = append(matches, i)
		}
	}
	return matches
}

// freeVariables returns the subset of declared whose names occur as an
// Elem/InElem/OutElem name anywhere in node.
func freeVariables(node *syntax.Node, declared []variable.Variable) []variable.Variable {
	names := map[string]bool{}
	collectNames(node, names)

	var free []variable.Variable
	for _, v := range declared {
		if names[v.Name] {
			free = append(free, v)
		}
	}
	return free
}

func collectNames(node *syntax.Node, names map[string]bool) {
	if node == nil {
		return
	}
	switch node.Op {
	case syntax.OpElem, syntax.OpInElem, syntax.OpOutElem:
		names[node.Name] = true
	}
	for _, child := range node.Args {
		collectNames(child, names)
	}
}

func sortedKeys(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Select returns the requested sequence lines, each prefixed by its
// index and a ":" delimiter, in the order the indices were requested
// (not corpus order).
func (d *Driver) Select(indices []int) ([]string, error) {
	out := make([]string, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(d.rawLine) {
			return nil, fmt.Errorf("patterncounter: index %d out of range [0,%d)", i, len(d.rawLine))
		}
		out = append(out, fmt.Sprintf("%d:%s", i, d.rawLine[i]))
	}
	return out, nil
}
