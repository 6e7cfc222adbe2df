package patterncounter

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/JoaoFelipe/patterncounter/corpus"
	"github.com/JoaoFelipe/patterncounter/stats"
	"github.com/JoaoFelipe/patterncounter/variable"
)

// referenceCorpus is the end-to-end scenario corpus:
//
//	0: A
//	1: B
//	2: A B
//	3: A ; B C
//	4: B ; A B ; A ; C
func referenceCorpus() corpus.Corpus {
	return corpus.Corpus{
		corpus.Sequence{corpus.NewGroup("A")},
		corpus.Sequence{corpus.NewGroup("B")},
		corpus.Sequence{corpus.NewGroup("A", "B")},
		corpus.Sequence{corpus.NewGroup("A"), corpus.NewGroup("B", "C")},
		corpus.Sequence{
			corpus.NewGroup("B"),
			corpus.NewGroup("A", "B"),
			corpus.NewGroup("A"),
			corpus.NewGroup("C"),
		},
	}
}

func assertMatches(t *testing.T, name string, have []int, want []int) {
	t.Helper()
	haveSorted := append([]int(nil), have...)
	sort.Ints(haveSorted)
	wantSorted := append([]int(nil), want...)
	sort.Ints(wantSorted)
	if len(wantSorted) == 0 {
		wantSorted = nil
	}
	if !reflect.DeepEqual(haveSorted, wantSorted) {
		t.Errorf("%s: have %v, want %v", name, haveSorted, wantSorted)
	}
}

func TestScenarioS1AndWitnesses(t *testing.T) {
	d := NewDriver(referenceCorpus())
	r, err := d.Count("A B", nil)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if have := r.Support.Float64(); have != 0.6 {
		t.Errorf("support: have %v, want 0.6", have)
	}
	assertMatches(t, "A B", r.Matches, []int{2, 3, 4})
}

func TestScenarioS2Intersect(t *testing.T) {
	d := NewDriver(referenceCorpus())
	r, err := d.Count("A & B", nil)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if have := r.Support.Float64(); have != 0.4 {
		t.Errorf("support: have %v, want 0.4", have)
	}
	assertMatches(t, "A & B", r.Matches, []int{2, 4})
}

func TestScenarioS3StrictSeq(t *testing.T) {
	d := NewDriver(referenceCorpus())
	r, err := d.Count("A -> B", nil)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if have := r.Support.Float64(); have != 0.2 {
		t.Errorf("support: have %v, want 0.2", have)
	}
	assertMatches(t, "A -> B", r.Matches, []int{3})
}

func TestScenarioS4SliceWithRemoval(t *testing.T) {
	d := NewDriver(referenceCorpus())
	r, err := d.Count("[A OutB]", nil)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if have := r.Support.Float64(); have != 0.2 {
		t.Errorf("support: have %v, want 0.2", have)
	}
	assertMatches(t, "[A OutB]", r.Matches, []int{4})
}

func TestScenarioS5SliceThenSeq(t *testing.T) {
	d := NewDriver(referenceCorpus())
	r, err := d.Count("[A] -> C", nil)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if have := r.Support.Float64(); have != 0.4 {
		t.Errorf("support: have %v, want 0.4", have)
	}
	assertMatches(t, "[A] -> C", r.Matches, []int{3, 4})
}

func TestScenarioS6NoMatch(t *testing.T) {
	d := NewDriver(referenceCorpus())
	r, err := d.Count("Z", nil)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if have := r.Support.Float64(); have != 0.0 {
		t.Errorf("support: have %v, want 0.0", have)
	}
	assertMatches(t, "Z", r.Matches, nil)
}

func TestScenarioS7VariablesExcludeSelfBinding(t *testing.T) {
	d := NewDriver(referenceCorpus())
	x, _ := variable.ParseDecl("x")
	y, _ := variable.ParseDecl("y")

	r, err := d.Count("x & y", []variable.Variable{x, y})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if have := r.Support.Float64(); have != 0.6 {
		t.Errorf("aggregate support: have %v, want 0.6", have)
	}
	assertMatches(t, "x & y aggregate", r.Matches, []int{2, 3, 4})

	foundBA, foundBC := false, false
	for _, b := range r.Bindings {
		if b.Binding["x"] == b.Binding["y"] {
			t.Fatalf("binding %v is not injective", b.Binding)
		}
		if b.Binding["x"] == "B" && b.Binding["y"] == "A" {
			foundBA = true
			assertMatches(t, "binding (x=B,y=A)", b.Matches, []int{2, 4})
		}
		if b.Binding["x"] == "B" && b.Binding["y"] == "C" {
			foundBC = true
			assertMatches(t, "binding (x=B,y=C)", b.Matches, []int{3})
		}
	}
	if !foundBA || !foundBC {
		t.Fatalf("missing expected bindings among %d produced", len(r.Bindings))
	}
}

func TestScenarioS8AssociationRules(t *testing.T) {
	d := NewDriver(referenceCorpus())
	report, errs := d.CountAll([]string{"[A]", "[A B]"}, nil)
	if len(errs) != 0 {
		t.Fatalf("CountAll errors: %v", errs)
	}

	if have := report.Patterns[0].Support.Float64(); have != 0.8 {
		t.Errorf("Supp([A]): have %v, want 0.8", have)
	}
	assertMatches(t, "[A]", report.Patterns[0].Matches, []int{0, 2, 3, 4})

	if have := report.Patterns[1].Support.Float64(); have != 0.4 {
		t.Errorf("Supp([A B]): have %v, want 0.4", have)
	}
	assertMatches(t, "[A B]", report.Patterns[1].Matches, []int{2, 4})

	if !report.JointDefined {
		t.Fatal("report.JointDefined: have false, want true")
	}
	if have := report.Joint.Float64(); have != 0.4 {
		t.Errorf("joint over all patterns: have %v, want 0.4", have)
	}

	p01, p10 := findPair(report.Pairs, 0, 1), findPair(report.Pairs, 1, 0)
	if have := p01.Joint.Float64(); have != 0.4 {
		t.Errorf("pair joint: have %v, want 0.4", have)
	}
	if have := p01.Confidence.Float64(); have != 0.5 {
		t.Errorf("Conf([A]=>[A B]): have %v, want 0.5", have)
	}
	if have := p10.Confidence.Float64(); have != 1.0 {
		t.Errorf("Conf([A B]=>[A]): have %v, want 1.0", have)
	}
	if have := p01.Lift.Float64(); have != 1.25 {
		t.Errorf("Lift([A]=>[A B]): have %v, want 1.25", have)
	}
	if have := p10.Lift.Float64(); have != 1.25 {
		t.Errorf("Lift([A B]=>[A]): have %v, want 1.25", have)
	}
}

func findPair(pairs []stats.PairStats, i, j int) stats.PairStats {
	for _, p := range pairs {
		if p.I == i && p.J == j {
			return p
		}
	}
	return stats.PairStats{}
}

func TestSelectReturnsRequestedIndexOrder(t *testing.T) {
	d, err := LoadCorpus(strings.NewReader("A -1 -2\nB -1 -2\nC -1 -2\n"))
	if err != nil {
		t.Fatalf("LoadCorpus: %v", err)
	}
	out, err := d.Select([]int{2, 0})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	want := []string{"2:C -1 -2", "0:A -1 -2"}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("have %v, want %v", out, want)
	}
}

func TestSelectOutOfRange(t *testing.T) {
	d, err := LoadCorpus(strings.NewReader("A -1 -2\n"))
	if err != nil {
		t.Fatalf("LoadCorpus: %v", err)
	}
	if _, err := d.Select([]int{5}); err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestDomainErrorPatternReportedWithZeroSupport(t *testing.T) {
	d := NewDriver(referenceCorpus())
	x, err := variable.ParseDecl("x:Z")
	if err != nil {
		t.Fatalf("ParseDecl: %v", err)
	}

	report, errs := d.CountAll([]string{"x"}, []variable.Variable{x})
	if len(errs) != 1 {
		t.Fatalf("have %d errors, want 1", len(errs))
	}
	var domainErr *variable.DomainError
	if !errors.As(errs[0], &domainErr) {
		t.Fatalf("error %v is not a *variable.DomainError", errs[0])
	}

	if len(report.Patterns) != 1 {
		t.Fatalf("pattern was dropped from the report: have %d patterns, want 1", len(report.Patterns))
	}
	if have := report.Patterns[0].Support.Float64(); have != 0 {
		t.Errorf("support: have %v, want 0", have)
	}
	if report.Patterns[0].Matches != nil {
		t.Errorf("matches: have %v, want nil", report.Patterns[0].Matches)
	}
}

func TestCountAllOverEmptyCorpusDoesNotPanic(t *testing.T) {
	d := NewDriver(corpus.Corpus{})
	report, errs := d.CountAll([]string{"A", "B"}, nil)
	if len(errs) != 0 {
		t.Fatalf("CountAll errors: %v", errs)
	}
	for _, p := range report.Patterns {
		if have := p.Support.Float64(); have != 0 {
			t.Errorf("pattern %q support: have %v, want 0", p.Pattern, have)
		}
	}
}
