package eval

import (
	"github.com/JoaoFelipe/patterncounter/intset"
	"github.com/JoaoFelipe/patterncounter/syntax"
)

// evalSlice implements Slice(body, openLeft, openRight): enumerate
// candidate contiguous windows [a,b], keep those where body is
// non-empty when evaluated with First/Last rebound to a/b, then apply
// the open/closed boundary rule to every element-match subrule of body.
func evalSlice(node *syntax.Node, ctx Context) intset.Set[int] {
	body := node.Args[0]
	result := intset.New[int]()

	for _, window := range candidateWindows(body, ctx) {
		a, b := window[0], window[1]
		inner := ctx.Window(a, b)
		if Eval(body, inner).Len() == 0 {
			continue
		}
		if !satisfiesBoundary(body, ctx.Index, a, node.OpenLeft) {
			continue
		}
		if !satisfiesBoundary(body, ctx.Index, b, node.OpenRight) {
			continue
		}
		for i := a; i <= b; i++ {
			result.Add(i)
		}
	}

	return result
}

// candidateWindows enumerates the candidate [a,b] windows to try. The
// common "[X ...]" shape (body's leftmost subrule is a bare element,
// insertion or removal atom) is optimized by enumerating the maximal
// contiguous runs of that atom directly; any other shape falls back to
// every contiguous window of the active context.
func candidateWindows(body *syntax.Node, ctx Context) [][2]int {
	if head := sliceHead(body); head != nil {
		return runsOf(head, ctx)
	}
	return allWindows(ctx)
}

// sliceHead returns the dominant element-like atom driving the run
// optimization for the "[X rest]" shape: body is a bare
// Elem/InElem/OutElem atom, or an And whose first conjunct is one. Any
// other shape (Seq, Or, Intersect, ...) falls back to every window.
func sliceHead(body *syntax.Node) *syntax.Node {
	switch body.Op {
	case syntax.OpElem, syntax.OpInElem, syntax.OpOutElem:
		return body
	case syntax.OpAnd:
		switch body.Args[0].Op {
		case syntax.OpElem, syntax.OpInElem, syntax.OpOutElem:
			return body.Args[0]
		}
	}
	return nil
}

// runsOf enumerates the maximal contiguous runs of head's raw group
// indices, intersected with the active window.
func runsOf(head *syntax.Node, ctx Context) [][2]int {
	groups := groupsOfAtom(head, ctx)
	if len(groups) == 0 {
		return nil
	}
	sorted := intset.SortedInts(intset.Of(groups...))

	var windows [][2]int
	runStart := sorted[0]
	prev := sorted[0]
	for _, g := range sorted[1:] {
		if g == prev+1 {
			prev = g
			continue
		}
		windows = append(windows, [2]int{runStart, prev})
		runStart, prev = g, g
	}
	windows = append(windows, [2]int{runStart, prev})
	return windows
}

func groupsOfAtom(head *syntax.Node, ctx Context) []int {
	switch head.Op {
	case syntax.OpElem:
		return filterWindow(ctx.Index.GroupsOf(head.Name), ctx)
	case syntax.OpInElem:
		return filterWindow(ctx.Index.InGroups(head.Name), ctx)
	case syntax.OpOutElem:
		return filterWindow(ctx.Index.OutGroups(head.Name), ctx)
	default:
		return nil
	}
}

func filterWindow(groups []int, ctx Context) []int {
	var out []int
	for _, g := range groups {
		if ctx.inWindow(g) {
			out = append(out, g)
		}
	}
	return out
}

// allWindows enumerates every contiguous [a,b] window inside the active
// context, the general fallback for compound slice bodies.
func allWindows(ctx Context) [][2]int {
	var windows [][2]int
	for a := ctx.Lo; a <= ctx.Hi; a++ {
		for b := a; b <= ctx.Hi; b++ {
			windows = append(windows, [2]int{a, b})
		}
	}
	return windows
}

// satisfiesBoundary applies the boundary rule: for every Elem subrule
// E reachable from body, if the edge is open then position pos must
// not be in groups_of(E).
func satisfiesBoundary(body *syntax.Node, idx elementIndex, pos int, open bool) bool {
	if !open {
		return true
	}
	ok := true
	walkElemAtoms(body, func(name string) {
		if idx.GroupsOf(name) == nil {
			return
		}
		for _, g := range idx.GroupsOf(name) {
			if g == pos {
				ok = false
				return
			}
		}
	})
	return ok
}

// elementIndex is the subset of *corpus.ElementIndex the slice evaluator
// needs.
type elementIndex interface {
	GroupsOf(e string) []int
}

func walkElemAtoms(n *syntax.Node, visit func(name string)) {
	switch n.Op {
	case syntax.OpElem:
		visit(n.Name)
	case syntax.OpInElem, syntax.OpOutElem:
		// insertion/removal atoms are not plain element matches; the
		// boundary rule only names "E" atoms.
	default:
		for _, child := range n.Args {
			walkElemAtoms(child, visit)
		}
	}
}
