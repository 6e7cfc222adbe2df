package eval

import (
	"github.com/JoaoFelipe/patterncounter/intset"
	"github.com/JoaoFelipe/patterncounter/syntax"
)

// Eval computes node's match set against ctx: the subset of
// {ctx.Lo, ..., ctx.Hi} satisfying node. Evaluation never errors; an
// element absent from the sequence simply yields an empty set.
func Eval(node *syntax.Node, ctx Context) intset.Set[int] {
	switch node.Op {
	case syntax.OpElem:
		return clampToWindow(ctx.Index.GroupsOf(node.Name), ctx)
	case syntax.OpInElem:
		return clampToWindow(ctx.Index.InGroups(node.Name), ctx)
	case syntax.OpOutElem:
		return clampToWindow(ctx.Index.OutGroups(node.Name), ctx)

	case syntax.OpFirst:
		child := Eval(node.Args[0], ctx)
		if child.Contains(ctx.Lo) {
			return intset.Of(ctx.Lo)
		}
		return intset.New[int]()

	case syntax.OpLast:
		child := Eval(node.Args[0], ctx)
		if child.Contains(ctx.Hi) {
			return intset.Of(ctx.Hi)
		}
		return intset.New[int]()

	case syntax.OpNot:
		if Eval(node.Args[0], ctx).Len() == 0 {
			return fullWindow(ctx)
		}
		return intset.New[int]()

	case syntax.OpAnd:
		return evalAnd(node.Args, ctx)

	case syntax.OpOr:
		return evalOr(node.Args, ctx)

	case syntax.OpIntersect:
		return evalIntersect(node.Args, ctx)

	case syntax.OpSeq:
		return evalSeq(node.Args[0], node.Args[1], ctx, true)

	case syntax.OpLooseSeq:
		return evalSeq(node.Args[0], node.Args[1], ctx, false)

	case syntax.OpSlice:
		return evalSlice(node, ctx)

	default:
		return intset.New[int]()
	}
}

// Matches reports whether node has any witness in ctx's window.
func Matches(node *syntax.Node, ctx Context) bool {
	return Eval(node, ctx).Len() > 0
}

func clampToWindow(groups []int, ctx Context) intset.Set[int] {
	result := intset.New[int]()
	for _, g := range groups {
		if ctx.inWindow(g) {
			result.Add(g)
		}
	}
	return result
}

func fullWindow(ctx Context) intset.Set[int] {
	result := intset.New[int]()
	for i := ctx.Lo; i <= ctx.Hi; i++ {
		result.Add(i)
	}
	return result
}

// evalAnd is "conjunction of existence": every child must be non-empty,
// and the reported match set is the union of witnesses.
func evalAnd(children []*syntax.Node, ctx Context) intset.Set[int] {
	result := intset.New[int]()
	for _, child := range children {
		m := Eval(child, ctx)
		if m.Len() == 0 {
			return intset.New[int]()
		}
		result = result.Union(m)
	}
	return result
}

func evalOr(children []*syntax.Node, ctx Context) intset.Set[int] {
	result := intset.New[int]()
	for _, child := range children {
		result = result.Union(Eval(child, ctx))
	}
	return result
}

func evalIntersect(children []*syntax.Node, ctx Context) intset.Set[int] {
	if len(children) == 0 {
		return intset.New[int]()
	}
	result := Eval(children[0], ctx)
	for _, child := range children[1:] {
		result = result.Intersect(Eval(child, ctx))
	}
	return result
}

// evalSeq implements Seq (strict, i<j) and LooseSeq (i<=j) via a
// min/max witness shortcut: i qualifies iff some j in the right set
// beats it under the ordering, and symmetrically for j.
func evalSeq(left, right *syntax.Node, ctx Context, strict bool) intset.Set[int] {
	leftSet := Eval(left, ctx)
	rightSet := Eval(right, ctx)
	if leftSet.Len() == 0 || rightSet.Len() == 0 {
		return intset.New[int]()
	}

	minLeft := minOf(leftSet)
	maxRight := maxOf(rightSet)

	result := intset.New[int]()
	for _, i := range leftSet.ToSlice() {
		if ordered(i, maxRight, strict) {
			result.Add(i)
		}
	}
	for _, j := range rightSet.ToSlice() {
		if ordered(minLeft, j, strict) {
			result.Add(j)
		}
	}
	return result
}

func ordered(i, j int, strict bool) bool {
	if strict {
		return i < j
	}
	return i <= j
}

func minOf(s intset.Set[int]) int {
	vals := intset.SortedInts(s)
	return vals[0]
}

func maxOf(s intset.Set[int]) int {
	vals := intset.SortedInts(s)
	return vals[len(vals)-1]
}
