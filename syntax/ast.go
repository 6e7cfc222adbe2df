package syntax

import (
	"fmt"
	"strings"
)

// Op tags the variant of an expression tree Node.
type Op byte

const (
	OpNone Op = iota

	// OpElem is element presence: groups_of(Name).
	OpElem
	// OpInElem is an insertion event: in_groups(Name).
	OpInElem
	// OpOutElem is a removal event: out_groups(Name).
	OpOutElem

	// OpFirst restricts Args[0]'s match set to the window start.
	OpFirst
	// OpLast restricts Args[0]'s match set to the window end.
	OpLast
	// OpNot is existence negation of Args[0].
	OpNot

	// OpAnd is a conjunction-of-existence over Args.
	OpAnd
	// OpOr is a disjunction-of-existence over Args.
	OpOr
	// OpIntersect is true positional intersection over Args.
	OpIntersect

	// OpSeq is strict temporal order: Args[0] before Args[1].
	OpSeq
	// OpLooseSeq is non-strict temporal order: Args[0] at-or-before Args[1].
	OpLooseSeq

	// OpSlice is a contiguous sub-sequence window over Args[0].
	OpSlice
)

func (op Op) String() string {
	switch op {
	case OpElem:
		return "Elem"
	case OpInElem:
		return "InElem"
	case OpOutElem:
		return "OutElem"
	case OpFirst:
		return "First"
	case OpLast:
		return "Last"
	case OpNot:
		return "Not"
	case OpAnd:
		return "And"
	case OpOr:
		return "Or"
	case OpIntersect:
		return "Intersect"
	case OpSeq:
		return "Seq"
	case OpLooseSeq:
		return "LooseSeq"
	case OpSlice:
		return "Slice"
	default:
		return "None"
	}
}

// Node is the tagged-variant expression tree described by the pattern
// grammar. Only the fields relevant to Op are meaningful:
//
//   - OpElem, OpInElem, OpOutElem: Name holds the element/variable name.
//   - OpFirst, OpLast, OpNot: Args[0] is the wrapped child.
//   - OpAnd, OpOr, OpIntersect: Args holds all n children.
//   - OpSeq, OpLooseSeq: Args[0], Args[1] are the ordered operands.
//   - OpSlice: Args[0] is the body; OpenLeft/OpenRight are the boundary
//     flags.
//
// Node is immutable once constructed; variable substitution and any other
// rewrite produces a fresh tree rather than mutating an existing one.
type Node struct {
	Op        Op
	Name      string
	Args      []*Node
	OpenLeft  bool
	OpenRight bool
}

// Elem builds an OpElem node.
func Elem(name string) *Node { return &Node{Op: OpElem, Name: name} }

// InElem builds an OpInElem node.
func InElem(name string) *Node { return &Node{Op: OpInElem, Name: name} }

// OutElem builds an OpOutElem node.
func OutElem(name string) *Node { return &Node{Op: OpOutElem, Name: name} }

// First builds an OpFirst node wrapping child.
func First(child *Node) *Node { return &Node{Op: OpFirst, Args: []*Node{child}} }

// Last builds an OpLast node wrapping child.
func Last(child *Node) *Node { return &Node{Op: OpLast, Args: []*Node{child}} }

// Not builds an OpNot node wrapping child.
func Not(child *Node) *Node { return &Node{Op: OpNot, Args: []*Node{child}} }

// And folds children into a single n-ary OpAnd node.
func And(children ...*Node) *Node { return &Node{Op: OpAnd, Args: children} }

// Or folds children into a single n-ary OpOr node.
func Or(children ...*Node) *Node { return &Node{Op: OpOr, Args: children} }

// Intersect folds children into a single n-ary OpIntersect node.
func Intersect(children ...*Node) *Node { return &Node{Op: OpIntersect, Args: children} }

// Seq builds a strict-order OpSeq node.
func Seq(left, right *Node) *Node { return &Node{Op: OpSeq, Args: []*Node{left, right}} }

// LooseSeq builds a loose-order OpLooseSeq node.
func LooseSeq(left, right *Node) *Node { return &Node{Op: OpLooseSeq, Args: []*Node{left, right}} }

// Slice builds an OpSlice node with the given boundary openness.
func Slice(body *Node, openLeft, openRight bool) *Node {
	return &Node{Op: OpSlice, Args: []*Node{body}, OpenLeft: openLeft, OpenRight: openRight}
}

// String renders n back into the surface syntax, for debugging and tests.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Op {
	case OpElem:
		return n.Name
	case OpInElem:
		return "In" + n.Name
	case OpOutElem:
		return "Out" + n.Name
	case OpFirst:
		return "^" + n.Args[0].String()
	case OpLast:
		return "$" + n.Args[0].String()
	case OpNot:
		return "~" + n.Args[0].String()
	case OpAnd:
		return joinArgs(n.Args, " ")
	case OpOr:
		return joinArgs(n.Args, " | ")
	case OpIntersect:
		return joinArgs(n.Args, " & ")
	case OpSeq:
		return fmt.Sprintf("%s -> %s", n.Args[0], n.Args[1])
	case OpLooseSeq:
		return fmt.Sprintf("%s => %s", n.Args[0], n.Args[1])
	case OpSlice:
		lb, rb := "[", "]"
		if n.OpenLeft {
			lb = "{"
		}
		if n.OpenRight {
			rb = "}"
		}
		return lb + n.Args[0].String() + rb
	default:
		return "<none>"
	}
}

func joinArgs(args []*Node, sep string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}
