// Package eval implements the pattern evaluator: it maps an expression
// tree plus a sequence (and an optional active slice window) to the
// match set of group indices satisfying it.
package eval

import "github.com/JoaoFelipe/patterncounter/corpus"

// Context bundles the host sequence's element index with the active
// window. Every element-producing node clamps its raw group indices to
// [Lo, Hi]; First and Last test against Lo and Hi respectively.
type Context struct {
	Index *corpus.ElementIndex
	Lo    int
	Hi    int
}

// RootContext builds the initial, full-sequence context for idx.
func RootContext(idx *corpus.ElementIndex) Context {
	return Context{Index: idx, Lo: 0, Hi: idx.Length() - 1}
}

// Window returns a copy of ctx narrowed to [lo, hi].
func (ctx Context) Window(lo, hi int) Context {
	ctx.Lo, ctx.Hi = lo, hi
	return ctx
}

func (ctx Context) inWindow(i int) bool {
	return i >= ctx.Lo && i <= ctx.Hi
}
