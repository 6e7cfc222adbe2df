package variable

import (
	"iter"

	"github.com/JoaoFelipe/patterncounter/intset"
)

// Enumerate iterates over every injective binding of vars into their
// universes: no two variables are assigned the same element. Order is
// a backtracking walk over each variable's universe slice and is not a
// reportable property.
func Enumerate(vars []Variable, universes map[string][]string) iter.Seq[Binding] {
	return func(yield func(Binding) bool) {
		used := intset.New[string]()
		current := make(Binding, len(vars))
		backtrack(vars, universes, used, current, 0, yield)
	}
}

// backtrack returns false once the consumer has asked to stop, so the
// caller can unwind without trying further candidates.
func backtrack(vars []Variable, universes map[string][]string, used intset.Set[string], current Binding, i int, yield func(Binding) bool) bool {
	if i == len(vars) {
		return yield(cloneBinding(current))
	}

	v := vars[i]
	for _, elem := range universes[v.Name] {
		if used.Contains(elem) {
			continue
		}
		used.Add(elem)
		current[v.Name] = elem

		if !backtrack(vars, universes, used, current, i+1, yield) {
			used.Remove(elem)
			delete(current, v.Name)
			return false
		}

		used.Remove(elem)
		delete(current, v.Name)
	}
	return true
}

func cloneBinding(b Binding) Binding {
	out := make(Binding, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
