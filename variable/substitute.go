package variable

import "github.com/JoaoFelipe/patterncounter/syntax"

// Binding maps each free variable to a distinct bound element.
type Binding map[string]string

// Substitute rewrites node, replacing every Elem/InElem/OutElem whose
// Name is bound in binding with its bound element, propagating into
// In<V> and Out<V>. It never mutates node; unbound names pass through
// unchanged.
func Substitute(node *syntax.Node, binding Binding) *syntax.Node {
	if node == nil {
		return nil
	}

	switch node.Op {
	case syntax.OpElem:
		return syntax.Elem(resolve(node.Name, binding))
	case syntax.OpInElem:
		return syntax.InElem(resolve(node.Name, binding))
	case syntax.OpOutElem:
		return syntax.OutElem(resolve(node.Name, binding))
	}

	args := make([]*syntax.Node, len(node.Args))
	for i, a := range node.Args {
		args[i] = Substitute(a, binding)
	}
	return &syntax.Node{
		Op:        node.Op,
		Name:      node.Name,
		Args:      args,
		OpenLeft:  node.OpenLeft,
		OpenRight: node.OpenRight,
	}
}

func resolve(name string, binding Binding) string {
	if bound, ok := binding[name]; ok {
		return bound
	}
	return name
}
