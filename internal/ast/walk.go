package ast

// Children returns every direct child node of n, in a fixed order, skipping
// nils. Used by Walk and by the snapshot decoder's node-id index, both of
// which need to traverse the tree without per-kind knowledge of which
// fields are populated.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	single := []*Node{
		n.ID_, n.Left, n.Right, n.Test, n.Consequent, n.Alternate, n.Init, n.Update,
		n.Object, n.Property, n.Callee, n.Key, n.Value, n.Block, n.Handler,
		n.Finalizer, n.Param, n.Discriminant,
	}
	for _, c := range single {
		if c != nil {
			out = append(out, c)
		}
	}
	groups := [][]*Node{
		n.Body, n.Arguments, n.Elements, n.Properties, n.Cases,
		n.Declarations, n.Params,
	}
	for _, g := range groups {
		for _, c := range g {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	return out
}

// Walk calls visit for n and every node reachable from it, depth-first.
func Walk(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children() {
		Walk(c, visit)
	}
}

// IndexByID builds a NodeID -> *Node map over every root and everything
// reachable from it, the structure the snapshot decoder needs to resolve an
// interpreted function's node reference back to a live *Node without
// re-emitting the whole program tree in every snapshot.
func IndexByID(roots ...*Node) map[NodeID]*Node {
	idx := make(map[NodeID]*Node)
	for _, r := range roots {
		Walk(r, func(n *Node) {
			idx[n.ID] = n
		})
	}
	return idx
}
