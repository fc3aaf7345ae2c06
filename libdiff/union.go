package libdiff

import "github.com/signadot/space/ir"

// Union returns the pairs all of nodes hold: leaves with the same text at
// the same field, and for fields holding trees in each, the union of those
// trees. The union of a single node is a copy of it.
func Union(nodes ...*ir.Node) *ir.Node {
	if len(nodes) == 0 {
		return ir.New()
	}
	res := nodes[0].Clone()
	for _, y := range nodes[1:] {
		res = union(res, y)
		if res.Len() == 0 {
			break
		}
	}
	return res
}

func union(a, b *ir.Node) *ir.Node {
	res := ir.New()
	if !b.IsTree() {
		return res
	}
	for _, field := range distinctFields(a) {
		av, bv := a.Lookup(field), b.Lookup(field)
		switch {
		case bv == nil:
		case av.IsTree() && bv.IsTree():
			res.Upsert(field, union(av, bv))
		case av.IsLeaf() && bv.IsLeaf() && av.String == bv.String:
			res.Upsert(field, ir.FromString(av.String))
		}
	}
	return res
}
