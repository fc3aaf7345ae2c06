package libdiff

import (
	"github.com/signadot/space/debug"
	"github.com/signadot/space/encode"
	"github.com/signadot/space/ir"
)

// DiffOrder returns the order changes turning a into b, ignoring leaf
// values.
//
// The result is empty when a and b list the same fields in the same
// order at every level of their shared trees. Otherwise it lists every
// pair of b in order: the k-th pair named f holds the order diff of the
// k-th trees named f in a and b, or an empty tree when they are in order
// or either is a leaf.
func DiffOrder(a, b *ir.Node) *ir.Node {
	occ := occurrences(a)
	seen := map[string]int{}
	changed := a.TableOfContents() != b.TableOfContents()
	d := ir.New()
	for i, field := range b.Fields {
		k := seen[field]
		seen[field]++
		sub := ir.New()
		bv := b.Values[i]
		if k < len(occ[field]) && occ[field][k].IsTree() && bv.IsTree() {
			sub = DiffOrder(occ[field][k], bv)
		}
		if sub.Len() > 0 {
			changed = true
		}
		d.SetPair(field, sub, -1, false)
	}
	if !changed {
		return ir.New()
	}
	if debug.Order() {
		debug.Logf("order diff of\n%s\nand\n%s\nis\n%s\n", encode.MustString(a), encode.MustString(b), encode.MustString(d))
	}
	return d
}

// PatchOrder reorders target in place following the fields of p and
// returns target. The k-th pair of p named f takes the k-th pair of
// target named f; pairs of target p does not list are dropped and fields
// target lacks are skipped. When the value of p is a non-empty tree and
// the value taken is a tree, that tree is reordered too.
//
// p may be a diff from DiffOrder or any tree with the wanted order.
func PatchOrder(target, p *ir.Node) *ir.Node {
	if p.Len() == 0 {
		return target
	}
	occ := occurrences(target)
	seen := map[string]int{}
	for target.Len() > 0 {
		target.RemoveAt(target.Len() - 1)
	}
	for i, field := range p.Fields {
		k := seen[field]
		seen[field]++
		if k >= len(occ[field]) {
			continue
		}
		v := occ[field][k]
		target.SetPair(field, v, -1, false)
		if pv := p.Values[i]; pv.Len() > 0 && v.IsTree() {
			PatchOrder(v, pv)
		}
	}
	return target
}

func occurrences(y *ir.Node) map[string][]*ir.Node {
	res := make(map[string][]*ir.Node, y.Len())
	for i, f := range y.Fields {
		res[f] = append(res[f], y.Values[i])
	}
	return res
}
