package libdiff

import (
	"github.com/signadot/space/debug"
	"github.com/signadot/space/encode"
	"github.com/signadot/space/ir"
)

// Diff returns the changes turning a into b.
//
// Each distinct field of a is compared by its looked up value. A field
// missing from b gets an empty leaf. A leaf replaced by a tree, or the
// reverse, gets b's value unless both have the same text in space
// notation. Different leaves get b's leaf and trees get their diff when
// it is not empty. Fields of b missing from a are then added with a copy
// of b's value.
func Diff(a, b *ir.Node) *ir.Node {
	d := ir.New()
	for _, field := range distinctFields(a) {
		av, bv := a.Lookup(field), b.Lookup(field)
		switch {
		case bv == nil:
			d.Upsert(field, ir.FromString(""))
		case av.Type != bv.Type:
			if text(av) != text(bv) {
				d.Upsert(field, bv.Clone())
			}
		case av.IsLeaf():
			if av.String != bv.String {
				d.Upsert(field, ir.FromString(bv.String))
			}
		default:
			if sub := Diff(av, bv); sub.Len() > 0 {
				d.Upsert(field, sub)
			}
		}
	}
	for _, field := range distinctFields(b) {
		if a.Has(field) {
			continue
		}
		d.Upsert(field, b.Lookup(field).Clone())
	}
	if debug.Diff() {
		debug.Logf("diff of\n%s\nand\n%s\nis\n%s\n", encode.MustString(a), encode.MustString(b), encode.MustString(d))
	}
	return d
}

// Equal reports whether a and b have no differences in either direction.
func Equal(a, b *ir.Node) bool {
	return Diff(a, b).Len() == 0 && Diff(b, a).Len() == 0
}

func distinctFields(y *ir.Node) []string {
	seen := make(map[string]bool, y.Len())
	res := make([]string, 0, y.Len())
	for _, f := range y.Fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		res = append(res, f)
	}
	return res
}

func text(v *ir.Node) string {
	if v.IsLeaf() {
		return v.String
	}
	return encode.MustString(v)
}
