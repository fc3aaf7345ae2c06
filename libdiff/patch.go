package libdiff

import (
	"github.com/signadot/space/debug"
	"github.com/signadot/space/encode"
	"github.com/signadot/space/ir"
)

// Patch applies the diff d to target in place and returns target.
//
// An empty leaf or an empty tree deletes every pair of the field. Other
// leaves overwrite the field. A non-empty tree patches the tree held by
// target at the field, or replaces the value with a copy when target holds
// none.
func Patch(target, d *ir.Node) *ir.Node {
	if debug.Patch() {
		debug.Logf("patch\n%s\nwith\n%s\n", encode.MustString(target), encode.MustString(d))
	}
	for i, field := range d.Fields {
		pv := d.Values[i]
		switch {
		case pv.IsLeaf() && pv.String == "":
			target.Remove(field)
		case pv.IsLeaf():
			target.Put(field, ir.FromString(pv.String))
		case pv.Len() == 0:
			target.Remove(field)
		default:
			if tv := target.Lookup(field); tv.IsTree() {
				Patch(tv, pv)
				continue
			}
			target.Put(field, pv.Clone())
		}
	}
	return target
}
