package libdiff

import "github.com/signadot/space/ir"

// Cud reports the fields created, updated and deleted going from a to b
// under the trees "created", "updated" and "deleted". Created and updated
// fields hold copies of b's values, deleted ones an empty tree. Values are
// compared by their text in space notation.
func Cud(a, b *ir.Node) *ir.Node {
	created, updated, deleted := ir.New(), ir.New(), ir.New()
	for _, field := range distinctFields(b) {
		bv := b.Lookup(field)
		av := a.Lookup(field)
		switch {
		case av == nil:
			created.Upsert(field, bv.Clone())
		case text(av) != text(bv):
			updated.Upsert(field, bv.Clone())
		}
	}
	for _, field := range distinctFields(a) {
		if !b.Has(field) {
			deleted.Upsert(field, ir.New())
		}
	}
	return ir.FromKeyVals("created", created, "updated", updated, "deleted", deleted)
}
