package space

import (
	"github.com/signadot/space/debug"
	"github.com/signadot/space/encode"
	"github.com/signadot/space/ir"
)

// Match reports whether doc has the shape of pattern. An empty leaf in
// pattern matches any value, another leaf a leaf with the same text and a
// tree a tree holding a match for each of its fields. Duplicate fields
// are compared by their looked up values.
func Match(doc, pattern *ir.Node) bool {
	if debug.Diff() {
		debug.Logf("match\n%s\nagainst\n%s\n", encode.MustString(doc), encode.MustString(pattern))
	}
	switch {
	case pattern == nil:
		return true
	case pattern.IsLeaf():
		if pattern.String == "" {
			return doc != nil
		}
		return doc.IsLeaf() && doc.String == pattern.String
	case !doc.IsTree():
		return false
	}
	for i, field := range pattern.Fields {
		if pattern.Lookup(field) != pattern.Values[i] {
			continue
		}
		if !Match(doc.Lookup(field), pattern.Values[i]) {
			return false
		}
	}
	return true
}

// Select returns the items of docs, a tree, whose values match pattern.
// The values are shared with docs.
func Select(docs, pattern *ir.Node) *ir.Node {
	return docs.Filter(func(_ string, v *ir.Node, _ int) bool {
		return Match(v, pattern)
	})
}

// Trim returns a copy of doc holding only the parts pattern names, see
// ir.Node.GetBySpace.
func Trim(pattern, doc *ir.Node) *ir.Node {
	return doc.GetBySpace(pattern)
}
