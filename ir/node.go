package ir

import (
	"maps"
	"slices"
)

type Node struct {
	Type   Type
	Parent *Node
	Fields []string
	Values []*Node

	String string

	// cache maps a field to the index of its most recently written
	// occurrence.
	cache  map[string]int
	events *eventTable
}

// New returns an empty tree.
func New() *Node {
	return &Node{Type: TreeType}
}

func FromString(v string) *Node {
	return FromStringAt(&Node{}, v)
}

func FromStringAt(p *Node, v string) *Node {
	p.Type = LeafType
	p.String = v
	p.Fields = nil
	p.Values = nil
	p.cache = nil
	return p
}

// FromMap creates a tree from m with fields in sorted order.
func FromMap(m map[string]*Node) *Node {
	res := New()
	for _, k := range slices.Sorted(maps.Keys(m)) {
		res.SetPair(k, m[k], -1, false)
	}
	return res
}

// FromKeyVals creates a tree from alternating field and value arguments.
// Values which are strings become leaves.
func FromKeyVals(kvs ...any) *Node {
	res := New()
	for i := 0; i+1 < len(kvs); i += 2 {
		field, _ := kvs[i].(string)
		switch v := kvs[i+1].(type) {
		case *Node:
			res.SetPair(field, v, -1, false)
		case string:
			res.SetPair(field, FromString(v), -1, false)
		}
	}
	return res
}

func (y *Node) IsTree() bool { return y != nil && y.Type == TreeType }
func (y *Node) IsLeaf() bool { return y != nil && y.Type == LeafType }

// Len returns the number of pairs of a tree, 0 for a leaf.
func (y *Node) Len() int {
	if y == nil || y.Type != TreeType {
		return 0
	}
	return len(y.Fields)
}

// Clone returns a deep copy of y. The copy has no parent and no
// listeners.
func (y *Node) Clone() *Node {
	if y == nil {
		return nil
	}
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.String = y.String
	dst.Fields = nil
	dst.Values = nil
	dst.cache = nil
	if y.Type != TreeType {
		return dst
	}
	dst.Fields = slices.Clone(y.Fields)
	dst.Values = make([]*Node, len(y.Values))
	for i, yv := range y.Values {
		dv := yv.CloneTo(&Node{})
		dv.Parent = dst
		dst.Values[i] = dv
	}
	dst.Reindex()
	return dst
}

// Equal reports whether a and b are structurally identical: same types,
// same leaf text and same pairs in the same order.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type {
		return false
	}
	if a.Type == LeafType {
		return a.String == b.String
	}
	if !slices.Equal(a.Fields, b.Fields) {
		return false
	}
	for i := range a.Values {
		if !Equal(a.Values[i], b.Values[i]) {
			return false
		}
	}
	return true
}

// asTree makes y a tree, dropping any leaf text.
func (y *Node) asTree() {
	if y.Type == TreeType {
		return
	}
	y.Type = TreeType
	y.String = ""
}
