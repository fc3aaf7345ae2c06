package ir

import "strings"

// Get resolves a space path. The whole path is first tried as a field of
// y; otherwise the first segment is resolved and the remainder is looked
// up in its value. Get returns nil when nothing is found, including when
// an intermediate value is a leaf.
func (y *Node) Get(path string) *Node {
	if path == "" || y.Len() == 0 {
		return nil
	}
	if v := y.Lookup(path); v != nil {
		return v
	}
	if clean := cleanPath(path); clean != path {
		return y.Get(clean)
	}
	head, rest, ok := strings.Cut(path, " ")
	if !ok {
		return nil
	}
	v := y.Lookup(head)
	if !v.IsTree() {
		return nil
	}
	return v.Get(rest)
}

// GetString returns the text of the leaf at path and whether there is one.
func (y *Node) GetString(path string) (string, bool) {
	v := y.Get(path)
	if !v.IsLeaf() {
		return "", false
	}
	return v.String, true
}

// Put sets the value at path without firing events. A field which already
// exists is overwritten in place at its cached index, otherwise the pair
// is appended. A path containing spaces creates the intermediate trees it
// needs, replacing leaves on the way.
func (y *Node) Put(path string, v *Node) *Node {
	if !strings.Contains(path, " ") {
		return y.Upsert(path, v)
	}
	segs := splitPath(path)
	if len(segs) == 0 {
		return y
	}
	ctx := y
	for _, seg := range segs[:len(segs)-1] {
		next := ctx.Lookup(seg)
		if !next.IsTree() {
			next = New()
			ctx.Upsert(seg, next)
		}
		ctx = next
	}
	ctx.Upsert(segs[len(segs)-1], v)
	return y
}

// Set is Put, firing set and change.
func (y *Node) Set(path string, v *Node) *Node {
	y.Put(path, v)
	return y.Trigger(EventSet, path, v).Trigger(EventChange)
}

// SetString sets a leaf at path.
func (y *Node) SetString(path, v string) *Node {
	return y.Set(path, FromString(v))
}

// Remove deletes every pair named by path and returns how many were
// removed. With a multi segment path only the pairs under the resolved
// parent are affected.
func (y *Node) Remove(path string) int {
	if y.Len() == 0 {
		return 0
	}
	if !strings.Contains(path, " ") {
		return y.removeField(path)
	}
	path = cleanPath(path)
	i := strings.LastIndexByte(path, ' ')
	if i < 0 {
		return y.removeField(path)
	}
	parent := y.Get(path[:i])
	if !parent.IsTree() {
		return 0
	}
	return parent.removeField(path[i+1:])
}

// Delete is Remove, firing delete and change when something was removed.
func (y *Node) Delete(path string) int {
	n := y.Remove(path)
	if n != 0 {
		y.Trigger(EventDelete, path).Trigger(EventChange)
	}
	return n
}

// GetBySpace selects from y the parts named by query. A query pair whose
// value is a leaf or an empty tree selects the whole value; a non-empty
// query tree selects recursively within a tree value.
func (y *Node) GetBySpace(query *Node) *Node {
	res := New()
	if query == nil {
		return res
	}
	for i, f := range query.Fields {
		if !y.Has(f) {
			continue
		}
		qv := query.Values[i]
		v := y.Lookup(f)
		switch {
		case qv.IsLeaf() || qv.Len() == 0:
			res.SetPair(f, v.Clone(), -1, false)
		case qv.IsTree() && v.IsTree():
			res.SetPair(f, v.GetBySpace(qv), -1, false)
		}
	}
	return res
}

// Root follows parent references to the top.
func (y *Node) Root() *Node {
	for y.Parent != nil {
		y = y.Parent
	}
	return y
}

// Path returns the space path from the root to y, found by identity.
// A node no longer held by its parent has an empty path.
func (y *Node) Path() string {
	var segs []string
	for x := y; x.Parent != nil; x = x.Parent {
		i := indexOfValue(x.Parent, x)
		if i < 0 {
			return ""
		}
		segs = append(segs, x.Parent.Fields[i])
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return strings.Join(segs, " ")
}

func indexOfValue(p, v *Node) int {
	for i, pv := range p.Values {
		if pv == v {
			return i
		}
	}
	return -1
}

func splitPath(path string) []string {
	return strings.Fields(strings.ReplaceAll(path, "\n", ""))
}

// cleanPath joins the segments of path by single spaces.
func cleanPath(path string) string {
	return strings.Join(splitPath(path), " ")
}
