package ir

import (
	"cmp"
	"slices"
	"strconv"
)

// Pair is a field and its value, as handed to sort comparisons.
type Pair struct {
	Field string
	Value *Node
}

func (y *Node) IsEmpty() bool { return y.Len() == 0 }

// IsFlat reports whether no value of y is a tree.
func (y *Node) IsFlat() bool {
	for _, v := range y.Values {
		if v.IsTree() {
			return false
		}
	}
	return true
}

// IsStringMap reports whether the fields of y are unique, and with deep
// set whether that holds for every nested tree as well.
func (y *Node) IsStringMap(deep bool) bool {
	seen := make(map[string]bool, y.Len())
	for i, f := range y.Fields {
		if seen[f] {
			return false
		}
		seen[f] = true
		if deep && y.Values[i].IsTree() && !y.Values[i].IsStringMap(deep) {
			return false
		}
	}
	return true
}

// First returns a tree holding a copy of the first pair of y.
func (y *Node) First() *Node {
	return y.pairAt(0)
}

// Last returns a tree holding a copy of the last pair of y.
func (y *Node) Last() *Node {
	return y.pairAt(y.Len() - 1)
}

func (y *Node) pairAt(i int) *Node {
	res := New()
	if i < 0 || i >= y.Len() {
		return res
	}
	return res.SetPair(y.Fields[i], y.Values[i].Clone(), -1, false)
}

func (y *Node) FirstField() (string, bool) { return y.FieldAt(0) }
func (y *Node) LastField() (string, bool)  { return y.FieldAt(-1) }
func (y *Node) FirstValue() *Node          { return y.GetByIndex(0) }
func (y *Node) LastValue() *Node           { return y.GetByIndex(-1) }

// Pop removes the last pair of y and returns it as a tree, or nil when y
// is empty.
func (y *Node) Pop() *Node {
	return y.take(y.Len() - 1)
}

// Shift removes the first pair of y and returns it as a tree, or nil when
// y is empty.
func (y *Node) Shift() *Node {
	return y.take(0)
}

func (y *Node) take(i int) *Node {
	if i < 0 || i >= y.Len() {
		return nil
	}
	res := New().SetPair(y.Fields[i], y.Values[i], -1, false)
	y.RemoveAt(i)
	return res
}

// Next returns the field following the first occurrence of field.
func (y *Node) Next(field string) (string, bool) {
	i := y.IndexOf(field)
	if i < 0 {
		return "", false
	}
	return y.FieldAt(i + 1)
}

// Prev returns the field preceding the first occurrence of field.
func (y *Node) Prev(field string) (string, bool) {
	i := y.IndexOf(field)
	if i <= 0 {
		return "", false
	}
	return y.FieldAt(i - 1)
}

// Rename renames the first occurrence of from to to, in place.
func (y *Node) Rename(from, to string) *Node {
	i := y.IndexOf(from)
	if i < 0 || to == "" {
		return y
	}
	y.SetPair(to, y.Values[i], i, true)
	if from != to {
		y.Trigger(EventRename, from, to)
	}
	return y.Trigger(EventChange)
}

// RenameAll renames every occurrence of from to to, descending into
// nested trees when recursive is set.
func (y *Node) RenameAll(from, to string, recursive bool) *Node {
	if to == "" {
		return y
	}
	for i := 0; i < y.Len(); i++ {
		if y.Fields[i] == from {
			y.Fields[i] = to
		}
		if recursive && y.Values[i].IsTree() {
			y.Values[i].RenameAll(from, to, recursive)
		}
	}
	y.Reindex()
	return y
}

// RenameObjects replaces the field of each tree value by the leaf that
// value holds at field, removing that leaf.
//
//	0
//	 name John
//	 email john@example.com
//
// becomes, with field "email",
//
//	john@example.com
//	 name John
func (y *Node) RenameObjects(field string) *Node {
	for i, v := range y.Values {
		if !v.IsTree() {
			continue
		}
		key, ok := v.GetString(field)
		if !ok || key == "" {
			continue
		}
		y.Fields[i] = key
		v.Remove(field)
	}
	y.Reindex()
	return y
}

// Reverse reverses the order of the pairs of y.
func (y *Node) Reverse() *Node {
	slices.Reverse(y.Fields)
	slices.Reverse(y.Values)
	y.Reindex()
	return y
}

// Sort stably sorts the pairs of y with cmp.
func (y *Node) Sort(cmp func(a, b Pair) int) *Node {
	pairs := make([]Pair, y.Len())
	for i := range pairs {
		pairs[i] = Pair{Field: y.Fields[i], Value: y.Values[i]}
	}
	slices.SortStableFunc(pairs, cmp)
	for i, p := range pairs {
		y.Fields[i] = p.Field
		y.Values[i] = p.Value
	}
	y.Reindex()
	return y
}

// SortBy stably sorts the pairs of y by the value each tree value holds at
// path. Leaf values sort first. Values which both parse as numbers are
// compared numerically.
func (y *Node) SortBy(path string) *Node {
	return y.SortByFunc(path, CompareLeaves)
}

// SortByFunc is SortBy with a custom comparison of the values at path,
// which may be nil.
func (y *Node) SortByFunc(path string, compare func(a, b *Node) int) *Node {
	return y.Sort(func(a, b Pair) int {
		at, bt := a.Value.IsTree(), b.Value.IsTree()
		switch {
		case !at && !bt:
			return 0
		case !at:
			return -1
		case !bt:
			return 1
		}
		return compare(a.Value.Get(path), b.Value.Get(path))
	})
}

// CompareLeaves orders missing values first, then numbers, then text.
func CompareLeaves(a, b *Node) int {
	as, bs := leafText(a), leafText(b)
	af, aErr := strconv.ParseFloat(as, 64)
	bf, bErr := strconv.ParseFloat(bs, 64)
	if aErr == nil && bErr == nil {
		return cmp.Compare(af, bf)
	}
	if (a == nil) != (b == nil) {
		if a == nil {
			return -1
		}
		return 1
	}
	return cmp.Compare(as, bs)
}

func leafText(v *Node) string {
	if v == nil || v.Type != LeafType {
		return ""
	}
	return v.String
}

// Toggle sets path to v2 when it holds v1, and to v1 otherwise.
func (y *Node) Toggle(path, v1, v2 string) *Node {
	if s, ok := y.GetString(path); ok && s == v1 {
		return y.SetString(path, v2)
	}
	return y.SetString(path, v1)
}

// Trim removes pairs holding an empty leaf or an empty tree. With
// recursive set nested trees are trimmed first.
func (y *Node) Trim(recursive bool) *Node {
	keep := 0
	for i, v := range y.Values {
		if v.IsTree() && recursive {
			v.Trim(recursive)
		}
		if !Truth(v) {
			continue
		}
		y.Fields[keep] = y.Fields[i]
		y.Values[keep] = v
		keep++
	}
	if y.Type == TreeType {
		clear(y.Values[keep:])
		y.Fields = y.Fields[:keep]
		y.Values = y.Values[:keep]
		y.Reindex()
	}
	return y
}

// Wrap replaces the content of y by a single pair field holding the
// former content.
func (y *Node) Wrap(field string) *Node {
	content := New().SetPair(field, y.Clone(), -1, false)
	return y.Reload(content)
}

// Map returns a copy of y with fields passed through fieldFn and leaf
// values through valueFn, either of which may be nil. valueFn receives the
// new and the old field. With deep set nested trees are mapped too.
func (y *Node) Map(fieldFn func(string) string, valueFn func(v *Node, field, old string) *Node, deep bool) *Node {
	res := y.Clone()
	res.mapInPlace(fieldFn, valueFn, deep)
	return res
}

func (y *Node) mapInPlace(fieldFn func(string) string, valueFn func(v *Node, field, old string) *Node, deep bool) {
	for i := 0; i < y.Len(); i++ {
		old := y.Fields[i]
		if fieldFn != nil {
			if f := fieldFn(old); f != "" {
				y.Fields[i] = f
			}
		}
		v := y.Values[i]
		switch {
		case deep && v.IsTree():
			v.mapInPlace(fieldFn, valueFn, deep)
		case valueFn != nil:
			nv := valueFn(v, y.Fields[i], old)
			if nv == nil {
				nv = FromString("")
			}
			nv.Parent = y
			y.Values[i] = nv
		}
	}
	y.Reindex()
}
