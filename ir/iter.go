package ir

import (
	"strconv"
	"strings"
)

// Visitor is called with a field, its value and their position. Returning
// false stops the iteration.
type Visitor func(field string, v *Node, i int) bool

// Each visits the pairs of y in order. With deep set the pairs of a
// tree value are visited right after the pair holding it. Each reports
// whether the iteration ran to completion.
func (y *Node) Each(fn Visitor, deep bool) bool {
	for i := 0; i < y.Len(); i++ {
		f, v := y.Fields[i], y.Values[i]
		if !fn(f, v, i) {
			return false
		}
		if deep && v.IsTree() && !v.Each(fn, deep) {
			return false
		}
	}
	return true
}

// Every visits every pair of y recursively, parents first.
func (y *Node) Every(fn Visitor) bool {
	return y.Each(fn, true)
}

// EveryLeaf visits every pair of y holding a leaf, recursively.
func (y *Node) EveryLeaf(fn Visitor) bool {
	return y.Each(func(f string, v *Node, i int) bool {
		if v.IsTree() {
			return true
		}
		return fn(f, v, i)
	}, true)
}

// DeepLength counts the pairs of y including nested ones.
func (y *Node) DeepLength() int {
	n := 0
	y.Every(func(string, *Node, int) bool {
		n++
		return true
	})
	return n
}

// The selections below share values with y: the values are not copied
// and keep y (or their own parent) as Parent.

func (y *Node) appendShared(field string, v *Node) {
	if field == "" {
		return
	}
	if y.cache == nil {
		y.Reindex()
	}
	y.Fields = append(y.Fields, field)
	y.Values = append(y.Values, v)
	y.cache[field] = len(y.Fields) - 1
}

func (y *Node) pushShared(v *Node) {
	i := y.Len()
	for y.Has(strconv.Itoa(i)) {
		i++
	}
	y.appendShared(strconv.Itoa(i), v)
}

// Filter returns the pairs of y for which fn returns true.
func (y *Node) Filter(fn Visitor) *Node {
	res := New()
	for i := 0; i < y.Len(); i++ {
		if fn(y.Fields[i], y.Values[i], i) {
			res.appendShared(y.Fields[i], y.Values[i])
		}
	}
	return res
}

// Find searches y and its descendants for trees whose value at field is
// the leaf value. The matches are pushed under numeric fields.
func (y *Node) Find(field, value string) *Node {
	res := New()
	y.find(field, value, res)
	return res
}

func (y *Node) find(field, value string, res *Node) {
	if s, ok := y.GetString(field); ok && s == value {
		res.pushShared(y)
	}
	for _, v := range y.Values {
		if v.IsTree() {
			v.find(field, value, res)
		}
	}
}

// Extract collects, recursively, every pair whose field is one of the
// space separated fields. A matching pair is not searched further.
func (y *Node) Extract(fields string) *Node {
	keys := map[string]bool{}
	for _, f := range strings.Split(fields, " ") {
		keys[f] = true
	}
	res := New()
	y.extract(keys, res)
	return res
}

func (y *Node) extract(keys map[string]bool, res *Node) {
	for i, f := range y.Fields {
		v := y.Values[i]
		if keys[f] {
			res.appendShared(f, v)
			continue
		}
		if v.IsTree() {
			v.extract(keys, res)
		}
	}
}

// GetAll returns the pairs of y with field.
func (y *Node) GetAll(field string) *Node {
	return y.Filter(func(f string, _ *Node, _ int) bool { return f == field })
}

// GetArray returns the values of the pairs of y with field.
func (y *Node) GetArray(field string) []*Node {
	var res []*Node
	for i, f := range y.Fields {
		if f == field {
			res = append(res, y.Values[i])
		}
	}
	return res
}

// Split starts a new tree at each pair named delim and returns them in
// order. Pairs before the first delim are skipped.
func (y *Node) Split(delim string) []*Node {
	var (
		res []*Node
		cur *Node
	)
	for i, f := range y.Fields {
		if f == delim {
			cur = New()
			res = append(res, cur)
		}
		if cur == nil {
			continue
		}
		cur.appendShared(f, y.Values[i])
	}
	return res
}

// SplitUnder is Split with the results appended under field.
func (y *Node) SplitUnder(delim, field string) *Node {
	res := New()
	for _, part := range y.Split(delim) {
		res.SetPair(field, part, -1, false)
	}
	return res
}
