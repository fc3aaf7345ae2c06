package ir

import (
	"slices"
	"strconv"
)

// SetPair is the primitive every store mutation goes through.
//
// An index < 0 or >= Len appends. Otherwise the pair at index is replaced
// when overwrite is set and a new pair is inserted before it when not.
// An empty field is ignored and a nil value is stored as an empty leaf.
func (y *Node) SetPair(field string, v *Node, index int, overwrite bool) *Node {
	if field == "" {
		return y
	}
	y.asTree()
	if v == nil {
		v = FromString("")
	}
	v.Parent = y
	n := len(y.Fields)
	if index < 0 || index >= n {
		y.Fields = append(y.Fields, field)
		y.Values = append(y.Values, v)
		if y.cache == nil {
			y.Reindex()
		}
		y.cache[field] = n
		return y
	}
	if overwrite {
		old := y.Fields[index]
		y.Fields[index] = field
		y.Values[index] = v
		y.reindexFrom(index)
		if old != field {
			y.recache(old)
		}
		return y
	}
	y.Fields = slices.Insert(y.Fields, index, field)
	y.Values = slices.Insert(y.Values, index, v)
	y.reindexFrom(index)
	return y
}

// Insert inserts a pair at index, shifting subsequent pairs.
func (y *Node) Insert(field string, v *Node, index int) *Node {
	return y.SetPair(field, v, index, false)
}

// Prepend inserts a pair at the front.
func (y *Node) Prepend(field string, v *Node) *Node {
	return y.SetPair(field, v, 0, false)
}

// Update replaces the pair at index with field and v, appending when index
// is out of range.
func (y *Node) Update(index int, field string, v *Node) *Node {
	return y.SetPair(field, v, index, true)
}

// Upsert overwrites the cached occurrence of field in place, or appends a
// new pair. field is never interpreted as a path.
func (y *Node) Upsert(field string, v *Node) *Node {
	if i, ok := y.cachedIndex(field); ok {
		return y.SetPair(field, v, i, true)
	}
	return y.SetPair(field, v, -1, false)
}

// Append adds a pair at the end, leaving any existing pair with the same
// field in place.
func (y *Node) Append(field string, v *Node) *Node {
	y.SetPair(field, v, -1, false)
	return y.Trigger(EventAppend, field, v).Trigger(EventChange)
}

// Create is Append, firing a create event instead.
func (y *Node) Create(field string, v *Node) *Node {
	y.SetPair(field, v, -1, false)
	return y.Trigger(EventCreate, field, v).Trigger(EventChange)
}

// Push appends v under the first free numeric field starting at Len.
func (y *Node) Push(v *Node) *Node {
	i := y.Len()
	for y.Has(strconv.Itoa(i)) {
		i++
	}
	return y.SetPair(strconv.Itoa(i), v, -1, false)
}

// Lookup returns the value at the cached index of field, or nil.
func (y *Node) Lookup(field string) *Node {
	i, ok := y.cachedIndex(field)
	if !ok {
		return nil
	}
	return y.Values[i]
}

// Has reports whether some pair has field.
func (y *Node) Has(field string) bool {
	_, ok := y.cachedIndex(field)
	return ok
}

func (y *Node) IndexOf(field string) int {
	if !y.Has(field) {
		return -1
	}
	return slices.Index(y.Fields, field)
}

func (y *Node) LastIndexOf(field string) int {
	if !y.Has(field) {
		return -1
	}
	for i := len(y.Fields) - 1; i >= 0; i-- {
		if y.Fields[i] == field {
			return i
		}
	}
	return -1
}

// FieldAt returns the field at index, counting from the end when index is
// negative.
func (y *Node) FieldAt(index int) (string, bool) {
	n := y.Len()
	if index < 0 {
		index += n
	}
	if index < 0 || index >= n {
		return "", false
	}
	return y.Fields[index], true
}

// GetByIndex returns the value at index, counting from the end when index
// is negative.
func (y *Node) GetByIndex(index int) *Node {
	n := y.Len()
	if index < 0 {
		index += n
	}
	if index < 0 || index >= n {
		return nil
	}
	return y.Values[index]
}

// RemoveAt removes the pair at index and returns the number of pairs
// removed.
func (y *Node) RemoveAt(index int) int {
	if index < 0 || index >= y.Len() {
		return 0
	}
	field := y.Fields[index]
	y.Fields = slices.Delete(y.Fields, index, index+1)
	y.Values = slices.Delete(y.Values, index, index+1)
	y.reindexFrom(index)
	y.recache(field)
	return 1
}

// DeleteAt is RemoveAt, firing delete and change when a pair was removed.
func (y *Node) DeleteAt(index int) int {
	n := y.RemoveAt(index)
	if n != 0 {
		y.Trigger(EventDelete, index).Trigger(EventChange)
	}
	return n
}

func (y *Node) removeField(field string) int {
	n := 0
	for {
		i, ok := y.cachedIndex(field)
		if !ok {
			return n
		}
		n += y.RemoveAt(i)
	}
}

// Clear removes every pair and then appends copies of the pairs of
// content, if any. Clearing an empty tree does nothing.
func (y *Node) Clear(content *Node) *Node {
	if y.Len() == 0 && content.Len() == 0 {
		return y
	}
	y.clear()
	y.Trigger(EventClear)
	y.load(content)
	return y.Trigger(EventChange)
}

// Reload replaces the content of y with a copy of content.
func (y *Node) Reload(content *Node) *Node {
	y.clear()
	y.load(content)
	return y.Trigger(EventReload)
}

func (y *Node) clear() {
	y.asTree()
	y.Fields = nil
	y.Values = nil
	y.cache = nil
}

func (y *Node) load(content *Node) {
	if content == nil || content.Type != TreeType {
		y.asTree()
		return
	}
	for i, f := range content.Fields {
		y.SetPair(f, content.Values[i].Clone(), -1, false)
	}
}

// Concat appends copies of the pairs of b.
func (y *Node) Concat(b *Node) *Node {
	for i, f := range b.Fields {
		y.Append(f, b.Values[i].Clone())
	}
	return y
}

// TableOfContents returns the fields of y joined by a space.
func (y *Node) TableOfContents() string {
	if y.Len() == 0 {
		return ""
	}
	n := len(y.Fields) - 1
	for _, f := range y.Fields {
		n += len(f)
	}
	buf := make([]byte, 0, n)
	for i, f := range y.Fields {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, f...)
	}
	return string(buf)
}
