package ir

// Reindex rebuilds the lookup cache from Fields. Callers which edit
// Fields or Values directly must call it afterwards.
func (y *Node) Reindex() {
	y.reindexFrom(0)
}

func (y *Node) reindexFrom(start int) {
	if start <= 0 || y.cache == nil {
		y.cache = make(map[string]int, len(y.Fields))
		start = 0
	}
	for i := start; i < len(y.Fields); i++ {
		y.cache[y.Fields[i]] = i
	}
}

// recache points the entry for field at its last remaining occurrence, or
// drops it, when the cached index no longer refers to field.
func (y *Node) recache(field string) {
	i, ok := y.cache[field]
	if ok && i < len(y.Fields) && y.Fields[i] == field {
		return
	}
	delete(y.cache, field)
	for j := len(y.Fields) - 1; j >= 0; j-- {
		if y.Fields[j] == field {
			y.cache[field] = j
			return
		}
	}
}

func (y *Node) cachedIndex(field string) (int, bool) {
	if y == nil || y.Type != TreeType || y.cache == nil {
		return -1, false
	}
	i, ok := y.cache[field]
	return i, ok
}
