package ir

// Truth reports whether node holds content: a non-empty leaf or a tree
// with at least one pair. A nil node is false.
func Truth(node *Node) bool {
	if node == nil {
		return false
	}
	switch node.Type {
	case TreeType:
		return len(node.Fields) != 0
	case LeafType:
		return node.String != ""
	default:
		panic("type")
	}
}
