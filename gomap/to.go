package gomap

import (
	"regexp"
	"strconv"

	"github.com/signadot/space/ir"

	"github.com/goccy/go-yaml"
)

// ToAny converts a node to plain Go values.
//
// Without guessTypes every tree becomes a map[string]any and every leaf a
// string; with duplicate fields the last pair wins. With guessTypes trees
// keyed exactly "0", "1", ... become []any and leaves are converted by
// GuessLeaf.
func ToAny(node *ir.Node, guessTypes bool) any {
	if node == nil {
		return nil
	}
	if node.Type == ir.LeafType {
		if guessTypes {
			return GuessLeaf(node.String)
		}
		return node.String
	}
	if guessTypes && IsArrayLike(node) {
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = ToAny(v, guessTypes)
		}
		return res
	}
	res := make(map[string]any, len(node.Fields))
	for i, f := range node.Fields {
		res[f] = ToAny(node.Values[i], guessTypes)
	}
	return res
}

// ToOrdered is ToAny keeping field order: trees which are not converted to
// slices become yaml.MapSlice. Duplicate fields are collapsed as by
// Collapse.
func ToOrdered(node *ir.Node, guessTypes bool) any {
	if node == nil {
		return nil
	}
	if node.Type == ir.LeafType {
		if guessTypes {
			return GuessLeaf(node.String)
		}
		return node.String
	}
	if guessTypes && IsArrayLike(node) {
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = ToOrdered(v, guessTypes)
		}
		return res
	}
	fields, values := Collapse(node)
	res := make(yaml.MapSlice, len(fields))
	for i, f := range fields {
		res[i] = yaml.MapItem{Key: f, Value: ToOrdered(values[i], guessTypes)}
	}
	return res
}

// Collapse removes duplicate fields from the pairs of node the way a map
// assignment would: each field keeps the position of its first occurrence
// and the value of its last.
func Collapse(node *ir.Node) ([]string, []*ir.Node) {
	pos := make(map[string]int, node.Len())
	var (
		fields []string
		values []*ir.Node
	)
	for i, f := range node.Fields {
		if j, ok := pos[f]; ok {
			values[j] = node.Values[i]
			continue
		}
		pos[f] = len(fields)
		fields = append(fields, f)
		values = append(values, node.Values[i])
	}
	return fields, values
}

// IsArrayLike reports whether node is a non-empty tree whose fields are
// "0", "1", ... in order.
func IsArrayLike(node *ir.Node) bool {
	if node.Len() == 0 {
		return false
	}
	for i, f := range node.Fields {
		if f != strconv.Itoa(i) {
			return false
		}
	}
	return true
}

var numberRE = regexp.MustCompile(`^[\-\.]?[0-9]+[0-9\.]*$`)

// GuessLeaf interprets "true", "false" and "null" and numeric looking
// text; anything else stays a string.
func GuessLeaf(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	if !numberRE.MatchString(s) {
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return f
}
