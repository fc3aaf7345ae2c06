package encode

import (
	"io"
	"strings"

	"github.com/signadot/space/ir"
)

// encodeDelimited writes the values of node as rows, one line each,
// after a header line naming the columns.
func encodeDelimited(node *ir.Node, w io.Writer, es *EncState) error {
	delim := string(es.format.Delimiter())
	columns := es.header
	if columns == nil {
		columns = Columns(node)
	}
	b := &strings.Builder{}
	cells := make([]string, len(columns))
	for i, col := range columns {
		cells[i] = delimCell(col, delim)
	}
	b.WriteString(strings.Join(cells, delim))
	b.WriteString("\n")
	for _, row := range node.Values {
		for i, col := range columns {
			cells[i] = delimCell(cellText(row.Lookup(col)), delim)
		}
		b.WriteString(strings.Join(cells, delim))
		b.WriteString("\n")
	}
	return writeString(w, b.String())
}

// Columns returns the fields of the tree values of node in order of first
// appearance.
func Columns(node *ir.Node) []string {
	seen := map[string]bool{}
	res := []string{}
	for _, row := range node.Values {
		for _, f := range row.Fields {
			if seen[f] {
				continue
			}
			seen[f] = true
			res = append(res, f)
		}
	}
	return res
}

func delimCell(s, delim string) string {
	if !strings.ContainsAny(s, "\"\r\n"+delim) {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// cellText returns the text of a leaf or the space notation of a tree
// without its final line feed.
func cellText(v *ir.Node) string {
	switch {
	case v == nil:
		return ""
	case v.IsLeaf():
		return v.String
	default:
		return strings.TrimSuffix(MustString(v), "\n")
	}
}
