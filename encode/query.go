package encode

import (
	"io"
	"net/url"
	"strings"

	"github.com/signadot/space/ir"
)

// encodeQuery writes the pairs of node as a query string. Tree values are
// written in space notation.
func encodeQuery(node *ir.Node, w io.Writer, es *EncState) error {
	parts := make([]string, 0, node.Len())
	for i, field := range node.Fields {
		parts = append(parts, queryEscape(field)+"="+queryEscape(cellText(node.Values[i])))
	}
	return writeString(w, strings.Join(parts, "&"))
}

func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
