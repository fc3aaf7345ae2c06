package encode

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/space/format"
	"github.com/signadot/space/ir"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth int

	format        format.Format
	pretty        bool
	guessTypes    bool
	header        []string
	xmlAttributes bool

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes node to w, in space notation unless another format is
// selected. A nil node encodes as nothing.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	if node == nil {
		return nil
	}
	switch es.format {
	case format.SpaceFormat:
		return encodeSpace(node, w, es)
	case format.JSONFormat:
		return encodeJSON(node, w, es)
	case format.YAMLFormat:
		return encodeYAML(node, w, es)
	case format.XMLFormat:
		return encodeXML(node, w, es)
	case format.CSVFormat, format.TSVFormat, format.SSVFormat:
		return encodeDelimited(node, w, es)
	case format.QueryFormat:
		return encodeQuery(node, w, es)
	default:
		return fmt.Errorf("%w: %w: %v", ErrEncoding, format.ErrBadFormat, es.format)
	}
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

func applyColor(es *EncState, t ir.Type, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(t, attr, v)
}

func encodeSpace(node *ir.Node, w io.Writer, es *EncState) error {
	if node.IsLeaf() {
		return writeString(w, applyColor(es, ir.LeafType, ValueColor, node.String))
	}
	b := &strings.Builder{}
	spacePairs(b, node, es.depth, es)
	return writeString(w, b.String())
}

func spacePairs(b *strings.Builder, node *ir.Node, depth int, es *EncState) {
	indent := strings.Repeat(" ", depth)
	for i, field := range node.Fields {
		v := node.Values[i]
		b.WriteString(indent)
		b.WriteString(applyColor(es, v.Type, FieldColor, field))
		if v.IsTree() {
			b.WriteString("\n")
			spacePairs(b, v, depth+1, es)
			continue
		}
		b.WriteString(" ")
		text := strings.ReplaceAll(v.String, "\n", "\n"+indent+" ")
		b.WriteString(applyColor(es, ir.LeafType, ValueColor, text))
		b.WriteString("\n")
	}
}
