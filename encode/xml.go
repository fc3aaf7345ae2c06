package encode

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/signadot/space/ir"
)

func encodeXML(node *ir.Node, w io.Writer, es *EncState) error {
	buf := &bytes.Buffer{}
	switch {
	case node.IsLeaf():
		xmlText(buf, node.String)
	case es.xmlAttributes:
		for i, field := range node.Fields {
			xmlElement(buf, field, node.Values[i], 0, es)
		}
	default:
		xmlPlain(buf, node, 0, es)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// xmlPlain writes every pair as an element: leaves hold their text, trees
// their pairs.
func xmlPlain(buf *bytes.Buffer, node *ir.Node, depth int, es *EncState) {
	for i, field := range node.Fields {
		v := node.Values[i]
		xmlIndent(buf, depth, es)
		buf.WriteString("<" + field + ">")
		switch {
		case v.IsLeaf():
			xmlText(buf, v.String)
		case v.Len() > 0:
			xmlNL(buf, es)
			xmlPlain(buf, v, depth+1, es)
			xmlIndent(buf, depth, es)
		}
		buf.WriteString("</" + field + ">")
		xmlNL(buf, es)
	}
}

// xmlElement writes the element name from the shape parsing produces:
// leaves of v are attributes, the pairs of its "children" tree are child
// elements, or text when they are leaves. Other trees of v are written as
// child elements ahead of the children.
func xmlElement(buf *bytes.Buffer, name string, v *ir.Node, depth int, es *EncState) {
	xmlIndent(buf, depth, es)
	buf.WriteString("<" + name)
	var content []ir.Pair
	for i, field := range v.Fields {
		fv := v.Values[i]
		switch {
		case field == "children" && fv.IsTree():
			for j, cf := range fv.Fields {
				content = append(content, ir.Pair{Field: cf, Value: fv.Values[j]})
			}
		case fv.IsLeaf():
			buf.WriteString(" " + field + `="`)
			xmlText(buf, fv.String)
			buf.WriteString(`"`)
		default:
			content = append(content, ir.Pair{Field: field, Value: fv})
		}
	}
	if v.IsLeaf() {
		content = append(content, ir.Pair{Value: v})
	}
	if len(content) == 0 {
		buf.WriteString("/>")
		xmlNL(buf, es)
		return
	}
	buf.WriteString(">")
	textOnly := true
	for _, p := range content {
		if p.Value.IsTree() {
			textOnly = false
			break
		}
	}
	if textOnly {
		for _, p := range content {
			xmlText(buf, p.Value.String)
		}
	} else {
		xmlNL(buf, es)
		for _, p := range content {
			if p.Value.IsTree() {
				xmlElement(buf, p.Field, p.Value, depth+1, es)
				continue
			}
			xmlIndent(buf, depth+1, es)
			xmlText(buf, p.Value.String)
			xmlNL(buf, es)
		}
		xmlIndent(buf, depth, es)
	}
	buf.WriteString("</" + name + ">")
	xmlNL(buf, es)
}

func xmlText(buf *bytes.Buffer, s string) {
	_ = xml.EscapeText(buf, []byte(s))
}

func xmlIndent(buf *bytes.Buffer, depth int, es *EncState) {
	if es.pretty {
		buf.WriteString(strings.Repeat("  ", depth))
	}
}

func xmlNL(buf *bytes.Buffer, es *EncState) {
	if es.pretty {
		buf.WriteByte('\n')
	}
}
