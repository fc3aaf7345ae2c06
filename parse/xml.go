package parse

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/space/ir"
)

type xmlFrame struct {
	node, children *ir.Node
}

func (f *xmlFrame) close() *ir.Node {
	if f.children.Len() > 0 {
		f.node.Put("children", f.children)
	}
	return f.node
}

// parseXML decodes XML into a tree of elements. Each element becomes a pair
// named by its tag whose value holds the attributes as leaves and, under
// "children", the child elements and trimmed text pushed in document
// order. The result holds the top level elements.
func parseXML(d []byte) (*ir.Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(d))
	root := &xmlFrame{node: ir.New(), children: ir.New()}
	stack := []*xmlFrame{root}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: xml: %w", ErrParse, err)
		}
		top := stack[len(stack)-1]
		switch x := tok.(type) {
		case xml.StartElement:
			f := &xmlFrame{node: ir.New(), children: ir.New()}
			for _, attr := range x.Attr {
				f.node.Put(attr.Name.Local, ir.FromString(attr.Value))
			}
			stack = append(stack, f)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
			parent := stack[len(stack)-1]
			parent.children.SetPair(x.Name.Local, top.close(), -1, false)
		case xml.CharData:
			if len(stack) == 1 {
				continue
			}
			if text := strings.TrimSpace(string(x)); text != "" {
				top.children.Push(ir.FromString(text))
			}
		}
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("%w: xml: unclosed element", ErrParse)
	}
	return root.children, nil
}
