package encode

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/space/gomap"
	"github.com/signadot/space/ir"
)

// encodeJSON writes node as JSON keeping field order. Duplicate fields are
// collapsed as by gomap.Collapse.
func encodeJSON(node *ir.Node, w io.Writer, es *EncState) error {
	buf := &bytes.Buffer{}
	jsonValue(buf, node, 0, es)
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

func jsonValue(buf *bytes.Buffer, v *ir.Node, depth int, es *EncState) {
	if !v.IsTree() {
		jsonLeaf(buf, v.String, es)
		return
	}
	array := es.guessTypes && gomap.IsArrayLike(v)
	open, close := byte('{'), byte('}')
	if array {
		open, close = '[', ']'
	}
	buf.WriteByte(open)
	fields, values := gomap.Collapse(v)
	if len(fields) == 0 {
		buf.WriteByte(close)
		return
	}
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		jsonNL(buf, depth+1, es)
		if !array {
			jsonString(buf, field)
			buf.WriteByte(':')
			if es.pretty {
				buf.WriteByte(' ')
			}
		}
		jsonValue(buf, values[i], depth+1, es)
	}
	jsonNL(buf, depth, es)
	buf.WriteByte(close)
}

func jsonLeaf(buf *bytes.Buffer, s string, es *EncState) {
	if !es.guessTypes {
		jsonString(buf, s)
		return
	}
	switch x := gomap.GuessLeaf(s).(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(x))
	case float64:
		buf.WriteString(strconv.FormatFloat(x, 'f', -1, 64))
	default:
		jsonString(buf, s)
	}
}

func jsonNL(buf *bytes.Buffer, depth int, es *EncState) {
	if !es.pretty {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(" ", depth))
}

func jsonString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	buf.Truncate(buf.Len() - 1)
}
