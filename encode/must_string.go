package encode

import (
	"bytes"

	"github.com/signadot/space/ir"
)

// MustString returns the space notation of node, panicking on error.
func MustString(node *ir.Node, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		panic(err)
	}
	return buf.String()
}
