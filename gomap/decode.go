package gomap

import (
	"errors"
	"fmt"

	"github.com/signadot/space/ir"

	"github.com/mitchellh/mapstructure"
)

var ErrUnsupported = errors.New("unsupported value")

// Decode fills dst, a pointer, from node. Leaves are converted to the
// destination field types where the text allows it, so "42" decodes into
// an int field, "true" into a bool and "1m30s" into a time.Duration.
func Decode(node *ir.Node, dst any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          TagName,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		Result:           dst,
	})
	if err != nil {
		return fmt.Errorf("could not create decoder: %w", err)
	}
	if err := dec.Decode(decodable(node)); err != nil {
		return fmt.Errorf("could not decode into %T: %w", dst, err)
	}
	return nil
}

// decodable is ToAny with arrays recognized but leaves kept as text, for
// the weakly typed decoder to convert.
func decodable(node *ir.Node) any {
	if node == nil {
		return nil
	}
	if node.Type == ir.LeafType {
		return node.String
	}
	if IsArrayLike(node) {
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = decodable(v)
		}
		return res
	}
	res := make(map[string]any, len(node.Fields))
	for i, f := range node.Fields {
		res[f] = decodable(node.Values[i])
	}
	return res
}

// Encode converts v to a node; it is FromAny under the name matching
// Decode.
func Encode(v any) (*ir.Node, error) {
	return FromAny(v)
}
