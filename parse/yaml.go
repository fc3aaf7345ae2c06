package parse

import (
	"fmt"

	"github.com/signadot/space/gomap"
	"github.com/signadot/space/ir"

	"github.com/goccy/go-yaml"
)

// parseYAML decodes a YAML mapping or sequence keeping mapping order.
func parseYAML(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: yaml: %w", ErrParse, err)
	}
	if v == nil {
		return ir.New(), nil
	}
	res, err := gomap.FromAny(v)
	if err != nil {
		return nil, fmt.Errorf("%w: yaml: %w", ErrParse, err)
	}
	if !res.IsTree() {
		return nil, fmt.Errorf("%w: yaml: top level value must be a mapping or a sequence", ErrParse)
	}
	return res, nil
}
