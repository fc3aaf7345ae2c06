package parse

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/signadot/space/ir"
)

// parseQuery decodes name=John&age=23 into leaves, keeping order and
// repeated names.
func parseQuery(s string) (*ir.Node, error) {
	res := ir.New()
	s = strings.TrimPrefix(strings.TrimSpace(s), "?")
	if s == "" {
		return res, nil
	}
	for _, part := range strings.Split(s, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		field, err := url.QueryUnescape(k)
		if err != nil {
			return nil, fmt.Errorf("%w: query: %w", ErrParse, err)
		}
		value, err := url.QueryUnescape(v)
		if err != nil {
			return nil, fmt.Errorf("%w: query: %w", ErrParse, err)
		}
		res.SetPair(field, ir.FromString(value), -1, false)
	}
	return res, nil
}
