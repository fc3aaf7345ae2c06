package encode

import (
	"fmt"
	"io"

	"github.com/signadot/space/gomap"
	"github.com/signadot/space/ir"

	"github.com/goccy/go-yaml"
)

func encodeYAML(node *ir.Node, w io.Writer, es *EncState) error {
	d, err := yaml.Marshal(gomap.ToOrdered(node, es.guessTypes))
	if err != nil {
		return fmt.Errorf("%w: yaml: %w", ErrEncoding, err)
	}
	_, err = w.Write(d)
	return err
}
