package encode

import "github.com/signadot/space/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

// Depth sets the indentation depth of the top level pairs in space
// notation.
func Depth(n int) EncodeOption {
	return func(es *EncState) { es.depth = n }
}

// EncodeColors colors space notation output.
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}

// EncodePretty indents JSON and XML output.
func EncodePretty(v bool) EncodeOption {
	return func(es *EncState) { es.pretty = v }
}

// EncodeGuessTypes makes JSON and YAML output interpret leaves with
// gomap.GuessLeaf and trees keyed "0", "1", ... as arrays.
func EncodeGuessTypes(v bool) EncodeOption {
	return func(es *EncState) { es.guessTypes = v }
}

// EncodeHeader sets the columns of delimited output. Without it the
// columns are the fields of the rows in order of first appearance.
func EncodeHeader(columns ...string) EncodeOption {
	return func(es *EncState) { es.header = columns }
}

// EncodeXMLAttributes makes XML output write leaves as attributes and the
// "children" tree as element content, the shape produced by parsing XML.
func EncodeXMLAttributes(v bool) EncodeOption {
	return func(es *EncState) { es.xmlAttributes = v }
}
