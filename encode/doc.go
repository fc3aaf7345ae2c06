// Package encode encodes ir trees to text.
//
// # Usage
//
//	node := ir.FromKeyVals("name", "John", "age", "20")
//
//	// space notation
//	err := encode.Encode(node, os.Stdout)
//
//	// JSON with guessed scalar types
//	err = encode.Encode(node, os.Stdout,
//	    encode.EncodeFormat(format.JSONFormat),
//	    encode.EncodeGuessTypes(true))
//
// Space notation is the inverse of parse.ParseString: each pair is a line
// of depth spaces, the field, and either a single space and the value or,
// for trees, the pairs of the tree on the following lines one level
// deeper. Line feeds inside a value are followed by the indentation of the
// next level.
//
// # Related Packages
//
//   - github.com/signadot/space/ir - The tree model
//   - github.com/signadot/space/parse - Parse text to trees
package encode
