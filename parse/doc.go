// Package parse decodes documents into ir trees.
//
// # Space Notation
//
// The native notation writes one pair per line: a field, a single space
// and the value. A field alone on its line holds a tree whose pairs follow
// on lines indented by one more space. A value continues on the following
// lines indented by one more space than its field, each continuation
// adding a line feed.
//
//	name John
//	address
//	 city Boston
//	bio first line
//	 second line
//
// Carriage returns are removed, blank lines are ignored and leading
// whitespace of the document is skipped. Lines which carry no field are
// dropped: parsing space notation never fails.
//
// # Other Formats
//
// ParseFormat selects JSON, YAML, XML, the delimited formats or query
// strings instead. These return an error wrapping ErrParse on malformed
// input.
//
// # Related Packages
//
//   - github.com/signadot/space/encode - Encode trees to text
//   - github.com/signadot/space/format - The formats
package parse
