// Package format names the notations documents can be read from and
// written to.
//
// # Usage
//
//	f, err := format.ParseFormat("csv")
//	node, err := parse.Parse(data, parse.ParseFormat(f))
//	err = encode.Encode(node, os.Stdout, encode.EncodeFormat(format.JSONFormat))
//
// SpaceFormat is the native indentation notation; the others are import
// and export adapters.
package format
