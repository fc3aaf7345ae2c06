// Package gomap converts between nodes and Go values.
//
// FromAny turns maps, slices, structs and scalars into trees and leaves,
// pruning reference cycles. ToAny and ToOrdered go the other way, and
// optionally guess numbers, booleans, null and arrays from the text of a
// tree. Decode fills a Go struct from a node using the "space" struct tag.
package gomap
