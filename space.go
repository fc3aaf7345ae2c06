// Package space reads, edits and compares space notation documents.
//
// Documents are ir trees: ordered pairs of a field and either a leaf of
// text or a nested tree, where a field may repeat. Parse and String
// convert between trees and space notation. Diff and Patch compute and
// apply changes, DiffOrder and PatchOrder do the same for field order.
//
// The functions here fire the patch, patchOrder and change events of the
// patched tree; package libdiff provides the same operations without
// events.
package space

import (
	"github.com/signadot/space/encode"
	"github.com/signadot/space/ir"
	"github.com/signadot/space/libdiff"
	"github.com/signadot/space/parse"
)

// Parse parses space notation. It never fails: lines without a field are
// dropped.
func Parse(s string) *ir.Node {
	return parse.ParseString(s)
}

// String returns the space notation of y.
func String(y *ir.Node) string {
	return encode.MustString(y)
}

func Diff(a, b *ir.Node) *ir.Node {
	return libdiff.Diff(a, b)
}

// Patch applies d to target, then fires patch with d and change.
func Patch(target, d *ir.Node) *ir.Node {
	libdiff.Patch(target, d)
	return target.Trigger(ir.EventPatch, d).Trigger(ir.EventChange)
}

func DiffOrder(a, b *ir.Node) *ir.Node {
	return libdiff.DiffOrder(a, b)
}

// PatchOrder reorders target after p, then fires patchOrder with p and
// change.
func PatchOrder(target, p *ir.Node) *ir.Node {
	libdiff.PatchOrder(target, p)
	return target.Trigger(ir.EventPatchOrder, p).Trigger(ir.EventChange)
}

// Equal reports whether a and b have no differences, comparing leaves by
// text.
func Equal(a, b *ir.Node) bool {
	return libdiff.Equal(a, b)
}
