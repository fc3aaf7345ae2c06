package libdiff

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/space/encode"
	"github.com/signadot/space/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

var ErrPatch = errors.New("cannot patch")

// TextDiff returns a line diff of the space notation of a and b. Each
// line is prefixed by "-" when only in a, "+" when only in b and a space
// when in both. The result is empty when the texts are equal.
func TextDiff(a, b *ir.Node) string {
	from, to := encode.MustString(a), encode.MustString(b)
	if from == to {
		return ""
	}
	dmp := diffpatch.New()
	fromChars, toChars, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(fromChars, toChars, false), lines)
	buf := &strings.Builder{}
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix = "+"
		case diffpatch.DiffDelete:
			prefix = "-"
		}
		for _, ln := range strings.SplitAfter(d.Text, "\n") {
			if ln == "" {
				continue
			}
			buf.WriteString(prefix)
			buf.WriteString(ln)
			if !strings.HasSuffix(ln, "\n") {
				buf.WriteString("\n")
			}
		}
	}
	return buf.String()
}

// StringDiff returns the character level edits turning the text of leaf
// from into that of leaf to, as a tree of "equal", "insert" and "delete"
// pairs in order. It returns nil when the texts are the same.
func StringDiff(from, to *ir.Node) *ir.Node {
	if from.String == to.String {
		return nil
	}
	dmp := diffpatch.New()
	multiLine := strings.Contains(from.String, "\n") && strings.Contains(to.String, "\n")
	res := ir.New()
	for _, d := range dmp.DiffCleanupSemantic(dmp.DiffMain(from.String, to.String, multiLine)) {
		switch d.Type {
		case diffpatch.DiffInsert:
			res.SetPair("insert", ir.FromString(d.Text), -1, false)
		case diffpatch.DiffDelete:
			res.SetPair("delete", ir.FromString(d.Text), -1, false)
		default:
			res.SetPair("equal", ir.FromString(d.Text), -1, false)
		}
	}
	return res
}

// PatchString applies the edits of StringDiff to the text of doc and
// returns the result as a leaf. The "equal" and "delete" parts must match
// the text of doc in order.
func PatchString(doc, edits *ir.Node) (*ir.Node, error) {
	txt := doc.String
	buf := &strings.Builder{}
	for i, op := range edits.Fields {
		part := edits.Values[i].String
		switch op {
		case "insert":
			buf.WriteString(part)
			continue
		case "equal", "delete":
		default:
			return nil, fmt.Errorf("%w: unknown edit %q", ErrPatch, op)
		}
		if !strings.HasPrefix(txt, part) {
			return nil, fmt.Errorf("%w: unexpected text %q, expected %q", ErrPatch, txt, part)
		}
		txt = txt[len(part):]
		if op == "equal" {
			buf.WriteString(part)
		}
	}
	if txt != "" {
		return nil, fmt.Errorf("%w: unpatched text %q", ErrPatch, txt)
	}
	return ir.FromString(buf.String()), nil
}
