// Package api holds the wire types shared by the document server and its
// clients.
package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/signadot/space/format"
	"github.com/signadot/space/ir"
	"github.com/signadot/space/parse"
)

// ContentType is the media type of space notation documents.
const ContentType = "application/x-space"

// ErrBadRequest wraps every request body error.
var ErrBadRequest = errors.New("bad request")

// RequestBody is the layout of PATCH request bodies:
//
//	path <space path within the document, optional>
//	match
//	 <pattern the current value must match, optional>
//	patch
//	 <diff applied at path>
type RequestBody struct {
	Path  string
	Match *ir.Node
	Patch *ir.Node
}

// Node renders b in the request body layout.
func (b *RequestBody) Node() *ir.Node {
	res := ir.New()
	if b.Path != "" {
		res.Append("path", ir.FromString(b.Path))
	}
	if b.Match != nil {
		res.Append("match", b.Match.Clone())
	}
	if b.Patch != nil {
		res.Append("patch", b.Patch.Clone())
	} else {
		res.Append("patch", ir.New())
	}
	return res
}

// CheckContentType accepts requests carrying space notation, or no
// declared type at all.
func CheckContentType(r *http.Request) error {
	f, err := requestFormat(r)
	if err != nil {
		return err
	}
	if f != format.SpaceFormat {
		return fmt.Errorf("%w: Content-Type must be %s", ErrBadRequest, ContentType)
	}
	return nil
}

func requestFormat(r *http.Request) (format.Format, error) {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return format.SpaceFormat, nil
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	f, ok := mediaTypes[mt]
	if !ok {
		return 0, fmt.Errorf("%w: unsupported Content-Type %s", ErrBadRequest, mt)
	}
	return f, nil
}

// ReadDocument reads a request body in the format named by its
// Content-Type, space notation when there is none.
func ReadDocument(r *http.Request) (*ir.Node, error) {
	f, err := requestFormat(r)
	if err != nil {
		return nil, err
	}
	d, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body: %w", ErrBadRequest, err)
	}
	doc, err := parse.Parse(d, parse.ParseFormat(f))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return doc, nil
}

// ParseRequestBody reads the request body and extracts the path, match and
// patch fields.
func ParseRequestBody(r *http.Request) (*RequestBody, error) {
	if err := CheckContentType(r); err != nil {
		return nil, err
	}
	doc, err := ReadDocument(r)
	if err != nil {
		return nil, err
	}
	body := &RequestBody{}
	for i, field := range doc.Fields {
		value := doc.Values[i]
		switch field {
		case "path":
			if !value.IsLeaf() {
				return nil, fmt.Errorf("%w: path must be a leaf", ErrBadRequest)
			}
			body.Path = value.String
		case "match":
			body.Match = value
		case "patch":
			body.Patch = value
		}
	}
	if body.Patch == nil {
		return nil, fmt.Errorf("%w: patch is required", ErrBadRequest)
	}
	return body, nil
}

// KeyList renders keys as a listing document, one numbered pair per key.
func KeyList(keys []string) *ir.Node {
	res := ir.New()
	for _, k := range keys {
		res.Push(ir.FromString(k))
	}
	return res
}

// Keys reads a listing document made by KeyList.
func Keys(listing *ir.Node) []string {
	var keys []string
	listing.Each(func(_ string, v *ir.Node, _ int) bool {
		if v.IsLeaf() {
			keys = append(keys, v.String)
		}
		return true
	}, false)
	return keys
}
