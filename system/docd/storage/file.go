package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/signadot/space/debug"
	"github.com/signadot/space/encode"
	"github.com/signadot/space/format"
	"github.com/signadot/space/ir"
	"github.com/signadot/space/parse"
	"github.com/signadot/space/system/docd/api"
)

// ReadFile parses the file at path, guessing its format from the extension.
func ReadFile(path string) (*ir.Node, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	doc, err := parse.Parse(d, parse.ParseFormat(format.FromPath(path)))
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	if debug.Store() {
		debug.Logf("read %s\n%s", path, encode.MustString(doc))
	}
	return doc, nil
}

// ReadFileCallback reads path in its own goroutine and hands the result to
// fn.
func ReadFileCallback(path string, fn func(*ir.Node, error)) {
	go func() {
		fn(ReadFile(path))
	}()
}

// WriteFile encodes doc in the format named by the extension of path and
// replaces the file atomically.
func WriteFile(path string, doc *ir.Node, opts ...encode.EncodeOption) error {
	opts = append([]encode.EncodeOption{encode.EncodeFormat(format.FromPath(path))}, opts...)
	buf := &bytes.Buffer{}
	if err := encode.Encode(doc, buf, opts...); err != nil {
		return fmt.Errorf("could not encode %s: %w", path, err)
	}
	if err := writeAtomic(path, buf.Bytes()); err != nil {
		return err
	}
	if debug.Store() {
		debug.Logf("wrote %s (%d bytes)\n", path, buf.Len())
	}
	return nil
}

// writeAtomic writes d to a temp file next to path, syncs it and renames
// it over path.
func writeAtomic(path string, d []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmp.Write(d); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// FetchURL gets url and parses the response body. The format comes from
// the response Content-Type, then from the extension of the url path.
func FetchURL(ctx context.Context, client *http.Client, url string) (*ir.Node, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", api.ContentType)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	f := api.FormatOf(resp.Header.Get("Content-Type"), req.URL.Path)
	return parse.ParseReader(resp.Body, parse.ParseFormat(f))
}

// PutURL sends doc in space notation to url with the given method,
// typically PUT or PATCH, and parses the response body if there is one.
func PutURL(ctx context.Context, client *http.Client, method, url string, doc *ir.Node) (*ir.Node, error) {
	if client == nil {
		client = http.DefaultClient
	}
	buf := &bytes.Buffer{}
	if err := encode.Encode(doc, buf); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, url, buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", api.ContentType)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return parse.ParseReader(resp.Body, parse.ParseFormat(api.FormatOf(resp.Header.Get("Content-Type"), "")))
}

func checkResponse(resp *http.Response) error {
	if resp.StatusCode/100 == 2 {
		return nil
	}
	where := resp.Request.Method + " " + resp.Request.URL.String()
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, where)
	}
	d, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if e := api.ErrorFromNode(parse.ParseString(string(d))); e != nil {
		return fmt.Errorf("%s: %s: %w", where, resp.Status, e)
	}
	return fmt.Errorf("%s: %s: %s", where, resp.Status, bytes.TrimSpace(d))
}
