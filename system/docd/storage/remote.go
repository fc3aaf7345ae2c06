package storage

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/signadot/space/ir"
	"github.com/signadot/space/system/docd/api"
)

// Remote is a Store backed by a document server.
type Remote struct {
	base   string
	client *http.Client
}

// NewRemote returns a store talking to the server at base, for example
// "http://localhost:7400". A nil client uses http.DefaultClient.
func NewRemote(base string, client *http.Client) *Remote {
	if client == nil {
		client = http.DefaultClient
	}
	return &Remote{base: strings.TrimSuffix(base, "/"), client: client}
}

// URL returns the address of the document stored under key.
func (s *Remote) URL(key string) string {
	return s.base + "/docs/" + url.PathEscape(key)
}

func (s *Remote) Get(ctx context.Context, key string) (*ir.Node, error) {
	if err := CheckKey(key); err != nil {
		return nil, err
	}
	return FetchURL(ctx, s.client, s.URL(key))
}

func (s *Remote) Put(ctx context.Context, key string, doc *ir.Node) error {
	if err := CheckKey(key); err != nil {
		return err
	}
	_, err := PutURL(ctx, s.client, http.MethodPut, s.URL(key), doc)
	return err
}

// Patch sends a patch request body to the server and returns the patched
// document.
func (s *Remote) Patch(ctx context.Context, key string, body *ir.Node) (*ir.Node, error) {
	if err := CheckKey(key); err != nil {
		return nil, err
	}
	return PutURL(ctx, s.client, http.MethodPatch, s.URL(key), body)
}

func (s *Remote) Delete(ctx context.Context, key string) error {
	if err := CheckKey(key); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.URL(key), nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := checkResponse(resp); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// List reads the key listing, one key per numbered pair.
func (s *Remote) List(ctx context.Context) ([]string, error) {
	doc, err := FetchURL(ctx, s.client, s.base+"/docs")
	if err != nil {
		return nil, err
	}
	return api.Keys(doc), nil
}
