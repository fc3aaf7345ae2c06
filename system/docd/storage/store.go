// Package storage persists documents by key.
//
// Every backend stores documents in space notation, so a document read back
// keeps its pair order and duplicate names.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/space/ir"
)

var (
	// ErrNotFound is returned when no document is stored under a key.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidKey is returned for keys which cannot name a document.
	ErrInvalidKey = errors.New("invalid key")
)

// Store is a keyed document store.
type Store interface {
	// Get returns an independent copy of the document stored under key.
	Get(ctx context.Context, key string) (*ir.Node, error)
	// Put replaces the document stored under key.
	Put(ctx context.Context, key string, doc *ir.Node) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// List returns the stored keys in ascending order.
	List(ctx context.Context) ([]string, error)
}

// CheckKey validates key as a document name. Keys are single path
// elements: no separators, no spaces and no dot-only names.
func CheckKey(key string) error {
	switch {
	case key == "", key == ".", key == "..":
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	case strings.ContainsAny(key, "/\\ \t\n"):
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
