package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/signadot/space/encode"
	"github.com/signadot/space/ir"
)

const docSuffix = ".space"

// Dir stores each document as a space notation file under a directory.
type Dir struct {
	root string
}

// NewDir returns a store rooted at root. If root is empty, it defaults to
// ".space/docs".
func NewDir(root string) *Dir {
	if root == "" {
		root = filepath.Join(".space", "docs")
	}
	return &Dir{root: root}
}

// Root returns the directory holding the documents.
func (d *Dir) Root() string {
	return d.root
}

func (d *Dir) path(key string) string {
	return filepath.Join(d.root, key+docSuffix)
}

func (d *Dir) Get(_ context.Context, key string) (*ir.Node, error) {
	if err := CheckKey(key); err != nil {
		return nil, err
	}
	doc, err := ReadFile(d.path(key))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	return doc, err
}

func (d *Dir) Put(_ context.Context, key string, doc *ir.Node) error {
	if err := CheckKey(key); err != nil {
		return err
	}
	return writeAtomic(d.path(key), []byte(encode.MustString(doc)))
}

func (d *Dir) Delete(_ context.Context, key string) error {
	if err := CheckKey(key); err != nil {
		return err
	}
	err := os.Remove(d.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (d *Dir) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, docSuffix) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, docSuffix))
	}
	slices.Sort(keys)
	return keys, nil
}
