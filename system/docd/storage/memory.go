package storage

import (
	"context"
	"slices"
	"sync"

	"github.com/signadot/space/ir"
)

// Memory keeps documents in process memory.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]*ir.Node
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]*ir.Node)}
}

func (m *Memory) Get(_ context.Context, key string) (*ir.Node, error) {
	if err := CheckKey(key); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return doc.Clone(), nil
}

func (m *Memory) Put(_ context.Context, key string, doc *ir.Node) error {
	if err := CheckKey(key); err != nil {
		return err
	}
	if doc == nil {
		doc = ir.New()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = doc.Clone()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, key)
	return nil
}

func (m *Memory) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.docs))
	for k := range m.docs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}
