// Package testhelpers provides shared fixtures for package tests.
package testhelpers

import (
	"context"
	"fmt"
	"sync"

	"github.com/ustaweb/content-manager/internal/store"
)

// MemoryStore is an in-memory store.Store for tests. With
// RejectNarrowQueries set it refuses filtered or ordered List calls the way
// a backend without the right index mappings would.
type MemoryStore struct {
	mu                  sync.Mutex
	docs                map[string][]store.Document
	nextID              int
	RejectNarrowQueries bool
	FailWith            error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]store.Document)}
}

// Seed inserts documents directly, bypassing timestamps and events.
func (m *MemoryStore) Seed(collection string, docs ...store.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[collection] = append(m.docs[collection], docs...)
}

// Docs returns the raw documents of a collection.
func (m *MemoryStore) Docs(collection string) []store.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]store.Document, len(m.docs[collection]))
	copy(out, m.docs[collection])
	return out
}

func (m *MemoryStore) List(_ context.Context, collection string, opts store.ListOptions) ([]store.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	narrow := len(opts.WhereEquals) > 0 || opts.OrderBy != ""
	if narrow && m.RejectNarrowQueries {
		return nil, &store.QueryRejectedError{Reason: "query_shard_exception"}
	}

	out := make([]store.Document, 0)
	for _, doc := range m.docs[collection] {
		if matches(doc, opts.WhereEquals) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *MemoryStore) Get(_ context.Context, collection, id string) (store.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return store.Document{}, m.FailWith
	}
	for _, doc := range m.docs[collection] {
		if doc.ID == id {
			return doc, nil
		}
	}
	return store.Document{}, store.ErrNotFound
}

func (m *MemoryStore) Add(_ context.Context, collection string, fields map[string]any) (store.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return store.Document{}, m.FailWith
	}
	m.nextID++
	doc := store.Document{ID: fmt.Sprintf("doc-%d", m.nextID), Fields: fields}
	m.docs[collection] = append(m.docs[collection], doc)
	return doc, nil
}

func (m *MemoryStore) Update(_ context.Context, collection, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	for i, doc := range m.docs[collection] {
		if doc.ID == id {
			for k, v := range fields {
				m.docs[collection][i].Fields[k] = v
			}
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *MemoryStore) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	for i, doc := range m.docs[collection] {
		if doc.ID == id {
			m.docs[collection] = append(m.docs[collection][:i], m.docs[collection][i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func matches(doc store.Document, conds []store.FieldValue) bool {
	for _, cond := range conds {
		if doc.Fields[cond.Field] != cond.Value {
			return false
		}
	}
	return true
}
