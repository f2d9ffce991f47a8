// Package store provides the document-store client the content layer is
// built on. Documents live in named collections and carry schemaless field
// maps; the Elasticsearch implementation maps collections onto indices.
package store

import "context"

// Document is a single record in a collection.
type Document struct {
	ID     string
	Fields map[string]any
}

// FieldValue is an equality condition on a document field.
type FieldValue struct {
	Field string
	Value any
}

// ListOptions narrows and orders a List call. A zero value lists the whole
// collection unordered.
type ListOptions struct {
	// WhereEquals filters to documents whose fields equal the given values.
	WhereEquals []FieldValue
	// OrderBy sorts ascending by the named field. Documents missing the
	// field sort as if it were zero.
	OrderBy string
}

// Store is the document-store client surface. Implementations must return
// ErrNotFound from Get, Update and Delete when the document does not exist,
// and an error satisfying IsQueryRejected from List when the backend refuses
// the combination of filter and ordering.
type Store interface {
	List(ctx context.Context, collection string, opts ListOptions) ([]Document, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	Add(ctx context.Context, collection string, fields map[string]any) (Document, error)
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
}
