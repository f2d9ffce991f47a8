// Package content keeps the site's content collections in memory. Each
// collection lives in a Slice: a mutex-guarded snapshot of documents with an
// explicit loading status, refreshed from the document store on demand and
// edited write-through.
package content

import (
	"context"
	"fmt"
	"sync"

	"github.com/ustaweb/content-manager/internal/events"
	"github.com/ustaweb/content-manager/internal/listing"
	"github.com/ustaweb/content-manager/internal/logger"
	"github.com/ustaweb/content-manager/internal/store"
	"github.com/ustaweb/content-manager/internal/timeutil"
)

// Status is the lifecycle state of a Slice.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Descriptor binds a Slice to its collection and entity type.
type Descriptor[T any] struct {
	Collection string
	Parse      func(store.Document) (T, error)
	Fields     func(T) (map[string]any, error)
	ID         func(T) string
	Order      func(T) int
	IsActive   func(T) bool
	// IsFeatured is optional; collections without a featured flag leave
	// it nil and FetchFeatured degrades to FetchAll plus truncation.
	IsFeatured func(T) bool
	// FeaturedField is the document field the featured flag is stored
	// under. Empty means "isFeatured".
	FeaturedField string
}

// Slice is the in-memory state of one content collection.
type Slice[T any] struct {
	mu     sync.Mutex
	items  []T
	status Status
	err    error

	store     store.Store
	publisher *events.Publisher
	log       logger.Logger
	desc      Descriptor[T]
}

// NewSlice creates an empty, idle slice. publisher may be nil.
func NewSlice[T any](st store.Store, publisher *events.Publisher, log logger.Logger, desc Descriptor[T]) *Slice[T] {
	return &Slice[T]{
		store:     st,
		publisher: publisher,
		log:       log,
		desc:      desc,
	}
}

// Collection returns the backing collection name.
func (s *Slice[T]) Collection() string {
	return s.desc.Collection
}

// FetchAll replaces the snapshot with the collection's contents, sorted by
// order ascending. With activeOnly, inactive documents are excluded. The
// store is asked for the filtered, ordered result first; if it rejects that
// query shape, everything is fetched and the filter and sort run locally.
func (s *Slice[T]) FetchAll(ctx context.Context, activeOnly bool) error {
	s.beginLoading()

	opts := store.ListOptions{OrderBy: "order"}
	if activeOnly {
		opts.WhereEquals = []store.FieldValue{{Field: "isActive", Value: true}}
	}

	items, err := s.fetch(ctx, opts, func(item T) bool {
		return !activeOnly || s.desc.IsActive(item)
	})
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.items = items
	s.status = StatusLoaded
	s.err = nil
	s.mu.Unlock()
	return nil
}

// FetchFeatured replaces the snapshot with the active, featured documents,
// sorted by order and truncated to limit. A limit below 1 means no limit.
func (s *Slice[T]) FetchFeatured(ctx context.Context, limit int) error {
	if s.desc.IsFeatured == nil {
		if err := s.FetchAll(ctx, true); err != nil {
			return err
		}
		s.truncate(limit)
		return nil
	}

	s.beginLoading()

	featuredField := s.desc.FeaturedField
	if featuredField == "" {
		featuredField = "isFeatured"
	}
	opts := store.ListOptions{
		WhereEquals: []store.FieldValue{
			{Field: "isActive", Value: true},
			{Field: featuredField, Value: true},
		},
		OrderBy: "order",
	}

	items, err := s.fetch(ctx, opts, func(item T) bool {
		return s.desc.IsActive(item) && s.desc.IsFeatured(item)
	})
	if err != nil {
		return s.fail(err)
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	s.mu.Lock()
	s.items = items
	s.status = StatusLoaded
	s.err = nil
	s.mu.Unlock()
	return nil
}

// fetch runs the narrow query and falls back to a broad fetch with a local
// filter when the store rejects the query shape. Results are always sorted
// locally as well, so documents without an order field group at the front
// regardless of backend behavior.
func (s *Slice[T]) fetch(ctx context.Context, opts store.ListOptions, keep func(T) bool) ([]T, error) {
	docs, err := s.store.List(ctx, s.desc.Collection, opts)
	if err != nil {
		if !store.IsQueryRejected(err) {
			return nil, err
		}
		s.log.Warn("Store rejected filtered query, fetching broadly",
			logger.String("collection", s.desc.Collection),
			logger.Error(err))
		docs, err = s.store.List(ctx, s.desc.Collection, store.ListOptions{})
		if err != nil {
			return nil, err
		}
	}

	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		item, parseErr := s.desc.Parse(doc)
		if parseErr != nil {
			return nil, fmt.Errorf("parse document %s: %w", doc.ID, parseErr)
		}
		if keep(item) {
			items = append(items, item)
		}
	}

	return listing.SortByOrder(items, s.desc.Order), nil
}

// FetchByID loads a single document and upserts it into the snapshot.
func (s *Slice[T]) FetchByID(ctx context.Context, id string) (T, error) {
	var zero T

	doc, err := s.store.Get(ctx, s.desc.Collection, id)
	if err != nil {
		s.fail(err)
		return zero, err
	}

	item, err := s.desc.Parse(doc)
	if err != nil {
		err = fmt.Errorf("parse document %s: %w", doc.ID, err)
		s.fail(err)
		return zero, err
	}

	s.mu.Lock()
	replaced := false
	for i := range s.items {
		if s.desc.ID(s.items[i]) == id {
			s.items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		s.items = append(s.items, item)
	}
	s.status = StatusLoaded
	s.err = nil
	s.mu.Unlock()

	return item, nil
}

// Add stores a new document with client-side timestamps and appends it to
// the snapshot without refetching the collection.
func (s *Slice[T]) Add(ctx context.Context, item T) (T, error) {
	var zero T

	fields, err := s.desc.Fields(item)
	if err != nil {
		return zero, fmt.Errorf("encode entity: %w", err)
	}
	now := timeutil.NowRFC3339()
	fields["createdAt"] = now
	fields["updatedAt"] = now

	doc, err := s.store.Add(ctx, s.desc.Collection, fields)
	if err != nil {
		s.fail(err)
		return zero, err
	}

	stored, err := s.desc.Parse(doc)
	if err != nil {
		return zero, fmt.Errorf("parse stored document: %w", err)
	}

	s.mu.Lock()
	s.items = append(s.items, stored)
	s.err = nil
	s.mu.Unlock()

	s.publisher.PublishAsync(events.ContentEvent{
		Action:     events.ActionCreated,
		Collection: s.desc.Collection,
		DocumentID: doc.ID,
	})

	return stored, nil
}

// Update shallow-merges changes into the stored document, stamping
// updatedAt, and applies the same merge to the in-memory copy. Concurrent
// editors are not detected; the last write wins.
func (s *Slice[T]) Update(ctx context.Context, id string, changes map[string]any) error {
	merged := make(map[string]any, len(changes)+1)
	for k, v := range changes {
		merged[k] = v
	}
	merged["updatedAt"] = timeutil.NowRFC3339()

	if err := s.store.Update(ctx, s.desc.Collection, id, merged); err != nil {
		if !store.IsNotFound(err) {
			s.fail(err)
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.desc.ID(s.items[i]) != id {
			continue
		}
		fields, err := s.desc.Fields(s.items[i])
		if err != nil {
			return fmt.Errorf("encode entity: %w", err)
		}
		for k, v := range merged {
			fields[k] = v
		}
		item, err := s.desc.Parse(store.Document{ID: id, Fields: fields})
		if err != nil {
			return fmt.Errorf("apply update locally: %w", err)
		}
		s.items[i] = item
		break
	}
	s.err = nil

	s.publisher.PublishAsync(events.ContentEvent{
		Action:     events.ActionUpdated,
		Collection: s.desc.Collection,
		DocumentID: id,
	})

	return nil
}

// Remove deletes the document and drops it from the snapshot.
func (s *Slice[T]) Remove(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, s.desc.Collection, id); err != nil {
		if !store.IsNotFound(err) {
			s.fail(err)
		}
		return err
	}

	s.mu.Lock()
	s.items = listing.Filter(s.items, func(item T) bool {
		return s.desc.ID(item) != id
	})
	s.err = nil
	s.mu.Unlock()

	s.publisher.PublishAsync(events.ContentEvent{
		Action:     events.ActionDeleted,
		Collection: s.desc.Collection,
		DocumentID: id,
	})

	return nil
}

// Items returns a copy of the current snapshot.
func (s *Slice[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Status returns the slice's lifecycle state.
func (s *Slice[T]) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Err returns the last recorded error, if any.
func (s *Slice[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// ClearError discards the recorded error. Calling it with no error recorded
// is a no-op. A failed slice falls back to loaded when it still holds items
// from before the failure, idle otherwise.
func (s *Slice[T]) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
	if s.status == StatusFailed {
		if len(s.items) > 0 {
			s.status = StatusLoaded
		} else {
			s.status = StatusIdle
		}
	}
}

func (s *Slice[T]) beginLoading() {
	s.mu.Lock()
	s.status = StatusLoading
	s.err = nil
	s.mu.Unlock()
}

func (s *Slice[T]) fail(err error) error {
	s.mu.Lock()
	s.status = StatusFailed
	s.err = err
	s.mu.Unlock()
	return err
}

func (s *Slice[T]) truncate(limit int) {
	if limit < 1 {
		return
	}
	s.mu.Lock()
	if len(s.items) > limit {
		s.items = s.items[:limit]
	}
	s.mu.Unlock()
}
