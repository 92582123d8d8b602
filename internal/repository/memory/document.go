package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"dataroom/internal/model"
	"dataroom/internal/repository"
)

// Ensure DocumentStore implements the interface.
var _ repository.DocumentRepository = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of repository.DocumentRepository.
type DocumentStore struct {
	mu    sync.RWMutex
	docs  map[string]model.Document
	order []string
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]model.Document)}
}

// Create stores doc. An existing ID is overwritten in place.
func (s *DocumentStore) Create(_ context.Context, doc *model.Document) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[doc.ID]; !ok {
		s.order = append(s.order, doc.ID)
	}
	stored := cloneDocument(*doc)
	s.docs[doc.ID] = stored
	out := cloneDocument(stored)
	return &out, nil
}

// FindByID retrieves a document by ID.
func (s *DocumentStore) FindByID(_ context.Context, id string) (*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneDocument(doc)
	return &out, nil
}

// List returns a page of documents, newest first.
func (s *DocumentStore) List(_ context.Context, f repository.DocumentFilter) (*repository.PageResult[model.Document], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]model.Document, 0, len(s.order))
	for _, id := range s.order {
		doc := s.docs[id]
		if len(f.Tags) > 0 && !hasAnyTag(doc.Tags, f.Tags) {
			continue
		}
		matched = append(matched, cloneDocument(doc))
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].UploadedAt.Equal(matched[j].UploadedAt) {
			return matched[i].UploadedAt.After(matched[j].UploadedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return &repository.PageResult[model.Document]{
		Items: page(matched, f.PageQuery),
		Total: len(matched),
	}, nil
}

// ListAll returns every document in upload order.
func (s *DocumentStore) ListAll(_ context.Context) ([]model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Document, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneDocument(s.docs[id]))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UploadedAt.Before(out[j].UploadedAt)
	})
	return out, nil
}

// UpdateTags replaces the tags of a stored document.
func (s *DocumentStore) UpdateTags(_ context.Context, id string, tags []string) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	doc.Tags = cloneStrings(tags)
	s.docs[id] = doc
	out := cloneDocument(doc)
	return &out, nil
}

// Delete removes a document. Missing IDs are not an error.
func (s *DocumentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return nil
	}
	delete(s.docs, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	return nil
}

func hasAnyTag(tags, want []string) bool {
	for _, w := range want {
		if slices.Contains(tags, w) {
			return true
		}
	}
	return false
}

func cloneDocument(d model.Document) model.Document {
	d.Tags = cloneStrings(d.Tags)
	return d
}

func cloneStrings(v []string) []string {
	out := make([]string, len(v))
	copy(out, v)
	return out
}

// page applies LIMIT/OFFSET semantics to an already ordered slice.
func page[T any](items []T, pq repository.PageQuery) []T {
	if pq.Offset >= len(items) || pq.Limit <= 0 {
		return []T{}
	}
	end := pq.Offset + pq.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[pq.Offset:end]
}
