package repository

import (
	"context"

	"dataroom/internal/model"
)

// DocumentRepository defines data access for documents.
// No business logic here, strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns a page of documents, newest first, and the total count for the filter.
	List(ctx context.Context, f DocumentFilter) (*PageResult[model.Document], error)

	// ListAll returns every document in upload order (oldest first).
	// This is the corpus order matching relies on for tie breaking.
	ListAll(ctx context.Context) ([]model.Document, error)

	// UpdateTags replaces a document's tags, or returns ErrNotFound.
	UpdateTags(ctx context.Context, id string, tags []string) (*model.Document, error)

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}

// DocumentFilter narrows a document listing. A document matches when it
// carries any of Tags; an empty Tags matches everything.
type DocumentFilter struct {
	PageQuery
	Tags []string
}
