package repository

import (
	"context"

	"dataroom/internal/model"
)

// QuestionRepository defines data access for questions.
type QuestionRepository interface {
	// Create inserts a new question.
	Create(ctx context.Context, q *model.Question) (*model.Question, error)

	// FindByID returns a question by its ID, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Question, error)

	// List returns a page of questions, newest first.
	List(ctx context.Context, f QuestionFilter) (*PageResult[model.Question], error)

	// ListAll returns every question in submission order (oldest first).
	ListAll(ctx context.Context) ([]model.Question, error)

	// Update writes the lifecycle fields of q (status, answer, answered_by,
	// answered_at, related_documents) only if the stored version equals
	// expectedVersion, and increments the version.
	// It returns ErrNotFound for an unknown ID and ErrVersionConflict for a stale version.
	Update(ctx context.Context, q *model.Question, expectedVersion int64) (*model.Question, error)
}

// QuestionFilter narrows a question listing. Zero values disable a filter.
type QuestionFilter struct {
	PageQuery
	Status  model.QuestionStatus
	AskedBy string
}

// CitationRepository stores source citations produced by an external AI service.
type CitationRepository interface {
	// Replace swaps the stored citations of a question for cs.
	Replace(ctx context.Context, questionID string, cs []model.SourceCitation) error

	// ListByQuestion returns a question's citations, highest similarity first.
	ListByQuestion(ctx context.Context, questionID string) ([]model.SourceCitation, error)
}
