package memory

import (
	"context"
	"sort"
	"sync"

	"dataroom/internal/model"
	"dataroom/internal/repository"
)

// Ensure QuestionStore implements the interface.
var _ repository.QuestionRepository = (*QuestionStore)(nil)

// QuestionStore is an in-memory implementation of repository.QuestionRepository.
type QuestionStore struct {
	mu        sync.RWMutex
	questions map[string]model.Question
	order     []string
}

// NewQuestionStore creates a new in-memory question store.
func NewQuestionStore() *QuestionStore {
	return &QuestionStore{questions: make(map[string]model.Question)}
}

// Create stores q.
func (s *QuestionStore) Create(_ context.Context, q *model.Question) (*model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[q.ID]; !ok {
		s.order = append(s.order, q.ID)
	}
	stored := cloneQuestion(*q)
	s.questions[q.ID] = stored
	out := cloneQuestion(stored)
	return &out, nil
}

// FindByID retrieves a question by ID.
func (s *QuestionStore) FindByID(_ context.Context, id string) (*model.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.questions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneQuestion(q)
	return &out, nil
}

// List returns a page of questions, newest first.
func (s *QuestionStore) List(_ context.Context, f repository.QuestionFilter) (*repository.PageResult[model.Question], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]model.Question, 0, len(s.order))
	for _, id := range s.order {
		q := s.questions[id]
		if f.Status != "" && q.Status != f.Status {
			continue
		}
		if f.AskedBy != "" && q.AskedBy != f.AskedBy {
			continue
		}
		matched = append(matched, cloneQuestion(q))
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].AskedAt.Equal(matched[j].AskedAt) {
			return matched[i].AskedAt.After(matched[j].AskedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return &repository.PageResult[model.Question]{
		Items: page(matched, f.PageQuery),
		Total: len(matched),
	}, nil
}

// ListAll returns every question in submission order.
func (s *QuestionStore) ListAll(_ context.Context) ([]model.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Question, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneQuestion(s.questions[id]))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AskedAt.Before(out[j].AskedAt)
	})
	return out, nil
}

// Update writes the lifecycle fields of q when the stored version matches.
func (s *QuestionStore) Update(_ context.Context, q *model.Question, expectedVersion int64) (*model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.questions[q.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if cur.Version != expectedVersion {
		return nil, repository.ErrVersionConflict
	}

	cur.Status = q.Status
	cur.Answer = q.Answer
	cur.AnsweredBy = q.AnsweredBy
	cur.AnsweredAt = nil
	if q.AnsweredAt != nil {
		t := *q.AnsweredAt
		cur.AnsweredAt = &t
	}
	cur.RelatedDocuments = cloneStrings(q.RelatedDocuments)
	cur.Version++
	s.questions[q.ID] = cur

	out := cloneQuestion(cur)
	return &out, nil
}

func cloneQuestion(q model.Question) model.Question {
	q.Tags = cloneStrings(q.Tags)
	q.RelatedDocuments = cloneStrings(q.RelatedDocuments)
	if q.AnsweredAt != nil {
		t := *q.AnsweredAt
		q.AnsweredAt = &t
	}
	return q
}
