package memory

import (
	"context"
	"sort"
	"sync"

	"dataroom/internal/model"
	"dataroom/internal/repository"
)

// Ensure CitationStore implements the interface.
var _ repository.CitationRepository = (*CitationStore)(nil)

// CitationStore keeps source citations per question in memory.
type CitationStore struct {
	mu        sync.RWMutex
	citations map[string][]model.SourceCitation
}

// NewCitationStore creates a new in-memory citation store.
func NewCitationStore() *CitationStore {
	return &CitationStore{citations: make(map[string][]model.SourceCitation)}
}

// Replace swaps the citations stored for questionID.
func (s *CitationStore) Replace(_ context.Context, questionID string, cs []model.SourceCitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(cs) == 0 {
		delete(s.citations, questionID)
		return nil
	}
	stored := make([]model.SourceCitation, len(cs))
	copy(stored, cs)
	for i := range stored {
		stored[i].QuestionID = questionID
	}
	s.citations[questionID] = stored
	return nil
}

// ListByQuestion returns citations highest similarity first.
func (s *CitationStore) ListByQuestion(_ context.Context, questionID string) ([]model.SourceCitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.SourceCitation, len(s.citations[questionID]))
	copy(out, s.citations[questionID])
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SimilarityScore > out[j].SimilarityScore
	})
	return out, nil
}
