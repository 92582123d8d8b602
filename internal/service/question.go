package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"dataroom/internal/lifecycle"
	"dataroom/internal/matching"
	"dataroom/internal/model"
	"dataroom/internal/repository"
	"dataroom/internal/urgency"
)

// QuestionListResult is the service-level DTO for paginated questions.
type QuestionListResult struct {
	Items []model.Question `json:"data"`
	Total int              `json:"total"`
}

// QuestionQuery selects a page of questions. Zero values disable a filter.
type QuestionQuery struct {
	Limit   int
	Offset  int
	Status  model.QuestionStatus
	AskedBy string
}

// SubmitRequest carries a new question from a buyer.
type SubmitRequest struct {
	Title    string
	Content  string
	Priority model.Priority
	Tags     []string
	AskedBy  string
}

// AnswerRequest resolves a question. ExpectedVersion 0 skips the version
// check against the caller's copy; the store write is still guarded.
type AnswerRequest struct {
	QuestionID       string
	Answer           string
	RelatedDocuments []string
	AnsweredBy       string
	ExpectedVersion  int64
}

// QueueItem is an open question with its urgency label.
type QueueItem struct {
	model.Question
	Urgency urgency.Label `json:"urgency,omitempty"`
}

// Dashboard summarizes the question backlog.
type Dashboard struct {
	Total               int                          `json:"total"`
	ByStatus            map[model.QuestionStatus]int `json:"by_status"`
	HighPriorityPending int                          `json:"high_priority_pending"`
	Overdue             int                          `json:"overdue"`
	Documents           int                          `json:"documents"`
}

// CitationInput is one source citation reported by the external AI service.
type CitationInput struct {
	DocumentID      string
	DocumentName    string
	Excerpt         string
	SimilarityScore float64
}

// QuestionService defines the use cases around questions.
type QuestionService interface {
	Submit(ctx context.Context, req SubmitRequest) (*model.Question, error)
	Get(ctx context.Context, id string) (*model.Question, error)
	List(ctx context.Context, q QuestionQuery) (*QuestionListResult, error)

	// MarkNeedsDocuments moves a question to needs_documents.
	MarkNeedsDocuments(ctx context.Context, id string, expectedVersion int64) (*model.Question, error)
	// Answer moves a question to answered, recording the cited documents.
	Answer(ctx context.Context, req AnswerRequest) (*model.Question, error)

	// Suggestions ranks documents for a question, best first.
	Suggestions(ctx context.Context, id string) ([]matching.DocumentMatch, error)
	// Queue lists open questions for responders, most urgent first.
	Queue(ctx context.Context) ([]QueueItem, error)
	Dashboard(ctx context.Context) (*Dashboard, error)

	// SaveCitations replaces the stored AI citations of a question.
	SaveCitations(ctx context.Context, id string, cs []CitationInput) ([]model.SourceCitation, error)
	Citations(ctx context.Context, id string) ([]model.SourceCitation, error)
}

type questionService struct {
	repo      repository.QuestionRepository
	docs      repository.DocumentRepository
	citations repository.CitationRepository
	ranker    *matching.Ranker
	opts      options
}

// NewQuestionService constructs a new QuestionService.
func NewQuestionService(
	repo repository.QuestionRepository,
	docs repository.DocumentRepository,
	citations repository.CitationRepository,
	ranker *matching.Ranker,
	opts ...Option,
) QuestionService {
	if ranker == nil {
		ranker = matching.NewRanker(nil)
	}
	return &questionService{
		repo:      repo,
		docs:      docs,
		citations: citations,
		ranker:    ranker,
		opts:      newOptions(opts),
	}
}

func (s *questionService) Submit(ctx context.Context, req SubmitRequest) (*model.Question, error) {
	ctx, span := tracer.Start(ctx, "QuestionService.Submit")
	defer span.End()

	q, err := lifecycle.Submit(lifecycle.SubmitInput{
		Title:    req.Title,
		Content:  req.Content,
		Priority: model.Priority(strings.ToLower(strings.TrimSpace(string(req.Priority)))),
		Tags:     matching.NormalizeTags(req.Tags),
	}, req.AskedBy, s.opts.now())
	if err != nil {
		return nil, err
	}

	stored, err := s.repo.Create(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("save question: %w", err)
	}
	s.opts.metrics.transition(model.StatusPending)
	s.opts.log.Info("question_submitted",
		zap.String("question_id", stored.ID),
		zap.String("asked_by", stored.AskedBy),
		zap.String("priority", string(stored.Priority)),
	)
	return stored, nil
}

func (s *questionService) Get(ctx context.Context, id string) (*model.Question, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	q, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return q, nil
}

func (s *questionService) List(ctx context.Context, q QuestionQuery) (*QuestionListResult, error) {
	if q.Status != "" && !q.Status.Valid() {
		return nil, invalid("unknown status %q", q.Status)
	}
	limit, offset := normalizePage(q.Limit, q.Offset)
	res, err := s.repo.List(ctx, repository.QuestionFilter{
		PageQuery: repository.PageQuery{Limit: limit, Offset: offset},
		Status:    q.Status,
		AskedBy:   strings.TrimSpace(q.AskedBy),
	})
	if err != nil {
		return nil, err
	}
	return &QuestionListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *questionService) MarkNeedsDocuments(ctx context.Context, id string, expectedVersion int64) (*model.Question, error) {
	ctx, span := tracer.Start(ctx, "QuestionService.MarkNeedsDocuments")
	defer span.End()

	q, err := s.load(ctx, id, expectedVersion)
	if err != nil {
		return nil, err
	}
	from := q.Status
	if err := lifecycle.MarkNeedsDocuments(q, s.opts.policy); err != nil {
		return nil, err
	}
	return s.store(ctx, q, from)
}

func (s *questionService) Answer(ctx context.Context, req AnswerRequest) (*model.Question, error) {
	ctx, span := tracer.Start(ctx, "QuestionService.Answer")
	defer span.End()

	q, err := s.load(ctx, req.QuestionID, req.ExpectedVersion)
	if err != nil {
		return nil, err
	}
	from := q.Status
	if err := lifecycle.Answer(q, req.Answer, req.RelatedDocuments, req.AnsweredBy, s.opts.now()); err != nil {
		return nil, err
	}
	if s.opts.strictReferences {
		if err := s.checkReferences(ctx, q.RelatedDocuments); err != nil {
			return nil, err
		}
	}
	span.SetAttributes(attribute.Int("related_documents", len(q.RelatedDocuments)))
	return s.store(ctx, q, from)
}

// load fetches a question and rejects a stale caller version early.
func (s *questionService) load(ctx context.Context, id string, expectedVersion int64) (*model.Question, error) {
	q, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if expectedVersion != 0 && q.Version != expectedVersion {
		return nil, fmt.Errorf("%w: question %s is at version %d, not %d", ErrConflict, id, q.Version, expectedVersion)
	}
	return q, nil
}

// store writes a transitioned question guarded by the version it was loaded at.
func (s *questionService) store(ctx context.Context, q *model.Question, from model.QuestionStatus) (*model.Question, error) {
	updated, err := s.repo.Update(ctx, q, q.Version)
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			s.opts.log.Warn("question_version_conflict", zap.String("question_id", q.ID), zap.Int64("version", q.Version))
		}
		return nil, mapRepoErr(err)
	}
	s.opts.metrics.transition(updated.Status)
	s.opts.log.Info("question_transitioned",
		zap.String("question_id", updated.ID),
		zap.String("from", string(from)),
		zap.String("to", string(updated.Status)),
		zap.Int64("version", updated.Version),
	)
	return updated, nil
}

func (s *questionService) checkReferences(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if _, err := s.docs.FindByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrDanglingReference, id)
			}
			return err
		}
	}
	return nil
}

func (s *questionService) Suggestions(ctx context.Context, id string) ([]matching.DocumentMatch, error) {
	ctx, span := tracer.Start(ctx, "QuestionService.Suggestions")
	defer span.End()

	q, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	docs, err := s.docs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	matches := s.ranker.RankDocumentsForQuestion(*q, docs)
	s.opts.metrics.ranking(DirectionDocumentsForQuestion)
	span.SetAttributes(attribute.Int("corpus.size", len(docs)), attribute.Int("matches", len(matches)))
	return matches, nil
}

func (s *questionService) Queue(ctx context.Context) ([]QueueItem, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	open := make([]model.Question, 0, len(all))
	for _, q := range all {
		if q.Status != model.StatusAnswered {
			open = append(open, q)
		}
	}
	urgency.SortQueue(open)

	now := s.opts.now()
	items := make([]QueueItem, len(open))
	for i, q := range open {
		items[i] = QueueItem{Question: q, Urgency: urgency.Classify(q, now)}
	}
	return items, nil
}

func (s *questionService) Dashboard(ctx context.Context) (*Dashboard, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := s.docs.List(ctx, repository.DocumentFilter{PageQuery: repository.PageQuery{Limit: 1}})
	if err != nil {
		return nil, err
	}

	now := s.opts.now()
	d := &Dashboard{
		Total: len(all),
		ByStatus: map[model.QuestionStatus]int{
			model.StatusPending:        0,
			model.StatusNeedsDocuments: 0,
			model.StatusAnswered:       0,
		},
		Documents: docs.Total,
	}
	for _, q := range all {
		d.ByStatus[q.Status]++
		if q.Status == model.StatusPending && q.Priority == model.PriorityHigh {
			d.HighPriorityPending++
		}
		if q.Status != model.StatusAnswered && urgency.Classify(q, now) == urgency.Overdue {
			d.Overdue++
		}
	}
	return d, nil
}

func (s *questionService) SaveCitations(ctx context.Context, id string, in []CitationInput) ([]model.SourceCitation, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	now := s.opts.now()
	cs := make([]model.SourceCitation, 0, len(in))
	for i, c := range in {
		if strings.TrimSpace(c.DocumentID) == "" {
			return nil, invalid("citation %d: document_id is required", i)
		}
		if c.SimilarityScore < 0 || c.SimilarityScore > 1 {
			return nil, invalid("citation %d: similarity_score must be within [0, 1]", i)
		}
		cs = append(cs, model.SourceCitation{
			QuestionID:      id,
			DocumentID:      strings.TrimSpace(c.DocumentID),
			DocumentName:    c.DocumentName,
			Excerpt:         c.Excerpt,
			SimilarityScore: c.SimilarityScore,
			RecordedAt:      now,
		})
	}
	if err := s.citations.Replace(ctx, id, cs); err != nil {
		return nil, fmt.Errorf("save citations: %w", err)
	}
	s.opts.log.Info("citations_saved", zap.String("question_id", id), zap.Int("count", len(cs)))
	return s.citations.ListByQuestion(ctx, id)
}

func (s *questionService) Citations(ctx context.Context, id string) ([]model.SourceCitation, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.citations.ListByQuestion(ctx, id)
}
