package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"dataroom/internal/matching"
	"dataroom/internal/model"
	"dataroom/internal/repository"
	"dataroom/internal/storage"
)

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentQuery selects a page of documents. A document matches when it
// carries any of Tags; Tags are normalized before filtering.
type DocumentQuery struct {
	Limit  int
	Offset int
	Tags   []string
}

// UploadInput carries a seller's upload.
type UploadInput struct {
	Reader      io.Reader
	FileName    string
	ContentType string
	Size        int64
	Tags        []string
	UploadedBy  string
}

// DownloadLink is a presigned URL for a document's content.
type DownloadLink struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DocumentContent is an open stream of a document's stored bytes.
type DocumentContent struct {
	Document *model.Document
	Body     io.ReadCloser
	Size     int64
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Upload streams the content to object storage, then saves the metadata.
	// The object is removed again if the metadata cannot be saved.
	Upload(ctx context.Context, in UploadInput) (*model.Document, error)

	// List returns documents newest first using limit/offset and a total count.
	List(ctx context.Context, q DocumentQuery) (*DocumentListResult, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// UpdateTags replaces a document's tags after normalizing them.
	UpdateTags(ctx context.Context, id string, tags []string) (*model.Document, error)

	// Delete removes a document from storage and the repository.
	// Answers citing it keep the id.
	Delete(ctx context.Context, id string) error

	// RelatedQuestions ranks the questions this document may help answer.
	RelatedQuestions(ctx context.Context, id string) ([]matching.QuestionMatch, error)

	// DownloadURL presigns a time-limited URL for the document content.
	DownloadURL(ctx context.Context, id string) (*DownloadLink, error)

	// Content opens the stored object for streaming. The caller closes the reader.
	Content(ctx context.Context, id string) (*DocumentContent, error)
}

type documentService struct {
	store     storage.Storage
	repo      repository.DocumentRepository
	questions repository.QuestionRepository
	ranker    *matching.Ranker
	opts      options
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(
	store storage.Storage,
	repo repository.DocumentRepository,
	questions repository.QuestionRepository,
	ranker *matching.Ranker,
	opts ...Option,
) DocumentService {
	if ranker == nil {
		ranker = matching.NewRanker(nil)
	}
	return &documentService{
		store:     store,
		repo:      repo,
		questions: questions,
		ranker:    ranker,
		opts:      newOptions(opts),
	}
}

func (s *documentService) Upload(ctx context.Context, in UploadInput) (*model.Document, error) {
	if in.Reader == nil {
		return nil, ErrReaderNil
	}
	ctx, span := tracer.Start(ctx, "DocumentService.Upload")
	defer span.End()

	name := displayName(in.FileName)
	uploadedBy := strings.TrimSpace(in.UploadedBy)
	if uploadedBy == "" {
		uploadedBy = unknownUser
	}
	id := uuid.NewString()
	key := storage.DocumentKey(id, name)

	obj, err := s.store.Put(ctx, key, in.Reader, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata: map[string]string{
			"original-filename": name,
			"uploaded-by":       uploadedBy,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		ID:          id,
		Name:        name,
		Tags:        matching.NormalizeTags(in.Tags),
		StoragePath: obj.Key,
		Size:        obj.Size,
		ContentType: in.ContentType,
		UploadedBy:  uploadedBy,
		UploadedAt:  s.opts.now(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		if delErr := s.store.Delete(ctx, obj.Key); delErr != nil {
			s.opts.log.Error("storage_rollback_failed",
				zap.String("document_id", id),
				zap.String("key", obj.Key),
				zap.Error(delErr),
			)
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		s.opts.log.Warn("storage_rolled_back", zap.String("document_id", id), zap.Error(err))
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	span.SetAttributes(attribute.String("document.id", stored.ID), attribute.Int("document.tags", len(stored.Tags)))
	s.opts.log.Info("document_uploaded",
		zap.String("document_id", stored.ID),
		zap.String("name", stored.Name),
		zap.Int64("size", stored.Size),
		zap.Strings("tags", stored.Tags),
	)
	return stored, nil
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, q DocumentQuery) (*DocumentListResult, error) {
	limit, offset := normalizePage(q.Limit, q.Offset)
	res, err := s.repo.List(ctx, repository.DocumentFilter{
		PageQuery: repository.PageQuery{Limit: limit, Offset: offset},
		Tags:      matching.NormalizeTags(q.Tags),
	})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return doc, nil
}

func (s *documentService) UpdateTags(ctx context.Context, id string, tags []string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.UpdateTags(ctx, id, matching.NormalizeTags(tags))
	if err != nil {
		return nil, mapRepoErr(err)
	}
	s.opts.log.Info("document_tags_updated", zap.String("document_id", id), zap.Strings("tags", doc.Tags))
	return doc, nil
}

// Delete removes the stored object first; if that fails the row is kept so
// the object is not orphaned.
func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepoErr(err)
	}
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.opts.log.Info("document_deleted", zap.String("document_id", id))
	return nil
}

func (s *documentService) RelatedQuestions(ctx context.Context, id string) ([]matching.QuestionMatch, error) {
	ctx, span := tracer.Start(ctx, "DocumentService.RelatedQuestions")
	defer span.End()

	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	qs, err := s.questions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	matches := s.ranker.RankQuestionMatchesForDocument(*doc, qs)
	s.opts.metrics.ranking(DirectionQuestionsForDocument)
	span.SetAttributes(attribute.Int("corpus.size", len(qs)), attribute.Int("matches", len(matches)))
	return matches, nil
}

func (s *documentService) DownloadURL(ctx context.Context, id string) (*DownloadLink, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	expiry := s.opts.presignExpiry
	url, err := s.store.PresignGet(ctx, doc.StoragePath, expiry)
	if err != nil {
		return nil, fmt.Errorf("presign download: %w", err)
	}
	return &DownloadLink{URL: url, ExpiresAt: s.opts.now().Add(expiry)}, nil
}

func (s *documentService) Content(ctx context.Context, id string) (*DocumentContent, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rc, info, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		s.opts.log.Error("document_content_unavailable",
			zap.String("document_id", doc.ID),
			zap.String("storage_path", doc.StoragePath),
			zap.Error(err),
		)
		return nil, fmt.Errorf("read object: %w", err)
	}
	out := &DocumentContent{Document: doc, Body: rc, Size: info.Size}
	if out.Size <= 0 {
		out.Size = doc.Size
	}
	return out, nil
}

// displayName keeps the last path segment of an uploaded file name.
func displayName(fileName string) string {
	name := strings.TrimSpace(path.Base(strings.ReplaceAll(fileName, "\\", "/")))
	if name == "" || name == "." || name == "/" {
		return "untitled"
	}
	return name
}
