package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"dataroom/internal/matching"
	"dataroom/internal/model"
	"dataroom/internal/repository"
	repoMocks "dataroom/internal/repository/mocks"
	"dataroom/internal/storage"
	storeMocks "dataroom/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestDocumentService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		in         UploadInput
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) io.Reader
		wantErr    error
		wantErrMsg string
		check      func(t *testing.T, doc *model.Document)
	}{
		{
			name: "happy path",
			in: UploadInput{
				FileName:    "Q3_financial_statement.pdf",
				ContentType: "application/pdf",
				Size:        11,
				Tags:        []string{" Financial ", "q3", "financial", ""},
				UploadedBy:  "Seller",
			},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) io.Reader {
				r := strings.NewReader("hello world")
				mStore.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "documents/") && strings.HasSuffix(key, "/Q3_financial_statement.pdf")
				}), r, storage.PutObjectOptions{
					Size:        11,
					ContentType: "application/pdf",
					Metadata:    map[string]string{"original-filename": "Q3_financial_statement.pdf", "uploaded-by": "Seller"},
				}).Return(func(_ context.Context, key string, _ io.Reader, _ storage.PutObjectOptions) storage.ObjectInfo {
					return storage.ObjectInfo{Key: key, Size: 11, ContentType: "application/pdf"}
				}, nil)

				mRepo.On("Create", mock.Anything, mock.MatchedBy(func(doc *model.Document) bool {
					return doc.Name == "Q3_financial_statement.pdf" &&
						strings.Contains(doc.StoragePath, doc.ID) &&
						doc.UploadedAt.Equal(fixedNow)
				})).Return(func(_ context.Context, doc *model.Document) *model.Document { return doc }, nil)
				return r
			},
			check: func(t *testing.T, doc *model.Document) {
				assert.Equal(t, []string{"financial", "q3"}, doc.Tags)
				assert.Equal(t, "Seller", doc.UploadedBy)
			},
		},
		{
			name:       "validation error - nil reader",
			in:         UploadInput{FileName: "test.txt"},
			setupMocks: func(*storeMocks.MockStorage, *repoMocks.MockDocumentRepository) io.Reader { return nil },
			wantErr:    ErrReaderNil,
		},
		{
			name: "storage error",
			in:   UploadInput{FileName: "test.txt", Size: 5},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", mock.Anything, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
				return r
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name: "repository error with successful rollback",
			in:   UploadInput{FileName: "test.txt", Size: 5},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", mock.Anything, mock.Anything, r, mock.Anything).
					Return(func(_ context.Context, key string, _ io.Reader, _ storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mRepo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", mock.Anything, mock.Anything).Return(nil)
				return r
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name: "repository error with failed rollback",
			in:   UploadInput{FileName: "test.txt", Size: 5},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", mock.Anything, mock.Anything, r, mock.Anything).
					Return(func(_ context.Context, key string, _ io.Reader, _ storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mRepo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", mock.Anything, mock.Anything).Return(errors.New("delete fail"))
				return r
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockDocumentRepository)
			svc := NewDocumentService(mStore, mRepo, nil, nil, WithClock(fixedClock))

			in := tt.in
			in.Reader = tt.setupMocks(mStore, mRepo)

			doc, err := svc.Upload(ctx, in)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				assert.ErrorContains(t, err, tt.wantErrMsg)
			default:
				require.NoError(t, err)
				require.NotNil(t, doc)
				if tt.check != nil {
					tt.check(t, doc)
				}
			}

			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		query      DocumentQuery
		setupMocks func(mRepo *repoMocks.MockDocumentRepository)
		wantErr    bool
		checkRes   func(t *testing.T, res *DocumentListResult)
	}{
		{
			name:  "happy path",
			query: DocumentQuery{Limit: 10},
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("List", ctx, repository.DocumentFilter{
					PageQuery: repository.PageQuery{Limit: 10, Offset: 0},
					Tags:      []string{},
				}).Return(&repository.PageResult[model.Document]{
					Items: []model.Document{{ID: "1"}, {ID: "2"}},
					Total: 2,
				}, nil)
			},
			checkRes: func(t *testing.T, res *DocumentListResult) {
				assert.Len(t, res.Items, 2)
				assert.Equal(t, 2, res.Total)
			},
		},
		{
			name:  "pagination boundary - zero limit uses default",
			query: DocumentQuery{Limit: 0, Offset: -1},
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("List", ctx, repository.DocumentFilter{
					PageQuery: repository.PageQuery{Limit: 10, Offset: 0},
					Tags:      []string{},
				}).Return(&repository.PageResult[model.Document]{Items: []model.Document{}}, nil)
			},
		},
		{
			name:  "limit is capped and tags normalized",
			query: DocumentQuery{Limit: 1000, Tags: []string{" Legal", "legal", "IP"}},
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("List", ctx, repository.DocumentFilter{
					PageQuery: repository.PageQuery{Limit: 100},
					Tags:      []string{"legal", "ip"},
				}).Return(&repository.PageResult[model.Document]{Items: []model.Document{}}, nil)
			},
		},
		{
			name:  "repository error",
			query: DocumentQuery{Limit: 10},
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("List", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDocumentRepository)
			svc := NewDocumentService(nil, mRepo, nil, nil)
			tt.setupMocks(mRepo)

			res, err := svc.List(ctx, tt.query)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.checkRes != nil {
					tt.checkRes(t, res)
				}
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
		anyErr     bool
	}{
		{
			name: "happy path",
			id:   "valid-id",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "valid-id").Return(&model.Document{ID: "valid-id"}, nil)
			},
		},
		{
			name:       "validation - empty id",
			setupMocks: func(*repoMocks.MockDocumentRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found",
			id:   "missing-id",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "missing-id").Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "generic repository error",
			id:   "error-id",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "error-id").Return(nil, errors.New("db fail"))
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDocumentRepository)
			svc := NewDocumentService(nil, mRepo, nil, nil)
			tt.setupMocks(mRepo)

			doc, err := svc.Get(ctx, tt.id)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, doc)
			case tt.anyErr:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, ErrNotFound)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.id, doc.ID)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_UpdateTags(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes before saving", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("UpdateTags", ctx, "doc-1", []string{"legal", "contracts"}).
			Return(&model.Document{ID: "doc-1", Tags: []string{"legal", "contracts"}}, nil)

		doc, err := NewDocumentService(nil, mRepo, nil, nil).UpdateTags(ctx, "doc-1", []string{"LEGAL ", "Contracts", "  "})

		require.NoError(t, err)
		assert.Equal(t, []string{"legal", "contracts"}, doc.Tags)
		mRepo.AssertExpectations(t)
	})

	t.Run("missing document", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("UpdateTags", ctx, "nope", []string{}).Return(nil, repository.ErrNotFound)

		_, err := NewDocumentService(nil, mRepo, nil, nil).UpdateTags(ctx, "nope", nil)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := NewDocumentService(nil, nil, nil, nil).UpdateTags(ctx, "", []string{"x"})
		assert.ErrorIs(t, err, ErrIDRequired)
	})
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
		wantErrMsg string
	}{
		{
			name: "happy path",
			id:   "valid-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "valid-id").Return(&model.Document{ID: "valid-id", StoragePath: "path/to/obj"}, nil)
				mStore.On("Delete", ctx, "path/to/obj").Return(nil)
				mRepo.On("Delete", ctx, "valid-id").Return(nil)
			},
		},
		{
			name:       "validation - empty id",
			setupMocks: func(*storeMocks.MockStorage, *repoMocks.MockDocumentRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found",
			id:   "missing-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "missing-id").Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "storage delete error keeps the row",
			id:   "storage-fail-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "storage-fail-id").Return(&model.Document{ID: "id", StoragePath: "path"}, nil)
				mStore.On("Delete", ctx, "path").Return(errors.New("storage fail"))
			},
			wantErrMsg: "delete storage: storage fail",
		},
		{
			name: "repository delete error",
			id:   "repo-fail-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "repo-fail-id").Return(&model.Document{ID: "id", StoragePath: "path"}, nil)
				mStore.On("Delete", ctx, "path").Return(nil)
				mRepo.On("Delete", ctx, "repo-fail-id").Return(errors.New("db fail"))
			},
			wantErrMsg: "db fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockDocumentRepository)
			svc := NewDocumentService(mStore, mRepo, nil, nil)
			tt.setupMocks(mStore, mRepo)

			err := svc.Delete(ctx, tt.id)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				assert.ErrorContains(t, err, tt.wantErrMsg)
			default:
				assert.NoError(t, err)
			}
			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_RelatedQuestions(t *testing.T) {
	ctx := context.Background()
	doc := &model.Document{ID: "doc-1", Name: "Q3_financial_statement.pdf", Tags: []string{"financial"}, UploadedAt: fixedNow.AddDate(0, 0, -30)}

	mDocs := new(repoMocks.MockDocumentRepository)
	mQuestions := new(repoMocks.MockQuestionRepository)
	mDocs.On("FindByID", mock.Anything, "doc-1").Return(doc, nil)
	mQuestions.On("ListAll", mock.Anything).Return([]model.Question{
		{ID: "q-unrelated", Title: "Office lease", Tags: []string{"real-estate"}},
		{ID: "q-fin", Title: "What is the revenue?", Content: "financial statement for Q3", Tags: []string{"financial"}},
	}, nil)

	ranker := matching.NewRanker(nil, matching.WithClock(fixedClock))
	svc := NewDocumentService(nil, mDocs, mQuestions, ranker)

	matches, err := svc.RelatedQuestions(ctx, "doc-1")

	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "q-fin", matches[0].Question.ID)
	assert.Positive(t, matches[0].Score)
	mDocs.AssertExpectations(t)
	mQuestions.AssertExpectations(t)
}

func TestDocumentService_DownloadURL(t *testing.T) {
	ctx := context.Background()

	mStore := new(storeMocks.MockStorage)
	mRepo := new(repoMocks.MockDocumentRepository)
	mRepo.On("FindByID", ctx, "doc-1").Return(&model.Document{ID: "doc-1", StoragePath: "documents/doc-1/a.pdf"}, nil)
	mStore.On("PresignGet", ctx, "documents/doc-1/a.pdf", 5*time.Minute).Return("https://minio.local/signed", nil)

	svc := NewDocumentService(mStore, mRepo, nil, nil, WithClock(fixedClock), WithPresignExpiry(5*time.Minute))
	link, err := svc.DownloadURL(ctx, "doc-1")

	require.NoError(t, err)
	assert.Equal(t, "https://minio.local/signed", link.URL)
	assert.Equal(t, fixedNow.Add(5*time.Minute), link.ExpiresAt)
	mStore.AssertExpectations(t)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "report.pdf", displayName("/tmp/uploads/report.pdf"))
	assert.Equal(t, "q3.xlsx", displayName(`C:\files\q3.xlsx`))
	assert.Equal(t, "untitled", displayName(""))
}

func TestDocumentService_Content(t *testing.T) {
	ctx := context.Background()
	doc := &model.Document{ID: "doc-1", Name: "a.pdf", StoragePath: "documents/doc-1/a.pdf", Size: 5}

	t.Run("streams the stored object", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("FindByID", mock.Anything, "doc-1").Return(doc, nil)
		mStore.On("Get", mock.Anything, "documents/doc-1/a.pdf").
			Return(io.NopCloser(strings.NewReader("%PDF-")), storage.ObjectInfo{Size: 5}, nil)

		svc := NewDocumentService(mStore, mRepo, nil, nil)
		content, err := svc.Content(ctx, "doc-1")
		require.NoError(t, err)
		defer content.Body.Close()

		body, err := io.ReadAll(content.Body)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-", string(body))
		assert.Equal(t, int64(5), content.Size)
		assert.Equal(t, "a.pdf", content.Document.Name)
		mStore.AssertExpectations(t)
	})

	t.Run("unknown document never touches storage", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("FindByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

		svc := NewDocumentService(mStore, mRepo, nil, nil)
		_, err := svc.Content(ctx, "missing")

		assert.ErrorIs(t, err, ErrNotFound)
		mStore.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("storage failure", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("FindByID", mock.Anything, "doc-1").Return(doc, nil)
		mStore.On("Get", mock.Anything, "documents/doc-1/a.pdf").
			Return(nil, storage.ObjectInfo{}, errors.New("object gone"))

		svc := NewDocumentService(mStore, mRepo, nil, nil)
		_, err := svc.Content(ctx, "doc-1")

		assert.ErrorContains(t, err, "read object: object gone")
	})
}
