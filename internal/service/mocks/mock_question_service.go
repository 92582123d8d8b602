package mocks

import (
	"context"

	"dataroom/internal/matching"
	"dataroom/internal/model"
	"dataroom/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockQuestionService struct {
	mock.Mock
}

func (m *MockQuestionService) Submit(ctx context.Context, req service.SubmitRequest) (*model.Question, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Question), args.Error(1)
}

func (m *MockQuestionService) Get(ctx context.Context, id string) (*model.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Question), args.Error(1)
}

func (m *MockQuestionService) List(ctx context.Context, q service.QuestionQuery) (*service.QuestionListResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.QuestionListResult), args.Error(1)
}

func (m *MockQuestionService) MarkNeedsDocuments(ctx context.Context, id string, expectedVersion int64) (*model.Question, error) {
	args := m.Called(ctx, id, expectedVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Question), args.Error(1)
}

func (m *MockQuestionService) Answer(ctx context.Context, req service.AnswerRequest) (*model.Question, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Question), args.Error(1)
}

func (m *MockQuestionService) Suggestions(ctx context.Context, id string) ([]matching.DocumentMatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]matching.DocumentMatch), args.Error(1)
}

func (m *MockQuestionService) Queue(ctx context.Context) ([]service.QueueItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.QueueItem), args.Error(1)
}

func (m *MockQuestionService) Dashboard(ctx context.Context) (*service.Dashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Dashboard), args.Error(1)
}

func (m *MockQuestionService) SaveCitations(ctx context.Context, id string, cs []service.CitationInput) ([]model.SourceCitation, error) {
	args := m.Called(ctx, id, cs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SourceCitation), args.Error(1)
}

func (m *MockQuestionService) Citations(ctx context.Context, id string) ([]model.SourceCitation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SourceCitation), args.Error(1)
}
