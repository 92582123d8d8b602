package mocks

import (
	"context"

	"dataroom/internal/model"
	"dataroom/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, q *model.Question) (*model.Question, error) {
	args := m.Called(ctx, q)
	if f, ok := args.Get(0).(func(context.Context, *model.Question) *model.Question); ok {
		return f(ctx, q), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Question), args.Error(1)
}

func (m *MockQuestionRepository) FindByID(ctx context.Context, id string) (*model.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Question), args.Error(1)
}

func (m *MockQuestionRepository) List(ctx context.Context, f repository.QuestionFilter) (*repository.PageResult[model.Question], error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Question]), args.Error(1)
}

func (m *MockQuestionRepository) ListAll(ctx context.Context) ([]model.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Question), args.Error(1)
}

func (m *MockQuestionRepository) Update(ctx context.Context, q *model.Question, expectedVersion int64) (*model.Question, error) {
	args := m.Called(ctx, q, expectedVersion)
	if f, ok := args.Get(0).(func(context.Context, *model.Question, int64) *model.Question); ok {
		return f(ctx, q, expectedVersion), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Question), args.Error(1)
}

type MockCitationRepository struct {
	mock.Mock
}

func (m *MockCitationRepository) Replace(ctx context.Context, questionID string, cs []model.SourceCitation) error {
	args := m.Called(ctx, questionID, cs)
	return args.Error(0)
}

func (m *MockCitationRepository) ListByQuestion(ctx context.Context, questionID string) ([]model.SourceCitation, error) {
	args := m.Called(ctx, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SourceCitation), args.Error(1)
}
