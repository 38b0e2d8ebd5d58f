package service

import (
	"context"
	"time"

	"quizforge/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockDocumentRepository ---

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) SaveDocumentTree(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) GetDocumentByID(ctx context.Context, courseID, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, courseID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) GetQuizzesByDocument(ctx context.Context, documentID string) ([]*domain.Quiz, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Quiz), args.Error(1)
}

// --- MockCourseRepository ---

type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) SaveCourse(ctx context.Context, course *domain.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) GetCourseByID(ctx context.Context, id string) (*domain.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseRepository) IncrementDocumentStats(ctx context.Context, courseID string, at time.Time) error {
	args := m.Called(ctx, courseID, at)
	return args.Error(0)
}

// --- MockTransactionManager ---

// MockTransactionManager runs the callback inline unless told to fail, so
// tests observe the writes that would stage into the batch.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

// --- MockQuizGenerator ---

type MockQuizGenerator struct {
	mock.Mock
}

func (m *MockQuizGenerator) Generate(ctx context.Context, text string, numQuestions, numOptions int) ([]domain.GeneratedQuiz, error) {
	args := m.Called(ctx, text, numQuestions, numOptions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneratedQuiz), args.Error(1)
}

// --- MockOptionExplainer ---

type MockOptionExplainer struct {
	mock.Mock
}

func (m *MockOptionExplainer) ExplainOptions(ctx context.Context, questionText string, options []domain.GeneratedOption) ([]string, error) {
	args := m.Called(ctx, questionText, options)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- MockCache ---

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
