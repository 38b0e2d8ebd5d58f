package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/extractor"
	"quizforge/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "error", Env: "development"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

// plainTextExtractor passes uploaded bytes through unchanged.
type plainTextExtractor struct{}

func (plainTextExtractor) Extract(content []byte) (string, error) {
	return string(content), nil
}

func testConfig() *config.Config {
	return &config.Config{
		Generation: config.GenerationConfig{
			MinWords:            30,
			DefaultNumQuestions: 5,
			DefaultNumOptions:   4,
			QuizListCacheTTL:    5 * time.Minute,
		},
	}
}

func testRegistry() *extractor.Registry {
	registry := extractor.NewRegistry()
	registry.Register(".txt", plainTextExtractor{})
	return registry
}

func longText() []byte {
	return []byte(strings.TrimSpace(strings.Repeat("Marie Curie conducted pioneering research on radioactivity in Paris. ", 8)))
}

func generatedQuizzes() []domain.GeneratedQuiz {
	quizzes := make([]domain.GeneratedQuiz, 2)
	for i := range quizzes {
		quizzes[i] = domain.GeneratedQuiz{
			QuestionText: "What does the text mention about Marie Curie?",
			Context:      "Marie Curie conducted pioneering research on radioactivity in Paris.",
			Difficulty:   2.0,
			Options: []domain.GeneratedOption{
				{Text: "Marie Curie conducted pioneering research...", IsCorrect: true},
				{Text: "radioactivity"},
				{Text: "Paris"},
				{Text: "It is not explicitly mentioned in the text"},
			},
		}
	}
	return quizzes
}

func newTestDocumentService(
	generator *MockQuizGenerator,
	docRepo *MockDocumentRepository,
	courseRepo *MockCourseRepository,
	txManager *MockTransactionManager,
	cacheMock *MockCache,
	explainer domain.OptionExplainer,
) DocumentService {
	var cacheReal domain.Cache
	if cacheMock != nil {
		cacheReal = cacheMock
	}
	return NewDocumentService(generator, testRegistry(), docRepo, courseRepo, txManager, cacheReal, explainer, testConfig())
}

func TestGenerateFromUpload_Success(t *testing.T) {
	generator := new(MockQuizGenerator)
	docRepo := new(MockDocumentRepository)
	courseRepo := new(MockCourseRepository)
	txManager := new(MockTransactionManager)

	courseRepo.On("GetCourseByID", mock.Anything, "course-1").
		Return(&domain.Course{ID: "course-1"}, nil)
	generator.On("Generate", mock.Anything, mock.Anything, 2, 4).
		Return(generatedQuizzes(), nil)
	txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)

	var savedDoc *domain.Document
	docRepo.On("SaveDocumentTree", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedDoc = args.Get(1).(*domain.Document)
		}).
		Return(nil)
	courseRepo.On("IncrementDocumentStats", mock.Anything, "course-1", mock.Anything).Return(nil)

	svc := newTestDocumentService(generator, docRepo, courseRepo, txManager, nil, nil)
	response, err := svc.GenerateFromUpload(context.Background(), "course-1", UploadInput{
		Filename:     "notes.txt",
		Content:      longText(),
		NumQuestions: 2,
		NumOptions:   4,
	})

	require.NoError(t, err)
	require.NotNil(t, response)
	assert.Equal(t, "notes", response.Title)
	assert.Equal(t, "notes.txt", response.OriginalName)
	assert.Equal(t, "txt", response.FileType)
	assert.Equal(t, 2, response.NumQuestions)

	require.Len(t, response.Quizzes, 2)
	require.Len(t, response.Summaries, 2)
	for i, quiz := range response.Quizzes {
		assert.Equal(t, i+1, quiz.Order)
		assert.Equal(t, quiz.QuizID, response.Summaries[i].QuizID)
		assert.Equal(t, quiz.QuestionText, response.Summaries[i].QuestionText)
		require.Len(t, quiz.Options, 4)
		for j, opt := range quiz.Options {
			assert.Equal(t, j+1, opt.Order)
			assert.NotEmpty(t, opt.OptionID)
		}
	}

	// The response mirrors exactly what was handed to the store.
	require.NotNil(t, savedDoc)
	assert.NoError(t, savedDoc.Validate())
	assert.Equal(t, savedDoc.ID, response.DocumentID)
	assert.Equal(t, len(savedDoc.Quizzes), len(response.Quizzes))

	docRepo.AssertExpectations(t)
	courseRepo.AssertExpectations(t)
	txManager.AssertExpectations(t)
}

func TestGenerateFromUpload_ExplainerEnrichesOptions(t *testing.T) {
	generator := new(MockQuizGenerator)
	docRepo := new(MockDocumentRepository)
	courseRepo := new(MockCourseRepository)
	txManager := new(MockTransactionManager)
	explainer := new(MockOptionExplainer)

	courseRepo.On("GetCourseByID", mock.Anything, "course-1").
		Return(&domain.Course{ID: "course-1"}, nil)
	generator.On("Generate", mock.Anything, mock.Anything, 2, 4).
		Return(generatedQuizzes(), nil)
	explainer.On("ExplainOptions", mock.Anything, mock.Anything, mock.Anything).
		Return([]string{"right", "wrong", "wrong", "wrong"}, nil)
	txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	docRepo.On("SaveDocumentTree", mock.Anything, mock.Anything).Return(nil)
	courseRepo.On("IncrementDocumentStats", mock.Anything, "course-1", mock.Anything).Return(nil)

	svc := newTestDocumentService(generator, docRepo, courseRepo, txManager, nil, explainer)
	response, err := svc.GenerateFromUpload(context.Background(), "course-1", UploadInput{
		Filename:     "notes.txt",
		Content:      longText(),
		NumQuestions: 2,
		NumOptions:   4,
	})

	require.NoError(t, err)
	for _, quiz := range response.Quizzes {
		for _, opt := range quiz.Options {
			assert.NotEmpty(t, opt.Explanation)
		}
	}
}

func TestGenerateFromUpload_ExplainerFailureIsIgnored(t *testing.T) {
	generator := new(MockQuizGenerator)
	docRepo := new(MockDocumentRepository)
	courseRepo := new(MockCourseRepository)
	txManager := new(MockTransactionManager)
	explainer := new(MockOptionExplainer)

	courseRepo.On("GetCourseByID", mock.Anything, "course-1").
		Return(&domain.Course{ID: "course-1"}, nil)
	generator.On("Generate", mock.Anything, mock.Anything, 2, 4).
		Return(generatedQuizzes(), nil)
	explainer.On("ExplainOptions", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("model unavailable"))
	txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	docRepo.On("SaveDocumentTree", mock.Anything, mock.Anything).Return(nil)
	courseRepo.On("IncrementDocumentStats", mock.Anything, "course-1", mock.Anything).Return(nil)

	svc := newTestDocumentService(generator, docRepo, courseRepo, txManager, nil, explainer)
	response, err := svc.GenerateFromUpload(context.Background(), "course-1", UploadInput{
		Filename:     "notes.txt",
		Content:      longText(),
		NumQuestions: 2,
		NumOptions:   4,
	})

	require.NoError(t, err, "enrichment failures never fail the pipeline")
	for _, quiz := range response.Quizzes {
		for _, opt := range quiz.Options {
			assert.Empty(t, opt.Explanation)
		}
	}
}

func TestGenerateFromUpload_InsufficientText(t *testing.T) {
	generator := new(MockQuizGenerator)
	svc := newTestDocumentService(generator, new(MockDocumentRepository), new(MockCourseRepository), new(MockTransactionManager), nil, nil)

	_, err := svc.GenerateFromUpload(context.Background(), "course-1", UploadInput{
		Filename:     "notes.txt",
		Content:      []byte("far too short"),
		NumQuestions: 5,
		NumOptions:   4,
	})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInsufficientText, domainErr.Code)
	generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateFromUpload_UnsupportedFormat(t *testing.T) {
	svc := newTestDocumentService(new(MockQuizGenerator), new(MockDocumentRepository), new(MockCourseRepository), new(MockTransactionManager), nil, nil)

	_, err := svc.GenerateFromUpload(context.Background(), "course-1", UploadInput{
		Filename: "notes.csv",
		Content:  longText(),
	})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeUnsupportedFormat, domainErr.Code)
}

func TestGenerateFromUpload_CourseMissing(t *testing.T) {
	courseRepo := new(MockCourseRepository)
	courseRepo.On("GetCourseByID", mock.Anything, "ghost").Return(nil, nil)

	svc := newTestDocumentService(new(MockQuizGenerator), new(MockDocumentRepository), courseRepo, new(MockTransactionManager), nil, nil)
	_, err := svc.GenerateFromUpload(context.Background(), "ghost", UploadInput{
		Filename:     "notes.txt",
		Content:      longText(),
		NumQuestions: 5,
		NumOptions:   4,
	})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
}

func TestGenerateFromUpload_GenerationErrorPassesThrough(t *testing.T) {
	generator := new(MockQuizGenerator)
	courseRepo := new(MockCourseRepository)

	courseRepo.On("GetCourseByID", mock.Anything, "course-1").
		Return(&domain.Course{ID: "course-1"}, nil)
	generator.On("Generate", mock.Anything, mock.Anything, 5, 4).
		Return(nil, domain.NewNoKeyPhrasesError())

	svc := newTestDocumentService(generator, new(MockDocumentRepository), courseRepo, new(MockTransactionManager), nil, nil)
	_, err := svc.GenerateFromUpload(context.Background(), "course-1", UploadInput{
		Filename:     "notes.txt",
		Content:      longText(),
		NumQuestions: 5,
		NumOptions:   4,
	})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeNoKeyPhrases, domainErr.Code)
}

func TestGenerateFromUpload_StorageFailure(t *testing.T) {
	generator := new(MockQuizGenerator)
	docRepo := new(MockDocumentRepository)
	courseRepo := new(MockCourseRepository)
	txManager := new(MockTransactionManager)

	courseRepo.On("GetCourseByID", mock.Anything, "course-1").
		Return(&domain.Course{ID: "course-1"}, nil)
	generator.On("Generate", mock.Anything, mock.Anything, 2, 4).
		Return(generatedQuizzes(), nil)
	txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	docRepo.On("SaveDocumentTree", mock.Anything, mock.Anything).
		Return(errors.New("ORA-03113: end-of-file on communication channel"))

	svc := newTestDocumentService(generator, docRepo, courseRepo, txManager, nil, nil)
	_, err := svc.GenerateFromUpload(context.Background(), "course-1", UploadInput{
		Filename:     "notes.txt",
		Content:      longText(),
		NumQuestions: 2,
		NumOptions:   4,
	})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeStorageFailure, domainErr.Code)
	courseRepo.AssertNotCalled(t, "IncrementDocumentStats", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateFromUpload_CounterNotFoundPassesThrough(t *testing.T) {
	generator := new(MockQuizGenerator)
	docRepo := new(MockDocumentRepository)
	courseRepo := new(MockCourseRepository)
	txManager := new(MockTransactionManager)

	courseRepo.On("GetCourseByID", mock.Anything, "course-1").
		Return(&domain.Course{ID: "course-1"}, nil)
	generator.On("Generate", mock.Anything, mock.Anything, 2, 4).
		Return(generatedQuizzes(), nil)
	txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	docRepo.On("SaveDocumentTree", mock.Anything, mock.Anything).Return(nil)
	courseRepo.On("IncrementDocumentStats", mock.Anything, "course-1", mock.Anything).
		Return(domain.NewNotFoundError("course not found: course-1"))

	svc := newTestDocumentService(generator, docRepo, courseRepo, txManager, nil, nil)
	_, err := svc.GenerateFromUpload(context.Background(), "course-1", UploadInput{
		Filename:     "notes.txt",
		Content:      longText(),
		NumQuestions: 2,
		NumOptions:   4,
	})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
}

func TestGetDocumentQuizzes_CacheHit(t *testing.T) {
	docRepo := new(MockDocumentRepository)
	cacheMock := new(MockCache)

	cached := []dto.QuizResponse{{QuizID: "quiz-1", QuestionText: "cached question", Order: 1}}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)
	cacheMock.On("Get", mock.Anything, mock.Anything).Return(string(payload), nil)

	svc := newTestDocumentService(new(MockQuizGenerator), docRepo, new(MockCourseRepository), new(MockTransactionManager), cacheMock, nil)
	responses, err := svc.GetDocumentQuizzes(context.Background(), "course-1", "doc-1")

	require.NoError(t, err)
	assert.Equal(t, cached, responses)
	docRepo.AssertNotCalled(t, "GetDocumentByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetDocumentQuizzes_CacheMissLoadsAndCaches(t *testing.T) {
	docRepo := new(MockDocumentRepository)
	cacheMock := new(MockCache)

	cacheMock.On("Get", mock.Anything, mock.Anything).Return("", domain.ErrCacheMiss)
	docRepo.On("GetDocumentByID", mock.Anything, "course-1", "doc-1").
		Return(&domain.Document{ID: "doc-1", CourseID: "course-1"}, nil)
	docRepo.On("GetQuizzesByDocument", mock.Anything, "doc-1").
		Return([]*domain.Quiz{
			{
				ID:           "quiz-1",
				DocumentID:   "doc-1",
				QuestionText: "What is radium?",
				Difficulty:   2.0,
				Order:        1,
				Options: []*domain.Option{
					{ID: "o1", QuizID: "quiz-1", Text: "an element", IsCorrect: true, Order: 1},
					{ID: "o2", QuizID: "quiz-1", Text: "a planet", Order: 2},
				},
			},
		}, nil)
	cacheMock.On("Set", mock.Anything, mock.Anything, mock.Anything, 5*time.Minute).Return(nil)

	svc := newTestDocumentService(new(MockQuizGenerator), docRepo, new(MockCourseRepository), new(MockTransactionManager), cacheMock, nil)
	responses, err := svc.GetDocumentQuizzes(context.Background(), "course-1", "doc-1")

	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "quiz-1", responses[0].QuizID)
	require.Len(t, responses[0].Options, 2)
	assert.True(t, responses[0].Options[0].IsCorrect)
	cacheMock.AssertExpectations(t)
}

func TestGetDocumentQuizzes_DocumentMissing(t *testing.T) {
	docRepo := new(MockDocumentRepository)
	cacheMock := new(MockCache)

	cacheMock.On("Get", mock.Anything, mock.Anything).Return("", domain.ErrCacheMiss)
	docRepo.On("GetDocumentByID", mock.Anything, "course-1", "ghost").Return(nil, nil)

	svc := newTestDocumentService(new(MockQuizGenerator), docRepo, new(MockCourseRepository), new(MockTransactionManager), cacheMock, nil)
	_, err := svc.GetDocumentQuizzes(context.Background(), "course-1", "ghost")

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
}

func TestGetDocumentQuizzes_CorruptCacheEntryIsDropped(t *testing.T) {
	docRepo := new(MockDocumentRepository)
	cacheMock := new(MockCache)

	cacheMock.On("Get", mock.Anything, mock.Anything).Return("{not json", nil)
	cacheMock.On("Delete", mock.Anything, mock.Anything).Return(nil)
	docRepo.On("GetDocumentByID", mock.Anything, "course-1", "doc-1").
		Return(&domain.Document{ID: "doc-1"}, nil)
	docRepo.On("GetQuizzesByDocument", mock.Anything, "doc-1").Return([]*domain.Quiz{}, nil)
	cacheMock.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := newTestDocumentService(new(MockQuizGenerator), docRepo, new(MockCourseRepository), new(MockTransactionManager), cacheMock, nil)
	responses, err := svc.GetDocumentQuizzes(context.Background(), "course-1", "doc-1")

	require.NoError(t, err)
	assert.Empty(t, responses)
	cacheMock.AssertCalled(t, "Delete", mock.Anything, mock.Anything)
}
