package service

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"quizforge/internal/cache"
	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/extractor"
	"quizforge/internal/logger"
	"quizforge/internal/util"

	"go.uber.org/zap"
)

// UploadInput carries one uploaded file plus the generation parameters.
type UploadInput struct {
	Filename     string
	Content      []byte
	NumQuestions int
	NumOptions   int
}

// DocumentService exposes the document upload/generation pipeline and the
// read path over persisted quiz trees.
type DocumentService interface {
	// GenerateFromUpload extracts text from the upload, generates quizzes
	// and persists the whole tree atomically. The returned response mirrors
	// exactly what was written; callers never need a follow-up read.
	GenerateFromUpload(ctx context.Context, courseID string, input UploadInput) (*dto.DocumentResponse, error)

	// GetDocumentQuizzes returns the persisted quiz tree of a document.
	GetDocumentQuizzes(ctx context.Context, courseID, documentID string) ([]dto.QuizResponse, error)
}

type documentService struct {
	generator  domain.QuizGenerator
	extractors *extractor.Registry
	docRepo    domain.DocumentRepository
	courseRepo domain.CourseRepository
	txManager  domain.TransactionManager
	cache      domain.Cache
	explainer  domain.OptionExplainer
	cfg        *config.Config
}

// NewDocumentService creates a new DocumentService. The explainer may be nil,
// in which case options carry no explanations.
func NewDocumentService(
	generator domain.QuizGenerator,
	extractors *extractor.Registry,
	docRepo domain.DocumentRepository,
	courseRepo domain.CourseRepository,
	txManager domain.TransactionManager,
	cacheAdapter domain.Cache,
	explainer domain.OptionExplainer,
	cfg *config.Config,
) DocumentService {
	return &documentService{
		generator:  generator,
		extractors: extractors,
		docRepo:    docRepo,
		courseRepo: courseRepo,
		txManager:  txManager,
		cache:      cacheAdapter,
		explainer:  explainer,
		cfg:        cfg,
	}
}

func (s *documentService) GenerateFromUpload(ctx context.Context, courseID string, input UploadInput) (*dto.DocumentResponse, error) {
	extension := strings.ToLower(filepath.Ext(input.Filename))

	text, err := s.extractors.Extract(input.Content, extension)
	if err != nil {
		return nil, err
	}

	wordCount := len(strings.Fields(text))
	if wordCount < s.cfg.Generation.MinWords {
		return nil, domain.NewInsufficientTextError(wordCount, s.cfg.Generation.MinWords)
	}

	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load course", err)
	}
	if course == nil {
		return nil, domain.NewNotFoundError("course not found: " + courseID)
	}

	generated, err := s.generator.Generate(ctx, text, input.NumQuestions, input.NumOptions)
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, domain.NewInternalError("quiz generation failed", err)
	}

	s.enrichExplanations(ctx, generated)

	doc := assembleDocumentTree(courseID, input, generated)
	if err := doc.Validate(); err != nil {
		return nil, domain.NewInternalError("generated document tree is invalid", err)
	}

	// The atomic batch: document, quizzes, options, summary and the course
	// counter either all land or none do.
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.docRepo.SaveDocumentTree(txCtx, doc); err != nil {
			return err
		}
		return s.courseRepo.IncrementDocumentStats(txCtx, courseID, doc.ProcessedAt)
	})
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == domain.CodeNotFound {
			return nil, err
		}
		return nil, domain.NewStorageFailureError(err)
	}

	logger.Get().Info("Document quiz tree persisted",
		zap.String("document_id", doc.ID),
		zap.String("course_id", courseID),
		zap.Int("quizzes", len(doc.Quizzes)),
	)

	return toDocumentResponse(doc), nil
}

func (s *documentService) GetDocumentQuizzes(ctx context.Context, courseID, documentID string) ([]dto.QuizResponse, error) {
	cacheKey := cache.GenerateCacheKey("document", "quizzes", documentID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var responses []dto.QuizResponse
			if err := json.Unmarshal([]byte(cached), &responses); err == nil {
				return responses, nil
			}
			// A corrupt entry is dropped and rebuilt from the store.
			_ = s.cache.Delete(ctx, cacheKey)
		}
	}

	doc, err := s.docRepo.GetDocumentByID(ctx, courseID, documentID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load document", err)
	}
	if doc == nil {
		return nil, domain.NewNotFoundError("document not found: " + documentID)
	}

	quizzes, err := s.docRepo.GetQuizzesByDocument(ctx, documentID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quizzes", err)
	}

	responses := make([]dto.QuizResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		responses = append(responses, toQuizResponse(quiz))
	}

	if s.cache != nil {
		if payload, err := json.Marshal(responses); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(payload), s.cfg.Generation.QuizListCacheTTL); err != nil {
				logger.Get().Warn("Failed to cache quiz listing", zap.Error(err))
			}
		}
	}

	return responses, nil
}

// enrichExplanations fills option explanations through the optional
// explainer. Failures are logged and ignored; the pipeline never depends on
// the enrichment.
func (s *documentService) enrichExplanations(ctx context.Context, quizzes []domain.GeneratedQuiz) {
	if s.explainer == nil {
		return
	}
	for i := range quizzes {
		explanations, err := s.explainer.ExplainOptions(ctx, quizzes[i].QuestionText, quizzes[i].Options)
		if err != nil {
			logger.Get().Debug("Option explanation skipped", zap.Error(err))
			continue
		}
		for j := range quizzes[i].Options {
			quizzes[i].Options[j].Explanation = explanations[j]
		}
	}
}

// assembleDocumentTree constructs the typed entity tree with freshly
// allocated identifiers, dense display orders and the denormalized summary.
func assembleDocumentTree(courseID string, input UploadInput, generated []domain.GeneratedQuiz) *domain.Document {
	now := time.Now()
	extension := strings.ToLower(filepath.Ext(input.Filename))

	doc := &domain.Document{
		ID:           util.NewULID(),
		CourseID:     courseID,
		Title:        strings.TrimSuffix(input.Filename, filepath.Ext(input.Filename)),
		OriginalName: input.Filename,
		StoragePath:  "uploads/" + input.Filename,
		FileType:     strings.TrimPrefix(extension, "."),
		NumQuestions: len(generated),
		CreatedAt:    now,
		ProcessedAt:  now,
	}

	for i, gq := range generated {
		quiz := &domain.Quiz{
			ID:           util.NewULID(),
			DocumentID:   doc.ID,
			QuestionText: gq.QuestionText,
			Context:      gq.Context,
			Difficulty:   gq.Difficulty,
			Order:        i + 1,
			CreatedAt:    now,
		}
		for j, opt := range gq.Options {
			quiz.Options = append(quiz.Options, &domain.Option{
				ID:          util.NewULID(),
				QuizID:      quiz.ID,
				Text:        opt.Text,
				IsCorrect:   opt.IsCorrect,
				Explanation: opt.Explanation,
				Order:       j + 1,
				CreatedAt:   now,
			})
		}
		doc.Quizzes = append(doc.Quizzes, quiz)
		doc.Summaries = append(doc.Summaries, domain.QuizSummary{
			QuizID:       quiz.ID,
			QuestionText: quiz.QuestionText,
			Order:        quiz.Order,
		})
	}

	return doc
}

// Response mapping helpers

func toDocumentResponse(doc *domain.Document) *dto.DocumentResponse {
	response := &dto.DocumentResponse{
		DocumentID:   doc.ID,
		Title:        doc.Title,
		OriginalName: doc.OriginalName,
		StoragePath:  doc.StoragePath,
		FileType:     doc.FileType,
		NumQuestions: doc.NumQuestions,
		CreatedAt:    doc.CreatedAt,
		ProcessedAt:  doc.ProcessedAt,
	}
	for _, summary := range doc.Summaries {
		response.Summaries = append(response.Summaries, dto.QuizSummaryResponse{
			QuizID:       summary.QuizID,
			QuestionText: summary.QuestionText,
			Order:        summary.Order,
		})
	}
	for _, quiz := range doc.Quizzes {
		response.Quizzes = append(response.Quizzes, toQuizResponse(quiz))
	}
	return response
}

func toQuizResponse(quiz *domain.Quiz) dto.QuizResponse {
	response := dto.QuizResponse{
		QuizID:       quiz.ID,
		QuestionText: quiz.QuestionText,
		Context:      quiz.Context,
		Difficulty:   quiz.Difficulty,
		Order:        quiz.Order,
		CreatedAt:    quiz.CreatedAt,
	}
	for _, opt := range quiz.Options {
		response.Options = append(response.Options, dto.OptionResponse{
			OptionID:    opt.ID,
			Text:        opt.Text,
			IsCorrect:   opt.IsCorrect,
			Explanation: opt.Explanation,
			Order:       opt.Order,
		})
	}
	return response
}
