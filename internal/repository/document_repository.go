package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"quizforge/internal/domain"
	"quizforge/internal/repository/models"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"
)

// DocumentDatabaseAdapter implements domain.DocumentRepository using sqlx.
// All statements go through the context-scoped executor, so that every write
// of one generation run stages into the same transaction.
type DocumentDatabaseAdapter struct {
	db *sqlx.DB
}

// NewDocumentDatabaseAdapter creates a new instance of DocumentDatabaseAdapter
func NewDocumentDatabaseAdapter(db *sqlx.DB) domain.DocumentRepository {
	return &DocumentDatabaseAdapter{db: db}
}

// SaveDocumentTree implements domain.DocumentRepository. The caller supplies
// a fully-constructed, validated document tree with identifiers and display
// orders already allocated.
func (a *DocumentDatabaseAdapter) SaveDocumentTree(ctx context.Context, doc *domain.Document) error {
	executor := GetExecutor(ctx, a.db)

	modelDoc, err := toModelDocument(doc)
	if err != nil {
		return err
	}

	docQuery := `INSERT INTO documents (
		id, course_id, title, original_name, storage_path,
		file_type, num_questions, quiz_summaries, created_at, processed_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9, :10
	)`

	_, err = executor.ExecContext(ctx, docQuery,
		modelDoc.ID,
		modelDoc.CourseID,
		modelDoc.Title,
		modelDoc.OriginalName,
		modelDoc.StoragePath,
		modelDoc.FileType,
		modelDoc.NumQuestions,
		modelDoc.QuizSummaries,
		modelDoc.CreatedAt,
		modelDoc.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document %s: %w", doc.ID, err)
	}

	quizQuery := `INSERT INTO quizzes (
		id, document_id, question_text, context, difficulty, display_order, created_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7
	)`
	optionQuery := `INSERT INTO options (
		id, quiz_id, option_text, is_correct, explanation, display_order, created_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7
	)`

	for _, quiz := range doc.Quizzes {
		modelQuiz := toModelQuiz(quiz)
		_, err = executor.ExecContext(ctx, quizQuery,
			modelQuiz.ID,
			modelQuiz.DocumentID,
			modelQuiz.QuestionText,
			modelQuiz.Context,
			modelQuiz.Difficulty,
			modelQuiz.DisplayOrder,
			modelQuiz.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert quiz %s: %w", quiz.ID, err)
		}

		for _, option := range quiz.Options {
			modelOption := toModelOption(option)
			_, err = executor.ExecContext(ctx, optionQuery,
				modelOption.ID,
				modelOption.QuizID,
				modelOption.OptionText,
				modelOption.IsCorrect,
				modelOption.Explanation,
				modelOption.DisplayOrder,
				modelOption.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert option %s: %w", option.ID, err)
			}
		}
	}

	return nil
}

// GetDocumentByID implements domain.DocumentRepository
func (a *DocumentDatabaseAdapter) GetDocumentByID(ctx context.Context, courseID, documentID string) (*domain.Document, error) {
	executor := GetExecutor(ctx, a.db)

	var modelDoc models.Document
	query := `SELECT
		id "id",
		course_id "course_id",
		title "title",
		original_name "original_name",
		storage_path "storage_path",
		file_type "file_type",
		num_questions "num_questions",
		quiz_summaries "quiz_summaries",
		created_at "created_at",
		processed_at "processed_at"
	FROM documents
	WHERE id = :1
	AND course_id = :2`

	err := executor.GetContext(ctx, &modelDoc, query, documentID, courseID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document %s: %w", documentID, err)
	}
	return toDomainDocument(&modelDoc)
}

// GetQuizzesByDocument implements domain.DocumentRepository. Options of the
// returned quizzes are hydrated concurrently, one fetch per quiz.
func (a *DocumentDatabaseAdapter) GetQuizzesByDocument(ctx context.Context, documentID string) ([]*domain.Quiz, error) {
	executor := GetExecutor(ctx, a.db)

	var modelQuizzes []models.Quiz
	query := `SELECT
		id "id",
		document_id "document_id",
		question_text "question_text",
		context "context",
		difficulty "difficulty",
		display_order "display_order",
		created_at "created_at"
	FROM quizzes
	WHERE document_id = :1
	ORDER BY display_order ASC`

	if err := executor.SelectContext(ctx, &modelQuizzes, query, documentID); err != nil {
		return nil, fmt.Errorf("failed to query quizzes for document %s: %w", documentID, err)
	}

	quizzes := make([]*domain.Quiz, len(modelQuizzes))
	g, gctx := errgroup.WithContext(ctx)
	for i, mq := range modelQuizzes {
		quizzes[i] = toDomainQuiz(&mq)
		quiz := quizzes[i]
		g.Go(func() error {
			options, err := a.getOptionsByQuiz(gctx, quiz.ID)
			if err != nil {
				return err
			}
			quiz.Options = options
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return quizzes, nil
}

func (a *DocumentDatabaseAdapter) getOptionsByQuiz(ctx context.Context, quizID string) ([]*domain.Option, error) {
	executor := GetExecutor(ctx, a.db)

	var modelOptions []models.Option
	query := `SELECT
		id "id",
		quiz_id "quiz_id",
		option_text "option_text",
		is_correct "is_correct",
		explanation "explanation",
		display_order "display_order",
		created_at "created_at"
	FROM options
	WHERE quiz_id = :1
	ORDER BY display_order ASC`

	if err := executor.SelectContext(ctx, &modelOptions, query, quizID); err != nil {
		return nil, fmt.Errorf("failed to query options for quiz %s: %w", quizID, err)
	}

	options := make([]*domain.Option, 0, len(modelOptions))
	for i := range modelOptions {
		options = append(options, toDomainOption(&modelOptions[i]))
	}
	return options, nil
}

// Helper functions for model conversion

func toModelDocument(d *domain.Document) (*models.Document, error) {
	summaries, err := json.Marshal(d.Summaries)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quiz summaries: %w", err)
	}
	return &models.Document{
		ID:            d.ID,
		CourseID:      d.CourseID,
		Title:         d.Title,
		OriginalName:  d.OriginalName,
		StoragePath:   d.StoragePath,
		FileType:      d.FileType,
		NumQuestions:  d.NumQuestions,
		QuizSummaries: string(summaries),
		CreatedAt:     d.CreatedAt,
		ProcessedAt:   d.ProcessedAt,
	}, nil
}

func toDomainDocument(m *models.Document) (*domain.Document, error) {
	var summaries []domain.QuizSummary
	if m.QuizSummaries != "" {
		if err := json.Unmarshal([]byte(m.QuizSummaries), &summaries); err != nil {
			return nil, fmt.Errorf("failed to unmarshal quiz summaries for document %s: %w", m.ID, err)
		}
	}
	return &domain.Document{
		ID:           m.ID,
		CourseID:     m.CourseID,
		Title:        m.Title,
		OriginalName: m.OriginalName,
		StoragePath:  m.StoragePath,
		FileType:     m.FileType,
		NumQuestions: m.NumQuestions,
		Summaries:    summaries,
		CreatedAt:    m.CreatedAt,
		ProcessedAt:  m.ProcessedAt,
	}, nil
}

func toModelQuiz(q *domain.Quiz) *models.Quiz {
	return &models.Quiz{
		ID:           q.ID,
		DocumentID:   q.DocumentID,
		QuestionText: q.QuestionText,
		Context:      q.Context,
		Difficulty:   q.Difficulty,
		DisplayOrder: q.Order,
		CreatedAt:    q.CreatedAt,
	}
}

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	return &domain.Quiz{
		ID:           m.ID,
		DocumentID:   m.DocumentID,
		QuestionText: m.QuestionText,
		Context:      m.Context,
		Difficulty:   m.Difficulty,
		Order:        m.DisplayOrder,
		CreatedAt:    m.CreatedAt,
	}
}

func toModelOption(o *domain.Option) *models.Option {
	explanation := sql.NullString{}
	if o.Explanation != "" {
		explanation = sql.NullString{String: o.Explanation, Valid: true}
	}
	isCorrect := 0
	if o.IsCorrect {
		isCorrect = 1
	}
	return &models.Option{
		ID:           o.ID,
		QuizID:       o.QuizID,
		OptionText:   o.Text,
		IsCorrect:    isCorrect,
		Explanation:  explanation,
		DisplayOrder: o.Order,
		CreatedAt:    o.CreatedAt,
	}
}

func toDomainOption(m *models.Option) *domain.Option {
	return &domain.Option{
		ID:          m.ID,
		QuizID:      m.QuizID,
		Text:        m.OptionText,
		IsCorrect:   m.IsCorrect == 1,
		Explanation: m.Explanation.String,
		Order:       m.DisplayOrder,
		CreatedAt:   m.CreatedAt,
	}
}
