package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"quizforge/internal/domain"
	"quizforge/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// CourseDatabaseAdapter implements domain.CourseRepository using sqlx.
type CourseDatabaseAdapter struct {
	db *sqlx.DB
}

// NewCourseDatabaseAdapter creates a new instance of CourseDatabaseAdapter
func NewCourseDatabaseAdapter(db *sqlx.DB) domain.CourseRepository {
	return &CourseDatabaseAdapter{db: db}
}

// SaveCourse implements domain.CourseRepository
func (a *CourseDatabaseAdapter) SaveCourse(ctx context.Context, course *domain.Course) error {
	executor := GetExecutor(ctx, a.db)

	modelCourse := toModelCourse(course)

	query := `INSERT INTO courses (
		id, title, description, owner_id, is_public, tags,
		document_count, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9
	)`

	_, err := executor.ExecContext(ctx, query,
		modelCourse.ID,
		modelCourse.Title,
		modelCourse.Description,
		modelCourse.OwnerID,
		modelCourse.IsPublic,
		modelCourse.Tags,
		modelCourse.DocumentCount,
		modelCourse.CreatedAt,
		modelCourse.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert course %s: %w", course.ID, err)
	}
	return nil
}

// GetCourseByID implements domain.CourseRepository
func (a *CourseDatabaseAdapter) GetCourseByID(ctx context.Context, id string) (*domain.Course, error) {
	executor := GetExecutor(ctx, a.db)

	var modelCourse models.Course
	query := `SELECT
		id "id",
		title "title",
		description "description",
		owner_id "owner_id",
		is_public "is_public",
		tags "tags",
		document_count "document_count",
		last_update "last_update",
		created_at "created_at",
		updated_at "updated_at"
	FROM courses
	WHERE id = :1`

	err := executor.GetContext(ctx, &modelCourse, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get course %s: %w", id, err)
	}
	return toDomainCourse(&modelCourse), nil
}

// IncrementDocumentStats implements domain.CourseRepository. The numeric
// increment runs as an UPDATE against the existing row; inside a transaction
// it stages with the rest of the batch.
func (a *CourseDatabaseAdapter) IncrementDocumentStats(ctx context.Context, courseID string, at time.Time) error {
	executor := GetExecutor(ctx, a.db)

	query := `UPDATE courses SET
		document_count = document_count + 1,
		last_update = :1,
		updated_at = :2
	WHERE id = :3`

	result, err := executor.ExecContext(ctx, query, at, at, courseID)
	if err != nil {
		return fmt.Errorf("failed to increment document count for course %s: %w", courseID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("course not found: %s", courseID))
	}
	return nil
}

// Helper functions for model conversion

func toModelCourse(c *domain.Course) *models.Course {
	isPublic := 0
	if c.IsPublic {
		isPublic = 1
	}
	return &models.Course{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		OwnerID:       c.OwnerID,
		IsPublic:      isPublic,
		Tags:          models.StringSlice(c.Tags),
		DocumentCount: c.DocumentCount,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func toDomainCourse(m *models.Course) *domain.Course {
	course := &domain.Course{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		OwnerID:       m.OwnerID,
		IsPublic:      m.IsPublic == 1,
		Tags:          []string(m.Tags),
		DocumentCount: m.DocumentCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.LastUpdate.Valid {
		course.LastUpdate = m.LastUpdate.Time
	}
	return course
}
