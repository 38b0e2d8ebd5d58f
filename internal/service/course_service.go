package service

import (
	"context"

	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/util"
)

// CourseService exposes course creation and lookup.
type CourseService interface {
	CreateCourse(ctx context.Context, ownerID string, req dto.CreateCourseRequest) (*dto.CourseResponse, error)
	GetCourse(ctx context.Context, courseID string) (*dto.CourseResponse, error)
}

type courseService struct {
	courseRepo domain.CourseRepository
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo domain.CourseRepository) CourseService {
	return &courseService{courseRepo: courseRepo}
}

func (s *courseService) CreateCourse(ctx context.Context, ownerID string, req dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	course := domain.NewCourse(req.Title, req.Description, ownerID, req.IsPublic, req.Tags)
	if err := course.Validate(); err != nil {
		return nil, err
	}
	course.ID = util.NewULID()

	if err := s.courseRepo.SaveCourse(ctx, course); err != nil {
		return nil, domain.NewInternalError("failed to save course", err)
	}
	return toCourseResponse(course), nil
}

func (s *courseService) GetCourse(ctx context.Context, courseID string) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load course", err)
	}
	if course == nil {
		return nil, domain.NewNotFoundError("course not found: " + courseID)
	}
	return toCourseResponse(course), nil
}

func toCourseResponse(course *domain.Course) *dto.CourseResponse {
	return &dto.CourseResponse{
		ID:            course.ID,
		Title:         course.Title,
		Description:   course.Description,
		OwnerID:       course.OwnerID,
		IsPublic:      course.IsPublic,
		Tags:          course.Tags,
		DocumentCount: course.DocumentCount,
		LastUpdate:    course.LastUpdate,
		CreatedAt:     course.CreatedAt,
		UpdatedAt:     course.UpdatedAt,
	}
}
