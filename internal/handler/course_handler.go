package handler

import (
	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/middleware"
	"quizforge/internal/service"
	"quizforge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CourseHandler handles course-related HTTP requests
type CourseHandler struct {
	service   service.CourseService
	validator *validation.Validator
}

// NewCourseHandler creates a new CourseHandler instance
func NewCourseHandler(service service.CourseService) *CourseHandler {
	return &CourseHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateCourse godoc
// @Summary Create a course
// @Description Creates a course owned by the authenticated user
// @Tags courses
// @Accept json
// @Produce json
// @Param course body dto.CreateCourseRequest true "Course details"
// @Success 201 {object} dto.CourseResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "invalid JSON")}
	}

	ownerID, _ := c.Locals(middleware.UserIDKey).(string)
	if ownerID == "" {
		return domain.NewUnauthorizedError("missing authenticated user")
	}

	response, err := h.service.CreateCourse(c.Context(), ownerID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(response)
}

// GetCourse godoc
// @Summary Get a course
// @Description Returns a course with its aggregate document counters
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.CourseResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /courses/{courseId} [get]
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")
	if errs := h.validator.ValidateID("courseId", courseID); len(errs) > 0 {
		return errs
	}

	response, err := h.service.GetCourse(c.Context(), courseID)
	if err != nil {
		return err
	}
	return c.JSON(response)
}
