package handler

import (
	"io"
	"strconv"

	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/logger"
	"quizforge/internal/service"
	"quizforge/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DocumentHandler handles document upload and quiz listing requests
type DocumentHandler struct {
	service   service.DocumentService
	validator *validation.Validator
	cfg       *config.Config
}

// NewDocumentHandler creates a new DocumentHandler instance
func NewDocumentHandler(service service.DocumentService, cfg *config.Config) *DocumentHandler {
	return &DocumentHandler{
		service:   service,
		validator: validation.NewValidator(),
		cfg:       cfg,
	}
}

// UploadDocument godoc
// @Summary Upload a document and generate quizzes
// @Description Extracts text from the uploaded file, generates multiple-choice quizzes and persists them atomically
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param courseId path string true "Course ID"
// @Param file formData file true "Document in PDF, DOCX or PPTX format"
// @Param num_questions formData int false "Number of questions to generate (2-20)"
// @Param num_options formData int false "Options per question (2-5)"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /courses/{courseId}/documents [post]
func (h *DocumentHandler) UploadDocument(c *fiber.Ctx) error {
	courseID := c.Params("courseId")
	if errs := h.validator.ValidateID("courseId", courseID); len(errs) > 0 {
		return errs
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("file")}
	}

	numQuestions := h.cfg.Generation.DefaultNumQuestions
	if v := c.FormValue("num_questions"); v != "" {
		if numQuestions, err = strconv.Atoi(v); err != nil {
			return domain.ValidationErrors{domain.NewInvalidFormatError("num_questions", v)}
		}
	}
	numOptions := h.cfg.Generation.DefaultNumOptions
	if v := c.FormValue("num_options"); v != "" {
		if numOptions, err = strconv.Atoi(v); err != nil {
			return domain.ValidationErrors{domain.NewInvalidFormatError("num_options", v)}
		}
	}

	if errs := h.validator.ValidateUploadRequest(fileHeader.Filename, numQuestions, numOptions); len(errs) > 0 {
		return errs
	}

	file, err := fileHeader.Open()
	if err != nil {
		return domain.NewInternalError("failed to open uploaded file", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return domain.NewInternalError("failed to read uploaded file", err)
	}

	logger.Get().Info("Processing uploaded document",
		zap.String("filename", fileHeader.Filename),
		zap.Int64("size", fileHeader.Size),
		zap.Int("num_questions", numQuestions),
		zap.Int("num_options", numOptions),
	)

	response, err := h.service.GenerateFromUpload(c.Context(), courseID, service.UploadInput{
		Filename:     fileHeader.Filename,
		Content:      content,
		NumQuestions: numQuestions,
		NumOptions:   numOptions,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// GetDocumentQuizzes godoc
// @Summary List the quizzes of a document
// @Description Returns the persisted quiz tree of a document, options included
// @Tags documents
// @Produce json
// @Param courseId path string true "Course ID"
// @Param documentId path string true "Document ID"
// @Success 200 {array} dto.QuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /courses/{courseId}/documents/{documentId}/quizzes [get]
func (h *DocumentHandler) GetDocumentQuizzes(c *fiber.Ctx) error {
	courseID := c.Params("courseId")
	documentID := c.Params("documentId")

	if errs := h.validator.ValidateID("courseId", courseID); len(errs) > 0 {
		return errs
	}
	if errs := h.validator.ValidateID("documentId", documentID); len(errs) > 0 {
		return errs
	}

	quizzes, err := h.service.GetDocumentQuizzes(c.Context(), courseID, documentID)
	if err != nil {
		return err
	}
	return c.JSON(quizzes)
}
