package validation

import (
	"regexp"
	"strings"

	"quizforge/internal/domain"
)

const (
	MinQuestions = 2
	MaxQuestions = 20
	MinOptions   = 2
	MaxOptions   = 5
)

var ulidPattern = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

var supportedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".pptx": true,
}

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateUploadRequest validates the document upload parameters.
func (v *Validator) ValidateUploadRequest(filename string, numQuestions, numOptions int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(filename) == "" {
		errors = append(errors, domain.NewMissingFieldError("file"))
	} else {
		dot := strings.LastIndex(filename, ".")
		if dot < 0 || !supportedExtensions[strings.ToLower(filename[dot:])] {
			errors = append(errors, domain.NewInvalidFormatError("file", filename))
		}
	}

	if numQuestions < MinQuestions || numQuestions > MaxQuestions {
		errors = append(errors, domain.NewOutOfRangeError("num_questions", numQuestions, MinQuestions, MaxQuestions))
	}
	if numOptions < MinOptions || numOptions > MaxOptions {
		errors = append(errors, domain.NewOutOfRangeError("num_options", numOptions, MinOptions, MaxOptions))
	}

	return errors
}

// ValidateID validates a ULID path parameter.
func (v *Validator) ValidateID(field, id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError(field))
		return errors
	}
	if !isValidULID(id) {
		errors = append(errors, domain.NewInvalidFormatError(field, id))
	}
	return errors
}

func isValidULID(id string) bool {
	return ulidPattern.MatchString(id)
}
