package domain

import "time"

// Course owns uploaded documents and carries aggregate counters that are
// bumped once per successful generation run.
type Course struct {
	ID            string
	Title         string
	Description   string
	OwnerID       string
	IsPublic      bool
	Tags          []string
	DocumentCount int
	LastUpdate    time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewCourse creates a new Course instance
func NewCourse(title, description, ownerID string, isPublic bool, tags []string) *Course {
	now := time.Now()
	return &Course{
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
		IsPublic:    isPublic,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate validates the course
func (c *Course) Validate() error {
	if len(c.Title) < 3 || len(c.Title) > 100 {
		return ValidationError{Field: "title", Message: "must be between 3 and 100 characters"}
	}
	if len(c.Description) < 10 {
		return ValidationError{Field: "description", Message: "must be at least 10 characters"}
	}
	if c.OwnerID == "" {
		return ValidationError{Field: "owner_id", Message: "is required"}
	}
	return nil
}
