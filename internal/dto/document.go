package dto

import "time"

// CreateCourseRequest is the request body for creating a course
type CreateCourseRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	IsPublic    bool     `json:"isPublic"`
	Tags        []string `json:"tags"`
}

// CourseResponse represents a course in the API response
type CourseResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	OwnerID       string    `json:"ownerId"`
	IsPublic      bool      `json:"isPublic"`
	Tags          []string  `json:"tags"`
	DocumentCount int       `json:"documentCount"`
	LastUpdate    time.Time `json:"lastUpdate,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// OptionResponse represents an answer option in the API response
type OptionResponse struct {
	OptionID    string `json:"optionId"`
	Text        string `json:"text"`
	IsCorrect   bool   `json:"isCorrect"`
	Explanation string `json:"explanation,omitempty"`
	Order       int    `json:"order"`
}

// QuizResponse represents a generated quiz in the API response
type QuizResponse struct {
	QuizID       string           `json:"quizId"`
	QuestionText string           `json:"questionText"`
	Context      string           `json:"context"`
	Difficulty   float64          `json:"difficulty"`
	Order        int              `json:"order"`
	CreatedAt    time.Time        `json:"createdAt"`
	Options      []OptionResponse `json:"options"`
}

// QuizSummaryResponse is the denormalized quiz reference on a document
type QuizSummaryResponse struct {
	QuizID       string `json:"quizId"`
	QuestionText string `json:"questionText"`
	Order        int    `json:"order"`
}

// DocumentResponse is the upload endpoint's response body: the persisted
// document with its full quiz tree, mirroring exactly what was written.
type DocumentResponse struct {
	DocumentID   string                `json:"documentId"`
	Title        string                `json:"title"`
	OriginalName string                `json:"originalName"`
	StoragePath  string                `json:"storagePath"`
	FileType     string                `json:"fileType"`
	NumQuestions int                   `json:"numQuestions"`
	Summaries    []QuizSummaryResponse `json:"summaries,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	ProcessedAt  time.Time             `json:"processedAt"`
	Quizzes      []QuizResponse        `json:"quizzes"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
