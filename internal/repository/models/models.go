// Package models holds the database row representations. Domain entities
// are mapped to these at the persistence boundary only.
package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a string list as a JSON column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// Course is the courses table row.
type Course struct {
	ID            string      `db:"id"`
	Title         string      `db:"title"`
	Description   string      `db:"description"`
	OwnerID       string      `db:"owner_id"`
	IsPublic      int         `db:"is_public"`
	Tags          StringSlice `db:"tags"`
	DocumentCount int         `db:"document_count"`
	LastUpdate    sql.NullTime `db:"last_update"`
	CreatedAt     time.Time   `db:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at"`
}

// Document is the documents table row. QuizSummaries is the denormalized
// (quizId, questionText, order) list stored as JSON.
type Document struct {
	ID            string    `db:"id"`
	CourseID      string    `db:"course_id"`
	Title         string    `db:"title"`
	OriginalName  string    `db:"original_name"`
	StoragePath   string    `db:"storage_path"`
	FileType      string    `db:"file_type"`
	NumQuestions  int       `db:"num_questions"`
	QuizSummaries string    `db:"quiz_summaries"`
	CreatedAt     time.Time `db:"created_at"`
	ProcessedAt   time.Time `db:"processed_at"`
}

// Quiz is the quizzes table row.
type Quiz struct {
	ID           string    `db:"id"`
	DocumentID   string    `db:"document_id"`
	QuestionText string    `db:"question_text"`
	Context      string    `db:"context"`
	Difficulty   float64   `db:"difficulty"`
	DisplayOrder int       `db:"display_order"`
	CreatedAt    time.Time `db:"created_at"`
}

// Option is the options table row.
type Option struct {
	ID           string         `db:"id"`
	QuizID       string         `db:"quiz_id"`
	OptionText   string         `db:"option_text"`
	IsCorrect    int            `db:"is_correct"`
	Explanation  sql.NullString `db:"explanation"`
	DisplayOrder int            `db:"display_order"`
	CreatedAt    time.Time      `db:"created_at"`
}
