package domain

import (
	"fmt"
	"time"
)

const (
	MinDifficulty = 1.0
	MaxDifficulty = 5.0

	MinOptionsPerQuiz = 2
	MaxOptionsPerQuiz = 5
)

// Document represents one uploaded source file and its generated quiz tree.
// It is immutable after creation; only the owning course's counters change.
type Document struct {
	ID           string
	CourseID     string
	Title        string
	OriginalName string
	StoragePath  string
	FileType     string
	NumQuestions int
	Summaries    []QuizSummary
	Quizzes      []*Quiz
	CreatedAt    time.Time
	ProcessedAt  time.Time
}

// QuizSummary is the denormalized quiz reference stored on the Document so
// listings do not need to fetch the full tree.
type QuizSummary struct {
	QuizID       string `json:"quizId"`
	QuestionText string `json:"questionText"`
	Order        int    `json:"order"`
}

// Quiz is one generated question, child of exactly one Document.
type Quiz struct {
	ID           string
	DocumentID   string
	QuestionText string
	Context      string
	Difficulty   float64
	Order        int
	Options      []*Option
	CreatedAt    time.Time
}

// Option is one answer choice, child of exactly one Quiz.
type Option struct {
	ID          string
	QuizID      string
	Text        string
	IsCorrect   bool
	Explanation string
	Order       int
	CreatedAt   time.Time
}

// Validate checks the document and its whole tree against the structural
// invariants: dense 1..N orders, option counts, one correct option per quiz,
// difficulty bounds.
func (d *Document) Validate() error {
	if d.CourseID == "" {
		return ValidationError{Field: "course_id", Message: "is required"}
	}
	if d.Title == "" {
		return ValidationError{Field: "title", Message: "is required"}
	}
	if d.OriginalName == "" {
		return ValidationError{Field: "original_name", Message: "is required"}
	}
	if len(d.Quizzes) == 0 {
		return ValidationError{Field: "quizzes", Message: "at least one quiz is required"}
	}
	for i, quiz := range d.Quizzes {
		if quiz.Order != i+1 {
			return ValidationError{
				Field:   "quizzes",
				Message: fmt.Sprintf("quiz order must be dense, got %d at position %d", quiz.Order, i+1),
			}
		}
		if err := quiz.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate validates a quiz and its options
func (q *Quiz) Validate() error {
	if q.QuestionText == "" {
		return ValidationError{Field: "question_text", Message: "is required"}
	}
	if q.Difficulty < MinDifficulty || q.Difficulty > MaxDifficulty {
		return ValidationError{
			Field:   "difficulty",
			Message: fmt.Sprintf("must be within [%.1f, %.1f], got %.1f", MinDifficulty, MaxDifficulty, q.Difficulty),
		}
	}
	if len(q.Options) < MinOptionsPerQuiz || len(q.Options) > MaxOptionsPerQuiz {
		return ValidationError{
			Field:   "options",
			Message: fmt.Sprintf("count must be within [%d, %d], got %d", MinOptionsPerQuiz, MaxOptionsPerQuiz, len(q.Options)),
		}
	}
	correct := 0
	for i, opt := range q.Options {
		if opt.Order != i+1 {
			return ValidationError{
				Field:   "options",
				Message: fmt.Sprintf("option order must be dense, got %d at position %d", opt.Order, i+1),
			}
		}
		if opt.Text == "" {
			return ValidationError{Field: "options", Message: "option text is required"}
		}
		if opt.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return ValidationError{
			Field:   "options",
			Message: fmt.Sprintf("exactly one option must be correct, got %d", correct),
		}
	}
	return nil
}
