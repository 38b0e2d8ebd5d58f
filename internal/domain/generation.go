package domain

import "context"

// Phrase categories produced by the key-phrase extractor.
const (
	CategoryNoun = "NOUN"
	CategoryVerb = "VERB"
)

// KeyPhrase is a candidate phrase eligible to become a question subject.
type KeyPhrase struct {
	Text     string
	Category string
}

// GeneratedOption is one answer choice produced by the engine before
// persistence assigns identifiers and display order.
type GeneratedOption struct {
	Text        string
	IsCorrect   bool
	Explanation string
}

// GeneratedQuiz is one fully-formed quiz item: question, source context,
// difficulty and its complete option set.
type GeneratedQuiz struct {
	QuestionText string
	Context      string
	Difficulty   float64
	Options      []GeneratedOption
}

// QuizGenerator turns raw text into a bounded list of quiz items. The result
// may contain fewer items than requested when the key-phrase supply is
// short; that is a degradation, not an error.
type QuizGenerator interface {
	Generate(ctx context.Context, text string, numQuestions, numOptions int) ([]GeneratedQuiz, error)
}

// OptionExplainer optionally enriches generated options with explanations of
// why each one is correct or incorrect. Enrichment is best-effort; failures
// leave the options untouched.
type OptionExplainer interface {
	ExplainOptions(ctx context.Context, questionText string, options []GeneratedOption) ([]string, error)
}
