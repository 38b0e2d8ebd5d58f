// Package quizgen implements the quiz generation engine: key-phrase
// extraction from analyzer output, template-based question composition,
// answer and distractor generation, difficulty estimation and assembly into
// a bounded list of fully-formed quiz items.
package quizgen

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"quizforge/internal/domain"
)

// contextRadius is the number of characters kept around the phrase when
// extracting the source context snippet.
const contextRadius = 100

// Generator implements domain.QuizGenerator. The analyzer is an injected
// shared capability; the random source is injected so tests can supply a
// deterministic one. A mutex serializes access to the random source since
// concurrent generation calls share it.
type Generator struct {
	analyzer domain.Analyzer

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a Generator. A nil rng falls back to a time-seeded
// source, the production default.
func NewGenerator(analyzer domain.Analyzer, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{analyzer: analyzer, rng: rng}
}

// Generate implements domain.QuizGenerator. It returns between 1 and
// min(numQuestions, distinct key phrase count) items; a short key-phrase
// supply silently reduces the count. Zero extractable key phrases is an
// input-inadequacy error.
func (g *Generator) Generate(ctx context.Context, text string, numQuestions, numOptions int) ([]domain.GeneratedQuiz, error) {
	analysis, err := g.analyzer.Analyze(ctx, text)
	if err != nil {
		return nil, domain.NewInternalError("linguistic analysis failed", err)
	}

	phrases := dedupePhrases(extractKeyPhrases(analysis))
	if len(phrases) == 0 {
		return nil, domain.NewNoKeyPhrasesError()
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	selected := g.samplePhrases(phrases, numQuestions)

	quizzes := make([]domain.GeneratedQuiz, 0, len(selected))
	for _, phrase := range selected {
		quizzes = append(quizzes, domain.GeneratedQuiz{
			QuestionText: composeQuestion(phrase, g.rng),
			Context:      contextSnippet(phrase.Text, text),
			Difficulty:   EstimateDifficulty(phrase.Text),
			Options:      buildOptions(phrase.Text, analysis.Sentences, phrases, numOptions, g.rng),
		})
	}
	return quizzes, nil
}

// samplePhrases draws up to count phrases without replacement.
func (g *Generator) samplePhrases(phrases []domain.KeyPhrase, count int) []domain.KeyPhrase {
	if count > len(phrases) {
		count = len(phrases)
	}
	shuffled := make([]domain.KeyPhrase, len(phrases))
	copy(shuffled, phrases)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:count]
}

// contextSnippet extracts the phrase with its surrounding text, clipped to
// the document bounds.
func contextSnippet(phrase, text string) string {
	idx := strings.Index(text, phrase)
	if idx < 0 {
		idx = 0
	}
	start := idx - contextRadius
	if start < 0 {
		start = 0
	}
	end := idx + len(phrase) + contextRadius
	if end > len(text) {
		end = len(text)
	}
	return strings.TrimSpace(text[start:end])
}
