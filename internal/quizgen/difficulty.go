package quizgen

import (
	"math"
	"strings"

	"quizforge/internal/domain"
)

// technicalTerms bumps the difficulty of phrases touching technical
// vocabulary.
var technicalTerms = []string{"algorithm", "model", "paradigm", "heuristic"}

// EstimateDifficulty assigns a difficulty score in [1.0, 5.0] to a phrase.
// The base score grows with word count; technical vocabulary adds a fixed
// bump. Deterministic given the phrase text.
func EstimateDifficulty(phrase string) float64 {
	words := len(strings.Fields(phrase))
	difficulty := math.Min(domain.MaxDifficulty, float64(words)*0.5)

	lower := strings.ToLower(phrase)
	for _, term := range technicalTerms {
		if strings.Contains(lower, term) {
			difficulty = math.Min(domain.MaxDifficulty, difficulty+1.5)
			break
		}
	}

	difficulty = math.Round(difficulty*10) / 10
	return math.Max(domain.MinDifficulty, difficulty)
}
