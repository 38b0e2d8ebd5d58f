package quizgen

import (
	"math/rand"
	"strings"

	"quizforge/internal/domain"
)

// maxAnswerLen bounds the correct answer drawn from the source sentence.
const maxAnswerLen = 150

// genericDistractors pads the option set when too few real key phrases
// exist. Padding with these is a deliberate degradation policy: the count
// invariant holds even when the fillers carry no topical content.
var genericDistractors = []string{
	"It is not explicitly mentioned in the text",
	"It is a secondary concept in the document",
	"The information provided is insufficient",
	"The text does not cover this topic in depth",
}

// buildOptions produces exactly numOptions answer options for a phrase, with
// exactly one marked correct. Distractors are drawn without replacement from
// the other key phrases; remaining slots are filled from the generic pool.
// The final set is shuffled so the correct position is unpredictable.
func buildOptions(phrase string, sentences []string, others []domain.KeyPhrase, numOptions int, rng *rand.Rand) []domain.GeneratedOption {
	options := make([]domain.GeneratedOption, 0, numOptions)
	options = append(options, domain.GeneratedOption{
		Text:      extractAnswer(phrase, sentences),
		IsCorrect: true,
	})

	for _, d := range drawDistractors(phrase, others, numOptions-1, rng) {
		options = append(options, domain.GeneratedOption{Text: d})
	}

	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// extractAnswer finds the first sentence containing the phrase and truncates
// it. The templated fallback is a designed degradation, not an error.
func extractAnswer(phrase string, sentences []string) string {
	for _, sent := range sentences {
		if strings.Contains(sent, phrase) {
			if len(sent) > maxAnswerLen {
				sent = sent[:maxAnswerLen]
			}
			return strings.TrimSpace(sent) + "..."
		}
	}
	return "The text mentions: " + phrase
}

// drawDistractors samples up to count other key phrases without replacement,
// then pads from the generic pool (with replacement) until count is met.
func drawDistractors(correctPhrase string, phrases []domain.KeyPhrase, count int, rng *rand.Rand) []string {
	candidates := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if p.Text != correctPhrase {
			candidates = append(candidates, p.Text)
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	distractors := make([]string, 0, count)
	for _, c := range candidates {
		if len(distractors) == count {
			break
		}
		distractors = append(distractors, c)
	}
	for len(distractors) < count {
		distractors = append(distractors, genericDistractors[rng.Intn(len(genericDistractors))])
	}
	return distractors
}
