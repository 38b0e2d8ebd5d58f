package quizgen

import (
	"fmt"
	"math/rand"
	"strings"

	"quizforge/internal/domain"
)

// questionTemplates maps phrase categories to their question templates. The
// fallback set is used for unrecognized categories.
var questionTemplates = map[string][]string{
	domain.CategoryNoun: {
		"What does the text mention about %s?",
		"According to the document, how is %s defined?",
		"What is the main function of %s?",
		"Which characteristic of %s stands out?",
	},
	domain.CategoryVerb: {
		"How is %s carried out according to the text?",
		"What does %s involve in this context?",
		"Describe the process of %s.",
	},
}

var fallbackTemplates = []string{
	"What relevant information is provided about %s?",
	"Explain the importance of %s in the document.",
}

// composeQuestion maps one (phrase, category) pair to a question string. A
// template is chosen uniformly at random from the category's set; the phrase
// is rewritten before substitution (nominalized for verbs, article-prefixed
// for nouns). It always succeeds given non-empty input.
func composeQuestion(phrase domain.KeyPhrase, rng *rand.Rand) string {
	templates, ok := questionTemplates[phrase.Category]
	if !ok {
		templates = fallbackTemplates
	}
	template := templates[rng.Intn(len(templates))]

	text := phrase.Text
	switch phrase.Category {
	case domain.CategoryVerb:
		text = nominalize(text)
	case domain.CategoryNoun:
		text = withArticle(text)
	}

	return fmt.Sprintf(template, text)
}

// nominalize rewrites a verb into its gerund form: the verbal ending is
// stripped and the -ing suffix appended.
func nominalize(verb string) string {
	stem := strings.ToLower(verb)
	switch {
	case strings.HasSuffix(stem, "ing"):
		// already a gerund
	case strings.HasSuffix(stem, "ied"):
		stem = strings.TrimSuffix(stem, "ied") + "ying"
	case strings.HasSuffix(stem, "ed"):
		stem = strings.TrimSuffix(stem, "ed") + "ing"
	case strings.HasSuffix(stem, "es"):
		stem = strings.TrimSuffix(stem, "s") + "ing"
	case strings.HasSuffix(stem, "e") && len(stem) > 2:
		stem = strings.TrimSuffix(stem, "e") + "ing"
	case strings.HasSuffix(stem, "s"):
		stem = strings.TrimSuffix(stem, "s") + "ing"
	default:
		stem += "ing"
	}
	return stem
}

// withArticle prepends the definite article unless the phrase already starts
// with one. The plural check is kept from the source heuristic even though
// the English definite article does not inflect for number.
func withArticle(phrase string) string {
	lower := strings.ToLower(phrase)
	for _, article := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(lower, article) {
			return phrase
		}
	}
	if strings.HasSuffix(lower, "s") {
		return "the " + phrase
	}
	return "the " + phrase
}
