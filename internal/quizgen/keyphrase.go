package quizgen

import (
	"strings"

	"quizforge/internal/domain"
)

// entityAllowList holds the named-entity types eligible to become question
// subjects: persons, organizations, locations and miscellaneous entities.
var entityAllowList = map[string]bool{
	"PERSON": true,
	"PER":    true,
	"ORG":    true,
	"GPE":    true,
	"LOC":    true,
	"MISC":   true,
}

// verbStopSet holds copula/auxiliary lemmas that never make useful
// question subjects.
var verbStopSet = map[string]bool{
	"be":     true,
	"have":   true,
	"do":     true,
	"will":   true,
	"shall":  true,
	"would":  true,
	"should": true,
	"can":    true,
	"could":  true,
	"may":    true,
	"might":  true,
	"must":   true,
}

// minNounPhraseLen filters out very short noun-phrase spans.
const minNounPhraseLen = 4

// extractKeyPhrases scans analyzer output and produces candidate phrases
// tagged by grammatical category. Duplicates across the three passes are
// possible; callers deduplicate by exact phrase text before sampling.
func extractKeyPhrases(analysis *domain.Analysis) []domain.KeyPhrase {
	var phrases []domain.KeyPhrase

	for _, ent := range analysis.Entities {
		if entityAllowList[ent.Label] {
			phrases = append(phrases, domain.KeyPhrase{Text: ent.Text, Category: domain.CategoryNoun})
		}
	}

	for _, np := range analysis.NounPhrases {
		if len(np) > minNounPhraseLen {
			phrases = append(phrases, domain.KeyPhrase{Text: np, Category: domain.CategoryNoun})
		}
	}

	for _, tok := range analysis.Tokens {
		if strings.HasPrefix(tok.Tag, "VB") && !verbStopSet[tok.Lemma] {
			phrases = append(phrases, domain.KeyPhrase{Text: tok.Text, Category: domain.CategoryVerb})
		}
	}

	return phrases
}

// dedupePhrases keeps the first occurrence of each exact phrase text,
// preserving encounter order. Dedup is scoped to a single generation call.
func dedupePhrases(phrases []domain.KeyPhrase) []domain.KeyPhrase {
	seen := make(map[string]bool, len(phrases))
	deduped := make([]domain.KeyPhrase, 0, len(phrases))
	for _, p := range phrases {
		if seen[p.Text] {
			continue
		}
		seen[p.Text] = true
		deduped = append(deduped, p)
	}
	return deduped
}
