// Package analyzer provides the linguistic-analysis capability consumed by
// the quiz generation engine. It wraps the prose NLP pipeline (tokenization,
// part-of-speech tagging, sentence segmentation, named-entity recognition)
// and the golem lemmatizer behind the domain.Analyzer port.
package analyzer

import (
	"context"
	"fmt"
	"strings"

	"quizforge/internal/domain"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/v2"
)

// ProseAnalyzer implements domain.Analyzer. It is constructed once at
// process start and is safe for concurrent use: prose documents are built
// per call and the lemmatizer is read-only after construction.
type ProseAnalyzer struct {
	lemmatizer *golem.Lemmatizer
}

// NewProseAnalyzer loads the English lemmatizer dictionary and returns a
// ready analyzer.
func NewProseAnalyzer() (*ProseAnalyzer, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("failed to load lemmatizer dictionary: %w", err)
	}
	return &ProseAnalyzer{lemmatizer: lemmatizer}, nil
}

// Analyze implements domain.Analyzer.
func (a *ProseAnalyzer) Analyze(ctx context.Context, text string) (*domain.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze text: %w", err)
	}

	proseTokens := doc.Tokens()
	tokens := make([]domain.Token, 0, len(proseTokens))
	for _, tok := range proseTokens {
		tokens = append(tokens, domain.Token{
			Text:  tok.Text,
			Lemma: a.lemma(tok.Text),
			Tag:   tok.Tag,
		})
	}

	sentences := make([]string, 0, len(doc.Sentences()))
	for _, sent := range doc.Sentences() {
		sentences = append(sentences, sent.Text)
	}

	entities := make([]domain.Entity, 0, len(doc.Entities()))
	for _, ent := range doc.Entities() {
		entities = append(entities, domain.Entity{
			Text:  ent.Text,
			Label: ent.Label,
		})
	}

	return &domain.Analysis{
		Sentences:   sentences,
		Tokens:      tokens,
		NounPhrases: nounPhrases(tokens),
		Entities:    entities,
	}, nil
}

func (a *ProseAnalyzer) lemma(word string) string {
	lower := strings.ToLower(word)
	if lemma := a.lemmatizer.Lemma(lower); lemma != "" {
		return lemma
	}
	return lower
}

// nounPhrases chunks the tagged token stream into noun-phrase spans. A span
// is an optional determiner followed by adjectives and nouns, and must
// contain at least one noun.
func nounPhrases(tokens []domain.Token) []string {
	var phrases []string
	var run []string
	hasNoun := false

	flush := func() {
		if hasNoun && len(run) > 0 {
			phrases = append(phrases, strings.Join(run, " "))
		}
		run = nil
		hasNoun = false
	}

	for _, tok := range tokens {
		switch {
		case strings.HasPrefix(tok.Tag, "NN"):
			run = append(run, tok.Text)
			hasNoun = true
		case tok.Tag == "DT" && len(run) == 0:
			run = append(run, tok.Text)
		case strings.HasPrefix(tok.Tag, "JJ"):
			run = append(run, tok.Text)
		default:
			flush()
			if tok.Tag == "DT" {
				run = append(run, tok.Text)
			}
		}
	}
	flush()

	return phrases
}
