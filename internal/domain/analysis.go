package domain

import "context"

// Token is one analyzed token with its part-of-speech tag and lemma.
type Token struct {
	Text  string
	Lemma string
	Tag   string
}

// Entity is a named-entity span with its type label.
type Entity struct {
	Text  string
	Label string
}

// Analysis is the linguistic analyzer's output contract: sentence
// boundaries, tagged tokens, noun-phrase spans and named entities.
type Analysis struct {
	Sentences   []string
	Tokens      []Token
	NounPhrases []string
	Entities    []Entity
}

// Analyzer is the consumed linguistic-analysis capability. One instance is
// constructed at process start and shared read-only; implementations must be
// safe for concurrent Analyze calls. The output is deterministic for a fixed
// input and model version, so callers do not retry.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*Analysis, error)
}
