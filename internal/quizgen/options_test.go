package quizgen

import (
	"math/rand"
	"strings"
	"testing"

	"quizforge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAnswer(t *testing.T) {
	sentences := []string{
		"The first sentence is about nothing in particular.",
		"Marie Curie discovered radium in 1898.",
		"Radium was later used in medicine.",
	}

	answer := extractAnswer("radium", sentences)
	assert.Equal(t, "Marie Curie discovered radium in 1898....", answer)

	long := strings.Repeat("x", 140) + " radium " + strings.Repeat("y", 140)
	answer = extractAnswer("radium", []string{long})
	assert.Equal(t, maxAnswerLen+len("..."), len(answer))
	assert.True(t, strings.HasSuffix(answer, "..."))
}

func TestExtractAnswer_Fallback(t *testing.T) {
	answer := extractAnswer("polonium", []string{"Nothing relevant here."})
	assert.Equal(t, "The text mentions: polonium", answer)
}

func TestBuildOptions_ExactCountOneCorrect(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	others := []domain.KeyPhrase{
		{Text: "radium", Category: domain.CategoryNoun},
		{Text: "polonium", Category: domain.CategoryNoun},
		{Text: "uranium", Category: domain.CategoryNoun},
		{Text: "thorium", Category: domain.CategoryNoun},
	}
	sentences := []string{"The element radium glows faintly in the dark."}

	options := buildOptions("radium", sentences, others, 4, rng)
	require.Len(t, options, 4)

	correct := 0
	for _, opt := range options {
		if opt.IsCorrect {
			correct++
			assert.Contains(t, opt.Text, "radium")
		} else {
			assert.NotEqual(t, "radium", opt.Text, "the subject never distracts itself")
		}
	}
	assert.Equal(t, 1, correct)
}

func TestBuildOptions_PadsWithGenericDistractors(t *testing.T) {
	rng := rand.New(rand.NewSource(13))

	// A single key phrase leaves no real distractor candidates.
	options := buildOptions("entropy", nil, []domain.KeyPhrase{{Text: "entropy"}}, 4, rng)
	require.Len(t, options, 4)

	generic := 0
	for _, opt := range options {
		if opt.IsCorrect {
			continue
		}
		found := false
		for _, g := range genericDistractors {
			if opt.Text == g {
				found = true
				break
			}
		}
		if found {
			generic++
		}
	}
	assert.Equal(t, 3, generic, "all distractor slots padded from the generic pool")
}

func TestDrawDistractors_WithoutReplacement(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	phrases := []domain.KeyPhrase{
		{Text: "alpha"}, {Text: "beta"}, {Text: "gamma"}, {Text: "delta"}, {Text: "epsilon"},
	}

	distractors := drawDistractors("alpha", phrases, 3, rng)
	require.Len(t, distractors, 3)

	seen := make(map[string]bool)
	for _, d := range distractors {
		assert.NotEqual(t, "alpha", d)
		assert.False(t, seen[d], "real distractors are drawn without replacement")
		seen[d] = true
	}
}
