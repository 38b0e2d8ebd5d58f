// Package explain enriches generated answer options with short explanations
// of why each one is correct or incorrect, using a local LLM. Enrichment is
// best-effort: callers treat failures as "no explanations".
package explain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// llmExplainer implements domain.OptionExplainer
type llmExplainer struct {
	llmClient *ollama.LLM
}

// NewLLMExplainer creates a new instance of llmExplainer
func NewLLMExplainer(llm *ollama.LLM) domain.OptionExplainer {
	return &llmExplainer{llmClient: llm}
}

// ExplainOptions implements domain.OptionExplainer. It returns one
// explanation per option, in option order.
func (e *llmExplainer) ExplainOptions(ctx context.Context, questionText string, options []domain.GeneratedOption) ([]string, error) {
	l := logger.Get()

	var sb strings.Builder
	for i, opt := range options {
		marker := "incorrect"
		if opt.IsCorrect {
			marker = "correct"
		}
		fmt.Fprintf(&sb, "%d. (%s) %s\n", i+1, marker, opt.Text)
	}

	prompt := fmt.Sprintf(`You are a quiz reviewer. For each answer option below, write one sentence explaining why it is correct or incorrect. Respond with ONLY a JSON array of strings, one per option, in order.

Question: %s
Options:
%s
Rules:
1. The array must have exactly %d entries.
2. Each explanation must be under 30 words.`, questionText, sb.String(), len(options))

	raw, err := llms.GenerateFromSinglePrompt(ctx, e.llmClient, prompt)
	if err != nil {
		return nil, fmt.Errorf("explanation call failed: %w", err)
	}

	explanations, err := parseExplanations(raw, len(options))
	if err != nil {
		l.Debug("Failed to parse explainer response", zap.Error(err), zap.String("raw", raw))
		return nil, err
	}
	return explanations, nil
}

// parseExplanations extracts the JSON array from a raw LLM response and
// checks it has the expected length.
func parseExplanations(raw string, want int) ([]string, error) {
	cleaned := strings.TrimSpace(raw)

	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd != -1 && thinkEnd > thinkStart {
			cleaned = strings.TrimSpace(cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):])
		}
	}

	jsonStart := strings.Index(cleaned, "[")
	jsonEnd := strings.LastIndex(cleaned, "]")
	if jsonStart == -1 || jsonEnd == -1 || jsonEnd < jsonStart {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	var explanations []string
	if err := json.Unmarshal([]byte(cleaned[jsonStart:jsonEnd+1]), &explanations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal explanations: %w", err)
	}
	if len(explanations) != want {
		return nil, fmt.Errorf("expected %d explanations, got %d", want, len(explanations))
	}
	return explanations, nil
}
