package generator

import (
	"context"
	"strings"
)

// MockLLM is a placeholder implementation for local runs and tests; it never
// calls an external model.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	var sb strings.Builder
	sb.WriteString("# Draft note\n\n")
	sb.WriteString("A short summary paragraph for the drafted note.\n\n")
	sb.WriteString("## Body\n\n")
	sb.WriteString("Content generated from the request:\n\n")
	sb.WriteString("```\n")
	sb.WriteString(prompt.User)
	sb.WriteString("\n```\n")
	return sb.String(), nil
}
