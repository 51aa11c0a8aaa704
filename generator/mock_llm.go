package generator

import (
	"context"
	"fmt"
	"strings"
)

// MockLLM answers locally without calling a model; used for offline runs and tests.
// The reply lists the section headers it received.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	lines := strings.Split(prompt.User, "\n")
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Received a prompt of %d lines.\n\n", len(lines)))
	for _, line := range lines {
		if strings.HasPrefix(line, "## ") {
			sb.WriteString("- ")
			sb.WriteString(strings.TrimPrefix(line, "## "))
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}
