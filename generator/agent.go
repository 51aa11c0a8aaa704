package generator

import (
	"context"
	"errors"
	"strings"

	"prompt_generator/apperr"
)

const trySystemPrompt = "Follow the user's prompt exactly as written. Answer in Markdown."

// Agent tries assembled prompts against a chat model.
type Agent struct {
	llm   LLMClient
	model string
}

func NewAgent(llm LLMClient, model string) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Agent{llm: llm, model: model}, nil
}

// Try sends doc to the model and returns its cleaned-up answer.
func (a *Agent) Try(ctx context.Context, doc string) (Answer, error) {
	if strings.TrimSpace(doc) == "" {
		return Answer{}, apperr.Validation("no prompt to try")
	}
	raw, err := a.llm.Complete(ctx, Prompt{System: trySystemPrompt, User: doc})
	if err != nil {
		return Answer{}, err
	}
	return PostProcess(raw, a.model)
}
