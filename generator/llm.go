package generator

import "context"

// LLMClient abstracts the chat model used to try a prompt, so it can be mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings is the provider configuration handed to a concrete client.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}
