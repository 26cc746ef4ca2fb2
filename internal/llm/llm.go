package llm

import (
	"context"

	"github.com/sashabaranov/go-openai"

	"github.com/aimentor/mentor-go/internal/config"
)

// OpenAIClient talks to any OpenAI-compatible completion endpoint.
type OpenAIClient struct {
	api   chatCompleter
	model string
}

// NewClient creates a completion client from configuration.
func NewClient(cfg config.LLMConfig) *OpenAIClient {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAIClient{
		api:   openai.NewClientWithConfig(apiCfg),
		model: cfg.Model,
	}
}

// Complete sends the prompt as a single user turn and returns the assistant
// text of the first choice.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", &CompletionError{Message: "completion request failed", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &CompletionError{Message: "completion service returned no choices"}
	}
	return resp.Choices[0].Message.Content, nil
}
