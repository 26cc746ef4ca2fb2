package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// Client is the completion service as the rest of the application sees it:
// one prompt in, one response text out.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// chatCompleter is the minimal subset of openai.Client used by this package;
// it is easy to mock in tests.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// CompletionError wraps any transport or upstream failure from the completion
// service with a human-readable message. No retry happens at this layer.
type CompletionError struct {
	Message string
	Err     error
}

func (e *CompletionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("completion error: %s: %v", e.Message, e.Err)
	}
	return "completion error: " + e.Message
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}
