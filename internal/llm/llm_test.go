package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"
)

type mockAPI struct {
	resp openai.ChatCompletionResponse
	err  error
	got  openai.ChatCompletionRequest
}

func (m *mockAPI) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.got = req
	return m.resp, m.err
}

func TestComplete(t *testing.T) {
	api := &mockAPI{resp: openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: "hi there"}}},
	}}
	c := &OpenAIClient{api: api, model: "gpt-4o-mini"}

	out, err := c.Complete(context.Background(), "hello")
	require.NoError(t, err)
	require.Equal(t, "hi there", out)
	require.Equal(t, "gpt-4o-mini", api.got.Model)
	require.Len(t, api.got.Messages, 1)
	require.Equal(t, openai.ChatMessageRoleUser, api.got.Messages[0].Role)
	require.Equal(t, "hello", api.got.Messages[0].Content)
}

func TestComplete_TransportError(t *testing.T) {
	api := &mockAPI{err: errors.New("connection refused")}
	c := &OpenAIClient{api: api, model: "gpt-4o-mini"}

	_, err := c.Complete(context.Background(), "hello")
	var ce *CompletionError
	require.ErrorAs(t, err, &ce)
	require.ErrorContains(t, err, "connection refused")
}

func TestComplete_NoChoices(t *testing.T) {
	api := &mockAPI{}
	c := &OpenAIClient{api: api, model: "gpt-4o-mini"}

	_, err := c.Complete(context.Background(), "hello")
	var ce *CompletionError
	require.ErrorAs(t, err, &ce)
}
