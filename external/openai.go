package external

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/rxguard/rxguard-api/interfaces"
)

// Compile-time check
var _ interfaces.TextClient = (*OpenAIClient)(nil)

const systemInstruction = "You are a clinical drug-information assistant. " +
	"Answer concisely and factually. Never give dosing advice beyond what is asked."

// OpenAIClient is the production TextClient, backing the free-text safety
// analyzer and the analysis summaries.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient builds a text client. model defaults to gpt-4o-mini
// when empty.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemInstruction,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("text generation: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("text generation: no response choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
