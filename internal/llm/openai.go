package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type implOpenAI struct {
	client *openai.Client
	model  string
}

func newOpenAI(apiKey, model string) Provider {
	return &implOpenAI{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Complete runs one chat completion. Temperature stays at zero: both role
// labels and clinical summaries need deterministic, grounded output.
func (p *implOpenAI) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
