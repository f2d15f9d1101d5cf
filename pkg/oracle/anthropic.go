package oracle

import (
	"context"
	"fmt"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

// anthropicCompleter habla con la API de mensajes de Anthropic
type anthropicCompleter struct {
	client *anthropic.Client
	model  string
}

func newAnthropicCompleter(apiKey, model string) *anthropicCompleter {
	return &anthropicCompleter{
		client: anthropic.NewClient(apiKey),
		model:  model,
	}
}

func (c *anthropicCompleter) complete(ctx context.Context, prompt string, temperature float32, maxTokens int) (string, error) {
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(c.model),
		Messages: []anthropic.Message{
			{
				Role:    anthropic.RoleUser,
				Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(prompt)},
			},
		},
		MaxTokens:   maxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return "", fmt.Errorf("error llamando al oráculo: %w", err)
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == anthropic.MessagesContentTypeText && block.Text != nil {
			content += *block.Text
		}
	}
	if content == "" {
		return "", fmt.Errorf("el oráculo no devolvió contenido")
	}

	return content, nil
}
