package oracle

import (
	"context"
	"fmt"

	openai "github.com/meguminnnnnnnnn/go-openai"
)

// openaiCompleter habla con cualquier API compatible con OpenAI
// (OpenAI, Gemini vía su endpoint compatible, etc.)
type openaiCompleter struct {
	client *openai.Client
	model  string
}

func newOpenAICompleter(apiKey, model, baseURL string) *openaiCompleter {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &openaiCompleter{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (c *openaiCompleter) complete(ctx context.Context, prompt string, temperature float32, maxTokens int) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: &temperature,
		MaxTokens:   maxTokens,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("error llamando al oráculo: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("el oráculo no devolvió contenido")
	}

	return resp.Choices[0].Message.Content, nil
}
