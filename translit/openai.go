package translit

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient translates with a chat completion model.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, baseURL string) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(config),
		model:  openai.GPT4oMini,
	}
}

func (c *OpenAIClient) Translate(ctx context.Context, text, source, target string) (string, error) {
	from := source + " "
	if source == "" || source == "auto" {
		from = ""
	}
	prompt := fmt.Sprintf("Translate the following %stext to %s. If it is a proper noun, give its usual %s spelling. Reply with the translation only.\n\n%s", from, target, target, text)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You translate short social media phrases and names into search-friendly English.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   60,
			N:           1,
			Temperature: 0,
		},
	)
	if err != nil {
		return "", fmt.Errorf("openai chat completion error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai returned empty response or choices")
	}

	return strings.Trim(strings.TrimSpace(resp.Choices[0].Message.Content), `"`), nil
}
