package llm

import (
	"context"
	"errors"

	"github.com/tmc/langchaingo/llms"
)

func (c *Client) generate(ctx context.Context, messages []llms.MessageContent, temp float64) (string, error) {
	if err := TextSem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer TextSem.Release(1)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	opts := []llms.CallOption{llms.WithTemperature(temp)}
	if c.modelName != "" {
		opts = append(opts, llms.WithModel(c.modelName))
	}
	resp, err := c.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("llm returned no choices")
	}
	return resp.Choices[0].Content, nil
}

func textMessage(role llms.ChatMessageType, text string) llms.MessageContent {
	return llms.MessageContent{
		Role:  role,
		Parts: []llms.ContentPart{llms.TextPart(text)},
	}
}
