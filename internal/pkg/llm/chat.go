package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
)

// Turn one exchange in a stored conversation
type Turn struct {
	Role    string
	Content string
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Chat answers question in the context of prior turns
func (c *Client) Chat(ctx context.Context, systemPrompt, displayName string, history []Turn, question string) (string, error) {
	messages := make([]llms.MessageContent, 0, len(history)+2)
	system := systemPrompt
	if displayName != "" {
		system = fmt.Sprintf("%s\nYou are talking to %s.", systemPrompt, displayName)
	}
	messages = append(messages, textMessage(llms.ChatMessageTypeSystem, system))
	for _, t := range history {
		role := llms.ChatMessageTypeHuman
		if t.Role == RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, textMessage(role, t.Content))
	}
	messages = append(messages, textMessage(llms.ChatMessageTypeHuman, question))
	return c.generate(ctx, messages, 0.7)
}
