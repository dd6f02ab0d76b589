package llm

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

const toxicityPrompt = `You are a content moderation classifier.
Rate how toxic the user's text is (insults, threats, harassment, hate) on a scale from 0 to 1.
Reply with the number only, for example 0.12.`

// ToxicityScore asks the model for a toxicity probability in [0,1]
func (c *Client) ToxicityScore(ctx context.Context, text string) (float64, error) {
	out, err := c.generate(ctx, []llms.MessageContent{
		textMessage(llms.ChatMessageTypeSystem, toxicityPrompt),
		textMessage(llms.ChatMessageTypeHuman, text),
	}, 0)
	if err != nil {
		return 0, err
	}
	return parseScore(out)
}

func parseScore(out string) (float64, error) {
	s := strings.TrimSpace(out)
	if i := strings.IndexFunc(s, func(r rune) bool { return r == '\n' || r == ' ' }); i >= 0 {
		s = s[:i]
	}
	score, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable toxicity score %q: %w", out, err)
	}
	if score < 0 || score > 1 {
		return 0, fmt.Errorf("toxicity score out of range: %v", score)
	}
	return score, nil
}
