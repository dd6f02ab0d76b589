package screening

import (
	"context"
	"time"
)

// Scorer returns a toxicity probability in [0,1]
type Scorer interface {
	Score(ctx context.Context, text string) (float64, error)
	Enabled() bool
}

// NoopScorer stands in when no external scorer is configured
type NoopScorer struct{}

func (NoopScorer) Score(context.Context, string) (float64, error) { return 0, nil }

func (NoopScorer) Enabled() bool { return false }

// Rater is satisfied by the LLM client
type Rater interface {
	ToxicityScore(ctx context.Context, text string) (float64, error)
}

// LLMScorer delegates scoring to a language model under its own deadline
type LLMScorer struct {
	rater   Rater
	timeout time.Duration
}

func NewLLMScorer(r Rater, timeout time.Duration) *LLMScorer {
	return &LLMScorer{rater: r, timeout: timeout}
}

func (s *LLMScorer) Score(ctx context.Context, text string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.rater.ToxicityScore(ctx, text)
}

func (s *LLMScorer) Enabled() bool { return s.rater != nil }
