// Package screening classifies free text as allowed or blocked before it is persisted.
//
// Checks run in order and stop at the first failure: empty text, the denylist,
// then the optional toxicity scorer. A scorer failure blocks the text.
package screening

import (
	"context"
	"regexp"
	"strings"
)

// Reasons reported in Result.Reason
const (
	ReasonEmpty      = "Empty text."
	ReasonHateSpeech = "hate-speech"
	ReasonToxic      = "toxic"
)

// DefaultThreshold toxicity score at or above which text is blocked
const DefaultThreshold = 0.85

var denylist = regexp.MustCompile(`(?i)\b(killall|die\s+(you|all)|nigger|fag|retard|fuck|ass)\b`)

// Result outcome of one screening call
type Result struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// Screener is what callers depend on
type Screener interface {
	Screen(ctx context.Context, text string) (Result, error)
	Check(ctx context.Context, texts ...string) error
}

type Gate struct {
	scorer    Scorer
	threshold float64
}

// NewGate builds a gate; a nil scorer disables the toxicity step
func NewGate(scorer Scorer, threshold float64) *Gate {
	if scorer == nil {
		scorer = NoopScorer{}
	}
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Gate{scorer: scorer, threshold: threshold}
}

// Screen classifies text. A non-nil error wraps ErrUnavailable and the text must be treated as blocked.
func (g *Gate) Screen(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{Reason: ReasonEmpty}, nil
	}
	if denylist.MatchString(text) {
		return Result{Reason: ReasonHateSpeech}, nil
	}
	if !g.scorer.Enabled() {
		return Result{Allowed: true}, nil
	}

	score, err := g.scorer.Score(ctx, text)
	if err != nil {
		return Result{}, unavailable(err)
	}
	if score >= g.threshold {
		return Result{Reason: ReasonToxic}, nil
	}
	return Result{Allowed: true}, nil
}

// Check screens each non-empty text and returns the first violation or failure.
// Empty entries are skipped so optional fields can be passed through unchanged.
func (g *Gate) Check(ctx context.Context, texts ...string) error {
	for _, t := range texts {
		if strings.TrimSpace(t) == "" {
			continue
		}
		res, err := g.Screen(ctx, t)
		if err != nil {
			return err
		}
		if !res.Allowed {
			return &ViolationError{Reason: res.Reason}
		}
	}
	return nil
}
