package screening

import (
	"Bastion/internal/api/config"
	log "log/slog"
	"strings"
	"time"
)

// NewScorerFromConfig resolves the configured provider once at startup.
// rater may be nil when no language model is available.
func NewScorerFromConfig(cfg config.ScreeningConfig, rater Rater) Scorer {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 || timeout > 10*time.Second {
		timeout = 10 * time.Second
	}

	switch strings.ToLower(cfg.Provider) {
	case "perspective":
		if cfg.PerspectiveAPIKey == "" {
			log.Warn("perspective api key missing, toxicity scoring disabled")
			return NoopScorer{}
		}
		return NewPerspectiveScorer(cfg.PerspectiveURL, cfg.PerspectiveAPIKey, timeout)
	case "llm":
		if rater == nil {
			log.Warn("screening provider is llm but no model is configured, toxicity scoring disabled")
			return NoopScorer{}
		}
		return NewLLMScorer(rater, timeout)
	default:
		return NoopScorer{}
	}
}
