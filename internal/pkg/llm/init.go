package llm

import (
	"Bastion/internal/api/config"
	"errors"
	log "log/slog"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrNotConfigured returned by callers when no model endpoint is set
var ErrNotConfigured = errors.New("llm not configured")

// Client thin wrapper over an OpenAI-compatible chat model
type Client struct {
	model     llms.Model
	modelName string
	timeout   time.Duration
}

// NewClient builds a client from config; it returns nil, nil when no endpoint or key is configured
func NewClient(cfg config.LLMConfig, ai config.AIConfig) (*Client, error) {
	if cfg.ApiKey == "" {
		log.Warn("LLM api key missing, AI features disabled")
		return nil, nil
	}

	opts := []openai.Option{
		openai.WithModel(cfg.TextModel),
		openai.WithToken(cfg.ApiKey),
	}
	if cfg.URL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.URL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		log.Error("LLM init failed", "err", err)
		return nil, err
	}

	return NewClientWithModel(model, cfg.TextModel, time.Duration(ai.TimeoutSeconds)*time.Second), nil
}

// NewClientWithModel wraps an existing model, used by tests with a fake
func NewClientWithModel(model llms.Model, modelName string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{model: model, modelName: modelName, timeout: timeout}
}
