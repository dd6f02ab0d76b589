package es

import (
	"Bastion/internal/api/config"
	"Bastion/internal/pkg/logger"
	"context"
	log "log/slog"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
)

const (
	NotFoundCode = 404
	ConflictCode = 409
)

// NewClient connects to the search cluster; it returns nil, nil when no address is configured
func NewClient(cfg config.ElasticConfig) (*elasticsearch.TypedClient, error) {
	if cfg.Address == "" {
		log.Warn("Elasticsearch not configured, search falls back to the database")
		return nil, nil
	}

	client, err := elasticsearch.NewTypedClient(elasticsearch.Config{
		Addresses: []string{cfg.Address},
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: &logger.ESTransport{
			Transport: http.DefaultTransport,
		},
	})
	if err != nil {
		log.Error("Cannot Connect to Elasticsearch", "err", err)
		return nil, err
	}

	info, err := client.Info().Do(context.Background())
	if err != nil {
		log.Error("Cannot Connect to Elasticsearch", "err", err)
		return nil, err
	}

	log.Info("Connected to Elasticsearch", "version", info.Version.Int)
	return client, nil
}
