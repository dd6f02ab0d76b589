package config

import (
	"errors"
	"fmt"
	log "log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Cfg process-wide configuration, populated by LoadConfig
var Cfg *Config

// EnvPrefix prefix for environment overrides, e.g. BASTION_DATABASE_DSN
const EnvPrefix = "BASTION"

// LoadConfig reads ./configs/config.yaml, applies .env and environment overrides and fills Cfg
func LoadConfig() error {
	if err := godotenv.Load(); err != nil {
		log.Debug(".env not loaded", "err", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("read config: %w", err)
		}
		log.Warn("config file not found, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.slow_sql_ms", 200)
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 100)
	v.SetDefault("database.max_lifetime", 3600)
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("jwt.expire_hours", 72)
	v.SetDefault("screening.provider", "perspective")
	v.SetDefault("screening.threshold", 0.85)
	v.SetDefault("screening.timeout_seconds", 10)
	v.SetDefault("screening.perspective_url", "https://commentanalyzer.googleapis.com/v1alpha1/comments:analyze")
	v.SetDefault("realtime.registry", "local")
	v.SetDefault("realtime.fanout_channel", "ws:fanout")
	v.SetDefault("ai.timeout_seconds", 60)
	v.SetDefault("ai.history_turns", 10)
	v.SetDefault("jobs.like_reconcile_spec", "0 */10 * * * *")
	v.SetDefault("jobs.notification_purge_spec", "0 30 3 * * *")
	v.SetDefault("jobs.notification_retention_days", 30)
	v.SetDefault("jobs.cve_digest_spec", "0 0 9 * * *")
	v.SetDefault("jobs.cve_digest_limit", 5)
}
