package config

// Config root configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Screening ScreeningConfig `mapstructure:"screening"`
	Realtime  RealtimeConfig  `mapstructure:"realtime"`
	LLM       LLMConfig       `mapstructure:"llm"`
	AI        AIConfig        `mapstructure:"ai"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	MinIO     MinIOConfig     `mapstructure:"minio"`
	Elastic   ElasticConfig   `mapstructure:"elastic"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Jobs      JobsConfig      `mapstructure:"jobs"`
}

// ServerConfig HTTP server. AdminUsername is granted the admin role at startup when the account exists.
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AdminUsername  string   `mapstructure:"admin_username"`
}

// LogConfig log level and optional remote sink
type LogConfig struct {
	Level         string `mapstructure:"level"`
	RemoteAddress string `mapstructure:"remote_address"`
	SlowSQLMs     int    `mapstructure:"slow_sql_ms"`
}

// DBConfig MySQL
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// ScreeningConfig content screening gate; provider is perspective, llm or none
type ScreeningConfig struct {
	Provider          string  `mapstructure:"provider"`
	PerspectiveAPIKey string  `mapstructure:"perspective_api_key"`
	PerspectiveURL    string  `mapstructure:"perspective_url"`
	Threshold         float64 `mapstructure:"threshold"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds"`
}

// RealtimeConfig registry is local or redis; fan-out across instances is enabled with redis
type RealtimeConfig struct {
	Registry      string `mapstructure:"registry"`
	FanoutChannel string `mapstructure:"fanout_channel"`
}

type LLMConfig struct {
	URL       string `mapstructure:"url"`
	TextModel string `mapstructure:"text_model"`
	ApiKey    string `mapstructure:"api_key"`
}

type AIConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	HistoryTurns   int    `mapstructure:"history_turns"`
	SystemPrompt   string `mapstructure:"system_prompt"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// MinIOConfig object storage
type MinIOConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	PublicEndpoint string `mapstructure:"public_endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	Bucket         string `mapstructure:"bucket"`
	UseSSL         bool   `mapstructure:"use_ssl"`
}

// ElasticConfig search cluster
type ElasticConfig struct {
	Address  string         `mapstructure:"address"`
	Username string         `mapstructure:"username"`
	Password string         `mapstructure:"password"`
	Indices  ElasticIndices `mapstructure:"indices"`
}

type ElasticIndices struct {
	UserIndex string `mapstructure:"user_index"`
	PostIndex string `mapstructure:"post_index"`
}

type KafkaConfig struct {
	Brokers       []string       `mapstructure:"brokers"`
	Sasl          SaslConfig     `mapstructure:"sasl"`
	Consumer      ConsumerConfig `mapstructure:"consumer"`
	ActivityTopic string         `mapstructure:"activity_topic"`
	IndexGroupID  string         `mapstructure:"index_group_id"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
}

// JobsConfig cron specs use the seconds field
type JobsConfig struct {
	LikeReconcileSpec         string `mapstructure:"like_reconcile_spec"`
	NotificationPurgeSpec     string `mapstructure:"notification_purge_spec"`
	NotificationRetentionDays int    `mapstructure:"notification_retention_days"`
	CVEDigestSpec             string `mapstructure:"cve_digest_spec"`
	CVEFeedURL                string `mapstructure:"cve_feed_url"`
	CVEDigestLimit            int    `mapstructure:"cve_digest_limit"`
}
