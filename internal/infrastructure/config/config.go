package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	StorageBackendS3     = "s3"
	StorageBackendMemory = "memory"
)

type Config struct {
	Server     ServerConfig
	Storage    StorageConfig
	S3         S3Config
	Engagement EngagementConfig
	Redis      RedisConfig
	Log        LogConfig
	RateLimit  RateLimitConfig
	Metrics    MetricsConfig
}

type ServerConfig struct {
	Port               int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout        time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout       time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout    time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	Environment        string        `envconfig:"ENVIRONMENT" default:"development"`
	StaticDir          string        `envconfig:"STATIC_DIR"`
	UploadMaxBodyBytes int64         `envconfig:"UPLOAD_MAX_BODY_BYTES" default:"52428800"`
}

type StorageConfig struct {
	Backend         string `envconfig:"STORAGE_BACKEND" default:"s3"`
	MemoryPublicURL string `envconfig:"MEMORY_PUBLIC_URL" default:"http://localhost:8080/blobs/photos"`
}

type S3Config struct {
	Endpoint        string        `envconfig:"S3_ENDPOINT"`
	Region          string        `envconfig:"S3_REGION" default:"us-east-1"`
	AccessKeyID     string        `envconfig:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string        `envconfig:"S3_SECRET_ACCESS_KEY"`
	UsePathStyle    bool          `envconfig:"S3_USE_PATH_STYLE" default:"false"`
	PhotosBucket    string        `envconfig:"S3_PHOTOS_BUCKET" default:"photos"`
	MetadataBucket  string        `envconfig:"S3_METADATA_BUCKET" default:"metadata"`
	PublicURL       string        `envconfig:"S3_PUBLIC_URL"`
	PresignTTL      time.Duration `envconfig:"S3_PRESIGN_TTL" default:"168h"`
}

type EngagementConfig struct {
	MaxAttempts int `envconfig:"ENGAGEMENT_MAX_ATTEMPTS" default:"5"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type RateLimitConfig struct {
	Enabled        bool `envconfig:"RATE_LIMIT_ENABLED" default:"false"`
	RequestsPerMin int  `envconfig:"RATE_LIMIT_REQUESTS_PER_MIN" default:"100"`
}

type MetricsConfig struct {
	Enabled bool `envconfig:"METRICS_ENABLED" default:"true"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case StorageBackendS3:
		if c.S3.AccessKeyID == "" || c.S3.SecretAccessKey == "" {
			return errors.New("S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY are required for the s3 backend")
		}
		if c.S3.PhotosBucket == "" || c.S3.MetadataBucket == "" {
			return errors.New("S3_PHOTOS_BUCKET and S3_METADATA_BUCKET must not be empty")
		}
	case StorageBackendMemory:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}

	if c.Engagement.MaxAttempts < 1 {
		return errors.New("ENGAGEMENT_MAX_ATTEMPTS must be at least 1")
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMin < 1 {
		return errors.New("RATE_LIMIT_REQUESTS_PER_MIN must be at least 1")
	}
	return nil
}
