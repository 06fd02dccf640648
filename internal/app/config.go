package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Record store drivers.
const (
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreMemory   = "memory"
)

// Object store drivers.
const (
	BlobLocal  = "local"
	BlobS3     = "s3"
	BlobMemory = "memory"
)

// Config holds the complete application configuration, loadable from
// environment variables (CATALOG_ prefix), flags, or YAML config files.
type Config struct {
	Addr           string `default:"0.0.0.0:8080" usage:"API server listen address"`
	MaxUploadBytes int64  `default:"33554432" usage:"Maximum multipart body size for add and edit" flag:"max-upload-bytes"`
	Store          StoreConfig
	Blob           BlobConfig
	RateLimit      RateLimitConfig
	CORS           CORSConfig
	Graceful       GracefulConfig
}

// StoreConfig selects the product record store.
type StoreConfig struct {
	Driver      string `default:"postgres" usage:"Record store driver: postgres, redis or memory"`
	DatabaseURL string `usage:"PostgreSQL connection URL (CATALOG_STORE_DATABASE_URL or DATABASE_URL)"`
	RedisURL    string `usage:"Redis connection URL (CATALOG_STORE_REDIS_URL or REDIS_URL)"`
	RedisPrefix string `default:"catalog" usage:"Key prefix for the redis driver"`
}

// BlobConfig selects the image object store.
type BlobConfig struct {
	Driver        string `default:"local" usage:"Object store driver: local, s3 or memory"`
	Dir           string `default:"media" usage:"Directory of the local driver, served under /media/"`
	PublicBaseURL string `default:"/media" usage:"Base URL of download links (local and s3 drivers)"`
	S3            S3Config
}

// S3Config configures the s3 object store driver.
type S3Config struct {
	Region          string `default:"us-east-1" usage:"Bucket region"`
	Bucket          string `usage:"Bucket name"`
	Prefix          string `usage:"Key prefix inside the bucket"`
	Endpoint        string `usage:"Custom endpoint for S3-compatible stores"`
	AccessKeyID     string `usage:"Static access key; the default credential chain is used when empty"`
	SecretAccessKey string `usage:"Static secret key"`
}

// RateLimitConfig controls the per-client token bucket rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config files,
// and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	return loadConfig(aconfig.Config{
		EnvPrefix: "CATALOG",
		Files:     []string{"config.yaml", "/etc/catalog/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
}

// LoadEnvConfig is LoadConfig without command-line flags, for tools that
// parse their own.
func LoadEnvConfig() (*Config, error) {
	return loadConfig(aconfig.Config{
		EnvPrefix: "CATALOG",
		SkipFlags: true,
		Files:     []string{"config.yaml", "/etc/catalog/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
}

func loadConfig(acfg aconfig.Config) (*Config, error) {
	var cfg Config
	if err := aconfig.LoaderFor(&cfg, acfg).Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			return errors.New("database URL is required: set CATALOG_STORE_DATABASE_URL or DATABASE_URL")
		}
	case StoreRedis:
		if c.Store.RedisURL == "" {
			return errors.New("redis URL is required: set CATALOG_STORE_REDIS_URL or REDIS_URL")
		}
	case StoreMemory:
	default:
		return errors.Errorf("unknown store driver %q", c.Store.Driver)
	}

	switch c.Blob.Driver {
	case BlobLocal:
		if c.Blob.Dir == "" {
			return errors.New("blob dir is required for the local driver")
		}
	case BlobS3:
		if c.Blob.S3.Bucket == "" {
			return errors.New("bucket is required for the s3 driver")
		}
	case BlobMemory:
	default:
		return errors.Errorf("unknown blob driver %q", c.Blob.Driver)
	}
	return nil
}

// applyPlatformDefaults maps platform-provided environment variables (Railway,
// Render, etc.) that use standard names like DATABASE_URL and PORT to the
// application's CATALOG_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.Store.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.Store.DatabaseURL = v
		}
	}
	if c.Store.RedisURL == "" {
		if v := os.Getenv("REDIS_URL"); v != "" {
			c.Store.RedisURL = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
