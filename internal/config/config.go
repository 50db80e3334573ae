package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application level configuration loaded from environment
// variables. It is built once in main and passed by injection; business logic
// never reads the environment directly.
type Config struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel   int    `env:"LOG_LEVEL" envDefault:"0"`
	MySQLDSN   string `env:"MYSQL_DSN" envDefault:"user:password@tcp(localhost:3306)/siscav?charset=utf8mb4&parseTime=True&loc=Local"`

	Redis   Redis   `envPrefix:"REDIS_"`
	JWT     JWT     `envPrefix:"JWT_"`
	Upload  Upload  `envPrefix:"UPLOAD_"`
	Storage Storage `envPrefix:"MINIO_"`

	// StorageBackend selects where capture images are persisted: "disk"
	// (flat files under Upload.Dir) or "minio".
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"disk"`

	// LoginRateLimit is the number of login attempts allowed per minute per
	// client address.
	LoginRateLimit int `env:"LOGIN_RATE_LIMIT" envDefault:"5"`
}

// JWT contains token-signing parameters.
type JWT struct {
	Secret     string        `env:"SECRET" envDefault:"change-me"`
	Algorithm  string        `env:"ALGORITHM" envDefault:"HS256"`
	AccessTTL  time.Duration `env:"ACCESS_TTL" envDefault:"15m"`
	RefreshTTL time.Duration `env:"REFRESH_TTL" envDefault:"720h"`
}

// Upload contains image upload parameters.
type Upload struct {
	Dir       string `env:"DIR" envDefault:"./uploads"`
	MaxSizeMB int64  `env:"MAX_SIZE_MB" envDefault:"10"`
}

// Redis contains redis connection parameters.
type Redis struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	DB       int    `env:"DB" envDefault:"0"`
	Password string `env:"PASSWORD"`
}

// Storage contains object storage parameters, used when StorageBackend is
// "minio".
type Storage struct {
	Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET_NAME" envDefault:"siscav-captures"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

// MaxUploadBytes returns the upload size cap in bytes.
func (u Upload) MaxUploadBytes() int64 {
	return u.MaxSizeMB * 1024 * 1024
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
