package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,         default=5000"`
	Env       string        `env:"ENV,          default=development"`
	LogLevel  string        `env:"LOG_LEVEL,    default=info"`
	JWTSecret string        `env:"JWT_SECRET,   required"`
	JWTTTL    time.Duration `env:"JWT_TTL,      default=720h"`

	FrontendURL string `env:"FRONTEND_URL, default=http://localhost:3000"`

	Upload UploadConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Gemini GeminiConfig
	Admin  AdminConfig
}

type UploadConfig struct {
	Dir      string `env:"UPLOAD_DIR,       default=uploads"`
	MaxBytes int64  `env:"MAX_UPLOAD_BYTES, default=10485760"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=sheetwise"`
}

// RedisConfig leaves the insight cache disabled when Addr is empty.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,          default=0"`
	CacheTTL time.Duration `env:"INSIGHT_CACHE_TTL, default=1h"`
}

// GeminiConfig leaves AI narratives disabled when APIKey is empty.
type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
	Model  string `env:"GEMINI_MODEL, default=gemini-2.5-flash"`
}

// AdminConfig is the account created by the seed-admin command.
type AdminConfig struct {
	Name     string `env:"ADMIN_NAME, default=Admin"`
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

// IsDevelopment reports whether verbose errors and console logs are enabled.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}
