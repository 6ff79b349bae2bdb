package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	APIBaseURL     string        `env:"API_BASE_URL,    default=http://localhost:8080/api"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=15s"`
	Env            string        `env:"ENV,             default=development"`
	LogLevel       string        `env:"LOG_LEVEL,       default=info"`
	StateDir       string        `env:"STATE_DIR"`

	Redis RedisConfig
	Mock  MockConfig
}

// RedisConfig selects the shared session backend. When Addr is empty the
// console falls back to file-based storage under StateDir.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// MockConfig configures the development backend double.
type MockConfig struct {
	Port      string        `env:"MOCK_PORT,       default=8080"`
	JWTSecret string        `env:"MOCK_JWT_SECRET, default=dev-secret"`
	TokenTTL  time.Duration `env:"MOCK_TOKEN_TTL,  default=24h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	if cfg.StateDir == "" {
		cfg.StateDir = defaultStateDir()
	}
	return &cfg
}

// defaultStateDir resolves the per-user state directory.
func defaultStateDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "catalog-console")
}
