// Package config loads cluedo settings from the environment. Command-line
// flags override whatever is loaded here.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/cluedo-engine/internal/errors"
)

// Decision providers
const (
	ProviderHeuristic = "heuristic"
	ProviderHTTP      = "http"
	ProviderGemini    = "gemini"
)

// Snapshot stores
const (
	StoreNone   = "none"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config is the full runtime configuration
type Config struct {
	// BoardFile is a YAML board description; empty means the classic board
	BoardFile string `env:"CLUEDO_BOARD_FILE"`

	// Seed fixes the session's random source; zero picks one at start-up
	Seed int64 `env:"CLUEDO_SEED"`

	DecisionProvider string        `env:"CLUEDO_DECISION_PROVIDER" envDefault:"heuristic"`
	DecisionURL      string        `env:"CLUEDO_DECISION_URL"`
	DecisionToken    string        `env:"CLUEDO_DECISION_TOKEN"`
	DecisionTimeout  time.Duration `env:"CLUEDO_DECISION_TIMEOUT" envDefault:"10s"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"CLUEDO_GEMINI_MODEL" envDefault:"gemini-2.5-flash"`

	Store       string        `env:"CLUEDO_STORE" envDefault:"none"`
	RedisAddr   string        `env:"CLUEDO_REDIS_ADDR" envDefault:"localhost:6379"`
	SQLitePath  string        `env:"CLUEDO_SQLITE_PATH" envDefault:"cluedo.db"`
	SnapshotTTL time.Duration `env:"CLUEDO_SNAPSHOT_TTL"`

	LogLevel string `env:"CLUEDO_LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the environment without validating it
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	return &cfg, nil
}

// Validate checks the combination of settings is usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("DecisionProvider", c.DecisionProvider,
		[]string{ProviderHeuristic, ProviderHTTP, ProviderGemini}, vb)
	errors.ValidateEnum("Store", c.Store, []string{StoreNone, StoreRedis, StoreSQLite}, vb)
	errors.ValidateEnum("LogLevel", c.LogLevel, []string{"debug", "info", "warn", "error"}, vb)

	switch c.DecisionProvider {
	case ProviderHTTP:
		errors.ValidateRequired("DecisionURL", c.DecisionURL, vb)
	case ProviderGemini:
		errors.ValidateRequired("GeminiAPIKey", c.GeminiAPIKey, vb)
	}

	switch c.Store {
	case StoreRedis:
		errors.ValidateRequired("RedisAddr", c.RedisAddr, vb)
	case StoreSQLite:
		errors.ValidateRequired("SQLitePath", c.SQLitePath, vb)
	}

	if c.DecisionTimeout < 0 {
		vb.InvalidField("DecisionTimeout", "must not be negative")
	}
	if c.SnapshotTTL < 0 {
		vb.InvalidField("SnapshotTTL", "must not be negative")
	}

	return vb.Build()
}
