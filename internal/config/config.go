package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. DEMOBANK_STORAGE_BACKEND.
const EnvPrefix = "DEMOBANK"

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config represents the top-level demobank.yaml configuration.
type Config struct {
	App      AppConfig      `yaml:"app" mapstructure:"app"`
	Storage  StorageConfig  `yaml:"storage" mapstructure:"storage"`
	Keys     KeysConfig     `yaml:"keys" mapstructure:"keys"`
	Interest InterestConfig `yaml:"interest" mapstructure:"interest"`
}

// AppConfig selects the runtime environment. "dev" enables console logging.
type AppConfig struct {
	Env string `yaml:"env" mapstructure:"env"`
}

// StorageConfig selects where users and the session are persisted.
type StorageConfig struct {
	Backend     string `yaml:"backend" mapstructure:"backend"` // memory, file or postgres
	Dir         string `yaml:"dir" mapstructure:"dir"`
	PostgresURL string `yaml:"postgres_url,omitempty" mapstructure:"postgres_url"`
}

// KeysConfig names the storage keys for the user set and the session.
type KeysConfig struct {
	Users   string `yaml:"users" mapstructure:"users"`
	Session string `yaml:"session" mapstructure:"session"`
}

// InterestConfig controls savings interest.
type InterestConfig struct {
	SavingsRate float64 `yaml:"savings_rate" mapstructure:"savings_rate"`
}

// Rate returns the savings rate as a decimal.
func (c InterestConfig) Rate() decimal.Decimal {
	return decimal.NewFromFloat(c.SavingsRate)
}

// Default returns a Config with sensible defaults for a new data directory.
func Default() *Config {
	return &Config{
		App: AppConfig{Env: "dev"},
		Storage: StorageConfig{
			Backend: BackendFile,
			Dir:     "data",
		},
		Keys: KeysConfig{
			Users:   "demo_bank_users",
			Session: "demo_bank_session",
		},
		Interest: InterestConfig{SavingsRate: 0.02},
	}
}

// Load reads configuration from path, layered over defaults and under
// environment overrides. A .env file in the working directory is loaded into
// the environment first. An empty path skips the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("app.env", d.App.Env)
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.dir", d.Storage.Dir)
	v.SetDefault("storage.postgres_url", d.Storage.PostgresURL)
	v.SetDefault("keys.users", d.Keys.Users)
	v.SetDefault("keys.session", d.Keys.Session)
	v.SetDefault("interest.savings_rate", d.Interest.SavingsRate)
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate reports the first problem with cfg.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendFile:
	case BackendPostgres:
		if c.Storage.PostgresURL == "" {
			return errors.New("storage.postgres_url is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Storage.Backend == BackendFile && c.Storage.Dir == "" {
		return errors.New("storage.dir is required for the file backend")
	}
	if c.Keys.Users == "" || c.Keys.Session == "" {
		return errors.New("keys.users and keys.session must be set")
	}
	if c.Keys.Users == c.Keys.Session {
		return errors.New("keys.users and keys.session must differ")
	}
	if c.Interest.SavingsRate < 0 {
		return fmt.Errorf("interest.savings_rate must not be negative, got %v", c.Interest.SavingsRate)
	}
	return nil
}

// DevMode reports whether logs should be human-readable.
func (c *Config) DevMode() bool {
	return c.App.Env == "dev"
}
