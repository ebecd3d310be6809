package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/jsphweid/clarinetlint/fingering"
	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

// Config holds all clarinetlint configuration.
type Config struct {
	Variant        string `yaml:"variant"`
	Normalize      bool   `yaml:"normalize"`
	BreakThreshold int    `yaml:"break_threshold"`
	Workers        int    `yaml:"workers"`

	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// StoreConfig picks where reports go. Kind is "memory" or "dynamodb".
type StoreConfig struct {
	Kind           string `yaml:"kind"`
	DynamoEndpoint string `yaml:"dynamo_endpoint"`
	Region         string `yaml:"region"`
	Table          string `yaml:"table"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

func Default() *Config {
	return &Config{
		Variant:        string(fingering.VariantBasic),
		Normalize:      true,
		BreakThreshold: 4,
		Workers:        4,
		Server: ServerConfig{
			Addr:        ":8080",
			CORSOrigins: []string{"*"},
		},
		Store: StoreConfig{
			Kind:           "memory",
			DynamoEndpoint: "http://localhost:8000",
			Region:         "localhost",
			Table:          "clarinetlint-reports",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path, or one that does not
// exist, yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, pkgerrors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("CLARINETLINT_VARIANT"); v != "" {
		c.Variant = v
	}
	if v := os.Getenv("CLARINETLINT_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("CLARINETLINT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("DYNAMO_ENDPOINT"); v != "" {
		c.Store.DynamoEndpoint = v
	}
}

func (c *Config) Validate() error {
	if _, err := fingering.ByVariant(fingering.Variant(c.Variant)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.BreakThreshold <= 0 {
		return fmt.Errorf("%w: break_threshold must be positive, got %d", ErrInvalid, c.BreakThreshold)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalid, c.Workers)
	}
	switch c.Store.Kind {
	case "memory":
	case "dynamodb":
		if c.Store.Table == "" {
			return fmt.Errorf("%w: store.table is required for dynamodb", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown store kind %q", ErrInvalid, c.Store.Kind)
	}
	return nil
}
