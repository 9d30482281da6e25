package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	HTTP  HTTPConfig  `yaml:"http"`
	Vocab VocabConfig `yaml:"vocabulary"`
	Redis RedisConfig `yaml:"redis"`
	Log   LogConfig   `yaml:"log"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr" env:"HTTP_ADDR" env-default:":8080"`
}

type VocabConfig struct {
	// Path to the newline-delimited vocabulary source.
	Path string `yaml:"path" env:"VOCAB_PATH" env-default:"telugu_vocabulary.txt"`
	// SnapshotPath is where the built index is persisted. Empty
	// disables the file snapshot; with Redis configured the snapshot
	// goes there instead.
	SnapshotPath string `yaml:"snapshot_path" env:"VOCAB_SNAPSHOT_PATH" env-default:"spellcheck_index.bin"`
	// MaxCandidates returned per misspelled word.
	MaxCandidates int `yaml:"max_candidates" env:"MAX_CANDIDATES" env-default:"5"`
	// MaxEditDistance bounds the candidate search.
	MaxEditDistance int `yaml:"max_edit_distance" env:"MAX_EDIT_DISTANCE" env-default:"2"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:""`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults. The YAML file path comes from
// CONFIG_PATH (fallback "./config.yaml"); a missing file is only an
// error when CONFIG_PATH was set explicitly.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks business rules on the loaded configuration.
func (c *Config) Validate() error {
	if c.Vocab.Path == "" {
		return fmt.Errorf("vocabulary.path must be set")
	}
	if c.Vocab.MaxCandidates < 1 {
		return fmt.Errorf("vocabulary.max_candidates must be >= 1 (got %d)", c.Vocab.MaxCandidates)
	}
	if c.Vocab.MaxEditDistance < 1 {
		return fmt.Errorf("vocabulary.max_edit_distance must be >= 1 (got %d)", c.Vocab.MaxEditDistance)
	}
	return nil
}
