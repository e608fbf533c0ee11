package brain

import (
	"bytes"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime knobs of a Brain. It is read by the core on every
// call and may be edited between calls.
type Config struct {
	// MaxIngestionStateSize is the largest state length recorded during
	// ingestion. Every length from 1 up to it is recorded, so larger values
	// grow the store quickly.
	MaxIngestionStateSize int `yaml:"max_ingestion_state_size"`

	// Training lets the brain learn from the inputs it is asked to reply to.
	Training bool `yaml:"training"`

	// Mute suppresses all replies (learning still happens when Training is
	// set).
	Mute bool `yaml:"mute"`

	// ReplyRate is the probability in [0, 1] that a gated generation call
	// produces output.
	ReplyRate float64 `yaml:"reply_rate"`

	// MinGenerationStateSize and MaxGenerationStateSize define the half-open
	// range [min, max) of context lengths tried while extending a sentence.
	// Shorter contexts are tried first.
	MinGenerationStateSize int `yaml:"min_generation_state_size"`
	MaxGenerationStateSize int `yaml:"max_generation_state_size"`

	// ExcludedWords is declared for forward compatibility; generation does
	// not currently filter output by it.
	ExcludedWords []string `yaml:"excluded_words"`
}

// DefaultConfig returns the default brain configuration.
func DefaultConfig() Config {
	return Config{
		MaxIngestionStateSize:  5,
		Training:               false,
		Mute:                   false,
		ReplyRate:              1.0,
		MinGenerationStateSize: 2,
		MaxGenerationStateSize: 4,
	}
}

// Validate checks the range constraints on the configuration.
func (c Config) Validate() error {
	if c.MaxIngestionStateSize < 1 {
		return fmt.Errorf("max_ingestion_state_size must be positive, got %d", c.MaxIngestionStateSize)
	}
	if c.ReplyRate < 0 || c.ReplyRate > 1 {
		return fmt.Errorf("reply_rate must be within [0, 1], got %v", c.ReplyRate)
	}
	if c.MinGenerationStateSize < 0 {
		return fmt.Errorf("min_generation_state_size must not be negative, got %d", c.MinGenerationStateSize)
	}
	if c.MaxGenerationStateSize <= c.MinGenerationStateSize {
		return fmt.Errorf("max_generation_state_size (%d) must be greater than min_generation_state_size (%d)",
			c.MaxGenerationStateSize, c.MinGenerationStateSize)
	}
	return nil
}

// LoadConfig reads a YAML configuration file. A missing file is not an
// error: it yields the defaults, so a fresh deployment can run unconfigured.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file atomically.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
