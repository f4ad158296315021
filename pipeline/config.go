package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/c360/fluxkit/errors"
)

// Stage kinds accepted in configuration.
const (
	KindMap          = "map"
	KindFilter       = "filter"
	KindContextWrite = "context_write"
)

// Config declares a pipeline: a bounded source, an ordered stage list, and
// the terminal sink. Stage order in the file runs source-to-sink.
type Config struct {
	Name   string        `yaml:"name"`
	Source SourceConfig  `yaml:"source"`
	Stages []StageConfig `yaml:"stages"`
	Sink   SinkConfig    `yaml:"sink"`
}

// SourceConfig holds the fixed item sequence the source emits.
type SourceConfig struct {
	Items []any `yaml:"items"`
}

// StageConfig declares one operator stage.
type StageConfig struct {
	// Kind selects the operator: map, filter, or context_write.
	Kind string `yaml:"kind"`
	// Name overrides the generated stage name used in logs and metrics.
	Name string `yaml:"name"`
	// Op names a registered mapper or predicate (map and filter kinds).
	Op string `yaml:"op"`
	// Arg is the optional operation argument (map and filter kinds).
	Arg any `yaml:"arg"`
	// Key and Value define the entry written by a context_write stage.
	Key   string `yaml:"key"`
	Value any    `yaml:"value"`
}

// SinkConfig configures the terminal subscriber.
type SinkConfig struct {
	// Context seeds the sink's initial ambient context.
	Context map[string]any `yaml:"context"`
	// Demand bounds emission; zero or omitted means unbounded.
	Demand int64 `yaml:"demand"`
}

// LoadConfig reads and validates a pipeline configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.WrapInvalid(err, "Config", "LoadConfig", "read file")
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates YAML pipeline configuration.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.WrapInvalid(err, "Config", "ParseConfig", "decode yaml")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks structural requirements before assembly.
func (c Config) Validate() error {
	if c.Name == "" {
		return errors.WrapInvalid(
			fmt.Errorf("%w: pipeline name", errors.ErrMissingConfig),
			"Config", "Validate", "check name")
	}
	if c.Sink.Demand < 0 {
		return errors.WrapInvalid(
			fmt.Errorf("%w: sink demand must not be negative", errors.ErrInvalidConfig),
			"Config", "Validate", "check sink demand")
	}

	for i, stage := range c.Stages {
		switch stage.Kind {
		case KindMap, KindFilter:
			if stage.Op == "" {
				return errors.WrapInvalid(
					fmt.Errorf("%w: stage %d (%s) needs an op", errors.ErrMissingConfig, i, stage.Kind),
					"Config", "Validate", "check stage op")
			}
		case KindContextWrite:
			if stage.Key == "" {
				return errors.WrapInvalid(
					fmt.Errorf("%w: stage %d (context_write) needs a key", errors.ErrMissingConfig, i),
					"Config", "Validate", "check stage key")
			}
		default:
			return errors.WrapInvalid(
				fmt.Errorf("%w: stage %d has unknown kind %q", errors.ErrInvalidConfig, i, stage.Kind),
				"Config", "Validate", "check stage kind")
		}
	}

	return nil
}
