// Package config holds the workload parameters of the tinythread tool.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config sizes the self-test and benchmark workloads. Zero fields take their
// default values.
type Config struct {
	Threads        int    `toml:"threads,omitempty" yaml:"threads,omitempty"`
	Iterations     int    `toml:"iterations,omitempty" yaml:"iterations,omitempty"`
	Consumers      int    `toml:"consumers,omitempty" yaml:"consumers,omitempty"`
	Items          int    `toml:"items,omitempty" yaml:"items,omitempty"`
	RecursionDepth int    `toml:"recursion_depth,omitempty" yaml:"recursion_depth,omitempty"`
	BenchSamples   int    `toml:"bench_samples,omitempty" yaml:"bench_samples,omitempty"`
	MetricsAddr    string `toml:"metrics_address,omitempty" yaml:"metrics_address,omitempty"`
}

const (
	DefaultThreads        = 8
	DefaultIterations     = 10_000
	DefaultConsumers      = 2
	DefaultItems          = 10_000
	DefaultRecursionDepth = 5
	DefaultBenchSamples   = 100_000
)

var errUnknownFormat = errors.New("unknown configuration file format")

// Default returns the configuration used when no file is given.
func Default() Config {
	var c Config
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Threads == 0 {
		c.Threads = DefaultThreads
	}
	if c.Iterations == 0 {
		c.Iterations = DefaultIterations
	}
	if c.Consumers == 0 {
		c.Consumers = DefaultConsumers
	}
	if c.Items == 0 {
		c.Items = DefaultItems
	}
	if c.RecursionDepth == 0 {
		c.RecursionDepth = DefaultRecursionDepth
	}
	if c.BenchSamples == 0 {
		c.BenchSamples = DefaultBenchSamples
	}
}

// Validate rejects negative workload sizes.
func (c Config) Validate() error {
	for _, f := range []struct {
		name  string
		value int
	}{
		{"threads", c.Threads},
		{"iterations", c.Iterations},
		{"consumers", c.Consumers},
		{"items", c.Items},
		{"recursion_depth", c.RecursionDepth},
		{"bench_samples", c.BenchSamples},
	} {
		if f.value <= 0 {
			return fmt.Errorf("invalid configuration: %s must be positive, got %d", f.name, f.value)
		}
	}
	return nil
}

// Load reads a TOML (.toml) or YAML (.yaml, .yml) configuration file. Unknown
// keys are rejected.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	var cfg Config
	switch filepath.Ext(path) {
	case ".toml":
		err = toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields().Decode(&cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		err = dec.Decode(&cfg)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		err = errUnknownFormat
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode configuration %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
