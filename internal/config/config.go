// SPDX-License-Identifier: MIT

// Package config loads sparsectl settings with koanf.
//
// Precedence (later wins):
//  1. Built-in defaults (defaultConfig).
//  2. A YAML file: $SPARSECTL_CONFIG, else ./sparsectl.yaml when present.
//  3. Environment variables with the SPARSECTL_ prefix:
//     SPARSECTL_LOG_LEVEL -> log.level, SPARSECTL_OUTPUT_BLOCK_SIZE -> output.block_size.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/katalvlaran/lvsparse/internal/logging"
	"github.com/katalvlaran/lvsparse/sparse"
	"github.com/katalvlaran/lvsparse/sparseio"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "SPARSECTL_"
	// ConfigPathEnvVar names an explicit config file.
	ConfigPathEnvVar = EnvPrefix + "CONFIG"
	// DefaultConfigPath is read when present and no explicit file is named.
	DefaultConfigPath = "sparsectl.yaml"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid setting")

// Config is the full sparsectl configuration.
type Config struct {
	Log    LogConfig    `koanf:"log"`
	Output OutputConfig `koanf:"output"`
	Sparse SparseConfig `koanf:"sparse"`
}

// LogConfig selects level and encoding of the command's log output.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// OutputConfig tunes the .spz writer.
type OutputConfig struct {
	Compression string `koanf:"compression"`
	BlockSize   int    `koanf:"block_size"`
}

// SparseConfig carries options applied to every loaded store.
type SparseConfig struct {
	MaxDiagonals   int  `koanf:"max_diagonals"`
	SumDuplicates  bool `koanf:"sum_duplicates"`
	EliminateZeros bool `koanf:"eliminate_zeros"`
}

func defaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Output: OutputConfig{
			Compression: sparseio.DefaultCompression.String(),
			BlockSize:   sparseio.DefaultBlockSize,
		},
		Sparse: SparseConfig{
			MaxDiagonals: sparse.DefaultMaxDiagonals,
		},
	}
}

// Load layers defaults, the optional YAML file and the environment, then
// validates the result.
func Load() (*Config, error) {
	return load(findConfigFile())
}

func load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns $SPARSECTL_CONFIG, else DefaultConfigPath when it
// exists, else "". A named file that does not exist is returned as is so that
// loading reports it.
func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		return p
	}
	if _, err := os.Stat(DefaultConfigPath); err == nil {
		return DefaultConfigPath
	}
	return ""
}

// envTransformFunc maps SPARSECTL_SECTION_KEY_PART to section.key_part.
// The config path variable itself is dropped.
func envTransformFunc(key string) string {
	if key == ConfigPathEnvVar {
		return ""
	}
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok {
		return key
	}
	return section + "." + rest
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %v: %w", err, ErrInvalid)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("log.format %q: must be json or console: %w", c.Log.Format, ErrInvalid)
	}
	if _, err := sparseio.ParseCompression(c.Output.Compression); err != nil {
		return fmt.Errorf("output.compression: %v: %w", err, ErrInvalid)
	}
	if c.Output.BlockSize <= 0 {
		return fmt.Errorf("output.block_size %d: must be positive: %w", c.Output.BlockSize, ErrInvalid)
	}
	if c.Sparse.MaxDiagonals < 0 {
		return fmt.Errorf("sparse.max_diagonals %d: must be non-negative: %w", c.Sparse.MaxDiagonals, ErrInvalid)
	}
	return nil
}

// Logging returns the logging.Config for c.
func (c *Config) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Log.Level
	cfg.Format = c.Log.Format
	return cfg
}

// WriteOptions returns the sparseio writer options for c. c must be valid.
func (c *Config) WriteOptions() []sparseio.Option {
	comp, _ := sparseio.ParseCompression(c.Output.Compression)
	return []sparseio.Option{
		sparseio.WithCompression(comp),
		sparseio.WithBlockSize(c.Output.BlockSize),
	}
}

// StoreOptions returns the sparse options applied to loaded stores.
func (c *Config) StoreOptions() []sparse.Option {
	return []sparse.Option{sparse.WithMaxDiagonals(c.Sparse.MaxDiagonals)}
}
