// Package internal holds the application configuration shared by the
// eihwaz subcommands.
package internal

import (
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the application configuration.
type Config struct {
	App   ApplicationConfig `yaml:"app"`
	Scan  ScanConfig        `yaml:"scan"`
	Bench BenchConfig       `yaml:"bench"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Scan.Validate(); err != nil {
		return err
	}
	return c.Bench.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// ScanConfig drives the content-type scanner. The handled sets are the
// payload tags the rest of the toolchain knows how to process; anything
// outside them is reported with a sample.
type ScanConfig struct {
	HandledContentTypes []string `yaml:"handled_content_types"`
	HandledPartTypes    []string `yaml:"handled_part_types"`
	SampleLimit         int      `yaml:"sample_limit"`
}

// Validate validates the scanner configuration.
func (c *ScanConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.SampleLimit, validation.Required, validation.Min(1)),
	)
}

// BenchConfig holds the search-benchmark settings. An empty DBPath
// means a throwaway database in the system temp directory.
type BenchConfig struct {
	DBPath  string   `yaml:"db_path"`
	Queries []string `yaml:"queries"`
	Limit   int      `yaml:"limit"`
}

// Validate validates the benchmark configuration.
func (c *BenchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Limit, validation.Required, validation.Min(1), validation.Max(10000)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Scan: ScanConfig{
			HandledContentTypes: []string{"text", "multimodal_text", "code"},
			HandledPartTypes:    []string{"image_asset_pointer", "audio_asset_pointer"},
			SampleLimit:         400,
		},
		Bench: BenchConfig{
			Queries: []string{"hello", "python", "remember", "conversation"},
			Limit:   100,
		},
	}
}
