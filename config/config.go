// Package config provides configuration loading and management for rdfalchemy.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/geoknoesis/rdfalchemy-go/compat"
	"github.com/geoknoesis/rdfalchemy-go/rdf"
)

// Config represents the complete rdfalchemy configuration
type Config struct {
	// Dialect selects the literal syntax of doctest output ("modern" or "legacy")
	Dialect string `yaml:"dialect"`
	// Encoding is the text encoding used for byte conversion (default: utf-8)
	Encoding string `yaml:"encoding"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`
	RDF      RDFConfig `yaml:"rdf"`
}

// RDFConfig configures the RDF codecs
type RDFConfig struct {
	// Format is the default serialization (empty = detect from input)
	Format string `yaml:"format"`
	// MaxLineBytes bounds a single N-Triples/N-Quads line (0 = codec default)
	MaxLineBytes int `yaml:"max_line_bytes"`
	// MaxTriples bounds the statements read from one input (0 = unlimited)
	MaxTriples int64 `yaml:"max_triples"`
	// JSONLDContext compacts JSON-LD output when set
	JSONLDContext map[string]any `yaml:"jsonld_context"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Dialect:  compat.Modern.String(),
		Encoding: compat.DefaultEncoding,
		LogLevel: "info",
		RDF: RDFConfig{
			Format:       "", // Auto-detect
			MaxLineBytes: rdf.DefaultMaxLineBytes,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := compat.ParseDialect(c.Dialect); err != nil {
		return fmt.Errorf("dialect: %w", err)
	}
	if c.Encoding == "" {
		return fmt.Errorf("encoding is required")
	}
	if _, err := compat.Encode("", c.Encoding); err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error")
	}
	if c.RDF.Format != "" {
		if _, ok := rdf.ParseFormat(c.RDF.Format); !ok {
			return fmt.Errorf("rdf.format: %w: %q", rdf.ErrUnsupportedFormat, c.RDF.Format)
		}
	}
	if c.RDF.MaxTriples < 0 {
		return fmt.Errorf("rdf.max_triples must not be negative")
	}
	return nil
}

// DialectValue returns the parsed dialect, falling back to Modern.
func (c *Config) DialectValue() compat.Dialect {
	d, err := compat.ParseDialect(c.Dialect)
	if err != nil {
		return compat.Modern
	}
	return d
}

// Format returns the configured default format, or rdf.FormatAuto.
func (c *Config) Format() rdf.Format {
	f, _ := rdf.ParseFormat(c.RDF.Format)
	return f
}

// RDFOptions returns the reader/writer options the configuration implies.
func (c *Config) RDFOptions() []rdf.Option {
	var opts []rdf.Option
	if c.RDF.MaxLineBytes != 0 {
		opts = append(opts, rdf.OptMaxLineBytes(c.RDF.MaxLineBytes))
	}
	if c.RDF.MaxTriples > 0 {
		opts = append(opts, rdf.OptMaxTriples(c.RDF.MaxTriples))
	}
	if len(c.RDF.JSONLDContext) > 0 {
		opts = append(opts, rdf.OptJSONLDContext(c.RDF.JSONLDContext))
	}
	return opts
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Dialect != "" {
		c.Dialect = other.Dialect
	}
	if other.Encoding != "" {
		c.Encoding = other.Encoding
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}

	// RDF
	if other.RDF.Format != "" {
		c.RDF.Format = other.RDF.Format
	}
	if other.RDF.MaxLineBytes != 0 {
		c.RDF.MaxLineBytes = other.RDF.MaxLineBytes
	}
	if other.RDF.MaxTriples != 0 {
		c.RDF.MaxTriples = other.RDF.MaxTriples
	}
	if len(other.RDF.JSONLDContext) > 0 {
		c.RDF.JSONLDContext = other.RDF.JSONLDContext
	}
}
