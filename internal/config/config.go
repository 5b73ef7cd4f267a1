// Package config loads the tables manifest that tells the process which
// flat-file tables exist and where their backing files live. Settings not
// tied to a table (log level, Seq URL, data directory) come from the
// environment and override manifest values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the parsed tables manifest.
type Config struct {
	// DataDir is the base directory for relative table directories.
	DataDir string `yaml:"data_dir"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// SeqURL, when set, enables the Seq log sink.
	SeqURL string        `yaml:"seq_url"`
	Tables []TableConfig `yaml:"tables"`
}

// TableConfig declares one flat-file table.
type TableConfig struct {
	Name      string `yaml:"name"`
	Directory string `yaml:"directory"`
	FileName  string `yaml:"file_name"`
	// Delimiter is a single-character field separator; empty means ','.
	Delimiter  string   `yaml:"delimiter"`
	KeyColumns []string `yaml:"key_columns"`
	// ScanOrder is "reverse" (default) or "forward".
	ScanOrder string `yaml:"scan_order"`
}

// Load reads and validates a YAML manifest from path, then applies
// environment overrides (FLATDB_DATA_DIR, FLATDB_LOG_LEVEL,
// FLATDB_SEQ_URL).
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("FLATDB_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("FLATDB_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("FLATDB_SEQ_URL"); v != "" {
		c.SeqURL = v
	}
}

func (c *Config) validate() error {
	seen := make(map[string]bool, len(c.Tables))
	for i := range c.Tables {
		t := &c.Tables[i]
		if t.Name == "" {
			return fmt.Errorf("manifest: table %d has no name", i)
		}
		if seen[t.Name] {
			return fmt.Errorf("manifest: duplicate table name %q", t.Name)
		}
		seen[t.Name] = true
		if t.FileName == "" {
			return fmt.Errorf("manifest: table %q has no file_name", t.Name)
		}
		if len(t.KeyColumns) == 0 {
			return fmt.Errorf("manifest: table %q has no key_columns", t.Name)
		}
		if len([]rune(t.Delimiter)) > 1 {
			return fmt.Errorf("manifest: table %q: delimiter must be a single character", t.Name)
		}
		switch t.ScanOrder {
		case "", "reverse", "forward":
		default:
			return fmt.Errorf("manifest: table %q: scan_order must be \"reverse\" or \"forward\"", t.Name)
		}
	}
	return nil
}

// DelimiterRune returns the table's delimiter as a rune, ',' by default.
func (t *TableConfig) DelimiterRune() rune {
	if t.Delimiter == "" {
		return ','
	}
	return []rune(t.Delimiter)[0]
}
