package supervisor

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Config is the key-value document named by the CLI's single positional
// argument. Field names match the external contract exactly.
type Config struct {
	DatabaseDirectory          string `yaml:"databaseDirectory"`
	CheckpointInterval         int    `yaml:"checkpointInterval"`
	CheckpointMaxDirectorySize int64  `yaml:"checkpointMaxDirectorySize"`
	CheckpointMinFiles         int    `yaml:"checkpointMinFiles"`
	CheckpointAtShutdown       bool   `yaml:"checkpointAtShutdown"`
}

// DefaultConfig returns the documented defaults, before any config file is
// applied over them.
func DefaultConfig() Config {
	return Config{
		DatabaseDirectory:    "./",
		CheckpointInterval:   600,
		CheckpointMinFiles:   0,
		CheckpointAtShutdown: true,
	}
}

// rawConfig mirrors Config with every field a pointer, so the decoder can
// tell "key absent from the document" (leave the default alone) apart from
// "key present with its zero value" (e.g. checkpointAtShutdown: false,
// which must override the true default).
type rawConfig struct {
	DatabaseDirectory          *string `yaml:"databaseDirectory"`
	CheckpointInterval         *int    `yaml:"checkpointInterval"`
	CheckpointMaxDirectorySize *int64  `yaml:"checkpointMaxDirectorySize"`
	CheckpointMinFiles         *int    `yaml:"checkpointMinFiles"`
	CheckpointAtShutdown       *bool   `yaml:"checkpointAtShutdown"`
}

// LoadConfig reads and parses the YAML document at path over top of
// DefaultConfig, resolving DatabaseDirectory against the config file's own
// directory when it is relative.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, NewBootstrapError("read config file", err)
	}
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, NewBootstrapError("parse config file", err)
	}

	cfg := DefaultConfig()
	if raw.DatabaseDirectory != nil {
		cfg.DatabaseDirectory = *raw.DatabaseDirectory
	}
	if raw.CheckpointInterval != nil {
		cfg.CheckpointInterval = *raw.CheckpointInterval
	}
	if raw.CheckpointMaxDirectorySize != nil {
		cfg.CheckpointMaxDirectorySize = *raw.CheckpointMaxDirectorySize
	}
	if raw.CheckpointMinFiles != nil {
		cfg.CheckpointMinFiles = *raw.CheckpointMinFiles
	}
	if raw.CheckpointAtShutdown != nil {
		cfg.CheckpointAtShutdown = *raw.CheckpointAtShutdown
	}

	if !filepath.IsAbs(cfg.DatabaseDirectory) {
		cfg.DatabaseDirectory = filepath.Join(filepath.Dir(path), cfg.DatabaseDirectory)
	}
	return cfg, nil
}
