// Package config loads and persists the YAML service configuration.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file used when no -config flag is given
const DefaultPath = "gridcal.yaml"

// Config is the top-level application configuration
type Config struct {
	// Listen is the HTTP listen address
	Listen string `yaml:"listen"`

	// DataFile is the path of the JSON event store
	DataFile string `yaml:"data_file"`

	// AuthFile is the path of the Basic Auth secret file. Empty means
	// the AUTH_FILE env var or auth.secret next to the binary.
	AuthFile string `yaml:"auth_file"`

	// Calendars are the named calendars created on first run
	Calendars []string `yaml:"calendars"`

	// ImportWindowMonths bounds how far ahead ICS imports are expanded
	ImportWindowMonths int `yaml:"import_window_months"`
}

// Default returns an in-memory default configuration
func Default() *Config {
	return &Config{
		Listen:             ":8080",
		DataFile:           "events.json",
		AuthFile:           "",
		Calendars:          []string{"personal", "work", "birthdays"},
		ImportWindowMonths: 12,
	}
}

// Normalize fills in missing or zero values so partially-filled configs
// still behave correctly
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.DataFile == "" {
		c.DataFile = "events.json"
	}
	if c.Calendars == nil {
		c.Calendars = []string{"personal", "work", "birthdays"}
	}
	if c.ImportWindowMonths <= 0 {
		c.ImportWindowMonths = 12
	}
}

// Load reads the YAML config at path, creating a default file on first run
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes cfg to path atomically with 0600 permissions
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Write to a temp file in the same directory, then rename over the target
	tmp, err := os.CreateTemp(dir, ".gridcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
