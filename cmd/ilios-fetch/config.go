package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileConfig holds settings loadable from a YAML configuration file.
// Command-line flags override file values.
type FileConfig struct {
	// BaseURL is the API root, e.g. https://ilios.example.edu/api/v3.
	BaseURL string `yaml:"base_url"`

	// Token is the JWT to authorize requests with.
	Token string `yaml:"token"`

	// TokenFile names a file whose contents supply the token instead.
	TokenFile string `yaml:"token_file"`

	// BatchSize is the page size for list and lookup calls.
	BatchSize int `yaml:"batch_size"`
}

// LoadConfig loads configuration from path, or, when path is empty,
// from the first of .ilios-fetch.yaml, .ilios-fetch.yml, or
// ~/.ilios/config.yaml that exists. Missing default files are not an
// error.
func LoadConfig(path string) (*FileConfig, error) {
	cfg := &FileConfig{}

	if path != "" {
		if err := loadConfigFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		return cfg, nil
	}

	defaultPaths := []string{
		".ilios-fetch.yaml",
		".ilios-fetch.yml",
		filepath.Join(os.Getenv("HOME"), ".ilios", "config.yaml"),
	}
	for _, p := range defaultPaths {
		if _, err := os.Stat(p); err == nil {
			if err := loadConfigFile(p, cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from %s: %w", p, err)
			}
			break
		}
	}

	return cfg, nil
}

func loadConfigFile(path string, cfg *FileConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// ResolveToken returns the token to use: an inline token wins over a
// token file.
func (c *FileConfig) ResolveToken() (string, error) {
	if c.Token != "" {
		return c.Token, nil
	}
	if c.TokenFile != "" {
		data, err := os.ReadFile(c.TokenFile)
		if err != nil {
			return "", fmt.Errorf("read token file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return "", fmt.Errorf("no token configured (set token or token_file)")
}
