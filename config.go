package enso

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config holds client configuration loaded from a YAML file or the
// environment.
type Config struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	ChainID int    `yaml:"chain_id"`
}

var envPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// expandEnv substitutes ${VAR} references with environment values,
// leaving unknown references untouched.
func expandEnv(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envPattern.FindStringSubmatch(match)[1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// LoadConfig reads a YAML config file. ${VAR} references in string
// fields are expanded from the environment, and an unset api_key falls
// back to ENSO_API_KEY.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("enso: reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("enso: parsing config: %w", err)
	}
	cfg.APIKey = expandEnv(cfg.APIKey)
	cfg.BaseURL = expandEnv(cfg.BaseURL)

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("ENSO_API_KEY")
	}
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &cfg, nil
}

// ConfigFromEnv builds a Config from ENSO_API_KEY and ENSO_BASE_URL.
func ConfigFromEnv() (*Config, error) {
	cfg := &Config{
		APIKey:  os.Getenv("ENSO_API_KEY"),
		BaseURL: os.Getenv("ENSO_BASE_URL"),
	}
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return cfg, nil
}

// NewClient creates a Client from the config. Extra options are applied
// after the config's own settings.
func (cfg *Config) NewClient(opts ...ClientOption) *Client {
	all := make([]ClientOption, 0, len(opts)+1)
	if cfg.BaseURL != "" {
		all = append(all, WithBaseURL(cfg.BaseURL))
	}
	all = append(all, opts...)
	return New(cfg.APIKey, V1, all...)
}
