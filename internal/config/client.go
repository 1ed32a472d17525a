package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Client defaults match the development server and the organization the
// browser client ships with.
const (
	DefaultEndpoint     = "http://127.0.0.1:8000/graphql/"
	DefaultOrganization = "test-org"
)

// ClientConfig is the profile used by the minipm client commands.
type ClientConfig struct {
	Endpoint     string        `mapstructure:"endpoint"`
	Organization string        `mapstructure:"organization"`
	Timeout      time.Duration `mapstructure:"timeout"`
	// Author is the default comment author.
	Author string `mapstructure:"author"`
}

// DefaultClientConfigPath returns ~/.minipm/client.yaml.
func DefaultClientConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".minipm", "client.yaml")
}

// LoadClient reads the client profile at path (optional) and layers
// MINIPM_* environment variables on top.
func LoadClient(path string) (*ClientConfig, error) {
	v := viper.New()
	v.SetDefault("endpoint", DefaultEndpoint)
	v.SetDefault("organization", DefaultOrganization)
	v.SetDefault("timeout", "15s")
	v.SetDefault("author", os.Getenv("USER"))

	v.SetEnvPrefix("MINIPM")
	v.AutomaticEnv()
	if err := v.BindEnv("organization", "MINIPM_ORG", "MINIPM_ORGANIZATION"); err != nil {
		return nil, err
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read client config: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat client config: %w", err)
		}
	}

	cfg := &ClientConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse client config: %w", err)
	}
	return cfg, nil
}
