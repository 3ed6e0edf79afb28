package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "binctl", "config.yml")
}

func defaultHome() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".binctl")
}

// Load reads the config from disk (or env). The config file is optional;
// all settings have working defaults, so a fresh machine needs nothing
// beyond binctl itself.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("home", defaultHome())
	v.SetDefault("github.api_base", "https://api.github.com")
	v.SetDefault("github.token_env", "GITHUB_TOKEN")

	v.SetEnvPrefix("BINCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := os.Getenv("BINCTL_CONFIG")
	if configPath == "" {
		configPath = DefaultPath()
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		// No config file is fine.
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Resolve token from env (never stored in file).
	tokenEnv := cfg.GitHub.TokenEnv
	if tokenEnv == "" {
		tokenEnv = "GITHUB_TOKEN"
	}
	cfg.GitHub.Token = os.Getenv(tokenEnv)
	if cfg.GitHub.Token == "" {
		cfg.GitHub.Token = os.Getenv("BINCTL_GITHUB_TOKEN")
	}

	cfg.Home = ExpandHome(cfg.Home)

	return &cfg, nil
}

// EnsureDirs creates the home, bin and cache directories if missing.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.Home, c.BinDir(), c.CacheDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
