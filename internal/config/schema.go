package config

import "path/filepath"

// Config is the top-level binctl configuration. Everything lives under
// Home: installed binaries, the download cache, and the manifest that
// records what was installed.
type Config struct {
	Home   string       `mapstructure:"home"`
	GitHub GitHubConfig `mapstructure:"github"`
}

// GitHubConfig holds GitHub API connection settings.
type GitHubConfig struct {
	APIBase  string `mapstructure:"api_base"`
	TokenEnv string `mapstructure:"token_env"`
	Token    string `mapstructure:"-"` // resolved at runtime, never written
}

// BinDir is where installed executables land. Users put this on PATH.
func (c *Config) BinDir() string {
	return filepath.Join(c.Home, "bin")
}

// CacheDir holds downloaded archives while they are being processed.
func (c *Config) CacheDir() string {
	return filepath.Join(c.Home, "cache")
}

// ManifestPath is the YAML file tracking installed packages.
func (c *Config) ManifestPath() string {
	return filepath.Join(c.Home, "manifest.yaml")
}
