package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the CLI defaults that flags fall back to when not given on
// the command line. It replaces any notion of baked-in sample input paths:
// every default is explicit, documented, and overridable.
type Config struct {
	// Graph is the default graph file path used when --graph is omitted.
	Graph string `toml:"graph"`

	// Weights is the default weights CSV path used when --weights is omitted.
	Weights string `toml:"weights"`

	// ImageDir is the default output directory for rendered images.
	// Empty means no image is written unless --image is given.
	ImageDir string `toml:"image_dir"`

	// Format is the default image format: "svg" or "png". Defaults to "png".
	Format string `toml:"format"`

	// AllowMissingWeights enables the default-zero policy: tasks without a
	// weight entry are scheduled with duration 0 instead of failing.
	AllowMissingWeights bool `toml:"allow_missing_weights"`

	// CacheDir overrides the render cache location.
	// Defaults to <user cache dir>/critpath.
	CacheDir string `toml:"cache_dir"`

	// NoCache disables the render cache entirely.
	NoCache bool `toml:"no_cache"`
}

// defaultConfig returns the documented zero-configuration defaults.
func defaultConfig() Config {
	return Config{
		Format: "png",
	}
}

// defaultConfigPath returns the conventional config file location,
// <user config dir>/critpath/config.toml, or "" if it cannot be determined.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "critpath", "config.toml")
}

// loadConfig reads a TOML config file. When path is empty the conventional
// location is tried, and a missing file there is not an error - the
// documented defaults apply. An explicitly given path must exist.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return defaultConfig(), nil
		}
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// cacheDir resolves the effective cache directory for the config.
func (c Config) cacheDir() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	return filepath.Join(dir, "critpath"), nil
}
