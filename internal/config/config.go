package config

import (
	"os"
	"path/filepath"
	"strings"

	"storebrowse/internal/errors"

	"gopkg.in/yaml.v3"
)

// Filter modes.
const (
	FilterSubstring = "substring"
	FilterGlob      = "glob"
	FilterFuzzy     = "fuzzy"
)

// Filter targets.
const (
	MatchPath = "path"
	MatchName = "name"
)

// DefaultRoot is the directory browsed when nothing else is configured.
const DefaultRoot = "~/.password-store"

// Config represents the application configuration structure.
type Config struct {
	Root   string `yaml:"root"` // Initial directory to browse
	Filter struct {
		Mode  string `yaml:"mode"`  // substring, glob or fuzzy
		Match string `yaml:"match"` // path or name
	} `yaml:"filter"`
	Watch  bool `yaml:"watch"` // Mark the listing stale when the directory changes
	Debug  bool `yaml:"debug"` // Enable debug logging
	Window struct {
		Title  string  `yaml:"title"`
		Width  float32 `yaml:"width"`
		Height float32 `yaml:"height"`
	} `yaml:"window"`
}

// DefaultPath returns ~/.config/storebrowse/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "storebrowse", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.FromFS("error reading config file", path, err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	if tempCfg.Root != "" {
		cfg.Root = tempCfg.Root
	}
	if tempCfg.Filter.Mode != "" {
		cfg.Filter.Mode = tempCfg.Filter.Mode
	}
	if tempCfg.Filter.Match != "" {
		cfg.Filter.Match = tempCfg.Filter.Match
	}
	cfg.Watch = tempCfg.Watch
	cfg.Debug = tempCfg.Debug
	if tempCfg.Window.Title != "" {
		cfg.Window.Title = tempCfg.Window.Title
	}
	if tempCfg.Window.Width != 0 {
		cfg.Window.Width = tempCfg.Window.Width
	}
	if tempCfg.Window.Height != 0 {
		cfg.Window.Height = tempCfg.Window.Height
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Root = DefaultRoot
	cfg.Filter.Mode = FilterSubstring
	cfg.Filter.Match = MatchPath
	cfg.Window.Title = "storebrowse"
	cfg.Window.Width = 600
	cfg.Window.Height = 500
	return cfg
}

// New returns a configuration populated with defaults.
func New() *Config {
	return defaultConfig()
}

// Validate checks that every setting holds a known value.
// The root directory is not checked here; an unreadable root is reported by
// the listing itself so the window can still open.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}
	if strings.TrimSpace(c.Root) == "" {
		return errors.NewConfigError("root directory is required", "root", errors.InvalidConfig, nil)
	}
	switch c.Filter.Mode {
	case FilterSubstring, FilterGlob, FilterFuzzy:
	default:
		return errors.NewConfigError("invalid filter mode", "filter.mode", errors.InvalidConfig,
			errors.Newf("%q is not one of substring, glob, fuzzy", c.Filter.Mode))
	}
	switch c.Filter.Match {
	case MatchPath, MatchName:
	default:
		return errors.NewConfigError("invalid filter target", "filter.match", errors.InvalidConfig,
			errors.Newf("%q is not one of path, name", c.Filter.Match))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.NewConfigError("window size must be positive", "window", errors.InvalidConfig, nil)
	}
	return nil
}

// RootPath returns Root with a leading ~ expanded and made absolute.
func (c *Config) RootPath() (string, error) {
	abs, err := filepath.Abs(ExpandUser(c.Root))
	if err != nil {
		return "", errors.NewFileError("invalid root path", c.Root, errors.InvalidPath, err)
	}
	return abs, nil
}

// ExpandUser expands a leading ~ to the current user's home directory.
func ExpandUser(path string) string {
	if path == "" || !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
