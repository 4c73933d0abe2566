// Package config loads and validates the TOML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/eivindw/timevault/internal/osutil"
)

const (
	// AppName is the application name used for the config directory.
	AppName = "timevault"
	// ConfigFile is the name of the TOML configuration file.
	ConfigFile = "config.toml"
)

// Config represents the application configuration.
type Config struct {
	// VaultDir is the directory holding the period documents. Empty
	// means the default directory under the user's home.
	VaultDir string `toml:"vault_dir"`
	// WeekStartDay defines which day starts the week (monday or sunday)
	WeekStartDay string `toml:"week_start_day"`
	// Clients lists known client names, offered for completion
	Clients []string `toml:"clients"`
	// Projects lists known project names, offered for completion
	Projects []string `toml:"projects"`
	// Activities lists known activity names, offered for completion
	Activities []string `toml:"activities"`
}

// DefaultConfig returns a Config with sensible defaults.
// - vault_dir: "" (default directory under the user's home)
// - week_start_day: "monday" (ISO 8601 standard)
// - clients/projects/activities: empty catalogs
func DefaultConfig() Config {
	return Config{
		VaultDir:     "",
		WeekStartDay: "monday",
	}
}

// Normalize cleans up config values in place: trims whitespace and
// lowercases week_start_day so "Monday" and "monday" are equivalent.
func (c *Config) Normalize() {
	c.VaultDir = strings.TrimSpace(c.VaultDir)
	c.WeekStartDay = strings.ToLower(strings.TrimSpace(c.WeekStartDay))
}

// Validate checks that the config values are usable. Call Normalize
// first so case and whitespace variants pass.
func (c *Config) Validate() error {
	if c.WeekStartDay != "monday" && c.WeekStartDay != "sunday" {
		return fmt.Errorf("invalid week_start_day: %q (must be \"monday\" or \"sunday\")", c.WeekStartDay)
	}
	return nil
}

// HasClient reports whether name is in the client catalog
// (case-insensitive). An empty catalog knows no clients.
func (c *Config) HasClient(name string) bool {
	return containsFold(c.Clients, name)
}

// HasProject reports whether name is in the project catalog
// (case-insensitive).
func (c *Config) HasProject(name string) bool {
	return containsFold(c.Projects, name)
}

// HasActivity reports whether name is in the activity catalog
// (case-insensitive).
func (c *Config) HasActivity(name string) bool {
	return containsFold(c.Activities, name)
}

func containsFold(items []string, name string) bool {
	for _, item := range items {
		if strings.EqualFold(item, name) {
			return true
		}
	}
	return false
}

// GetConfigPath returns the path to the config file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetConfigPath() (string, error) {
	configDir, err := osutil.Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)

	if err := osutil.Provider.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, ConfigFile), nil
}

// Load reads and validates the config file at path. Fields missing from
// the file keep their default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return Config{}, err
		}
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config file at path, or returns the default
// config when the file does not exist. Parse and validation errors in
// an existing file are still reported, never silently defaulted.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	return Load(path)
}

// GenerateSampleConfig returns a commented-out sample config file.
func GenerateSampleConfig() string {
	return `# timevault configuration file
#
# All settings are optional. Uncomment a line to override the default.

# Directory holding the monthly documents. Defaults to ~/timevault.
# vault_dir = "/home/user/notes/time"

# Which day starts the week: "monday" or "sunday". Defaults to "monday".
# week_start_day = "monday"

# Catalogs offered for shell completion. Never enforced on entries.
# clients = ["acme", "initech"]
# projects = ["website", "backend"]
# activities = ["development", "meetings"]
`
}
