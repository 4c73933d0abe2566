package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/eivindw/timevault/internal/config"
	"github.com/eivindw/timevault/internal/store"
	"github.com/eivindw/timevault/internal/vault"
)

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps struct {
	Stdout     io.Writer
	Stderr     io.Writer
	Stdin      io.Reader
	Exit       func(code int)
	ConfigPath func() (string, error)
}

// DefaultDeps returns the default production dependencies.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Stdin:      os.Stdin,
		Exit:       os.Exit,
		ConfigPath: config.GetConfigPath,
	}
}

// deps is the global dependencies instance used by commands.
// In production, this is DefaultDeps(). Tests can replace it.
var deps = DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = DefaultDeps()
}

// openStore loads the configuration, resolves the vault directory and
// returns a store backed by it. The vault from the tuple is handed to
// commands that need backups or watching on top of the store surface.
func openStore() (*store.Store, *vault.Vault, config.Config, error) {
	configPath, err := deps.ConfigPath()
	if err != nil {
		return nil, nil, config.Config{}, fmt.Errorf("failed to determine config location: %w", err)
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, nil, config.Config{}, err
	}

	dir := cfg.VaultDir
	if dir == "" {
		dir, err = vault.DefaultDir()
		if err != nil {
			return nil, nil, config.Config{}, fmt.Errorf("failed to determine vault location: %w", err)
		}
	}

	v := vault.New(dir)
	return store.New(v), v, cfg, nil
}
