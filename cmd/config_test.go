package cmd

import (
	"os"
	"strings"
	"testing"
)

func TestShowConfig_WithFile(t *testing.T) {
	env := setupTest(t)

	showConfig()

	if env.exited {
		t.Fatalf("showConfig exited, stderr: %s", env.stderr.String())
	}

	output := env.stdout.String()
	for _, expected := range []string{
		"Configuration for timevault",
		"File exists",
		"Vault Directory:",
		"Week Start Day:  monday",
		"Clients:         (none)",
	} {
		if !strings.Contains(output, expected) {
			t.Errorf("Output missing %q, got:\n%s", expected, output)
		}
	}
}

func TestShowConfig_NoFile(t *testing.T) {
	env := setupTest(t)

	// Point at a config path that does not exist.
	configPath := env.vaultDir + "/missing/config.toml"
	deps.ConfigPath = func() (string, error) { return configPath, nil }

	showConfig()

	if env.exited {
		t.Fatalf("showConfig exited, stderr: %s", env.stderr.String())
	}

	output := env.stdout.String()
	if !strings.Contains(output, "No config file (using defaults)") {
		t.Errorf("Output missing default status, got:\n%s", output)
	}
	if !strings.Contains(output, "timevault config init") {
		t.Errorf("Output missing init tip, got:\n%s", output)
	}
}

func TestShowConfig_InvalidFile(t *testing.T) {
	env := setupTest(t)

	configPath, _ := deps.ConfigPath()
	if err := os.WriteFile(configPath, []byte(`week_start_day = "someday"`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	showConfig()

	if !env.exited || env.exitCode != 1 {
		t.Error("showConfig should exit 1 for an invalid config file")
	}
	if !strings.Contains(env.stderr.String(), "Failed to load configuration") {
		t.Errorf("Stderr missing message, got: %s", env.stderr.String())
	}
}

func TestInitConfig_WritesSample(t *testing.T) {
	env := setupTest(t)

	configPath := env.vaultDir + "-config.toml"
	deps.ConfigPath = func() (string, error) { return configPath, nil }

	initConfig()

	if env.exited {
		t.Fatalf("initConfig exited, stderr: %s", env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "Wrote sample config") {
		t.Errorf("Output missing confirmation, got: %s", env.stdout.String())
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Sample config not written: %v", err)
	}
	if !strings.Contains(string(data), "# timevault configuration file") {
		t.Errorf("Sample config missing header, got: %s", string(data))
	}
}

func TestInitConfig_RefusesOverwrite(t *testing.T) {
	env := setupTest(t)

	// setupTest already wrote a config file at the deps path.
	initConfig()

	if !env.exited || env.exitCode != 1 {
		t.Error("initConfig should exit 1 when the config file exists")
	}
	if !strings.Contains(env.stderr.String(), "already exists") {
		t.Errorf("Stderr missing message, got: %s", env.stderr.String())
	}
}
