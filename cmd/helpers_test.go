package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// testEnv wires the command package to a temp vault for one test.
type testEnv struct {
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	exitCode int
	exited   bool
	vaultDir string
}

// setupTest points deps at a temp config and vault and registers
// cleanup. Commands run against it never touch the real home directory.
func setupTest(t *testing.T) *testEnv {
	t.Helper()

	tmpDir := t.TempDir()
	vaultDir := filepath.Join(tmpDir, "vault")
	configPath := filepath.Join(tmpDir, "config.toml")

	configContent := "vault_dir = \"" + vaultDir + "\"\n"
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	env := &testEnv{
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		vaultDir: vaultDir,
	}

	SetDeps(&Deps{
		Stdout: env.stdout,
		Stderr: env.stderr,
		Stdin:  bytes.NewReader(nil),
		Exit: func(code int) {
			env.exitCode = code
			env.exited = true
		},
		ConfigPath: func() (string, error) {
			return configPath, nil
		},
	})
	t.Cleanup(ResetDeps)

	return env
}

// seedDocument writes a month document directly into the test vault.
func (env *testEnv) seedDocument(t *testing.T, period, text string) {
	t.Helper()
	if err := os.MkdirAll(env.vaultDir, 0755); err != nil {
		t.Fatalf("Failed to create vault dir: %v", err)
	}
	path := filepath.Join(env.vaultDir, period+".md")
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatalf("Failed to seed document: %v", err)
	}
}

// readDocument reads a month document from the test vault.
func (env *testEnv) readDocument(t *testing.T, period string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(env.vaultDir, period+".md"))
	if err != nil {
		t.Fatalf("Failed to read document: %v", err)
	}
	return string(data)
}

// resetCommandFlags clears flag values and Changed markers so tests can
// run the same command repeatedly with different flags.
func resetCommandFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}
