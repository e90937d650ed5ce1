package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	require.NoError(t, writeCatalogFixture(home))

	_, stderr, err := runOpbots(t, binaryPath, home,
		"token", "set",
		"--bot", "catalog",
		"--value", "123456:test-token",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	token, err := os.ReadFile(filepath.Join(home, ".config", "opbots", "secrets", "telegram", "catalog"))
	require.NoError(t, err)
	assert.Equal(t, "123456:test-token", string(token))

	stdout, stderr, err := runOpbots(t, binaryPath, home, "catalog", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Combo list (abc123)")

	stdout, stderr, err = runOpbots(t, binaryPath, home, "groups", "history")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "No runs recorded yet.")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "opbots-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/opbots")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build opbots binary: %s", string(output))
	return binaryPath
}

func runOpbots(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "OPBOTS_SECRETS_BACKEND=file")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeCatalogFixture(home string) error {
	configDir := filepath.Join(home, ".config", "opbots")
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return err
	}

	catalog := `version = 1
users = [7]

[[files]]
id = "abc123"
name = "Combo list"
telegram_file_id = "BQAC-file"
uploader = "@alice"
created_at = "2026-03-01T12:00:00Z"
`

	return os.WriteFile(filepath.Join(configDir, "catalog.toml"), []byte(catalog), 0o600)
}
