package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestTokenSetStoresSecretFile(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "token", "set", "--bot", "groups", "--value", "123:abc")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Stored groups bot token")

	data, err := os.ReadFile(filepath.Join(home, ".config", "opbots", "secrets", "telegram", "groups"))
	require.NoError(t, err)
	assert.Equal(t, "123:abc", string(data))
}

func TestTokenSetReadsStdin(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLIWithInput(t, home, "456:def\nignored\n", "token", "set", "--bot", "CATALOG")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(home, ".config", "opbots", "secrets", "telegram", "catalog"))
	require.NoError(t, err)
	assert.Equal(t, "456:def", string(data))
}

func TestTokenSetRejectsUnknownBot(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "token", "set", "--bot", "music", "--value", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown bot")
}

func TestTokenSetRequiresBotFlag(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "token", "set", "--value", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"bot\" not set")
}

func TestTokenRemoveDeletesSecret(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "token", "set", "--bot", "groups", "--value", "123:abc")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "token", "rm", "--bot", "groups")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Removed groups bot token")

	_, err = os.Stat(filepath.Join(home, ".config", "opbots", "secrets", "telegram", "groups"))
	assert.True(t, os.IsNotExist(err))
}

func TestGroupsServeRequiresOperator(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "groups", "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram.operator_id is required")
}

func TestGroupsServeRequiresToken(t *testing.T) {
	t.Setenv("OPBOTS_TELEGRAM_OPERATOR_ID", "42")

	_, _, err := executeCLI(t, t.TempDir(), "groups", "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opbots token set --bot groups")
}

func TestCatalogServeRequiresAdmin(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "catalog", "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog.admin_id is required")
}

func TestGroupsHistoryEmpty(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "groups", "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No runs recorded yet.")
}

func TestGroupsHistoryShowsNewestFirst(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeHistoryFixture(home))

	stdout, _, err := executeCLI(t, home, "groups", "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "runs: 2")
	assert.Contains(t, stdout, "Promo (completed)")
	assert.Contains(t, stdout, "Promo #2: rate limited")
	assert.Less(t, strings.Index(stdout, "Launch (stopped)"), strings.Index(stdout, "Promo (completed)"))
}

func TestGroupsHistoryJSONHonorsLimit(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeHistoryFixture(home))

	stdout, _, err := executeCLI(t, home, "groups", "history", "--json", "--limit", "1")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Launch", records[0]["Name"])
}

func TestCatalogListRendersFiles(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeCatalogFixture(home))

	stdout, _, err := executeCLI(t, home, "catalog", "list", "--bot-username", "txtcloud_bot")
	require.NoError(t, err)
	assert.Contains(t, stdout, "files: 1")
	assert.Contains(t, stdout, "Combo list (abc123)")
	assert.Contains(t, stdout, "https://t.me/txtcloud_bot?start=dl_abc123")
}

func TestCatalogListJSONOutput(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeCatalogFixture(home))

	stdout, _, err := executeCLI(t, home, "catalog", "list", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"ID\": \"abc123\"")
}

func TestExplicitConfigFileMustExist(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "--config", filepath.Join(home, "missing.toml"), "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestConfigFileFeedsCatalogPath(t *testing.T) {
	home := t.TempDir()
	catalogPath := filepath.Join(home, "elsewhere", "catalog.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(catalogPath), 0o700))
	require.NoError(t, os.WriteFile(catalogPath, []byte(catalogFixture), 0o600))

	configPath := filepath.Join(home, "opbots.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(fmt.Sprintf("[catalog]\npath = %q\n", catalogPath)), 0o600))

	stdout, _, err := executeCLI(t, home, "--config", configPath, "catalog", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Combo list")
}

func TestInvalidLogFormatFails(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "--log-format", "xml", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown logging.format")
}

func TestGroupsPairReportsLinkedGateway(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/session", r.URL.Path)
		assert.Equal(t, "Bearer gw-key", r.Header.Get("Authorization"))
		_, _ = fmt.Fprint(w, `{"connected":true}`)
	}))
	defer gateway.Close()

	t.Setenv("OPBOTS_WHATSAPP_GATEWAY_URL", gateway.URL)
	t.Setenv("OPBOTS_WHATSAPP_API_KEY", "gw-key")

	stdout, _, err := executeCLI(t, t.TempDir(), "groups", "pair")
	require.NoError(t, err)
	assert.Contains(t, stdout, "WhatsApp is already linked.")
}

func TestGroupsPairPrintsQRUntilLinked(t *testing.T) {
	var polls atomic.Int32
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if polls.Add(1) < 3 {
			_, _ = fmt.Fprint(w, `{"connected":false,"qr":"2@pairing-code"}`)
			return
		}
		_, _ = fmt.Fprint(w, `{"connected":true}`)
	}))
	defer gateway.Close()

	t.Setenv("OPBOTS_WHATSAPP_GATEWAY_URL", gateway.URL)
	t.Setenv("OPBOTS_WHATSAPP_POLL_INTERVAL", "10ms")

	stdout, _, err := executeCLI(t, t.TempDir(), "groups", "pair", "--timeout", "5s")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Linked devices > Link a device")
	assert.Contains(t, stdout, "WhatsApp connected.")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIWithInput(t, home, "", args...)
}

func executeCLIWithInput(t *testing.T, home, input string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("OPBOTS_SECRETS_BACKEND", "file")

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetIn(strings.NewReader(input))
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

const catalogFixture = `version = 1
users = [7, 8]

[[files]]
id = "abc123"
name = "Combo list"
telegram_file_id = "BQAC-file"
uploader = "@alice"
created_at = "2026-03-01T12:00:00Z"
`

func writeCatalogFixture(home string) error {
	dir := filepath.Join(home, ".config", "opbots")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "catalog.toml"), []byte(catalogFixture), 0o600)
}

func writeHistoryFixture(home string) error {
	dir := filepath.Join(home, ".config", "opbots")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	history := `version = 1

[[runs]]
name = "Promo"
outcome = "completed"
total = 3
attempted = 3
succeeded = 2
started_at = "2026-02-10T09:00:00Z"
finished_at = "2026-02-10T09:00:12Z"

[[runs.failures]]
index = 2
label = "Promo #2"
error = "rate limited"

[[runs]]
name = "Launch"
outcome = "stopped"
total = 5
attempted = 2
succeeded = 2
started_at = "2026-02-11T09:00:00Z"
finished_at = "2026-02-11T09:00:06Z"
`

	return os.WriteFile(filepath.Join(dir, "history.toml"), []byte(history), 0o600)
}
