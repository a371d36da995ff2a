package bot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m3rciful/ledgerbot/core/database"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "test-token"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, BackendJSON, cfg.Ledger.Backend)
	require.Equal(t, "data/ledger.json", cfg.Ledger.File)
	require.Equal(t, 5, cfg.Ledger.PageSize)
	require.Equal(t, 30, cfg.Ledger.SessionTTLMinutes)
	require.Equal(t, "@every 5m", cfg.Ledger.SweepSchedule)
	require.Equal(t, "longpoll", cfg.Core.Telegram.RunMode)
}

func TestLoadConfigSQLiteBackend(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "test-token"
ledger:
  backend: sqlite
database:
  path: data/ledger.db
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, database.DriverSQLite, cfg.Database.Driver)
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "test-token"
ledger:
  backend: redis
`)
	_, err := LoadConfig(path)
	require.ErrorContains(t, err, "ledger.backend")
}

func TestLoadConfigSQLiteRequiresPath(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "test-token"
ledger:
  backend: sqlite
`)
	_, err := LoadConfig(path)
	require.ErrorContains(t, err, "database.path")
}
