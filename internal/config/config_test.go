package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvConfig, EnvStore, EnvDB, EnvLogLevel, EnvLogFormat, EnvLanguage, EnvExpiringSoonDays} {
		t.Setenv(k, "")
	}
	// Keep the default location out of the user's real config dir.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
store:
  backend: FILE
  path: /tmp/prep.json
  history_limit: 5
log:
  level: debug
  format: json
language: fi
alerts:
  expiring_soon_days: 14
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, BackendFile, cfg.Store.Backend)
	require.Equal(t, "/tmp/prep.json", cfg.Store.Path)
	require.Equal(t, 5, cfg.Store.HistoryLimit)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, "fi", cfg.Language)
	require.Equal(t, 14, cfg.Alerts.ExpiringSoonDays)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "store:\n  backend: file\nlanguage: fi\n")
	t.Setenv(EnvConfig, path)
	t.Setenv(EnvStore, "sqlite")
	t.Setenv(EnvDB, "/var/lib/prep.db")
	t.Setenv(EnvLanguage, "EN")
	t.Setenv(EnvExpiringSoonDays, "3")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, BackendSQLite, cfg.Store.Backend)
	require.Equal(t, "/var/lib/prep.db", cfg.Store.Path)
	require.Equal(t, "en", cfg.Language)
	require.Equal(t, 3, cfg.Alerts.ExpiringSoonDays)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "store: ["))
	require.Error(t, err)

	for _, body := range []string{
		"store:\n  backend: postgres\n",
		"log:\n  level: loud\n",
		"log:\n  format: xml\n",
		"language: de\n",
		"alerts:\n  expiring_soon_days: 0\n",
	} {
		_, err := Load(writeConfig(t, body))
		require.Error(t, err, body)
	}

	t.Setenv(EnvExpiringSoonDays, "soon")
	_, err = Load("")
	require.Error(t, err)
}
