package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(body), 0o600))
	}
	return fsys
}

func Test_parseFile_SourcesAndPrecedence(t *testing.T) {
	fsys := memFS(t, map[string]string{
		"/etc/folio/cfg.json": `{
			"database_path": "json.db",
			"default_backend_url": "https://example.com/exec",
			"request_timeout": "3s",
			"log_json": true,
			"stale_time": 60000000000
		}`,
		"/etc/folio/cfg.yml":   "database_path: yaml.db\nlog_level: warn\nrefetch_interval: 30m\n",
		"/etc/folio/bad.json":  `{ this is not valid json`,
		"/etc/folio/bad.yaml":  "stale_time: soon\n",
		"/etc/folio/CAPS.YAML": "log_level: error\n",
	})

	t.Run("json", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseFile(fsys, cfg, []string{"-config", "/etc/folio/cfg.json"}))

		assert.Equal(t, "json.db", cfg.DatabasePath)
		assert.Equal(t, "https://example.com/exec", cfg.DefaultBackendURL)
		assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
		assert.True(t, cfg.LogJSON)
		assert.Equal(t, time.Minute, cfg.StaleTime)
		assert.Equal(t, "info", cfg.LogLevel, "absent keys keep their value")
		assert.Equal(t, 10*time.Minute, cfg.RefetchInterval)
	})

	t.Run("yaml", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseFile(fsys, cfg, []string{"-c", "/etc/folio/cfg.yml"}))

		assert.Equal(t, "yaml.db", cfg.DatabasePath)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, 30*time.Minute, cfg.RefetchInterval)
	})

	t.Run("extension match ignores case", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, parseFile(fsys, cfg, []string{"-c=/etc/folio/CAPS.YAML"}))
		assert.Equal(t, "error", cfg.LogLevel)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		cfg := &Config{DatabasePath: "keep.db"}
		require.NoError(t, parseFile(fsys, cfg, []string{"-d", "other.db"}))
		assert.Equal(t, "keep.db", cfg.DatabasePath)
	})

	t.Run("missing file", func(t *testing.T) {
		err := parseFile(fsys, &Config{}, []string{"-c", "/nope.json"})
		assert.ErrorContains(t, err, "read config file")
	})

	t.Run("invalid JSON", func(t *testing.T) {
		require.Error(t, parseFile(fsys, &Config{}, []string{"-config", "/etc/folio/bad.json"}))
	})

	t.Run("invalid duration in YAML", func(t *testing.T) {
		require.Error(t, parseFile(fsys, &Config{}, []string{"-config", "/etc/folio/bad.yaml"}))
	})
}
