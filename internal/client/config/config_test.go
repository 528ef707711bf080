package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "folio.db", c.DatabasePath)
	assert.Empty(t, c.DefaultBackendURL)
	assert.Equal(t, 20*time.Second, c.RequestTimeout)
	assert.Equal(t, "info", c.LogLevel)
	assert.False(t, c.LogJSON)
	assert.Equal(t, 5*time.Minute, c.StaleTime)
	assert.Equal(t, 10*time.Minute, c.RefetchInterval)
}

func TestLoad_NoArgsGivesDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, cfg)
}

func TestLoadFS_FlagsOverrideFile(t *testing.T) {
	fsys := memFS(t, map[string]string{
		"cfg.json": `{"database_path":"file.db","log_level":"debug","request_timeout":"7s"}`,
	})

	cfg, err := LoadFS(fsys, []string{"-c", "cfg.json", "-d", "flag.db", "-x", "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "flag.db", cfg.DatabasePath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load([]string{"-config", "/does/not/exist.json"})
	assert.ErrorContains(t, err, "read config file")

	_, err = Load([]string{"-t", "abc"})
	assert.ErrorContains(t, err, "parse flags")
}
