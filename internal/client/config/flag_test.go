package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	base := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		return c
	}

	tests := []struct {
		name     string
		args     []string
		expected func() *Config
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{"-d", "/tmp/f.db", "-u", "https://example.com/exec", "-t", "5", "-l", "debug"},
			expected: func() *Config {
				c := base()
				c.DatabasePath = "/tmp/f.db"
				c.DefaultBackendURL = "https://example.com/exec"
				c.RequestTimeout = 5 * time.Second
				c.LogLevel = "debug"
				return c
			},
		},
		{
			name:     "unknown flags are ignored",
			args:     []string{"-config", "x.json", "--verbose", "-l=warn"},
			expected: func() *Config { c := base(); c.LogLevel = "warn"; return c },
		},
		{
			name:     "no flags",
			args:     []string{},
			expected: base,
		},
		{name: "incorrect timeout", args: []string{"-t", "abc"}, wantErr: true},
		{name: "zero timeout", args: []string{"-t", "0"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected(), cfg))
		})
	}
}

func TestParseFlags_TimeoutOnlyOverriddenWhenGiven(t *testing.T) {
	cfg := &Config{RequestTimeout: 1500 * time.Millisecond}
	require.NoError(t, parseFlags(cfg, []string{"-d", "x.db"}))
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
}
