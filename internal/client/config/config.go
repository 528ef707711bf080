package config

import (
	"os"
	"time"

	"github.com/spf13/afero"
)

// Config holds runtime settings for the folio admin CLI.
//
// Fields:
//   - DatabasePath: SQLite file backing the local store.
//   - DefaultBackendURL: endpoint written into a fresh admin configuration.
//   - RequestTimeout: per request limit for backend calls.
//   - LogLevel, LogJSON: logger setup.
//   - StaleTime, RefetchInterval: content cache timing.
type Config struct {
	DatabasePath      string
	DefaultBackendURL string
	RequestTimeout    time.Duration
	LogLevel          string
	LogJSON           bool
	StaleTime         time.Duration
	RefetchInterval   time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "folio.db"
	c.DefaultBackendURL = ""
	c.RequestTimeout = 20 * time.Second
	c.LogLevel = "info"
	c.LogJSON = false
	c.StaleTime = 5 * time.Minute
	c.RefetchInterval = 10 * time.Minute
}

// LoadConfig builds a Config from defaults, the optional config file and the
// flags in os.Args, later sources taking precedence.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load is LoadConfig over an explicit argument list.
func Load(args []string) (*Config, error) {
	return LoadFS(afero.NewOsFs(), args)
}

// LoadFS is Load with the config file read from fsys.
func LoadFS(fsys afero.Fs, args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(fsys, cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
