package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/folioadmin/folio/internal/flagx"
	"github.com/folioadmin/folio/internal/timex"
)

// FileConfig is the DTO for config files. Pointer fields tell "absent" from
// "zero", so a file only overrides what it names.
type FileConfig struct {
	DatabasePath      *string         `json:"database_path" yaml:"database_path"`
	DefaultBackendURL *string         `json:"default_backend_url" yaml:"default_backend_url"`
	RequestTimeout    *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogLevel          *string         `json:"log_level" yaml:"log_level"`
	LogJSON           *bool           `json:"log_json" yaml:"log_json"`
	StaleTime         *timex.Duration `json:"stale_time" yaml:"stale_time"`
	RefetchInterval   *timex.Duration `json:"refetch_interval" yaml:"refetch_interval"`
}

// parseFile overlays cfg with the file named by -c/-config, if any, read
// from fsys.
func parseFile(fsys afero.Fs, cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc FileConfig) apply(cfg *Config) {
	if fc.DatabasePath != nil {
		cfg.DatabasePath = *fc.DatabasePath
	}
	if fc.DefaultBackendURL != nil {
		cfg.DefaultBackendURL = *fc.DefaultBackendURL
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogJSON != nil {
		cfg.LogJSON = *fc.LogJSON
	}
	if fc.StaleTime != nil {
		cfg.StaleTime = fc.StaleTime.Duration
	}
	if fc.RefetchInterval != nil {
		cfg.RefetchInterval = fc.RefetchInterval.Duration
	}
}
