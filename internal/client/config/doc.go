// Package config loads the bootstrap configuration of the folio admin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path of the local SQLite store
//	-u string   backend URL used when no configuration is stored yet
//	-t int      backend request timeout (seconds)
//	-l string   log level (debug, info, warn, error)
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "5m" or integer
// nanoseconds:
//
//	{
//	  "database_path": "folio.db",
//	  "default_backend_url": "https://script.google.com/macros/s/.../exec",
//	  "request_timeout": "20s",
//	  "log_level": "info",
//	  "log_json": false,
//	  "stale_time": "5m",
//	  "refetch_interval": "10m"
//	}
//
// This is not the admin configuration record (API key, spreadsheet ids,
// endpoint); that one lives in the local store, see package settings.
package config
