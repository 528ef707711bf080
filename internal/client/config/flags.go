package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/folioadmin/folio/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   local store path
//	-u string   default backend URL
//	-t int      request timeout in seconds
//	-l string   log level
//
// Only these flags are looked at (flagx.FilterArgs), so other components may
// define their own.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-u", "-t", "-l"})

	fs := flag.NewFlagSet("folio", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local store database")
	fs.StringVar(&cfg.DefaultBackendURL, "u", cfg.DefaultBackendURL, "backend URL used for a fresh configuration")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "backend request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	var err error
	fs.Visit(func(f *flag.Flag) {
		if f.Name != "t" {
			return
		}
		if *timeout <= 0 {
			err = fmt.Errorf("parse flags: request timeout must be positive, got %d", *timeout)
			return
		}
		cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	})
	return err
}
