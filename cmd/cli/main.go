package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/folioadmin/folio/internal/buildinfo"
	"github.com/folioadmin/folio/internal/client/cli"
	"github.com/folioadmin/folio/internal/client/config"
	"github.com/folioadmin/folio/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logging.New(logging.Options{Level: cfg.LogLevel, JSON: cfg.LogJSON})
	if err != nil {
		fmt.Fprintf(os.Stderr, "log level %q: %v\n", cfg.LogLevel, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "startup failed", "error", err)
		stop()
		os.Exit(1)
	}

	app.Run(ctx)

}
