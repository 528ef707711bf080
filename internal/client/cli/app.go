package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/folioadmin/folio/internal/client/backend"
	"github.com/folioadmin/folio/internal/client/bootstrap"
	"github.com/folioadmin/folio/internal/client/config"
	"github.com/folioadmin/folio/internal/client/queries"
	"github.com/folioadmin/folio/internal/client/repositories/localstore"
	"github.com/folioadmin/folio/internal/client/services"
	"github.com/folioadmin/folio/internal/client/session"
	"github.com/folioadmin/folio/internal/client/settings"
	"github.com/folioadmin/folio/internal/client/sheets"
	"github.com/folioadmin/folio/internal/filex"
	"github.com/folioadmin/folio/internal/logging"
)

// diagnosticsBuffer is how many diagnostic records may queue before new ones
// are dropped.
const diagnosticsBuffer = 256

// portfolioSource is the part of the data access layer the CLI reads
// directly; per-domain reads go through the query set.
type portfolioSource interface {
	queries.DataSource
	All(ctx context.Context) sheets.Result[sheets.Portfolio]
}

type App struct {
	config   *config.Config
	log      logging.Logger
	db       *sql.DB
	repo     localstore.Repository
	diag     *logging.NonBlocking
	settings *settings.Store
	auth     services.AuthService
	content  portfolioSource
	queries  *queries.Set
	gate     *bootstrap.Gate
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp opens the local store at c.DatabasePath and wires the services on
// top of it. Close releases everything NewApp acquired.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}
	if _, err := filex.EnsureParentDir(afero.NewOsFs(), c.DatabasePath); err != nil {
		return nil, err
	}

	db, err := localstore.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	client := backend.NewHTTPClient(backend.HTTPClientOptions{Timeout: c.RequestTimeout})

	a, err := newApp(ctx, c, localstore.NewSQLiteRepository(db), client, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	a.db = db
	return a, nil
}

// newApp wires the services over an already opened repository.
func newApp(ctx context.Context, c *config.Config, repo localstore.Repository, client backend.Client, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	diag := logging.NewNonBlocking(log.With("channel", "diagnostics"), diagnosticsBuffer)
	cfgStore := settings.NewStore(repo, c.DefaultBackendURL, log)
	auth := services.NewAuthService(client, cfgStore, session.NewStore(repo), log, services.WithDiagnostics(diag))

	content, err := sheets.NewService(auth, log)
	if err != nil {
		diag.Close()
		return nil, fmt.Errorf("data access layer: %w", err)
	}

	set := queries.NewSet(ctx, content, auth, queries.Options{
		StaleTime:       c.StaleTime,
		RefetchInterval: c.RefetchInterval,
		Log:             log,
	})

	return &App{
		config:   c,
		log:      log,
		repo:     repo,
		diag:     diag,
		settings: cfgStore,
		auth:     auth,
		content:  content,
		queries:  set,
		gate:     bootstrap.NewGate(cfgStore, auth, log),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Run starts the REPL and blocks until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)
	a.Root(ctx)
}

// Close stops background refetching and releases the local store.
func (a *App) Close(ctx context.Context) error {
	a.queries.Stop()
	if err := a.auth.Close(ctx); err != nil {
		a.log.Warn(ctx, "auth service close", "error", err)
	}
	a.diag.Close()
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
