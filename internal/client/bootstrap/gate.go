// Package bootstrap decides what the admin client must do on start: set up
// the backend endpoint, log in, or proceed with an active session.
package bootstrap

import (
	"context"
	"sync"

	"github.com/folioadmin/folio/internal/client/settings"
	"github.com/folioadmin/folio/internal/logging"
)

// State is the gate outcome.
type State int

const (
	Loading State = iota
	SetupRequired
	LoginRequired
	Authenticated
)

func (s State) String() string {
	switch s {
	case SetupRequired:
		return "setup required"
	case LoginRequired:
		return "login required"
	case Authenticated:
		return "authenticated"
	default:
		return "loading"
	}
}

// SessionChecker is satisfied by services.AuthService.
type SessionChecker interface {
	VerifySession(ctx context.Context) bool
}

// Gate holds the last evaluated state. It never re-evaluates on its own;
// callers run Evaluate on start and after login, logout or config changes.
type Gate struct {
	cfg  settings.Provider
	auth SessionChecker
	log  logging.Logger

	mu    sync.Mutex
	state State
}

func NewGate(cfg settings.Provider, auth SessionChecker, log logging.Logger) *Gate {
	if log == nil {
		log = logging.Nop()
	}
	return &Gate{cfg: cfg, auth: auth, log: log.With("component", "bootstrap")}
}

// Evaluate reads the configuration and session and stores the result.
func (g *Gate) Evaluate(ctx context.Context) State {
	rec, err := g.cfg.Load(ctx)
	if err != nil {
		g.log.Warn(ctx, "config unavailable, using defaults", "error", err)
	}

	st := LoginRequired
	switch {
	case !rec.Configured():
		st = SetupRequired
	case g.auth.VerifySession(ctx):
		st = Authenticated
	}

	g.mu.Lock()
	prev := g.state
	g.state = st
	g.mu.Unlock()

	if prev != st {
		g.log.Debug(ctx, "gate state changed", "from", prev.String(), "to", st.String())
	}
	return st
}

// State returns the last evaluated state, Loading before the first Evaluate.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}
