package cli

import (
	"context"
	"fmt"

	"github.com/folioadmin/folio/internal/client/bootstrap"
)

func (a *App) state() bootstrap.State {
	return a.gate.State()
}

// getStatus renders the prompt suffix: the user name when logged in,
// otherwise what the bootstrap gate is waiting for.
func (a *App) getStatus() string {
	if a.gate.State() == bootstrap.Authenticated {
		if s, err := a.auth.CurrentSession(context.Background()); err == nil && s != nil {
			return fmt.Sprintf("(%s)", s.Username)
		}
	}
	return fmt.Sprintf("(%s)", a.gate.State())
}

// Root evaluates the bootstrap gate, asks for credentials when the backend is
// configured but nobody is logged in, starts background refetching and then
// runs the REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to the folio admin CLI (type 'help' for commands)")

	switch a.gate.Evaluate(ctx) {
	case bootstrap.SetupRequired:
		printlnFn("No backend endpoint is configured. Use 'config set url <endpoint>' to set one.")
	case bootstrap.LoginRequired:
		report(a.Login(ctx))
	case bootstrap.Authenticated:
		printlnFn("Resuming saved session.")
	}

	a.queries.Start(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}
