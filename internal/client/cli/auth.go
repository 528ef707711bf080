package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/folioadmin/folio/internal/client/bootstrap"
	"github.com/folioadmin/folio/internal/common"
)

var (
	errSetupRequired = errors.New("backend endpoint is not configured, use 'config set url <endpoint>'")
	errLoginRequired = errors.New("not logged in, use 'login'")
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts the user for credentials and authenticates against the
// configured backend. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	if a.gate.Evaluate(ctx) == bootstrap.SetupRequired {
		return errSetupRequired
	}

	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.auth.Authenticate(ctx, userName, password)
	if err != nil {
		a.log.Warn(ctx, "login unsuccessful", "username", userName, "error", err)
		return fmt.Errorf("login: %w", err)
	}
	a.gate.Evaluate(ctx)
	a.auth.LogAction(ctx, "login", map[string]any{"username": res.User.Username})

	fmt.Fprintf(a.out, "Logged in as %s, session expires at %s\n",
		res.User.Username, res.ExpiresAt.Local().Format(time.DateTime))
	return nil
}

// Logout records the action with the backend while the session is still
// valid, then drops the local session.
func (a *App) Logout(ctx context.Context) error {
	if a.auth.VerifySession(ctx) {
		a.auth.LogAction(ctx, "logout", nil)
	}
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.gate.Evaluate(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Whoami prints the user and permissions of the current session.
func (a *App) Whoami(ctx context.Context) error {
	s, err := a.auth.CurrentSession(ctx)
	if err != nil {
		return err
	}
	if s == nil {
		a.gate.Evaluate(ctx)
		return errLoginRequired
	}
	fmt.Fprintf(a.out, "%s [%s], session expires at %s\n",
		s.Username, strings.Join(s.Permissions, ", "), s.ExpiresAt.Local().Format(time.DateTime))
	return nil
}

// Can reports whether the current session grants permission.
func (a *App) Can(ctx context.Context, permission string) error {
	if a.auth.HasPermission(ctx, permission) {
		fmt.Fprintf(a.out, "yes: %s is granted\n", permission)
	} else {
		fmt.Fprintf(a.out, "no: %s is not granted\n", permission)
	}
	return nil
}

// Status re-evaluates the bootstrap gate and prints it with the backend
// endpoint, the local store keys, the last content fetch and the number of
// dropped diagnostic records.
func (a *App) Status(ctx context.Context) error {
	st := a.gate.Evaluate(ctx)
	rec, err := a.settings.Load(ctx)
	if err != nil {
		a.log.Warn(ctx, "config unavailable", "error", err)
	}

	w := newTable(a.out)
	fmt.Fprintf(w, "state:\t%s\n", st)
	fmt.Fprintf(w, "backend:\t%s\n", orDash(rec.BackendURL))
	if s, err := a.auth.CurrentSession(ctx); err == nil && s != nil {
		fmt.Fprintf(w, "user:\t%s\n", s.Username)
		fmt.Fprintf(w, "expires:\t%s\n", s.ExpiresAt.Local().Format(time.DateTime))
	}
	keys, err := a.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list local store: %w", err)
	}
	fmt.Fprintf(w, "local keys:\t%d\n", len(keys))
	if _, at, ok := a.queries.Profile.Cached(); ok {
		fmt.Fprintf(w, "content fetched:\t%s\n", at.Local().Format(time.DateTime))
	}
	fmt.Fprintf(w, "diagnostics dropped:\t%d\n", a.diag.Dropped())
	return w.Flush()
}
