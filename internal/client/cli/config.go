package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/folioadmin/folio/internal/client/settings"
	"github.com/folioadmin/folio/internal/common"
)

// configFields maps the names accepted by 'config set' to record fields.
var configFields = map[string]func(r *settings.Record) *string{
	"url":       func(r *settings.Record) *string { return &r.BackendURL },
	"apikey":    func(r *settings.Record) *string { return &r.APIKey },
	"portfolio": func(r *settings.Record) *string { return &r.PortfolioSpreadsheetID },
	"admin":     func(r *settings.Record) *string { return &r.AdminSpreadsheetID },
}

func configFieldNames() string {
	names := make([]string, 0, len(configFields))
	for n := range configFields {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// ShowConfig prints the local configuration with the API key masked.
func (a *App) ShowConfig(ctx context.Context) error {
	rec, err := a.settings.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	w := newTable(a.out)
	fmt.Fprintf(w, "url:\t%s\n", orDash(rec.BackendURL))
	fmt.Fprintf(w, "apikey:\t%s\n", orDash(common.Mask(rec.APIKey)))
	fmt.Fprintf(w, "portfolio:\t%s\n", orDash(rec.PortfolioSpreadsheetID))
	fmt.Fprintf(w, "admin:\t%s\n", orDash(rec.AdminSpreadsheetID))
	return w.Flush()
}

// SetConfig stores value in the named field and re-evaluates the bootstrap
// gate. An empty value clears the field.
func (a *App) SetConfig(ctx context.Context, field, value string) error {
	get, ok := configFields[strings.ToLower(field)]
	if !ok {
		return fmt.Errorf("unknown config field %q, expected one of: %s", field, configFieldNames())
	}

	if _, err := a.settings.Update(ctx, func(r *settings.Record) {
		*get(r) = strings.TrimSpace(value)
	}); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(a.out, "Saved. State: %s\n", a.gate.Evaluate(ctx))
	return nil
}

// Ping probes the configured backend.
func (a *App) Ping(ctx context.Context) error {
	if err := a.auth.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Backend is reachable.")
	return nil
}
