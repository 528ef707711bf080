package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// AdminConfig prints the backend's admin configuration sorted by key.
func (a *App) AdminConfig(ctx context.Context) error {
	cfg, err := a.auth.GetAdminConfig(ctx)
	if err != nil {
		return err
	}
	if len(cfg) == 0 {
		fmt.Fprintln(a.out, "(empty)")
		return nil
	}

	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := newTable(a.out)
	for _, k := range keys {
		fmt.Fprintf(w, "%s:\t%v\n", k, cfg[k])
	}
	return w.Flush()
}

// parseSettings turns key=value pairs into a settings map. "true", "false"
// and numbers are sent as JSON booleans and numbers, everything else as text.
func parseSettings(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid setting %q, expected key=value", p)
		}
		switch {
		case v == "true" || v == "false":
			out[k] = v == "true"
		default:
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				out[k] = n
			} else {
				out[k] = v
			}
		}
	}
	return out, nil
}

// UpdateSettings sends key=value pairs to the backend settings sheet and
// records the change in the audit log.
func (a *App) UpdateSettings(ctx context.Context, pairs []string) error {
	settings, err := parseSettings(pairs)
	if err != nil {
		return err
	}
	if err := a.auth.UpdateAdminSettings(ctx, settings); err != nil {
		return err
	}
	a.auth.LogAction(ctx, "updateSettings", settings)
	fmt.Fprintf(a.out, "Updated %d setting(s).\n", len(settings))
	return nil
}

// Audit prints the most recent audit log entries.
func (a *App) Audit(ctx context.Context, limit int) error {
	entries, err := a.auth.GetAuditLogs(ctx, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "(no entries)")
		return nil
	}

	w := newTable(a.out)
	fmt.Fprintln(w, "TIME\tUSER\tACTION\tDETAILS\tIP")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Timestamp, e.Username, e.Action, orDash(e.Details), orDash(e.IP))
	}
	return w.Flush()
}
