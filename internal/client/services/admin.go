package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/folioadmin/folio/internal/client/backend"
	"github.com/folioadmin/folio/internal/client/sheets"
)

// DefaultAuditLimit is used when GetAuditLogs is called with limit <= 0.
const DefaultAuditLimit = 50

// AdminActions are the authenticated backend actions used by the admin panel.
type AdminActions interface {
	GetAdminConfig(ctx context.Context) (map[string]any, error)
	UpdateAdminSettings(ctx context.Context, settings map[string]any) error
	GetAuditLogs(ctx context.Context, limit int) ([]AuditEntry, error)
	LogAction(ctx context.Context, action string, details any)
	GetPortfolioData(ctx context.Context) (json.RawMessage, error)
	UpdatePortfolioData(ctx context.Context, sheet string, rows [][]any) error
}

// AuditEntry is one row of the backend audit log.
type AuditEntry struct {
	Timestamp string
	Username  string
	Action    string
	Details   string
	IP        string
}

func (e *AuditEntry) UnmarshalJSON(b []byte) error {
	var w struct {
		Timestamp sheets.Cell `json:"timestamp"`
		Username  sheets.Cell `json:"username"`
		Action    sheets.Cell `json:"action"`
		Details   sheets.Cell `json:"details"`
		IP        sheets.Cell `json:"ip"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*e = AuditEntry{
		Timestamp: w.Timestamp.String(),
		Username:  w.Username.String(),
		Action:    w.Action.String(),
		Details:   w.Details.String(),
		IP:        w.IP.String(),
	}
	return nil
}

// doAction runs Do and turns success=false into an *ActionError.
func (a *authService) doAction(ctx context.Context, action string, payload map[string]any) (*backend.Envelope, error) {
	env, err := a.Do(ctx, action, payload)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "request failed"
		}
		return nil, &ActionError{Action: action, Message: msg}
	}
	return env, nil
}

// GetAdminConfig returns the key/value pairs of the admin config sheet.
func (a *authService) GetAdminConfig(ctx context.Context) (map[string]any, error) {
	env, err := a.doAction(ctx, "getAdminConfig", nil)
	if err != nil {
		return nil, err
	}
	cfg := map[string]any{}
	if err := env.DecodeData(&cfg); err != nil {
		return nil, fmt.Errorf("%w: admin config: %w", backend.ErrMalformedResponse, err)
	}
	return cfg, nil
}

func (a *authService) UpdateAdminSettings(ctx context.Context, settings map[string]any) error {
	if len(settings) == 0 {
		return errors.New("no settings to update")
	}
	_, err := a.doAction(ctx, "updateAdminSettings", map[string]any{"settings": settings})
	return err
}

// GetAuditLogs returns at most limit audit entries, DefaultAuditLimit when
// limit is not positive.
func (a *authService) GetAuditLogs(ctx context.Context, limit int) ([]AuditEntry, error) {
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	env, err := a.doAction(ctx, "getAuditLogs", map[string]any{"limit": limit})
	if err != nil {
		return nil, err
	}
	var data struct {
		Logs []AuditEntry `json:"logs"`
	}
	if err := env.DecodeData(&data); err != nil {
		return nil, fmt.Errorf("%w: audit logs: %w", backend.ErrMalformedResponse, err)
	}
	if data.Logs == nil {
		data.Logs = []AuditEntry{}
	}
	return data.Logs, nil
}

// LogAction records an admin action in the audit trail. Failures are logged
// and otherwise ignored.
func (a *authService) LogAction(ctx context.Context, action string, details any) {
	payload := map[string]any{"action": action, "details": details}
	if sess, err := a.CurrentSession(ctx); err == nil && sess != nil {
		payload["username"] = sess.Username
	}
	if _, err := a.doAction(ctx, "logAction", payload); err != nil {
		a.log.Warn(ctx, "failed to log action", "action", action, "error", err)
	}
}

// GetPortfolioData returns the data field of getPortfolioData: one 2-D array
// per content sheet.
func (a *authService) GetPortfolioData(ctx context.Context) (json.RawMessage, error) {
	env, err := a.doAction(ctx, "getPortfolioData", nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// UpdatePortfolioData overwrites the top-left block of sheet with rows.
func (a *authService) UpdatePortfolioData(ctx context.Context, sheet string, rows [][]any) error {
	if sheet == "" {
		return errors.New("sheet name is required")
	}
	_, err := a.doAction(ctx, "updatePortfolioData", map[string]any{"sheetName": sheet, "updates": rows})
	return err
}
