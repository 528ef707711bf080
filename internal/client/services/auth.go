// Package services contains application services for the folio admin client.
// This file defines the authentication service: login against the script
// backend, the local session lifecycle and authenticated requests.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/folioadmin/folio/internal/client/backend"
	"github.com/folioadmin/folio/internal/client/session"
	"github.com/folioadmin/folio/internal/client/settings"
	"github.com/folioadmin/folio/internal/common"
	"github.com/folioadmin/folio/internal/logging"
	"github.com/folioadmin/folio/internal/notify"
)

// State is the authentication state published to subscribers.
type State int

const (
	NoSession State = iota
	ActiveSession
)

func (s State) String() string {
	if s == ActiveSession {
		return "active"
	}
	return "none"
}

// User is the user object returned by a successful login.
type User struct {
	Username    string   `json:"username"`
	Permissions []string `json:"permissions"`
}

// UnmarshalJSON accepts permissions either as a list or as a comma separated
// string.
func (u *User) UnmarshalJSON(b []byte) error {
	var w struct {
		Username    string          `json:"username"`
		Permissions json.RawMessage `json:"permissions"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	u.Username = w.Username
	u.Permissions = nil
	if len(w.Permissions) == 0 || string(w.Permissions) == "null" {
		return nil
	}
	var list []string
	if err := json.Unmarshal(w.Permissions, &list); err == nil {
		u.Permissions = list
		return nil
	}
	var csv string
	if err := json.Unmarshal(w.Permissions, &csv); err != nil {
		return fmt.Errorf("permissions: %w", err)
	}
	u.Permissions = common.SplitList(csv)
	return nil
}

// AuthResult is returned by a successful Authenticate.
type AuthResult struct {
	Token     string
	User      User
	ExpiresAt time.Time
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Authenticate: check credentials with the backend and create a local session.
//   - VerifySession / CurrentSession / HasPermission: read the local session.
//   - Logout: drop the local session; safe to call repeatedly.
//   - Do: send an authenticated action; INVALID_SESSION logs out.
//   - Subscribe: observe login and logout.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Authenticate(ctx context.Context, username string, password []byte) (*AuthResult, error)
	VerifySession(ctx context.Context) bool
	CurrentSession(ctx context.Context) (*session.Session, error)
	HasPermission(ctx context.Context, permission string) bool
	Logout(ctx context.Context) error
	Do(ctx context.Context, action string, payload map[string]any) (*backend.Envelope, error)
	Ping(ctx context.Context) error
	Subscribe(fn func(State)) (unsubscribe func())
	AdminActions
	Close(ctx context.Context) error
}

// Option customizes an auth service.
type Option func(*authService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *authService) { a.now = now }
}

// WithTokenSource replaces the session id generator.
func WithTokenSource(fn func() (string, error)) Option {
	return func(a *authService) { a.newToken = fn }
}

// WithDiagnostics sets the logger receiving one record per backend request.
// It should not block; see logging.NewNonBlocking.
func WithDiagnostics(l logging.Logger) Option {
	return func(a *authService) { a.diag = l }
}

type authService struct {
	client   backend.Client
	cfg      settings.Provider
	sessions *session.Store
	log      logging.Logger
	diag     logging.Logger

	now      func() time.Time
	newToken func() (string, error)

	hub notify.Hub[State]

	mu         sync.Mutex
	endpointOK bool
	endpoint   string
	unsubCfg   func()
}

// NewAuthService constructs an AuthService. The backend endpoint is read from
// cfg on first use and kept current through cfg's change notifications.
func NewAuthService(client backend.Client, cfg settings.Provider, sessions *session.Store, log logging.Logger, opts ...Option) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	a := &authService{
		client:   client,
		cfg:      cfg,
		sessions: sessions,
		log:      log.With("component", "auth"),
		now:      time.Now,
		newToken: func() (string, error) { return common.MakeRandHexString(common.SessionIDBytes) },
	}
	for _, o := range opts {
		o(a)
	}
	if a.diag == nil {
		a.diag = a.log
	}
	a.unsubCfg = cfg.Subscribe(func(rec settings.Record) {
		a.mu.Lock()
		a.endpoint, a.endpointOK = rec.BackendURL, true
		a.mu.Unlock()
	})
	return a
}

func (a *authService) backendURL(ctx context.Context) string {
	a.mu.Lock()
	if a.endpointOK {
		defer a.mu.Unlock()
		return a.endpoint
	}
	a.mu.Unlock()

	rec, err := a.cfg.Load(ctx)
	if err != nil {
		a.log.Warn(ctx, "config load failed, using defaults", "error", err)
		return rec.BackendURL
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.endpointOK {
		a.endpoint, a.endpointOK = rec.BackendURL, true
	}
	return a.endpoint
}

type authRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Timestamp int64  `json:"timestamp"`
}

// Authenticate checks the credentials with the backend. On success a new
// session is stored and ActiveSession is published.
func (a *authService) Authenticate(ctx context.Context, username string, password []byte) (*AuthResult, error) {
	url := a.backendURL(ctx)
	if url == "" {
		return nil, ErrNotConfigured
	}

	env, err := a.call(ctx, backend.Request{
		Endpoint: url,
		Action:   "authenticate",
		Body:     authRequest{Username: username, Password: string(password), Timestamp: a.now().UnixMilli()},
	})
	if err != nil {
		return nil, err
	}

	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "Authentication failed"
		}
		a.log.Info(ctx, "login rejected", "username", username)
		return nil, &AuthError{Message: msg}
	}

	user := loginUser(env)
	if user == nil || user.Username == "" {
		a.log.Error(ctx, "login succeeded without user data", "username", username)
		return nil, ErrMissingUserData
	}
	if user.Permissions == nil {
		user.Permissions = []string{session.AdminPermission}
	}

	token, err := a.newToken()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}
	sess := session.New(token, user.Username, user.Permissions, a.now())
	if err := a.sessions.Put(ctx, sess); err != nil {
		return nil, err
	}

	a.log.Info(ctx, "session created", "username", sess.Username, "expires_at", sess.ExpiresAt)
	a.hub.Publish(ActiveSession)
	return &AuthResult{Token: token, User: *user, ExpiresAt: sess.ExpiresAt}, nil
}

// loginUser looks for the user object at the top level first, then under data.
func loginUser(env *backend.Envelope) *User {
	var top struct {
		User json.RawMessage `json:"user"`
	}
	if len(env.Raw) > 0 && json.Unmarshal(env.Raw, &top) == nil {
		if u := parseLoginUser(top.User); u != nil {
			return u
		}
	}
	var data struct {
		User json.RawMessage `json:"user"`
	}
	if env.DecodeData(&data) == nil {
		return parseLoginUser(data.User)
	}
	return nil
}

// parseLoginUser decodes a user object. When permissions have an unexpected
// shape the username is kept and the user is granted nothing.
func parseLoginUser(raw json.RawMessage) *User {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var u User
	if err := json.Unmarshal(raw, &u); err == nil {
		return &u
	}
	var bare struct {
		Username string `json:"username"`
	}
	if json.Unmarshal(raw, &bare) != nil {
		return nil
	}
	return &User{Username: bare.Username, Permissions: []string{}}
}

func (a *authService) VerifySession(ctx context.Context) bool {
	sess, err := a.sessions.Get(ctx)
	if err != nil || sess == nil {
		return false
	}
	return sess.Valid(a.now())
}

// CurrentSession returns the stored session, or nil when there is none. An
// expired session is cleared before returning nil.
func (a *authService) CurrentSession(ctx context.Context) (*session.Session, error) {
	sess, err := a.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	if !sess.Valid(a.now()) {
		a.log.Info(ctx, "session expired", "username", sess.Username)
		if err := a.Logout(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return sess, nil
}

func (a *authService) HasPermission(ctx context.Context, permission string) bool {
	sess, err := a.CurrentSession(ctx)
	if err != nil || sess == nil {
		return false
	}
	return sess.Has(permission)
}

// Logout removes the session and the legacy auth keys and publishes
// NoSession.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		return err
	}
	a.hub.Publish(NoSession)
	return nil
}

// Do sends action with payload plus the session id and a timestamp. The
// envelope is returned as received unless the backend reports the session
// invalid, in which case the local session is dropped.
func (a *authService) Do(ctx context.Context, action string, payload map[string]any) (*backend.Envelope, error) {
	sess, err := a.CurrentSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoSession, err)
	}
	if sess == nil {
		return nil, ErrNoSession
	}

	url := a.backendURL(ctx)
	if url == "" {
		return nil, ErrNotConfigured
	}

	body := make(map[string]any, len(payload)+2)
	maps.Copy(body, payload)
	body["sessionId"] = sess.ID
	body["timestamp"] = a.now().UnixMilli()

	env, err := a.call(ctx, backend.Request{Endpoint: url, Action: action, Body: body, Bearer: sess.ID})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	if env.ErrorCode() == backend.InvalidSession {
		a.log.Warn(ctx, "backend rejected session", "action", action, "username", sess.Username)
		if err := a.Logout(ctx); err != nil {
			a.log.Error(ctx, "logout after invalid session failed", "error", err)
		}
		return nil, ErrSessionExpired
	}
	return env, nil
}

// Ping probes the configured endpoint.
func (a *authService) Ping(ctx context.Context) error {
	url := a.backendURL(ctx)
	if url == "" {
		return ErrNotConfigured
	}
	return a.client.Ping(ctx, url)
}

func (a *authService) Subscribe(fn func(State)) (unsubscribe func()) {
	return a.hub.Subscribe(fn)
}

// Close stops following configuration changes.
func (a *authService) Close(ctx context.Context) error {
	a.unsubCfg()
	return nil
}

// call performs one backend request and writes a diagnostic record for it.
func (a *authService) call(ctx context.Context, req backend.Request) (*backend.Envelope, error) {
	id := uuid.NewString()
	start := time.Now()

	env, err := a.client.Call(ctx, req)

	status := "ok"
	var httpErr *backend.HTTPError
	switch {
	case errors.As(err, &httpErr):
		status = fmt.Sprintf("http %d", httpErr.Status)
	case errors.Is(err, backend.ErrUnavailable):
		status = "unavailable"
	case err != nil:
		status = "error"
	case !env.Success:
		status = "rejected"
	}

	args := []any{
		"action", req.Action,
		"request_id", id,
		"status", status,
		"duration", time.Since(start),
	}
	if err != nil {
		args = append(args, "error", err)
		a.diag.Warn(ctx, "backend request", args...)
	} else {
		a.diag.Info(ctx, "backend request", args...)
	}
	return env, err
}
