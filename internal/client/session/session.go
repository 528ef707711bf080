// Package session persists the local proof-of-login: an opaque session id,
// the user it belongs to, their permissions and a fixed expiry.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/folioadmin/folio/internal/client/repositories/localstore"
)

// StorageKey holds the current session record.
const StorageKey = "admin_session"

// Lifetime is fixed at creation and never extended.
const Lifetime = 2 * time.Hour

// AdminPermission grants every permission.
const AdminPermission = "admin"

// LegacyKeys were written by older admin panels and are only ever cleared.
var LegacyKeys = []string{"admin_auth_token", "admin_auth_expiry", "admin_user"}

// ErrCorrupt is returned when the stored record cannot be decoded.
var ErrCorrupt = errors.New("corrupt session record")

// Session is the persisted record. ExpiresAt is stored as Unix milliseconds.
type Session struct {
	ID          string
	Username    string
	Permissions []string
	ExpiresAt   time.Time
}

// New builds a session expiring Lifetime after now.
func New(id, username string, permissions []string, now time.Time) Session {
	return Session{
		ID:          id,
		Username:    username,
		Permissions: slices.Clone(permissions),
		ExpiresAt:   now.Add(Lifetime),
	}
}

// Valid reports whether now is strictly before the expiry.
func (s Session) Valid(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// Has reports whether the session grants permission, directly or via admin.
func (s Session) Has(permission string) bool {
	return slices.Contains(s.Permissions, permission) || slices.Contains(s.Permissions, AdminPermission)
}

type wireSession struct {
	SessionID   string   `json:"sessionId"`
	Username    string   `json:"username"`
	Permissions []string `json:"permissions"`
	ExpiresAt   int64    `json:"expiresAt"`
}

func (s Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireSession{
		SessionID:   s.ID,
		Username:    s.Username,
		Permissions: s.Permissions,
		ExpiresAt:   s.ExpiresAt.UnixMilli(),
	})
}

func (s *Session) UnmarshalJSON(b []byte) error {
	var w wireSession
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	s.ID = w.SessionID
	s.Username = w.Username
	s.Permissions = w.Permissions
	s.ExpiresAt = time.UnixMilli(w.ExpiresAt)
	return nil
}

// Store reads and writes the session record. Only the auth service writes it.
type Store struct {
	repo localstore.Repository
}

func NewStore(repo localstore.Repository) *Store {
	return &Store{repo: repo}
}

// Get returns the stored session regardless of expiry, or nil when none is
// stored. An undecodable record yields ErrCorrupt.
func (s *Store) Get(ctx context.Context) (*Session, error) {
	raw, err := s.repo.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return &sess, nil
}

// Put replaces the stored session.
func (s *Store) Put(ctx context.Context, sess Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.repo.Set(ctx, StorageKey, b); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the session and every legacy auth key.
func (s *Store) Clear(ctx context.Context) error {
	keys := append([]string{StorageKey}, LegacyKeys...)
	if err := s.repo.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
