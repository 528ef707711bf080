// Package settings is the local configuration store: the API key, the two
// spreadsheet ids and the backend endpoint URL, persisted under one key of the
// local store.
package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/folioadmin/folio/internal/client/repositories/localstore"
	"github.com/folioadmin/folio/internal/logging"
	"github.com/folioadmin/folio/internal/notify"
)

// StorageKey is the local store key holding the configuration record.
const StorageKey = "admin_config"

// Record is the persisted configuration. JSON names match the record written
// by earlier versions of the admin panel.
type Record struct {
	APIKey                 string `json:"googleSheetsApiKey"`
	PortfolioSpreadsheetID string `json:"portfolioSpreadsheetId"`
	AdminSpreadsheetID     string `json:"adminSpreadsheetId"`
	BackendURL             string `json:"googleAppsScriptUrl"`
}

// Configured reports whether a backend endpoint is set.
func (r Record) Configured() bool {
	return r.BackendURL != ""
}

// Provider is what consumers of the configuration depend on.
type Provider interface {
	Load(ctx context.Context) (Record, error)
	Subscribe(fn func(Record)) (unsubscribe func())
}

// Store loads and saves the Record. It is the only writer of StorageKey.
type Store struct {
	repo     localstore.Repository
	fallback string
	log      logging.Logger
	hub      notify.Hub[Record]
}

// NewStore returns a Store whose defaults point at fallbackURL.
func NewStore(repo localstore.Repository, fallbackURL string, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{repo: repo, fallback: fallbackURL, log: log.With("component", "settings")}
}

// Defaults is the record used when nothing usable is stored.
func (s *Store) Defaults() Record {
	return Record{BackendURL: s.fallback}
}

// Load returns the stored record.
//
// With nothing stored the defaults are persisted and returned, so later loads
// are stable. A stored value that does not parse yields the defaults and is
// left untouched. A storage failure yields the defaults together with the
// error.
func (s *Store) Load(ctx context.Context) (Record, error) {
	raw, err := s.repo.Get(ctx, StorageKey)
	if err != nil {
		return s.Defaults(), fmt.Errorf("load config: %w", err)
	}

	if raw == nil {
		rec := s.Defaults()
		if err := s.write(ctx, rec); err != nil {
			s.log.Warn(ctx, "could not persist default config", "error", err)
		}
		return rec, nil
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		s.log.Warn(ctx, "stored config is not valid JSON, using defaults", "error", err)
		return s.Defaults(), nil
	}
	return rec, nil
}

// Save overwrites the stored record and notifies subscribers.
func (s *Store) Save(ctx context.Context, rec Record) error {
	if err := s.write(ctx, rec); err != nil {
		return err
	}
	s.log.Info(ctx, "config saved", "backend_url", rec.BackendURL)
	s.hub.Publish(rec)
	return nil
}

// Update loads the record, applies fn and saves the result.
func (s *Store) Update(ctx context.Context, fn func(*Record)) (Record, error) {
	rec, err := s.Load(ctx)
	if err != nil {
		return rec, err
	}
	fn(&rec)
	if err := s.Save(ctx, rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// Subscribe registers fn to be called after every successful Save.
func (s *Store) Subscribe(fn func(Record)) (unsubscribe func()) {
	return s.hub.Subscribe(fn)
}

func (s *Store) write(ctx context.Context, rec Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := s.repo.Set(ctx, StorageKey, b); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}
