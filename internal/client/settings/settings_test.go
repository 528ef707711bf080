package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/folioadmin/folio/internal/client/repositories/localstore"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fallbackURL = "https://script.example.com/macros/s/default/exec"

type failingRepo struct {
	localstore.Repository
	getErr error
	setErr error
}

func (f *failingRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.Repository.Get(ctx, key)
}

func (f *failingRepo) Set(ctx context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.Repository.Set(ctx, key, value)
}

func TestLoad_FirstLoadPersistsDefaults(t *testing.T) {
	repo := localstore.NewMemoryRepository()
	s := NewStore(repo, fallbackURL, nil)
	ctx := context.Background()

	rec, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Record{BackendURL: fallbackURL}, rec)

	raw, err := repo.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"googleSheetsApiKey": "",
		"portfolioSpreadsheetId": "",
		"adminSpreadsheetId": "",
		"googleAppsScriptUrl": "`+fallbackURL+`"
	}`, string(raw))
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	tests := []Record{
		{},
		{BackendURL: "https://script.example.com/exec"},
		{
			APIKey:                 "AIza-secret",
			PortfolioSpreadsheetID: "portfolio-sheet",
			AdminSpreadsheetID:     "admin-sheet",
			BackendURL:             "https://script.example.com/exec",
		},
	}
	for _, want := range tests {
		t.Run(want.BackendURL, func(t *testing.T) {
			s := NewStore(localstore.NewMemoryRepository(), fallbackURL, nil)
			ctx := context.Background()

			require.NoError(t, s.Save(ctx, want))
			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(want, got))
		})
	}
}

func TestLoad_EmptyStoredURLIsKept(t *testing.T) {
	s := NewStore(localstore.NewMemoryRepository(), fallbackURL, nil)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, Record{APIKey: "k"}))
	rec, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, rec.Configured())
}

func TestLoad_CorruptValueYieldsDefaultsWithoutOverwriting(t *testing.T) {
	repo := localstore.NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, StorageKey, []byte("{not json")))

	rec, err := NewStore(repo, fallbackURL, nil).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Record{BackendURL: fallbackURL}, rec)

	raw, _ := repo.Get(ctx, StorageKey)
	assert.Equal(t, "{not json", string(raw))
}

func TestLoad_StorageErrorReturnsDefaultsAndError(t *testing.T) {
	repo := &failingRepo{Repository: localstore.NewMemoryRepository(), getErr: errors.New("disk gone")}

	rec, err := NewStore(repo, fallbackURL, nil).Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, Record{BackendURL: fallbackURL}, rec)
}

func TestSave_ErrorDoesNotNotify(t *testing.T) {
	repo := &failingRepo{Repository: localstore.NewMemoryRepository(), setErr: errors.New("readonly")}
	s := NewStore(repo, fallbackURL, nil)
	notified := false
	s.Subscribe(func(Record) { notified = true })

	err := s.Save(context.Background(), Record{BackendURL: "x"})
	require.Error(t, err)
	assert.False(t, notified)
}

func TestSave_NotifiesSubscribers(t *testing.T) {
	s := NewStore(localstore.NewMemoryRepository(), fallbackURL, nil)
	var seen []Record
	unsub := s.Subscribe(func(r Record) { seen = append(seen, r) })

	require.NoError(t, s.Save(context.Background(), Record{BackendURL: "one"}))
	unsub()
	require.NoError(t, s.Save(context.Background(), Record{BackendURL: "two"}))

	require.Len(t, seen, 1)
	assert.Equal(t, "one", seen[0].BackendURL)
}

func TestUpdate_MergesIntoStoredRecord(t *testing.T) {
	s := NewStore(localstore.NewMemoryRepository(), fallbackURL, nil)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, Record{APIKey: "key", BackendURL: "https://old"}))

	rec, err := s.Update(ctx, func(r *Record) { r.BackendURL = "https://new" })
	require.NoError(t, err)
	assert.Equal(t, Record{APIKey: "key", BackendURL: "https://new"}, rec)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}
