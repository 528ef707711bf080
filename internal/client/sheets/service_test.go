package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	raw   string
	err   error
	calls int
}

func (f *fakeFetcher) GetPortfolioData(context.Context) (json.RawMessage, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.raw), nil
}

func newTestService(t *testing.T, f Fetcher) *Service {
	t.Helper()
	s, err := NewService(f, nil)
	require.NoError(t, err)
	return s
}

const fullPayload = `{
  "personalInfo": [
    ["Name","Title","Bio","Email","Phone","Location","Image","CV"],
    ["Ada","Engineer","","ada@example.com",5551234,"","img.png",""],
    ["Ignored","Second row"]
  ],
  "skills": [
    ["Name","Level","Category","Icon"],
    ["Go", 90, "Backend", "go"],
    ["", 50, "Nameless"],
    ["SQL", "n/a"],
    ["Docker", "150"]
  ],
  "certificates": [
    ["Title","Issuer","Date","Description","Image","Credential"],
    ["", "NoTitle"],
    ["CKA", "CNCF", "2024-01-01"]
  ],
  "projects": [
    ["Title","Description","Image","Demo","Github","Tags","Category","Date","Status","Featured"],
    ["Folio","Admin client","","","","go, cli, ,sqlite","","2025","ongoing","TRUE"],
    ["Other","","","","","","Web","","Unknown","no"]
  ],
  "blogPosts": [
    ["Title","Summary","Image","Date","Minutes","Tags","URL"],
    ["Hello","First","","2025-02-01","0","",""],
    ["Second","","","","12 min","a,b","https://x"]
  ],
  "contactInfo": [
    ["Email","Phone","Location","LinkedIn","GitHub","Twitter","Facebook"],
    ["c@example.com","","Berlin","li","gh",null,false]
  ],
  "unknown": "not an array"
}`

func TestService_Profile(t *testing.T) {
	s := newTestService(t, &fakeFetcher{raw: fullPayload})
	res := s.Profile(context.Background())

	require.Equal(t, SourceBackend, res.Source)
	require.NoError(t, res.Err)
	d := DefaultProfile()
	want := Profile{
		Name:            "Ada",
		Title:           "Engineer",
		Bio:             d.Bio,
		Email:           "ada@example.com",
		Phone:           "5551234",
		Location:        d.Location,
		ProfileImageURL: "img.png",
	}
	if diff := cmp.Diff(want, res.Value); diff != "" {
		t.Errorf("profile mismatch (-want +got):\n%s", diff)
	}
}

func TestService_Skills_FiltersAndParses(t *testing.T) {
	s := newTestService(t, &fakeFetcher{raw: fullPayload})
	res := s.Skills(context.Background())

	require.Equal(t, SourceBackend, res.Source)
	want := []Skill{
		{Name: "Go", Level: 90, Category: "Backend", Icon: "go"},
		{Name: "SQL", Level: 0, Category: DefaultCategory},
		{Name: "Docker", Level: 100, Category: DefaultCategory},
	}
	if diff := cmp.Diff(want, res.Value); diff != "" {
		t.Errorf("skills mismatch (-want +got):\n%s", diff)
	}
}

func TestService_Skills_NameOnlyRow(t *testing.T) {
	raw := `{"skills":[["Name","Level","Category","Icon"],["WiFi"]]}`
	s := newTestService(t, &fakeFetcher{raw: raw})
	res := s.Skills(context.Background())

	require.Equal(t, SourceBackend, res.Source)
	assert.Equal(t, []Skill{{Name: "WiFi", Level: 0, Category: DefaultCategory}}, res.Value)
}

func TestService_Skills_LevelClampedToPercent(t *testing.T) {
	raw := `{"skills":[["Name","Level","Category","Icon"],["Hi","150"],["Lo","-5"],["Edge","100"],["Zero","0"]]}`
	s := newTestService(t, &fakeFetcher{raw: raw})
	res := s.Skills(context.Background())

	require.Equal(t, SourceBackend, res.Source)
	want := []Skill{
		{Name: "Hi", Level: 100, Category: DefaultCategory},
		{Name: "Lo", Level: 0, Category: DefaultCategory},
		{Name: "Edge", Level: 100, Category: DefaultCategory},
		{Name: "Zero", Level: 0, Category: DefaultCategory},
	}
	if diff := cmp.Diff(want, res.Value); diff != "" {
		t.Errorf("skills mismatch (-want +got):\n%s", diff)
	}
}

func TestService_Certificates_IDsFollowRowPosition(t *testing.T) {
	s := newTestService(t, &fakeFetcher{raw: fullPayload})
	res := s.Certificates(context.Background())

	require.Len(t, res.Value, 1)
	assert.Equal(t, "cert-2", res.Value[0].ID)
	assert.Equal(t, "CKA", res.Value[0].Title)
	assert.Equal(t, "CNCF", res.Value[0].Issuer)
	assert.Equal(t, "2024-01-01", res.Value[0].Date)
}

func TestService_Projects(t *testing.T) {
	s := newTestService(t, &fakeFetcher{raw: fullPayload})
	res := s.Projects(context.Background())

	want := []Project{
		{
			ID: "project-1", Title: "Folio", Description: "Admin client", ImageURL: PlaceholderImage,
			Tags: []string{"go", "cli", "sqlite"}, Category: DefaultCategory, Date: "2025",
			Status: StatusOngoing, Featured: true,
		},
		{
			ID: "project-2", Title: "Other", ImageURL: PlaceholderImage,
			Tags: []string{}, Category: "Web", Status: StatusCompleted,
		},
	}
	if diff := cmp.Diff(want, res.Value); diff != "" {
		t.Errorf("projects mismatch (-want +got):\n%s", diff)
	}
}

func TestService_BlogPosts_ReadingTime(t *testing.T) {
	s := newTestService(t, &fakeFetcher{raw: fullPayload})
	res := s.BlogPosts(context.Background())

	require.Len(t, res.Value, 2)
	assert.Equal(t, DefaultReadingTime, res.Value[0].ReadingTime)
	assert.Equal(t, 12, res.Value[1].ReadingTime)
	assert.Equal(t, []string{"a", "b"}, res.Value[1].Tags)
	assert.Equal(t, "blog-2", res.Value[1].ID)
}

func TestService_ContactInfo(t *testing.T) {
	s := newTestService(t, &fakeFetcher{raw: fullPayload})
	res := s.ContactInfo(context.Background())

	want := ContactInfo{
		Email:       "c@example.com",
		Location:    "Berlin",
		SocialLinks: SocialLinks{LinkedIn: "li", GitHub: "gh", Facebook: "false"},
	}
	assert.Equal(t, SourceBackend, res.Source)
	assert.Equal(t, want, res.Value)
}

func TestService_EmptyPayload(t *testing.T) {
	for _, raw := range []string{`null`, `{}`, `{"skills":[["Name","Level"]],"personalInfo":"x"}`} {
		t.Run(raw, func(t *testing.T) {
			s := newTestService(t, &fakeFetcher{raw: raw})
			ctx := context.Background()

			p := s.Profile(ctx)
			assert.Equal(t, SourceEmpty, p.Source)
			assert.Equal(t, DefaultProfile(), p.Value)
			assert.NoError(t, p.Err)

			sk := s.Skills(ctx)
			assert.Equal(t, SourceEmpty, sk.Source)
			assert.NotNil(t, sk.Value)
			assert.Empty(t, sk.Value)

			all := s.All(ctx)
			assert.Equal(t, SourceEmpty, all.Source)
		})
	}
}

func TestService_FetchFailureFallsBack(t *testing.T) {
	boom := errors.New("boom")
	s := newTestService(t, &fakeFetcher{err: boom})
	ctx := context.Background()

	p := s.Profile(ctx)
	assert.Equal(t, SourceFallback, p.Source)
	assert.ErrorIs(t, p.Err, boom)
	assert.Equal(t, DefaultProfile(), p.Value)

	assert.Equal(t, DefaultSkills(), s.Skills(ctx).Value)
	assert.Equal(t, DefaultCertificates(), s.Certificates(ctx).Value)
	assert.Equal(t, DefaultProjects(), s.Projects(ctx).Value)
	assert.Equal(t, []BlogPost{}, s.BlogPosts(ctx).Value)
	assert.Equal(t, DefaultContactInfo(), s.ContactInfo(ctx).Value)

	all := s.All(ctx)
	assert.Equal(t, SourceFallback, all.Source)
	assert.ErrorIs(t, all.Err, boom)
}

func TestService_MalformedPayloadFallsBack(t *testing.T) {
	s := newTestService(t, &fakeFetcher{raw: `[1,2,3]`})
	res := s.Skills(context.Background())
	assert.Equal(t, SourceFallback, res.Source)
	assert.Error(t, res.Err)
}

func TestService_AllFetchesOnce(t *testing.T) {
	f := &fakeFetcher{raw: fullPayload}
	s := newTestService(t, f)

	res := s.All(context.Background())
	assert.Equal(t, 1, f.calls)
	assert.Equal(t, SourceBackend, res.Source)
	assert.Equal(t, "Ada", res.Value.Profile.Name)
	assert.Len(t, res.Value.Skills, 3)
	assert.Len(t, res.Value.Certificates, 1)
	assert.Len(t, res.Value.Projects, 2)
	assert.Len(t, res.Value.BlogPosts, 2)
	assert.Equal(t, "Berlin", res.Value.Contact.Location)
}

func TestSource_String(t *testing.T) {
	assert.Equal(t, "backend", SourceBackend.String())
	assert.Equal(t, "empty", SourceEmpty.String())
	assert.Equal(t, "fallback", SourceFallback.String())
	assert.Equal(t, "Source(9)", Source(9).String())
}
