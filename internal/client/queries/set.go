package queries

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/folioadmin/folio/internal/client/services"
	"github.com/folioadmin/folio/internal/client/sheets"
)

// Cache keys, one per content domain.
const (
	KeyProfile      = "personalInfo"
	KeySkills       = "skills"
	KeyCertificates = "certificates"
	KeyProjects     = "projects"
	KeyBlogPosts    = "blogPosts"
	KeyContactInfo  = "contactInfo"
)

// DataSource is the data access layer as seen by the queries.
type DataSource interface {
	Profile(ctx context.Context) sheets.Result[sheets.Profile]
	Skills(ctx context.Context) sheets.Result[[]sheets.Skill]
	Certificates(ctx context.Context) sheets.Result[[]sheets.Certificate]
	Projects(ctx context.Context) sheets.Result[[]sheets.Project]
	BlogPosts(ctx context.Context) sheets.Result[[]sheets.BlogPost]
	ContactInfo(ctx context.Context) sheets.Result[sheets.ContactInfo]
}

// AuthSignal reports and publishes the authentication state.
type AuthSignal interface {
	VerifySession(ctx context.Context) bool
	Subscribe(fn func(services.State)) (unsubscribe func())
}

type member interface {
	Key() string
	SetEnabled(on bool)
	Start(ctx context.Context)
	Stop()
	refresh(ctx context.Context) error
}

func (q *Query[T]) refresh(ctx context.Context) error {
	_, err := q.Refresh(ctx)
	return err
}

// Set holds one query per content domain, all following the auth state.
type Set struct {
	Profile      *Query[sheets.Result[sheets.Profile]]
	Skills       *Query[sheets.Result[[]sheets.Skill]]
	Certificates *Query[sheets.Result[[]sheets.Certificate]]
	Projects     *Query[sheets.Result[[]sheets.Project]]
	BlogPosts    *Query[sheets.Result[[]sheets.BlogPost]]
	ContactInfo  *Query[sheets.Result[sheets.ContactInfo]]

	unsub func()
}

// NewSet builds the queries, enables them if a session is active now and
// keeps them in step with later logins and logouts.
func NewSet(ctx context.Context, src DataSource, auth AuthSignal, opt Options) *Set {
	s := &Set{
		Profile:      New(KeyProfile, src.Profile, opt),
		Skills:       New(KeySkills, src.Skills, opt),
		Certificates: New(KeyCertificates, src.Certificates, opt),
		Projects:     New(KeyProjects, src.Projects, opt),
		BlogPosts:    New(KeyBlogPosts, src.BlogPosts, opt),
		ContactInfo:  New(KeyContactInfo, src.ContactInfo, opt),
	}
	s.unsub = auth.Subscribe(func(st services.State) {
		s.setEnabled(st == services.ActiveSession)
	})
	s.setEnabled(auth.VerifySession(ctx))
	return s
}

func (s *Set) members() []member {
	return []member{s.Profile, s.Skills, s.Certificates, s.Projects, s.BlogPosts, s.ContactInfo}
}

func (s *Set) setEnabled(on bool) {
	for _, m := range s.members() {
		m.SetEnabled(on)
	}
}

// Start runs every query's refetch loop.
func (s *Set) Start(ctx context.Context) {
	for _, m := range s.members() {
		m.Start(ctx)
	}
}

// RefreshAll refetches every domain concurrently and returns the first error.
func (s *Set) RefreshAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, m := range s.members() {
		g.Go(func() error {
			return m.refresh(gctx)
		})
	}
	return g.Wait()
}

// Stop detaches from the auth signal and stops every query.
func (s *Set) Stop() {
	s.unsub()
	for _, m := range s.members() {
		m.Stop()
	}
}
