package sheets

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/folioadmin/folio/internal/logging"
)

// Source tells where a Result's value came from.
type Source int

const (
	// SourceBackend means the value was mapped from backend rows.
	SourceBackend Source = iota
	// SourceEmpty means the backend answered but had no rows for the sheet.
	SourceEmpty
	// SourceFallback means the fetch failed and defaults were substituted.
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceBackend:
		return "backend"
	case SourceEmpty:
		return "empty"
	case SourceFallback:
		return "fallback"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// Result is a value plus its provenance. Err is set only for SourceFallback.
type Result[T any] struct {
	Value  T
	Source Source
	Err    error
}

// Fetcher returns the raw getPortfolioData payload.
type Fetcher interface {
	GetPortfolioData(ctx context.Context) (json.RawMessage, error)
}

// Service maps the portfolio payload to content records.
type Service struct {
	fetch Fetcher
	log   logging.Logger
}

// NewService validates the column layouts and returns a Service.
func NewService(f Fetcher, log logging.Logger) (*Service, error) {
	if err := ValidateLayouts(); err != nil {
		return nil, fmt.Errorf("sheet layouts: %w", err)
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Service{fetch: f, log: log.With("component", "sheets")}, nil
}

// payload is the decoded portfolio data, data rows only.
type payload map[string][][]Cell

// decodePayload keeps every key whose value is an array of arrays. Rows that
// are not arrays are skipped, the header row is dropped.
func decodePayload(raw json.RawMessage) (payload, error) {
	p := payload{}
	if len(raw) == 0 || string(raw) == "null" {
		return p, nil
	}
	var sheets map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sheets); err != nil {
		return nil, fmt.Errorf("portfolio payload: %w", err)
	}
	for key, v := range sheets {
		var rows []json.RawMessage
		if err := json.Unmarshal(v, &rows); err != nil {
			continue
		}
		if len(rows) < 2 {
			continue
		}
		data := make([][]Cell, 0, len(rows)-1)
		for _, r := range rows[1:] {
			var cells []Cell
			if err := json.Unmarshal(r, &cells); err != nil {
				continue
			}
			data = append(data, cells)
		}
		p[key] = data
	}
	return p, nil
}

func (p payload) rows(l *Layout) []Row {
	data := p[l.Key]
	rows := make([]Row, len(data))
	for i, cells := range data {
		rows[i] = NewRow(l, cells)
	}
	return rows
}

func (s *Service) load(ctx context.Context, what string) (payload, error) {
	raw, err := s.fetch.GetPortfolioData(ctx)
	if err == nil {
		var p payload
		if p, err = decodePayload(raw); err == nil {
			return p, nil
		}
	}
	s.log.Error(ctx, "portfolio fetch failed, using defaults", "content", what, "error", err)
	return nil, err
}

func single[T any](p payload, l *Layout, mapRow func(Row) T, def func() T) Result[T] {
	rows := p.rows(l)
	if len(rows) == 0 {
		return Result[T]{Value: def(), Source: SourceEmpty}
	}
	return Result[T]{Value: mapRow(rows[0]), Source: SourceBackend}
}

func list[T any](p payload, l *Layout, mapRow func(Row, int) T) Result[[]T] {
	rows := p.rows(l)
	out := make([]T, 0, len(rows))
	for i, r := range rows {
		if !r.Has() {
			continue
		}
		out = append(out, mapRow(r, i+1))
	}
	if len(rows) == 0 {
		return Result[[]T]{Value: out, Source: SourceEmpty}
	}
	return Result[[]T]{Value: out, Source: SourceBackend}
}

func (s *Service) Profile(ctx context.Context) Result[Profile] {
	p, err := s.load(ctx, "profile")
	if err != nil {
		return Result[Profile]{Value: DefaultProfile(), Source: SourceFallback, Err: err}
	}
	return single(p, HomeLayout, profileFromRow, DefaultProfile)
}

func (s *Service) Skills(ctx context.Context) Result[[]Skill] {
	p, err := s.load(ctx, "skills")
	if err != nil {
		return Result[[]Skill]{Value: DefaultSkills(), Source: SourceFallback, Err: err}
	}
	return list(p, SkillsLayout, skillFromRow)
}

func (s *Service) Certificates(ctx context.Context) Result[[]Certificate] {
	p, err := s.load(ctx, "certificates")
	if err != nil {
		return Result[[]Certificate]{Value: DefaultCertificates(), Source: SourceFallback, Err: err}
	}
	return list(p, CertificatesLayout, certificateFromRow)
}

func (s *Service) Projects(ctx context.Context) Result[[]Project] {
	p, err := s.load(ctx, "projects")
	if err != nil {
		return Result[[]Project]{Value: DefaultProjects(), Source: SourceFallback, Err: err}
	}
	return list(p, PortfolioLayout, projectFromRow)
}

func (s *Service) BlogPosts(ctx context.Context) Result[[]BlogPost] {
	p, err := s.load(ctx, "blog posts")
	if err != nil {
		return Result[[]BlogPost]{Value: DefaultBlogPosts(), Source: SourceFallback, Err: err}
	}
	return list(p, BlogLayout, blogPostFromRow)
}

func (s *Service) ContactInfo(ctx context.Context) Result[ContactInfo] {
	p, err := s.load(ctx, "contact")
	if err != nil {
		return Result[ContactInfo]{Value: DefaultContactInfo(), Source: SourceFallback, Err: err}
	}
	return single(p, ContactLayout, contactFromRow, DefaultContactInfo)
}

// All fetches the payload once and maps every sheet. Source is SourceBackend
// when at least one sheet had rows.
func (s *Service) All(ctx context.Context) Result[Portfolio] {
	p, err := s.load(ctx, "all")
	if err != nil {
		return Result[Portfolio]{
			Value: Portfolio{
				Profile:      DefaultProfile(),
				Skills:       DefaultSkills(),
				Certificates: DefaultCertificates(),
				Projects:     DefaultProjects(),
				BlogPosts:    DefaultBlogPosts(),
				Contact:      DefaultContactInfo(),
			},
			Source: SourceFallback,
			Err:    err,
		}
	}

	profile := single(p, HomeLayout, profileFromRow, DefaultProfile)
	skills := list(p, SkillsLayout, skillFromRow)
	certs := list(p, CertificatesLayout, certificateFromRow)
	projects := list(p, PortfolioLayout, projectFromRow)
	posts := list(p, BlogLayout, blogPostFromRow)
	contact := single(p, ContactLayout, contactFromRow, DefaultContactInfo)

	src := SourceEmpty
	for _, s := range []Source{profile.Source, skills.Source, certs.Source, projects.Source, posts.Source, contact.Source} {
		if s == SourceBackend {
			src = SourceBackend
			break
		}
	}
	return Result[Portfolio]{
		Value: Portfolio{
			Profile:      profile.Value,
			Skills:       skills.Value,
			Certificates: certs.Value,
			Projects:     projects.Value,
			BlogPosts:    posts.Value,
			Contact:      contact.Value,
		},
		Source: src,
	}
}
