package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/folioadmin/folio/internal/client/queries"
	"github.com/folioadmin/folio/internal/client/sheets"
)

// fromQuery reads q, turning a disabled query into errLoginRequired.
func fromQuery[T any](ctx context.Context, q *queries.Query[sheets.Result[T]]) (sheets.Result[T], error) {
	r, err := q.Get(ctx)
	if errors.Is(err, queries.ErrDisabled) {
		return r, errLoginRequired
	}
	return r, err
}

// Show prints one content domain from the query cache.
func (a *App) Show(ctx context.Context, domain string) error {
	switch domain {
	case "profile":
		r, err := fromQuery(ctx, a.queries.Profile)
		if err != nil {
			return err
		}
		printSource(a.out, r.Source, r.Err)
		return printProfile(a.out, r.Value)

	case "skills":
		r, err := fromQuery(ctx, a.queries.Skills)
		if err != nil {
			return err
		}
		printSource(a.out, r.Source, r.Err)
		return printSkills(a.out, r.Value)

	case "certificates":
		r, err := fromQuery(ctx, a.queries.Certificates)
		if err != nil {
			return err
		}
		printSource(a.out, r.Source, r.Err)
		return printCertificates(a.out, r.Value)

	case "projects":
		r, err := fromQuery(ctx, a.queries.Projects)
		if err != nil {
			return err
		}
		printSource(a.out, r.Source, r.Err)
		return printProjects(a.out, r.Value)

	case "blog":
		r, err := fromQuery(ctx, a.queries.BlogPosts)
		if err != nil {
			return err
		}
		printSource(a.out, r.Source, r.Err)
		return printBlogPosts(a.out, r.Value)

	case "contact":
		r, err := fromQuery(ctx, a.queries.ContactInfo)
		if err != nil {
			return err
		}
		printSource(a.out, r.Source, r.Err)
		return printContact(a.out, r.Value)
	}
	return fmt.Errorf("unknown content domain %q", domain)
}

// ShowAll fetches every domain in one backend request and prints it as JSON.
func (a *App) ShowAll(ctx context.Context) error {
	if !a.auth.VerifySession(ctx) {
		return errLoginRequired
	}
	r := a.content.All(ctx)
	printSource(a.out, r.Source, r.Err)
	return printJSON(a.out, r.Value)
}

// Refresh refetches every domain, ignoring staleness.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.queries.RefreshAll(ctx); err != nil {
		if errors.Is(err, queries.ErrDisabled) {
			return errLoginRequired
		}
		return err
	}
	fmt.Fprintln(a.out, "Content refreshed.")
	return nil
}
