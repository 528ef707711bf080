package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/folioadmin/folio/internal/client/sheets"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// printSource tells the user where the data came from when it is not the
// backend.
func printSource(w io.Writer, src sheets.Source, err error) {
	switch src {
	case sheets.SourceEmpty:
		fmt.Fprintln(w, "(no data configured, showing defaults)")
	case sheets.SourceFallback:
		fmt.Fprintf(w, "(backend unavailable, showing defaults: %v)\n", err)
	}
}

func printProfile(w io.Writer, p sheets.Profile) error {
	t := newTable(w)
	fmt.Fprintf(t, "name:\t%s\n", p.Name)
	fmt.Fprintf(t, "title:\t%s\n", p.Title)
	fmt.Fprintf(t, "bio:\t%s\n", p.Bio)
	fmt.Fprintf(t, "email:\t%s\n", orDash(p.Email))
	fmt.Fprintf(t, "phone:\t%s\n", orDash(p.Phone))
	fmt.Fprintf(t, "location:\t%s\n", orDash(p.Location))
	fmt.Fprintf(t, "image:\t%s\n", orDash(p.ProfileImageURL))
	fmt.Fprintf(t, "cv:\t%s\n", orDash(p.CVFileURL))
	return t.Flush()
}

func printSkills(w io.Writer, skills []sheets.Skill) error {
	if len(skills) == 0 {
		fmt.Fprintln(w, "(none)")
		return nil
	}
	t := newTable(w)
	fmt.Fprintln(t, "NAME\tLEVEL\tCATEGORY")
	for _, s := range skills {
		fmt.Fprintf(t, "%s\t%d\t%s\n", s.Name, s.Level, s.Category)
	}
	return t.Flush()
}

func printCertificates(w io.Writer, certs []sheets.Certificate) error {
	if len(certs) == 0 {
		fmt.Fprintln(w, "(none)")
		return nil
	}
	t := newTable(w)
	fmt.Fprintln(t, "ID\tTITLE\tISSUER\tDATE")
	for _, c := range certs {
		fmt.Fprintf(t, "%s\t%s\t%s\t%s\n", c.ID, c.Title, orDash(c.Issuer), orDash(c.Date))
	}
	return t.Flush()
}

func printProjects(w io.Writer, projects []sheets.Project) error {
	if len(projects) == 0 {
		fmt.Fprintln(w, "(none)")
		return nil
	}
	t := newTable(w)
	fmt.Fprintln(t, "ID\tTITLE\tSTATUS\tFEATURED\tTAGS")
	for _, p := range projects {
		fmt.Fprintf(t, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Status, yesNo(p.Featured), strings.Join(p.Tags, ", "))
	}
	return t.Flush()
}

func printBlogPosts(w io.Writer, posts []sheets.BlogPost) error {
	if len(posts) == 0 {
		fmt.Fprintln(w, "(none)")
		return nil
	}
	t := newTable(w)
	fmt.Fprintln(t, "ID\tTITLE\tPUBLISHED\tMINUTES\tTAGS")
	for _, p := range posts {
		fmt.Fprintf(t, "%s\t%s\t%s\t%d\t%s\n", p.ID, p.Title, orDash(p.PublishDate), p.ReadingTime, strings.Join(p.Tags, ", "))
	}
	return t.Flush()
}

func printContact(w io.Writer, c sheets.ContactInfo) error {
	t := newTable(w)
	fmt.Fprintf(t, "email:\t%s\n", orDash(c.Email))
	fmt.Fprintf(t, "phone:\t%s\n", orDash(c.Phone))
	fmt.Fprintf(t, "location:\t%s\n", orDash(c.Location))
	fmt.Fprintf(t, "linkedin:\t%s\n", orDash(c.SocialLinks.LinkedIn))
	fmt.Fprintf(t, "github:\t%s\n", orDash(c.SocialLinks.GitHub))
	fmt.Fprintf(t, "twitter:\t%s\n", orDash(c.SocialLinks.Twitter))
	fmt.Fprintf(t, "facebook:\t%s\n", orDash(c.SocialLinks.Facebook))
	return t.Flush()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
