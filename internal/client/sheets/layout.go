package sheets

import (
	"fmt"
	"sync"

	"github.com/folioadmin/folio/internal/common"
)

// Column binds a field name to a zero-based cell position.
type Column struct {
	Index int
	Field string
}

// Layout describes one content sheet: where it lives in the portfolio payload
// and which field each column holds.
type Layout struct {
	Sheet   string
	Key     string
	Columns []Column
	// Required is the field a row must have to be kept.
	Required string

	index map[string]int
}

// Field names shared by several layouts.
const (
	FieldName        = "name"
	FieldTitle       = "title"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldLocation    = "location"
	FieldImageURL    = "imageUrl"
	FieldDate        = "date"
	FieldDescription = "description"
	FieldTags        = "tags"
	FieldCategory    = "category"
)

func columns(fields ...string) []Column {
	cols := make([]Column, len(fields))
	for i, f := range fields {
		cols[i] = Column{Index: i, Field: f}
	}
	return cols
}

var (
	HomeLayout = &Layout{
		Sheet: "Home", Key: "personalInfo",
		Columns: columns(FieldName, FieldTitle, "bio", FieldEmail, FieldPhone, FieldLocation, "profileImageUrl", "cvFileUrl"),
	}
	SkillsLayout = &Layout{
		Sheet: "Skills", Key: "skills", Required: FieldName,
		Columns: columns(FieldName, "level", FieldCategory, "icon"),
	}
	CertificatesLayout = &Layout{
		Sheet: "Certificates", Key: "certificates", Required: FieldTitle,
		Columns: columns(FieldTitle, "issuer", FieldDate, FieldDescription, FieldImageURL, "credentialUrl"),
	}
	PortfolioLayout = &Layout{
		Sheet: "Portfolio", Key: "projects", Required: FieldTitle,
		Columns: columns(FieldTitle, FieldDescription, FieldImageURL, "demoUrl", "githubUrl", FieldTags, FieldCategory, FieldDate, "status", "featured"),
	}
	BlogLayout = &Layout{
		Sheet: "Blog", Key: "blogPosts", Required: FieldTitle,
		Columns: columns(FieldTitle, "summary", FieldImageURL, "publishDate", "readingTime", FieldTags, "externalUrl"),
	}
	ContactLayout = &Layout{
		Sheet: "Contact", Key: "contactInfo",
		Columns: columns(FieldEmail, FieldPhone, FieldLocation, "linkedin", "github", "twitter", "facebook"),
	}
)

// Layouts lists every content sheet with the column count it must have.
var Layouts = []struct {
	Layout *Layout
	Width  int
}{
	{HomeLayout, 8},
	{SkillsLayout, 4},
	{CertificatesLayout, 6},
	{PortfolioLayout, 10},
	{BlogLayout, 7},
	{ContactLayout, 7},
}

// Validate checks that the columns are contiguous from zero, field names are
// unique and the required field exists, then builds the field index.
func (l *Layout) Validate(width int) error {
	if len(l.Columns) != width {
		return fmt.Errorf("sheet %s: %d columns, want %d", l.Sheet, len(l.Columns), width)
	}
	index := make(map[string]int, len(l.Columns))
	for i, c := range l.Columns {
		if c.Index != i {
			return fmt.Errorf("sheet %s: column %q at index %d, want %d", l.Sheet, c.Field, c.Index, i)
		}
		if c.Field == "" {
			return fmt.Errorf("sheet %s: column %d has no field", l.Sheet, i)
		}
		if _, dup := index[c.Field]; dup {
			return fmt.Errorf("sheet %s: duplicate field %q", l.Sheet, c.Field)
		}
		index[c.Field] = c.Index
	}
	if l.Required != "" {
		if _, ok := index[l.Required]; !ok {
			return fmt.Errorf("sheet %s: required field %q has no column", l.Sheet, l.Required)
		}
	}
	l.index = index
	return nil
}

var (
	validateOnce sync.Once
	validateErr  error
)

// ValidateLayouts validates every built-in layout. The work is done once per
// process.
func ValidateLayouts() error {
	validateOnce.Do(func() {
		for _, e := range Layouts {
			if err := e.Layout.Validate(e.Width); err != nil {
				validateErr = err
				return
			}
		}
	})
	return validateErr
}

// Row is a data row read through a layout.
type Row struct {
	layout *Layout
	cells  []Cell
}

// NewRow binds cells to l. l must have been validated.
func NewRow(l *Layout, cells []Cell) Row {
	return Row{layout: l, cells: cells}
}

// Cell returns the cell for field, or an empty cell when the row is short.
// It panics on a field the layout does not know, which ValidateLayouts and
// the package tests rule out.
func (r Row) Cell(field string) Cell {
	i, ok := r.layout.index[field]
	if !ok {
		panic(fmt.Sprintf("sheets: field %q not in layout %s", field, r.layout.Sheet))
	}
	if i >= len(r.cells) {
		return Cell{}
	}
	return r.cells[i]
}

// Text returns the cell text or def when the cell is empty.
func (r Row) Text(field, def string) string {
	c := r.Cell(field)
	if c.Empty() {
		return def
	}
	return c.String()
}

// Int returns the cell's leading integer or def when there is none or it is 0.
func (r Row) Int(field string, def int) int {
	n, ok := r.Cell(field).Int()
	if !ok || n == 0 {
		return def
	}
	return n
}

func (r Row) Bool(field string) bool {
	return r.Cell(field).Bool()
}

// List splits a comma separated cell.
func (r Row) List(field string) []string {
	return common.SplitList(r.Cell(field).String())
}

// Has reports whether the layout's required field is non-empty.
func (r Row) Has() bool {
	return r.layout.Required == "" || !r.Cell(r.layout.Required).Empty()
}
