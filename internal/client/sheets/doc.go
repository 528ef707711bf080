// Package sheets is the data access layer for the portfolio content.
//
// The backend returns every content sheet in one payload, each as a 2-D array
// whose first row is the header. Rows are mapped to records through a fixed
// column table per sheet (see Layouts). Missing, empty or unparsable cells
// take the field default.
//
// Accessors never fail. Each returns a Result tagged with where the value
// came from, so callers can tell "nothing configured" (SourceEmpty) from
// "fetch failed, defaults shown" (SourceFallback).
package sheets
