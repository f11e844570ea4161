// Package catalog models a streaming platform's title catalog as read from a
// raw table. Entries keep every original cell so downstream emitters can write
// the enriched table back out with its source columns intact.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"prestige/internal/table"
)

// DefaultTitleColumn is the column holding the title in the bundled catalogs.
const DefaultTitleColumn = "title"

// Entry is one catalog row.
type Entry struct {
	Title string
	Row   []string
}

// Catalog is the ordered set of entries for one platform.
type Catalog struct {
	Platform    string
	Columns     []string
	TitleColumn string
	Entries     []Entry
}

// Len returns the number of entries.
func (c Catalog) Len() int {
	return len(c.Entries)
}

// FromTable builds a catalog from a raw table, reading titles from
// titleColumn. A table without that column is rejected with
// table.ErrMissingColumn.
func FromTable(platform string, t table.Table, titleColumn string) (Catalog, error) {
	platform = strings.TrimSpace(platform)
	if platform == "" {
		return Catalog{}, errors.New("catalog platform must be set")
	}
	if strings.TrimSpace(titleColumn) == "" {
		titleColumn = DefaultTitleColumn
	}
	if err := t.Require(titleColumn); err != nil {
		return Catalog{}, fmt.Errorf("catalog %s: %w", platform, err)
	}
	idx, _ := t.Index(titleColumn)

	entries := make([]Entry, len(t.Rows))
	for i, row := range t.Rows {
		entries[i] = Entry{Title: t.Cell(i, idx), Row: row}
	}
	columns := make([]string, len(t.Columns))
	copy(columns, t.Columns)
	return Catalog{
		Platform:    platform,
		Columns:     columns,
		TitleColumn: titleColumn,
		Entries:     entries,
	}, nil
}

// FromTitles builds a single-column catalog from bare titles.
func FromTitles(platform string, titles ...string) Catalog {
	entries := make([]Entry, len(titles))
	for i, title := range titles {
		entries[i] = Entry{Title: title, Row: []string{title}}
	}
	return Catalog{
		Platform:    platform,
		Columns:     []string{DefaultTitleColumn},
		TitleColumn: DefaultTitleColumn,
		Entries:     entries,
	}
}
