package attribution

import (
	"fmt"

	"prestige/internal/awards"
	"prestige/internal/catalog"
)

const (
	// TitleKeyColumn names the normalized-key column in enriched output.
	TitleKeyColumn = "title_key"
	// HasAnyAwardColumn names the cross-source award flag.
	HasAnyAwardColumn = "has_any_award"
)

// Flag identifies one (source, category, outcome) membership test.
type Flag struct {
	Source   string
	Category string
	Outcome  awards.Outcome
}

// Name returns the column name of the flag.
func (f Flag) Name() string {
	return fmt.Sprintf("%s_%s_%s", f.Source, f.Category, f.Outcome)
}

// HasSourceColumn returns the derived column name for a source.
func HasSourceColumn(source string) string {
	return "has_" + source
}

// Row is a catalog entry enriched with award flags.
type Row struct {
	Entry       catalog.Entry
	Key         string
	Flags       map[Flag]bool
	Sources     map[string]bool
	HasAnyAward bool
}

// Flag reports the value of a single flag.
func (r Row) Flag(flag Flag) bool {
	return r.Flags[flag]
}

// HasAward reports whether the row won under source.
func (r Row) HasAward(source string) bool {
	return r.Sources[source]
}

// WinningSources returns how many sources the row won under.
func (r Row) WinningSources() int {
	n := 0
	for _, won := range r.Sources {
		if won {
			n++
		}
	}
	return n
}

// Flagged is a catalog enriched with award flags.
type Flagged struct {
	Platform string
	Columns  []string
	Flags    []Flag
	Sources  []awards.SourceSpec
	Rows     []Row
}

// Len returns the catalog size.
func (f *Flagged) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Rows)
}

// SourceIDs returns the attributed source IDs in input order.
func (f *Flagged) SourceIDs() []string {
	ids := make([]string, len(f.Sources))
	for i, source := range f.Sources {
		ids[i] = source.ID
	}
	return ids
}

// FlagsFor returns the flags of one source in layout order.
func (f *Flagged) FlagsFor(source string) []Flag {
	var out []Flag
	for _, flag := range f.Flags {
		if flag.Source == source {
			out = append(out, flag)
		}
	}
	return out
}

// FlagColumns lists the flag column names: per-flag columns in layout order,
// then has_<source> per source, then has_any_award.
func (f *Flagged) FlagColumns() []string {
	columns := make([]string, 0, len(f.Flags)+len(f.Sources)+1)
	for _, flag := range f.Flags {
		columns = append(columns, flag.Name())
	}
	for _, source := range f.Sources {
		columns = append(columns, HasSourceColumn(source.ID))
	}
	return append(columns, HasAnyAwardColumn)
}

// Header returns the enriched table header: the original columns, the title
// key and every flag column.
func (f *Flagged) Header() []string {
	header := make([]string, 0, len(f.Columns)+1+len(f.Flags)+len(f.Sources)+1)
	header = append(header, f.Columns...)
	header = append(header, TitleKeyColumn)
	return append(header, f.FlagColumns()...)
}

// Records renders every row of the enriched table. Short original rows are
// padded so each record lines up with Header.
func (f *Flagged) Records() [][]string {
	records := make([][]string, len(f.Rows))
	for i, row := range f.Rows {
		record := make([]string, len(f.Columns), len(f.Columns)+1+len(f.Flags)+len(f.Sources)+1)
		copy(record, row.Entry.Row)
		record = append(record, row.Key)
		for _, flag := range f.Flags {
			record = append(record, formatBool(row.Flags[flag]))
		}
		for _, source := range f.Sources {
			record = append(record, formatBool(row.Sources[source.ID]))
		}
		records[i] = append(record, formatBool(row.HasAnyAward))
	}
	return records
}

func formatBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
