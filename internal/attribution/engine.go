package attribution

import (
	"sync"

	"prestige/internal/awards"
	"prestige/internal/catalog"
	"prestige/internal/textutil"
)

// Engine attributes catalogs against a fixed collection of classified sets.
type Engine struct {
	// Workers splits rows across goroutines when greater than one. The result
	// is identical to a sequential run.
	Workers int

	sets  []*awards.Classified
	flags []Flag
}

// NewEngine builds an engine over the given sources. Nil sets are ignored.
func NewEngine(sets ...*awards.Classified) *Engine {
	e := &Engine{}
	for _, set := range sets {
		if set == nil {
			continue
		}
		e.sets = append(e.sets, set)
		for _, category := range set.Categories() {
			for _, outcome := range awards.Outcomes {
				e.flags = append(e.flags, Flag{Source: set.Source.ID, Category: category, Outcome: outcome})
			}
		}
	}
	return e
}

// Attribute flags every entry of cat with NewEngine(sets...).
func Attribute(cat catalog.Catalog, sets ...*awards.Classified) *Flagged {
	return NewEngine(sets...).Attribute(cat)
}

// Attribute returns a flagged copy of cat.
func (e *Engine) Attribute(cat catalog.Catalog) *Flagged {
	sources := make([]awards.SourceSpec, len(e.sets))
	for i, set := range e.sets {
		sources[i] = set.Source
	}
	columns := make([]string, len(cat.Columns))
	copy(columns, cat.Columns)
	flags := make([]Flag, len(e.flags))
	copy(flags, e.flags)

	out := &Flagged{
		Platform: cat.Platform,
		Columns:  columns,
		Flags:    flags,
		Sources:  sources,
		Rows:     make([]Row, len(cat.Entries)),
	}

	workers := e.Workers
	if workers > len(cat.Entries) {
		workers = len(cat.Entries)
	}
	if workers <= 1 {
		for i, entry := range cat.Entries {
			out.Rows[i] = e.attributeRow(entry)
		}
		return out
	}

	chunk := (len(cat.Entries) + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < len(cat.Entries); start += chunk {
		end := min(start+chunk, len(cat.Entries))
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				out.Rows[i] = e.attributeRow(cat.Entries[i])
			}
		}(start, end)
	}
	wg.Wait()
	return out
}

func (e *Engine) attributeRow(entry catalog.Entry) Row {
	key := textutil.NormalizeTitle(entry.Title)
	row := Row{
		Entry:   entry,
		Key:     key,
		Flags:   make(map[Flag]bool, len(e.flags)),
		Sources: make(map[string]bool, len(e.sets)),
	}
	for _, set := range e.sets {
		won := row.Sources[set.Source.ID]
		for _, category := range set.Categories() {
			for _, outcome := range awards.Outcomes {
				hit := key != "" && set.Contains(category, outcome, key)
				flag := Flag{Source: set.Source.ID, Category: category, Outcome: outcome}
				row.Flags[flag] = row.Flags[flag] || hit
				if outcome == awards.Winner && hit {
					won = true
				}
			}
		}
		row.Sources[set.Source.ID] = won
		row.HasAnyAward = row.HasAnyAward || won
	}
	return row
}
