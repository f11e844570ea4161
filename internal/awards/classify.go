package awards

import (
	"errors"
	"fmt"

	"prestige/internal/table"
	"prestige/internal/textutil"
)

// CategorySet holds the winner and nominee keys of one semantic category.
// The two sets are independent: a title recorded as a winner one year and a
// nominee another is present in both.
type CategorySet struct {
	Winners  KeySet
	Nominees KeySet
}

func newCategorySet() *CategorySet {
	return &CategorySet{Winners: KeySet{}, Nominees: KeySet{}}
}

// Keys returns the set for outcome.
func (c *CategorySet) Keys(outcome Outcome) KeySet {
	if c == nil {
		return nil
	}
	if outcome == Winner {
		return c.Winners
	}
	return c.Nominees
}

// ClassifyStats counts how the rows of a raw award table were handled.
type ClassifyStats struct {
	Rows       int
	Unmapped   int
	Matched    int
	Winners    int
	Nominees   int
	Excluded   int
	Malformed  int
	EmptyTitle int
}

// Classified is the read-only result of classifying one award source.
type Classified struct {
	Source SourceSpec
	Stats  ClassifyStats

	sets map[string]*CategorySet
}

// Category returns the sets for a semantic category, or nil if the source
// does not track it.
func (c *Classified) Category(name string) *CategorySet {
	if c == nil {
		return nil
	}
	return c.sets[name]
}

// Contains reports whether key is recorded with outcome under category.
func (c *Classified) Contains(category string, outcome Outcome, key string) bool {
	return c.Category(category).Keys(outcome).Has(key)
}

// Categories returns the tracked category names in declaration order.
func (c *Classified) Categories() []string {
	if c == nil {
		return nil
	}
	return c.Source.CategoryNames()
}

// Classify partitions a raw award table into per-category winner and nominee
// key sets according to spec. Rows whose label maps to no category are
// ignored; rows with a malformed outcome cell or a blank title are skipped.
// A table lacking one of the source columns is rejected with
// table.ErrMissingColumn.
func Classify(raw table.Table, spec SourceSpec) (*Classified, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	decoder, err := DecoderFor(spec.Strategy)
	if err != nil {
		return nil, err
	}
	if err := raw.Require(spec.TitleColumn, spec.LabelColumn, spec.WinnerColumn); err != nil {
		return nil, fmt.Errorf("classify %s: %w", spec.ID, err)
	}
	titleIdx, _ := raw.Index(spec.TitleColumn)
	labelIdx, _ := raw.Index(spec.LabelColumn)
	winnerIdx, _ := raw.Index(spec.WinnerColumn)

	result := &Classified{
		Source: spec,
		sets:   make(map[string]*CategorySet, len(spec.Categories)),
	}
	for _, category := range spec.Categories {
		result.sets[category.Name] = newCategorySet()
	}
	labels := spec.labelIndex()

	stats := &result.Stats
	for row := range raw.Rows {
		stats.Rows++
		category, mapped := labels[raw.Cell(row, labelIdx)]
		if !mapped {
			stats.Unmapped++
			continue
		}
		outcome, ok, err := decoder.Decode(raw.Cell(row, winnerIdx))
		if err != nil {
			if errors.Is(err, errMalformedCell) {
				stats.Malformed++
				continue
			}
			return nil, err
		}
		if !ok {
			stats.Excluded++
			continue
		}
		key := textutil.NormalizeTitle(raw.Cell(row, titleIdx))
		if key == "" {
			stats.EmptyTitle++
			continue
		}
		stats.Matched++
		result.sets[category].Keys(outcome).Add(key)
		if outcome == Winner {
			stats.Winners++
		} else {
			stats.Nominees++
		}
	}
	return result, nil
}
