package stats

import (
	"prestige/internal/attribution"
	"prestige/internal/awards"
)

// PerThousand scales densities to titles per thousand.
const PerThousand = 1000.0

// Counts holds winner and nominee totals.
type Counts struct {
	Winners  int `json:"winners"`
	Nominees int `json:"nominees"`
}

func (c *Counts) add(outcome awards.Outcome) {
	if outcome == awards.Winner {
		c.Winners++
	} else {
		c.Nominees++
	}
}

// Overlap partitions the award-winning titles by the sources they won under.
// Both counts titles with winner flags from more than one source; Exclusive
// counts, per source, titles that won only there.
type Overlap struct {
	Both      int            `json:"both"`
	Exclusive map[string]int `json:"exclusive"`
}

// Total returns Both plus every exclusive count.
func (o Overlap) Total() int {
	total := o.Both
	for _, n := range o.Exclusive {
		total += n
	}
	return total
}

// Stats is the aggregate view of one flagged platform catalog.
type Stats struct {
	Platform      string                       `json:"platform"`
	CatalogSize   int                          `json:"catalog_size"`
	SourceOrder   []string                     `json:"source_order"`
	Sources       map[string]Counts            `json:"sources"`
	Categories    map[string]map[string]Counts `json:"categories"`
	TotalAwards   int                          `json:"total_awards"`
	Overlap       Overlap                      `json:"overlap"`
	Density       float64                      `json:"density"`
	SourceDensity map[string]float64           `json:"source_density"`
}

// Density returns count per thousand of size, or 0 for an empty catalog.
func Density(count, size int) float64 {
	if size <= 0 {
		return 0
	}
	return float64(count) * PerThousand / float64(size)
}

// Aggregate computes the metrics of a flagged catalog.
func Aggregate(f *attribution.Flagged) Stats {
	s := Stats{
		Sources:       map[string]Counts{},
		Categories:    map[string]map[string]Counts{},
		Overlap:       Overlap{Exclusive: map[string]int{}},
		SourceDensity: map[string]float64{},
	}
	if f == nil {
		return s
	}
	s.Platform = f.Platform
	s.CatalogSize = f.Len()
	s.SourceOrder = f.SourceIDs()

	for _, id := range s.SourceOrder {
		s.Sources[id] = Counts{}
		s.Categories[id] = map[string]Counts{}
		s.Overlap.Exclusive[id] = 0
	}
	for _, flag := range f.Flags {
		s.Categories[flag.Source][flag.Category] = Counts{}
	}

	for _, row := range f.Rows {
		for _, flag := range f.Flags {
			if !row.Flag(flag) {
				continue
			}
			source := s.Sources[flag.Source]
			source.add(flag.Outcome)
			s.Sources[flag.Source] = source

			category := s.Categories[flag.Source][flag.Category]
			category.add(flag.Outcome)
			s.Categories[flag.Source][flag.Category] = category
		}

		if !row.HasAnyAward {
			continue
		}
		s.TotalAwards++
		if row.WinningSources() > 1 {
			s.Overlap.Both++
			continue
		}
		for _, id := range s.SourceOrder {
			if row.HasAward(id) {
				s.Overlap.Exclusive[id]++
				break
			}
		}
	}

	s.Density = Density(s.TotalAwards, s.CatalogSize)
	for _, id := range s.SourceOrder {
		s.SourceDensity[id] = Density(s.Sources[id].Winners, s.CatalogSize)
	}
	return s
}
