package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"prestige/internal/analysis"
	"prestige/internal/stats"
)

// Report is the machine readable form of an analysis run.
type Report struct {
	RunID       string              `json:"run_id"`
	GeneratedAt time.Time           `json:"generated_at"`
	Sources     []SourceSummary     `json:"sources"`
	Platforms   []stats.Stats       `json:"platforms"`
	Positioning []stats.Positioning `json:"positioning"`
}

// SourceSummary describes how one award dataset was classified.
type SourceSummary struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
	Rows       int      `json:"rows"`
	Matched    int      `json:"matched"`
	Winners    int      `json:"winners"`
	Nominees   int      `json:"nominees"`
	Unmapped   int      `json:"unmapped"`
	Excluded   int      `json:"excluded"`
	Malformed  int      `json:"malformed"`
	EmptyTitle int      `json:"empty_title"`
}

// New assembles a Report from an analysis result.
func New(result *analysis.Result) Report {
	if result == nil {
		return Report{}
	}
	r := Report{
		RunID:       result.RunID,
		GeneratedAt: result.StartedAt,
		Sources:     make([]SourceSummary, 0, len(result.Sources)),
		Platforms:   result.Stats,
		Positioning: result.Positioning,
	}
	for _, set := range result.Sources {
		s := set.Stats
		r.Sources = append(r.Sources, SourceSummary{
			ID:         set.Source.ID,
			Name:       set.Source.DisplayName(),
			Categories: set.Source.CategoryNames(),
			Rows:       s.Rows,
			Matched:    s.Matched,
			Winners:    s.Winners,
			Nominees:   s.Nominees,
			Unmapped:   s.Unmapped,
			Excluded:   s.Excluded,
			Malformed:  s.Malformed,
			EmptyTitle: s.EmptyTitle,
		})
	}
	return r
}

// JSON writes r as indented JSON.
func JSON(w io.Writer, r Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
