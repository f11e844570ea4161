package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"prestige/internal/analysis"
	"prestige/internal/textutil"
)

// Chart kinds understood by the renderer.
const (
	KindBar        = "bar"
	KindStackedBar = "stacked_bar"
	KindScatter    = "scatter"
)

// Series is the data behind one chart.
type Series struct {
	Name     string    `json:"name"`
	Title    string    `json:"title"`
	Kind     string    `json:"kind"`
	XLabel   string    `json:"x_label,omitempty"`
	YLabel   string    `json:"y_label,omitempty"`
	Labels   []string  `json:"labels,omitempty"`
	Datasets []Dataset `json:"datasets,omitempty"`
	Points   []Point   `json:"points,omitempty"`
	// Reference marks the quadrant lines of a scatter chart.
	Reference *Point `json:"reference,omitempty"`
}

// Dataset is one bar group, aligned with Series.Labels.
type Dataset struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// Point is one labeled scatter point.
type Point struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// ChartSeries derives every chart of a run: per-source category breakdown
// and density, the combined winners/nominees comparison, total and stacked
// award counts, overall density, and the positioning matrix.
func ChartSeries(result *analysis.Result) []Series {
	if result == nil || len(result.Stats) == 0 {
		return nil
	}
	platforms := make([]string, len(result.Stats))
	for i, s := range result.Stats {
		platforms[i] = s.Platform
	}
	specs := result.SourceSpecs()

	var out []Series
	for _, source := range specs {
		name := source.DisplayName()
		byCategory := Series{
			Name:   source.ID + "_by_category",
			Title:  name + " Awards by Category",
			Kind:   KindBar,
			YLabel: "Number of Films",
			Labels: platforms,
		}
		for _, category := range source.Categories {
			label := CategoryLabel(category.Name)
			winners := Dataset{Label: label + " Winners"}
			nominees := Dataset{Label: label + " Nominees"}
			for _, s := range result.Stats {
				counts := s.Categories[source.ID][category.Name]
				winners.Values = append(winners.Values, float64(counts.Winners))
				nominees.Values = append(nominees.Values, float64(counts.Nominees))
			}
			byCategory.Datasets = append(byCategory.Datasets, winners, nominees)
		}
		out = append(out, byCategory)

		density := Dataset{Label: name + " Winners per 1,000 Titles"}
		for _, s := range result.Stats {
			density.Values = append(density.Values, s.SourceDensity[source.ID])
		}
		out = append(out, Series{
			Name:     source.ID + "_density",
			Title:    name + " Winners per 1,000 Titles",
			Kind:     KindBar,
			YLabel:   "Winners per 1,000 Titles",
			Labels:   platforms,
			Datasets: []Dataset{density},
		})
	}

	combined := Series{
		Name:   "combined_winners_nominees",
		Title:  "Winners and Nominees by Award",
		Kind:   KindBar,
		YLabel: "Number of Films",
		Labels: platforms,
	}
	for _, source := range specs {
		name := source.DisplayName()
		winners := Dataset{Label: name + " Winners"}
		nominees := Dataset{Label: name + " Nominees"}
		for _, s := range result.Stats {
			winners.Values = append(winners.Values, float64(s.Sources[source.ID].Winners))
			nominees.Values = append(nominees.Values, float64(s.Sources[source.ID].Nominees))
		}
		combined.Datasets = append(combined.Datasets, winners, nominees)
	}
	out = append(out, combined)

	totals := Dataset{Label: "Total Awards"}
	both := Dataset{Label: "Both Awards"}
	densities := Dataset{Label: "Awards per 1,000 Titles"}
	for _, s := range result.Stats {
		totals.Values = append(totals.Values, float64(s.TotalAwards))
		both.Values = append(both.Values, float64(s.Overlap.Both))
		densities.Values = append(densities.Values, s.Density)
	}
	out = append(out, Series{
		Name:     "total_awards",
		Title:    "Total Award-Winning Content",
		Kind:     KindBar,
		YLabel:   "Total Unique Award Films",
		Labels:   platforms,
		Datasets: []Dataset{totals},
	})

	stacked := Series{
		Name:   "stacked_awards",
		Title:  "Award-Winning Titles by Source",
		Kind:   KindStackedBar,
		YLabel: "Number of Films",
		Labels: platforms,
	}
	for _, source := range specs {
		only := Dataset{Label: source.DisplayName() + " Only"}
		for _, s := range result.Stats {
			only.Values = append(only.Values, float64(s.Overlap.Exclusive[source.ID]))
		}
		stacked.Datasets = append(stacked.Datasets, only)
	}
	stacked.Datasets = append(stacked.Datasets, both)
	out = append(out, stacked, Series{
		Name:     "award_density",
		Title:    "Award Winners Density",
		Kind:     KindBar,
		YLabel:   "Award Films per 1,000 Titles",
		Labels:   platforms,
		Datasets: []Dataset{densities},
	})

	if len(result.Positioning) > 0 {
		positioning := Series{
			Name:   "strategic_positioning",
			Title:  "Strategic Positioning: Volume vs Quality",
			Kind:   KindScatter,
			XLabel: "Catalog Size (Number of Titles)",
			YLabel: "Prestige Density (Awards per 1,000 Titles)",
			Reference: &Point{
				Label: "mean",
				X:     result.Positioning[0].MeanVolume,
				Y:     result.Positioning[0].MeanDensity,
			},
		}
		for _, p := range result.Positioning {
			positioning.Points = append(positioning.Points, Point{Label: p.Platform, X: float64(p.Volume), Y: p.Density})
		}
		out = append(out, positioning)
	}
	return out
}

// WriteChartSeries writes each series to dir as <name>.json and returns the
// written paths.
func WriteChartSeries(dir string, series []Series) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart directory: %w", err)
	}
	paths := make([]string, 0, len(series))
	for _, s := range series {
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return paths, fmt.Errorf("encode chart %s: %w", s.Name, err)
		}
		path := filepath.Join(dir, textutil.SanitizeToken(s.Name)+".json")
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return paths, fmt.Errorf("write chart %s: %w", s.Name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
