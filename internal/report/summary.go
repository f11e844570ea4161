package report

import (
	"fmt"
	"strconv"

	"prestige/internal/awards"
	"prestige/internal/stats"
)

// DensityHeader is the summary column holding awards per thousand titles.
const DensityHeader = "Density (per 1,000 titles)"

// SummaryTable is the cross-source overview: one row per platform with its
// deduplicated award count, winners per source, titles that won under more
// than one source, and the award density.
func SummaryTable(results []stats.Stats, sources []awards.SourceSpec) Table {
	headers := []string{"Platform", "Total Awards"}
	for _, source := range sources {
		headers = append(headers, source.DisplayName()+" Wins")
	}
	headers = append(headers, "Both Awards", DensityHeader)

	rows := make([][]string, 0, len(results))
	for _, s := range results {
		row := []string{s.Platform, strconv.Itoa(s.TotalAwards)}
		for _, source := range sources {
			row = append(row, strconv.Itoa(s.Sources[source.ID].Winners))
		}
		row = append(row, strconv.Itoa(s.Overlap.Both), formatDensity(s.Density))
		rows = append(rows, row)
	}
	return Table{
		Title:   "Award Summary",
		Headers: headers,
		Rows:    rows,
		Aligns:  numericAligns(len(headers)),
	}
}

// SourceTable breaks one source down by category: winners per category and
// the source total, per platform.
func SourceTable(results []stats.Stats, source awards.SourceSpec) Table {
	name := source.DisplayName()
	headers := []string{"Platform"}
	for _, category := range source.Categories {
		headers = append(headers, CategoryLabel(category.Name)+" Wins")
	}
	headers = append(headers, "Total "+name+" Wins")

	rows := make([][]string, 0, len(results))
	for _, s := range results {
		row := []string{s.Platform}
		categories := s.Categories[source.ID]
		total := 0
		for _, category := range source.Categories {
			winners := categories[category.Name].Winners
			total += winners
			row = append(row, strconv.Itoa(winners))
		}
		row = append(row, strconv.Itoa(total))
		rows = append(rows, row)
	}
	return Table{
		Title:   name + " Wins",
		Headers: headers,
		Rows:    rows,
		Aligns:  numericAligns(len(headers)),
	}
}

// NominationTable lists winners and nominees per source for every platform.
func NominationTable(results []stats.Stats, sources []awards.SourceSpec) Table {
	headers := []string{"Platform"}
	for _, source := range sources {
		name := source.DisplayName()
		headers = append(headers, name+" Winners", name+" Nominees")
	}

	rows := make([][]string, 0, len(results))
	for _, s := range results {
		row := []string{s.Platform}
		for _, source := range sources {
			counts := s.Sources[source.ID]
			row = append(row, strconv.Itoa(counts.Winners), strconv.Itoa(counts.Nominees))
		}
		rows = append(rows, row)
	}
	return Table{
		Title:   "Winners and Nominees",
		Headers: headers,
		Rows:    rows,
		Aligns:  numericAligns(len(headers)),
	}
}

// PositioningTable lists each platform's place on the volume/density matrix.
func PositioningTable(positions []stats.Positioning) Table {
	headers := []string{"Platform", "Catalog Size", DensityHeader, "Quadrant"}
	rows := make([][]string, 0, len(positions))
	for _, p := range positions {
		rows = append(rows, []string{
			p.Platform,
			strconv.Itoa(p.Volume),
			formatDensity(p.Density),
			string(p.Quadrant),
		})
	}
	return Table{
		Title:   "Strategic Positioning",
		Headers: headers,
		Rows:    rows,
		Aligns:  []Align{AlignLeft, AlignRight, AlignRight, AlignLeft},
	}
}

func formatDensity(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
