package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"prestige/internal/analysis"
	"prestige/internal/attribution"
	"prestige/internal/awards"
	"prestige/internal/catalog"
	"prestige/internal/stats"
	"prestige/internal/testsupport"
)

func sampleResult(t *testing.T) *analysis.Result {
	t.Helper()

	oscar := testsupport.Classified(t, awards.AcademyAwards(), map[string]testsupport.Titles{
		awards.CategoryBestPicture:  {Winners: []string{"Roma"}, Nominees: []string{"The Irishman"}},
		awards.CategoryBestAnimated: {Winners: []string{"Soul"}, Nominees: []string{"Onward"}},
	})
	globes := testsupport.Classified(t, awards.GoldenGlobes(), map[string]testsupport.Titles{
		awards.CategoryBestPicture:  {Winners: []string{"Roma", "The Crown"}},
		awards.CategoryBestAnimated: {Nominees: []string{"Soul"}},
	})
	netflix := catalog.FromTitles("Netflix", "Roma", "The Irishman", "The Crown", "Other")
	disney := catalog.FromTitles("Disney+", "Soul", "Onward")
	return analysis.Analyze([]catalog.Catalog{netflix, disney}, []*awards.Classified{oscar, globes}, 1)
}

func TestSummaryTable(t *testing.T) {
	result := sampleResult(t)
	tbl := SummaryTable(result.Stats, result.SourceSpecs())

	wantHeaders := []string{"Platform", "Total Awards", "Oscar Wins", "Golden Globe Wins", "Both Awards", "Density (per 1,000 titles)"}
	if strings.Join(tbl.Headers, "|") != strings.Join(wantHeaders, "|") {
		t.Fatalf("headers = %v, want %v", tbl.Headers, wantHeaders)
	}
	wantRows := [][]string{
		{"Netflix", "2", "1", "2", "1", "500.00"},
		{"Disney+", "1", "1", "0", "0", "500.00"},
	}
	for i, want := range wantRows {
		if strings.Join(tbl.Rows[i], "|") != strings.Join(want, "|") {
			t.Fatalf("row %d = %v, want %v", i, tbl.Rows[i], want)
		}
	}

	rendered := tbl.Render()
	for _, want := range []string{"Award Summary", "Netflix", "Disney+", "500.00", "Golden Globe Wins"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("rendered table missing %q:\n%s", want, rendered)
		}
	}
}

func TestSourceTable(t *testing.T) {
	result := sampleResult(t)
	tbl := SourceTable(result.Stats, awards.AcademyAwards())

	wantHeaders := []string{"Platform", "Best Picture Wins", "Best Animated Wins", "Total Oscar Wins"}
	if strings.Join(tbl.Headers, "|") != strings.Join(wantHeaders, "|") {
		t.Fatalf("headers = %v, want %v", tbl.Headers, wantHeaders)
	}
	if got := strings.Join(tbl.Rows[0], "|"); got != "Netflix|1|0|1" {
		t.Fatalf("netflix row = %s", got)
	}
	if got := strings.Join(tbl.Rows[1], "|"); got != "Disney+|0|1|1" {
		t.Fatalf("disney row = %s", got)
	}
}

func TestNominationTable(t *testing.T) {
	result := sampleResult(t)
	tbl := NominationTable(result.Stats, result.SourceSpecs())

	if got := strings.Join(tbl.Rows[1], "|"); got != "Disney+|1|1|0|1" {
		t.Fatalf("disney row = %s", got)
	}
}

func TestPositioningTable(t *testing.T) {
	tbl := PositioningTable([]stats.Positioning{{Platform: "Netflix", Volume: 8807, Density: 1.5, Quadrant: stats.HighVolumeLowQuality}})
	if got := strings.Join(tbl.Rows[0], "|"); got != "Netflix|8807|1.50|high volume / low quality" {
		t.Fatalf("row = %s", got)
	}
}

func TestRenderKeepsHeaderCase(t *testing.T) {
	rendered := Table{
		Headers: []string{"Platform", DensityHeader},
		Rows:    [][]string{{"Netflix", "400.00"}},
	}.Render()
	if !strings.Contains(rendered, "Platform") || !strings.Contains(rendered, "Density (per 1,000 titles)") {
		t.Fatalf("expected headers rendered as given:\n%s", rendered)
	}
	if strings.Contains(rendered, "PLATFORM") || strings.Contains(rendered, "DENSITY") {
		t.Fatalf("headers must not be upper-cased:\n%s", rendered)
	}
}

func TestRenderEmptyTable(t *testing.T) {
	if got := (Table{}).Render(); got != "" {
		t.Fatalf("expected empty render, got %q", got)
	}
}

func TestCategoryLabel(t *testing.T) {
	cases := map[string]string{
		"best_picture":  "Best Picture",
		"best_animated": "Best Animated",
		"drama-series":  "Drama Series",
		"":              "",
	}
	for in, want := range cases {
		if got := CategoryLabel(in); got != want {
			t.Fatalf("CategoryLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestJSONReport(t *testing.T) {
	result := sampleResult(t)
	var buf bytes.Buffer
	if err := JSON(&buf, New(result)); err != nil {
		t.Fatalf("JSON returned error: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if decoded.RunID != result.RunID {
		t.Fatalf("run id = %q, want %q", decoded.RunID, result.RunID)
	}
	if len(decoded.Sources) != 2 || decoded.Sources[1].ID != "golden_globe" {
		t.Fatalf("unexpected sources %+v", decoded.Sources)
	}
	if len(decoded.Platforms) != 2 || decoded.Platforms[0].Overlap.Both != 1 {
		t.Fatalf("unexpected platforms %+v", decoded.Platforms)
	}
	if len(decoded.Positioning) != 2 {
		t.Fatalf("unexpected positioning %+v", decoded.Positioning)
	}
}

func TestChartSeries(t *testing.T) {
	result := sampleResult(t)
	series := ChartSeries(result)

	byName := map[string]Series{}
	for _, s := range series {
		byName[s.Name] = s
	}
	for _, name := range []string{
		"oscar_by_category", "oscar_density", "golden_globe_by_category", "golden_globe_density",
		"combined_winners_nominees", "total_awards", "stacked_awards", "award_density", "strategic_positioning",
	} {
		if _, ok := byName[name]; !ok {
			t.Fatalf("missing series %s", name)
		}
	}

	stacked := byName["stacked_awards"]
	if len(stacked.Datasets) != 3 || stacked.Datasets[2].Label != "Both Awards" {
		t.Fatalf("unexpected stacked datasets %+v", stacked.Datasets)
	}
	// Netflix: Roma won both, The Crown only the Golden Globe.
	if stacked.Datasets[0].Values[0] != 0 || stacked.Datasets[1].Values[0] != 1 || stacked.Datasets[2].Values[0] != 1 {
		t.Fatalf("unexpected netflix stack %+v", stacked.Datasets)
	}

	scatter := byName["strategic_positioning"]
	if scatter.Reference == nil || scatter.Reference.X != 3 {
		t.Fatalf("unexpected reference %+v", scatter.Reference)
	}
	if len(scatter.Points) != 2 || scatter.Points[0].X != 4 {
		t.Fatalf("unexpected points %+v", scatter.Points)
	}

	if ChartSeries(nil) != nil {
		t.Fatal("expected nil series for nil result")
	}
}

func TestWriteChartSeries(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	paths, err := WriteChartSeries(dir, []Series{{Name: "Disney+ Density", Kind: KindBar}})
	if err != nil {
		t.Fatalf("WriteChartSeries returned error: %v", err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "disney_density.json" {
		t.Fatalf("unexpected paths %v", paths)
	}
	data, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatalf("read chart: %v", err)
	}
	var decoded Series
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode chart: %v", err)
	}
	if decoded.Kind != KindBar {
		t.Fatalf("kind = %q", decoded.Kind)
	}
}

func TestWriteFlaggedCSV(t *testing.T) {
	result := sampleResult(t)
	var buf bytes.Buffer
	if err := WriteFlaggedCSV(&buf, result.Flagged[0]); err != nil {
		t.Fatalf("WriteFlaggedCSV returned error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected header plus 4 rows, got %d", len(records))
	}
	header := records[0]
	if header[0] != "title" || header[1] != "title_key" || header[len(header)-1] != "has_any_award" {
		t.Fatalf("unexpected header %v", header)
	}
	roma := records[1]
	if roma[1] != "roma" || roma[len(roma)-1] != "true" {
		t.Fatalf("unexpected roma record %v", roma)
	}
	other := records[4]
	if other[len(other)-1] != "false" {
		t.Fatalf("unexpected other record %v", other)
	}

	if err := WriteFlaggedCSV(&buf, nil); err == nil {
		t.Fatal("expected error for nil catalog")
	}
}

func TestWriteFlaggedFiles(t *testing.T) {
	result := sampleResult(t)
	dir := t.TempDir()
	paths, err := WriteFlaggedFiles(dir, result.Flagged)
	if err != nil {
		t.Fatalf("WriteFlaggedFiles returned error: %v", err)
	}
	if len(paths) != 2 || filepath.Base(paths[1]) != "disney_flagged.csv" {
		t.Fatalf("unexpected paths %v", paths)
	}
}

func TestWriteFlaggedFilesRejectsCollidingPlatforms(t *testing.T) {
	sets := []*awards.Classified{testsupport.Classified(t, awards.AcademyAwards(), nil)}
	plus := attribution.Attribute(catalog.FromTitles("Disney+", "A"), sets...)
	plain := attribution.Attribute(catalog.FromTitles("Disney", "B"), sets...)
	dir := filepath.Join(t.TempDir(), "flagged")

	paths, err := WriteFlaggedFiles(dir, []*attribution.Flagged{plus, plain})
	if err == nil {
		t.Fatalf("expected collision error, got paths %v", paths)
	}
	if !strings.Contains(err.Error(), "disney_flagged.csv") {
		t.Fatalf("error %q does not name the file", err)
	}
	if _, statErr := os.Stat(dir); !os.IsNotExist(statErr) {
		t.Fatalf("expected nothing written, stat err = %v", statErr)
	}
}
