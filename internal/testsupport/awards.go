package testsupport

import (
	"testing"

	"prestige/internal/awards"
	"prestige/internal/table"
)

// Titles lists the winner and nominee titles of one category.
type Titles struct {
	Winners  []string
	Nominees []string
}

// Classified runs the given titles through awards.Classify as a raw table in
// the source's own layout. Each category is written under its first label,
// and outcome cells follow the source's strategy.
func Classified(t testing.TB, spec awards.SourceSpec, categories map[string]Titles) *awards.Classified {
	t.Helper()

	labels := make(map[string]string, len(spec.Categories))
	for _, category := range spec.Categories {
		if len(category.Labels) > 0 {
			labels[category.Name] = category.Labels[0]
		}
	}
	nominee := ""
	if spec.Strategy == awards.StrategyExplicitBoolean {
		nominee = "False"
	}

	var rows [][]string
	for _, name := range spec.CategoryNames() {
		titles, ok := categories[name]
		if !ok {
			continue
		}
		for _, title := range titles.Winners {
			rows = append(rows, []string{title, labels[name], "True"})
		}
		for _, title := range titles.Nominees {
			rows = append(rows, []string{title, labels[name], nominee})
		}
	}
	for name := range categories {
		if _, ok := labels[name]; !ok {
			t.Fatalf("source %s has no category %q", spec.ID, name)
		}
	}

	raw := table.New([]string{spec.TitleColumn, spec.LabelColumn, spec.WinnerColumn}, rows)
	got, err := awards.Classify(raw, spec)
	if err != nil {
		t.Fatalf("classify %s: %v", spec.ID, err)
	}
	return got
}
