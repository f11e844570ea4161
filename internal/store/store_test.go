package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"prestige/internal/analysis"
	"prestige/internal/awards"
	"prestige/internal/catalog"
	"prestige/internal/testsupport"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "nested", "prestige.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func sampleRun(t *testing.T) Run {
	t.Helper()

	oscar := testsupport.Classified(t, awards.AcademyAwards(), map[string]testsupport.Titles{
		awards.CategoryBestPicture: {Winners: []string{"Roma"}, Nominees: []string{"The Irishman"}},
	})
	globes := testsupport.Classified(t, awards.GoldenGlobes(), map[string]testsupport.Titles{
		awards.CategoryBestPicture: {Winners: []string{"Roma"}},
	})
	result := analysis.Analyze([]catalog.Catalog{
		catalog.FromTitles("Netflix", "Roma", "The Irishman", "Other"),
		catalog.FromTitles("Disney+"),
	}, []*awards.Classified{oscar, globes}, 1)

	return Run{
		ID:         result.RunID,
		StartedAt:  result.StartedAt,
		ConfigPath: "/tmp/prestige.toml",
		Stats:      result.Stats,
		Flagged:    result.Flagged,
	}
}

func TestSaveRunRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	run := sampleRun(t)

	id, err := s.SaveRun(ctx, run)
	if err != nil {
		t.Fatalf("SaveRun returned error: %v", err)
	}
	if id != run.ID {
		t.Fatalf("SaveRun id = %q, want %q", id, run.ID)
	}

	latest, err := s.LatestRun(ctx)
	if err != nil {
		t.Fatalf("LatestRun returned error: %v", err)
	}
	if latest.ID != run.ID || latest.ConfigPath != run.ConfigPath {
		t.Fatalf("unexpected latest run %+v", latest)
	}
	if !latest.StartedAt.Equal(run.StartedAt) {
		t.Fatalf("started_at = %v, want %v", latest.StartedAt, run.StartedAt)
	}

	saved, err := s.PlatformStats(ctx, run.ID)
	if err != nil {
		t.Fatalf("PlatformStats returned error: %v", err)
	}
	if len(saved) != 2 || saved[0].Platform != "Netflix" || saved[1].Platform != "Disney+" {
		t.Fatalf("unexpected saved stats %+v", saved)
	}
	netflix := saved[0]
	if netflix.TotalAwards != 1 || netflix.Overlap.Both != 1 || netflix.CatalogSize != 3 {
		t.Fatalf("unexpected netflix stats %+v", netflix)
	}
	if got := netflix.Categories["oscar"][awards.CategoryBestPicture]; got.Winners != 1 || got.Nominees != 1 {
		t.Fatalf("unexpected category counts %+v", got)
	}
	if saved[1].CatalogSize != 0 || saved[1].Density != 0 {
		t.Fatalf("unexpected empty catalog stats %+v", saved[1])
	}
}

func TestSaveRunTitleFlags(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	run := sampleRun(t)
	if _, err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun returned error: %v", err)
	}

	flags, err := s.TitleFlags(ctx, run.ID, "Netflix")
	if err != nil {
		t.Fatalf("TitleFlags returned error: %v", err)
	}
	want := []TitleFlag{
		{Platform: "Netflix", RowIndex: 0, Title: "Roma", TitleKey: "roma", Flag: "oscar_best_picture_winner"},
		{Platform: "Netflix", RowIndex: 0, Title: "Roma", TitleKey: "roma", Flag: "golden_globe_best_picture_winner"},
		{Platform: "Netflix", RowIndex: 0, Title: "Roma", TitleKey: "roma", Flag: "has_oscar"},
		{Platform: "Netflix", RowIndex: 0, Title: "Roma", TitleKey: "roma", Flag: "has_golden_globe"},
		{Platform: "Netflix", RowIndex: 0, Title: "Roma", TitleKey: "roma", Flag: "has_any_award"},
		{Platform: "Netflix", RowIndex: 1, Title: "The Irishman", TitleKey: "the irishman", Flag: "oscar_best_picture_nominee"},
	}
	if len(flags) != len(want) {
		t.Fatalf("TitleFlags returned %d flags, want %d: %+v", len(flags), len(want), flags)
	}
	for i := range want {
		if flags[i] != want[i] {
			t.Fatalf("flag %d = %+v, want %+v", i, flags[i], want[i])
		}
	}
}

func TestLatestRunEmptyStore(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.LatestRun(context.Background()); !errors.Is(err, ErrNoRuns) {
		t.Fatalf("expected ErrNoRuns, got %v", err)
	}
}

func TestLatestRunPicksNewest(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	older := sampleRun(t)
	older.StartedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := sampleRun(t)
	newer.StartedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	if _, err := s.SaveRun(ctx, newer); err != nil {
		t.Fatalf("SaveRun returned error: %v", err)
	}
	if _, err := s.SaveRun(ctx, older); err != nil {
		t.Fatalf("SaveRun returned error: %v", err)
	}

	latest, err := s.LatestRun(ctx)
	if err != nil {
		t.Fatalf("LatestRun returned error: %v", err)
	}
	if latest.ID != newer.ID {
		t.Fatalf("latest = %s, want %s", latest.ID, newer.ID)
	}
}

func TestSaveRunAssignsID(t *testing.T) {
	s := openTestStore(t)
	run := sampleRun(t)
	run.ID = ""

	id, err := s.SaveRun(context.Background(), run)
	if err != nil {
		t.Fatalf("SaveRun returned error: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated run id")
	}
	if _, err := s.SaveRun(context.Background(), Run{ID: id}); err == nil {
		t.Fatal("expected duplicate run id to fail")
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prestige.db")
	first, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	run := sampleRun(t)
	if _, err := first.SaveRun(context.Background(), run); err != nil {
		t.Fatalf("SaveRun returned error: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer second.Close()
	latest, err := second.LatestRun(context.Background())
	if err != nil {
		t.Fatalf("LatestRun returned error: %v", err)
	}
	if latest.ID != run.ID {
		t.Fatalf("latest = %s, want %s", latest.ID, run.ID)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
