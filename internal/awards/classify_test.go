package awards

import (
	"errors"
	"strings"
	"testing"

	"prestige/internal/table"
)

func academyTable(rows ...[]string) table.Table {
	return table.New([]string{"Ceremony", "Category", "Film", "Winner"}, rows)
}

func globeTable(rows ...[]string) table.Table {
	return table.New([]string{"year_award", "award", "title", "winner"}, rows)
}

func TestClassifyAcademyMissingMeansNominee(t *testing.T) {
	raw := academyTable(
		[]string{"91", "BEST PICTURE", "Roma", ""},
		[]string{"91", "BEST PICTURE", "Green Book", "True"},
		[]string{"92", "BEST PICTURE", "The Irishman (2019)", "NaN"},
		[]string{"92", "BEST PICTURE", "Joker", "False"},
		[]string{"93", "ANIMATED FEATURE FILM", "Soul", "True"},
		[]string{"93", "ANIMATED FEATURE FILM", "Onward", ""},
		[]string{"93", "ACTOR IN A LEADING ROLE", "Joker", "True"},
	)
	got, err := Classify(raw, AcademyAwards())
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}

	checks := []struct {
		category string
		outcome  Outcome
		key      string
		want     bool
	}{
		{CategoryBestPicture, Winner, "green book", true},
		{CategoryBestPicture, Nominee, "green book", false},
		{CategoryBestPicture, Nominee, "roma", true},
		{CategoryBestPicture, Winner, "roma", false},
		{CategoryBestPicture, Nominee, "the irishman", true},
		{CategoryBestPicture, Winner, "joker", false},
		{CategoryBestPicture, Nominee, "joker", false},
		{CategoryBestAnimated, Winner, "soul", true},
		{CategoryBestAnimated, Nominee, "onward", true},
	}
	for _, c := range checks {
		if has := got.Contains(c.category, c.outcome, c.key); has != c.want {
			t.Errorf("Contains(%s, %s, %q) = %v, want %v", c.category, c.outcome, c.key, has, c.want)
		}
	}

	stats := got.Stats
	if stats.Rows != 7 || stats.Unmapped != 1 || stats.Excluded != 1 || stats.Winners != 2 || stats.Nominees != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestClassifyGoldenGlobeExplicitBoolean(t *testing.T) {
	raw := globeTable(
		[]string{"2020", "Best Motion Picture - Drama", "1917", "True"},
		[]string{"2020", "Best Motion Picture - Drama", "The Irishman", "False"},
		[]string{"2020", "Best Television Series - Drama", "The Crown", "False"},
		[]string{"2020", "Best Motion Picture - Animated", "Missing Link", "True"},
		[]string{"2020", "Best Motion Picture - Animated", "Frozen II", ""},
		[]string{"2021", "Best Motion Picture â€“ Non-English Language", "Minari", "True"},
	)
	got, err := Classify(raw, GoldenGlobes())
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if !got.Contains(CategoryBestPicture, Winner, "1917") {
		t.Error("expected 1917 as best picture winner")
	}
	if !got.Contains(CategoryBestPicture, Nominee, "the irishman") {
		t.Error("expected explicit false to mark a nominee")
	}
	if !got.Contains(CategoryBestPicture, Nominee, "the crown") {
		t.Error("expected television drama folded into best picture")
	}
	if !got.Contains(CategoryBestPicture, Winner, "minari") {
		t.Error("expected non-English label folded into best picture")
	}
	if !got.Contains(CategoryBestAnimated, Winner, "missing link") {
		t.Error("expected animated winner")
	}
	if got.Contains(CategoryBestAnimated, Nominee, "frozen ii") || got.Contains(CategoryBestAnimated, Winner, "frozen ii") {
		t.Error("expected missing winner cell to be excluded for explicit boolean source")
	}
	if got.Stats.Excluded != 1 {
		t.Fatalf("expected one excluded row, got %+v", got.Stats)
	}
}

func TestClassifyWinnerAndNomineeAreExclusivePerRecord(t *testing.T) {
	specs := []struct {
		spec  SourceSpec
		build func(rows ...[]string) table.Table
		label string
		cells []string
	}{
		{AcademyAwards(), academyTable, "BEST PICTURE", []string{"True", "", "False", "1", "nan"}},
		{GoldenGlobes(), globeTable, "Best Motion Picture - Drama", []string{"True", "False", "", "0", "yes"}},
	}
	for _, s := range specs {
		decoder, err := DecoderFor(s.spec.Strategy)
		if err != nil {
			t.Fatalf("DecoderFor(%s): %v", s.spec.Strategy, err)
		}
		for i, cell := range s.cells {
			title := "Title " + string(rune('A'+i))
			got, err := Classify(s.build([]string{"1", s.label, title, cell}), s.spec)
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			key := strings.ToLower(title)
			outcome, ok, _ := decoder.Decode(cell)
			inWinners := got.Contains(CategoryBestPicture, Winner, key)
			inNominees := got.Contains(CategoryBestPicture, Nominee, key)
			switch {
			case !ok:
				if inWinners || inNominees {
					t.Errorf("%s cell %q: expected title in neither set", s.spec.ID, cell)
				}
			case outcome == Winner:
				if !inWinners || inNominees {
					t.Errorf("%s cell %q: expected winner only, got winners=%v nominees=%v", s.spec.ID, cell, inWinners, inNominees)
				}
			default:
				if inWinners || !inNominees {
					t.Errorf("%s cell %q: expected nominee only, got winners=%v nominees=%v", s.spec.ID, cell, inWinners, inNominees)
				}
			}
		}
	}
}

func TestClassifySkipsMalformedAndBlankTitles(t *testing.T) {
	raw := academyTable(
		[]string{"1", "BEST PICTURE", "Wings", "maybe"},
		[]string{"1", "BEST PICTURE", "", "True"},
		[]string{"1", "BEST PICTURE", "?!", "True"},
		[]string{"1", "BEST PICTURE", "Sunrise", "True"},
	)
	got, err := Classify(raw, AcademyAwards())
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if got.Stats.Malformed != 1 || got.Stats.EmptyTitle != 2 || got.Stats.Matched != 1 {
		t.Fatalf("unexpected stats: %+v", got.Stats)
	}
	if got.Contains(CategoryBestPicture, Nominee, "wings") || got.Contains(CategoryBestPicture, Winner, "wings") {
		t.Fatal("malformed row should not be classified")
	}
	if got.Category(CategoryBestPicture).Winners.Has("") {
		t.Fatal("empty key must never be a member")
	}
}

func TestClassifyDeduplicatesAndKeepsBothOutcomes(t *testing.T) {
	raw := academyTable(
		[]string{"1", "BEST PICTURE", "Little Women", ""},
		[]string{"2", "BEST PICTURE", "Little Women (2019)", ""},
		[]string{"3", "BEST PICTURE", "Little Women", "True"},
	)
	got, err := Classify(raw, AcademyAwards())
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	set := got.Category(CategoryBestPicture)
	if set.Nominees.Len() != 1 || set.Winners.Len() != 1 {
		t.Fatalf("expected deduplicated sets, got winners=%v nominees=%v", set.Winners, set.Nominees)
	}
	if !set.Winners.Has("little women") || !set.Nominees.Has("little women") {
		t.Fatal("expected title kept in both sets")
	}
}

func TestClassifyMissingColumn(t *testing.T) {
	raw := table.New([]string{"title", "award"}, [][]string{{"x", "y"}})
	_, err := Classify(raw, GoldenGlobes())
	if !errors.Is(err, table.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
	if !strings.Contains(err.Error(), "winner") {
		t.Fatalf("expected column name in error, got %q", err)
	}
}

func TestClassifyUnconfiguredLabelIsIgnored(t *testing.T) {
	raw := globeTable([]string{"2021", "Best Television Series - Drama (Unlisted)", "Show A", "False"})
	got, err := Classify(raw, GoldenGlobes())
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if got.Contains(CategoryBestPicture, Nominee, "show a") {
		t.Fatal("label outside the configured set must not classify")
	}
	if got.Stats.Unmapped != 1 {
		t.Fatalf("expected unmapped row, got %+v", got.Stats)
	}
}

func TestCategoryAccessorsOnUnknownCategory(t *testing.T) {
	got, err := Classify(academyTable(), AcademyAwards())
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if got.Category("best_documentary") != nil {
		t.Fatal("expected nil set for untracked category")
	}
	if got.Contains("best_documentary", Winner, "anything") {
		t.Fatal("expected no membership for untracked category")
	}
	if names := strings.Join(got.Categories(), ","); names != "best_picture,best_animated" {
		t.Fatalf("unexpected categories: %s", names)
	}
}
