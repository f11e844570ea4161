package config

import "prestige/internal/awards"

const (
	defaultDataDir     = "data"
	defaultOutputDir   = "~/.local/share/prestige"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	defaultWorkers     = 1
	defaultTitleColumn = "title"
	defaultEncoding    = "utf-8"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			OutputDir: defaultOutputDir,
		},
		Catalogs: []Catalog{
			{Platform: "Netflix", Path: "netflix_titles.csv", TitleColumn: defaultTitleColumn, Separator: ","},
			{Platform: "Disney+", Path: "disney_plus_titles.csv", TitleColumn: defaultTitleColumn, Separator: ","},
		},
		Awards: []AwardSource{
			sourceFromSpec(awards.AcademyAwards(), "oscar_award.csv", `\t`),
			sourceFromSpec(awards.GoldenGlobes(), "golden_globe_award.csv", ","),
		},
		Analysis: Analysis{
			Workers: defaultWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func sourceFromSpec(spec awards.SourceSpec, path, separator string) AwardSource {
	categories := make([]Category, len(spec.Categories))
	for i, category := range spec.Categories {
		categories[i] = Category{Name: category.Name, Labels: append([]string(nil), category.Labels...)}
	}
	return AwardSource{
		ID:           spec.ID,
		Name:         spec.Name,
		Path:         path,
		Separator:    separator,
		TitleColumn:  spec.TitleColumn,
		LabelColumn:  spec.LabelColumn,
		WinnerColumn: spec.WinnerColumn,
		Strategy:     string(spec.Strategy),
		Categories:   categories,
	}
}

// bundledSpec returns the built-in spec for a source ID, if there is one.
func bundledSpec(id string) (awards.SourceSpec, bool) {
	for _, spec := range []awards.SourceSpec{awards.AcademyAwards(), awards.GoldenGlobes()} {
		if spec.ID == id {
			return spec, true
		}
	}
	return awards.SourceSpec{}, false
}
