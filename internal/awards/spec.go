package awards

import (
	"errors"
	"fmt"
	"strings"
)

// Semantic category names shared by the bundled sources.
const (
	CategoryBestPicture  = "best_picture"
	CategoryBestAnimated = "best_animated"
)

// Category folds one or more raw labels into a semantic category.
type Category struct {
	Name   string
	Labels []string
}

// SourceSpec describes how to read and classify one award dataset.
type SourceSpec struct {
	ID           string
	Name         string
	TitleColumn  string
	LabelColumn  string
	WinnerColumn string
	Strategy     Strategy
	Categories   []Category
}

// AcademyAwards returns the spec for the Academy Awards dataset.
func AcademyAwards() SourceSpec {
	return SourceSpec{
		ID:           "oscar",
		Name:         "Oscar",
		TitleColumn:  "Film",
		LabelColumn:  "Category",
		WinnerColumn: "Winner",
		Strategy:     StrategyMissingIsNominee,
		Categories: []Category{
			{Name: CategoryBestPicture, Labels: []string{"BEST PICTURE"}},
			{Name: CategoryBestAnimated, Labels: []string{"ANIMATED FEATURE FILM"}},
		},
	}
}

// GoldenGlobes returns the spec for the Golden Globe dataset. The
// non-English label keeps the dataset's mis-decoded dash so it matches the
// raw cell byte for byte.
func GoldenGlobes() SourceSpec {
	return SourceSpec{
		ID:           "golden_globe",
		Name:         "Golden Globe",
		TitleColumn:  "title",
		LabelColumn:  "award",
		WinnerColumn: "winner",
		Strategy:     StrategyExplicitBoolean,
		Categories: []Category{
			{Name: CategoryBestPicture, Labels: []string{
				"Best Television Limited Series, Anthology Series, or Motion Picture Made for Television",
				"Best Television Series - Drama",
				"Best Television Series - Musical or Comedy",
				"Best Motion Picture - Drama",
				"Best Motion Picture - Musical or Comedy",
				"Best Motion Picture â€“ Non-English Language",
			}},
			{Name: CategoryBestAnimated, Labels: []string{"Best Motion Picture - Animated"}},
		},
	}
}

// Validate ensures the spec can drive classification.
func (s SourceSpec) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("source id must be set")
	}
	if strings.TrimSpace(s.TitleColumn) == "" || strings.TrimSpace(s.LabelColumn) == "" || strings.TrimSpace(s.WinnerColumn) == "" {
		return fmt.Errorf("source %s: title, label and winner columns must be set", s.ID)
	}
	if _, err := DecoderFor(s.Strategy); err != nil {
		return fmt.Errorf("source %s: %w", s.ID, err)
	}
	if len(s.Categories) == 0 {
		return fmt.Errorf("source %s: at least one category is required", s.ID)
	}
	names := make(map[string]struct{}, len(s.Categories))
	owners := make(map[string]string)
	for _, category := range s.Categories {
		if strings.TrimSpace(category.Name) == "" {
			return fmt.Errorf("source %s: category name must be set", s.ID)
		}
		if _, dup := names[category.Name]; dup {
			return fmt.Errorf("source %s: duplicate category %q", s.ID, category.Name)
		}
		names[category.Name] = struct{}{}
		if len(category.Labels) == 0 {
			return fmt.Errorf("source %s: category %q has no labels", s.ID, category.Name)
		}
		for _, label := range category.Labels {
			if owner, taken := owners[label]; taken && owner != category.Name {
				return fmt.Errorf("source %s: label %q mapped to both %q and %q", s.ID, label, owner, category.Name)
			}
			owners[label] = category.Name
		}
	}
	return nil
}

// CategoryNames returns the semantic categories in declaration order.
func (s SourceSpec) CategoryNames() []string {
	names := make([]string, len(s.Categories))
	for i, category := range s.Categories {
		names[i] = category.Name
	}
	return names
}

// DisplayName returns Name, falling back to ID.
func (s SourceSpec) DisplayName() string {
	if name := strings.TrimSpace(s.Name); name != "" {
		return name
	}
	return s.ID
}

func (s SourceSpec) labelIndex() map[string]string {
	index := make(map[string]string)
	for _, category := range s.Categories {
		for _, label := range category.Labels {
			index[label] = category.Name
		}
	}
	return index
}
