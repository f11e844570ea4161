package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"prestige/internal/attribution"
	"prestige/internal/awards"
	"prestige/internal/catalog"
	"prestige/internal/config"
	"prestige/internal/logging"
	"prestige/internal/stats"
	"prestige/internal/table"
)

// Result holds everything one analysis run produced.
type Result struct {
	RunID       string
	StartedAt   time.Time
	Sources     []*awards.Classified
	Flagged     []*attribution.Flagged
	Stats       []stats.Stats
	Positioning []stats.Positioning
}

// SourceIDs returns the award source identifiers in configuration order.
func (r *Result) SourceIDs() []string {
	if r == nil {
		return nil
	}
	ids := make([]string, 0, len(r.Sources))
	for _, source := range r.Sources {
		ids = append(ids, source.Source.ID)
	}
	return ids
}

// SourceSpecs returns the specs of the classified sources.
func (r *Result) SourceSpecs() []awards.SourceSpec {
	if r == nil {
		return nil
	}
	specs := make([]awards.SourceSpec, 0, len(r.Sources))
	for _, source := range r.Sources {
		specs = append(specs, source.Source)
	}
	return specs
}

// Options adjusts a run without touching the loaded configuration.
type Options struct {
	// Workers overrides analysis.workers when positive.
	Workers int
}

// Analyze attributes every catalog against sets and aggregates the results.
func Analyze(catalogs []catalog.Catalog, sets []*awards.Classified, workers int) *Result {
	engine := attribution.NewEngine(sets...)
	engine.Workers = workers

	result := &Result{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Flagged:   make([]*attribution.Flagged, 0, len(catalogs)),
		Stats:     make([]stats.Stats, 0, len(catalogs)),
	}
	for _, set := range sets {
		if set != nil {
			result.Sources = append(result.Sources, set)
		}
	}
	for _, cat := range catalogs {
		flagged := engine.Attribute(cat)
		result.Flagged = append(result.Flagged, flagged)
		result.Stats = append(result.Stats, stats.Aggregate(flagged))
	}
	result.Positioning = stats.Position(result.Stats)
	return result
}

// Run executes the full pipeline described by cfg.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (*Result, error) {
	if cfg == nil {
		return nil, errors.New("analysis: config is required")
	}
	logger = logging.NewComponentLogger(logger, "analysis")

	sets := make([]*awards.Classified, 0, len(cfg.Awards))
	for _, source := range cfg.Awards {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		set, err := LoadSource(source, logger)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}

	catalogs := make([]catalog.Catalog, 0, len(cfg.Catalogs))
	for _, entry := range cfg.Catalogs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cat, err := LoadCatalog(entry, logger)
		if err != nil {
			return nil, err
		}
		catalogs = append(catalogs, cat)
	}

	workers := cfg.Analysis.Workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}
	result := Analyze(catalogs, sets, workers)

	runLogger := logging.WithContext(logging.WithRunID(ctx, result.RunID), logger)
	for _, s := range result.Stats {
		runLogger.Info("catalog attributed",
			logging.String(logging.FieldPlatform, s.Platform),
			logging.Int("titles", s.CatalogSize),
			logging.Int("total_awards", s.TotalAwards),
			logging.Int("both_awards", s.Overlap.Both),
			logging.Float64("density", s.Density),
		)
	}
	return result, nil
}

// LoadSource reads and classifies one award dataset.
func LoadSource(source config.AwardSource, logger *slog.Logger) (*awards.Classified, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	raw, loadStats, err := table.Load(source.Path, source.TableOptions())
	if err != nil {
		return nil, fmt.Errorf("load awards %s: %w", source.ID, err)
	}
	logSkippedRows(logger, logging.String(logging.FieldSource, source.ID), source.Path, loadStats)

	set, err := awards.Classify(raw, source.Spec())
	if err != nil {
		return nil, fmt.Errorf("classify awards %s: %w", source.ID, err)
	}

	s := set.Stats
	logger.Debug("award source classified",
		logging.String(logging.FieldSource, source.ID),
		logging.Int("rows", s.Rows),
		logging.Int("matched", s.Matched),
		logging.Int("winners", s.Winners),
		logging.Int("nominees", s.Nominees),
		logging.Int("unmapped", s.Unmapped),
	)
	if s.Malformed > 0 {
		logging.WarnWithContext(logger, "award rows with malformed winner cell skipped", "award_rows_malformed",
			logging.String(logging.FieldSource, source.ID),
			logging.Int("count", s.Malformed),
			logging.String(logging.FieldErrorHint, fmt.Sprintf("check the %s column of %s", source.WinnerColumn, source.Path)),
			logging.String(logging.FieldImpact, "skipped records are not attributed"),
		)
	}
	if s.EmptyTitle > 0 {
		logging.WarnWithContext(logger, "award rows with empty title skipped", "award_rows_empty_title",
			logging.String(logging.FieldSource, source.ID),
			logging.Int("count", s.EmptyTitle),
			logging.String(logging.FieldErrorHint, fmt.Sprintf("check the %s column of %s", source.TitleColumn, source.Path)),
			logging.String(logging.FieldImpact, "skipped records are not attributed"),
		)
	}
	return set, nil
}

// LoadCatalog reads one platform catalog.
func LoadCatalog(entry config.Catalog, logger *slog.Logger) (catalog.Catalog, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	raw, loadStats, err := table.Load(entry.Path, entry.TableOptions())
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("load catalog %s: %w", entry.Platform, err)
	}
	logSkippedRows(logger, logging.String(logging.FieldPlatform, entry.Platform), entry.Path, loadStats)

	cat, err := catalog.FromTable(entry.Platform, raw, entry.TitleColumn)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("load catalog %s: %w", entry.Platform, err)
	}
	logger.Debug("catalog loaded",
		logging.String(logging.FieldPlatform, entry.Platform),
		logging.Int("titles", cat.Len()),
	)
	return cat, nil
}

func logSkippedRows(logger *slog.Logger, owner slog.Attr, path string, s table.LoadStats) {
	if s.Skipped() == 0 && s.Padded == 0 {
		return
	}
	logging.WarnWithContext(logger, "irregular rows in input file", "table_rows_irregular",
		owner,
		logging.String("path", path),
		logging.Int("skipped_long", s.SkippedLong),
		logging.Int("skipped_malformed", s.SkippedMalformed),
		logging.Int("padded", s.Padded),
		logging.String(logging.FieldErrorHint, "check the file for stray separators or quotes"),
		logging.String(logging.FieldImpact, "skipped rows are excluded from the analysis"),
	)
}
