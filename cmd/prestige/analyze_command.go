package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"prestige/internal/analysis"
	"prestige/internal/config"
	"prestige/internal/logging"
	"prestige/internal/report"
	"prestige/internal/store"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

type analyzeOptions struct {
	format     string
	sqlitePath string
	chartsDir  string
	flaggedDir string
	workers    int
}

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Attribute awards to every configured catalog and print the summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", formatTable, "Output format (table, json)")
	cmd.Flags().StringVar(&opts.sqlitePath, "sqlite", "", "Record the run in this SQLite database (defaults to paths.sqlite_path)")
	cmd.Flags().StringVar(&opts.chartsDir, "charts", "", "Write chart series JSON files into this directory")
	cmd.Flags().StringVar(&opts.flaggedDir, "flagged", "", "Write enriched catalog CSV files into this directory")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Attribution workers (overrides analysis.workers)")
	return cmd
}

func runAnalyze(cmd *cobra.Command, ctx *commandContext, opts *analyzeOptions) (err error) {
	format := strings.ToLower(strings.TrimSpace(opts.format))
	if format != formatTable && format != formatJSON {
		return fmt.Errorf("unsupported format %q (use table or json)", opts.format)
	}
	if opts.workers < 0 {
		return errors.New("--workers must be >= 0")
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := ctx.logger(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeLog(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()

	result, err := analysis.Run(cmd.Context(), cfg, logger, analysis.Options{Workers: opts.workers})
	if err != nil {
		return err
	}
	runCtx := logging.WithRunID(cmd.Context(), result.RunID)
	logger = logging.WithContext(runCtx, logger)

	sqlitePath := strings.TrimSpace(opts.sqlitePath)
	if sqlitePath == "" {
		sqlitePath = cfg.Paths.SQLitePath
	}
	if sqlitePath != "" {
		if err := saveRun(cmd, ctx, logger, sqlitePath, result); err != nil {
			return err
		}
	}

	if dir := strings.TrimSpace(opts.chartsDir); dir != "" {
		resolved, err := config.ExpandPath(dir)
		if err != nil {
			return fmt.Errorf("resolve charts directory: %w", err)
		}
		paths, err := report.WriteChartSeries(resolved, report.ChartSeries(result))
		if err != nil {
			return err
		}
		logger.Info("chart series written", logging.String("dir", resolved), logging.Int("files", len(paths)))
	}

	if dir := strings.TrimSpace(opts.flaggedDir); dir != "" {
		resolved, err := config.ExpandPath(dir)
		if err != nil {
			return fmt.Errorf("resolve flagged directory: %w", err)
		}
		paths, err := report.WriteFlaggedFiles(resolved, result.Flagged)
		if err != nil {
			return err
		}
		logger.Info("flagged catalogs written", logging.String("dir", resolved), logging.Int("files", len(paths)))
	}

	out := cmd.OutOrStdout()
	if format == formatJSON {
		return report.JSON(out, report.New(result))
	}
	printResultTables(out, result, shouldColorize(out))
	return nil
}

func saveRun(cmd *cobra.Command, ctx *commandContext, logger *slog.Logger, path string, result *analysis.Result) error {
	resolved, err := config.ExpandPath(path)
	if err != nil {
		return fmt.Errorf("resolve sqlite path: %w", err)
	}
	s, err := store.Open(resolved)
	if err != nil {
		return fmt.Errorf("open report store: %w", err)
	}
	defer s.Close()

	id, err := s.SaveRun(cmd.Context(), store.Run{
		ID:         result.RunID,
		StartedAt:  result.StartedAt,
		ConfigPath: ctx.configPath,
		Stats:      result.Stats,
		Flagged:    result.Flagged,
	})
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	logger.Info("run recorded", logging.String("path", resolved), logging.String(logging.FieldRunID, id))
	return nil
}

func printResultTables(w io.Writer, result *analysis.Result, colorize bool) {
	sources := result.SourceSpecs()
	writeSection(w, "Summary", report.SummaryTable(result.Stats, sources).Render(), colorize)
	writeSection(w, "Winners and Nominees", report.NominationTable(result.Stats, sources).Render(), colorize)
	for _, source := range sources {
		writeSection(w, source.DisplayName()+" by Category", report.SourceTable(result.Stats, source).Render(), colorize)
	}
	writeSection(w, "Positioning", report.PositioningTable(result.Positioning).Render(), colorize)
}
