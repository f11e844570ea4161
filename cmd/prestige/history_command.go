package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"prestige/internal/awards"
	"prestige/internal/config"
	"prestige/internal/report"
	"prestige/internal/stats"
	"prestige/internal/store"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var sqlitePath string
	var asJSON bool
	var withTitles bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the most recent run recorded in the SQLite store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := strings.TrimSpace(sqlitePath)
			if path == "" {
				path = cfg.Paths.SQLitePath
			}
			if path == "" {
				return errors.New("no store configured (set paths.sqlite_path or pass --sqlite)")
			}
			resolved, err := config.ExpandPath(path)
			if err != nil {
				return fmt.Errorf("resolve sqlite path: %w", err)
			}

			s, err := store.Open(resolved)
			if err != nil {
				return fmt.Errorf("open report store: %w", err)
			}
			defer s.Close()

			run, err := s.LatestRun(cmd.Context())
			if err != nil {
				if errors.Is(err, store.ErrNoRuns) {
					fmt.Fprintf(cmd.OutOrStdout(), "No runs recorded in %s\n", resolved)
					return nil
				}
				return err
			}
			platforms, err := s.PlatformStats(cmd.Context(), run.ID)
			if err != nil {
				return err
			}

			var titles map[string][]store.TitleFlag
			if withTitles {
				titles = make(map[string][]store.TitleFlag, len(platforms))
				for _, platform := range platforms {
					flags, err := s.TitleFlags(cmd.Context(), run.ID, platform.Platform)
					if err != nil {
						return err
					}
					titles[platform.Platform] = flags
				}
			}

			if asJSON {
				return writeJSON(cmd, struct {
					RunID      string                       `json:"run_id"`
					StartedAt  time.Time                    `json:"started_at"`
					ConfigPath string                       `json:"config_path"`
					Platforms  []stats.Stats                `json:"platforms"`
					Titles     map[string][]store.TitleFlag `json:"titles,omitempty"`
				}{run.ID, run.StartedAt, run.ConfigPath, platforms, titles})
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintf(out, "Run %s started %s\n\n", run.ID, run.StartedAt.Local().Format(time.RFC3339))
			table := report.SummaryTable(platforms, historySources(cfg, platforms))
			writeSection(out, "Summary", table.Render(), colorize)
			if withTitles {
				for _, platform := range platforms {
					rendered := titleFlagsTable(titles[platform.Platform]).Render()
					if rendered == "" {
						rendered = "No award titles"
					}
					writeSection(out, platform.Platform+" titles", rendered, colorize)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "SQLite database to read (defaults to paths.sqlite_path)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	cmd.Flags().BoolVar(&withTitles, "titles", false, "List the flagged titles of each platform")
	return cmd
}

// titleFlagsTable folds stored flags into one row per catalog title. An
// empty input yields a table with no headers.
func titleFlagsTable(flags []store.TitleFlag) report.Table {
	if len(flags) == 0 {
		return report.Table{}
	}
	var rows [][]string
	last := -1
	for _, flag := range flags {
		if flag.RowIndex != last {
			rows = append(rows, []string{flag.Title, flag.TitleKey, flag.Flag})
			last = flag.RowIndex
			continue
		}
		row := rows[len(rows)-1]
		row[2] += ", " + flag.Flag
	}
	return report.Table{
		Headers: []string{"Title", "Key", "Flags"},
		Rows:    rows,
	}
}

// historySources resolves the source columns of stored stats, using the
// configured display names when a source is still configured.
func historySources(cfg *config.Config, platforms []stats.Stats) []awards.SourceSpec {
	if len(platforms) == 0 {
		return nil
	}
	known := make(map[string]awards.SourceSpec, len(cfg.Awards))
	for _, spec := range cfg.SourceSpecs() {
		known[spec.ID] = spec
	}
	specs := make([]awards.SourceSpec, 0, len(platforms[0].SourceOrder))
	for _, id := range platforms[0].SourceOrder {
		spec, ok := known[id]
		if !ok {
			spec = awards.SourceSpec{ID: id}
		}
		specs = append(specs, spec)
	}
	return specs
}
