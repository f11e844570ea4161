package main

import (
	"github.com/spf13/cobra"

	"prestige/internal/report"
)

func newCategoriesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show how raw award labels map onto categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, source := range cfg.Awards {
				spec := source.Spec()
				rows := make([][]string, 0)
				for _, category := range spec.Categories {
					for _, label := range category.Labels {
						rows = append(rows, []string{category.Name, label})
					}
				}
				table := report.Table{
					Headers: []string{"Category", "Label"},
					Rows:    rows,
				}
				title := spec.DisplayName() + " (" + spec.ID + ", " + string(spec.Strategy) + ")"
				writeSection(out, title, table.Render(), colorize)
			}
			return nil
		},
	}
}
