package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"prestige/internal/textutil"
)

func newNormalizeCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "normalize TITLE...",
		Short:       "Print the normalized match key of each title",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				type entry struct {
					Title string `json:"title"`
					Key   string `json:"key"`
				}
				entries := make([]entry, len(args))
				for i, title := range args {
					entries[i] = entry{Title: title, Key: textutil.NormalizeTitle(title)}
				}
				return writeJSON(cmd, entries)
			}
			out := cmd.OutOrStdout()
			for _, title := range args {
				fmt.Fprintln(out, textutil.NormalizeTitle(title))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit title/key pairs as JSON")
	return cmd
}
