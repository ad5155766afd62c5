package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the topics questions are accepted for",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := cfg.Catalog()
		if err != nil {
			return fmt.Errorf("load topic catalog: %w", err)
		}

		out := cmd.OutOrStdout()
		if cats := catalog.Categories(); len(cats) > 0 {
			fmt.Fprintf(out, "Categories: %s\n\n", strings.Join(cats, ", "))
		}

		fmt.Fprintf(out, "Keywords (%d)\n", catalog.Len())
		fmt.Fprintln(out, strings.Repeat("─", 40))
		for _, k := range catalog.Keywords() {
			fmt.Fprintf(out, "  %s\n", k)
		}
		return nil
	},
}
