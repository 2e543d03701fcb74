package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/confcheck/internal/configuration"
)

func init() {
	rootCmd.AddCommand(typesCmd)
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List configuration types",
	Long: `List the configuration types that can be loaded and validated. Routes is
a list of route definitions; every other type is a mapping.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		for _, t := range configuration.Types() {
			kind := "mapping"
			if t.IsList() {
				kind = "list"
			}
			fmt.Fprintf(out, "%-10s %s\n", t, kind)
		}
	},
}
