package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/confcheck/internal/configuration"
	"github.com/thoreinstein/confcheck/internal/errors"
)

var (
	diffType string
	diffPath string
)

func init() {
	diffCmd.Flags().StringVarP(&diffType, "type", "t", string(configuration.Settings),
		"configuration type")
	diffCmd.Flags().StringVar(&diffPath, "path", "",
		"dotted path of the value to compare (default: whole document)")

	rootCmd.AddCommand(diffCmd)
}

var diffCmd = &cobra.Command{
	Use:   "diff <context-a> <context-b>",
	Short: "Compare merged configuration of two contexts",
	Long: `Compare the merged configuration of one type in two contexts. Lines only in
the first context are prefixed with "-", lines only in the second with "+".`,
	Example: `  # What does Production change compared to Development?
  confcheck diff Development Production -t Settings

  # Compare one subtree
  confcheck diff Production Production/Live --path TYPO3.Flow.persistence

See Also: confcheck show`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func runDiff(cmd *cobra.Command, args []string) error {
	a, err := parseContext(args[0])
	if err != nil {
		return err
	}
	b, err := parseContext(args[1])
	if err != nil {
		return err
	}
	t, err := parseType(diffType)
	if err != nil {
		return err
	}

	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	left, err := ws.load(a, t, diffPath)
	if err != nil {
		return err
	}
	right, err := ws.load(b, t, diffPath)
	if err != nil {
		return err
	}

	out, err := configuration.Diff(left, right, a.String(), b.String())
	if err != nil {
		return errors.Wrap(err, "comparing configuration")
	}
	if out == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "No differences between %s and %s for %s.\n", a, b, t)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
