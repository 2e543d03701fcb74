package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/confcheck/internal/configuration"
	"github.com/thoreinstein/confcheck/internal/errors"
)

var (
	showContext string
	showType    string
	showPath    string
	showFormat  string
)

func init() {
	showCmd.Flags().StringVarP(&showContext, "context", "c", string(configuration.Development),
		"application context")
	showCmd.Flags().StringVarP(&showType, "type", "t", string(configuration.Settings),
		"configuration type")
	showCmd.Flags().StringVar(&showPath, "path", "",
		"dotted path of the value to show (default: whole document)")
	showCmd.Flags().StringVar(&showFormat, "format", configuration.FormatYAML,
		"output format: yaml, json, toml")

	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show merged configuration",
	Long: `Show the configuration of one context and type as it results from merging
every package and global configuration file.`,
	Example: `  # Show the merged Production settings
  confcheck show -c Production -t Settings

  # Show one subtree as JSON
  confcheck show -t Settings --path TYPO3.Flow.persistence --format json

See Also: confcheck diff, confcheck validate`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func runShow(cmd *cobra.Command, _ []string) error {
	appCtx, err := parseContext(showContext)
	if err != nil {
		return err
	}
	t, err := parseType(showType)
	if err != nil {
		return err
	}

	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	value, err := ws.load(appCtx, t, showPath)
	if err != nil {
		return err
	}

	data, err := configuration.Encode(value, showFormat)
	if err != nil {
		return errors.NewUserError(err, "Supported formats: yaml, json, toml (toml needs a mapping)")
	}
	_, err = cmd.OutOrStdout().Write(data)
	return errors.Wrap(err, "writing output")
}
