package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/confcheck/internal/config"
	"github.com/thoreinstein/confcheck/internal/errors"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective confcheck configuration",
	Long: `Print the configuration confcheck runs with, after applying the config file,
CONFCHECK_ environment variables and defaults, in YAML format.

When the configuration is invalid, every rejected field is listed.`,
	Example: `  # Show effective configuration
  confcheck config

  # Check a specific file
  confcheck --config ./confcheck.yaml config`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	source := config.UsedFile()
	if source == "" {
		source = "(defaults)"
	}

	if configLoadErr != nil {
		return errors.NewUserError(configLoadErr, "Fix the fields listed above in "+source)
	}

	data, err := yaml.Marshal(loadedConfig)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# source: %s\n", source)
	_, err = out.Write(data)
	return errors.Wrap(err, "writing output")
}
