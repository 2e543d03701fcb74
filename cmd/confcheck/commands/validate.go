package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/confcheck/internal/aggregator"
	"github.com/thoreinstein/confcheck/internal/errors"
	"github.com/thoreinstein/confcheck/internal/validation"
)

var (
	validateContexts    []string
	validateTypes       []string
	validateJSON        bool
	validateMatrix      bool
	validateWorkers     int
	validateInteractive bool
)

func init() {
	validateCmd.Flags().StringSliceVarP(&validateContexts, "context", "c", nil,
		"context(s) to validate (default: configured contexts)")
	validateCmd.Flags().StringSliceVarP(&validateTypes, "type", "t", nil,
		"configuration type(s) to validate (default: configured types)")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false,
		"output the sweep as JSON")
	validateCmd.Flags().BoolVar(&validateMatrix, "matrix", false,
		"append a context x type summary table")
	validateCmd.Flags().IntVar(&validateWorkers, "workers", 0,
		"pairs validated in parallel (default: workers from config)")
	validateCmd.Flags().BoolVarP(&validateInteractive, "interactive", "i", false,
		"pick contexts and types interactively")

	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration of every context and type",
	Long: `Validate the merged configuration of each selected context and type
against the schemas of the schema provider packages.

Every problem is reported as "<path> -> <message>", where the root of a
document is shown as "(root)". A type without any schema is reported as a
single root error, as is a configuration file that cannot be loaded; neither
stops the other pairs from being validated.

Exits with status 1 when any pair has errors.`,
	Example: `  # Validate all configured contexts and types
  confcheck validate

  # Validate two types in Production, four pairs at a time
  confcheck validate -c Production -t Settings,Routes --workers 4

  # Machine-readable output
  confcheck validate --json

See Also: confcheck show, confcheck schema list`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, _ []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}

	contexts, err := parseContexts(validateContexts, ws.cfg.AppContexts())
	if err != nil {
		return err
	}
	types, err := parseTypes(validateTypes, ws.cfg.ConfigTypes())
	if err != nil {
		return err
	}
	if validateInteractive {
		contexts, types, err = selectPairs(contexts, types)
		if err != nil {
			return err
		}
	}

	workers := ws.cfg.Workers
	if cmd.Flags().Changed("workers") {
		workers = validateWorkers
	}

	agg := aggregator.New(ws.loader, ws.registry,
		aggregator.WithContexts(ws.cfg.AppContexts()),
		aggregator.WithTypes(ws.cfg.ConfigTypes()),
		aggregator.WithWorkers(workers),
		aggregator.WithLogger(ws.logger),
	)
	sweep := agg.RunAll(cmd.Context(), contexts, types)

	out := cmd.OutOrStdout()
	format := validation.FormatText
	if validateJSON || ws.cfg.Output == string(validation.FormatJSON) {
		format = validation.FormatJSON
	}

	switch {
	case quiet && format == validation.FormatText:
		for _, e := range sweep.Failed() {
			fmt.Fprintf(out, "%s %s:\n", e.Context, e.Type)
			if err := validation.WriteLines(out, e.Result); err != nil {
				return err
			}
		}
	default:
		if err := validation.NewReporter(out, format, validation.WithMatrix(validateMatrix)).Report(sweep); err != nil {
			return errors.NewSystemError(err, "")
		}
	}

	if sweep.HasErrors() {
		return errors.NewExitError(
			errors.Wrapf(errors.ErrValidationFailed, "%d error(s) in %d of %d pair(s)",
				sweep.ErrorCount(), len(sweep.Failed()), sweep.Len()),
			errors.ExitUser)
	}
	return nil
}
