package commands

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/confcheck/internal/configuration"
	"github.com/thoreinstein/confcheck/internal/errors"
	"github.com/thoreinstein/confcheck/internal/paths"
	"github.com/thoreinstein/confcheck/internal/schema"
	"github.com/thoreinstein/confcheck/internal/validation"
	"github.com/thoreinstein/confcheck/pkg/fileutil"
)

var (
	schemaListType string
	schemaListJSON bool

	generateContext string
	generateType    string
	generatePath    string
	generateOutput  string
)

func init() {
	schemaListCmd.Flags().StringVarP(&schemaListType, "type", "t", "",
		"only list schemas for this type")
	schemaListCmd.Flags().BoolVar(&schemaListJSON, "json", false,
		"output as JSON")

	schemaGenerateCmd.Flags().StringVarP(&generateContext, "context", "c", string(configuration.Development),
		"application context to read")
	schemaGenerateCmd.Flags().StringVarP(&generateType, "type", "t", string(configuration.Settings),
		"configuration type")
	schemaGenerateCmd.Flags().StringVar(&generatePath, "path", "",
		"dotted path of the value to describe (default: whole document)")
	schemaGenerateCmd.Flags().StringVarP(&generateOutput, "output", "o", "",
		"write the schema to this file instead of stdout")

	schemaCmd.AddCommand(schemaListCmd)
	schemaCmd.AddCommand(schemaGenerateCmd)
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect and generate configuration schemas",
	Long: `Schemas live in Resources/Private/Schema of schema provider packages:

  <Type>.schema.yaml               governs the whole document
  <Type>/<dotted.path>.schema.yaml governs the value at that path`,
}

var schemaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered schemas",
	Example: `  # All schemas
  confcheck schema list

  # Settings schemas as JSON
  confcheck schema list -t Settings --json`,
	Args: cobra.NoArgs,
	RunE: runSchemaList,
}

var schemaGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a schema from current configuration",
	Long: `Infer a JSON schema from the merged configuration of one context and type.
The result accepts the current configuration and is meant as a starting point
for a hand-maintained schema.`,
	Example: `  # Print a schema for the Production settings of one package
  confcheck schema generate -c Production --path Acme.Shop

  # Write it next to the other schemas
  confcheck schema generate --path Acme.Shop \
    -o Packages/Application/Acme.Shop/Resources/Private/Schema/Settings/Acme.Shop.schema.yaml`,
	Args: cobra.NoArgs,
	RunE: runSchemaGenerate,
}

func runSchemaList(cmd *cobra.Command, _ []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}

	schemas := ws.registry.All()
	if schemaListType != "" {
		t, err := parseType(schemaListType)
		if err != nil {
			return err
		}
		schemas = ws.registry.SchemasFor(t)
	}

	out := cmd.OutOrStdout()
	if schemaListJSON {
		if schemas == nil {
			schemas = []*schema.Schema{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(schemas), "encoding schema list")
	}

	if len(schemas) == 0 {
		fmt.Fprintln(out, "No schemas found.")
		return nil
	}

	rows := make([][]string, 0, len(schemas))
	for _, s := range schemas {
		source := s.Source
		if rel, err := filepath.Rel(ws.root, s.Source); err == nil {
			source = rel
		}
		rows = append(rows, []string{s.Type.String(), validation.DisplayPath(s.Path), s.Package, source})
	}
	fmt.Fprintln(out, table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Type", "Path", "Package", "Source").
		Rows(rows...).
		Render())
	return nil
}

func runSchemaGenerate(cmd *cobra.Command, _ []string) error {
	appCtx, err := parseContext(generateContext)
	if err != nil {
		return err
	}
	t, err := parseType(generateType)
	if err != nil {
		return err
	}

	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	value, err := ws.load(appCtx, t, generatePath)
	if err != nil {
		return err
	}

	data, err := configuration.Encode(schema.Generate(value), configuration.FormatYAML)
	if err != nil {
		return errors.Wrap(err, "encoding schema")
	}

	if generateOutput == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return errors.Wrap(err, "writing output")
	}
	if err := paths.EnsureDir(filepath.Dir(generateOutput), 0o755); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "creating output directory"), "Check the permissions of --output")
	}
	if err := fileutil.WriteNewline(generateOutput, data, 0o644); err != nil {
		return errors.NewSystemError(err, "Check the permissions of --output")
	}
	ws.logger.Info("schema written", "file", generateOutput)
	return nil
}
