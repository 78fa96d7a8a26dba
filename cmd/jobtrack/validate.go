package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobsearch-insights/internal/dataset"
	"github.com/jonathan/jobsearch-insights/internal/schemas"
	rootschemas "github.com/jonathan/jobsearch-insights/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a dataset, a report, or any JSON file against a schema",
	Long: "With --data, checks a dataset file against the dataset schema and lists every record that would be skipped. " +
		"With --report, checks a report JSON file against the report schema. " +
		"With --schema and --json, checks an arbitrary JSON file against a schema file.",
	RunE: runValidate,
}

var (
	validateData   string
	validateReport string
	validateSchema string
	validateJSON   string
)

func init() {
	validateCmd.Flags().StringVarP(&validateData, "data", "d", "", "Dataset file (JSON or YAML)")
	validateCmd.Flags().StringVar(&validateReport, "report", "", "Report JSON file")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Schema file, used with --json")
	validateCmd.Flags().StringVar(&validateJSON, "json", "", "JSON file to validate against --schema")
	validateCmd.MarkFlagsRequiredTogether("schema", "json")
	validateCmd.MarkFlagsMutuallyExclusive("data", "report", "json")
	validateCmd.MarkFlagsOneRequired("data", "report", "json")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	var err error
	switch {
	case validateData != "":
		var skips dataset.SkipReport
		skips, err = validateDataset(validateData)
		if err == nil {
			_, _ = fmt.Fprintf(out, "Validation passed: %s\n", validateData)
			printSkips(cmd, skips)
			return nil
		}
	case validateReport != "":
		err = validateReportEmbedded(validateReport)
	default:
		schemaPath := validateSchema
		if resolved := schemas.ResolveSchemaPath(validateSchema); resolved != "" {
			schemaPath = resolved
		}
		err = schemas.ValidateJSON(schemaPath, validateJSON)
	}

	if err != nil {
		_, _ = fmt.Fprintf(out, "Validation failed\n")
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			for _, fe := range ve.Errors {
				_, _ = fmt.Fprintf(out, "  %s: %s\n", fe.Field, fe.Message)
			}
		}
		return err
	}
	_, _ = fmt.Fprintf(out, "Validation passed\n")
	return nil
}

func validateDataset(path string) (dataset.SkipReport, error) {
	_, skips, err := dataset.Load(path)
	return skips, err
}

func validateReportEmbedded(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read report: %w", err)
	}
	return schemas.ValidateJSONString(rootschemas.Report(), string(data))
}

func printSkips(cmd *cobra.Command, skips dataset.SkipReport) {
	out := cmd.OutOrStdout()
	if skips.Total() == 0 {
		_, _ = fmt.Fprintln(out, "No records skipped")
		return
	}
	_, _ = fmt.Fprintf(out, "%d records will be skipped:\n", skips.Total())
	for _, s := range skips.Skips {
		id := s.ID
		if id == "" {
			id = "(no id)"
		}
		_, _ = fmt.Fprintf(out, "  %s[%d] %s: %s\n", s.Collection, s.Index, id, s.Reason)
	}
}
