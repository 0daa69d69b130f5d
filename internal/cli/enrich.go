package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/airdq/internal/enrich"
	"github.com/roach88/airdq/internal/record"
)

// EnrichOptions holds flags for the enrich command.
type EnrichOptions struct {
	*RootOptions
	Input     string
	Output    string
	RulesFile string

	// Clock allows overriding the run timestamp source (for testing).
	// If nil, defaults to enrich.SystemClock.
	Clock enrich.Clock
}

// EnrichResult is the success payload for the enrich command.
type EnrichResult struct {
	Output  string         `json:"output"`
	Summary enrich.Summary `json:"dq_summary"`
}

// NewEnrichCommand creates the enrich command.
func NewEnrichCommand(rootOpts *RootOptions) *cobra.Command {
	return newEnrichCommand(&EnrichOptions{RootOptions: rootOpts})
}

// newEnrichCommand builds the command from pre-populated options.
// Tests use it to inject a fixed clock.
func newEnrichCommand(opts *EnrichOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Attach audit and DQ fields to a raw AQI document",
		Long: `Read a raw air-quality JSON document, attach an audit trail and a
data-quality verdict to every record, and write the enriched document.

The output keeps every top-level key of the input, replaces 'records'
with 'records_enriched', and appends 'dq_summary' and 'enriched_at'.
Each enriched record carries its original fields unchanged plus:

  audit: {ingested_at, source_file, record_hash, object_id}
  dq:    {passed, issues}

Example:
  airdq enrich -i full_aqi_sample_11hr.json -o full_aqi_sample_11hr_enriched.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnrich(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "input JSON file path (required)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output enriched JSON file path (required)")
	cmd.Flags().StringVar(&opts.RulesFile, "rules", "", "optional YAML file overriding the DQ rule set")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runEnrich(opts *EnrichOptions, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	rules, err := loadRules(opts.RulesFile)
	if err != nil {
		_ = formatter.Error(ErrCodeBadRules, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid rules", err)
	}

	slog.Info("reading input", "path", opts.Input)
	doc, records, loadErr := LoadDocument(opts.Input)
	if loadErr != nil {
		_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
		return WrapExitError(ExitCommandError, "loading input document", loadErr)
	}
	slog.Info("records found", "count", len(records))
	formatter.VerboseLog("Found %d record(s) in %s", len(records), opts.Input)

	clock := opts.Clock
	if clock == nil {
		clock = enrich.SystemClock{}
	}
	enricher := &enrich.Enricher{
		Rules:      rules,
		Clock:      clock,
		SourceFile: opts.Input,
	}

	enriched, summary, err := enricher.Enrich(records)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "enriching records", err)
	}

	out := buildOutputDocument(doc, enriched, summary, enrich.FormatTimestamp(clock.Now()))

	slog.Info("writing output", "path", opts.Output)
	if err := writeDocument(opts.Output, out); err != nil {
		_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "writing output document", err)
	}
	slog.Info("done", "total", summary.Total, "passed", summary.Passed, "failed", summary.Failed)
	formatter.VerboseLog("Wrote enriched document to %s", opts.Output)

	return outputEnrichSuccess(formatter, opts.Output, summary)
}

// buildOutputDocument assembles the enriched document: every top-level key
// of the input except 'records', plus records_enriched, dq_summary, and
// enriched_at.
func buildOutputDocument(doc record.Object, enriched record.Array, summary enrich.Summary, enrichedAt string) record.Object {
	out := doc.Clone()
	delete(out, "records")

	out["records_enriched"] = enriched
	out["dq_summary"] = record.Object{
		"total":     record.Int(summary.Total),
		"dq_passed": record.Int(summary.Passed),
		"dq_failed": record.Int(summary.Failed),
	}
	out["enriched_at"] = record.String(enrichedAt)
	return out
}

// writeDocument serializes the document as indented JSON, HTML escaping
// off so non-ASCII station names stay literal, and writes it in one shot.
func writeDocument(path string, doc record.Object) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

// loadRules resolves the effective rule set for a command invocation.
func loadRules(path string) (enrich.Rules, error) {
	if path == "" {
		return enrich.DefaultRules(), nil
	}
	return enrich.LoadRules(path)
}

// configureLogging sets the process-wide slog handler based on verbosity.
func configureLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// outputEnrichSuccess outputs the final summary in the configured format.
func outputEnrichSuccess(formatter *OutputFormatter, outputPath string, summary enrich.Summary) error {
	if formatter.Format == "json" {
		return formatter.Success(EnrichResult{Output: outputPath, Summary: summary})
	}

	fmt.Fprintf(formatter.Writer, "Enriched %d record(s) -> %s\n", summary.Total, outputPath)
	fmt.Fprintf(formatter.Writer, "Total: %d, Passed: %d, Failed: %d\n", summary.Total, summary.Passed, summary.Failed)
	return nil
}
