package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/airdq/internal/enrich"
	"github.com/roach88/airdq/internal/record"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Input     string
	RulesFile string
}

// RecordFailure describes one failing record in check output.
type RecordFailure struct {
	Index  int      `json:"index"`
	Issues []string `json:"issues"`
}

// CheckResult is the payload for the check command.
type CheckResult struct {
	Summary  enrich.Summary  `json:"dq_summary"`
	Failures []RecordFailure `json:"failures,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run DQ rules against a raw AQI document without writing output",
		Long: `Evaluate the data-quality rule set against every record of a raw
air-quality JSON document and report the verdicts. Nothing is written.

Exit codes: 0 when every record passes, 1 when any record fails DQ,
2 when the input lacks a usable 'records' array.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "input JSON file path (required)")
	cmd.Flags().StringVar(&opts.RulesFile, "rules", "", "optional YAML file overriding the DQ rule set")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runCheck(opts *CheckOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	rules, err := loadRules(opts.RulesFile)
	if err != nil {
		_ = formatter.Error(ErrCodeBadRules, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid rules", err)
	}

	_, records, loadErr := LoadDocument(opts.Input)
	if loadErr != nil {
		_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
		return WrapExitError(ExitCommandError, "loading input document", loadErr)
	}

	formatter.VerboseLog("Found %d record(s) in %s", len(records), opts.Input)

	result := CheckResult{}
	for i, v := range records {
		rec := v.(record.Object) // LoadDocument guarantees objects
		verdict := rules.Check(rec)
		if !verdict.Passed {
			formatter.VerboseLog("Record %d failed: %s", i, strings.Join(verdict.Issues, ", "))
		}
		result.Summary.Total++
		if verdict.Passed {
			result.Summary.Passed++
			continue
		}
		result.Summary.Failed++
		result.Failures = append(result.Failures, RecordFailure{Index: i, Issues: verdict.Issues})
	}

	return outputCheckResult(formatter, result)
}

// outputCheckResult renders the verdicts and picks the exit code:
// 0 all passed, 1 any failed.
func outputCheckResult(formatter *OutputFormatter, result CheckResult) error {
	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
		if result.Summary.Failed > 0 {
			return NewExitError(ExitFailure, fmt.Sprintf("%d record(s) failed DQ", result.Summary.Failed))
		}
		return nil
	}

	if result.Summary.Failed == 0 {
		fmt.Fprintf(formatter.Writer, "✓ All %d record(s) passed DQ\n", result.Summary.Total)
		return nil
	}

	fmt.Fprintf(formatter.Writer, "✗ %d of %d record(s) failed DQ\n\n", result.Summary.Failed, result.Summary.Total)
	for _, f := range result.Failures {
		fmt.Fprintf(formatter.Writer, "record %d\n", f.Index)
		for _, issue := range f.Issues {
			fmt.Fprintf(formatter.Writer, "  %s\n", issue)
		}
		fmt.Fprintln(formatter.Writer)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("%d record(s) failed DQ", result.Summary.Failed))
}
