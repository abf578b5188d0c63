package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/warboard/warboard/internal/config"
	"github.com/warboard/warboard/internal/output"
	"github.com/warboard/warboard/internal/pipeline"
)

// Report-specific flag values.
var (
	reportQuery    string
	reportFormat   string
	reportOutput   string
	reportColumns  []string
	reportTop      int
	reportNoCharts bool
	reportNoRows   bool
	reportCompact  bool
	reportStrict   bool
)

// reportCmd renders one filtered view of the source.
var reportCmd = &cobra.Command{
	Use:   "report [source]",
	Short: "Summarize the roster, optionally filtered by a search query",
	Long: `Fetch the roster once, keep the rows where any cell contains the search
query (case-insensitive), and report the summary figures, rankings and rows
for exactly those rows.

The source is a published CSV URL, a local CSV file, or "-" for stdin. It
defaults to the "source" setting in .warboard.yaml.`,
	Example: `  warboard report "https://docs.google.com/.../pub?output=csv"
  warboard report export.csv -s "[ABC]" -f markdown
  warboard report -f html -o dashboard.html
  warboard report -f xlsx -o roster.xlsx`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportQuery, "query", "s", "", "search query matched against every cell")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "", "output format: text, json, markdown, html, xlsx (default text)")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "output file path (default: stdout)")
	reportCmd.Flags().StringSliceVar(&reportColumns, "columns", nil, "columns to show in the row table")
	reportCmd.Flags().IntVar(&reportTop, "top", 0, "bars per ranking chart (default 15)")
	reportCmd.Flags().BoolVar(&reportNoCharts, "no-charts", false, "omit charts from text output")
	reportCmd.Flags().BoolVar(&reportNoRows, "no-rows", false, "omit the row table from text output")
	reportCmd.Flags().BoolVar(&reportCompact, "compact", false, "single-line json output")
	reportCmd.Flags().BoolVar(&reportStrict, "strict", false, "exit 2 when the data raised warnings")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format := firstNonEmpty(flagString(cmd, "format", reportFormat), cfg.OutputFormat, "text")
	formatter, err := reportFormatter(format)
	if err != nil {
		return exitError(ExitInvalidArgs, "warboard: %v", err)
	}

	outPath := firstNonEmpty(flagString(cmd, "output", reportOutput), cfg.Output)
	if outPath == "" && output.IsBinary(formatter) && isTerminal(cmd.OutOrStdout()) {
		return exitError(ExitInvalidArgs, "warboard: refusing to write %s to a terminal (use -o)", format)
	}

	f, err := newFetcher(cmd, sourceFromArgs(args, 0, cfg))
	if err != nil {
		return err
	}
	p, err := newPipeline(cfg, f)
	if err != nil {
		return err
	}

	snap, loadErr := loadSnapshot(cmd.Context(), p)
	if loadErr != nil {
		// The dashboard shows the failure in place of the data. Other
		// formats leave an existing output file alone.
		if html, ok := formatter.(*output.HTMLFormatter); ok {
			var buf bytes.Buffer
			if err := html.FormatError(loadErr, &buf); err != nil {
				slog.Error("write error page", "error", err)
			} else if err := writeOutput(cmd, outPath, buf.Bytes()); err != nil {
				slog.Error("write error page", "error", err)
			}
		}
		return loadErr
	}

	page := output.NewPage(snap, reportPageOptions(cmd, cfg))
	var buf bytes.Buffer
	if err := formatter.Format(page, &buf); err != nil {
		return exitError(ExitLoadFailure, "warboard: rendering failed (%v)", err)
	}
	if err := writeOutput(cmd, outPath, buf.Bytes()); err != nil {
		return err
	}

	slog.Info("report complete", "rows", page.Result.Rows, "of", page.Total(), "format", format)
	return strictCheck(snap)
}

// writeOutput writes a finished rendition to outPath, or to the command's
// stdout when outPath is empty.
func writeOutput(cmd *cobra.Command, outPath string, data []byte) error {
	if outPath == "" {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return exitError(ExitInvalidArgs, "warboard: write output (%v)", err)
		}
		return nil
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil { //nolint:gosec // user-specified output path, world-readable report
		return exitError(ExitInvalidArgs, "warboard: cannot write output file %q (%v)", outPath, err)
	}
	return nil
}

// reportFormatter returns the named formatter with report flags applied.
func reportFormatter(format string) (output.Formatter, error) {
	switch format {
	case "text":
		return &output.TextFormatter{NoCharts: reportNoCharts, NoRows: reportNoRows}, nil
	case "json":
		return &output.JSONFormatter{Compact: reportCompact}, nil
	}
	return output.GetFormatter(format)
}

func reportPageOptions(cmd *cobra.Command, cfg *config.Config) output.PageOptions {
	opts := output.PageOptions{
		Query:   cfg.Query,
		Columns: cfg.Columns,
		Top:     cfg.Top,
	}
	if cmd.Flags().Changed("query") {
		opts.Query = reportQuery
	}
	if cmd.Flags().Changed("columns") {
		opts.Columns = reportColumns
	}
	if cmd.Flags().Changed("top") {
		opts.Top = reportTop
	}
	return opts
}

// strictCheck turns data warnings into ExitWarnings under --strict.
func strictCheck(snap *pipeline.Snapshot) error {
	if !reportStrict {
		return nil
	}
	if n := len(snap.Warnings()); n > 0 {
		return exitError(ExitWarnings, "warboard: %d warning(s) in %s", n, snap.Source)
	}
	return nil
}

// flagString returns value when the named flag was set on the command line.
func flagString(cmd *cobra.Command, name, value string) string {
	if cmd.Flags().Changed(name) {
		return value
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// isTerminal reports whether w is a character device.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
