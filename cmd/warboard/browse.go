package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/warboard/warboard/internal/chart"
	"github.com/warboard/warboard/internal/output"
	"github.com/warboard/warboard/internal/report"
)

// Browse-specific flag values.
var (
	browseQuery  string
	browseNoRows bool
)

const clearScreen = "\033[H\033[2J"

// browseCmd is the interactive search loop.
var browseCmd = &cobra.Command{
	Use:   "browse [source]",
	Short: "Search the roster interactively",
	Long: `Fetch the roster once, then read search queries from stdin, one per
line. Every query re-filters the rows and recomputes the figures and charts
over exactly the matching rows. An empty line shows every row; ":q" or EOF
quits.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().StringVarP(&browseQuery, "query", "s", "", "initial search query")
	browseCmd.Flags().BoolVar(&browseNoRows, "no-rows", false, "omit the row table")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	location := sourceFromArgs(args, 0, cfg)
	if location == "-" {
		return exitError(ExitInvalidArgs, "warboard: browse reads queries from stdin; the source must be a URL or file")
	}
	snap, err := loadFrom(cmd, cfg, location)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	opts := output.PageOptions{Query: cfg.Query, Columns: cfg.Columns, Top: cfg.Top}
	if cmd.Flags().Changed("query") {
		opts.Query = browseQuery
	}

	b := &browser{
		out:    out,
		charts: chart.NewRegistry(&chart.TextRenderer{W: out}),
		clear:  isTerminal(out),
		noRows: browseNoRows,
	}
	defer b.charts.Close() //nolint:errcheck // terminal handles

	if err := b.render(output.NewPage(snap, opts)); err != nil {
		return err
	}
	in := bufio.NewScanner(cmd.InOrStdin())
	for in.Scan() {
		line := in.Text()
		if strings.TrimSpace(line) == ":q" {
			break
		}
		opts.Query = line
		if err := b.render(output.NewPage(snap, opts)); err != nil {
			return err
		}
	}
	if err := in.Err(); err != nil {
		return fmt.Errorf("warboard: read query (%w)", err)
	}
	_, err = fmt.Fprintln(out)
	return err
}

// browser redraws one page per query. Charts go through a registry so each
// chart id has exactly one live drawing.
type browser struct {
	out    io.Writer
	charts *chart.Registry
	clear  bool
	noRows bool
}

func (b *browser) render(p *output.Page) error {
	if b.clear {
		if _, err := io.WriteString(b.out, clearScreen); err != nil {
			return err
		}
	}
	if err := report.RenderSummary(b.out, p.Snapshot, p.Query, p.Result); err != nil {
		return err
	}
	if err := b.charts.Sync(p.Charts); err != nil {
		return fmt.Errorf("warboard: draw charts (%w)", err)
	}
	if !b.noRows {
		if len(p.View) == 0 {
			if _, err := fmt.Fprintln(b.out, "No matching rows."); err != nil {
				return err
			}
		} else if err := report.RenderRows(b.out, p.Columns, p.View); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(b.out, "\nsearch> ")
	return err
}
