package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/warboard/warboard/internal/report"
)

// inspectCmd shows how the source's columns were understood.
var inspectCmd = &cobra.Command{
	Use:   "inspect [source]",
	Short: "Show the column set, role binding and data warnings",
	Long: `Fetch the source and show every column with the role it was bound to,
every role with its column (or that it is unresolved), and the warnings
raised while decoding. Use this to tune the roles section of
.warboard.yaml when a sheet renames its headers.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	_, snap, err := openSnapshot(cmd, args, 0)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	if _, err := fmt.Fprintf(w, "%s  %s\n", report.SectionTitle("Source"), snap.String()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Snapshot %s fetched %s in %s\n\n",
		snap.ID, snap.FetchedAt.Format("2006-01-02 15:04:05"), snap.Duration.Round(time.Millisecond)); err != nil {
		return err
	}

	bound := make(map[string]string)
	for r, col := range snap.Binding.Map() {
		bound[col] = string(r)
	}

	if _, err := fmt.Fprintln(w, report.SectionTitle("Columns")); err != nil {
		return err
	}
	cols := report.NewTable(
		report.Column{Header: "#", Align: report.AlignRight},
		report.Column{Header: "Header", MaxWidth: 40},
		report.Column{Header: "Role", Color: report.Faint},
	)
	for i, col := range snap.Dataset.Columns {
		cols.AddRow(strconv.Itoa(i+1), col, bound[col])
	}
	if err := cols.Render(w); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\n%s\n", report.SectionTitle("Roles")); err != nil {
		return err
	}
	rolesTbl := report.NewTable(
		report.Column{Header: "Role"},
		report.Column{Header: "Column", MaxWidth: 40},
		report.Column{Header: "Hint"},
	)
	for _, r := range snap.Binding.Roles() {
		col, ok := snap.Binding.Column(r)
		if !ok {
			col = "(unresolved)"
		}
		rolesTbl.AddRow(string(r), col, snap.Binding.Hint(r).String())
	}
	if err := rolesTbl.Render(w); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	return report.RenderWarnings(w, snap.Warnings())
}
