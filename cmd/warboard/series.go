package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/warboard/warboard/internal/normalize"
	"github.com/warboard/warboard/internal/report"
	"github.com/warboard/warboard/internal/roles"
)

// Series-specific flag values.
var (
	seriesQuery string
	seriesJSON  bool
)

// seriesCmd prints one role's per-row values.
var seriesCmd = &cobra.Command{
	Use:   "series <role> [source]",
	Short: "Print one role's value for every matching player",
	Long: `Print the normalized value of one role for every row matching the search
query, in sheet order. Roles: name, governor_id, starting_power, power,
total_kills, t4_kills, t5_kills, kill_points, total_deads, requirements_pct,
plus any custom role defined under roles in .warboard.yaml.

An unresolved role prints zeros and logs a warning.`,
	Example: `  warboard series t5_kills export.csv -s "[ABC]"
  warboard series requirements_pct --json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSeries,
}

func init() {
	seriesCmd.Flags().StringVarP(&seriesQuery, "query", "s", "", "search query matched against every cell")
	seriesCmd.Flags().BoolVar(&seriesJSON, "json", false, "print a JSON document instead of a table")
}

type seriesDoc struct {
	Role   string    `json:"role"`
	Column string    `json:"column,omitempty"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

func runSeries(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	snap, err := loadFrom(cmd, cfg, sourceFromArgs(args, 1, cfg))
	if err != nil {
		return err
	}
	role := roles.Role(args[0])
	if !snap.Binding.Has(role) {
		return exitError(ExitInvalidArgs, "warboard: unknown role %q", args[0])
	}
	query := cfg.Query
	if cmd.Flags().Changed("query") {
		query = seriesQuery
	}

	view := snap.View(query)
	col, _ := snap.Binding.Column(role)
	doc := seriesDoc{
		Role:   string(role),
		Column: col,
		Labels: snap.Labels(view),
		Values: snap.Series(view, role),
	}

	w := cmd.OutOrStdout()
	if seriesJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("warboard: write series (%w)", err)
		}
		return nil
	}

	unit := ""
	if snap.Binding.Hint(role) == normalize.Percent {
		unit = "%"
	}
	header := string(role)
	if col != "" {
		header = col
	}
	tbl := report.NewTable(
		report.Column{Header: "#", Align: report.AlignRight},
		report.Column{Header: "Player", MaxWidth: 32},
		report.Column{Header: header, Align: report.AlignRight},
	)
	for i, v := range doc.Values {
		tbl.AddRow(strconv.Itoa(i+1), doc.Labels[i], report.Number(v, unit))
	}
	if tbl.Len() == 0 {
		_, err := fmt.Fprintln(w, "No matching rows.")
		return err
	}
	return tbl.Render(w)
}
