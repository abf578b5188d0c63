// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package aggregate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warboard/warboard/internal/roles"
	"github.com/warboard/warboard/internal/table"
)

func bind(columns []string) roles.Binding {
	return roles.Resolve(columns, roles.DefaultRules())
}

func TestAggregate_EndToEnd(t *testing.T) {
	cols := []string{"Kills", "Deads"}
	view := table.View{
		table.RowOf(map[string]string{"Kills": "1,000", "Deads": "50"}),
		table.RowOf(map[string]string{"Kills": "2,500", "Deads": "10"}),
	}

	res := Aggregate(view, bind(cols), DefaultMetrics())
	assert.Equal(t, 2, res.Rows)
	assert.Equal(t, 3500.0, res.Value("total_kills"))
	assert.Equal(t, 60.0, res.Value("total_deads"))
}

func TestAggregate_FromDecodedCSV(t *testing.T) {
	ds, err := table.DecodeString(`Name,Starting Power,Total Kills,T4 Kills,T5 Kills,Total Deads,% of Requirements Complete
Alice,"10,000,000","1,000",600,400,50,45%
Bob,"5,000,000","2,500","1,500","1,000",10,0.75
Carol,,abc,,,,
`)
	require.NoError(t, err)

	res := Aggregate(ds.All(), bind(ds.Columns), DefaultMetrics())
	assert.Equal(t, 3, res.Rows)
	assert.Equal(t, 3500.0, res.Value("total_kills"))
	assert.Equal(t, 60.0, res.Value("total_deads"))
	assert.Equal(t, 3500.0, res.Value("kill_points"))
	assert.Equal(t, 15_000_000.0, res.Value("starting_power"))
	assert.InDelta(t, (45.0+75.0+0)/3, res.Value("requirements_pct"), 1e-9)
	assert.Empty(t, res.Warnings())
}

func TestAggregate_EmptyView(t *testing.T) {
	b := bind([]string{"Name", "Total Kills", "Total Deads", "% of Requirements Complete"})
	res := Aggregate(nil, b, DefaultMetrics())

	assert.Equal(t, 0, res.Rows)
	for _, f := range res.Figures {
		assert.Equal(t, 0.0, f.Value, f.Metric.Name)
		assert.False(t, math.IsNaN(f.Value), f.Metric.Name)
	}
	assert.Equal(t, 0.0, res.Value("requirements_pct"))
}

func TestAggregate_FilterConsistency(t *testing.T) {
	ds, err := table.DecodeString(`Name,Alliance,Total Kills,Total Deads
Alice,RED,"1,000",50
Bob,BLUE,"2,500",10
Carol,RED,700,5
`)
	require.NoError(t, err)
	b := bind(ds.Columns)

	filtered := Aggregate(table.Filter(ds, "red"), b, DefaultMetrics())

	independent := table.View{
		table.RowOf(map[string]string{"Name": "Alice", "Alliance": "RED", "Total Kills": "1,000", "Total Deads": "50"}),
		table.RowOf(map[string]string{"Name": "Carol", "Alliance": "RED", "Total Kills": "700", "Total Deads": "5"}),
	}
	direct := Aggregate(independent, b, DefaultMetrics())

	assert.Equal(t, direct, filtered)
	assert.Equal(t, 1700.0, filtered.Value("total_kills"))
}

func TestAggregate_Deterministic(t *testing.T) {
	ds, err := table.DecodeString("Name,Total Kills\nA,1\nB,2\n")
	require.NoError(t, err)
	b := bind(ds.Columns)

	first := Aggregate(ds.All(), b, DefaultMetrics())
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Aggregate(ds.All(), b, DefaultMetrics()))
	}
}

func TestAggregate_UnresolvedRoles(t *testing.T) {
	ds, err := table.DecodeString("Name,Total Kills\nA,5\n")
	require.NoError(t, err)

	res := Aggregate(ds.All(), bind(ds.Columns), DefaultMetrics())
	assert.Equal(t, 5.0, res.Value("total_kills"))
	assert.Equal(t, 0.0, res.Value("kill_points"))

	f, ok := res.Figure("kill_points")
	require.True(t, ok)
	assert.Equal(t, []roles.Role{roles.T4Kills, roles.T5Kills}, f.Missing)

	warnings := res.Warnings()
	require.Len(t, warnings, 4)
	assert.Contains(t, warnings[0], "total_deads")
	assert.Contains(t, warnings[1], "t4_kills, t5_kills")
}

func TestAggregate_PartiallyResolvedComposite(t *testing.T) {
	ds, err := table.DecodeString("Name,T4 Kills\nA,100\nB,50\n")
	require.NoError(t, err)

	res := Aggregate(ds.All(), bind(ds.Columns), DefaultMetrics())
	f, _ := res.Figure("kill_points")
	assert.Equal(t, 150.0, f.Value)
	assert.Equal(t, []roles.Role{roles.T5Kills}, f.Missing)
}

func TestAggregate_ConfiguredComposition(t *testing.T) {
	ds, err := table.DecodeString("Name,Kill Points,T4 Kills,T5 Kills\nA,999,1,2\n")
	require.NoError(t, err)
	b := bind(ds.Columns)

	single := []Metric{{Name: "kp", Kind: Sum, Roles: []roles.Role{roles.KillPoints}}}
	composite := []Metric{{Name: "kp", Kind: Sum, Roles: []roles.Role{roles.T4Kills, roles.T5Kills}}}

	assert.Equal(t, 999.0, Aggregate(ds.All(), b, single).Value("kp"))
	assert.Equal(t, 3.0, Aggregate(ds.All(), b, composite).Value("kp"))
}

func TestAggregate_MeanOfPercentHints(t *testing.T) {
	ds, err := table.DecodeString("Name,Requirements\nA,45%\nB,0.45\nC,45\n")
	require.NoError(t, err)

	res := Aggregate(ds.All(), bind(ds.Columns), DefaultMetrics())
	assert.Equal(t, 45.0, res.Value("requirements_pct"))

	f, _ := res.Figure("requirements_pct")
	assert.Equal(t, "%", f.Unit(bind(ds.Columns)))
	kills, _ := res.Figure("total_kills")
	assert.Equal(t, "", kills.Unit(bind(ds.Columns)))
}

func TestAggregate_OverflowIsClamped(t *testing.T) {
	ds, err := table.DecodeString("Name,Total Kills,Total Deads,T4 Kills,T5 Kills\nA,1e308,-1e308,1e308,1e308\nB,1e308,-1e308,1,1\n")
	require.NoError(t, err)
	b := bind(ds.Columns)
	metrics := append(DefaultMetrics(), Metric{Name: "avg_kills", Kind: Mean, Roles: []roles.Role{roles.TotalKills}})

	res := Aggregate(ds.All(), b, metrics)
	for _, f := range res.Figures {
		assert.False(t, math.IsInf(f.Value, 0), f.Metric.Name)
		assert.False(t, math.IsNaN(f.Value), f.Metric.Name)
	}

	kills, _ := res.Figure("total_kills")
	assert.True(t, kills.Clamped)
	assert.Equal(t, math.MaxFloat64, kills.Value)
	deads, _ := res.Figure("total_deads")
	assert.True(t, deads.Clamped)
	assert.Equal(t, -math.MaxFloat64, deads.Value)

	avg, _ := res.Figure("avg_kills")
	assert.False(t, avg.Clamped, "the mean of finite cells is finite")
	assert.Equal(t, 1e308, avg.Value)

	warnings := res.ClampWarnings()
	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], "total_kills: total is out of range")
	assert.Contains(t, res.Warnings(), warnings[0])

	for _, v := range MetricSeries(ds.All(), b, DefaultMetrics()[2]) {
		assert.False(t, math.IsInf(v, 0))
	}
}

func TestResult_MissingFigure(t *testing.T) {
	var r Result
	_, ok := r.Figure("nope")
	assert.False(t, ok)
	assert.Equal(t, 0.0, r.Value("nope"))
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"": Sum, "sum": Sum, "Total": Sum, "mean": Mean, "AVG": Mean, "average": Mean} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseKind("median")
	assert.Error(t, err)
}
