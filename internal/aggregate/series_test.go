// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warboard/warboard/internal/roles"
	"github.com/warboard/warboard/internal/table"
)

const seriesCSV = `Name,Total Kills,T4 Kills,T5 Kills,% of Requirements Complete
Zed,"2,000",10,5,0.5
Amy,300,1,1,80%
,"2,000",0,0,
Bob,x,2,3,12
`

func TestSeries_PreservesRowOrder(t *testing.T) {
	ds, err := table.DecodeString(seriesCSV)
	require.NoError(t, err)
	b := bind(ds.Columns)

	assert.Equal(t, []float64{2000, 300, 2000, 0}, Series(ds.All(), b, roles.TotalKills))
	assert.Equal(t, []float64{50, 80, 0, 12}, Series(ds.All(), b, roles.RequirementsPct))
}

func TestSeries_UnresolvedRoleIsZeros(t *testing.T) {
	ds, err := table.DecodeString(seriesCSV)
	require.NoError(t, err)

	got := Series(ds.All(), bind(ds.Columns), roles.TotalDeads)
	assert.Equal(t, []float64{0, 0, 0, 0}, got)
	assert.Empty(t, Series(nil, bind(ds.Columns), roles.TotalDeads))
}

func TestMetricSeries_Composite(t *testing.T) {
	ds, err := table.DecodeString(seriesCSV)
	require.NoError(t, err)

	m := Metric{Name: "kp", Roles: []roles.Role{roles.T4Kills, roles.T5Kills}}
	assert.Equal(t, []float64{15, 2, 0, 5}, MetricSeries(ds.All(), bind(ds.Columns), m))
}

func TestLabels(t *testing.T) {
	ds, err := table.DecodeString(seriesCSV)
	require.NoError(t, err)

	assert.Equal(t, []string{"Zed", "Amy", "row 3", "Bob"}, Labels(ds.All(), bind(ds.Columns)))

	noName := roles.Resolve([]string{"Total Kills"}, roles.DefaultRules())
	assert.Equal(t, []string{"row 1", "row 2", "row 3", "row 4"}, Labels(ds.All(), noName))
}

func TestTop(t *testing.T) {
	ds, err := table.DecodeString(seriesCSV)
	require.NoError(t, err)
	b := bind(ds.Columns)
	kills := DefaultMetrics()[0]

	top := Top(ds.All(), b, kills, 2)
	require.Len(t, top, 2)
	// Ties keep view order.
	assert.Equal(t, Point{Label: "Zed", Value: 2000}, top[0])
	assert.Equal(t, Point{Label: "row 3", Value: 2000}, top[1])

	all := Top(ds.All(), b, kills, 0)
	assert.Len(t, all, 4)
	assert.Equal(t, "Bob", all[3].Label)
}
