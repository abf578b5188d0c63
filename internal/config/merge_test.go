package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_HigherOverridesLower(t *testing.T) {
	fileCfg := &Config{
		Source:       "file.csv",
		OutputFormat: "markdown",
		Top:          100,
	}
	cliCfg := &Config{
		OutputFormat: "json",
		Top:          10,
	}

	result := Merge(fileCfg, cliCfg)
	assert.Equal(t, "json", result.OutputFormat)
	assert.Equal(t, 10, result.Top)
	assert.Equal(t, "file.csv", result.Source)
}

func TestMerge_LowerFillsInDefaults(t *testing.T) {
	fileCfg := &Config{
		Source:       "https://example.com/pub",
		Query:        "alice",
		OutputFormat: "markdown",
		Output:       "out.md",
		Columns:      []string{"Name"},
		Serve:        ServeConfig{Addr: ":9000"},
	}

	result := Merge(fileCfg, &Config{})
	assert.Equal(t, fileCfg, result)
}

func TestMerge_NilInputs(t *testing.T) {
	assert.Equal(t, &Config{}, Merge(nil, nil))
	assert.Equal(t, "x.csv", Merge(nil, &Config{Source: "x.csv"}).Source)
	assert.Equal(t, "x.csv", Merge(&Config{Source: "x.csv"}, nil).Source)
}

func TestMerge_RolesMergePerRole(t *testing.T) {
	idx := 3
	lower := &Config{Roles: map[string]RoleConfig{
		"power":       {Pattern: "^might$"},
		"total_kills": {Contains: []string{"kills"}},
	}}
	higher := &Config{Roles: map[string]RoleConfig{
		"total_kills": {Index: &idx},
	}}

	result := Merge(lower, higher)
	require.Len(t, result.Roles, 2)
	assert.Equal(t, "^might$", result.Roles["power"].Pattern)
	assert.Nil(t, result.Roles["total_kills"].Contains)
	assert.Equal(t, 3, *result.Roles["total_kills"].Index)

	// Inputs are not modified.
	assert.Len(t, higher.Roles, 1)
	assert.Equal(t, []string{"kills"}, lower.Roles["total_kills"].Contains)
}

func TestMerge_MetricsReplaceList(t *testing.T) {
	lower := &Config{Metrics: []MetricConfig{{Name: "a", Roles: []string{"power"}}, {Name: "b", Roles: []string{"power"}}}}
	higher := &Config{Metrics: []MetricConfig{{Name: "c", Roles: []string{"power"}}}}

	result := Merge(lower, higher)
	require.Len(t, result.Metrics, 1)
	assert.Equal(t, "c", result.Metrics[0].Name)

	result = Merge(lower, &Config{})
	assert.Len(t, result.Metrics, 2)
}
