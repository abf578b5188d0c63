// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warboard/warboard/internal/normalize"
)

var referenceColumns = []string{"Name", "Starting Power", "Total Kills", "Total Deads", "% of Requirements Complete"}

func TestResolve_ReferenceColumns(t *testing.T) {
	b := Resolve(referenceColumns, DefaultRules())

	col, ok := b.Column(TotalKills)
	require.True(t, ok)
	assert.Equal(t, "Total Kills", col)

	col, ok = b.Column(RequirementsPct)
	require.True(t, ok)
	assert.Equal(t, "% of Requirements Complete", col)
	assert.Equal(t, normalize.Percent, b.Hint(RequirementsPct))

	col, ok = b.Column(Name)
	require.True(t, ok)
	assert.Equal(t, "Name", col)

	col, ok = b.Column(StartingPower)
	require.True(t, ok)
	assert.Equal(t, "Starting Power", col)

	col, ok = b.Column(TotalDeads)
	require.True(t, ok)
	assert.Equal(t, "Total Deads", col)

	for _, r := range []Role{GovernorID, Power, T4Kills, T5Kills, KillPoints} {
		_, ok := b.Column(r)
		assert.False(t, ok, "role %s should be unresolved", r)
	}
	assert.Equal(t, []Role{GovernorID, Power, T4Kills, T5Kills, KillPoints}, b.Unresolved())
}

func TestResolve_Deterministic(t *testing.T) {
	a := Resolve(referenceColumns, DefaultRules())
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Map(), Resolve(referenceColumns, DefaultRules()).Map())
		assert.Equal(t, a.Unresolved(), Resolve(referenceColumns, DefaultRules()).Unresolved())
	}
}

func TestResolve_FirstMatchWins(t *testing.T) {
	cols := []string{"Player", "Total Kills (old)", "Total Kills"}
	b := Resolve(cols, DefaultRules())

	col, ok := b.Column(TotalKills)
	require.True(t, ok)
	assert.Equal(t, "Total Kills (old)", col)
}

func TestResolve_MatcherOrderBeforeColumnOrder(t *testing.T) {
	// "deads" alone would match the first column, but "total deads" is tried first.
	cols := []string{"T4 Deads", "Total Deads"}
	b := Resolve(cols, DefaultRules())

	col, ok := b.Column(TotalDeads)
	require.True(t, ok)
	assert.Equal(t, "Total Deads", col)
}

func TestResolve_CaseInsensitive(t *testing.T) {
	b := Resolve([]string{"GOVERNOR NAME", "total KILLS", "t4 kills", "T5 Kills"}, DefaultRules())

	col, _ := b.Column(TotalKills)
	assert.Equal(t, "total KILLS", col)
	col, _ = b.Column(T4Kills)
	assert.Equal(t, "t4 kills", col)
	col, _ = b.Column(T5Kills)
	assert.Equal(t, "T5 Kills", col)
	col, _ = b.Column(Name)
	assert.Equal(t, "GOVERNOR NAME", col)
}

func TestResolve_PositionalFallback(t *testing.T) {
	cols := make([]string, 20)
	for i := range cols {
		cols[i] = "c" + string(rune('a'+i))
	}
	b := Resolve(cols, DefaultRules())

	col, ok := b.Column(RequirementsPct)
	require.True(t, ok)
	assert.Equal(t, cols[17], col)
}

func TestResolve_EmptyColumns(t *testing.T) {
	b := Resolve(nil, DefaultRules())
	assert.Empty(t, b.Resolved())
	assert.Len(t, b.Unresolved(), len(DefaultRules()))
	assert.Len(t, b.Roles(), len(DefaultRules()))
}

func TestResolve_DuplicateRuleKeepsFirst(t *testing.T) {
	rules := []Rule{
		{Role: TotalKills, Matchers: []Matcher{Contains("a")}},
		{Role: TotalKills, Matchers: []Matcher{Contains("b")}},
	}
	b := Resolve([]string{"b", "a"}, rules)
	col, _ := b.Column(TotalKills)
	assert.Equal(t, "a", col)
	assert.Equal(t, []Role{TotalKills}, b.Roles())
}

func TestMatcherStrings(t *testing.T) {
	assert.Equal(t, `contains "total kills"`, Contains("Total Kills").String())
	assert.Equal(t, `pattern "\bt4\b"`, MustPattern(`\bt4\b`).String())
	assert.Equal(t, "column 18", Index(17).String())
}

func TestPattern_Invalid(t *testing.T) {
	_, err := Pattern("(")
	assert.Error(t, err)
	assert.Panics(t, func() { MustPattern("(") })
}

func TestKnown(t *testing.T) {
	assert.True(t, Known(TotalKills))
	assert.False(t, Known(Role("honor")))
}

func TestBinding_Has(t *testing.T) {
	rules, err := ApplyOverrides(DefaultRules(), map[Role]Override{"gold": {Contains: []string{"gold"}}})
	require.NoError(t, err)
	b := Resolve(referenceColumns, rules)

	assert.True(t, b.Has(TotalKills))
	assert.True(t, b.Has(Power), "unresolved built-in roles are still known")
	assert.True(t, b.Has("gold"), "custom roles are known")
	assert.False(t, b.Has("silver"))
	assert.False(t, Resolve(referenceColumns, DefaultRules()).Has("gold"))
}
