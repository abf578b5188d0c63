// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warboard/warboard/internal/normalize"
)

func intPtr(i int) *int { return &i }

func TestApplyOverrides_ReplacesMatchers(t *testing.T) {
	rules, err := ApplyOverrides(DefaultRules(), map[Role]Override{
		TotalKills: {Contains: []string{"kills total"}},
	})
	require.NoError(t, err)

	b := Resolve([]string{"Total Kills", "Kills Total"}, rules)
	col, ok := b.Column(TotalKills)
	require.True(t, ok)
	assert.Equal(t, "Kills Total", col)
}

func TestApplyOverrides_DoesNotMutateInput(t *testing.T) {
	base := DefaultRules()
	_, err := ApplyOverrides(base, map[Role]Override{TotalKills: {Pattern: "^k$"}})
	require.NoError(t, err)

	b := Resolve([]string{"Total Kills"}, base)
	_, ok := b.Column(TotalKills)
	assert.True(t, ok)
}

func TestApplyOverrides_IndexAndHint(t *testing.T) {
	rules, err := ApplyOverrides(DefaultRules(), map[Role]Override{
		RequirementsPct: {Index: intPtr(2), Hint: "percent"},
		TotalDeads:      {Hint: "percent"},
	})
	require.NoError(t, err)

	b := Resolve([]string{"Name", "Done"}, rules)
	col, ok := b.Column(RequirementsPct)
	require.True(t, ok)
	assert.Equal(t, "Done", col)
	assert.Equal(t, normalize.Percent, b.Hint(TotalDeads))
}

func TestApplyOverrides_CustomRole(t *testing.T) {
	rules, err := ApplyOverrides(DefaultRules(), map[Role]Override{
		"honor": {Contains: []string{"honor"}},
	})
	require.NoError(t, err)
	require.Len(t, rules, len(DefaultRules())+1)
	assert.Equal(t, Role("honor"), rules[len(rules)-1].Role)

	b := Resolve([]string{"Honor Points"}, rules)
	col, ok := b.Column("honor")
	require.True(t, ok)
	assert.Equal(t, "Honor Points", col)
}

func TestApplyOverrides_Errors(t *testing.T) {
	tests := []struct {
		name string
		ov   map[Role]Override
		want string
	}{
		{"bad pattern", map[Role]Override{TotalKills: {Pattern: "("}}, "invalid pattern"},
		{"bad hint", map[Role]Override{TotalKills: {Hint: "money"}}, "unknown hint"},
		{"zero index", map[Role]Override{TotalKills: {Index: intPtr(0)}}, "index must be 1 or greater"},
		{"empty contains", map[Role]Override{TotalKills: {Contains: []string{" "}}}, "empty contains"},
		{"custom without matchers", map[Role]Override{"honor": {}}, "needs at least one matcher"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplyOverrides(DefaultRules(), tt.ov)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestApplyOverrides_Empty(t *testing.T) {
	rules, err := ApplyOverrides(DefaultRules(), nil)
	require.NoError(t, err)
	assert.Len(t, rules, len(DefaultRules()))
}
