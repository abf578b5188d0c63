// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package roles

import (
	"fmt"
	"sort"
	"strings"

	"github.com/warboard/warboard/internal/normalize"
)

// Override replaces the matchers (and optionally the hint) of one role.
// Matchers are evaluated in the order contains, pattern, index.
type Override struct {
	Contains []string
	Pattern  string
	Index    *int
	Hint     string
}

// ApplyOverrides returns a copy of rules with the overrides applied. Roles not
// present in rules are appended in sorted order so that resolution stays
// deterministic. An override with no matchers keeps the rule's matchers.
func ApplyOverrides(rules []Rule, overrides map[Role]Override) ([]Rule, error) {
	out := make([]Rule, len(rules))
	copy(out, rules)
	if len(overrides) == 0 {
		return out, nil
	}

	pos := make(map[Role]int, len(out))
	for i, r := range out {
		pos[r.Role] = i
	}

	names := make([]string, 0, len(overrides))
	for r := range overrides {
		names = append(names, string(r))
	}
	sort.Strings(names)

	var errs []string
	for _, name := range names {
		role := Role(name)
		ov := overrides[role]

		matchers, hint, err := ov.build()
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", role, err))
			continue
		}

		i, ok := pos[role]
		if !ok {
			if len(matchers) == 0 {
				errs = append(errs, fmt.Sprintf("%s: custom role needs at least one matcher", role))
				continue
			}
			out = append(out, Rule{Role: role})
			i = len(out) - 1
			pos[role] = i
		}
		if len(matchers) > 0 {
			out[i].Matchers = matchers
		}
		if ov.Hint != "" {
			out[i].Hint = hint
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("role overrides: %s", strings.Join(errs, "; "))
	}
	return out, nil
}

func (o Override) build() ([]Matcher, normalize.Hint, error) {
	var ms []Matcher
	for _, s := range o.Contains {
		if strings.TrimSpace(s) == "" {
			return nil, 0, fmt.Errorf("empty contains matcher")
		}
		ms = append(ms, Contains(s))
	}
	if o.Pattern != "" {
		m, err := Pattern(o.Pattern)
		if err != nil {
			return nil, 0, err
		}
		ms = append(ms, m)
	}
	if o.Index != nil {
		if *o.Index < 1 {
			return nil, 0, fmt.Errorf("index must be 1 or greater, got %d", *o.Index)
		}
		ms = append(ms, Index(*o.Index-1))
	}

	hint, err := normalize.ParseHint(o.Hint)
	if err != nil {
		return nil, 0, err
	}
	return ms, hint, nil
}
