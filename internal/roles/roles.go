// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

// Package roles binds semantic roles (total kills, deads, completion
// percentage, ...) to concrete columns of a Column Set.
//
// Resolution runs once per Dataset over an explicit, ordered list of rules and
// produces an immutable Binding. A role that no rule matches stays unresolved;
// the resolver never guesses a column.
package roles

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/warboard/warboard/internal/normalize"
)

// Role names a semantic category of data independent of header wording.
type Role string

// Known roles.
const (
	Name            Role = "name"
	GovernorID      Role = "governor_id"
	StartingPower   Role = "starting_power"
	Power           Role = "power"
	TotalKills      Role = "total_kills"
	T4Kills         Role = "t4_kills"
	T5Kills         Role = "t5_kills"
	KillPoints      Role = "kill_points"
	TotalDeads      Role = "total_deads"
	RequirementsPct Role = "requirements_pct"
)

// Matcher decides whether a header at position idx belongs to a role.
type Matcher interface {
	Match(header string, idx int) bool
	String() string
}

type containsMatcher struct{ sub string }

// Contains matches headers containing sub, ignoring case.
func Contains(sub string) Matcher {
	return containsMatcher{sub: strings.ToLower(sub)}
}

func (m containsMatcher) Match(header string, _ int) bool {
	return strings.Contains(strings.ToLower(header), m.sub)
}

func (m containsMatcher) String() string { return fmt.Sprintf("contains %q", m.sub) }

type patternMatcher struct{ re *regexp.Regexp }

// Pattern matches headers against a case-insensitive regular expression.
func Pattern(expr string) (Matcher, error) {
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
	}
	return patternMatcher{re: re}, nil
}

// MustPattern is Pattern for expressions known to compile.
func MustPattern(expr string) Matcher {
	m, err := Pattern(expr)
	if err != nil {
		panic(err)
	}
	return m
}

func (m patternMatcher) Match(header string, _ int) bool {
	return m.re.MatchString(header)
}

func (m patternMatcher) String() string { return fmt.Sprintf("pattern %q", strings.TrimPrefix(m.re.String(), "(?i)")) }

type indexMatcher struct{ idx int }

// Index matches the column at a fixed zero-based position. It exists for
// exports whose headers were historically unreliable.
func Index(idx int) Matcher {
	return indexMatcher{idx: idx}
}

func (m indexMatcher) Match(_ string, idx int) bool { return idx == m.idx }

func (m indexMatcher) String() string { return fmt.Sprintf("column %d", m.idx+1) }

// Rule lists the matchers for one role, tried in order. Hint tells the
// normalizer how the bound column is formatted.
type Rule struct {
	Role     Role
	Hint     normalize.Hint
	Matchers []Matcher
}

// DefaultRules returns the built-in rule list, in resolution order.
func DefaultRules() []Rule {
	return []Rule{
		{Role: Name, Matchers: []Matcher{Contains("name")}},
		{Role: GovernorID, Matchers: []Matcher{MustPattern(`governor\s*id|^id$`)}},
		{Role: StartingPower, Matchers: []Matcher{Contains("starting power")}},
		{Role: Power, Matchers: []Matcher{MustPattern(`^power$`)}},
		{Role: TotalKills, Matchers: []Matcher{Contains("total kills"), MustPattern(`^kills$`)}},
		{Role: T4Kills, Matchers: []Matcher{MustPattern(`\bt4\b`)}},
		{Role: T5Kills, Matchers: []Matcher{MustPattern(`\bt5\b`)}},
		{Role: KillPoints, Matchers: []Matcher{MustPattern(`kill\s*points|\bkp\b`)}},
		{Role: TotalDeads, Matchers: []Matcher{Contains("total deads"), Contains("deads")}},
		{Role: RequirementsPct, Hint: normalize.Percent, Matchers: []Matcher{Contains("requirement"), Index(17)}},
	}
}

// Known reports whether r is one of the built-in roles.
func Known(r Role) bool {
	for _, rule := range DefaultRules() {
		if rule.Role == r {
			return true
		}
	}
	return false
}

// Resolve binds each rule's role to the first column its matchers accept.
// For every matcher, in order, the first matching column in Column Set order
// wins. Identical inputs always yield identical bindings.
func Resolve(columns []string, rules []Rule) Binding {
	b := Binding{
		columns: make(map[Role]string, len(rules)),
		hints:   make(map[Role]normalize.Hint, len(rules)),
		order:   make([]Role, 0, len(rules)),
	}
	for _, rule := range rules {
		if _, dup := b.hints[rule.Role]; dup {
			continue
		}
		b.order = append(b.order, rule.Role)
		b.hints[rule.Role] = rule.Hint
		if col, ok := firstMatch(columns, rule.Matchers); ok {
			b.columns[rule.Role] = col
		}
	}
	return b
}

func firstMatch(columns []string, matchers []Matcher) (string, bool) {
	for _, m := range matchers {
		for i, col := range columns {
			if m.Match(col, i) {
				return col, true
			}
		}
	}
	return "", false
}
