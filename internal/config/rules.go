// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strings"

	"github.com/warboard/warboard/internal/aggregate"
	"github.com/warboard/warboard/internal/roles"
)

// Rules returns the default role rules with the configured overrides applied.
func (c *Config) Rules() ([]roles.Rule, error) {
	if len(c.Roles) == 0 {
		return roles.DefaultRules(), nil
	}
	overrides := make(map[roles.Role]roles.Override, len(c.Roles))
	for name, rc := range c.Roles {
		overrides[roles.Role(name)] = roles.Override{
			Contains: rc.Contains,
			Pattern:  rc.Pattern,
			Index:    rc.Index,
			Hint:     rc.Hint,
		}
	}
	return roles.ApplyOverrides(roles.DefaultRules(), overrides)
}

// MetricSet returns the default metrics with configured metrics applied: an
// entry whose name matches a default replaces it in place, other entries are
// appended in config order. Every role a metric references must be known or
// defined under roles.
func (c *Config) MetricSet() ([]aggregate.Metric, error) {
	metrics := aggregate.DefaultMetrics()
	if len(c.Metrics) == 0 {
		return metrics, nil
	}

	pos := make(map[string]int, len(metrics))
	for i, m := range metrics {
		pos[m.Name] = i
	}

	var errs []string
	seen := make(map[string]bool, len(c.Metrics))
	for i, mc := range c.Metrics {
		name := strings.TrimSpace(mc.Name)
		if name == "" {
			errs = append(errs, fmt.Sprintf("metrics[%d]: name is required", i))
			continue
		}
		if seen[name] {
			errs = append(errs, fmt.Sprintf("metrics.%s: defined more than once", name))
			continue
		}
		seen[name] = true

		kind, err := aggregate.ParseKind(mc.Kind)
		if err != nil {
			errs = append(errs, fmt.Sprintf("metrics.%s.kind: %v", name, err))
			continue
		}
		if len(mc.Roles) == 0 {
			errs = append(errs, fmt.Sprintf("metrics.%s.roles: at least one role is required", name))
			continue
		}

		m := aggregate.Metric{Name: name, Label: mc.Label, Kind: kind}
		if m.Label == "" {
			m.Label = name
		}
		for _, r := range mc.Roles {
			role := roles.Role(r)
			if _, custom := c.Roles[r]; !roles.Known(role) && !custom {
				errs = append(errs, fmt.Sprintf("metrics.%s.roles: unknown role %q", name, r))
				continue
			}
			m.Roles = append(m.Roles, role)
		}

		if i, ok := pos[name]; ok {
			metrics[i] = m
		} else {
			metrics = append(metrics, m)
			pos[name] = len(metrics) - 1
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return metrics, nil
}
