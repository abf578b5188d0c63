// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package roles

import (
	"github.com/warboard/warboard/internal/normalize"
)

// Binding is the immutable result of Resolve: each role maps to exactly one
// column or is unresolved.
type Binding struct {
	columns map[Role]string
	hints   map[Role]normalize.Hint
	order   []Role
}

// Column returns the column bound to r.
func (b Binding) Column(r Role) (string, bool) {
	col, ok := b.columns[r]
	return col, ok
}

// Hint returns the normalizer hint for r. Unknown roles are Plain.
func (b Binding) Hint(r Role) normalize.Hint {
	return b.hints[r]
}

// Roles returns every role the binding was resolved for, in rule order.
func (b Binding) Roles() []Role {
	out := make([]Role, len(b.order))
	copy(out, b.order)
	return out
}

// Has reports whether r was one of the binding's rules, resolved or not.
// Custom roles from config count.
func (b Binding) Has(r Role) bool {
	_, ok := b.hints[r]
	return ok
}

// Resolved returns the bound roles in rule order.
func (b Binding) Resolved() []Role {
	var out []Role
	for _, r := range b.order {
		if _, ok := b.columns[r]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Unresolved returns the roles with no matching column, in rule order.
func (b Binding) Unresolved() []Role {
	var out []Role
	for _, r := range b.order {
		if _, ok := b.columns[r]; !ok {
			out = append(out, r)
		}
	}
	return out
}

// Map returns a copy of the role to column assignments.
func (b Binding) Map() map[Role]string {
	out := make(map[Role]string, len(b.columns))
	for r, c := range b.columns {
		out[r] = c
	}
	return out
}
