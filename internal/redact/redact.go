// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

// Package redact strips source credentials from strings before they appear in
// output, logs, or error messages. Published sheet links carry their access
// key in the URL, so the full URL of a source is treated as a secret.
package redact

import (
	"net/url"
	"strings"
	"sync"
)

const placeholder = "[REDACTED]"

var (
	mu      sync.RWMutex
	secrets []string
)

// Register marks value as sensitive. Values shorter than 4 characters are
// ignored to avoid false-positive redaction.
func Register(value string) {
	if len(value) < 4 {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	for _, s := range secrets {
		if s == value {
			return
		}
	}
	secrets = append(secrets, value)
	// Longest first so a URL is replaced before its query string.
	for i := len(secrets) - 1; i > 0 && len(secrets[i]) > len(secrets[i-1]); i-- {
		secrets[i], secrets[i-1] = secrets[i-1], secrets[i]
	}
}

// RegisterURL marks a source URL's userinfo, query string, and the URL itself
// as sensitive.
func RegisterURL(raw string) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return
	}
	Register(raw)
	if u.User != nil {
		Register(u.User.String())
	}
	if u.RawQuery != "" {
		Register(u.RawQuery)
	}
}

// ResetForTest clears registered secrets.
func ResetForTest() {
	mu.Lock()
	defer mu.Unlock()
	secrets = nil
}

// String replaces every registered secret in s with "[REDACTED]".
func String(s string) string {
	mu.RLock()
	defer mu.RUnlock()
	for _, secret := range secrets {
		s = strings.ReplaceAll(s, secret, placeholder)
	}
	return s
}

// URL returns raw without userinfo and with the query string and fragment
// replaced, keeping scheme, host, and path so the source stays recognizable.
// Unparseable input is fully redacted.
func URL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return placeholder
	}
	if u.Host == "" {
		return raw
	}
	u.User = nil
	out := u.Scheme + "://" + u.Host + u.EscapedPath()
	if u.RawQuery != "" || u.Fragment != "" {
		out += "?" + placeholder
	}
	return out
}
