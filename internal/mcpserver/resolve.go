// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes warboard's read-only queries as tools over stdio transport.
package mcpserver

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ResolveSource picks the source for a tool call: the call's own source,
// else fallback. HTTP(S) URLs pass through; local paths are made absolute
// and must name a regular file. Stdin is rejected because it carries the
// MCP transport.
func ResolveSource(src, fallback string) (string, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		src = strings.TrimSpace(fallback)
	}
	if src == "" {
		return "", errors.New("no source given and no default source configured")
	}
	if src == "-" {
		return "", errors.New("stdin is not available as a source over MCP")
	}
	if strings.ContainsRune(src, 0) {
		return "", errors.New("source contains a null byte")
	}

	if u, err := url.Parse(src); err == nil {
		switch u.Scheme {
		case "http", "https":
			return src, nil
		case "file":
			src = u.Path
		}
	}

	absPath, err := filepath.Abs(src)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", src, err)
	}
	absPath, err = filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fmt.Errorf("source %q does not exist", src)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("source %q does not exist", src)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%q is not a file", src)
	}
	return absPath, nil
}
