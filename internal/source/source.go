// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

// Package source retrieves the raw CSV document from its configured location:
// a published spreadsheet URL, a local export, or stdin.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/warboard/warboard/internal/redact"
)

// DefaultTimeout bounds a single HTTP fetch.
const DefaultTimeout = 30 * time.Second

// Fetcher returns the raw document. Callers must close the reader.
type Fetcher interface {
	Fetch(ctx context.Context) (io.ReadCloser, error)
	// Location describes the source without credentials.
	Location() string
}

// FetchError reports an unreachable source or a non-success response.
type FetchError struct {
	Location   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("fetch %s: status %d %s", e.Location, e.StatusCode, http.StatusText(e.StatusCode))
	case e.Err != nil:
		return redact.String(fmt.Sprintf("fetch %s: %v", e.Location, e.Err))
	default:
		return fmt.Sprintf("fetch %s: failed", e.Location)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// New picks a Fetcher for location: http(s) URLs, file:// URLs, "-" for
// stdin, or a local path.
func New(location string) (Fetcher, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("no source configured")
	}
	if location == "-" {
		return &ReaderFetcher{Name: "stdin", R: os.Stdin}, nil
	}

	u, err := url.Parse(location)
	if err == nil {
		switch u.Scheme {
		case "http", "https":
			redact.RegisterURL(location)
			return &HTTPFetcher{URL: location}, nil
		case "file":
			return &FileFetcher{Path: u.Path}, nil
		}
	}
	if strings.Contains(location, "://") {
		return nil, fmt.Errorf("unsupported source %q", redact.URL(location))
	}
	return &FileFetcher{Path: location}, nil
}

// HTTPFetcher performs one GET per Fetch. There is no retry.
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

// Location returns the URL with its access key redacted.
func (h *HTTPFetcher) Location() string {
	return redact.URL(h.URL)
}

// Fetch issues the GET and returns the response body on a 2xx status.
func (h *HTTPFetcher) Fetch(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, &FetchError{Location: h.Location(), Err: err}
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")

	client := h.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Location: h.Location(), Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		return nil, &FetchError{Location: h.Location(), StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}

// FileFetcher reads a local CSV export.
type FileFetcher struct {
	Path string
}

// Location returns the path.
func (f *FileFetcher) Location() string { return f.Path }

// Fetch opens the file.
func (f *FileFetcher) Fetch(_ context.Context) (io.ReadCloser, error) {
	file, err := os.Open(f.Path) //nolint:gosec // user-specified source path
	if err != nil {
		return nil, &FetchError{Location: f.Path, Err: err}
	}
	return file, nil
}

// ReaderFetcher serves an already-open stream, once.
type ReaderFetcher struct {
	Name string
	R    io.Reader
}

// Location returns the stream name.
func (r *ReaderFetcher) Location() string { return r.Name }

// Fetch returns the stream. The underlying reader is not closed.
func (r *ReaderFetcher) Fetch(_ context.Context) (io.ReadCloser, error) {
	if r.R == nil {
		return nil, &FetchError{Location: r.Name, Err: errors.New("no input")}
	}
	return io.NopCloser(r.R), nil
}
