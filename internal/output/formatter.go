// Package output defines the Formatter interface for projecting a filtered
// view of a snapshot in various formats.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// Formatter writes a Page to the given writer in a specific format.
type Formatter interface {
	// Name returns the format name (e.g., "text", "json", "html").
	Name() string

	// Format writes the page to w.
	Format(p *Page, w io.Writer) error
}

// BinaryFormatter marks formats whose output must not be written to a
// terminal (e.g., xlsx).
type BinaryFormatter interface {
	Formatter
	Binary() bool
}

var (
	fmtMu       sync.RWMutex
	fmtRegistry = make(map[string]Formatter)
)

// RegisterFormatter adds a formatter to the global registry.
func RegisterFormatter(f Formatter) {
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry[f.Name()] = f
}

// GetFormatter returns the formatter with the given name, or an error if not found.
func GetFormatter(name string) (Formatter, error) {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	f, ok := fmtRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown format: %q (available: %s)", name, formatNames())
	}
	return f, nil
}

// Names returns the registered format names in sorted order.
func Names() []string {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	names := make([]string, 0, len(fmtRegistry))
	for name := range fmtRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsBinary reports whether f produces binary output.
func IsBinary(f Formatter) bool {
	b, ok := f.(BinaryFormatter)
	return ok && b.Binary()
}

// resetFmtForTesting clears the formatter registry. Only for use in tests.
func resetFmtForTesting() {
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry = make(map[string]Formatter)
}

// formatNames returns a comma-separated sorted list of registered format names.
// Callers must hold fmtMu.
func formatNames() string {
	names := make([]string, 0, len(fmtRegistry))
	for name := range fmtRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
