package mcpserver

import "testing"

func FuzzResolveSource(f *testing.F) {
	f.Add(".", "")
	f.Add("", "")
	f.Add("/", "-")
	f.Add("../../etc/passwd", "")
	f.Add(string(make([]byte, 4096)), "")
	f.Add("path/with\x00null", "")
	f.Add("ftp://host/x.csv", "")

	f.Fuzz(func(t *testing.T, src, fallback string) {
		// ResolveSource should never panic on any input.
		ResolveSource(src, fallback) //nolint:errcheck // fuzz: testing crash-freedom
	})
}
