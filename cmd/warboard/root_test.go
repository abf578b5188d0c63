package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootHelp(t *testing.T) {
	resetAllFlags()
	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"--help"})
	require.NoError(t, cmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, "kingdom roster")
	for _, sub := range []string{"report", "series", "inspect", "browse", "serve", "mcp", "config", "version"} {
		assert.Contains(t, out, sub)
	}
}

func TestGlobalFlags(t *testing.T) {
	for _, name := range []string{"verbose", "quiet", "no-color", "config-dir"} {
		t.Run(name, func(t *testing.T) {
			assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "global flag --%s not registered", name)
		})
	}

	v := rootCmd.PersistentFlags().ShorthandLookup("v")
	if assert.NotNil(t, v) {
		assert.Equal(t, "verbose", v.Name)
	}
	q := rootCmd.PersistentFlags().ShorthandLookup("q")
	if assert.NotNil(t, q) {
		assert.Equal(t, "quiet", q.Name)
	}
}

func TestQueryFlagShorthand(t *testing.T) {
	for _, c := range []string{"report", "series", "browse"} {
		sub, _, err := rootCmd.Find([]string{c})
		require.NoError(t, err)
		f := sub.Flags().ShorthandLookup("s")
		if assert.NotNil(t, f, "%s: -s not registered", c) {
			assert.Equal(t, "query", f.Name)
		}
	}
}

func TestVersionCmd(t *testing.T) {
	resetAllFlags()
	orig := Version
	Version = "1.2.3"
	t.Cleanup(func() { Version = orig })

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "warboard 1.2.3", strings.TrimSpace(stdout.String()))
}

func TestExitError_DefaultMessages(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{ExitWarnings, "warboard: data produced warnings"},
		{ExitLoadFailure, "warboard: failed to load data"},
		{ExitInvalidArgs, "warboard: error"},
	}
	for _, tt := range tests {
		err := exitError(tt.code, "")
		assert.Equal(t, tt.want, err.Error())
		assert.Equal(t, tt.code, err.ExitCode())
	}

	err := exitError(ExitInvalidArgs, "warboard: bad %s", "flag")
	assert.Equal(t, "warboard: bad flag", err.Error())
}
